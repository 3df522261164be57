package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storeledger/internal/domain"
	orderrepo "storeledger/internal/repository/order"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service owns order records and coordinates stock reservation with the
// catalog and purchase history with the directory.
type Service struct {
	repo      orderrepo.Repository
	catalog   catalog
	directory directory
	now       func() time.Time
}

type catalog interface {
	Product(ctx context.Context, id string) (*domain.Product, error)
	ConsumeStock(ctx context.Context, id string, quantity int) error
	RestoreStock(ctx context.Context, id string, quantity int) error
}

type directory interface {
	Customer(ctx context.Context, id string) (*domain.Customer, error)
	RecordPurchase(ctx context.Context, id string, order *domain.Order) error
}

func New(repo orderrepo.Repository, catalog catalog, directory directory) *Service {
	return &Service{repo: repo, catalog: catalog, directory: directory, now: time.Now}
}

// LineInput is one requested (product, quantity) pair. Inputs keep their
// order so bills list items the way the caller entered them.
type LineInput struct {
	ProductID string
	Quantity  int
}

// Place creates an order in two phases: validate every line against current
// stock, then commit all decrements. A failing line leaves no stock touched.
// A blank order ID gets a generated one.
func (s *Service) Place(ctx context.Context, orderID, customerID string, items []LineInput) (*domain.Order, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("order requires at least one line item: %w", domain.ErrInvalidArgument)
	}
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		orderID = uuid.NewString()
	}
	if _, err := s.repo.GetByID(ctx, orderID); err == nil {
		return nil, fmt.Errorf("order %s already exists: %w", orderID, domain.ErrDuplicateKey)
	}
	cust, err := s.directory.Customer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("customer %s: %w", customerID, err)
	}

	required := make(map[string]int, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("quantity for product %s must be positive: %w", item.ProductID, domain.ErrInvalidArgument)
		}
		p, err := s.catalog.Product(ctx, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", item.ProductID, err)
		}
		required[p.ID] += item.Quantity
		if required[p.ID] > p.Stock {
			return nil, fmt.Errorf("product %s has %d units, %d requested: %w", p.Name, p.Stock, required[p.ID], domain.ErrInsufficientStock)
		}
	}

	order := &domain.Order{
		ID:        orderID,
		Customer:  cust,
		OrderDate: dateOnly(s.now()),
		Status:    domain.OrderStatusPlaced,
	}
	total := decimal.Zero
	for _, item := range items {
		p, err := s.catalog.Product(ctx, item.ProductID)
		if err != nil {
			s.rollback(ctx, order.Lines)
			return nil, err
		}
		if err := s.catalog.ConsumeStock(ctx, p.ID, item.Quantity); err != nil {
			s.rollback(ctx, order.Lines)
			return nil, err
		}
		order.Lines = append(order.Lines, domain.OrderLine{Product: p, Quantity: item.Quantity, UnitPrice: p.Price})
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	order.TotalCost = total

	if err := s.repo.Insert(ctx, order); err != nil {
		s.rollback(ctx, order.Lines)
		return nil, err
	}
	if err := s.directory.RecordPurchase(ctx, cust.ID, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *Service) rollback(ctx context.Context, lines []domain.OrderLine) {
	for _, line := range lines {
		_ = s.catalog.RestoreStock(ctx, line.Product.ID, line.Quantity)
	}
}

// Cancel restores every line's quantity to the shelf, marks the order
// cancelled and drops it from the active ledger. The owning customer's
// history keeps the cancelled record.
func (s *Service) Cancel(ctx context.Context, orderID string) error {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	for _, line := range order.Lines {
		if err := s.catalog.RestoreStock(ctx, line.Product.ID, line.Quantity); err != nil {
			return err
		}
	}
	order.Status = domain.OrderStatusCancelled
	return s.repo.Remove(ctx, orderID)
}

// ApplyDiscount rewrites the stored total; line items are not re-derived.
func (s *Service) ApplyDiscount(ctx context.Context, orderID string, percentage float64) error {
	if percentage < 0 || percentage > 100 {
		return fmt.Errorf("discount percentage %.2f out of range [0,100]: %w", percentage, domain.ErrInvalidArgument)
	}
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	factor := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(percentage).Div(decimal.NewFromInt(100)))
	order.TotalCost = order.TotalCost.Mul(factor).Round(2)
	return nil
}

func (s *Service) SetGiftMessage(ctx context.Context, orderID, message string) error {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	order.GiftMessage = message
	return nil
}

// EstimatedDelivery is the order date plus the given shipping days.
func (s *Service) EstimatedDelivery(ctx context.Context, orderID string, shippingDays int) (time.Time, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return time.Time{}, err
	}
	return order.OrderDate.AddDate(0, 0, shippingDays), nil
}

func (s *Service) Order(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.repo.GetByID(ctx, orderID)
}

func (s *Service) List(ctx context.Context) ([]*domain.Order, error) {
	return s.repo.List(ctx)
}

// ItemizedBill renders one line per item with its placement-time unit price.
func (s *Service) ItemizedBill(ctx context.Context, orderID string) (string, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Order %s:\n", order.ID)
	for _, line := range order.Lines {
		fmt.Fprintf(&b, "%dx %s @ $%s each\n", line.Quantity, line.Product.Name, line.UnitPrice.String())
	}
	fmt.Fprintf(&b, "Total: $%s", order.TotalCost.String())
	return b.String(), nil
}

// Summary renders the customer, date, item count and total.
func (s *Service) Summary(ctx context.Context, orderID string) (string, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("Order Summary:\n")
	fmt.Fprintf(&b, "Customer: %s (%s)\n", order.Customer.Name, order.Customer.ID)
	fmt.Fprintf(&b, "Order Date: %s\n", order.OrderDate.Format("2006-01-02"))
	fmt.Fprintf(&b, "Total Items: %d\n", len(order.Lines))
	fmt.Fprintf(&b, "Total Cost: $%s", order.TotalCost.String())
	return b.String(), nil
}

func (s *Service) ContainsProduct(ctx context.Context, orderID, productID string) (bool, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return false, err
	}
	return order.ContainsProduct(productID), nil
}

// InDateRange returns orders whose date lies in [start, end], both inclusive,
// parsed as YYYY-MM-DD calendar dates.
func (s *Service) InDateRange(ctx context.Context, start, end string) ([]*domain.Order, error) {
	from, err := parseDate(start)
	if err != nil {
		return nil, err
	}
	to, err := parseDate(end)
	if err != nil {
		return nil, err
	}
	return s.filter(ctx, func(o *domain.Order) bool {
		return !o.OrderDate.Before(from) && !o.OrderDate.After(to)
	})
}

// OnDate returns orders placed on the given YYYY-MM-DD date.
func (s *Service) OnDate(ctx context.Context, date string) ([]*domain.Order, error) {
	target, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	return s.filter(ctx, func(o *domain.Order) bool { return o.OrderDate.Equal(target) })
}

func (s *Service) ByCustomer(ctx context.Context, customerID string) ([]*domain.Order, error) {
	return s.filter(ctx, func(o *domain.Order) bool { return o.Customer.ID == customerID })
}

func (s *Service) filter(ctx context.Context, keep func(*domain.Order) bool) ([]*domain.Order, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*domain.Order, 0)
	for _, o := range orders {
		if keep(o) {
			result = append(result, o)
		}
	}
	return result, nil
}

func parseDate(value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q must be YYYY-MM-DD: %w", value, domain.ErrInvalidArgument)
	}
	return t, nil
}

func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
