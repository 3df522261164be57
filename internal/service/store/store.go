package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"storeledger/internal/domain"
	catalogsvc "storeledger/internal/service/catalog"
	directorysvc "storeledger/internal/service/directory"
	ledgersvc "storeledger/internal/service/ledger"
	"github.com/shopspring/decimal"
)

// Store fronts the catalog, directory and ledger behind a single mutation
// boundary. Stock checks and decrements are not atomic on their own, so every
// mutating call serializes on one lock per Store instance.
type Store struct {
	mu        sync.RWMutex
	catalog   *catalogsvc.Service
	directory *directorysvc.Service
	ledger    *ledgersvc.Service
}

func New(catalog *catalogsvc.Service, directory *directorysvc.Service, ledger *ledgersvc.Service) *Store {
	return &Store{catalog: catalog, directory: directory, ledger: ledger}
}

// --- product operations ---

func (s *Store) AddProduct(ctx context.Context, in catalogsvc.AddInput) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Add(ctx, in)
}

func (s *Store) RestockProduct(ctx context.Context, id string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Restock(ctx, id, quantity)
}

func (s *Store) DiscountProduct(ctx context.Context, id string, percentage float64) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.ApplyDiscount(ctx, id, percentage)
}

func (s *Store) DiscountCategory(ctx context.Context, category string, percentage float64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.ApplyCategoryDiscount(ctx, category, percentage)
}

func (s *Store) MarkProductFeatured(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.MarkFeatured(ctx, id)
}

func (s *Store) Products(ctx context.Context) ([]*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.List(ctx)
}

func (s *Store) ProductsByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.ByCategory(ctx, category)
}

func (s *Store) OutOfStockProducts(ctx context.Context) ([]*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.OutOfStock(ctx)
}

func (s *Store) FeaturedProducts(ctx context.Context) ([]*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.Featured(ctx)
}

func (s *Store) OnSaleProducts(ctx context.Context) ([]*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.OnSale(ctx)
}

func (s *Store) ProductStockValue(ctx context.Context, id string) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.StockValue(ctx, id)
}

func (s *Store) InventoryValue(ctx context.Context) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.InventoryValue(ctx)
}

// --- customer operations ---

func (s *Store) AddCustomer(ctx context.Context, in directorysvc.AddInput) (*domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.directory.Add(ctx, in)
}

func (s *Store) UpdateCustomerEmail(ctx context.Context, id, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.directory.UpdateEmail(ctx, id, email)
}

func (s *Store) UpdateCustomerPhone(ctx context.Context, id, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.directory.UpdatePhone(ctx, id, phone)
}

func (s *Store) DeactivateCustomer(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.directory.Deactivate(ctx, id)
}

func (s *Store) Customers(ctx context.Context) ([]*domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.directory.List(ctx)
}

func (s *Store) CustomersByLoyalty(ctx context.Context, tier string) ([]*domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.directory.ByLoyalty(ctx, tier)
}

func (s *Store) InactiveCustomers(ctx context.Context) ([]*domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.directory.Inactive(ctx)
}

func (s *Store) CustomersWhoPurchased(ctx context.Context, productID string) ([]*domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.directory.PurchasedProduct(ctx, productID)
}

func (s *Store) CustomersSpendingAbove(ctx context.Context, threshold decimal.Decimal) ([]*domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.directory.SpendingAbove(ctx, threshold)
}

func (s *Store) RecentPurchases(ctx context.Context, customerID string, limit int) ([]*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.directory.RecentPurchases(ctx, customerID, limit)
}

func (s *Store) HighestSpendingCustomer(ctx context.Context) (*domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.directory.HighestSpender(ctx)
}

// --- order operations ---

func (s *Store) PlaceOrder(ctx context.Context, orderID, customerID string, items []ledgersvc.LineInput) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Place(ctx, orderID, customerID, items)
}

func (s *Store) CancelOrder(ctx context.Context, orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Cancel(ctx, orderID)
}

func (s *Store) DiscountOrder(ctx context.Context, orderID string, percentage float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.ApplyDiscount(ctx, orderID, percentage)
}

func (s *Store) SetGiftMessage(ctx context.Context, orderID, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.SetGiftMessage(ctx, orderID, message)
}

func (s *Store) Orders(ctx context.Context) ([]*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.List(ctx)
}

func (s *Store) OrdersInDateRange(ctx context.Context, start, end string) ([]*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.InDateRange(ctx, start, end)
}

func (s *Store) OrdersOnDate(ctx context.Context, date string) ([]*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.OnDate(ctx, date)
}

func (s *Store) OrdersByCustomer(ctx context.Context, customerID string) ([]*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.ByCustomer(ctx, customerID)
}

func (s *Store) ItemizedBill(ctx context.Context, orderID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.ItemizedBill(ctx, orderID)
}

func (s *Store) OrderSummary(ctx context.Context, orderID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.Summary(ctx, orderID)
}

func (s *Store) OrderContainsProduct(ctx context.Context, orderID, productID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.ContainsProduct(ctx, orderID, productID)
}

func (s *Store) EstimatedDelivery(ctx context.Context, orderID string, shippingDays int) (time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.EstimatedDelivery(ctx, orderID, shippingDays)
}

// --- analytics ---

// SalesTotal sums total_cost over the active ledger. Cancelled orders are no
// longer in the ledger, so they never count.
func (s *Store) SalesTotal(ctx context.Context) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders, err := s.ledger.List(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.TotalCost)
	}
	return total, nil
}

func (s *Store) SalesReport(ctx context.Context) (string, error) {
	total, err := s.SalesTotal(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Total Sales: $%s", total.String()), nil
}

// TopSellingProduct tallies units sold per product over all ledger orders and
// returns the product with the highest tally plus the units sold. Ties break
// to the lowest product ID. An empty ledger yields ErrNotFound.
func (s *Store) TopSellingProduct(ctx context.Context) (*domain.Product, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders, err := s.ledger.List(ctx)
	if err != nil {
		return nil, 0, err
	}
	sold := make(map[string]int)
	products := make(map[string]*domain.Product)
	for _, o := range orders {
		for _, line := range o.Lines {
			sold[line.Product.ID] += line.Quantity
			products[line.Product.ID] = line.Product
		}
	}
	if len(sold) == 0 {
		return nil, 0, fmt.Errorf("no sales recorded: %w", domain.ErrNotFound)
	}

	ids := make([]string, 0, len(sold))
	for id := range sold {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	bestID := ids[0]
	for _, id := range ids[1:] {
		if sold[id] > sold[bestID] {
			bestID = id
		}
	}
	return products[bestID], sold[bestID], nil
}

// MostPurchasedProduct is the same tally as TopSellingProduct; both names
// survive because callers use both.
func (s *Store) MostPurchasedProduct(ctx context.Context) (*domain.Product, int, error) {
	return s.TopSellingProduct(ctx)
}

// CustomerSpend pairs a customer with the sum of their active orders.
type CustomerSpend struct {
	Customer *domain.Customer
	Total    decimal.Decimal
}

// CustomerSpending aggregates active-order spend per customer, sorted by
// spend descending; equal spends keep directory order.
func (s *Store) CustomerSpending(ctx context.Context) ([]CustomerSpend, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	customers, err := s.directory.List(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.ledger.List(ctx)
	if err != nil {
		return nil, err
	}
	totals := make(map[string]decimal.Decimal, len(customers))
	for _, o := range orders {
		totals[o.Customer.ID] = totals[o.Customer.ID].Add(o.TotalCost)
	}
	report := make([]CustomerSpend, 0, len(customers))
	for _, c := range customers {
		report = append(report, CustomerSpend{Customer: c, Total: totals[c.ID]})
	}
	sort.SliceStable(report, func(i, j int) bool {
		return report[i].Total.GreaterThan(report[j].Total)
	})
	return report, nil
}

func (s *Store) CustomerSpendingReport(ctx context.Context) (string, error) {
	spending, err := s.CustomerSpending(ctx)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("Customer Spending Report:")
	for _, entry := range spending {
		fmt.Fprintf(&b, "\n%s: $%s", entry.Customer.Name, entry.Total.StringFixed(2))
	}
	return b.String(), nil
}

// CustomerOrderHistory renders the customer's active orders in placement
// order, one block per order with its line items.
func (s *Store) CustomerOrderHistory(ctx context.Context, customerID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, err := s.directory.Customer(ctx, customerID)
	if err != nil {
		return "", err
	}
	orders, err := s.ledger.ByCustomer(ctx, customerID)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Order History for %s (ID: %s):\n", c.Name, c.ID)
	for _, o := range orders {
		items := make([]string, 0, len(o.Lines))
		for _, line := range o.Lines {
			items = append(items, fmt.Sprintf("%dx %s", line.Quantity, line.Product.Name))
		}
		fmt.Fprintf(&b, "\nOrder ID: %s\n", o.ID)
		fmt.Fprintf(&b, "Date: %s\n", o.OrderDate.Format("2006-01-02"))
		fmt.Fprintf(&b, "Total: $%s\n", o.TotalCost.StringFixed(2))
		fmt.Fprintf(&b, "Items: %s\n", strings.Join(items, ", "))
	}
	return b.String(), nil
}
