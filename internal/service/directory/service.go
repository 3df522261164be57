package directory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"storeledger/internal/domain"
	customerrepo "storeledger/internal/repository/customer"
	"github.com/shopspring/decimal"
)

// Service owns customer records: contact updates, purchase history and
// loyalty queries.
type Service struct {
	repo customerrepo.Repository
}

func New(repo customerrepo.Repository) *Service {
	return &Service{repo: repo}
}

// AddInput carries the fields needed to register a customer.
type AddInput struct {
	ID          string
	Name        string
	Email       string
	PhoneNumber string
}

func (s *Service) Add(ctx context.Context, in AddInput) (*domain.Customer, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("customer name required: %w", domain.ErrInvalidArgument)
	}
	return s.repo.Insert(ctx, domain.Customer{
		ID:          strings.TrimSpace(in.ID),
		Name:        in.Name,
		Email:       strings.TrimSpace(strings.ToLower(in.Email)),
		PhoneNumber: in.PhoneNumber,
		Active:      true,
	})
}

func (s *Service) Customer(ctx context.Context, id string) (*domain.Customer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateEmail(ctx context.Context, id, email string) error {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	c.Email = strings.TrimSpace(strings.ToLower(email))
	return nil
}

// UpdatePhone requires exactly ten numeric digits.
func (s *Service) UpdatePhone(ctx context.Context, id, phone string) error {
	if !validPhone(phone) {
		return fmt.Errorf("phone number must be exactly 10 digits: %w", domain.ErrInvalidArgument)
	}
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	c.PhoneNumber = phone
	return nil
}

func (s *Service) Deactivate(ctx context.Context, id string) error {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	c.Active = false
	return nil
}

// RecordPurchase appends the order to the customer's history. Called by the
// order ledger, not by clients.
func (s *Service) RecordPurchase(ctx context.Context, id string, order *domain.Order) error {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	c.Purchases = append(c.Purchases, order)
	return nil
}

func (s *Service) List(ctx context.Context) ([]*domain.Customer, error) {
	return s.repo.List(ctx)
}

// ByLoyalty matches the computed tier case-insensitively.
func (s *Service) ByLoyalty(ctx context.Context, tier string) ([]*domain.Customer, error) {
	return s.filter(ctx, func(c *domain.Customer) bool {
		return strings.EqualFold(string(c.Tier()), tier)
	})
}

func (s *Service) Inactive(ctx context.Context) ([]*domain.Customer, error) {
	return s.filter(ctx, func(c *domain.Customer) bool { return !c.Active })
}

// PurchasedProduct lists customers whose history contains the product.
func (s *Service) PurchasedProduct(ctx context.Context, productID string) ([]*domain.Customer, error) {
	return s.filter(ctx, func(c *domain.Customer) bool { return c.HasPurchased(productID) })
}

// SpendingAbove lists customers whose total spend strictly exceeds threshold.
func (s *Service) SpendingAbove(ctx context.Context, threshold decimal.Decimal) ([]*domain.Customer, error) {
	return s.filter(ctx, func(c *domain.Customer) bool {
		return c.TotalSpent().GreaterThan(threshold)
	})
}

// RecentPurchases returns up to limit orders sorted by order date descending;
// equal dates keep their placement order.
func (s *Service) RecentPurchases(ctx context.Context, id string, limit int) ([]*domain.Order, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	recent := make([]*domain.Order, len(c.Purchases))
	copy(recent, c.Purchases)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].OrderDate.After(recent[j].OrderDate)
	})
	if limit >= 0 && limit < len(recent) {
		recent = recent[:limit]
	}
	return recent, nil
}

// HighestSpender returns the first customer with the maximum total spend in
// directory order, or ErrNotFound when the directory is empty.
func (s *Service) HighestSpender(ctx context.Context) (*domain.Customer, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(customers) == 0 {
		return nil, fmt.Errorf("no customers registered: %w", domain.ErrNotFound)
	}
	best := customers[0]
	bestSpend := best.TotalSpent()
	for _, c := range customers[1:] {
		if spend := c.TotalSpent(); spend.GreaterThan(bestSpend) {
			best, bestSpend = c, spend
		}
	}
	return best, nil
}

func (s *Service) filter(ctx context.Context, keep func(*domain.Customer) bool) ([]*domain.Customer, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*domain.Customer, 0)
	for _, c := range customers {
		if keep(c) {
			result = append(result, c)
		}
	}
	return result, nil
}

func validPhone(phone string) bool {
	if len(phone) != 10 {
		return false
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
