package catalog

import (
	"context"
	"fmt"
	"strings"

	"storeledger/internal/domain"
	productrepo "storeledger/internal/repository/product"
	"github.com/shopspring/decimal"
)

// Service owns product records: stocking, pricing and catalog queries.
type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

// AddInput carries the fields needed to register a product.
type AddInput struct {
	ID       string
	Name     string
	Price    decimal.Decimal
	Stock    int
	Category string
}

func (s *Service) Add(ctx context.Context, in AddInput) (*domain.Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("product name required: %w", domain.ErrInvalidArgument)
	}
	if in.Price.IsNegative() {
		return nil, fmt.Errorf("product price must not be negative: %w", domain.ErrInvalidArgument)
	}
	if in.Stock < 0 {
		return nil, fmt.Errorf("product stock must not be negative: %w", domain.ErrInvalidArgument)
	}
	return s.repo.Insert(ctx, domain.Product{
		ID:       strings.TrimSpace(in.ID),
		Name:     in.Name,
		Price:    in.Price,
		Stock:    in.Stock,
		Category: in.Category,
	})
}

func (s *Service) Product(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Restock(ctx context.Context, id string, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("restock quantity must not be negative: %w", domain.ErrInvalidArgument)
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	p.Stock += quantity
	return nil
}

// ConsumeStock reserves quantity units, failing without mutation when fewer
// are available. Order placement is the only caller.
func (s *Service) ConsumeStock(ctx context.Context, id string, quantity int) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.Stock < quantity {
		return fmt.Errorf("product %s has %d units, %d requested: %w", p.Name, p.Stock, quantity, domain.ErrInsufficientStock)
	}
	p.Stock -= quantity
	return nil
}

// RestoreStock returns quantity units to the shelf; the inverse of
// ConsumeStock, used by order cancellation.
func (s *Service) RestoreStock(ctx context.Context, id string, quantity int) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	p.Stock += quantity
	return nil
}

// ApplyDiscount reprices a single product to round(price * (1 - pct/100), 2).
// The first discount records the original price so on-sale checks work.
func (s *Service) ApplyDiscount(ctx context.Context, id string, percentage float64) (*domain.Product, error) {
	if err := validPercentage(percentage); err != nil {
		return nil, err
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	discount(p, percentage)
	return p, nil
}

// ApplyCategoryDiscount reprices every product in the category
// (case-insensitive) and reports how many were touched.
func (s *Service) ApplyCategoryDiscount(ctx context.Context, category string, percentage float64) (int, error) {
	if err := validPercentage(percentage); err != nil {
		return 0, err
	}
	matched, err := s.ByCategory(ctx, category)
	if err != nil {
		return 0, err
	}
	if len(matched) == 0 {
		return 0, fmt.Errorf("no products in category %q: %w", category, domain.ErrNotFound)
	}
	for _, p := range matched {
		discount(p, percentage)
	}
	return len(matched), nil
}

func (s *Service) MarkFeatured(ctx context.Context, id string) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	p.Featured = true
	return nil
}

func (s *Service) List(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) ByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	return s.filter(ctx, func(p *domain.Product) bool {
		return strings.EqualFold(p.Category, category)
	})
}

func (s *Service) OutOfStock(ctx context.Context) ([]*domain.Product, error) {
	return s.filter(ctx, func(p *domain.Product) bool { return p.Stock == 0 })
}

func (s *Service) Featured(ctx context.Context) ([]*domain.Product, error) {
	return s.filter(ctx, func(p *domain.Product) bool { return p.Featured })
}

func (s *Service) OnSale(ctx context.Context) ([]*domain.Product, error) {
	return s.filter(ctx, func(p *domain.Product) bool { return p.OnSale() })
}

func (s *Service) StockValue(ctx context.Context, id string) (decimal.Decimal, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}
	return p.StockValue(), nil
}

// InventoryValue sums price * stock across the whole catalog.
func (s *Service) InventoryValue(ctx context.Context) (decimal.Decimal, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.StockValue())
	}
	return total, nil
}

func (s *Service) filter(ctx context.Context, keep func(*domain.Product) bool) ([]*domain.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*domain.Product, 0)
	for _, p := range products {
		if keep(p) {
			result = append(result, p)
		}
	}
	return result, nil
}

func validPercentage(percentage float64) error {
	if percentage < 0 || percentage > 100 {
		return fmt.Errorf("discount percentage %.2f out of range [0,100]: %w", percentage, domain.ErrInvalidArgument)
	}
	return nil
}

func discount(p *domain.Product, percentage float64) {
	if !p.OriginalPrice.IsPositive() {
		p.OriginalPrice = p.Price
	}
	p.Price = discountedAmount(p.Price, percentage)
}

func discountedAmount(amount decimal.Decimal, percentage float64) decimal.Decimal {
	factor := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(percentage).Div(decimal.NewFromInt(100)))
	return amount.Mul(factor).Round(2)
}
