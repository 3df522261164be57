package seed

import (
	"context"
	"fmt"

	catalogsvc "storeledger/internal/service/catalog"
	directorysvc "storeledger/internal/service/directory"
	"github.com/shopspring/decimal"
)

type productSeed struct {
	ID       string
	Name     string
	Price    decimal.Decimal
	Stock    int
	Category string
}

type customerSeed struct {
	ID    string
	Name  string
	Email string
	Phone string
}

// Apply inserts demo data for manual testing.
func Apply(ctx context.Context, catalog *catalogsvc.Service, directory *directorysvc.Service) error {
	products := []productSeed{
		{ID: "P1", Name: "Laptop", Price: decimal.NewFromInt(1000), Stock: 10, Category: "Electronics"},
		{ID: "P2", Name: "Phone", Price: decimal.NewFromInt(500), Stock: 20, Category: "Electronics"},
		{ID: "P3", Name: "Table", Price: decimal.NewFromInt(150), Stock: 5, Category: "Furniture"},
	}
	for _, p := range products {
		_, err := catalog.Add(ctx, catalogsvc.AddInput{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price,
			Stock:    p.Stock,
			Category: p.Category,
		})
		if err != nil {
			return fmt.Errorf("seed product %s: %w", p.Name, err)
		}
	}

	customers := []customerSeed{
		{ID: "C1", Name: "Alice", Email: "alice@example.com", Phone: "5550001111"},
		{ID: "C2", Name: "Bob", Email: "bob@example.com", Phone: "5550002222"},
	}
	for _, c := range customers {
		_, err := directory.Add(ctx, directorysvc.AddInput{
			ID:          c.ID,
			Name:        c.Name,
			Email:       c.Email,
			PhoneNumber: c.Phone,
		})
		if err != nil {
			return fmt.Errorf("seed customer %s: %w", c.Name, err)
		}
	}
	return nil
}
