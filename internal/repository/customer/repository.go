package customer

import (
	"context"

	"storeledger/internal/domain"
)

type Repository interface {
	Insert(ctx context.Context, customer domain.Customer) (*domain.Customer, error)
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	List(ctx context.Context) ([]*domain.Customer, error)
}
