package product

import (
	"context"

	"storeledger/internal/domain"
)

type Repository interface {
	Insert(ctx context.Context, product domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
}
