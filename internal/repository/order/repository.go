package order

import (
	"context"

	"storeledger/internal/domain"
)

type Repository interface {
	Insert(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	Remove(ctx context.Context, id string) error
}
