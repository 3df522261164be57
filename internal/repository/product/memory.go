package product

import (
	"context"
	"io"
	"log"
	"time"

	"storeledger/internal/domain"
	"github.com/google/uuid"
)

type memoryRepo struct {
	logger *log.Logger
	byID   map[string]*domain.Product
	ids    []string
}

// NewMemory builds an in-memory Repository. Iteration follows insertion order
// so list queries stay deterministic.
func NewMemory(logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &memoryRepo{logger: logger, byID: make(map[string]*domain.Product)}
}

func (r *memoryRepo) Insert(_ context.Context, product domain.Product) (*domain.Product, error) {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	if _, exists := r.byID[product.ID]; exists {
		r.logger.Printf("product repo: insert id=%s duplicate", product.ID)
		return nil, domain.ErrDuplicateKey
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now().UTC()
	}
	stored := product
	r.byID[stored.ID] = &stored
	r.ids = append(r.ids, stored.ID)
	r.logger.Printf("product repo: inserted id=%s name=%s", stored.ID, stored.Name)
	return &stored, nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		r.logger.Printf("product repo: get id=%s not found", id)
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (r *memoryRepo) List(_ context.Context) ([]*domain.Product, error) {
	result := make([]*domain.Product, 0, len(r.ids))
	for _, id := range r.ids {
		result = append(result, r.byID[id])
	}
	r.logger.Printf("product repo: list count=%d", len(result))
	return result, nil
}
