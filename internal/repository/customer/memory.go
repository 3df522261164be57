package customer

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
	byID   map[string]*domain.Customer
	ids    []string
}

// NewMemory builds an in-memory Repository with insertion-ordered iteration.
func NewMemory(logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &memoryRepo{logger: logger, byID: make(map[string]*domain.Customer)}
}

func (r *memoryRepo) Insert(_ context.Context, customer domain.Customer) (*domain.Customer, error) {
	if customer.ID == "" {
		customer.ID = uuid.NewString()
	}
	if _, exists := r.byID[customer.ID]; exists {
		r.logger.Printf("customer repo: insert id=%s duplicate", customer.ID)
		return nil, domain.ErrDuplicateKey
	}
	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = time.Now().UTC()
	}
	stored := customer
	r.byID[stored.ID] = &stored
	r.ids = append(r.ids, stored.ID)
	r.logger.Printf("customer repo: inserted id=%s name=%s", stored.ID, stored.Name)
	return &stored, nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	c, ok := r.byID[id]
	if !ok {
		r.logger.Printf("customer repo: get id=%s not found", id)
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (r *memoryRepo) List(_ context.Context) ([]*domain.Customer, error) {
	result := make([]*domain.Customer, 0, len(r.ids))
	for _, id := range r.ids {
		result = append(result, r.byID[id])
	}
	return result, nil
}
