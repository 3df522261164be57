package order

import (
	"context"
	"io"
	"log"
	"time"

	"storeledger/internal/domain"
)

type memoryRepo struct {
	logger *log.Logger
	byID   map[string]*domain.Order
	ids    []string
}

// NewMemory builds an in-memory Repository. Unlike products and customers,
// orders are stored by pointer: the same record is linked from the owning
// customer's purchase history.
func NewMemory(logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &memoryRepo{logger: logger, byID: make(map[string]*domain.Order)}
}

func (r *memoryRepo) Insert(_ context.Context, order *domain.Order) error {
	if _, exists := r.byID[order.ID]; exists {
		r.logger.Printf("order repo: insert id=%s duplicate", order.ID)
		return domain.ErrDuplicateKey
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	r.byID[order.ID] = order
	r.ids = append(r.ids, order.ID)
	r.logger.Printf("order repo: inserted id=%s lines=%d", order.ID, len(order.Lines))
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	o, ok := r.byID[id]
	if !ok {
		r.logger.Printf("order repo: get id=%s not found", id)
		return nil, domain.ErrNotFound
	}
	return o, nil
}

func (r *memoryRepo) List(_ context.Context) ([]*domain.Order, error) {
	result := make([]*domain.Order, 0, len(r.ids))
	for _, id := range r.ids {
		result = append(result, r.byID[id])
	}
	return result, nil
}

func (r *memoryRepo) Remove(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	for i, existing := range r.ids {
		if existing == id {
			r.ids = append(r.ids[:i], r.ids[i+1:]...)
			break
		}
	}
	r.logger.Printf("order repo: removed id=%s", id)
	return nil
}
