package memory

import (
	"context"
	"sort"
	"sync"

	"bnpl-risk-lab/internal/domain"
	"bnpl-risk-lab/internal/storage"
)

// OrderStore is an in-memory implementation of storage.OrderStore.
type OrderStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Order
}

// NewOrderStore creates a new in-memory order store.
func NewOrderStore() *OrderStore {
	return &OrderStore{data: make(map[string]*domain.Order)}
}

var _ storage.OrderStore = (*OrderStore)(nil)

// InsertBulk adds multiple orders. Fails entire batch on duplicate.
func (s *OrderStore) InsertBulk(_ context.Context, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batch := make(map[string]struct{}, len(orders))
	for _, o := range orders {
		if o == nil || o.OrderID == "" {
			return storage.ErrInvalidInput
		}
		if _, exists := s.data[o.OrderID]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batch[o.OrderID]; exists {
			return storage.ErrDuplicateKey
		}
		batch[o.OrderID] = struct{}{}
	}

	for _, o := range orders {
		orderCopy := *o
		s.data[o.OrderID] = &orderCopy
	}
	return nil
}

// GetByUserID retrieves all orders for a user, ordered by order_id ASC.
func (s *OrderStore) GetByUserID(_ context.Context, userID string) ([]*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Order
	for _, o := range s.data {
		if o.UserID == userID {
			orderCopy := *o
			result = append(result, &orderCopy)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].OrderID < result[j].OrderID })
	return result, nil
}

// GetAll retrieves all orders, ordered by order_id ASC.
func (s *OrderStore) GetAll(_ context.Context) ([]*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Order, 0, len(s.data))
	for _, o := range s.data {
		orderCopy := *o
		result = append(result, &orderCopy)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].OrderID < result[j].OrderID })
	return result, nil
}
