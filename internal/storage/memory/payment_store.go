package memory

import (
	"context"
	"sort"
	"sync"

	"bnpl-risk-lab/internal/domain"
	"bnpl-risk-lab/internal/storage"
)

// PaymentStore is an in-memory implementation of storage.PaymentStore.
type PaymentStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Payment
}

// NewPaymentStore creates a new in-memory payment store.
func NewPaymentStore() *PaymentStore {
	return &PaymentStore{data: make(map[string]*domain.Payment)}
}

var _ storage.PaymentStore = (*PaymentStore)(nil)

// InsertBulk adds multiple payments. Fails entire batch on duplicate.
func (s *PaymentStore) InsertBulk(_ context.Context, payments []*domain.Payment) error {
	if len(payments) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batch := make(map[string]struct{}, len(payments))
	for _, p := range payments {
		if p == nil || p.PaymentID == "" {
			return storage.ErrInvalidInput
		}
		if _, exists := s.data[p.PaymentID]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batch[p.PaymentID]; exists {
			return storage.ErrDuplicateKey
		}
		batch[p.PaymentID] = struct{}{}
	}

	for _, p := range payments {
		paymentCopy := *p
		s.data[p.PaymentID] = &paymentCopy
	}
	return nil
}

// GetAll retrieves all payments, ordered by payment_id ASC.
func (s *PaymentStore) GetAll(_ context.Context) ([]*domain.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Payment, 0, len(s.data))
	for _, p := range s.data {
		paymentCopy := *p
		result = append(result, &paymentCopy)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].PaymentID < result[j].PaymentID })
	return result, nil
}
