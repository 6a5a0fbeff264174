package memory

import (
	"context"
	"sort"
	"sync"

	"bnpl-risk-lab/internal/domain"
	"bnpl-risk-lab/internal/storage"
)

// RefundStore is an in-memory implementation of storage.RefundStore.
type RefundStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Refund
}

// NewRefundStore creates a new in-memory refund store.
func NewRefundStore() *RefundStore {
	return &RefundStore{data: make(map[string]*domain.Refund)}
}

var _ storage.RefundStore = (*RefundStore)(nil)

// InsertBulk adds multiple refunds. Fails entire batch on duplicate.
func (s *RefundStore) InsertBulk(_ context.Context, refunds []*domain.Refund) error {
	if len(refunds) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batch := make(map[string]struct{}, len(refunds))
	for _, r := range refunds {
		if r == nil || r.RefundID == "" {
			return storage.ErrInvalidInput
		}
		if _, exists := s.data[r.RefundID]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batch[r.RefundID]; exists {
			return storage.ErrDuplicateKey
		}
		batch[r.RefundID] = struct{}{}
	}

	for _, r := range refunds {
		refundCopy := *r
		s.data[r.RefundID] = &refundCopy
	}
	return nil
}

// GetAll retrieves all refunds, ordered by refund_id ASC.
func (s *RefundStore) GetAll(_ context.Context) ([]*domain.Refund, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Refund, 0, len(s.data))
	for _, r := range s.data {
		refundCopy := *r
		result = append(result, &refundCopy)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].RefundID < result[j].RefundID })
	return result, nil
}
