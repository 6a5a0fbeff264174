package memory

import (
	"context"
	"sort"
	"sync"

	"bnpl-risk-lab/internal/domain"
	"bnpl-risk-lab/internal/storage"
)

// CheckoutEventStore is an in-memory implementation of storage.CheckoutEventStore.
type CheckoutEventStore struct {
	mu   sync.RWMutex
	data map[string]*domain.CheckoutEvent
}

// NewCheckoutEventStore creates a new in-memory checkout event store.
func NewCheckoutEventStore() *CheckoutEventStore {
	return &CheckoutEventStore{data: make(map[string]*domain.CheckoutEvent)}
}

var _ storage.CheckoutEventStore = (*CheckoutEventStore)(nil)

// InsertBulk adds multiple checkout events. Fails entire batch on duplicate.
func (s *CheckoutEventStore) InsertBulk(_ context.Context, events []*domain.CheckoutEvent) error {
	if len(events) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batch := make(map[string]struct{}, len(events))
	for _, e := range events {
		if e == nil || e.EventID == "" {
			return storage.ErrInvalidInput
		}
		if _, exists := s.data[e.EventID]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batch[e.EventID]; exists {
			return storage.ErrDuplicateKey
		}
		batch[e.EventID] = struct{}{}
	}

	for _, e := range events {
		eventCopy := *e
		s.data[e.EventID] = &eventCopy
	}
	return nil
}

// GetAll retrieves all checkout events, ordered by event_id ASC.
func (s *CheckoutEventStore) GetAll(_ context.Context) ([]*domain.CheckoutEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.CheckoutEvent, 0, len(s.data))
	for _, e := range s.data {
		eventCopy := *e
		result = append(result, &eventCopy)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].EventID < result[j].EventID })
	return result, nil
}
