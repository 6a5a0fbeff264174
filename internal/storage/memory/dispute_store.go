package memory

import (
	"context"
	"sort"
	"sync"

	"bnpl-risk-lab/internal/domain"
	"bnpl-risk-lab/internal/storage"
)

// DisputeStore is an in-memory implementation of storage.DisputeStore.
type DisputeStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Dispute
}

// NewDisputeStore creates a new in-memory dispute store.
func NewDisputeStore() *DisputeStore {
	return &DisputeStore{data: make(map[string]*domain.Dispute)}
}

var _ storage.DisputeStore = (*DisputeStore)(nil)

// InsertBulk adds multiple disputes. Fails entire batch on duplicate.
func (s *DisputeStore) InsertBulk(_ context.Context, disputes []*domain.Dispute) error {
	if len(disputes) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batch := make(map[string]struct{}, len(disputes))
	for _, d := range disputes {
		if d == nil || d.DisputeID == "" {
			return storage.ErrInvalidInput
		}
		if _, exists := s.data[d.DisputeID]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batch[d.DisputeID]; exists {
			return storage.ErrDuplicateKey
		}
		batch[d.DisputeID] = struct{}{}
	}

	for _, d := range disputes {
		disputeCopy := *d
		s.data[d.DisputeID] = &disputeCopy
	}
	return nil
}

// GetAll retrieves all disputes, ordered by dispute_id ASC.
func (s *DisputeStore) GetAll(_ context.Context) ([]*domain.Dispute, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Dispute, 0, len(s.data))
	for _, d := range s.data {
		disputeCopy := *d
		result = append(result, &disputeCopy)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DisputeID < result[j].DisputeID })
	return result, nil
}
