package memory

import (
	"context"
	"sort"
	"sync"

	"bnpl-risk-lab/internal/domain"
	"bnpl-risk-lab/internal/storage"
)

// InstallmentStore is an in-memory implementation of storage.InstallmentStore.
type InstallmentStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Installment
}

// NewInstallmentStore creates a new in-memory installment store.
func NewInstallmentStore() *InstallmentStore {
	return &InstallmentStore{data: make(map[string]*domain.Installment)}
}

var _ storage.InstallmentStore = (*InstallmentStore)(nil)

// InsertBulk adds multiple installments. Fails entire batch on duplicate.
func (s *InstallmentStore) InsertBulk(_ context.Context, installments []*domain.Installment) error {
	if len(installments) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batch := make(map[string]struct{}, len(installments))
	for _, inst := range installments {
		if inst == nil || inst.InstallmentID == "" {
			return storage.ErrInvalidInput
		}
		if _, exists := s.data[inst.InstallmentID]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batch[inst.InstallmentID]; exists {
			return storage.ErrDuplicateKey
		}
		batch[inst.InstallmentID] = struct{}{}
	}

	for _, inst := range installments {
		instCopy := *inst
		s.data[inst.InstallmentID] = &instCopy
	}
	return nil
}

// GetByUserID retrieves all installments for a user, ordered by installment_id ASC.
func (s *InstallmentStore) GetByUserID(_ context.Context, userID string) ([]*domain.Installment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Installment
	for _, inst := range s.data {
		if inst.UserID == userID {
			instCopy := *inst
			result = append(result, &instCopy)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].InstallmentID < result[j].InstallmentID })
	return result, nil
}

// GetAll retrieves all installments, ordered by installment_id ASC.
func (s *InstallmentStore) GetAll(_ context.Context) ([]*domain.Installment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Installment, 0, len(s.data))
	for _, inst := range s.data {
		instCopy := *inst
		result = append(result, &instCopy)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].InstallmentID < result[j].InstallmentID })
	return result, nil
}
