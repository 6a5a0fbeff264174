package memory

import (
	"context"
	"sort"
	"sync"

	"bnpl-risk-lab/internal/domain"
	"bnpl-risk-lab/internal/storage"
)

// FeatureRowStore is an in-memory implementation of storage.FeatureRowStore.
type FeatureRowStore struct {
	mu   sync.RWMutex
	data map[string]*domain.FeatureRow
}

// NewFeatureRowStore creates a new in-memory feature row store.
func NewFeatureRowStore() *FeatureRowStore {
	return &FeatureRowStore{data: make(map[string]*domain.FeatureRow)}
}

var _ storage.FeatureRowStore = (*FeatureRowStore)(nil)

// InsertBulk adds multiple feature rows. Fails entire batch on duplicate row_id.
func (s *FeatureRowStore) InsertBulk(_ context.Context, rows []*domain.FeatureRow) error {
	if len(rows) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batch := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		if r == nil || r.RowID == "" {
			return storage.ErrInvalidInput
		}
		if _, exists := s.data[r.RowID]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batch[r.RowID]; exists {
			return storage.ErrDuplicateKey
		}
		batch[r.RowID] = struct{}{}
	}

	for _, r := range rows {
		rowCopy := *r
		s.data[r.RowID] = &rowCopy
	}
	return nil
}

// GetByRunID retrieves all rows produced by one build, ordered by installment_id ASC.
func (s *FeatureRowStore) GetByRunID(_ context.Context, runID string) ([]*domain.FeatureRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.FeatureRow
	for _, r := range s.data {
		if r.RunID == runID {
			rowCopy := *r
			result = append(result, &rowCopy)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].InstallmentID < result[j].InstallmentID })
	return result, nil
}

// GetByCohort retrieves all rows of one cohort, ordered by installment_id ASC.
func (s *FeatureRowStore) GetByCohort(_ context.Context, c domain.Cohort) ([]*domain.FeatureRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.FeatureRow
	for _, r := range s.data {
		if r.Cohort == c {
			rowCopy := *r
			result = append(result, &rowCopy)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].InstallmentID < result[j].InstallmentID })
	return result, nil
}
