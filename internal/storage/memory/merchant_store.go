package memory

import (
	"context"
	"sort"
	"sync"

	"bnpl-risk-lab/internal/domain"
	"bnpl-risk-lab/internal/storage"
)

// MerchantStore is an in-memory implementation of storage.MerchantStore.
type MerchantStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Merchant
}

// NewMerchantStore creates a new in-memory merchant store.
func NewMerchantStore() *MerchantStore {
	return &MerchantStore{data: make(map[string]*domain.Merchant)}
}

var _ storage.MerchantStore = (*MerchantStore)(nil)

// InsertBulk adds multiple merchants. Fails entire batch on duplicate.
func (s *MerchantStore) InsertBulk(_ context.Context, merchants []*domain.Merchant) error {
	if len(merchants) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batch := make(map[string]struct{}, len(merchants))
	for _, m := range merchants {
		if m == nil || m.MerchantID == "" {
			return storage.ErrInvalidInput
		}
		if _, exists := s.data[m.MerchantID]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batch[m.MerchantID]; exists {
			return storage.ErrDuplicateKey
		}
		batch[m.MerchantID] = struct{}{}
	}

	for _, m := range merchants {
		merchantCopy := *m
		s.data[m.MerchantID] = &merchantCopy
	}
	return nil
}

// GetByID retrieves a merchant. Returns ErrNotFound if not exists.
func (s *MerchantStore) GetByID(_ context.Context, merchantID string) (*domain.Merchant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.data[merchantID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	merchantCopy := *m
	return &merchantCopy, nil
}

// GetAll retrieves all merchants, ordered by merchant_id ASC.
func (s *MerchantStore) GetAll(_ context.Context) ([]*domain.Merchant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Merchant, 0, len(s.data))
	for _, m := range s.data {
		merchantCopy := *m
		result = append(result, &merchantCopy)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].MerchantID < result[j].MerchantID })
	return result, nil
}
