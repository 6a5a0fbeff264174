// Package memory provides in-memory store implementations, used by unit
// tests and file-only runs.
package memory

import (
	"context"
	"sort"
	"sync"

	"bnpl-risk-lab/internal/domain"
	"bnpl-risk-lab/internal/storage"
)

// UserStore is an in-memory implementation of storage.UserStore.
type UserStore struct {
	mu   sync.RWMutex
	data map[string]*domain.User
}

// NewUserStore creates a new in-memory user store.
func NewUserStore() *UserStore {
	return &UserStore{data: make(map[string]*domain.User)}
}

var _ storage.UserStore = (*UserStore)(nil)

// InsertBulk adds multiple users. Fails entire batch on duplicate.
func (s *UserStore) InsertBulk(_ context.Context, users []*domain.User) error {
	if len(users) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batch := make(map[string]struct{}, len(users))
	for _, u := range users {
		if u == nil || u.UserID == "" {
			return storage.ErrInvalidInput
		}
		if _, exists := s.data[u.UserID]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batch[u.UserID]; exists {
			return storage.ErrDuplicateKey
		}
		batch[u.UserID] = struct{}{}
	}

	for _, u := range users {
		userCopy := *u
		s.data[u.UserID] = &userCopy
	}
	return nil
}

// GetByID retrieves a user. Returns ErrNotFound if not exists.
func (s *UserStore) GetByID(_ context.Context, userID string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.data[userID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	userCopy := *u
	return &userCopy, nil
}

// GetAll retrieves all users, ordered by user_id ASC.
func (s *UserStore) GetAll(_ context.Context) ([]*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.User, 0, len(s.data))
	for _, u := range s.data {
		userCopy := *u
		result = append(result, &userCopy)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UserID < result[j].UserID })
	return result, nil
}
