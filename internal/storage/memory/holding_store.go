package memory

import (
	"context"
	"sort"
	"sync"

	"crypto-tax-ledger/internal/domain"
	"crypto-tax-ledger/internal/storage"
)

// HoldingStore is an in-memory implementation of storage.HoldingStore.
type HoldingStore struct {
	mu   sync.RWMutex
	data map[string][]*domain.Holding // keyed by owner id
}

// NewHoldingStore creates a new in-memory holding store.
func NewHoldingStore() *HoldingStore {
	return &HoldingStore{
		data: make(map[string][]*domain.Holding),
	}
}

// ReplaceForOwner atomically replaces the owner's entire snapshot.
func (s *HoldingStore) ReplaceForOwner(_ context.Context, ownerID string, holdings []*domain.Holding) error {
	if ownerID == "" {
		return storage.ErrInvalidInput
	}

	replacement := make([]*domain.Holding, 0, len(holdings))
	for _, h := range holdings {
		if h == nil {
			return storage.ErrInvalidInput
		}
		copy := *h
		replacement = append(replacement, &copy)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[ownerID] = replacement
	return nil
}

// GetByOwnerID retrieves the stored snapshot ordered by symbol ASC.
func (s *HoldingStore) GetByOwnerID(_ context.Context, ownerID string) ([]*domain.Holding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.data[ownerID]
	result := make([]*domain.Holding, 0, len(stored))
	for _, h := range stored {
		copy := *h
		result = append(result, &copy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Symbol < result[j].Symbol
	})

	return result, nil
}

var _ storage.HoldingStore = (*HoldingStore)(nil)
