package memory

import (
	"context"
	"sort"
	"sync"

	"crypto-tax-ledger/internal/domain"
	"crypto-tax-ledger/internal/storage"
)

// TradeStore is an in-memory implementation of storage.TradeStore.
type TradeStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Trade // keyed by trade id
}

// NewTradeStore creates a new in-memory trade store.
func NewTradeStore() *TradeStore {
	return &TradeStore{
		data: make(map[string]*domain.Trade),
	}
}

// Insert adds a new trade. Returns ErrDuplicateKey if the ID exists.
func (s *TradeStore) Insert(_ context.Context, t *domain.Trade) error {
	if t == nil || t.ID == "" || t.OwnerID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[t.ID]; exists {
		return storage.ErrDuplicateKey
	}

	copy := *t
	s.data[t.ID] = &copy
	return nil
}

// Update replaces an existing trade owned by its owner.
func (s *TradeStore) Update(_ context.Context, t *domain.Trade) error {
	if t == nil || t.ID == "" || t.OwnerID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.data[t.ID]
	if !exists || existing.OwnerID != t.OwnerID {
		return storage.ErrNotFound
	}

	copy := *t
	s.data[t.ID] = &copy
	return nil
}

// Delete removes a trade scoped to an owner.
func (s *TradeStore) Delete(_ context.Context, ownerID, tradeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.data[tradeID]
	if !exists || existing.OwnerID != ownerID {
		return storage.ErrNotFound
	}

	delete(s.data, tradeID)
	return nil
}

// GetByID retrieves a trade scoped to an owner.
func (s *TradeStore) GetByID(_ context.Context, ownerID, tradeID string) (*domain.Trade, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, exists := s.data[tradeID]
	if !exists || t.OwnerID != ownerID {
		return nil, storage.ErrNotFound
	}

	copy := *t
	return &copy, nil
}

// GetByOwnerID retrieves an owner's full trade history ordered by
// executed_at ASC, with created_at then id as stable tie-breaks.
func (s *TradeStore) GetByOwnerID(_ context.Context, ownerID string) ([]*domain.Trade, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Trade
	for _, t := range s.data {
		if t.OwnerID == ownerID {
			copy := *t
			result = append(result, &copy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].ExecutedAt.Equal(result[j].ExecutedAt) {
			return result[i].ExecutedAt.Before(result[j].ExecutedAt)
		}
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}

var _ storage.TradeStore = (*TradeStore)(nil)
