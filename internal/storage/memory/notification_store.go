package memory

import (
	"context"
	"sort"
	"sync"

	"crypto-tax-ledger/internal/domain"
	"crypto-tax-ledger/internal/storage"
)

// NotificationStore is an in-memory implementation of
// storage.NotificationStore.
type NotificationStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Notification // keyed by notification id
}

// NewNotificationStore creates a new in-memory notification store.
func NewNotificationStore() *NotificationStore {
	return &NotificationStore{
		data: make(map[string]*domain.Notification),
	}
}

// Insert adds a new notification. Returns ErrDuplicateKey if the ID
// exists.
func (s *NotificationStore) Insert(_ context.Context, n *domain.Notification) error {
	if n == nil || n.ID == "" || n.OwnerID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[n.ID]; exists {
		return storage.ErrDuplicateKey
	}

	copy := *n
	s.data[n.ID] = &copy
	return nil
}

// GetByOwnerID retrieves an owner's notifications, newest first.
func (s *NotificationStore) GetByOwnerID(_ context.Context, ownerID string) ([]*domain.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Notification
	for _, n := range s.data {
		if n.OwnerID == ownerID {
			copy := *n
			result = append(result, &copy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}

// MarkRead marks one notification as read.
func (s *NotificationStore) MarkRead(_ context.Context, ownerID, notificationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, exists := s.data[notificationID]
	if !exists || n.OwnerID != ownerID {
		return storage.ErrNotFound
	}

	n.Read = true
	return nil
}

var _ storage.NotificationStore = (*NotificationStore)(nil)
