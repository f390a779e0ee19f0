package storage

import (
	"context"

	"crypto-tax-ledger/internal/domain"
)

// TradeStore provides access to the trade history.
type TradeStore interface {
	// Insert adds a new trade. Returns ErrDuplicateKey if the ID exists.
	Insert(ctx context.Context, t *domain.Trade) error

	// Update replaces an existing trade owned by its owner.
	// Returns ErrNotFound if the trade does not exist for that owner.
	Update(ctx context.Context, t *domain.Trade) error

	// Delete removes a trade scoped to an owner. Returns ErrNotFound
	// if the trade does not exist for that owner.
	Delete(ctx context.Context, ownerID, tradeID string) error

	// GetByID retrieves a trade scoped to an owner. Returns
	// ErrNotFound if not exists.
	GetByID(ctx context.Context, ownerID, tradeID string) (*domain.Trade, error)

	// GetByOwnerID retrieves an owner's full trade history ordered by
	// executed_at ASC, with created_at then id as stable tie-breaks.
	GetByOwnerID(ctx context.Context, ownerID string) ([]*domain.Trade, error)
}

// HoldingStore provides access to the derived holdings snapshot.
type HoldingStore interface {
	// ReplaceForOwner atomically replaces the owner's entire snapshot
	// with the given holdings. The previous snapshot is discarded even
	// when the new one is empty.
	ReplaceForOwner(ctx context.Context, ownerID string, holdings []*domain.Holding) error

	// GetByOwnerID retrieves the stored snapshot ordered by symbol ASC.
	GetByOwnerID(ctx context.Context, ownerID string) ([]*domain.Holding, error)
}

// NotificationStore provides access to portfolio notifications.
type NotificationStore interface {
	// Insert adds a new notification. Returns ErrDuplicateKey if the
	// ID exists.
	Insert(ctx context.Context, n *domain.Notification) error

	// GetByOwnerID retrieves an owner's notifications, newest first.
	GetByOwnerID(ctx context.Context, ownerID string) ([]*domain.Notification, error)

	// MarkRead marks one notification as read. Returns ErrNotFound if
	// the notification does not exist for that owner.
	MarkRead(ctx context.Context, ownerID, notificationID string) error
}
