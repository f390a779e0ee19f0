package postgres

import (
	"context"
	"fmt"

	"crypto-tax-ledger/internal/domain"
	"crypto-tax-ledger/internal/storage"
)

// NotificationStore implements storage.NotificationStore using
// PostgreSQL.
type NotificationStore struct {
	pool *Pool
}

// NewNotificationStore creates a new NotificationStore.
func NewNotificationStore(pool *Pool) *NotificationStore {
	return &NotificationStore{pool: pool}
}

// Compile-time interface check.
var _ storage.NotificationStore = (*NotificationStore)(nil)

// Insert adds a new notification. Returns ErrDuplicateKey if the ID
// exists.
func (s *NotificationStore) Insert(ctx context.Context, n *domain.Notification) error {
	query := `
		INSERT INTO notifications (id, owner_id, title, message, level, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := s.pool.Exec(ctx, query, n.ID, n.OwnerID, n.Title, n.Message, n.Level, n.Read, n.CreatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// GetByOwnerID retrieves an owner's notifications, newest first.
func (s *NotificationStore) GetByOwnerID(ctx context.Context, ownerID string) ([]*domain.Notification, error) {
	query := `
		SELECT id, owner_id, title, message, level, read, created_at
		FROM notifications
		WHERE owner_id = $1
		ORDER BY created_at DESC, id ASC
	`

	rows, err := s.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get notifications by owner id: %w", err)
	}
	defer rows.Close()

	notifications := []*domain.Notification{}
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.OwnerID, &n.Title, &n.Message, &n.Level, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification row: %w", err)
		}
		notifications = append(notifications, &n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notification rows: %w", err)
	}

	return notifications, nil
}

// MarkRead marks one notification as read.
func (s *NotificationStore) MarkRead(ctx context.Context, ownerID, notificationID string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE notifications SET read = TRUE WHERE id = $1 AND owner_id = $2`,
		notificationID, ownerID,
	)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
