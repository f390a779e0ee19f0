package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"crypto-tax-ledger/internal/domain"
	"crypto-tax-ledger/internal/storage"
)

func testNotification(id, ownerID string, createdAt time.Time) *domain.Notification {
	return &domain.Notification{
		ID:        id,
		OwnerID:   ownerID,
		Title:     "Trade recorded",
		Message:   "BUY 1 BTC @ 30000",
		Level:     domain.NotificationLevelInfo,
		CreatedAt: createdAt,
	}
}

func TestNotificationStore_InsertAndGet(t *testing.T) {
	store := NewNotificationStore()
	ctx := context.Background()

	if err := store.Insert(ctx, testNotification("n1", "owner-1", time.Now())); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	notifications, err := store.GetByOwnerID(ctx, "owner-1")
	if err != nil {
		t.Fatalf("GetByOwnerID failed: %v", err)
	}
	if len(notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifications))
	}
	if notifications[0].Read {
		t.Error("new notification should be unread")
	}
}

func TestNotificationStore_DuplicateKey(t *testing.T) {
	store := NewNotificationStore()
	ctx := context.Background()

	n := testNotification("n1", "owner-1", time.Now())
	if err := store.Insert(ctx, n); err != nil {
		t.Fatalf("First insert failed: %v", err)
	}
	if err := store.Insert(ctx, n); !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("Expected ErrDuplicateKey, got %v", err)
	}
}

func TestNotificationStore_NewestFirst(t *testing.T) {
	store := NewNotificationStore()
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, n := range []*domain.Notification{
		testNotification("n1", "owner-1", base),
		testNotification("n3", "owner-1", base.AddDate(0, 0, 2)),
		testNotification("n2", "owner-1", base.AddDate(0, 0, 1)),
	} {
		if err := store.Insert(ctx, n); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	notifications, err := store.GetByOwnerID(ctx, "owner-1")
	if err != nil {
		t.Fatalf("GetByOwnerID failed: %v", err)
	}

	for i, want := range []string{"n3", "n2", "n1"} {
		if notifications[i].ID != want {
			t.Errorf("notification %d = %q, want %q", i, notifications[i].ID, want)
		}
	}
}

func TestNotificationStore_MarkRead(t *testing.T) {
	store := NewNotificationStore()
	ctx := context.Background()

	if err := store.Insert(ctx, testNotification("n1", "owner-1", time.Now())); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	if err := store.MarkRead(ctx, "owner-2", "n1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for foreign owner, got %v", err)
	}

	if err := store.MarkRead(ctx, "owner-1", "n1"); err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}

	notifications, _ := store.GetByOwnerID(ctx, "owner-1")
	if !notifications[0].Read {
		t.Error("notification should be marked read")
	}
}
