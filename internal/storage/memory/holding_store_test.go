package memory

import (
	"context"
	"testing"

	"crypto-tax-ledger/internal/domain"
)

func TestHoldingStore_ReplaceAndGet(t *testing.T) {
	store := NewHoldingStore()
	ctx := context.Background()

	err := store.ReplaceForOwner(ctx, "owner-1", []*domain.Holding{
		{OwnerID: "owner-1", Symbol: "ETH", Quantity: 2, AvgPrice: 2000},
		{OwnerID: "owner-1", Symbol: "BTC", Quantity: 0.5, AvgPrice: 40000},
	})
	if err != nil {
		t.Fatalf("ReplaceForOwner failed: %v", err)
	}

	holdings, err := store.GetByOwnerID(ctx, "owner-1")
	if err != nil {
		t.Fatalf("GetByOwnerID failed: %v", err)
	}

	if len(holdings) != 2 {
		t.Fatalf("expected 2 holdings, got %d", len(holdings))
	}
	if holdings[0].Symbol != "BTC" || holdings[1].Symbol != "ETH" {
		t.Errorf("holdings not sorted by symbol: %q, %q", holdings[0].Symbol, holdings[1].Symbol)
	}
}

func TestHoldingStore_ReplaceDiscardsPrevious(t *testing.T) {
	store := NewHoldingStore()
	ctx := context.Background()

	first := []*domain.Holding{
		{OwnerID: "owner-1", Symbol: "BTC", Quantity: 1, AvgPrice: 30000},
		{OwnerID: "owner-1", Symbol: "ETH", Quantity: 5, AvgPrice: 1800},
	}
	if err := store.ReplaceForOwner(ctx, "owner-1", first); err != nil {
		t.Fatalf("ReplaceForOwner failed: %v", err)
	}

	second := []*domain.Holding{
		{OwnerID: "owner-1", Symbol: "SOL", Quantity: 10, AvgPrice: 150},
	}
	if err := store.ReplaceForOwner(ctx, "owner-1", second); err != nil {
		t.Fatalf("ReplaceForOwner failed: %v", err)
	}

	holdings, err := store.GetByOwnerID(ctx, "owner-1")
	if err != nil {
		t.Fatalf("GetByOwnerID failed: %v", err)
	}

	if len(holdings) != 1 || holdings[0].Symbol != "SOL" {
		t.Errorf("expected replacement snapshot [SOL], got %+v", holdings)
	}
}

func TestHoldingStore_ReplaceWithEmpty(t *testing.T) {
	store := NewHoldingStore()
	ctx := context.Background()

	if err := store.ReplaceForOwner(ctx, "owner-1", []*domain.Holding{
		{OwnerID: "owner-1", Symbol: "BTC", Quantity: 1, AvgPrice: 30000},
	}); err != nil {
		t.Fatalf("ReplaceForOwner failed: %v", err)
	}
	if err := store.ReplaceForOwner(ctx, "owner-1", nil); err != nil {
		t.Fatalf("ReplaceForOwner with empty snapshot failed: %v", err)
	}

	holdings, err := store.GetByOwnerID(ctx, "owner-1")
	if err != nil {
		t.Fatalf("GetByOwnerID failed: %v", err)
	}
	if len(holdings) != 0 {
		t.Errorf("expected empty snapshot, got %d holdings", len(holdings))
	}
}

func TestHoldingStore_OwnersIsolated(t *testing.T) {
	store := NewHoldingStore()
	ctx := context.Background()

	if err := store.ReplaceForOwner(ctx, "owner-1", []*domain.Holding{
		{OwnerID: "owner-1", Symbol: "BTC", Quantity: 1, AvgPrice: 30000},
	}); err != nil {
		t.Fatalf("ReplaceForOwner failed: %v", err)
	}

	holdings, err := store.GetByOwnerID(ctx, "owner-2")
	if err != nil {
		t.Fatalf("GetByOwnerID failed: %v", err)
	}
	if len(holdings) != 0 {
		t.Errorf("expected no holdings for other owner, got %d", len(holdings))
	}
}

func TestHoldingStore_CopiesOnRead(t *testing.T) {
	store := NewHoldingStore()
	ctx := context.Background()

	if err := store.ReplaceForOwner(ctx, "owner-1", []*domain.Holding{
		{OwnerID: "owner-1", Symbol: "BTC", Quantity: 1, AvgPrice: 30000},
	}); err != nil {
		t.Fatalf("ReplaceForOwner failed: %v", err)
	}

	holdings, _ := store.GetByOwnerID(ctx, "owner-1")
	holdings[0].Quantity = 99

	again, _ := store.GetByOwnerID(ctx, "owner-1")
	if again[0].Quantity != 1 {
		t.Errorf("stored snapshot mutated through returned copy: quantity = %v", again[0].Quantity)
	}
}
