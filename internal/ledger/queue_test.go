package ledger

import (
	"testing"
	"time"
)

func TestLotQueue_ConsumePartialKeepsLot(t *testing.T) {
	q := &lotQueue{}
	acquired := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	q.enqueue(10, 3, acquired)

	price, at, consumed := q.consume(2)

	if consumed != 2 {
		t.Errorf("consumed = %v, want 2", consumed)
	}
	if price != 10 {
		t.Errorf("price = %v, want 10", price)
	}
	if !at.Equal(acquired) {
		t.Errorf("acquiredAt = %v, want %v", at, acquired)
	}
	if q.empty() {
		t.Fatal("queue should keep the partially consumed lot")
	}
	if got := q.lots[0].remaining; got != 1 {
		t.Errorf("remaining = %v, want 1", got)
	}
}

func TestLotQueue_ConsumeNeverExceedsHeadLot(t *testing.T) {
	q := &lotQueue{}
	day0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	q.enqueue(10, 1, day0)
	q.enqueue(20, 5, day0.AddDate(0, 0, 1))

	// Requesting 4 only drains the head lot; the second lot is a
	// separate consumption.
	price, _, consumed := q.consume(4)

	if consumed != 1 {
		t.Errorf("consumed = %v, want 1 (head lot size)", consumed)
	}
	if price != 10 {
		t.Errorf("price = %v, want 10 (oldest lot first)", price)
	}
	if q.empty() {
		t.Fatal("second lot should still be queued")
	}
	if got := q.lots[0].price; got != 20 {
		t.Errorf("new head price = %v, want 20", got)
	}
}

func TestLotQueue_FullyConsumedLotIsRemoved(t *testing.T) {
	q := &lotQueue{}
	q.enqueue(10, 2, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	_, _, consumed := q.consume(2)

	if consumed != 2 {
		t.Errorf("consumed = %v, want 2", consumed)
	}
	if !q.empty() {
		t.Error("queue should be empty after the lot is fully consumed")
	}
}
