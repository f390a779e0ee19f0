package ledger

import (
	"math"
	"time"
)

// lot is one open purchase: price per unit, remaining quantity, and
// acquisition time.
type lot struct {
	price      float64
	remaining  float64
	acquiredAt time.Time
}

// lotQueue holds the open lots of a single asset in acquisition order.
// The oldest lot is always consumed first; lots are never reordered
// once enqueued. A queue lives for exactly one replay pass.
type lotQueue struct {
	lots []lot
}

// enqueue appends a new lot at the tail.
func (q *lotQueue) enqueue(price, quantity float64, acquiredAt time.Time) {
	q.lots = append(q.lots, lot{price: price, remaining: quantity, acquiredAt: acquiredAt})
}

// empty reports whether no open lots remain.
func (q *lotQueue) empty() bool {
	return len(q.lots) == 0
}

// consume removes up to quantity units from the head lot and returns
// the lot's price, its acquisition time, and the quantity actually
// consumed (<= requested). The lot is dropped once its remaining
// quantity reaches zero. consume never takes more than the head lot
// holds; callers loop across lots until satisfied or the queue drains.
func (q *lotQueue) consume(quantity float64) (price float64, acquiredAt time.Time, consumed float64) {
	head := &q.lots[0]
	consumed = math.Min(quantity, head.remaining)
	price = head.price
	acquiredAt = head.acquiredAt
	head.remaining -= consumed
	if head.remaining <= 0 {
		q.lots = q.lots[1:]
	}
	return price, acquiredAt, consumed
}
