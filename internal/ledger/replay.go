// Package ledger implements the trade-ledger replay engine: a single
// chronological pass over an owner's trade history that matches sells
// against open purchase lots under FIFO rules and emits one realized
// gain per lot slice consumed.
package ledger

import (
	"sort"
	"time"

	"crypto-tax-ledger/internal/domain"
)

// Realization is one lot slice consumed by a sell: the matched
// quantity, the prices on both sides, the signed gain, and the holding
// period classification.
type Realization struct {
	Symbol    string
	Quantity  float64 // units matched from the lot
	BuyPrice  float64
	SellPrice float64
	Gain      float64 // (SellPrice - BuyPrice) * Quantity, signed
	DaysHeld  int     // whole calendar days, partial days truncated
	LongTerm  bool    // DaysHeld >= longTermDays (inclusive boundary)
}

// SortTrades orders trades ascending by execution time. The sort is
// stable, so trades sharing a timestamp keep their insertion order.
func SortTrades(trades []*domain.Trade) {
	sort.SliceStable(trades, func(i, j int) bool {
		return trades[i].ExecutedAt.Before(trades[j].ExecutedAt)
	})
}

// Replay validates the trade history, sorts a copy chronologically,
// and replays it once with one lot queue per asset. Buys enqueue lots;
// sells consume them oldest-first, emitting a Realization per lot
// slice except when the gain is exactly zero. A sell that exceeds the
// tracked lots is tolerated: matching stops when the queue drains and
// the unmatched remainder is simply not reported. Queues are discarded
// when Replay returns; no state survives the call.
func Replay(trades []*domain.Trade, longTermDays int) ([]Realization, error) {
	if err := Validate(trades); err != nil {
		return nil, err
	}

	ordered := make([]*domain.Trade, len(trades))
	copy(ordered, trades)
	SortTrades(ordered)

	queues := make(map[string]*lotQueue)
	var realizations []Realization

	for _, t := range ordered {
		switch t.Side {
		case domain.SideBuy:
			q := queues[t.Symbol]
			if q == nil {
				q = &lotQueue{}
				queues[t.Symbol] = q
			}
			q.enqueue(t.Price.InexactFloat64(), t.Quantity.InexactFloat64(), t.ExecutedAt)

		case domain.SideSell:
			q := queues[t.Symbol]
			if q == nil || q.empty() {
				continue
			}

			remaining := t.Quantity.InexactFloat64()
			sellPrice := t.Price.InexactFloat64()

			for remaining > 0 && !q.empty() {
				price, acquiredAt, matched := q.consume(remaining)
				gain := (sellPrice - price) * matched
				days := daysBetween(acquiredAt, t.ExecutedAt)

				if gain != 0 {
					realizations = append(realizations, Realization{
						Symbol:    t.Symbol,
						Quantity:  matched,
						BuyPrice:  price,
						SellPrice: sellPrice,
						Gain:      gain,
						DaysHeld:  days,
						LongTerm:  days >= longTermDays,
					})
				}

				remaining -= matched
			}
		}
	}

	return realizations, nil
}

// daysBetween returns the whole calendar days from a to b, truncating
// any partial day.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}
