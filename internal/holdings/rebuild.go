// Package holdings derives the current per-asset positions of an
// owner by reducing the full chronological trade history to a
// (quantity, weighted-average price) pair per asset. The reduction is
// independent of the FIFO lot matching in the ledger package: the
// average price is recomputed only on acquisition, never on disposal.
package holdings

import (
	"fmt"
	"sort"

	"crypto-tax-ledger/internal/domain"
	"crypto-tax-ledger/internal/ledger"
)

// ConsistencyError reports a sell whose quantity exceeds the
// cumulative bought quantity at that point in the history. It is
// fatal: the history is corrupted or out of order and the triggering
// mutation must be rejected, never clamped.
type ConsistencyError struct {
	Symbol    string
	Available float64
	Requested float64
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("inconsistent trade history for %s: sell of %v exceeds held quantity %v", e.Symbol, e.Requested, e.Available)
}

// position is the running reduction state for one asset.
type position struct {
	ownerID  string
	quantity float64
	avgPrice float64
}

// Rebuild replays the trade history and returns one Holding per asset
// with a net-positive quantity, sorted by symbol. The result carries
// no state between calls and fully supersedes any stored snapshot.
// A ConsistencyError aborts the rebuild with no partial result.
func Rebuild(trades []*domain.Trade) ([]*domain.Holding, error) {
	if err := ledger.Validate(trades); err != nil {
		return nil, err
	}

	ordered := make([]*domain.Trade, len(trades))
	copy(ordered, trades)
	ledger.SortTrades(ordered)

	positions := make(map[string]*position)

	for _, t := range ordered {
		p := positions[t.Symbol]
		if p == nil {
			p = &position{ownerID: t.OwnerID}
			positions[t.Symbol] = p
		}

		tradeQty := t.Quantity.InexactFloat64()
		tradePrice := t.Price.InexactFloat64()

		switch t.Side {
		case domain.SideBuy:
			totalCost := p.quantity*p.avgPrice + tradeQty*tradePrice
			p.quantity += tradeQty
			p.avgPrice = totalCost / p.quantity

		case domain.SideSell:
			if tradeQty > p.quantity {
				return nil, &ConsistencyError{
					Symbol:    t.Symbol,
					Available: p.quantity,
					Requested: tradeQty,
				}
			}
			// Average price is intentionally untouched: the cost basis
			// of what remains does not change on disposal.
			p.quantity -= tradeQty
		}
	}

	result := make([]*domain.Holding, 0, len(positions))
	for symbol, p := range positions {
		if p.quantity <= 0 {
			continue
		}
		result = append(result, &domain.Holding{
			OwnerID:  p.ownerID,
			Symbol:   symbol,
			Quantity: p.quantity,
			AvgPrice: p.avgPrice,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Symbol < result[j].Symbol
	})

	return result, nil
}
