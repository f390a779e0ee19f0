// Package tax builds a tax summary from the realized gains produced by
// one FIFO replay of a trade history: per-record tax estimation and
// hints, short/long-term subtotals, and portfolio-level
// recommendations.
package tax

import (
	"crypto-tax-ledger/internal/domain"
	"crypto-tax-ledger/internal/ledger"
)

// ComputeSummary replays the full trade history and aggregates the
// realized gains into a TaxSummary. It fails only on malformed input;
// a sell exceeding the tracked lots is tolerated and taxed for the
// matched portion only. Losses produce a record for visibility but no
// tax and no contribution to the tax subtotals.
func ComputeSummary(trades []*domain.Trade, rates Rates) (*domain.TaxSummary, error) {
	realizations, err := ledger.Replay(trades, rates.LongTermDays)
	if err != nil {
		return nil, err
	}

	summary := &domain.TaxSummary{
		Hints:           []*domain.TaxHint{},
		Recommendations: []string{},
	}

	for _, r := range realizations {
		rate := rates.ShortTerm
		period := domain.HoldingPeriodShortTerm
		if r.LongTerm {
			rate = rates.LongTerm
			period = domain.HoldingPeriodLongTerm
		}

		estimatedTax := 0.0
		if r.Gain > 0 {
			estimatedTax = r.Gain * rate
		}

		if r.LongTerm {
			summary.LongTermGains += r.Gain
			summary.LongTermTax += estimatedTax
		} else {
			summary.ShortTermGains += r.Gain
			summary.ShortTermTax += estimatedTax
		}

		summary.Hints = append(summary.Hints, &domain.TaxHint{
			Symbol:        r.Symbol,
			Quantity:      r.Quantity,
			BuyPrice:      r.BuyPrice,
			SellPrice:     r.SellPrice,
			RealizedGain:  r.Gain,
			EstimatedTax:  estimatedTax,
			HoldingPeriod: period,
			DaysHeld:      r.DaysHeld,
			Hint:          hintText(r, rates),
			Severity:      hintSeverity(r.Gain, estimatedTax, r.LongTerm, r.DaysHeld, rates),
		})
	}

	summary.TotalRealizedGains = summary.ShortTermGains + summary.LongTermGains
	summary.TotalEstimatedTax = summary.ShortTermTax + summary.LongTermTax
	summary.Recommendations = recommendations(summary, rates)

	return summary, nil
}
