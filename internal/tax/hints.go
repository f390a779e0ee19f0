package tax

import (
	"fmt"

	"crypto-tax-ledger/internal/domain"
	"crypto-tax-ledger/internal/ledger"
)

// optimizationWindow is how far (in days) a short-term gain must be
// from the long-term boundary before suggesting to hold longer.
const optimizationWindow = 30

// hintText renders the human-readable hint for one realization.
func hintText(r ledger.Realization, rates Rates) string {
	if r.Gain <= 0 {
		return "No tax liability on losses. Losses can offset gains."
	}

	if r.LongTerm {
		return fmt.Sprintf("Long-term capital gain (held %d days). Tax rate: %.0f%%", r.DaysHeld, rates.LongTerm*100)
	}

	if r.DaysHeld < rates.LongTermDays-optimizationWindow {
		return fmt.Sprintf("Short-term gain. Consider holding for %d more days to qualify for long-term tax benefits (%.0f%% vs %.0f%%).",
			rates.LongTermDays-r.DaysHeld, rates.LongTerm*100, rates.ShortTerm*100)
	}

	return fmt.Sprintf("Short-term capital gain (held %d days). Tax rate: %.0f%%", r.DaysHeld, rates.ShortTerm*100)
}

// hintSeverity assigns exactly one severity per record. Checks run in
// a fixed priority order: loss first, then the optimization window,
// then the high-tax threshold.
func hintSeverity(gain, estimatedTax float64, longTerm bool, daysHeld int, rates Rates) domain.HintSeverity {
	if gain <= 0 {
		return domain.HintSeverityInfo
	}
	if !longTerm && daysHeld < rates.LongTermDays-optimizationWindow {
		return domain.HintSeverityOptimization
	}
	if estimatedTax > rates.HighTaxThreshold {
		return domain.HintSeverityWarning
	}
	return domain.HintSeverityInfo
}

// recommendations produces the ordered portfolio-level advice. With no
// realized gains a single no-liability message short-circuits the
// rest; otherwise each condition appends independently and the closing
// advisor and record-keeping notes always follow.
func recommendations(s *domain.TaxSummary, rates Rates) []string {
	recs := []string{}

	if s.TotalRealizedGains <= 0 {
		return append(recs, "You have no realized gains. No tax liability currently.")
	}

	if s.ShortTermGains > s.LongTermGains {
		recs = append(recs, fmt.Sprintf("Consider holding assets longer (1+ years) to benefit from lower long-term capital gains tax (%.0f%% vs %.0f%%).",
			rates.LongTerm*100, rates.ShortTerm*100))
	}

	if s.TotalEstimatedTax > rates.HighTaxThreshold {
		recs = append(recs, "High tax liability detected. Consider tax-loss harvesting by selling underperforming assets to offset gains.")
	}

	if s.ShortTermTax > 0 && s.LongTermTax > 0 {
		recs = append(recs, "You have both short-term and long-term gains. Ensure proper documentation for tax filing.")
	}

	recs = append(recs,
		"Consult with a tax advisor for accurate tax planning and filing.",
		"Keep detailed records of all trades for tax purposes.",
	)

	return recs
}
