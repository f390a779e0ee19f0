package tax

// Rates configures the tax estimation. Values are explicit parameters
// rather than embedded literals so callers can override them.
type Rates struct {
	ShortTerm        float64 // fraction applied to short-term gains
	LongTerm         float64 // fraction applied to long-term gains
	LongTermDays     int     // holding days at which a gain becomes long-term (inclusive)
	HighTaxThreshold float64 // estimated tax above this is flagged as high
}

// DefaultRates returns the standard configuration: 30% short-term,
// 20% long-term, 365-day boundary, 100 000 high-tax threshold.
func DefaultRates() Rates {
	return Rates{
		ShortTerm:        0.30,
		LongTerm:         0.20,
		LongTermDays:     365,
		HighTaxThreshold: 100000,
	}
}
