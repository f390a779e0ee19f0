package domain

// HoldingPeriod classifies a realized gain by how long the matched lot
// was held before disposal.
type HoldingPeriod string

// Holding period constants.
const (
	HoldingPeriodShortTerm HoldingPeriod = "SHORT_TERM"
	HoldingPeriodLongTerm  HoldingPeriod = "LONG_TERM"
)

// HintSeverity ranks a tax hint for display.
type HintSeverity string

// Hint severity constants.
const (
	HintSeverityInfo         HintSeverity = "INFO"
	HintSeverityOptimization HintSeverity = "OPTIMIZATION"
	HintSeverityWarning      HintSeverity = "WARNING"
)

// TaxHint describes one lot slice consumed by a sell: the realized
// gain, its holding-period classification, the estimated tax, and a
// human-readable hint.
type TaxHint struct {
	Symbol        string        `json:"symbol"`
	Quantity      float64       `json:"quantity"` // units matched from the lot
	BuyPrice      float64       `json:"buy_price"`
	SellPrice     float64       `json:"sell_price"`
	RealizedGain  float64       `json:"realized_gain"` // signed
	EstimatedTax  float64       `json:"estimated_tax"` // 0 for losses
	HoldingPeriod HoldingPeriod `json:"holding_period"`
	DaysHeld      int           `json:"days_held"`
	Hint          string        `json:"hint"`
	Severity      HintSeverity  `json:"severity"`
}

// TaxSummary aggregates the realized gains of one full replay of an
// owner's trade history. Hints appear in chronological sell-processing
// order; recommendations are ordered and order-sensitive.
type TaxSummary struct {
	TotalRealizedGains float64    `json:"total_realized_gains"`
	TotalEstimatedTax  float64    `json:"total_estimated_tax"`
	ShortTermGains     float64    `json:"short_term_gains"`
	LongTermGains      float64    `json:"long_term_gains"`
	ShortTermTax       float64    `json:"short_term_tax"`
	LongTermTax        float64    `json:"long_term_tax"`
	Hints              []*TaxHint `json:"hints"`
	Recommendations    []string   `json:"recommendations"`
}
