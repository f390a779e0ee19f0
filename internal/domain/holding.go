package domain

// Holding is the current position in one asset: net quantity and the
// running weighted-average cost price. Holdings are always rebuilt from
// the full trade history and fully replaced, never patched in place.
type Holding struct {
	OwnerID  string  `json:"owner_id"`
	Symbol   string  `json:"symbol"`
	Quantity float64 `json:"quantity"`
	AvgPrice float64 `json:"avg_price"`
}
