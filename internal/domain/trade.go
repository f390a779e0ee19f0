package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Side is the direction of a trade. Exactly two variants exist;
// replay code dispatches on it with a switch, never by comparing
// free-form strings.
type Side string

// Trade side constants.
const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Valid reports whether s is one of the two known sides.
func (s Side) Valid() bool {
	return s == SideBuy || s == SideSell
}

// Trade is one buy or sell execution in an owner's portfolio.
// Quantity, Price and Fee are decimals at the model and storage
// boundary; derived views convert to float64 for accumulation.
// Fee is recorded for reporting only and never enters gain or
// average-price arithmetic.
type Trade struct {
	ID         string          `json:"id"`
	OwnerID    string          `json:"owner_id"`
	Symbol     string          `json:"symbol"`
	Side       Side            `json:"side"`
	Quantity   decimal.Decimal `json:"quantity"`
	Price      decimal.Decimal `json:"price"` // per unit
	Fee        decimal.Decimal `json:"fee"`
	ExecutedAt time.Time       `json:"executed_at"` // chronological ordering key
	CreatedAt  time.Time       `json:"created_at"`
}
