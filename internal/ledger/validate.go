package ledger

import (
	"errors"
	"fmt"

	"crypto-tax-ledger/internal/domain"
)

// ErrMalformedTrade is returned when a trade fails input validation.
// Validation runs before any replay begins; a malformed history is
// never partially processed.
var ErrMalformedTrade = errors.New("malformed trade")

// Validate checks every trade for structural problems: unknown side,
// non-positive quantity, negative price, or a missing execution
// timestamp.
func Validate(trades []*domain.Trade) error {
	for i, t := range trades {
		if t == nil {
			return fmt.Errorf("%w: trade %d is nil", ErrMalformedTrade, i)
		}
		if !t.Side.Valid() {
			return fmt.Errorf("%w: trade %d has unknown side %q", ErrMalformedTrade, i, t.Side)
		}
		if t.Quantity.Sign() <= 0 {
			return fmt.Errorf("%w: trade %d (%s) quantity must be positive, got %s", ErrMalformedTrade, i, t.Symbol, t.Quantity)
		}
		if t.Price.Sign() < 0 {
			return fmt.Errorf("%w: trade %d (%s) price must be non-negative, got %s", ErrMalformedTrade, i, t.Symbol, t.Price)
		}
		if t.ExecutedAt.IsZero() {
			return fmt.Errorf("%w: trade %d (%s) has no execution timestamp", ErrMalformedTrade, i, t.Symbol)
		}
	}
	return nil
}
