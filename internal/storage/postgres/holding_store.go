package postgres

import (
	"context"
	"fmt"

	"crypto-tax-ledger/internal/domain"
	"crypto-tax-ledger/internal/storage"
)

// HoldingStore implements storage.HoldingStore using PostgreSQL.
type HoldingStore struct {
	pool *Pool
}

// NewHoldingStore creates a new HoldingStore.
func NewHoldingStore(pool *Pool) *HoldingStore {
	return &HoldingStore{pool: pool}
}

// Compile-time interface check.
var _ storage.HoldingStore = (*HoldingStore)(nil)

// ReplaceForOwner atomically replaces the owner's entire snapshot in a
// single transaction: the old rows are deleted even when the new
// snapshot is empty.
func (s *HoldingStore) ReplaceForOwner(ctx context.Context, ownerID string, holdings []*domain.Holding) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM holdings WHERE owner_id = $1`, ownerID); err != nil {
		return fmt.Errorf("clear holdings: %w", err)
	}

	query := `
		INSERT INTO holdings (owner_id, symbol, quantity, avg_price)
		VALUES ($1, $2, $3, $4)
	`

	for _, h := range holdings {
		if _, err := tx.Exec(ctx, query, ownerID, h.Symbol, h.Quantity, h.AvgPrice); err != nil {
			return fmt.Errorf("insert holding: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// GetByOwnerID retrieves the stored snapshot ordered by symbol ASC.
func (s *HoldingStore) GetByOwnerID(ctx context.Context, ownerID string) ([]*domain.Holding, error) {
	query := `
		SELECT owner_id, symbol, quantity, avg_price
		FROM holdings
		WHERE owner_id = $1
		ORDER BY symbol ASC
	`

	rows, err := s.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get holdings by owner id: %w", err)
	}
	defer rows.Close()

	holdings := []*domain.Holding{}
	for rows.Next() {
		var h domain.Holding
		if err := rows.Scan(&h.OwnerID, &h.Symbol, &h.Quantity, &h.AvgPrice); err != nil {
			return nil, fmt.Errorf("scan holding row: %w", err)
		}
		holdings = append(holdings, &h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate holding rows: %w", err)
	}

	return holdings, nil
}
