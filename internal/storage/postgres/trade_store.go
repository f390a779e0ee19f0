package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"crypto-tax-ledger/internal/domain"
	"crypto-tax-ledger/internal/storage"
)

// TradeStore implements storage.TradeStore using PostgreSQL.
type TradeStore struct {
	pool *Pool
}

// NewTradeStore creates a new TradeStore.
func NewTradeStore(pool *Pool) *TradeStore {
	return &TradeStore{pool: pool}
}

// Compile-time interface check.
var _ storage.TradeStore = (*TradeStore)(nil)

// Insert adds a new trade. Returns ErrDuplicateKey if the ID exists.
func (s *TradeStore) Insert(ctx context.Context, t *domain.Trade) error {
	query := `
		INSERT INTO trades (
			id, owner_id, symbol, side,
			quantity, price, fee,
			executed_at, created_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7,
			$8, $9
		)
	`

	_, err := s.pool.Exec(ctx, query,
		t.ID, t.OwnerID, t.Symbol, t.Side,
		t.Quantity, t.Price, t.Fee,
		t.ExecutedAt, t.CreatedAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert trade: %w", err)
	}
	return nil
}

// Update replaces an existing trade owned by its owner.
func (s *TradeStore) Update(ctx context.Context, t *domain.Trade) error {
	query := `
		UPDATE trades
		SET symbol = $3, side = $4, quantity = $5, price = $6, fee = $7, executed_at = $8
		WHERE id = $1 AND owner_id = $2
	`

	tag, err := s.pool.Exec(ctx, query,
		t.ID, t.OwnerID, t.Symbol, t.Side,
		t.Quantity, t.Price, t.Fee, t.ExecutedAt,
	)
	if err != nil {
		return fmt.Errorf("update trade: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// Delete removes a trade scoped to an owner.
func (s *TradeStore) Delete(ctx context.Context, ownerID, tradeID string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM trades WHERE id = $1 AND owner_id = $2`, tradeID, ownerID)
	if err != nil {
		return fmt.Errorf("delete trade: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// GetByID retrieves a trade scoped to an owner. Returns ErrNotFound if
// not exists.
func (s *TradeStore) GetByID(ctx context.Context, ownerID, tradeID string) (*domain.Trade, error) {
	query := `
		SELECT id, owner_id, symbol, side, quantity, price, fee, executed_at, created_at
		FROM trades
		WHERE id = $1 AND owner_id = $2
	`

	row := s.pool.QueryRow(ctx, query, tradeID, ownerID)
	t, err := scanTrade(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get trade by id: %w", err)
	}
	return t, nil
}

// GetByOwnerID retrieves an owner's full trade history in chronological
// order with a stable tie-break for equal execution timestamps.
func (s *TradeStore) GetByOwnerID(ctx context.Context, ownerID string) ([]*domain.Trade, error) {
	query := `
		SELECT id, owner_id, symbol, side, quantity, price, fee, executed_at, created_at
		FROM trades
		WHERE owner_id = $1
		ORDER BY executed_at ASC, created_at ASC, id ASC
	`

	rows, err := s.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get trades by owner id: %w", err)
	}
	defer rows.Close()

	return scanTrades(rows)
}

// scanTrade scans a single row into a Trade.
func scanTrade(row pgx.Row) (*domain.Trade, error) {
	var t domain.Trade

	err := row.Scan(
		&t.ID, &t.OwnerID, &t.Symbol, &t.Side,
		&t.Quantity, &t.Price, &t.Fee,
		&t.ExecutedAt, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// scanTrades scans multiple rows into a slice of Trade.
func scanTrades(rows pgx.Rows) ([]*domain.Trade, error) {
	var trades []*domain.Trade

	for rows.Next() {
		var t domain.Trade

		err := rows.Scan(
			&t.ID, &t.OwnerID, &t.Symbol, &t.Side,
			&t.Quantity, &t.Price, &t.Fee,
			&t.ExecutedAt, &t.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan trade row: %w", err)
		}

		trades = append(trades, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trade rows: %w", err)
	}

	return trades, nil
}
