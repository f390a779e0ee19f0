// Package service orchestrates the trade ledger: it validates
// mutations against the full replayed history before persisting them,
// keeps the derived holdings snapshot in sync, and records a
// notification for every accepted mutation.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"crypto-tax-ledger/internal/domain"
	"crypto-tax-ledger/internal/holdings"
	"crypto-tax-ledger/internal/ledger"
	"crypto-tax-ledger/internal/observability"
	"crypto-tax-ledger/internal/storage"
	"crypto-tax-ledger/internal/tax"
)

// Service wires the stores to the replay engines.
type Service struct {
	trades        storage.TradeStore
	holdings      storage.HoldingStore
	notifications storage.NotificationStore
	rates         tax.Rates
	logger        *log.Logger
	metrics       *observability.Metrics
}

// Config holds the service dependencies.
type Config struct {
	TradeStore        storage.TradeStore
	HoldingStore      storage.HoldingStore
	NotificationStore storage.NotificationStore
	Rates             tax.Rates
	Logger            *log.Logger
	Metrics           *observability.Metrics
}

// New creates a Service. Rates falls back to the defaults and Metrics
// to the default instance when unset.
func New(cfg Config) *Service {
	rates := cfg.Rates
	if rates.LongTermDays == 0 {
		rates = tax.DefaultRates()
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = observability.DefaultMetrics
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		trades:        cfg.TradeStore,
		holdings:      cfg.HoldingStore,
		notifications: cfg.NotificationStore,
		rates:         rates,
		logger:        logger,
		metrics:       metrics,
	}
}

// TradeInput is a requested trade mutation. The service assigns the ID
// and timestamps.
type TradeInput struct {
	Symbol     string          `json:"symbol"`
	Side       domain.Side     `json:"side"`
	Quantity   decimal.Decimal `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	Fee        decimal.Decimal `json:"fee"`
	ExecutedAt time.Time       `json:"executed_at"`
}

// AddTrade validates the trade against the owner's replayed history and
// persists it. A history that would become inconsistent (a sell
// exceeding the held quantity at any point) rejects the trade with a
// holdings.ConsistencyError and persists nothing.
func (s *Service) AddTrade(ctx context.Context, ownerID string, in TradeInput) (*domain.Trade, error) {
	if ownerID == "" {
		return nil, storage.ErrInvalidInput
	}

	now := time.Now().UTC()
	executedAt := in.ExecutedAt
	if executedAt.IsZero() {
		executedAt = now
	}

	trade := &domain.Trade{
		ID:         uuid.New().String(),
		OwnerID:    ownerID,
		Symbol:     in.Symbol,
		Side:       in.Side,
		Quantity:   in.Quantity,
		Price:      in.Price,
		Fee:        in.Fee,
		ExecutedAt: executedAt,
		CreatedAt:  now,
	}

	history, err := s.trades.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load trade history: %w", err)
	}

	snapshot, err := s.rebuildProspective(append(history, trade))
	if err != nil {
		s.metrics.TradesRejected.WithLabelValues(rejectReason(err)).Inc()
		return nil, err
	}

	if err := s.trades.Insert(ctx, trade); err != nil {
		return nil, fmt.Errorf("insert trade: %w", err)
	}
	if err := s.holdings.ReplaceForOwner(ctx, ownerID, snapshot); err != nil {
		return nil, fmt.Errorf("replace holdings: %w", err)
	}

	s.metrics.TradesCreated.Inc()
	s.logger.Printf("trade added: owner=%s %s %s %s @ %s", ownerID, trade.Side, trade.Quantity, trade.Symbol, trade.Price)
	s.notify(ctx, ownerID, "Trade added",
		fmt.Sprintf("%s %s %s @ %s", trade.Side, trade.Quantity, trade.Symbol, trade.Price))

	return trade, nil
}

// UpdateTrade replaces an existing trade after revalidating the full
// history with the replacement in place.
func (s *Service) UpdateTrade(ctx context.Context, ownerID, tradeID string, in TradeInput) (*domain.Trade, error) {
	existing, err := s.trades.GetByID(ctx, ownerID, tradeID)
	if err != nil {
		return nil, err
	}

	updated := &domain.Trade{
		ID:         existing.ID,
		OwnerID:    existing.OwnerID,
		Symbol:     in.Symbol,
		Side:       in.Side,
		Quantity:   in.Quantity,
		Price:      in.Price,
		Fee:        in.Fee,
		ExecutedAt: in.ExecutedAt,
		CreatedAt:  existing.CreatedAt,
	}
	if updated.ExecutedAt.IsZero() {
		updated.ExecutedAt = existing.ExecutedAt
	}

	history, err := s.trades.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load trade history: %w", err)
	}
	prospective := make([]*domain.Trade, 0, len(history))
	for _, t := range history {
		if t.ID == tradeID {
			prospective = append(prospective, updated)
			continue
		}
		prospective = append(prospective, t)
	}

	snapshot, err := s.rebuildProspective(prospective)
	if err != nil {
		s.metrics.TradesRejected.WithLabelValues(rejectReason(err)).Inc()
		return nil, err
	}

	if err := s.trades.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("update trade: %w", err)
	}
	if err := s.holdings.ReplaceForOwner(ctx, ownerID, snapshot); err != nil {
		return nil, fmt.Errorf("replace holdings: %w", err)
	}

	s.metrics.TradesUpdated.Inc()
	s.logger.Printf("trade updated: owner=%s id=%s", ownerID, tradeID)
	s.notify(ctx, ownerID, "Trade updated",
		fmt.Sprintf("%s %s %s @ %s", updated.Side, updated.Quantity, updated.Symbol, updated.Price))

	return updated, nil
}

// DeleteTrade removes a trade after revalidating the history without
// it. Deleting a buy that later sells depend on rejects the deletion.
func (s *Service) DeleteTrade(ctx context.Context, ownerID, tradeID string) error {
	if _, err := s.trades.GetByID(ctx, ownerID, tradeID); err != nil {
		return err
	}

	history, err := s.trades.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("load trade history: %w", err)
	}
	prospective := make([]*domain.Trade, 0, len(history))
	for _, t := range history {
		if t.ID != tradeID {
			prospective = append(prospective, t)
		}
	}

	snapshot, err := s.rebuildProspective(prospective)
	if err != nil {
		s.metrics.TradesRejected.WithLabelValues(rejectReason(err)).Inc()
		return err
	}

	if err := s.trades.Delete(ctx, ownerID, tradeID); err != nil {
		return fmt.Errorf("delete trade: %w", err)
	}
	if err := s.holdings.ReplaceForOwner(ctx, ownerID, snapshot); err != nil {
		return fmt.Errorf("replace holdings: %w", err)
	}

	s.metrics.TradesDeleted.Inc()
	s.logger.Printf("trade deleted: owner=%s id=%s", ownerID, tradeID)
	s.notify(ctx, ownerID, "Trade deleted", fmt.Sprintf("Trade %s removed from the ledger", tradeID))

	return nil
}

// GetTrade retrieves one trade scoped to its owner.
func (s *Service) GetTrade(ctx context.Context, ownerID, tradeID string) (*domain.Trade, error) {
	return s.trades.GetByID(ctx, ownerID, tradeID)
}

// ListTrades returns the owner's full history in chronological order.
func (s *Service) ListTrades(ctx context.Context, ownerID string) ([]*domain.Trade, error) {
	return s.trades.GetByOwnerID(ctx, ownerID)
}

// TaxSummary replays the owner's history into realized-gain records
// with estimated taxes, hints and recommendations.
func (s *Service) TaxSummary(ctx context.Context, ownerID string) (*domain.TaxSummary, error) {
	history, err := s.trades.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load trade history: %w", err)
	}

	summary, err := tax.ComputeSummary(history, s.rates)
	if err != nil {
		return nil, err
	}

	s.metrics.TaxSummariesComputed.Inc()
	for _, h := range summary.Hints {
		s.metrics.TaxHintsEmitted.WithLabelValues(string(h.Severity)).Inc()
	}

	return summary, nil
}

// Holdings returns the stored snapshot for the owner.
func (s *Service) Holdings(ctx context.Context, ownerID string) ([]*domain.Holding, error) {
	return s.holdings.GetByOwnerID(ctx, ownerID)
}

// Notifications returns the owner's notifications, newest first.
func (s *Service) Notifications(ctx context.Context, ownerID string) ([]*domain.Notification, error) {
	return s.notifications.GetByOwnerID(ctx, ownerID)
}

// MarkNotificationRead marks one notification as read.
func (s *Service) MarkNotificationRead(ctx context.Context, ownerID, notificationID string) error {
	return s.notifications.MarkRead(ctx, ownerID, notificationID)
}

// rebuildProspective replays a prospective history into a holdings
// snapshot, counting rebuilds and their failures.
func (s *Service) rebuildProspective(trades []*domain.Trade) ([]*domain.Holding, error) {
	s.metrics.HoldingsRebuilds.Inc()

	snapshot, err := holdings.Rebuild(trades)
	if err != nil {
		var consistencyErr *holdings.ConsistencyError
		if errors.As(err, &consistencyErr) {
			s.metrics.HoldingsRebuildFailures.Inc()
			s.logger.Printf("rebuild rejected: %v", err)
		}
		return nil, err
	}
	return snapshot, nil
}

// notify records a notification. Failures are logged, not propagated:
// the mutation itself already succeeded.
func (s *Service) notify(ctx context.Context, ownerID, title, message string) {
	n := &domain.Notification{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Title:     title,
		Message:   message,
		Level:     domain.NotificationLevelInfo,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.notifications.Insert(ctx, n); err != nil {
		s.logger.Printf("record notification: %v", err)
	}
}

func rejectReason(err error) string {
	var consistencyErr *holdings.ConsistencyError
	switch {
	case errors.As(err, &consistencyErr):
		return "inconsistent_history"
	case errors.Is(err, ledger.ErrMalformedTrade):
		return "malformed"
	default:
		return "other"
	}
}
