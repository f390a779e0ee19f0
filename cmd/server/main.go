// Package main runs the trade ledger HTTP service: trade CRUD with
// history revalidation, the derived holdings snapshot, tax hints, and
// notifications.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"crypto-tax-ledger/internal/api"
	"crypto-tax-ledger/internal/service"
	"crypto-tax-ledger/internal/storage"
	"crypto-tax-ledger/internal/storage/memory"
	"crypto-tax-ledger/internal/storage/migrations"
	pgstore "crypto-tax-ledger/internal/storage/postgres"
	"crypto-tax-ledger/internal/tax"
)

func main() {
	// Load .env file if exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("load .env: %v", err)
	}

	// Parse flags (env vars as defaults)
	addr := flag.String("addr", envOr("ADDR", ":8080"), "HTTP listen address")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage instead of PostgreSQL")
	shortTermRate := flag.Float64("short-term-rate", envFloatOr("SHORT_TERM_RATE", 0.30), "Tax rate applied to short-term gains")
	longTermRate := flag.Float64("long-term-rate", envFloatOr("LONG_TERM_RATE", 0.20), "Tax rate applied to long-term gains")
	longTermDays := flag.Int("long-term-days", envIntOr("LONG_TERM_DAYS", 365), "Holding days at which a gain becomes long-term")
	highTaxThreshold := flag.Float64("high-tax-threshold", envFloatOr("HIGH_TAX_THRESHOLD", 100000), "Estimated tax above this is flagged as high")

	flag.Parse()

	// Setup logger
	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lshortfile)

	if !*useMemory && *postgresDSN == "" {
		logger.Fatal("--postgres-dsn is required (use --use-memory for in-memory storage)")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stores, cleanup, err := createStores(ctx, *postgresDSN, *useMemory)
	if err != nil {
		logger.Fatalf("Failed to create stores: %v", err)
	}
	defer cleanup()

	svc := service.New(service.Config{
		TradeStore:        stores.trades,
		HoldingStore:      stores.holdings,
		NotificationStore: stores.notifications,
		Rates: tax.Rates{
			ShortTerm:        *shortTermRate,
			LongTerm:         *longTermRate,
			LongTermDays:     *longTermDays,
			HighTaxThreshold: *highTaxThreshold,
		},
		Logger: logger,
	})

	server := &http.Server{
		Addr:         *addr,
		Handler:      api.NewServer(svc, logger, nil).Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, initiating graceful shutdown...", sig)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Printf("Shutdown error: %v", err)
		}
		cancel()
	}()

	logger.Printf("Starting HTTP server on %s", *addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("Server error: %v", err)
	}

	logger.Println("Shutdown complete")
}

// allStores holds the storage implementations for one backend.
type allStores struct {
	trades        storage.TradeStore
	holdings      storage.HoldingStore
	notifications storage.NotificationStore
}

// createStores creates all required stores, applying migrations when
// backed by PostgreSQL.
func createStores(ctx context.Context, postgresDSN string, useMemory bool) (*allStores, func(), error) {
	if useMemory {
		stores := &allStores{
			trades:        memory.NewTradeStore(),
			holdings:      memory.NewHoldingStore(),
			notifications: memory.NewNotificationStore(),
		}
		return stores, func() {}, nil
	}

	pool, err := pgstore.NewPool(ctx, postgresDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}

	stores := &allStores{
		trades:        pgstore.NewTradeStore(pool),
		holdings:      pgstore.NewHoldingStore(pool),
		notifications: pgstore.NewNotificationStore(pool),
	}

	return stores, pool.Close, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
