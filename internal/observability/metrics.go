// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Ledger metrics
	TradesCreated  prometheus.Counter
	TradesUpdated  prometheus.Counter
	TradesDeleted  prometheus.Counter
	TradesRejected *prometheus.CounterVec

	// Holdings metrics
	HoldingsRebuilds        prometheus.Counter
	HoldingsRebuildFailures prometheus.Counter

	// Tax metrics
	TaxSummariesComputed prometheus.Counter
	TaxHintsEmitted      *prometheus.CounterVec

	// HTTP metrics
	HTTPRequestDuration *prometheus.HistogramVec

	// Database metrics
	DBQueryErrors *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "crypto_tax_ledger"
	}

	return &Metrics{
		TradesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "trades_created_total",
			Help:      "Total number of trades recorded",
		}),
		TradesUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "trades_updated_total",
			Help:      "Total number of trades updated",
		}),
		TradesDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "trades_deleted_total",
			Help:      "Total number of trades deleted",
		}),
		TradesRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "trades_rejected_total",
			Help:      "Total number of rejected trade mutations by reason",
		}, []string{"reason"}),

		HoldingsRebuilds: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "holdings",
			Name:      "rebuilds_total",
			Help:      "Total number of holdings rebuilds",
		}),
		HoldingsRebuildFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "holdings",
			Name:      "rebuild_failures_total",
			Help:      "Total number of holdings rebuilds rejected for inconsistent history",
		}),

		TaxSummariesComputed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tax",
			Name:      "summaries_computed_total",
			Help:      "Total number of tax summaries computed",
		}),
		TaxHintsEmitted: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tax",
			Name:      "hints_emitted_total",
			Help:      "Total number of tax hints emitted by severity",
		}, []string{"severity"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),

		DBQueryErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_errors_total",
			Help:      "Total number of database query errors",
		}, []string{"operation"}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")
