// Package api exposes the trade ledger over HTTP with JSON bodies.
// Requests are scoped to an owner by the X-Owner-ID header.
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"crypto-tax-ledger/internal/holdings"
	"crypto-tax-ledger/internal/ledger"
	"crypto-tax-ledger/internal/observability"
	"crypto-tax-ledger/internal/service"
	"crypto-tax-ledger/internal/storage"
)

const ownerHeader = "X-Owner-ID"

// Server handles HTTP requests for the ledger service.
type Server struct {
	svc     *service.Service
	logger  *log.Logger
	metrics *observability.Metrics
}

// NewServer creates a Server. Metrics falls back to the default
// instance when nil.
func NewServer(svc *service.Service, logger *log.Logger, metrics *observability.Metrics) *Server {
	if metrics == nil {
		metrics = observability.DefaultMetrics
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{svc: svc, logger: logger, metrics: metrics}
}

// Handler returns the routed handler for the full API surface.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /trades", s.instrument("/trades", s.handleAddTrade))
	mux.HandleFunc("GET /trades", s.instrument("/trades", s.handleListTrades))
	mux.HandleFunc("GET /trades/{id}", s.instrument("/trades/{id}", s.handleGetTrade))
	mux.HandleFunc("PUT /trades/{id}", s.instrument("/trades/{id}", s.handleUpdateTrade))
	mux.HandleFunc("DELETE /trades/{id}", s.instrument("/trades/{id}", s.handleDeleteTrade))

	mux.HandleFunc("GET /tax/hints", s.instrument("/tax/hints", s.handleTaxHints))
	mux.HandleFunc("GET /holdings", s.instrument("/holdings", s.handleHoldings))

	mux.HandleFunc("GET /notifications", s.instrument("/notifications", s.handleNotifications))
	mux.HandleFunc("POST /notifications/{id}/read", s.instrument("/notifications/{id}/read", s.handleMarkNotificationRead))

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("GET /metrics", observability.Handler())

	return mux
}

// statusRecorder captures the response status for instrumentation.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// instrument wraps a handler with request duration metrics keyed by
// the route pattern rather than the raw path.
func (s *Server) instrument(pattern string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		s.metrics.HTTPRequestDuration.
			WithLabelValues(r.Method, pattern, strconv.Itoa(rec.status)).
			Observe(time.Since(start).Seconds())
	}
}

func (s *Server) handleAddTrade(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.owner(w, r)
	if !ok {
		return
	}

	var in service.TradeInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	trade, err := s.svc.AddTrade(r.Context(), ownerID, in)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, trade)
}

func (s *Server) handleListTrades(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.owner(w, r)
	if !ok {
		return
	}

	trades, err := s.svc.ListTrades(r.Context(), ownerID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, trades)
}

func (s *Server) handleGetTrade(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.owner(w, r)
	if !ok {
		return
	}

	trade, err := s.svc.GetTrade(r.Context(), ownerID, r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, trade)
}

func (s *Server) handleUpdateTrade(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.owner(w, r)
	if !ok {
		return
	}

	var in service.TradeInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	trade, err := s.svc.UpdateTrade(r.Context(), ownerID, r.PathValue("id"), in)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, trade)
}

func (s *Server) handleDeleteTrade(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.owner(w, r)
	if !ok {
		return
	}

	if err := s.svc.DeleteTrade(r.Context(), ownerID, r.PathValue("id")); err != nil {
		s.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTaxHints(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.owner(w, r)
	if !ok {
		return
	}

	summary, err := s.svc.TaxSummary(r.Context(), ownerID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleHoldings(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.owner(w, r)
	if !ok {
		return
	}

	snapshot, err := s.svc.Holdings(r.Context(), ownerID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.owner(w, r)
	if !ok {
		return
	}

	notifications, err := s.svc.Notifications(r.Context(), ownerID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, notifications)
}

func (s *Server) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.owner(w, r)
	if !ok {
		return
	}

	if err := s.svc.MarkNotificationRead(r.Context(), ownerID, r.PathValue("id")); err != nil {
		s.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// owner extracts the owner scope from the request header, writing a
// 400 when it is missing.
func (s *Server) owner(w http.ResponseWriter, r *http.Request) (string, bool) {
	ownerID := r.Header.Get(ownerHeader)
	if ownerID == "" {
		s.writeError(w, http.StatusBadRequest, ownerHeader+" header is required")
		return "", false
	}
	return ownerID, true
}

// errorResponse is the JSON body for all error statuses.
type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	var consistencyErr *holdings.ConsistencyError
	switch {
	case errors.As(err, &consistencyErr):
		s.writeError(w, http.StatusConflict, consistencyErr.Error())
	case errors.Is(err, ledger.ErrMalformedTrade):
		s.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, storage.ErrInvalidInput):
		s.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, storage.ErrNotFound):
		s.writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, storage.ErrDuplicateKey):
		s.writeError(w, http.StatusConflict, "duplicate id")
	default:
		s.logger.Printf("internal error: %v", err)
		s.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Printf("encode response: %v", err)
	}
}
