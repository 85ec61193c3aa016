// Package api exposes the ledger operations over a JSON HTTP API. It is
// transport glue only: every rule lives in the ledger and assess packages.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/solobank-dev/solobank/internal/assess"
	"github.com/solobank-dev/solobank/internal/ledger"
	"github.com/solobank-dev/solobank/internal/model"
)

// Server is the bank's HTTP API server.
type Server struct {
	ledger         *ledger.Service
	assessor       *assess.Client
	metricsEnabled bool

	registry   *prometheus.Registry
	operations *prometheus.CounterVec
}

// NewServer creates an API server over the ledger service and assessor.
func NewServer(svc *ledger.Service, assessor *assess.Client) *Server {
	registry := prometheus.NewRegistry()
	return &Server{
		ledger:   svc,
		assessor: assessor,
		registry: registry,
		operations: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "solobank_ledger_operations_total",
			Help: "Ledger operations by name and outcome.",
		}, []string{"operation", "outcome"}),
	}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/customers", s.handleListCustomers)
		r.Get("/customers/{customerID}", s.handleGetCustomer)
		r.Get("/customers/{customerID}/accounts", s.handleGetAccounts)
		r.Get("/customers/{customerID}/transactions", s.handleCustomerTransactions)
		r.Get("/customers/{customerID}/approvals", s.handleCustomerApprovals)
		r.Get("/customers/{customerID}/credit-history", s.handleCreditHistory)
		r.Get("/customers/{customerID}/payment-history", s.handlePaymentHistory)
		r.Post("/customers/{customerID}/credit-limit", s.handleUpdateCreditLimit)
		r.Get("/accounts/{accountID}/transactions", s.handleAccountTransactions)
		r.Post("/transfer", s.handleTransfer)
		r.Get("/approvals", s.handleListApprovals)
		r.Post("/approvals", s.handleCreateApproval)
		r.Post("/approvals/{approvalID}", s.handleResolveApproval)
		r.Post("/assess", s.handleAssess)
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}

	return r
}

// countOp records one ledger operation outcome.
func (s *Server) countOp(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	s.operations.WithLabelValues(operation, outcome).Inc()
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps a ledger error to an HTTP status and JSON body.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, model.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, model.ErrAlreadyResolved):
		status = http.StatusConflict
	case errors.Is(err, model.ErrInvalidAmount),
		errors.Is(err, model.ErrInvalidAccountType),
		errors.Is(err, model.ErrInsufficientFunds),
		errors.Is(err, model.ErrInvalidLimit),
		errors.Is(err, model.ErrInvalidInput):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// decodeJSON decodes a request body into v.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Join(model.ErrInvalidInput, err)
	}
	return nil
}
