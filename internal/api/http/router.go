package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"library-backend/internal/logger"
)

// HealthChecker is polled by /healthz.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// NewRouter wires the REST API, /metrics and /healthz.
func NewRouter(h *LibraryHandler, health HealthChecker) *mux.Router {
	r := mux.NewRouter()
	r.Use(requestIDMiddleware)

	r.HandleFunc("/healthz", healthz(health)).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/books", h.CreateBook).Methods(http.MethodPost)
	api.HandleFunc("/books", h.ListBooks).Methods(http.MethodGet)
	api.HandleFunc("/books/{id:[0-9]+}", h.GetBook).Methods(http.MethodGet)
	api.HandleFunc("/books/{id:[0-9]+}/loans", h.IssueLoan).Methods(http.MethodPost)
	api.HandleFunc("/members", h.CreateMember).Methods(http.MethodPost)
	api.HandleFunc("/members/{id:[0-9]+}/rentals", h.ListMemberRentals).Methods(http.MethodGet)
	api.HandleFunc("/rentals/{id:[0-9]+}/return", h.ReturnLoan).Methods(http.MethodPut)

	return r
}

func healthz(health HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := health.Ping(ctx); err != nil {
			logger.FromContext(r.Context()).Error("Health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "database unavailable"})
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
