// Package api exposes the journal over HTTP for the dashboard.
package api

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"tradeJournal/internal/analytics"
	"tradeJournal/internal/domain"
	"tradeJournal/internal/filter"
	"tradeJournal/internal/ports"
)

// JournalService is the part of app.JournalService the handlers use.
type JournalService interface {
	Report(ctx context.Context, opts filter.Options) (*analytics.Report, error)
	ListTrades(ctx context.Context, opts filter.Options) ([]domain.Trade, error)
	GetTrade(ctx context.Context, id string) (*domain.Trade, error)
	UpdateTradeNote(ctx context.Context, id, notes string) error
	UpdateTradeTags(ctx context.Context, id string, tags []string) ([]string, error)
}

// RequestRecorder receives per-request metrics.
type RequestRecorder interface {
	RecordRequest(method, path string, status int, duration float64)
}

// Dependencies holds everything the router needs.
type Dependencies struct {
	Service JournalService
	Logger  ports.Logger
	// Metrics and MetricsHandler are optional.
	Metrics        RequestRecorder
	MetricsHandler http.Handler
}

// SetupRoutes builds the HTTP router:
//
//	GET   /api/v1/trades            filtered trade list, newest first
//	GET   /api/v1/trades/{id}       one trade
//	PATCH /api/v1/trades/{id}/notes replace notes
//	PUT   /api/v1/trades/{id}/tags  replace tags
//	GET   /api/v1/analytics         full report for the same filter
//	GET   /metrics                  Prometheus scrape endpoint
func SetupRoutes(deps Dependencies) *mux.Router {
	router := mux.NewRouter()

	router.Use(recovery(deps.Logger))
	router.Use(logging(deps.Logger, deps.Metrics))

	h := &handler{service: deps.Service, logger: deps.Logger}

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/trades", h.listTrades).Methods(http.MethodGet)
	api.HandleFunc("/trades/{id}", h.getTrade).Methods(http.MethodGet)
	api.HandleFunc("/trades/{id}/notes", h.updateNotes).Methods(http.MethodPatch)
	api.HandleFunc("/trades/{id}/tags", h.updateTags).Methods(http.MethodPut)
	api.HandleFunc("/analytics", h.getAnalytics).Methods(http.MethodGet)

	if deps.MetricsHandler != nil {
		router.Handle("/metrics", deps.MetricsHandler).Methods(http.MethodGet)
	}

	return router
}
