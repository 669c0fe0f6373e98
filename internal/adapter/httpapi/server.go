// Package httpapi exposes the dashboard's JSON API plus the usual health,
// readiness, and metrics endpoints.
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/CodeGuy93/buffalo-float-site/internal/catalog"
	"github.com/CodeGuy93/buffalo-float-site/internal/domain"
	"github.com/CodeGuy93/buffalo-float-site/internal/store"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Refresher accepts a refresh trigger, reporting whether it was started or
// dropped because a cycle is already in flight.
type Refresher interface {
	TriggerRefresh(ctx context.Context) bool
}

// Server exposes the river conditions API over HTTP.
type Server struct {
	httpServer    *http.Server
	catalog       *catalog.Catalog
	subscriptions *store.SubscriptionStore
	refresher     Refresher
	logger        *slog.Logger
}

// NewServer wires all routes onto a fresh mux.
func NewServer(addr string, cat *catalog.Catalog, subs *store.SubscriptionStore, ready ReadinessChecker, refresher Refresher, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		catalog:       cat,
		subscriptions: subs,
		refresher:     refresher,
		logger:        logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/conditions", s.handleConditions)
	mux.HandleFunc("GET /api/gauges", s.handleGauges)
	mux.HandleFunc("POST /api/gauges/{id}/select", s.handleSelectGauge)
	mux.HandleFunc("GET /api/sections", s.handleSections)
	mux.HandleFunc("POST /api/trip", s.handleTrip)
	mux.HandleFunc("GET /api/subscriptions", s.handleListSubscriptions)
	mux.HandleFunc("POST /api/subscriptions", s.handleCreateSubscription)
	mux.HandleFunc("PATCH /api/subscriptions/{id}", s.handleUpdateSubscription)
	mux.HandleFunc("DELETE /api/subscriptions/{id}", s.handleDeleteSubscription)
	mux.HandleFunc("POST /api/refresh", s.handleRefresh)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func (s *Server) handleConditions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Snapshot())
}

func (s *Server) handleGauges(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Gauges())
}

func (s *Server) handleSelectGauge(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.catalog.Select(id) {
		writeError(w, http.StatusNotFound, "unknown gauge: "+id)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"selectedGauge": id})
}

func (s *Server) handleSections(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, domain.Sections())
}

type tripRequest struct {
	Section      string                 `json:"section"`
	CurrentLevel *float64               `json:"currentLevel,omitempty"`
	Experience   domain.ExperienceLevel `json:"experience"`
	GroupSize    int                    `json:"groupSize"`
}

func (s *Server) handleTrip(w http.ResponseWriter, r *http.Request) {
	var req tripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	section, ok := domain.SectionByName(req.Section)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown section: "+req.Section)
		return
	}
	if req.GroupSize < 1 {
		writeError(w, http.StatusBadRequest, "groupSize must be at least 1")
		return
	}

	level := s.catalog.Selected().Level
	if req.CurrentLevel != nil {
		level = *req.CurrentLevel
	}
	writeJSON(w, http.StatusOK, domain.EstimateTrip(section, level, req.Experience, req.GroupSize))
}

func (s *Server) handleListSubscriptions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.subscriptions.List())
}

func (s *Server) handleCreateSubscription(w http.ResponseWriter, r *http.Request) {
	var sub domain.AlertSubscription
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if sub.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}
	if sub.MinLevel > sub.MaxLevel {
		writeError(w, http.StatusBadRequest, "minLevel must not exceed maxLevel")
		return
	}

	created, err := s.subscriptions.Create(sub)
	if err != nil {
		s.logger.Error("failed to persist subscription", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save subscription")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateSubscription(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var patch store.SubscriptionPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if !s.subscriptions.Update(id, patch) {
		writeError(w, http.StatusNotFound, "unknown subscription: "+id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteSubscription(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.subscriptions.Delete(id) {
		writeError(w, http.StatusNotFound, "unknown subscription: "+id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if !s.refresher.TriggerRefresh(context.WithoutCancel(r.Context())) {
		writeJSON(w, http.StatusConflict, map[string]string{"status": "refresh already in progress"})
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "refresh started"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
