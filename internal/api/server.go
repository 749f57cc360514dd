// Package api provides the local HTTP server for DuckTyper.
// `ducktyper serve` exposes the progress record, catalogs, event history
// and the event/action intake used by integration producers.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/quackverse/ducktyper/internal/app/gamification"
	"github.com/quackverse/ducktyper/internal/domain"
	"github.com/quackverse/ducktyper/internal/infra/catalog"
	"github.com/quackverse/ducktyper/internal/infra/journal"
)

// Server is the DuckTyper HTTP API server.
type Server struct {
	svc            *gamification.Service
	journal        *journal.DB // nil if the journal is disabled
	metricsEnabled bool
}

// NewServer creates a new API server around the engine.
func NewServer(svc *gamification.Service) *Server {
	return &Server{svc: svc}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// SetJournal attaches the event history journal.
func (s *Server) SetJournal(j *journal.DB) { s.journal = j }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/progress", s.handleProgress)
		r.Get("/quests", s.handleQuests)
		r.Get("/badges", s.handleBadges)
		r.Get("/events", s.handleEventHistory)
		r.Post("/events", s.handlePostEvent)
		r.Post("/actions/{action}", s.handleAction)
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    "error",
		},
	})
}

// handleProgress returns the full progress record.
func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Progress())
}

// handleQuests returns completed, available and suggested quests.
func (s *Server) handleQuests(w http.ResponseWriter, r *http.Request) {
	progress := s.svc.Progress()
	status := catalog.UserQuests(progress)
	writeJSON(w, http.StatusOK, map[string]any{
		"completed": status.Completed,
		"available": status.Available,
		"suggested": catalog.SuggestedQuests(progress, 3),
	})
}

// handleBadges returns earned badges and the remaining catalog.
func (s *Server) handleBadges(w http.ResponseWriter, r *http.Request) {
	progress := s.svc.Progress()
	earned := []any{}
	remaining := []any{}
	for _, b := range catalog.Badges {
		if progress.HasEarnedBadge(b.ID) {
			earned = append(earned, b)
		} else {
			remaining = append(remaining, b)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"earned":    earned,
		"remaining": remaining,
	})
}

// handleEventHistory returns the journal tail, newest first.
func (s *Server) handleEventHistory(w http.ResponseWriter, r *http.Request) {
	if s.journal == nil {
		writeError(w, http.StatusNotFound, "event journal is disabled")
		return
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	entries, err := s.journal.Recent(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entries == nil {
		entries = []domain.JournalEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": entries})
}
