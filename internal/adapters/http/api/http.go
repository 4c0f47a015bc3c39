// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/diarium/internal/domain/mood"
	"github.com/okian/diarium/pkg/logger"
)

// DefaultMaxRecentLimit caps GET /api/entries when no limit is configured.
const DefaultMaxRecentLimit = 100

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	MoodDependencies
	EntryDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	moodHandler    *MoodHandler
	entriesHandler *EntriesHandler
	logger         logger.Logger
}

// Option applies a configuration option to the Server.
type Option func(*serverOptions)

type serverOptions struct {
	maxRecentLimit int
	logger         logger.Logger
}

// WithMaxRecentLimit bounds the limit accepted by GET /api/entries.
func WithMaxRecentLimit(n int) Option {
	return func(o *serverOptions) {
		if n > 0 {
			o.maxRecentLimit = n
		}
	}
}

// WithLogger sets a custom logger for request failures.
func WithLogger(l logger.Logger) Option {
	return func(o *serverOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	o := serverOptions{maxRecentLimit: DefaultMaxRecentLimit, logger: logger.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	l := o.logger.Named("api")
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		moodHandler:    NewMoodHandler(deps),
		entriesHandler: NewEntriesHandler(deps, o.maxRecentLimit, l),
		logger:         l,
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("POST /api/analyze-mood", MetricsMiddleware(s.moodHandler.HandleAnalyzeMood, "analyze_mood"))
	mux.HandleFunc("POST /api/analyze-text", MetricsMiddleware(s.moodHandler.HandleAnalyzeText, "analyze_text"))
	mux.HandleFunc("POST /api/entries/analyze", MetricsMiddleware(s.entriesHandler.HandleSubmit, "entries_submit"))
	mux.HandleFunc("GET /api/entries/{id}/analysis", MetricsMiddleware(s.entriesHandler.HandleGetAnalysis, "entries_analysis"))
	mux.HandleFunc("GET /api/entries", MetricsMiddleware(s.entriesHandler.HandleRecent, "entries_recent"))

	s.logger.Debug(ctx, "api routes registered")
}

// textRequest is the body of the analyze endpoints.
type textRequest struct {
	Text *string `json:"text"`
}

// moodResponse flattens a mood.Analysis for clients.
type moodResponse struct {
	Mood       mood.Mood    `json:"mood"`
	Confidence float64      `json:"confidence"`
	Moods      []mood.Score `json:"moods"`
	Tier       string       `json:"tier"`
}

func newMoodResponse(a mood.Analysis) moodResponse {
	moods := a.Ranked
	if moods == nil {
		moods = []mood.Score{}
	}
	return moodResponse{
		Mood:       a.Primary.Mood,
		Confidence: a.Primary.Confidence,
		Moods:      moods,
		Tier:       a.Tier,
	}
}

// entryRequest mirrors the body of POST /api/entries/analyze.
type entryRequest struct {
	EntryID string `json:"entry_id"`
	Text    string `json:"text"`
}

type ackResponse struct {
	EntryID   string `json:"entry_id"`
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
