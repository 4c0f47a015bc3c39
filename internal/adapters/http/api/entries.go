package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/okian/diarium/internal/adapters/mq/queue"
	"github.com/okian/diarium/internal/adapters/repository"
	"github.com/okian/diarium/internal/domain/model"
	"github.com/okian/diarium/pkg/logger"
)

// EntryDependencies defines the background entry pipeline operations.
type EntryDependencies interface {
	// Submit queues e for analysis. duplicate is true when the entry id was
	// already accepted.
	Submit(ctx context.Context, e model.Entry) (duplicate bool, err error)
	Analysis(ctx context.Context, entryID string) (model.EntryAnalysis, error)
	Recent(ctx context.Context, n int) ([]model.EntryAnalysis, error)
}

// EntriesHandler handles entry submission and analysis reads.
type EntriesHandler struct {
	deps     EntryDependencies
	maxLimit int
	logger   logger.Logger
}

// NewEntriesHandler creates a new entries handler.
func NewEntriesHandler(deps EntryDependencies, maxLimit int, l logger.Logger) *EntriesHandler {
	return &EntriesHandler{deps: deps, maxLimit: maxLimit, logger: l}
}

// HandleSubmit handles POST /api/entries/analyze requests.
func (h *EntriesHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	const op = "api.submit_entry"
	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", wrapKind(op, ErrBadRequest, err))
		return
	}
	id := strings.TrimSpace(req.EntryID)
	if id == "" {
		id = uuid.NewString()
	}

	dup, err := h.deps.Submit(r.Context(), model.Entry{EntryID: id, Text: req.Text})
	switch {
	case errors.Is(err, model.ErrEmptyText):
		writeError(w, http.StatusBadRequest, "bad_request", wrapKind(op, ErrBadRequest, err))
	case errors.Is(err, queue.ErrFull):
		writeError(w, http.StatusTooManyRequests, "backpressure", wrapKind(op, ErrBackpressure, err))
	case err != nil:
		h.logger.Warn(r.Context(), "entry rejected", logger.String("entryID", id), logger.Error(err))
		writeError(w, http.StatusServiceUnavailable, "unavailable", wrapKind(op, ErrUnavailable, err))
	case dup:
		writeJSON(w, http.StatusOK, ackResponse{EntryID: id, Status: "duplicate", Duplicate: true})
	default:
		writeJSON(w, http.StatusAccepted, ackResponse{EntryID: id, Status: "accepted"})
	}
}

// HandleGetAnalysis handles GET /api/entries/{id}/analysis requests.
func (h *EntriesHandler) HandleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_analysis"
	id := r.PathValue("id")
	if strings.TrimSpace(id) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", wrapKind(op, ErrBadRequest, nil))
		return
	}
	a, err := h.deps.Analysis(r.Context(), id)
	if err != nil {
		h.writeReadError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// HandleRecent handles GET /api/entries?limit=N requests.
func (h *EntriesHandler) HandleRecent(w http.ResponseWriter, r *http.Request) {
	const op = "api.recent_entries"
	n := h.maxLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		v, err := strconv.Atoi(limitStr)
		if err != nil || v < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", wrapKind(op, ErrBadRequest, err))
			return
		}
		if v > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", wrapKind(op, ErrBadRequest, nil))
			return
		}
		n = v
	}
	entries, err := h.deps.Recent(r.Context(), n)
	if err != nil {
		h.writeReadError(w, op, err)
		return
	}
	if entries == nil {
		entries = []model.EntryAnalysis{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *EntriesHandler) writeReadError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", wrapKind(op, ErrNotFound, err))
	case errors.Is(err, repository.ErrInvalidLimit):
		writeError(w, http.StatusBadRequest, "bad_request", wrapKind(op, ErrBadRequest, err))
	default:
		writeError(w, http.StatusServiceUnavailable, "unavailable", wrapKind(op, ErrUnavailable, err))
	}
}
