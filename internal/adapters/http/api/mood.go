package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/diarium/internal/domain/mood"
	"github.com/okian/diarium/internal/domain/textanalysis"
)

// MoodDependencies defines the synchronous classification operations.
type MoodDependencies interface {
	AnalyzeMood(ctx context.Context, text string) mood.Analysis
	AnalyzeText(text string) textanalysis.Result
}

// MoodHandler handles the synchronous analyze endpoints.
type MoodHandler struct {
	deps MoodDependencies
}

// NewMoodHandler creates a new mood handler.
func NewMoodHandler(deps MoodDependencies) *MoodHandler {
	return &MoodHandler{deps: deps}
}

// HandleAnalyzeMood handles POST /api/analyze-mood requests.
func (h *MoodHandler) HandleAnalyzeMood(w http.ResponseWriter, r *http.Request) {
	const op = "api.analyze_mood"
	text, err := decodeText(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", wrapKind(op, ErrBadRequest, err))
		return
	}
	writeJSON(w, http.StatusOK, newMoodResponse(h.deps.AnalyzeMood(r.Context(), text)))
}

// HandleAnalyzeText handles POST /api/analyze-text requests.
func (h *MoodHandler) HandleAnalyzeText(w http.ResponseWriter, r *http.Request) {
	const op = "api.analyze_text"
	text, err := decodeText(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", wrapKind(op, ErrBadRequest, err))
		return
	}
	writeJSON(w, http.StatusOK, h.deps.AnalyzeText(text))
}

// decodeText reads {"text": ...}. An empty string is valid input; a missing
// field is not.
func decodeText(r *http.Request) (string, error) {
	var req textRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return "", err
	}
	if req.Text == nil {
		return "", errors.New("missing text")
	}
	return *req.Text, nil
}
