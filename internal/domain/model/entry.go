// Package model contains domain models passed between layers.
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/okian/diarium/internal/domain/mood"
	"github.com/okian/diarium/internal/domain/textanalysis"
)

// ErrEmptyText is returned for entries without any text.
var ErrEmptyText = errors.New("entry text is empty")

// Entry is a diary entry submitted for background analysis.
type Entry struct {
	EntryID     string    // unique id for idempotency
	Text        string    // raw entry body, may contain markdown
	SubmittedAt time.Time // time the entry was accepted
}

// Validate reports whether the entry can be analyzed.
func (e Entry) Validate() error {
	if strings.TrimSpace(e.Text) == "" {
		return ErrEmptyText
	}
	return nil
}

// EntryAnalysis is the stored outcome of analyzing one entry.
type EntryAnalysis struct {
	EntryID    string                  `json:"entry_id"`
	Mood       mood.Analysis           `json:"mood"`
	Temporal   textanalysis.Temporal   `json:"temporal"`
	Categories textanalysis.Categories `json:"category"`
	AnalyzedAt time.Time               `json:"analyzed_at"`
}
