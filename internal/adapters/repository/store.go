// Package repository stores completed entry analyses.
package repository

import (
	"context"

	"github.com/okian/diarium/internal/domain/model"
)

// Store provides read/write access to analysis results.
type Store interface {
	// Save inserts or replaces the analysis for its entry.
	Save(ctx context.Context, a model.EntryAnalysis) error

	// Get returns the analysis for an entry or ErrNotFound.
	Get(ctx context.Context, entryID string) (model.EntryAnalysis, error)

	// Recent returns up to n analyses, newest first.
	Recent(ctx context.Context, n int) ([]model.EntryAnalysis, error)

	// Count returns the number of stored analyses.
	Count(ctx context.Context) int
}
