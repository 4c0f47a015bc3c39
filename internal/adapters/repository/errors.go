package repository

import "errors"

// Sentinel kinds for analysis store errors.
var (
	ErrNotFound     = errors.New("entry analysis not found")
	ErrInvalidLimit = errors.New("invalid limit")
	ErrMissingID    = errors.New("entry id is required")
)
