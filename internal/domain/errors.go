package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// Event errors
	ErrNegativePoints = errors.New("event points must be non-negative")
	ErrEmptyEventID   = errors.New("event id must not be empty")

	// Store errors
	ErrProgressCorrupt = errors.New("progress file is not valid JSON")
)
