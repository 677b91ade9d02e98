package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// Configuration errors
	ErrNoDatasetSource    = errors.New("no dataset source configured")
	ErrModelNotLoaded     = errors.New("model not loaded")
	ErrSlackNotConfigured = errors.New("slack is not configured")

	// Input errors
	ErrInvalidFilter = errors.New("invalid filter")
	ErrInvalidLimit  = errors.New("invalid limit")
)

// Context keys for error values
const (
	SnapshotIDKey = "snapshot_id"
	FilterKey     = "filter"
)
