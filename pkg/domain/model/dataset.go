package model

import (
	"time"

	"github.com/google/uuid"
)

// DatasetMetadata tracks the health of the loaded incident dataset
type DatasetMetadata struct {
	SnapshotID         string    // Changes on every successful refresh
	Sources            []string  // Source URIs of the last successful refresh
	RecordCount        int       // Number of incidents at last successful refresh
	SkippedRows        int       // Malformed rows dropped at last successful refresh
	LastRefreshSuccess time.Time // Last successful refresh time
	LastRefreshAttempt time.Time // Last refresh attempt time (success or failure)
}

// NewSnapshotID returns a time-ordered identifier for a dataset snapshot
func NewSnapshotID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// DatasetOptions are the distinct values a filter can select from
type DatasetOptions struct {
	MinDate    time.Time `json:"min_date"`
	MaxDate    time.Time `json:"max_date"`
	Regions    []string  `json:"regions"`
	Channels   []string  `json:"channels"`
	Severities []string  `json:"severities"`
	Categories []string  `json:"categories"`
	Subsystems []string  `json:"subsystems"`
	RootCauses []string  `json:"root_causes"`
}
