package interfaces

import (
	"context"
	"time"

	"github.com/secmon-lab/opsboard/pkg/domain/model"
)

// IncidentRepository stores the incident dataset snapshot.
//
// The dataset is replaced as a whole on refresh:
// - NO individual Save(incident) method - always use SaveMany for batch writes
// - Worker always uses bulk operations: DeleteAll → SaveMany (Replace strategy)
// - Reads return incidents in the order they were saved
type IncidentRepository interface {
	// List retrieves every stored incident in source order
	List(ctx context.Context) ([]*model.Incident, error)

	// ListBetween retrieves incidents whose calendar day falls within [start, end]
	ListBetween(ctx context.Context, start, end time.Time) ([]*model.Incident, error)

	// SaveMany appends incidents after the ones already stored
	// Handles Firestore batch write limits internally
	SaveMany(ctx context.Context, incidents []*model.Incident) error

	// DeleteAll deletes all stored incidents
	DeleteAll(ctx context.Context) error

	// GetMetadata retrieves refresh metadata. Returns zero metadata if never refreshed.
	GetMetadata(ctx context.Context) (*model.DatasetMetadata, error)

	// SaveMetadata saves refresh metadata
	SaveMetadata(ctx context.Context, metadata *model.DatasetMetadata) error
}
