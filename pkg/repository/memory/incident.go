package memory

import (
	"context"
	"sync"
	"time"

	"github.com/secmon-lab/opsboard/pkg/domain/interfaces"
	"github.com/secmon-lab/opsboard/pkg/domain/model"
)

type incidentRepository struct {
	mu        sync.RWMutex
	incidents []*model.Incident
	metadata  *model.DatasetMetadata
}

var _ interfaces.IncidentRepository = &incidentRepository{}

func newIncidentRepository() *incidentRepository {
	return &incidentRepository{
		metadata: &model.DatasetMetadata{},
	}
}

// List retrieves all incidents in the order they were saved
func (r *incidentRepository) List(ctx context.Context) ([]*model.Incident, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Incident, 0, len(r.incidents))
	for _, x := range r.incidents {
		// Return a copy to prevent external modifications
		incidentCopy := *x
		result = append(result, &incidentCopy)
	}

	return result, nil
}

// ListBetween retrieves incidents whose calendar day is within [start, end]
func (r *incidentRepository) ListBetween(ctx context.Context, start, end time.Time) ([]*model.Incident, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	start = model.TruncateDay(start)
	end = model.TruncateDay(end)

	result := make([]*model.Incident, 0)
	for _, x := range r.incidents {
		day := x.Day()
		if day.Before(start) || day.After(end) {
			continue
		}
		incidentCopy := *x
		result = append(result, &incidentCopy)
	}

	return result, nil
}

// SaveMany appends incidents after the stored ones
func (r *incidentRepository) SaveMany(ctx context.Context, incidents []*model.Incident) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, x := range incidents {
		// Store a copy to prevent external modifications
		incidentCopy := *x
		r.incidents = append(r.incidents, &incidentCopy)
	}

	return nil
}

// DeleteAll deletes all incidents from memory
func (r *incidentRepository) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.incidents = nil
	return nil
}

// GetMetadata retrieves refresh metadata
func (r *incidentRepository) GetMetadata(ctx context.Context) (*model.DatasetMetadata, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	metadataCopy := *r.metadata
	metadataCopy.Sources = append([]string(nil), r.metadata.Sources...)
	return &metadataCopy, nil
}

// SaveMetadata saves refresh metadata
func (r *incidentRepository) SaveMetadata(ctx context.Context, metadata *model.DatasetMetadata) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	metadataCopy := *metadata
	metadataCopy.Sources = append([]string(nil), metadata.Sources...)
	r.metadata = &metadataCopy
	return nil
}
