package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/opsboard/pkg/domain/interfaces"
	"github.com/secmon-lab/opsboard/pkg/domain/model"
	"github.com/secmon-lab/opsboard/pkg/service/dataset"
	"github.com/secmon-lab/opsboard/pkg/utils/logging"
)

// DatasetUseCase replaces the stored incident dataset from the configured sources
type DatasetUseCase struct {
	repo      interfaces.Repository
	loader    *dataset.Loader
	dashboard *DashboardUseCase

	mu sync.Mutex
}

func NewDatasetUseCase(repo interfaces.Repository, loader *dataset.Loader, dashboard *DashboardUseCase) *DatasetUseCase {
	return &DatasetUseCase{
		repo:      repo,
		loader:    loader,
		dashboard: dashboard,
	}
}

// Refresh performs a single refresh cycle (Replace strategy: DeleteAll → SaveMany).
// On failure the previously stored dataset and its snapshot ID are kept.
func (uc *DatasetUseCase) Refresh(ctx context.Context) (*model.DatasetMetadata, error) {
	if uc.loader == nil {
		return nil, goerr.Wrap(ErrNoDatasetSource, "cannot refresh dataset")
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	startTime := time.Now()

	// Get existing metadata to preserve values on failure
	existing, err := uc.repo.Incident().GetMetadata(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get existing metadata")
	}

	attempt := *existing
	attempt.LastRefreshAttempt = startTime
	if err := uc.repo.Incident().SaveMetadata(ctx, &attempt); err != nil {
		return nil, goerr.Wrap(err, "failed to save refresh attempt metadata")
	}

	loaded, err := uc.loader.Load(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load dataset")
	}

	if err := uc.repo.Incident().DeleteAll(ctx); err != nil {
		return nil, goerr.Wrap(err, "failed to delete existing incidents")
	}
	if err := uc.repo.Incident().SaveMany(ctx, loaded.Incidents); err != nil {
		return nil, goerr.Wrap(err, "failed to save incidents", goerr.V("count", len(loaded.Incidents)))
	}

	success := &model.DatasetMetadata{
		SnapshotID:         model.NewSnapshotID(),
		Sources:            loaded.Sources,
		RecordCount:        len(loaded.Incidents),
		SkippedRows:        loaded.Skipped,
		LastRefreshSuccess: startTime,
		LastRefreshAttempt: startTime,
	}
	if err := uc.repo.Incident().SaveMetadata(ctx, success); err != nil {
		return nil, goerr.Wrap(err, "failed to save refresh success metadata")
	}

	if uc.dashboard != nil {
		uc.dashboard.Invalidate()
	}

	logging.From(ctx).Info("Dataset replaced",
		"snapshot_id", success.SnapshotID,
		"count", success.RecordCount,
		"skipped", success.SkippedRows)

	return success, nil
}

// Status returns the refresh metadata of the stored dataset
func (uc *DatasetUseCase) Status(ctx context.Context) (*model.DatasetMetadata, error) {
	meta, err := uc.repo.Incident().GetMetadata(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get dataset metadata")
	}
	return meta, nil
}
