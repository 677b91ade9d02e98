package worker

import (
	"context"
	"time"

	"github.com/secmon-lab/opsboard/pkg/domain/model"
	"github.com/secmon-lab/opsboard/pkg/utils/logging"
	"github.com/secmon-lab/opsboard/pkg/utils/safe"
)

// Refresher replaces the stored dataset with a fresh load
type Refresher interface {
	Refresh(ctx context.Context) (*model.DatasetMetadata, error)
}

// DatasetRefreshWorker manages background refresh of the incident dataset
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
// - A failed refresh keeps the previously stored dataset
type DatasetRefreshWorker struct {
	refresher Refresher
	interval  time.Duration
	trigger   <-chan struct{}
	stopCh    chan struct{}
	doneCh    chan struct{}
}

// Option configures a DatasetRefreshWorker
type Option func(*DatasetRefreshWorker)

// WithTrigger makes the worker also refresh whenever ch receives
func WithTrigger(ch <-chan struct{}) Option {
	return func(w *DatasetRefreshWorker) {
		w.trigger = ch
	}
}

// NewDatasetRefreshWorker creates a new worker. A non-positive interval disables periodic refresh.
func NewDatasetRefreshWorker(refresher Refresher, interval time.Duration, opts ...Option) *DatasetRefreshWorker {
	w := &DatasetRefreshWorker{
		refresher: refresher,
		interval:  interval,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins the background refresh loop
// - Initial load and periodic refresh both run in a background goroutine
// - Does not block server startup
func (w *DatasetRefreshWorker) Start(ctx context.Context) error {
	logging.Default().Info("Dataset refresh worker starting",
		"interval", w.interval.String(),
		"watch", w.trigger != nil)

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *DatasetRefreshWorker) Stop() {
	logging.Default().Info("Dataset refresh worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("Dataset refresh worker stopped")
}

// run is the main worker loop (runs in goroutine)
func (w *DatasetRefreshWorker) run(ctx context.Context) {
	defer close(w.doneCh)
	defer safe.Recover(ctx, "dataset refresh worker")

	w.refresh(ctx, "initial")

	var tick <-chan time.Time
	if w.interval > 0 {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-tick:
			w.refresh(ctx, "interval")

		case <-w.trigger:
			w.refresh(ctx, "file change")

		case <-w.stopCh:
			logging.Default().Info("Dataset refresh worker received stop signal")
			return

		case <-ctx.Done():
			logging.Default().Info("Dataset refresh worker context cancelled")
			return
		}
	}
}

func (w *DatasetRefreshWorker) refresh(ctx context.Context, reason string) {
	startTime := time.Now()

	meta, err := w.refresher.Refresh(ctx)
	if err != nil {
		// Log error but continue worker
		logging.Default().Error("Dataset refresh failed (keeping previous data)",
			"reason", reason,
			"error", err.Error())
		return
	}

	logging.Default().Info("Dataset refresh completed",
		"reason", reason,
		"snapshot_id", meta.SnapshotID,
		"count", meta.RecordCount,
		"skipped", meta.SkippedRows,
		"duration", time.Since(startTime).String())
}
