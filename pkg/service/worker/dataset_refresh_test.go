package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/opsboard/pkg/domain/model"
	"github.com/secmon-lab/opsboard/pkg/service/worker"
)

// mockRefresher is a mock implementation of worker.Refresher for testing
type mockRefresher struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (m *mockRefresher) Refresh(ctx context.Context) (*model.DatasetMetadata, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return &model.DatasetMetadata{SnapshotID: model.NewSnapshotID(), RecordCount: m.calls}, nil
}

func (m *mockRefresher) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *mockRefresher) setError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestDatasetRefreshWorker_ImmediateInitialLoad(t *testing.T) {
	ctx := context.Background()
	refresher := &mockRefresher{}

	w := worker.NewDatasetRefreshWorker(refresher, 10*time.Minute)
	gt.NoError(t, w.Start(ctx)).Required()
	defer w.Stop()

	waitFor(t, func() bool { return refresher.callCount() == 1 })
}

func TestDatasetRefreshWorker_PeriodicRefresh(t *testing.T) {
	ctx := context.Background()
	refresher := &mockRefresher{}

	w := worker.NewDatasetRefreshWorker(refresher, 50*time.Millisecond)
	gt.NoError(t, w.Start(ctx)).Required()
	defer w.Stop()

	waitFor(t, func() bool { return refresher.callCount() >= 3 })
}

func TestDatasetRefreshWorker_Trigger(t *testing.T) {
	ctx := context.Background()
	refresher := &mockRefresher{}
	trigger := make(chan struct{})

	// Periodic refresh disabled
	w := worker.NewDatasetRefreshWorker(refresher, 0, worker.WithTrigger(trigger))
	gt.NoError(t, w.Start(ctx)).Required()
	defer w.Stop()

	waitFor(t, func() bool { return refresher.callCount() == 1 })

	trigger <- struct{}{}
	waitFor(t, func() bool { return refresher.callCount() == 2 })
}

func TestDatasetRefreshWorker_KeepsRunningAfterErrors(t *testing.T) {
	ctx := context.Background()
	refresher := &mockRefresher{}
	refresher.setError(errors.New("source unavailable"))

	w := worker.NewDatasetRefreshWorker(refresher, 30*time.Millisecond)
	gt.NoError(t, w.Start(ctx)).Required()
	defer w.Stop()

	waitFor(t, func() bool { return refresher.callCount() >= 2 })

	refresher.setError(nil)
	n := refresher.callCount()
	waitFor(t, func() bool { return refresher.callCount() > n })
}

func TestDatasetRefreshWorker_StopsCleanly(t *testing.T) {
	ctx := context.Background()
	refresher := &mockRefresher{}

	w := worker.NewDatasetRefreshWorker(refresher, 100*time.Millisecond)
	gt.NoError(t, w.Start(ctx)).Required()

	time.Sleep(50 * time.Millisecond)

	stopStart := time.Now()
	w.Stop()
	gt.B(t, time.Since(stopStart) < time.Second).True()
}
