package dataset_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/opsboard/pkg/service/dataset"
)

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	path := writeCSV(t, dir, "incidents.csv", "")
	other := writeCSV(t, dir, "other.csv", "")

	w, err := dataset.NewWatcher([]dataset.Source{dataset.NewFileSource(path)}, 50*time.Millisecond)
	gt.NoError(t, err).Required()
	gt.V(t, w).NotNil()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)
	defer w.Stop()

	// Unrelated files in the same directory are ignored
	gt.NoError(t, os.WriteFile(other, []byte("x"), 0o600))
	select {
	case <-w.Changes():
		t.Fatal("unexpected change signal for unrelated file")
	case <-time.After(200 * time.Millisecond):
	}

	for range 3 {
		gt.NoError(t, os.WriteFile(path, []byte(header), 0o600))
	}

	select {
	case <-w.Changes():
	case <-time.After(5 * time.Second):
		t.Fatal("no change signal after writing dataset file")
	}
}

func TestWatcherWithoutLocalSources(t *testing.T) {
	w, err := dataset.NewWatcher(nil, 0)
	gt.NoError(t, err)
	gt.V(t, w).Nil()
}

func TestWatcherStopWithoutStart(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "incidents.csv", "")

	w, err := dataset.NewWatcher([]dataset.Source{dataset.NewFileSource(path)}, 0)
	gt.NoError(t, err).Required()
	gt.A(t, w.WatchedDirs()).Length(1)

	w.Stop()
	gt.B(t, w.WatchedDirs() == nil).True()

	// Stopped watchers can neither restart nor be closed twice
	w.Start(context.Background())
	w.Stop()
}
