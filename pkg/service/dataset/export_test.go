package dataset

import (
	"context"
	"io"
	"time"
)

// NewGCSSourceForTest creates a Cloud Storage source whose object reads go through open
func NewGCSSourceForTest(bucket, object string, open func(ctx context.Context) (io.ReadCloser, error)) *GCSSource {
	return &GCSSource{
		bucket:   bucket,
		object:   object,
		attempts: 3,
		interval: time.Millisecond,
		open:     open,
	}
}

// WatchedDirs returns the directories registered with the file watcher, nil once closed
func (w *Watcher) WatchedDirs() []string {
	return w.watcher.WatchList()
}
