package dataset

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/Songmu/retry"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/opsboard/pkg/utils/logging"
)

// Source is a readable location of an incident CSV
type Source interface {
	// Name returns the URI the source was created from
	Name() string
	// Open returns a reader for the CSV content. The caller closes it.
	Open(ctx context.Context) (io.ReadCloser, error)
}

const gcsScheme = "gs://"

// NewSource selects a Source implementation by URI scheme.
// Plain paths and file:// URIs are local files, gs://bucket/object is Cloud Storage.
func NewSource(ctx context.Context, uri string) (Source, error) {
	switch {
	case strings.HasPrefix(uri, gcsScheme):
		bucket, object, ok := strings.Cut(strings.TrimPrefix(uri, gcsScheme), "/")
		if !ok || bucket == "" || object == "" {
			return nil, goerr.Wrap(ErrUnsupportedSource, "invalid Cloud Storage URI", goerr.V("uri", uri))
		}
		return NewGCSSource(ctx, bucket, object)

	case strings.HasPrefix(uri, "file://"):
		return NewFileSource(strings.TrimPrefix(uri, "file://")), nil

	case strings.Contains(uri, "://"):
		return nil, goerr.Wrap(ErrUnsupportedSource, "unknown URI scheme", goerr.V("uri", uri))

	default:
		return NewFileSource(uri), nil
	}
}

// FileSource reads a CSV from the local filesystem
type FileSource struct {
	path string
}

// NewFileSource creates a source for a local file
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Name() string { return s.path }

// Path returns the local path of the file
func (s *FileSource) Path() string { return s.path }

func (s *FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open dataset file", goerr.V("path", s.path))
	}
	return f, nil
}

// GCSSource reads a CSV object from Cloud Storage
type GCSSource struct {
	client   *storage.Client
	bucket   string
	object   string
	attempts uint
	interval time.Duration
	open     func(ctx context.Context) (io.ReadCloser, error)
}

// GCSOption configures a GCSSource
type GCSOption func(*GCSSource)

// WithRetry sets how many times opening the object is attempted
func WithRetry(attempts uint, interval time.Duration) GCSOption {
	return func(s *GCSSource) {
		s.attempts = attempts
		s.interval = interval
	}
}

// NewGCSSource creates a Cloud Storage source using application default credentials
func NewGCSSource(ctx context.Context, bucket, object string, opts ...GCSOption) (*GCSSource, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Cloud Storage client",
			goerr.V("bucket", bucket), goerr.V("object", object))
	}

	s := &GCSSource{
		client:   client,
		bucket:   bucket,
		object:   object,
		attempts: 3,
		interval: time.Second,
	}
	s.open = s.newReader
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *GCSSource) newReader(ctx context.Context) (io.ReadCloser, error) {
	r, err := s.client.Bucket(s.bucket).Object(s.object).NewReader(ctx)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (s *GCSSource) Name() string { return gcsScheme + s.bucket + "/" + s.object }

func (s *GCSSource) Open(ctx context.Context) (io.ReadCloser, error) {
	var reader io.ReadCloser
	var permanent error
	err := retry.WithContext(ctx, s.attempts, s.interval, func() error {
		if err := ctx.Err(); err != nil {
			permanent = err
			return nil
		}
		r, err := s.open(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				permanent = ctxErr
				return nil
			}
			if isNotExist(err) {
				permanent = err
				return nil
			}
			logging.From(ctx).Warn("failed to open Cloud Storage object, retrying",
				"uri", s.Name(),
				"error", err.Error())
			return err
		}
		reader = r
		return nil
	})
	if permanent != nil {
		err = permanent
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open Cloud Storage object",
			goerr.V("bucket", s.bucket),
			goerr.V("object", s.object))
	}
	return reader, nil
}

func isNotExist(err error) bool {
	return errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist)
}

// Close releases the Cloud Storage client
func (s *GCSSource) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}
