package dataset

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/opsboard/pkg/domain/model"
	"github.com/secmon-lab/opsboard/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

// LoadResult is the concatenation of every source of a Loader
type LoadResult struct {
	Incidents []*model.Incident
	Skipped   int
	Sources   []string
}

// Loader reads and parses a fixed list of sources
type Loader struct {
	sources []Source
}

// NewLoader creates a loader. Results are concatenated in the given order.
func NewLoader(sources ...Source) *Loader {
	return &Loader{sources: sources}
}

// Sources returns the configured sources
func (l *Loader) Sources() []Source {
	return l.sources
}

// Load reads every source concurrently. Any failing source fails the whole load.
func (l *Loader) Load(ctx context.Context) (*LoadResult, error) {
	results := make([]*ParseResult, len(l.sources))

	eg, ctx := errgroup.WithContext(ctx)
	for i, src := range l.sources {
		eg.Go(func() error {
			r, err := src.Open(ctx)
			if err != nil {
				return err
			}
			defer r.Close()

			parsed, err := Parse(r)
			if err != nil {
				return goerr.Wrap(err, "failed to parse dataset", goerr.V("source", src.Name()))
			}
			if parsed.Skipped > 0 {
				logging.From(ctx).Warn("skipped malformed rows",
					"source", src.Name(),
					"skipped", parsed.Skipped)
			}

			results[i] = parsed
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	out := &LoadResult{Incidents: []*model.Incident{}}
	for i, r := range results {
		out.Incidents = append(out.Incidents, r.Incidents...)
		out.Skipped += r.Skipped
		out.Sources = append(out.Sources, l.sources[i].Name())
	}

	return out, nil
}
