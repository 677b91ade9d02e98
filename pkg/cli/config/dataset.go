package config

import (
	"context"
	"io"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/opsboard/pkg/service/dataset"
	"github.com/secmon-lab/opsboard/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Dataset holds CLI flags for the incident CSV sources
type Dataset struct {
	sources []string
	watch   bool
}

func (x *Dataset) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:        "dataset",
			Aliases:     []string{"d"},
			Usage:       "Incident CSV source (local path, file:// or gs://bucket/object). Repeatable",
			Category:    "Dataset",
			Sources:     cli.EnvVars("OPSBOARD_DATASET"),
			Destination: &x.sources,
		},
		&cli.BoolFlag{
			Name:        "dataset-watch",
			Usage:       "Reload the dataset when a local source file changes",
			Category:    "Dataset",
			Value:       true,
			Sources:     cli.EnvVars("OPSBOARD_DATASET_WATCH"),
			Destination: &x.watch,
		},
	}
}

func (x Dataset) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("sources", x.sources),
		slog.Bool("watch", x.watch),
	)
}

// IsConfigured reports whether any source is given
func (x *Dataset) IsConfigured() bool {
	return len(x.sources) > 0
}

// Watch reports whether local sources should be watched
func (x *Dataset) Watch() bool {
	return x.watch
}

// Configure opens every source and returns a loader over them.
// The returned function releases remote clients.
func (x *Dataset) Configure(ctx context.Context) (*dataset.Loader, func(), error) {
	if len(x.sources) == 0 {
		return nil, nil, goerr.Wrap(ErrNoDatasetSource, "no --dataset given")
	}

	var sources []dataset.Source
	closer := func() {
		for _, src := range sources {
			if c, ok := src.(io.Closer); ok {
				if err := c.Close(); err != nil {
					logging.Default().Error("failed to close dataset source", "source", src.Name(), "error", err)
				}
			}
		}
	}

	for _, uri := range x.sources {
		src, err := dataset.NewSource(ctx, uri)
		if err != nil {
			closer()
			return nil, nil, goerr.Wrap(err, "failed to configure dataset source", goerr.V("uri", uri))
		}
		sources = append(sources, src)
	}

	logging.Default().Info("Dataset sources configured", "count", len(sources))
	return dataset.NewLoader(sources...), closer, nil
}

// URIs returns the configured source URIs
func (x *Dataset) URIs() []string {
	return x.sources
}
