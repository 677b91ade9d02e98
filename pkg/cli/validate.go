package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/opsboard/pkg/cli/config"
	"github.com/secmon-lab/opsboard/pkg/service/dataset"
	"github.com/secmon-lab/opsboard/pkg/utils/logging"
	"github.com/secmon-lab/opsboard/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var appCfg config.AppConfig
	var datasetCfg config.Dataset
	var churnCfg config.Churn
	var strict bool

	var flags []cli.Flag
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, datasetCfg.Flags()...)
	flags = append(flags, churnCfg.Flags()...)
	flags = append(flags, &cli.BoolFlag{
		Name:        "strict",
		Usage:       "Fail when any dataset row is skipped",
		Destination: &strict,
	})

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate the dataset, app configuration and churn model",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()
			w := c.Root().Writer

			// Step 1: Load and validate configuration file
			app, err := appCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "configuration validation failed")
			}
			logger.Info("Configuration validation passed", "title", app.Title)

			// Step 2: Parse every dataset source
			var skipped int
			for _, uri := range datasetSources(&datasetCfg) {
				n, err := validateSource(ctx, w, uri)
				if err != nil {
					return goerr.Wrap(err, "dataset validation failed", goerr.V("source", uri))
				}
				skipped += n
			}

			// Step 3: Load the churn model
			if churnCfg.IsConfigured() {
				svc, err := churnCfg.Configure(app)
				if err != nil {
					return goerr.Wrap(err, "churn model validation failed", goerr.V("path", churnCfg.ModelPath()))
				}
				_, _ = okColor.Fprintf(w, "model %s: ok (%s)\n", churnCfg.ModelPath(), svc.ModelName())
			}

			if strict && skipped > 0 {
				return goerr.New("dataset has skipped rows", goerr.V("skipped", skipped))
			}

			logger.Info("Validation passed")
			return nil
		},
	}
}

func datasetSources(cfg *config.Dataset) []string {
	if !cfg.IsConfigured() {
		return nil
	}
	return cfg.URIs()
}

// validateSource parses one source and reports skipped rows. Returns the skipped count.
func validateSource(ctx context.Context, w io.Writer, uri string) (int, error) {
	src, err := dataset.NewSource(ctx, uri)
	if err != nil {
		return 0, err
	}
	if closer, ok := src.(io.Closer); ok {
		defer safe.Close(ctx, closer)
	}

	r, err := src.Open(ctx)
	if err != nil {
		return 0, err
	}
	defer safe.Close(ctx, r)

	result, err := dataset.Parse(r)
	if err != nil {
		return 0, err
	}

	if result.Skipped == 0 {
		_, _ = okColor.Fprintf(w, "%s: ok (%d incidents)\n", uri, len(result.Incidents))
		return 0, nil
	}

	_, _ = warnColor.Fprintf(w, "%s: %d incidents, %d rows skipped\n", uri, len(result.Incidents), result.Skipped)
	for _, e := range result.Errors {
		_, _ = fmt.Fprintf(w, "  line %d: invalid %s %q\n", e.Line, e.Column, e.Value)
	}
	return result.Skipped, nil
}
