package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/opsboard/pkg/cli/config"
	"github.com/secmon-lab/opsboard/pkg/usecase"
	"github.com/secmon-lab/opsboard/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdLoad() *cli.Command {
	var repoCfg config.Repository
	var datasetCfg config.Dataset

	var flags []cli.Flag
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, datasetCfg.Flags()...)

	return &cli.Command{
		Name:    "load",
		Aliases: []string{"l"},
		Usage:   "Load incident CSV sources into the repository",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			loader, closeSources, err := datasetCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer closeSources()

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			uc := usecase.New(repo, usecase.WithLoader(loader))
			meta, err := uc.Dataset.Refresh(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to load dataset")
			}

			w := c.Root().Writer
			_, _ = okColor.Fprintln(w, "Dataset loaded")
			_, _ = fmt.Fprintf(w, "  snapshot: %s\n  incidents: %d\n  skipped rows: %d\n  backend: %s\n",
				meta.SnapshotID, meta.RecordCount, meta.SkippedRows, repoCfg.Backend())
			return nil
		},
	}
}
