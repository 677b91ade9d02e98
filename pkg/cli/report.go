package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/opsboard/pkg/analytics"
	"github.com/secmon-lab/opsboard/pkg/cli/config"
	"github.com/secmon-lab/opsboard/pkg/domain/interfaces"
	"github.com/secmon-lab/opsboard/pkg/domain/model"
	"github.com/secmon-lab/opsboard/pkg/domain/types"
	"github.com/secmon-lab/opsboard/pkg/usecase"
	"github.com/secmon-lab/opsboard/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	labelColor   = color.New(color.FgWhite, color.Bold)
	warnColor    = color.New(color.FgYellow)
	alertColor   = color.New(color.FgRed, color.Bold)
	okColor      = color.New(color.FgGreen, color.Bold)
)

// newUseCases builds use cases over repo, loading the dataset first when sources are given
func newUseCases(ctx context.Context, repo interfaces.Repository, app *config.AppFile, datasetCfg *config.Dataset, opts ...usecase.Option) (*usecase.UseCases, error) {
	opts = append([]usecase.Option{usecase.WithSettings(app.Settings())}, opts...)

	if !datasetCfg.IsConfigured() {
		return usecase.New(repo, opts...), nil
	}

	loader, closeSources, err := datasetCfg.Configure(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to configure dataset")
	}
	defer closeSources()

	uc := usecase.New(repo, append(opts, usecase.WithLoader(loader))...)
	meta, err := uc.Dataset.Refresh(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load dataset")
	}
	logging.Default().Info("Dataset loaded",
		"snapshot_id", meta.SnapshotID,
		"count", meta.RecordCount,
		"skipped", meta.SkippedRows)

	return uc, nil
}

func cmdReport() *cli.Command {
	var appCfg config.AppConfig
	var repoCfg config.Repository
	var datasetCfg config.Dataset
	var slackCfg config.Slack
	var filterCfg config.Filter
	var post bool

	var flags []cli.Flag
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, datasetCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, filterCfg.Flags()...)
	flags = append(flags, &cli.BoolFlag{
		Name:        "post",
		Usage:       "Post the report to the Slack channel given by --slack-channel",
		Destination: &post,
	})

	return &cli.Command{
		Name:    "report",
		Aliases: []string{"r"},
		Usage:   "Print KPIs and insights for a filter",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			app, err := appCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load app configuration")
			}

			partial, err := filterCfg.Filter()
			if err != nil {
				return err
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			var ucOpts []usecase.Option
			if post {
				slackSvc, err := slackCfg.Configure()
				if err != nil {
					return err
				}
				if slackSvc == nil {
					return goerr.Wrap(usecase.ErrSlackNotConfigured, "--post requires --slack-bot-token")
				}
				ucOpts = append(ucOpts, usecase.WithSlackService(slackSvc))
			}

			uc, err := newUseCases(ctx, repo, app, &datasetCfg, ucOpts...)
			if err != nil {
				return err
			}

			f, err := uc.Dashboard.Complete(ctx, partial)
			if err != nil {
				return goerr.Wrap(err, "failed to complete filter")
			}
			dashboard, err := uc.Dashboard.Build(ctx, *f)
			if err != nil {
				return goerr.Wrap(err, "failed to build dashboard")
			}

			printReport(c.Root().Writer, app.Title, dashboard)

			if post {
				channel := slackCfg.Channel()
				if channel == "" {
					channel = app.Digest.Channel
				}
				if channel == "" {
					return goerr.New("--post requires --slack-channel or digest.channel in config")
				}
				result, err := uc.Digest.Post(ctx, channel, *f)
				if err != nil {
					return goerr.Wrap(err, "failed to post report")
				}
				logging.Default().Info("Report posted", "channel_id", result.ChannelID, "ts", result.Timestamp)
				_, _ = okColor.Fprintf(c.Root().Writer, "Posted to %s (ts %s)\n", result.ChannelID, result.Timestamp)
			}

			return nil
		},
	}
}

func printReport(w io.Writer, title string, d *model.Dashboard) {
	_, _ = headingColor.Fprintln(w, title)
	_, _ = fmt.Fprintf(w, "Period: %s to %s  SLA: %s\n\n",
		d.Filter.Start.Format(model.DateLayout),
		d.Filter.End.Format(model.DateLayout),
		d.Filter.SLA.Normalize())

	if d.Empty {
		_, _ = warnColor.Fprintln(w, d.Message)
		return
	}

	k := d.KPIs
	rows := []struct {
		label string
		value string
	}{
		{"Total Incidents", analytics.FormatCount(k.TotalIncidents)},
		{"SLA Breach Rate", analytics.FormatPercent(k.SLABreachRate)},
		{"Avg Resolution Hours", fmt.Sprintf("%.2f", k.AvgResolutionHours)},
		{"Total Financial Impact", analytics.FormatUSDCents(k.TotalFinancialImpact)},
		{"Repeat Incident Rate", analytics.FormatPercent(k.RepeatRate)},
	}
	for _, row := range rows {
		_, _ = labelColor.Fprintf(w, "%-24s", row.label)
		_, _ = fmt.Fprintln(w, row.value)
	}

	_, _ = fmt.Fprintln(w)
	_, _ = headingColor.Fprintln(w, "Insights")
	for _, insight := range d.Insights {
		c := okColor
		if insight.Kind == types.InsightBreachRootCause {
			c = alertColor
		}
		_, _ = c.Fprint(w, "  * ")
		_, _ = fmt.Fprintln(w, insight.Text)
	}

	if len(d.TopIncidents) > 0 {
		_, _ = fmt.Fprintln(w)
		_, _ = headingColor.Fprintln(w, "Top Incidents by Financial Impact")
		for _, inc := range d.TopIncidents {
			_, _ = fmt.Fprintf(w, "  %-12s %s  %-10s %-16s %12s\n",
				inc.ID, inc.Date.Format(model.DateLayout), inc.Region, inc.Category,
				analytics.FormatUSDCents(inc.FinancialImpact))
		}
	}
}
