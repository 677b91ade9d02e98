package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/opsboard/pkg/cli/config"
	httpctrl "github.com/secmon-lab/opsboard/pkg/controller/http"
	"github.com/secmon-lab/opsboard/pkg/service/dataset"
	"github.com/secmon-lab/opsboard/pkg/service/worker"
	"github.com/secmon-lab/opsboard/pkg/usecase"
	"github.com/secmon-lab/opsboard/pkg/utils/errutil"
	"github.com/secmon-lab/opsboard/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var appCfg config.AppConfig
	var repoCfg config.Repository
	var datasetCfg config.Dataset
	var slackCfg config.Slack
	var churnCfg config.Churn

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("OPSBOARD_ADDR"),
			Destination: &addr,
		},
	}

	// Add shared config flags
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, datasetCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, churnCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			app, err := appCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load app configuration")
			}

			// Initialize repository based on backend type
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			ucOpts := []usecase.Option{
				usecase.WithSettings(app.Settings()),
			}

			var loader *dataset.Loader
			if datasetCfg.IsConfigured() {
				l, closeSources, err := datasetCfg.Configure(ctx)
				if err != nil {
					return goerr.Wrap(err, "failed to configure dataset")
				}
				defer closeSources()
				loader = l
				ucOpts = append(ucOpts, usecase.WithLoader(loader))
			} else {
				logging.Default().Warn("No dataset source configured, serving the stored dataset only")
			}

			// A broken model must not stop the dashboard
			churnSvc, err := churnCfg.Configure(app)
			if err != nil {
				_ = errutil.Handle(ctx, err, "Churn model not loaded")
			} else if churnSvc != nil {
				ucOpts = append(ucOpts, usecase.WithChurnService(churnSvc))
				logging.Default().Info("Churn model loaded", "name", churnSvc.ModelName())
			}

			slackSvc, err := slackCfg.Configure()
			if err != nil {
				return err
			}
			if slackSvc != nil {
				ucOpts = append(ucOpts, usecase.WithSlackService(slackSvc))
				logging.Default().Info("Slack digest enabled")
			}

			uc := usecase.New(repo, ucOpts...)

			// Start dataset refresh worker
			// N+1 Prevention Policy: Worker uses DeleteAll → SaveMany (Replace strategy)
			var refreshWorker *worker.DatasetRefreshWorker
			var watcher *dataset.Watcher
			if loader != nil {
				var workerOpts []worker.Option
				if datasetCfg.Watch() {
					watcher, err = dataset.NewWatcher(loader.Sources(), dataset.DefaultDebounce)
					if err != nil {
						return goerr.Wrap(err, "failed to watch dataset files")
					}
					if watcher != nil {
						watcher.Start(ctx)
						workerOpts = append(workerOpts, worker.WithTrigger(watcher.Changes()))
					}
				}

				refreshWorker = worker.NewDatasetRefreshWorker(uc.Dataset, time.Duration(app.RefreshInterval), workerOpts...)
				if err := refreshWorker.Start(ctx); err != nil {
					return goerr.Wrap(err, "failed to start dataset refresh worker")
				}
			}

			digestChannel := slackCfg.Channel()
			if digestChannel == "" {
				digestChannel = app.Digest.Channel
			}

			// Create HTTP server
			httpHandler, err := httpctrl.New(uc, httpctrl.WithDigestChannel(digestChannel))
			if err != nil {
				return goerr.Wrap(err, "failed to create http server")
			}
			server := &http.Server{
				Addr:              addr,
				Handler:           httpHandler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			// Start server in goroutine
			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr, "title", app.Title)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			stopWorkers := func() {
				if watcher != nil {
					watcher.Stop()
				}
				if refreshWorker != nil {
					refreshWorker.Stop()
				}
			}

			// Wait for shutdown signal or server error
			select {
			case err := <-errCh:
				stopWorkers()
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				// Stop background workers first
				stopWorkers()

				// Create shutdown context with timeout
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				// Attempt graceful shutdown
				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
