package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/opsboard/pkg/service/churn"
	"github.com/urfave/cli/v3"
)

// Churn holds the path of the churn model file
type Churn struct {
	modelPath string
}

func (x *Churn) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "churn-model",
			Usage:       "Path to churn model file (JSON, or TOML as fallback)",
			Category:    "Churn",
			Sources:     cli.EnvVars("OPSBOARD_CHURN_MODEL"),
			Destination: &x.modelPath,
		},
	}
}

func (x Churn) LogValue() slog.Value {
	return slog.GroupValue(slog.String("model", x.modelPath))
}

// IsConfigured reports whether a model path is set
func (x *Churn) IsConfigured() bool {
	return x.modelPath != ""
}

// ModelPath returns the model file path
func (x *Churn) ModelPath() string {
	return x.modelPath
}

// Configure loads the model and builds the prediction service.
// Returns nil without error when no model path is set.
func (x *Churn) Configure(app *AppFile) (*churn.Service, error) {
	if x.modelPath == "" {
		return nil, nil
	}

	m, err := churn.Load(x.modelPath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load churn model")
	}

	var opts []churn.Option
	if app != nil {
		opts = append(opts,
			churn.WithSegmenter(app.Segmenter()),
			churn.WithTopFeatures(app.Churn.TopFeatures),
		)
	}
	return churn.New(m, opts...), nil
}
