package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/opsboard/pkg/service/churn"
	"github.com/secmon-lab/opsboard/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// Default dataset refresh interval
const DefaultRefreshInterval = 15 * time.Minute

// AppFile is the optional TOML application configuration
type AppFile struct {
	Title           string      `toml:"title"`
	Description     string      `toml:"description"`
	TopIncidents    int         `toml:"top_incidents"`
	RefreshInterval Duration    `toml:"refresh_interval"`
	CacheTTL        Duration    `toml:"cache_ttl"`
	Churn           ChurnConfig `toml:"churn"`
	Digest          Digest      `toml:"digest"`
}

// ChurnConfig holds the risk bands of churn predictions
type ChurnConfig struct {
	HighThreshold   float64 `toml:"high_threshold"`
	MediumThreshold float64 `toml:"medium_threshold"`
	TopFeatures     int     `toml:"top_features"`
}

// Digest holds Slack digest defaults
type Digest struct {
	Channel string `toml:"channel"`
}

// Duration is a time.Duration written as a string ("15m") in TOML
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return goerr.Wrap(err, "invalid duration", goerr.V(ValueKey, string(text)))
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// DefaultAppFile returns the configuration used when no file is given
func DefaultAppFile() *AppFile {
	seg := churn.DefaultSegmenter()
	return &AppFile{
		Title:           usecase.DefaultTitle,
		TopIncidents:    usecase.DefaultTopIncidents,
		RefreshInterval: Duration(DefaultRefreshInterval),
		CacheTTL:        Duration(usecase.DefaultCacheTTL),
		Churn: ChurnConfig{
			HighThreshold:   seg.High,
			MediumThreshold: seg.Medium,
			TopFeatures:     churn.DefaultTopFeatures,
		},
	}
}

// Validate checks if the AppFile is valid
func (a *AppFile) Validate() error {
	if a.Title == "" {
		return goerr.Wrap(ErrInvalidConfig, "title is required", goerr.V(FieldKey, "title"))
	}
	if a.TopIncidents < 1 || a.TopIncidents > usecase.MaxTopIncidents {
		return goerr.Wrap(ErrInvalidConfig, "top_incidents out of range",
			goerr.V(FieldKey, "top_incidents"), goerr.V(ValueKey, a.TopIncidents))
	}
	if a.RefreshInterval < 0 {
		return goerr.Wrap(ErrInvalidConfig, "refresh_interval must not be negative",
			goerr.V(FieldKey, "refresh_interval"), goerr.V(ValueKey, time.Duration(a.RefreshInterval).String()))
	}
	if a.CacheTTL < 0 {
		return goerr.Wrap(ErrInvalidConfig, "cache_ttl must not be negative",
			goerr.V(FieldKey, "cache_ttl"), goerr.V(ValueKey, time.Duration(a.CacheTTL).String()))
	}
	c := a.Churn
	if c.MediumThreshold <= 0 || c.HighThreshold >= 1 || c.MediumThreshold >= c.HighThreshold {
		return goerr.Wrap(ErrInvalidThresholds, "thresholds must satisfy 0 < medium < high < 1",
			goerr.V("high", c.HighThreshold), goerr.V("medium", c.MediumThreshold))
	}
	if c.TopFeatures < 1 {
		return goerr.Wrap(ErrInvalidConfig, "churn.top_features must be positive",
			goerr.V(FieldKey, "churn.top_features"), goerr.V(ValueKey, c.TopFeatures))
	}
	return nil
}

// Settings converts the file into dashboard settings
func (a *AppFile) Settings() usecase.Settings {
	return usecase.Settings{
		Title:        a.Title,
		Description:  a.Description,
		TopIncidents: a.TopIncidents,
		CacheTTL:     time.Duration(a.CacheTTL),
	}
}

// Segmenter converts the churn thresholds into risk bands
func (a *AppFile) Segmenter() churn.Segmenter {
	return churn.Segmenter{
		High:   a.Churn.HighThreshold,
		Medium: a.Churn.MediumThreshold,
	}
}

// LoadAppConfiguration loads the application configuration from a TOML file.
// Keys absent from the file keep their defaults.
func LoadAppConfiguration(path string) (*AppFile, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrConfigNotFound, err.Error(), goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V(ConfigPathKey, path))
	}

	cfg := DefaultAppFile()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML config", goerr.V(ConfigPathKey, path))
	}

	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V(ConfigPathKey, path))
	}

	return cfg, nil
}

// AppConfig holds the CLI flag pointing at the TOML application configuration
type AppConfig struct {
	path string
}

func (x *AppConfig) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to TOML application config (title, refresh interval, churn thresholds)",
			Sources:     cli.EnvVars("OPSBOARD_CONFIG"),
			Destination: &x.path,
		},
	}
}

func (x AppConfig) LogValue() slog.Value {
	return slog.GroupValue(slog.String("path", x.path))
}

// Configure loads the configured file, or returns defaults when no path is set
func (x *AppConfig) Configure() (*AppFile, error) {
	if x.path == "" {
		return DefaultAppFile(), nil
	}
	return LoadAppConfiguration(x.path)
}
