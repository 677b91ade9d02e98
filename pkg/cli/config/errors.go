package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrConfigNotFound    = goerr.New("configuration file not found")
	ErrInvalidConfig     = goerr.New("invalid configuration")
	ErrInvalidLogLevel   = goerr.New("invalid log level")
	ErrInvalidLogFormat  = goerr.New("invalid log format")
	ErrInvalidBackend    = goerr.New("invalid repository backend")
	ErrMissingProjectID  = goerr.New("firestore-project-id is required when using firestore backend")
	ErrNoDatasetSource   = goerr.New("at least one dataset source is required")
	ErrInvalidThresholds = goerr.New("invalid churn thresholds")
)

// Context keys for error values
const (
	ConfigPathKey = "config_path"
	FieldKey      = "field"
	ValueKey      = "value"
)
