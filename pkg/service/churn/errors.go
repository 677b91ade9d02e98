package churn

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrModelLoad is returned when the model file cannot be decoded in any supported format
	ErrModelLoad = goerr.New("failed to load churn model")

	// ErrInvalidModel is returned when a decoded model is unusable
	ErrInvalidModel = goerr.New("invalid churn model")

	// ErrInvalidProfile is returned when prediction inputs are out of range
	ErrInvalidProfile = goerr.New("invalid customer profile")
)
