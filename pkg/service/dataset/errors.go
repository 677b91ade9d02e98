package dataset

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrMissingColumn is returned when a required CSV column is absent from the header
	ErrMissingColumn = goerr.New("required column is missing")

	// ErrEmptyInput is returned when the CSV has no header row
	ErrEmptyInput = goerr.New("dataset has no header row")

	// ErrUnsupportedSource is returned for a source URI with an unknown scheme
	ErrUnsupportedSource = goerr.New("unsupported dataset source")
)
