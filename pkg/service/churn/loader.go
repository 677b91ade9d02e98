package churn

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
)

// Load reads a model file. JSON is tried first, then the same bytes are decoded as
// TOML once. Failing both, the error carries both decode errors.
func Load(path string) (*Model, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(ErrModelLoad, "failed to read model file",
			goerr.V("path", path),
			goerr.V("error", err.Error()))
	}

	m, err := Decode(data)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to decode model file", goerr.V("path", path))
	}
	return m, nil
}

// Decode parses a model from JSON, falling back to TOML
func Decode(data []byte) (*Model, error) {
	var m Model
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	jsonErr := dec.Decode(&m)
	if jsonErr != nil {
		m = Model{}
		if tomlErr := toml.Unmarshal(data, &m); tomlErr != nil {
			return nil, goerr.Wrap(ErrModelLoad, "model is neither valid JSON nor TOML",
				goerr.V("json_error", jsonErr.Error()),
				goerr.V("toml_error", tomlErr.Error()))
		}
	}

	if err := m.Validate(); err != nil {
		return nil, goerr.Wrap(err, "model validation failed", goerr.V("name", m.Name))
	}
	return &m, nil
}
