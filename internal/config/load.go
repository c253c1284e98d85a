package config

import (
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Load reads a layout configuration from a TOML file. A missing file is
// not an error; the defaults are returned. Values absent from the file
// keep their defaults. The result is validated before being returned.
func Load(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Layout{}, fmt.Errorf("reading config file %s: %w", path, err)
	}

	return parse(path, data)
}

// LoadFrom reads a layout configuration from an io.Reader.
func LoadFrom(r io.Reader) (Layout, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Layout{}, fmt.Errorf("reading config: %w", err)
	}

	return parse("<reader>", data)
}

// parse unmarshals TOML data over the defaults and validates it.
func parse(source string, data []byte) (Layout, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Layout{}, &ParseError{
			Path:    source,
			Message: err.Error(),
			Err:     err,
		}
	}

	if err := cfg.Validate(); err != nil {
		return Layout{}, fmt.Errorf("config %s: %w", source, err)
	}
	return cfg, nil
}
