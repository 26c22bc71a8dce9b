package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile loads and parses a configuration file from the given path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// LoadOrDefault loads the file at path. A missing file yields the defaults
// unless the path was given explicitly.
func LoadOrDefault(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	cfg, err := LoadFile(path)
	if err != nil && !explicit && errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}

	return cfg, err
}

// Parse parses YAML data into a Config, fills in defaults and validates the
// result. Unknown keys are rejected; an empty document is the default
// configuration.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the configuration used when there is no file.
func Default() *Config {
	var cfg Config

	applyDefaults(&cfg)

	return &cfg
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(cfg *Config) {
	if cfg.Version == "" {
		cfg.Version = "1"
	}

	if cfg.Output == "" {
		cfg.Output = "clone_gen.go"
	}

	if cfg.Tag == "" {
		cfg.Tag = "clone"
	}

	if cfg.Hook == "" {
		cfg.Hook = "AfterClone"
	}

	if cfg.Unclassified == "" {
		cfg.Unclassified = "shared"
	}

	if cfg.Runtime == "" {
		cfg.Runtime = "clonegen/clone"
	}

	if cfg.ValueTypes == nil {
		cfg.ValueTypes = []string{"time.Time"}
	}
}

// WriteFile writes a Config to the given path as YAML.
func WriteFile(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return nil
}
