// Package config loads gaiad-auto.yaml and applies command-line overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"gaiadauto/pkg/log"
	"gaiadauto/pkg/model"
	"gaiadauto/pkg/system"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the config is looked up when --config is not given.
const DefaultPath = "./gaiad-auto.yaml"

// LoadConfig reads filename, fills unset fields with defaults and validates
// the result. A missing file is an error.
func LoadConfig(filename string, logger log.Logger) (*model.Config, error) {
	cfg, err := loadConfigFile(filename)
	if err != nil {
		return nil, err
	}
	logger.Debug("Loaded config", "path", filename)

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, errs
	}
	return &cfg, nil
}

// LoadConfigOrDefault behaves like LoadConfig but falls back to the built-in
// defaults when filename does not exist.
func LoadConfigOrDefault(filename string, logger log.Logger) (*model.Config, error) {
	cfg, err := LoadConfig(filename, logger)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug("No config file found, using defaults", "path", filename)
		def := model.DefaultConfig()
		return &def, nil
	}
	return cfg, err
}

// Override applies the image version given on the command line and
// revalidates.
func Override(cfg *model.Config, version string) (*model.Config, error) {
	out := *cfg
	if version != "" {
		out.Version = version
	}
	if errs := out.Validate(); len(errs) > 0 {
		return nil, errs
	}
	return &out, nil
}

func loadConfigFile(filename string) (model.Config, error) {
	f, err := afero.ReadFile(system.AppFs, filename)
	if err != nil {
		return model.Config{}, err
	}

	cfg := model.DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(f))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return model.Config{}, fmt.Errorf("error parsing %s: %w", filename, err)
	}
	return cfg, nil
}
