package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/blueprintkit/blueprintkit/internal/domain"
)

// Config file names, in lookup order.
const (
	YAMLFile = ".blueprintkit.yaml"
	YMLFile  = ".blueprintkit.yml"
	TOMLFile = ".blueprintkit.toml"
)

var candidates = []string{YAMLFile, YMLFile, TOMLFile}

// Loader implements domain.ConfigLoader by reading .blueprintkit.yaml or
// .blueprintkit.toml from the project root.
type Loader struct{}

// New creates a Loader.
func New() *Loader { return &Loader{} }

// Load reads the first config file found in projectPath.
// Returns DefaultEngineConfig if none exists.
func (l *Loader) Load(projectPath string) (domain.EngineConfig, error) {
	for _, name := range candidates {
		data, err := os.ReadFile(filepath.Join(projectPath, name))
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return domain.EngineConfig{}, err
		}
		return Parse(name, data)
	}
	return domain.DefaultEngineConfig(), nil
}

// Parse decodes config data; the format follows the file name extension.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func Parse(name string, data []byte) (domain.EngineConfig, error) {
	var cfg domain.EngineConfig

	if filepath.Ext(name) == ".toml" {
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return domain.EngineConfig{}, fmt.Errorf("parsing %s: %w", name, err)
		}
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return domain.EngineConfig{}, fmt.Errorf("parsing %s: %w", name, err)
		}
	}

	// Validate before merging: catches bad values in the user's raw input.
	if err := cfg.Validate(); err != nil {
		return domain.EngineConfig{}, fmt.Errorf("invalid %s: %w", name, err)
	}

	return cfg.WithDefaults(), nil
}

// Find returns the path of the config file in projectPath, or "" if none exists.
func Find(projectPath string) string {
	for _, name := range candidates {
		p := filepath.Join(projectPath, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
