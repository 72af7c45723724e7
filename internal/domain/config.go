package domain

import (
	"fmt"
	"time"
)

// Defaults for EngineConfig.
const (
	DefaultMaxFiles           = 5000
	DefaultMaxFileSizeBytes   = 1 << 20
	DefaultMaxRecommendations = 10
)

// CategoryWeights weights the three categories in the overall score.
type CategoryWeights struct {
	Security     float64 `yaml:"security"     toml:"security"     json:"security"`
	Quality      float64 `yaml:"quality"      toml:"quality"      json:"quality"`
	Architecture float64 `yaml:"architecture" toml:"architecture" json:"architecture"`
}

// For returns the weight of the named category.
func (w CategoryWeights) For(category string) float64 {
	switch category {
	case CategorySecurity:
		return w.Security
	case CategoryQuality:
		return w.Quality
	case CategoryArchitecture:
		return w.Architecture
	default:
		return 0
	}
}

// IsZero reports whether no weight was set.
func (w CategoryWeights) IsZero() bool {
	return w.Security == 0 && w.Quality == 0 && w.Architecture == 0
}

// EngineConfig holds the recognized configuration of the validation engine, loaded
// from .blueprintkit.yaml or .blueprintkit.toml.
type EngineConfig struct {
	MaxFiles           int             `yaml:"max_files"           toml:"max_files"           json:"max_files"`
	MaxFileSizeBytes   int64           `yaml:"max_file_size_bytes" toml:"max_file_size_bytes" json:"max_file_size_bytes"`
	CategoryWeights    CategoryWeights `yaml:"category_weights"    toml:"category_weights"    json:"category_weights"`
	MaxRecommendations int             `yaml:"max_recommendations" toml:"max_recommendations" json:"max_recommendations"`
	Strict             bool            `yaml:"strict"              toml:"strict"              json:"strict,omitempty"`
	ExcludePaths       []string        `yaml:"exclude_paths"       toml:"exclude_paths"       json:"exclude_paths,omitempty"`
	Timeout            Duration        `yaml:"timeout"             toml:"timeout"             json:"timeout,omitempty"`
}

// DefaultEngineConfig returns equal weights and the default caps.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		MaxFiles:         DefaultMaxFiles,
		MaxFileSizeBytes: DefaultMaxFileSizeBytes,
		CategoryWeights: CategoryWeights{
			Security:     1.0 / 3,
			Quality:      1.0 / 3,
			Architecture: 1.0 / 3,
		},
		MaxRecommendations: DefaultMaxRecommendations,
	}
}

// WithDefaults fills zero-valued fields from DefaultEngineConfig.
func (c EngineConfig) WithDefaults() EngineConfig {
	d := DefaultEngineConfig()
	if c.MaxFiles == 0 {
		c.MaxFiles = d.MaxFiles
	}
	if c.MaxFileSizeBytes == 0 {
		c.MaxFileSizeBytes = d.MaxFileSizeBytes
	}
	if c.CategoryWeights.IsZero() {
		c.CategoryWeights = d.CategoryWeights
	}
	if c.MaxRecommendations == 0 {
		c.MaxRecommendations = d.MaxRecommendations
	}
	return c
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c EngineConfig) Validate() error {
	if c.MaxFiles < 0 {
		return fmt.Errorf("max_files = %d (must be >= 0)", c.MaxFiles)
	}
	if c.MaxFileSizeBytes < 0 {
		return fmt.Errorf("max_file_size_bytes = %d (must be >= 0)", c.MaxFileSizeBytes)
	}
	if c.MaxRecommendations < 0 {
		return fmt.Errorf("max_recommendations = %d (must be >= 0)", c.MaxRecommendations)
	}
	w := c.CategoryWeights
	for _, cat := range CategoryOrder {
		if v := w.For(cat); v < 0 {
			return fmt.Errorf("category_weights.%s = %.2f (must be >= 0)", cat, v)
		}
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout = %s (must be >= 0)", time.Duration(c.Timeout))
	}
	return nil
}

// Fingerprint returns a stable string of the settings that influence scoring,
// used as part of the result cache key.
func (c EngineConfig) Fingerprint() string {
	w := c.CategoryWeights
	return fmt.Sprintf("files=%d;size=%d;w=%.6f/%.6f/%.6f;recs=%d;strict=%t",
		c.MaxFiles, c.MaxFileSizeBytes, w.Security, w.Quality, w.Architecture,
		c.MaxRecommendations, c.Strict)
}

// Duration is a time.Duration that decodes from strings like "30s".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for yaml and toml decoding.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}
