package config

import (
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/blueprintkit/blueprintkit/internal/domain"
)

// FileFor returns the config file name for a format ("yaml" or "toml").
func FileFor(format string) (string, error) {
	switch format {
	case "", "yaml", "yml":
		return YAMLFile, nil
	case "toml":
		return TOMLFile, nil
	default:
		return "", fmt.Errorf("unknown config format %q (valid: yaml, toml)", format)
	}
}

// Template renders a commented starter config holding the defaults.
func Template(format string) (string, error) {
	cfg := domain.DefaultEngineConfig()

	switch format {
	case "", "yaml", "yml":
		return yamlTemplate(cfg), nil
	case "toml":
		data, err := toml.Marshal(cfg)
		if err != nil {
			return "", fmt.Errorf("encoding toml: %w", err)
		}
		return "# blueprintkit configuration\n\n" + string(data), nil
	default:
		return "", fmt.Errorf("unknown config format %q (valid: yaml, toml)", format)
	}
}

func yamlTemplate(cfg domain.EngineConfig) string {
	var b strings.Builder
	b.WriteString("# blueprintkit configuration\n\n")
	fmt.Fprintf(&b, "max_files: %d\n", cfg.MaxFiles)
	fmt.Fprintf(&b, "max_file_size_bytes: %d\n", cfg.MaxFileSizeBytes)
	fmt.Fprintf(&b, "max_recommendations: %d\n\n", cfg.MaxRecommendations)

	b.WriteString("category_weights:\n")
	for _, cat := range domain.CategoryOrder {
		fmt.Fprintf(&b, "  %s: %.4f\n", cat, cfg.CategoryWeights.For(cat))
	}

	b.WriteString(`
# Fail instead of skipping files when a cap is exceeded.
strict: false

# exclude_paths:
#   - generated
#   - "**/*.min.js"

# timeout: 30s
`)
	return b.String()
}
