package domain

import (
	"context"
	"time"
)

// CorpusSource builds a corpus from an external location: a directory, an archive
// or a git repository. Implementations apply the given limits while reading.
type CorpusSource interface {
	Load(ctx context.Context, location string, limits Limits) (*Corpus, []SkippedEntry, error)
}

// Limits bounds corpus construction.
type Limits struct {
	MaxFiles         int
	MaxFileSizeBytes int64
	ExcludePaths     []string
	Strict           bool
}

// LimitsFrom derives corpus limits from an engine config.
func LimitsFrom(cfg EngineConfig) Limits {
	return Limits{
		MaxFiles:         cfg.MaxFiles,
		MaxFileSizeBytes: cfg.MaxFileSizeBytes,
		ExcludePaths:     cfg.ExcludePaths,
		Strict:           cfg.Strict,
	}
}

// ConfigLoader loads the engine configuration for a project directory.
type ConfigLoader interface {
	Load(projectPath string) (EngineConfig, error)
}

// ResultCache stores validation results keyed by corpus content hash.
type ResultCache interface {
	Get(key string) (*ValidationResult, bool)
	Add(key string, result *ValidationResult)
}

// RunHistory persists a summary of each validation run of a project.
type RunHistory interface {
	Save(projectPath string, entry RunEntry) error
	Load(projectPath string) ([]RunEntry, error)
}

// CommitResolver returns the HEAD commit of a local git repository.
type CommitResolver interface {
	IsGitRepo(projectPath string) bool
	CommitHash(projectPath string) (string, error)
}

// ReportOptions controls the report header. Output is byte-for-byte deterministic
// for a given result and options; a timestamp appears only when GeneratedAt is set.
type ReportOptions struct {
	ProjectName string
	GeneratedAt *time.Time
}

// ReportRenderer serializes a validation result.
type ReportRenderer interface {
	Render(result *ValidationResult, opts ReportOptions) string
}
