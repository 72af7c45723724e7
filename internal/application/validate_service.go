package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/blueprintkit/blueprintkit/internal/domain"
	"github.com/blueprintkit/blueprintkit/internal/domain/rules"
	"github.com/blueprintkit/blueprintkit/internal/domain/scoring"
	"github.com/blueprintkit/blueprintkit/internal/logging"
)

// SourceKind selects the corpus source used by ValidateSource.
type SourceKind string

const (
	SourceDirectory SourceKind = "directory"
	SourceArchive   SourceKind = "archive"
	SourceGit       SourceKind = "git"
)

// Sources maps each kind to its corpus loader. Nil entries are unsupported.
type Sources struct {
	Directory domain.CorpusSource
	Archive   domain.CorpusSource
	Git       domain.CorpusSource
}

func (s Sources) For(kind SourceKind) (domain.CorpusSource, error) {
	var src domain.CorpusSource
	switch kind {
	case SourceDirectory, "":
		src = s.Directory
	case SourceArchive:
		src = s.Archive
	case SourceGit:
		src = s.Git
	}
	if src == nil {
		return nil, fmt.Errorf("unsupported source kind %q", kind)
	}
	return src, nil
}

// Request describes one ValidateSource call.
type Request struct {
	Location string
	Kind     SourceKind
	// ConfigDir is the directory searched for .blueprintkit.yaml/.toml. It defaults
	// to Location for directory sources; other sources use the defaults when empty.
	ConfigDir string
	Strict    bool
	// Timeout overrides the configured timeout when positive.
	Timeout time.Duration
	// Record appends a run entry to the project history. Only directory
	// sources have a project to record into.
	Record bool
}

// Run is the outcome of ValidateSource.
type Run struct {
	Result *domain.ValidationResult
	Config domain.EngineConfig
	Entry  *domain.RunEntry
	Cached bool
}

// commitLoader is implemented by sources that know the commit they load.
type commitLoader interface {
	LoadWithCommit(ctx context.Context, location string, limits domain.Limits) (*domain.Corpus, []domain.SkippedEntry, string, error)
}

// ValidateService runs the validation pipeline over corpora from any source.
type ValidateService struct {
	rules        *rules.Set
	configLoader domain.ConfigLoader
	sources      Sources
	cache        domain.ResultCache
	history      domain.RunHistory
	commits      domain.CommitResolver
	renderer     domain.ReportRenderer
	logger       zerolog.Logger
	now          func() time.Time
}

// NewValidateService wires the service. cache, history, commits and renderer may be nil.
func NewValidateService(
	set *rules.Set,
	configLoader domain.ConfigLoader,
	sources Sources,
	cache domain.ResultCache,
	history domain.RunHistory,
	commits domain.CommitResolver,
	renderer domain.ReportRenderer,
) *ValidateService {
	return &ValidateService{
		rules:        set,
		configLoader: configLoader,
		sources:      sources,
		cache:        cache,
		history:      history,
		commits:      commits,
		renderer:     renderer,
		logger:       logging.GetLogger("validate"),
		now:          time.Now,
	}
}

// Rules returns the rule set the service scores with.
func (s *ValidateService) Rules() *rules.Set { return s.rules }

// Validate scores a corpus. The three analyzers run concurrently over the same
// prepared corpus. If ctx ends first, no result is returned.
func (s *ValidateService) Validate(ctx context.Context, cfg domain.EngineConfig, corpus *domain.Corpus) (*domain.ValidationResult, error) {
	return s.validate(ctx, cfg, corpus, nil)
}

func (s *ValidateService) validate(ctx context.Context, cfg domain.EngineConfig, corpus *domain.Corpus, sourceSkipped []domain.SkippedEntry) (*domain.ValidationResult, error) {
	done := logging.LogOperationStart(s.logger, "validate")
	defer done()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg = cfg.WithDefaults()

	prepared, skipped, err := scoring.Prepare(corpus, cfg)
	if err != nil {
		return nil, fmt.Errorf("preparing corpus: %w", err)
	}
	skipped = append(append([]domain.SkippedEntry(nil), sourceSkipped...), skipped...)
	for _, e := range skipped {
		s.logger.Debug().Str("path", e.Path).Str("reason", e.Reason).Msg("entry skipped")
	}

	profile := scoring.DetectTechnologies(s.rules.Technologies, prepared)

	var security, quality, architecture domain.CategoryScore
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		security = scoring.ScoreSecurity(s.rules, prepared)
		return gctx.Err()
	})
	g.Go(func() error {
		quality = scoring.ScoreQuality(s.rules, prepared)
		return gctx.Err()
	})
	g.Go(func() error {
		architecture = scoring.ScoreArchitecture(s.rules, prepared)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := scoring.Assemble(s.rules, cfg, profile, security, quality, architecture, skipped)
	result.Structure = scoring.Summarize(prepared)

	s.logger.Info().
		Int("files", prepared.Len()).
		Int("skipped", len(skipped)).
		Int("overall", result.Overall).
		Str("grade", result.Grade).
		Str("application", result.Application.Type).
		Msg("validation complete")
	return result, nil
}

// LoadConfig returns the engine config for a request with the request's
// overrides applied.
func (s *ValidateService) LoadConfig(req Request) (domain.EngineConfig, error) {
	cfg := domain.DefaultEngineConfig()
	dir := req.ConfigDir
	if dir == "" && (req.Kind == SourceDirectory || req.Kind == "") {
		dir = req.Location
	}
	if dir != "" && s.configLoader != nil {
		loaded, err := s.configLoader.Load(dir)
		if err != nil {
			return cfg, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}
	if req.Strict {
		cfg.Strict = true
	}
	if req.Timeout > 0 {
		cfg.Timeout = domain.Duration(req.Timeout)
	}
	return cfg.WithDefaults(), nil
}

// ValidateSource loads a corpus through the requested source and validates it.
// Results are served from the cache when the corpus, config and rules match a
// previous run.
func (s *ValidateService) ValidateSource(ctx context.Context, req Request) (*Run, error) {
	cfg, err := s.LoadConfig(req)
	if err != nil {
		return nil, err
	}
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.Timeout))
		defer cancel()
	}

	src, err := s.sources.For(req.Kind)
	if err != nil {
		return nil, err
	}
	var (
		corpus        *domain.Corpus
		sourceSkipped []domain.SkippedEntry
		commit        string
	)
	if cl, ok := src.(commitLoader); ok {
		corpus, sourceSkipped, commit, err = cl.LoadWithCommit(ctx, req.Location, domain.LimitsFrom(cfg))
	} else {
		corpus, sourceSkipped, err = src.Load(ctx, req.Location, domain.LimitsFrom(cfg))
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", req.Location, err)
	}

	run := &Run{Config: cfg}
	key := domain.CacheKey(corpus.Hash(), s.rules.Version, cfg)
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			s.logger.Debug().Str("location", req.Location).Msg("cache hit")
			run.Result = cached
			run.Cached = true
		}
	}
	if run.Result == nil {
		result, err := s.validate(ctx, cfg, corpus, sourceSkipped)
		if err != nil {
			return nil, err
		}
		run.Result = result
		if s.cache != nil {
			s.cache.Add(key, result)
		}
	}

	run.Entry = s.entryFor(req, commit, run.Result)
	if req.Record && s.history != nil && (req.Kind == SourceDirectory || req.Kind == "") {
		if err := s.history.Save(req.Location, *run.Entry); err != nil {
			s.logger.Warn().Err(err).Msg("could not save validation history")
		}
	}
	return run, nil
}

// entryFor builds the history entry of a run. commit is the hash reported by
// the source itself; directory sources fall back to the commit resolver.
func (s *ValidateService) entryFor(req Request, commit string, r *domain.ValidationResult) *domain.RunEntry {
	entry := &domain.RunEntry{
		ID:           uuid.NewString(),
		Timestamp:    s.now().UTC().Format(time.RFC3339),
		Source:       req.Location,
		Overall:      r.Overall,
		Grade:        r.Grade,
		Security:     r.Security.Score,
		Quality:      r.Quality.Score,
		Architecture: r.Architecture.Score,
		Application:  r.Application.Type,
		CommitHash:   commit,
	}
	if commit == "" && s.commits != nil && (req.Kind == SourceDirectory || req.Kind == "") && s.commits.IsGitRepo(req.Location) {
		if hash, err := s.commits.CommitHash(req.Location); err == nil {
			entry.CommitHash = hash
		}
	}
	return entry
}

// History returns the recorded runs of a project directory.
func (s *ValidateService) History(projectPath string) ([]domain.RunEntry, error) {
	if s.history == nil {
		return nil, nil
	}
	entries, err := s.history.Load(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	return entries, nil
}

// RenderReport serializes a result through the configured renderer.
func (s *ValidateService) RenderReport(result *domain.ValidationResult, opts domain.ReportOptions) (string, error) {
	if s.renderer == nil {
		return "", fmt.Errorf("no report renderer configured")
	}
	if result == nil {
		return "", fmt.Errorf("no result to render")
	}
	return s.renderer.Render(result, opts), nil
}
