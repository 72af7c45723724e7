package scoring

import (
	"github.com/blueprintkit/blueprintkit/internal/domain"
	"github.com/blueprintkit/blueprintkit/internal/domain/rules"
)

// Assemble merges the analyzer outputs into the final result: weights, overall
// score, grade, application type, recommendations and missing components.
func Assemble(
	set *rules.Set,
	cfg domain.EngineConfig,
	profile domain.TechnologyProfile,
	security, quality, architecture domain.CategoryScore,
	skipped []domain.SkippedEntry,
) *domain.ValidationResult {
	weighted := ApplyWeights([]domain.CategoryScore{security, quality, architecture}, cfg.CategoryWeights)
	overall := domain.ComputeOverallScore(weighted)
	app := ClassifyApplication(profile)

	return &domain.ValidationResult{
		RulesVersion:    set.Version,
		Technologies:    profile,
		Application:     app,
		Security:        weighted[0],
		Quality:         weighted[1],
		Architecture:    weighted[2],
		Overall:         overall,
		Grade:           domain.GradeFor(overall),
		Recommendations: Recommend(set, weighted, cfg.MaxRecommendations),
		MissingParts:    MissingComponents(app, profile, weighted[0], weighted[1]),
		Skipped:         skipped,
	}
}

// Evaluate runs the whole pipeline sequentially: prepare, detect, analyze, assemble.
// The service runs the analyzers concurrently; results are identical.
func Evaluate(set *rules.Set, cfg domain.EngineConfig, corpus *domain.Corpus) (*domain.ValidationResult, error) {
	prepared, skipped, err := Prepare(corpus, cfg)
	if err != nil {
		return nil, err
	}
	profile := DetectTechnologies(set.Technologies, prepared)
	result := Assemble(set, cfg, profile,
		ScoreSecurity(set, prepared),
		ScoreQuality(set, prepared),
		ScoreArchitecture(set, prepared),
		skipped,
	)
	result.Structure = Summarize(prepared)
	return result, nil
}
