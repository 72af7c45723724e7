package scoring_test

import (
	"testing"

	"github.com/blueprintkit/blueprintkit/internal/domain"
	"github.com/blueprintkit/blueprintkit/internal/domain/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ruleIDs(recs []domain.Recommendation) []string {
	ids := make([]string, len(recs))
	for i, r := range recs {
		ids[i] = r.RuleID
	}
	return ids
}

func TestRecommend_OrderAndCap(t *testing.T) {
	set := loadSet(t)
	corpus := pythonAPI()
	scores := []domain.CategoryScore{
		scoring.ScoreSecurity(set, corpus),
		scoring.ScoreQuality(set, corpus),
		scoring.ScoreArchitecture(set, corpus),
	}

	recs := scoring.Recommend(set, scores, 10)

	assert.Equal(t, []string{
		"input_validation", "documentation",
		"encryption", "linting", "ci_cd",
		"components", "service_layer",
		"security_headers", "rate_limiting", "dependency_scanning",
	}, ruleIDs(recs))
	assert.Equal(t, 15, recs[0].Points)
	assert.Equal(t, domain.CategorySecurity, recs[0].Category)
	assert.NotEmpty(t, recs[0].Message)
}

func TestRecommend_SkipsMatchedRules(t *testing.T) {
	set := loadSet(t)
	corpus := pythonAPI()
	scores := []domain.CategoryScore{scoring.ScoreSecurity(set, corpus)}

	recs := scoring.Recommend(set, scores, 0)

	assert.NotContains(t, ruleIDs(recs), "authentication")
	assert.Len(t, recs, len(set.Security.Rules)-1)
}

func TestRecommend_PerFileRuleUsesCap(t *testing.T) {
	set := loadSet(t)
	scores := []domain.CategoryScore{scoring.ScoreQuality(set, nil)}

	recs := scoring.Recommend(set, scores, 0)

	var found bool
	for _, r := range recs {
		if r.RuleID == "test_suite_breadth" {
			found = true
			assert.Equal(t, 5, r.Points)
		}
	}
	require.True(t, found)
}

func TestRecommend_Deterministic(t *testing.T) {
	set := loadSet(t)
	scores := []domain.CategoryScore{
		scoring.ScoreSecurity(set, nil),
		scoring.ScoreQuality(set, nil),
		scoring.ScoreArchitecture(set, nil),
	}

	first := scoring.Recommend(set, scores, 10)
	for range 5 {
		assert.Equal(t, first, scoring.Recommend(set, scores, 10))
	}
}

func TestMissingComponents(t *testing.T) {
	set := loadSet(t)
	corpus := pythonAPI()
	sec := scoring.ScoreSecurity(set, corpus)
	qual := scoring.ScoreQuality(set, corpus)

	api := domain.ApplicationType{Type: scoring.AppAPIService}
	missing := scoring.MissingComponents(api, domain.TechnologyProfile{}, sec, qual)
	require.Len(t, missing, 1)
	assert.Contains(t, missing[0], "Input validation")

	full := domain.ApplicationType{Type: scoring.AppFullStack}
	missing = scoring.MissingComponents(full, domain.TechnologyProfile{}, sec, qual)
	assert.Len(t, missing, 2, "database and documentation")

	cli := domain.ApplicationType{Type: scoring.AppCLI}
	assert.Empty(t, scoring.MissingComponents(cli, domain.TechnologyProfile{}, sec, qual))
}
