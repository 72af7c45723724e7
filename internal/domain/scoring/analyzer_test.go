package scoring_test

import (
	"fmt"
	"testing"

	"github.com/blueprintkit/blueprintkit/internal/domain"
	"github.com/blueprintkit/blueprintkit/internal/domain/rules"
	"github.com/blueprintkit/blueprintkit/internal/domain/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_EmptyCorpusScoresBase(t *testing.T) {
	set := loadSet(t)

	for _, corpus := range []*domain.Corpus{nil, {}} {
		sec := scoring.ScoreSecurity(set, corpus)
		qual := scoring.ScoreQuality(set, corpus)
		arch := scoring.ScoreArchitecture(set, corpus)

		assert.Equal(t, rules.SecurityBase, sec.Score)
		assert.Equal(t, rules.QualityBase, qual.Score)
		assert.Equal(t, rules.ArchitectureBase, arch.Score)
		assert.Empty(t, sec.Matches)
		assert.Empty(t, qual.Matches)
		assert.Empty(t, arch.Matches)
	}
}

func TestAnalyze_PythonAPIScenario(t *testing.T) {
	set := loadSet(t)
	corpus := pythonAPI()

	sec := scoring.ScoreSecurity(set, corpus)
	assert.True(t, sec.Matched("authentication"))
	assert.Equal(t, 75, sec.Score, "base 50 + authentication 25")

	qual := scoring.ScoreQuality(set, corpus)
	assert.True(t, qual.Matched("testing"))
	assert.Equal(t, 81, qual.Score, "base 60 + testing 20 + one test file")

	arch := scoring.ScoreArchitecture(set, corpus)
	assert.True(t, arch.Matched("containerization"))
	assert.True(t, arch.Matched("dependency_manifest"))
	assert.True(t, arch.Matched("test_directory"))
	assert.Equal(t, 78, arch.Score)
}

func TestAnalyze_ContentEvidence(t *testing.T) {
	set := loadSet(t)
	sec := scoring.ScoreSecurity(set, pythonAPI())

	require.NotEmpty(t, sec.Matches)
	m := sec.Matches[0]
	assert.Equal(t, "authentication", m.RuleID)
	assert.Equal(t, "main.py", m.Path)
	assert.Contains(t, m.Evidence, "jwt")
	assert.Equal(t, 25, m.Points)
}

func TestAnalyze_SourceOnlyIgnoresDocs(t *testing.T) {
	set := loadSet(t)
	corpus := corpusOf(text("docs/security.md", "We use JWT and bcrypt for password storage."))

	sec := scoring.ScoreSecurity(set, corpus)
	assert.False(t, sec.Matched("authentication"))
	assert.Equal(t, rules.SecurityBase, sec.Score)
}

func TestAnalyze_BinaryFilesOnlyMatchPaths(t *testing.T) {
	set := loadSet(t)
	corpus := corpusOf(domain.CorpusFile{Path: "src/auth.py", Binary: true, Size: 2048, Content: "import jwt"})

	sec := scoring.ScoreSecurity(set, corpus)
	assert.False(t, sec.Matched("authentication"))

	arch := scoring.ScoreArchitecture(set, corpus)
	assert.True(t, arch.Matched("source_directory"))
}

func TestAnalyze_RuleAwardsOnce(t *testing.T) {
	set := loadSet(t)
	corpus := corpusOf(
		text("a.py", "import jwt"),
		text("b.py", "import jwt"),
		text("c.py", "import jwt"),
	)

	sec := scoring.ScoreSecurity(set, corpus)
	count := 0
	for _, m := range sec.Matches {
		if m.RuleID == "authentication" {
			count++
			assert.Equal(t, 25, m.Points)
			assert.Equal(t, "a.py", m.Path)
		}
	}
	assert.Equal(t, 1, count)
}

func TestAnalyze_PerFileRuleIsCapped(t *testing.T) {
	set := loadSet(t)
	var files []domain.CorpusFile
	for i := range 8 {
		files = append(files, text(fmt.Sprintf("tests/test_case%d.py", i), "def test(): pass"))
	}

	qual := scoring.ScoreQuality(set, corpusOf(files...))

	var breadth *domain.RuleMatch
	for i := range qual.Matches {
		if qual.Matches[i].RuleID == "test_suite_breadth" {
			breadth = &qual.Matches[i]
		}
	}
	require.NotNil(t, breadth)
	assert.Equal(t, 5, breadth.Points)
	assert.Equal(t, rules.QualityBase+20+5, qual.Score)
}

func TestAnalyze_ScoreIsClamped(t *testing.T) {
	set := loadSet(t)
	corpus := corpusOf(
		text("src/app.py", "import jwt, bcrypt\nvalidate(x)\nencrypt(y)\ncors()\nrate_limit()\n"),
		text(".github/dependabot.yml", "version: 2"),
		text(".env.example", "SECRET_KEY="),
	)

	sec := scoring.ScoreSecurity(set, corpus)
	assert.Equal(t, 100, sec.Score)
	assert.Len(t, sec.Matches, 7)
}

func TestAnalyze_MatchesFollowTableOrder(t *testing.T) {
	set := loadSet(t)
	corpus := corpusOf(
		text("Dockerfile", "FROM scratch"),
		text("src/services/billing.py", "x = 1"),
		text("package.json", "{}"),
	)

	arch := scoring.ScoreArchitecture(set, corpus)
	ids := make([]string, len(arch.Matches))
	for i, m := range arch.Matches {
		ids[i] = m.RuleID
	}
	assert.Equal(t, []string{"dependency_manifest", "service_layer", "source_directory", "containerization"}, ids)
}

func TestAnalyze_Monotonic(t *testing.T) {
	set := loadSet(t)
	base := pythonAPI()
	grown := corpusOf(append(append([]domain.CorpusFile{}, base.Files...),
		text("README.md", "# api"),
		text("src/utils/crypto.py", "import hashlib\ntry:\n    pass\nexcept Exception:\n    raise"),
	)...)

	for _, analyze := range []func(*rules.Set, *domain.Corpus) domain.CategoryScore{
		scoring.ScoreSecurity, scoring.ScoreQuality, scoring.ScoreArchitecture,
	} {
		before := analyze(set, base)
		after := analyze(set, grown)
		assert.GreaterOrEqual(t, after.Score, before.Score, before.Name)
	}
}

func TestAnalyze_DoesNotMutateCorpus(t *testing.T) {
	set := loadSet(t)
	corpus := pythonAPI()
	hash := corpus.Hash()

	scoring.ScoreSecurity(set, corpus)
	scoring.ScoreQuality(set, corpus)
	scoring.ScoreArchitecture(set, corpus)

	assert.Equal(t, hash, corpus.Hash())
}
