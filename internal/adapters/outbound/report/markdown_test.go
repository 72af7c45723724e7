package report_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blueprintkit/blueprintkit/internal/adapters/outbound/report"
	"github.com/blueprintkit/blueprintkit/internal/domain"
)

func sampleResult() *domain.ValidationResult {
	return &domain.ValidationResult{
		RulesVersion: "2024.1",
		Technologies: domain.TechnologyProfile{"backend": {"python", "fastapi"}, "devops": {"docker"}},
		Application: domain.ApplicationType{
			Type:        "api-service",
			Description: "Backend API or service",
			Components:  []string{"backend", "devops"},
			Confidence:  0.55,
		},
		Security: domain.CategoryScore{
			Name: "security", Base: 50, Score: 75, Weight: 1.0 / 3,
			Matches: []domain.RuleMatch{{RuleID: "authentication", Category: "security", Points: 25, Evidence: "import jwt", Path: "app/main.py", Files: 1}},
		},
		Quality: domain.CategoryScore{Name: "quality", Base: 60, Score: 60, Weight: 1.0 / 3},
		Architecture: domain.CategoryScore{
			Name: "architecture", Base: 60, Score: 65, Weight: 1.0 / 3,
			Matches: []domain.RuleMatch{{RuleID: "containerization", Category: "architecture", Points: 5, Evidence: "Dockerfile", Path: "Dockerfile", Files: 1}},
		},
		Overall: 67,
		Grade:   "C",
		Recommendations: []domain.Recommendation{
			{RuleID: "input_validation", Category: "security", Points: 15, Message: "Implement input validation"},
			{RuleID: "documentation", Category: "quality", Points: 15, Message: "Add documentation"},
		},
		MissingParts: []string{"Input validation - No validation patterns found"},
		Structure: domain.ProjectStructure{
			TotalFiles: 2, TextFiles: 2, TotalBytes: 2048, Directories: 1,
			FileTypes: []domain.FileTypeCount{{Extension: ".py", Count: 1}, {Extension: "", Count: 1}},
		},
	}
}

func TestRenderMarkdown_Golden(t *testing.T) {
	want, err := os.ReadFile(filepath.Join("testdata", "api-service.golden.md"))
	require.NoError(t, err)

	got := report.RenderMarkdown(sampleResult(), report.Options{ProjectName: "demo"})
	assert.Equal(t, string(want), got)
}

func TestRenderMarkdown_Deterministic(t *testing.T) {
	first := report.RenderMarkdown(sampleResult(), report.Options{ProjectName: "demo"})
	for range 5 {
		assert.Equal(t, first, report.RenderMarkdown(sampleResult(), report.Options{ProjectName: "demo"}))
	}
	assert.NotContains(t, first, "Generated")
}

func TestRenderMarkdown_Timestamp(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	out := report.RenderMarkdown(sampleResult(), report.Options{GeneratedAt: &at})

	assert.Contains(t, out, "# Validation Report: Project\n")
	assert.Contains(t, out, "_Generated 2026-03-01T12:00:00Z_")
}

func TestRenderMarkdown_RecommendationBuckets(t *testing.T) {
	r := sampleResult()
	r.Recommendations = nil
	for i := range 8 {
		r.Recommendations = append(r.Recommendations, domain.Recommendation{
			RuleID: fmt.Sprintf("r%d", i), Category: "quality", Points: 10 - i, Message: fmt.Sprintf("step %d", i),
		})
	}

	out := report.RenderMarkdown(r, report.Options{})

	immediate := strings.Index(out, "### Immediate Actions")
	medium := strings.Index(out, "### Medium-term Improvements")
	long := strings.Index(out, "### Long-term Enhancements")
	require.True(t, immediate >= 0 && medium > immediate && long > medium)

	assert.Contains(t, out[immediate:medium], "3. **Quality** step 2 (+8)")
	assert.Contains(t, out[medium:long], "4. **Quality** step 3 (+7)")
	assert.Contains(t, out[long:], "8. **Quality** step 7 (+3)")
}

func TestRenderMarkdown_EmptyResult(t *testing.T) {
	out := report.RenderMarkdown(&domain.ValidationResult{Grade: "D"}, report.Options{})

	assert.Contains(t, out, "_No technologies detected._")
	assert.Contains(t, out, "_Every rule is satisfied._")
	assert.NotContains(t, out, "## Key Strengths")
	assert.NotContains(t, out, "## Skipped Files")
}

func TestRenderMarkdown_EscapesTableCells(t *testing.T) {
	r := sampleResult()
	r.Security.Matches[0].Evidence = "a | b `c`"
	r.Skipped = []domain.SkippedEntry{{Path: "big.sql", Reason: "content exceeds size limit"}}

	out := report.RenderMarkdown(r, report.Options{})
	assert.Contains(t, out, "`a \\| b 'c'` in `app/main.py`")
	assert.Contains(t, out, "- `big.sql`: content exceeds size limit")
}

func TestTitleize(t *testing.T) {
	assert.Equal(t, "Input Validation", report.Titleize("input_validation"))
	assert.Equal(t, "Test Suite Breadth", report.Titleize("test_suite_breadth"))
	assert.Equal(t, "React Native", report.Titleize("reactNative"))
	assert.Equal(t, "Security", report.Titleize("security"))
	assert.Equal(t, "", report.Titleize(""))
}

func TestHumanBytes(t *testing.T) {
	assert.Equal(t, "512 B", report.HumanBytes(512))
	assert.Equal(t, "1.5 KiB", report.HumanBytes(1536))
	assert.Equal(t, "3.0 MiB", report.HumanBytes(3*1024*1024))
}

func TestRenderTerminal(t *testing.T) {
	md := report.RenderMarkdown(sampleResult(), report.Options{ProjectName: "demo"})

	out, err := report.RenderTerminal(md, 100)
	require.NoError(t, err)
	assert.Contains(t, out, "Validation Report")
	assert.Contains(t, out, "fastapi")
}
