// Package report renders validation results as markdown, for files, terminals
// and MCP clients.
package report

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/fatih/camelcase"

	"github.com/blueprintkit/blueprintkit/internal/domain"
)

// Options controls the report header.
type Options = domain.ReportOptions

// Markdown implements domain.ReportRenderer.
type Markdown struct{}

func New() *Markdown { return &Markdown{} }

func (m *Markdown) Render(result *domain.ValidationResult, opts domain.ReportOptions) string {
	return RenderMarkdown(result, opts)
}

// Recommendation buckets: the first three are immediate, the next three
// medium-term and the remainder long-term.
const (
	immediateCount  = 3
	mediumTermCount = 3
)

// RenderMarkdown serializes a validation result as a markdown report.
func RenderMarkdown(result *domain.ValidationResult, opts Options) string {
	var b strings.Builder

	name := opts.ProjectName
	if name == "" {
		name = "Project"
	}
	fmt.Fprintf(&b, "# Validation Report: %s\n\n", name)
	if opts.GeneratedAt != nil {
		fmt.Fprintf(&b, "_Generated %s_\n\n", opts.GeneratedAt.UTC().Format(time.RFC3339))
	}

	writeSummary(&b, result)
	writeStrengths(&b, result)
	writeTechnologies(&b, result.Technologies)
	writeStructure(&b, result.Structure)
	for _, cat := range result.Categories() {
		writeCategory(&b, cat)
	}
	writeMissing(&b, result.MissingParts)
	writeRecommendations(&b, result.Recommendations)
	writeSkipped(&b, result.Skipped)

	return b.String()
}

func writeSummary(b *strings.Builder, r *domain.ValidationResult) {
	app := r.Application
	components := "none"
	if len(app.Components) > 0 {
		components = strings.Join(app.Components, ", ")
	}

	b.WriteString("## Executive Summary\n\n")
	fmt.Fprintf(b, "- **Application Type:** %s (`%s`)\n", app.Description, app.Type)
	fmt.Fprintf(b, "- **Components Detected:** %s\n", components)
	fmt.Fprintf(b, "- **Confidence Level:** %.0f%%\n", app.Confidence*100)
	fmt.Fprintf(b, "- **Overall Score:** %d/100\n", r.Overall)
	fmt.Fprintf(b, "- **Grade:** %s\n", domain.GradeLabel(r.Grade))
	fmt.Fprintf(b, "- **Rules Version:** %s\n\n", r.RulesVersion)

	b.WriteString("| Category | Score | Weight | Compliant |\n")
	b.WriteString("|---|---:|---:|:---:|\n")
	for _, c := range r.Categories() {
		compliant := "no"
		if c.Compliant() {
			compliant = "yes"
		}
		fmt.Fprintf(b, "| %s | %d/100 | %.2f | %s |\n", Titleize(c.Name), c.Score, c.Weight, compliant)
	}
	b.WriteString("\n")
}

func writeStrengths(b *strings.Builder, r *domain.ValidationResult) {
	strengths := r.Strengths()
	if len(strengths) == 0 {
		return
	}
	b.WriteString("## Key Strengths\n\n")
	for _, s := range strengths {
		fmt.Fprintf(b, "- %s\n", s)
	}
	b.WriteString("\n")
}

func writeTechnologies(b *strings.Builder, profile domain.TechnologyProfile) {
	b.WriteString("## Detected Technologies\n\n")
	cats := profile.Categories()
	if len(cats) == 0 {
		b.WriteString("_No technologies detected._\n\n")
		return
	}
	for _, c := range cats {
		fmt.Fprintf(b, "- **%s:** %s\n", Titleize(c), strings.Join(profile[c], ", "))
	}
	b.WriteString("\n")
}

func writeStructure(b *strings.Builder, s domain.ProjectStructure) {
	b.WriteString("## Project Structure\n\n")
	fmt.Fprintf(b, "- **Total Files:** %d (%d text)\n", s.TotalFiles, s.TextFiles)
	fmt.Fprintf(b, "- **Project Size:** %s\n", HumanBytes(s.TotalBytes))
	fmt.Fprintf(b, "- **Directories:** %d\n", s.Directories)
	if len(s.FileTypes) > 0 {
		b.WriteString("\n### File Types\n\n")
		for _, ft := range s.FileTypes {
			ext := ft.Extension
			if ext == "" {
				ext = "no extension"
			}
			fmt.Fprintf(b, "- **%s**: %d files\n", ext, ft.Count)
		}
	}
	b.WriteString("\n")
}

func writeCategory(b *strings.Builder, c domain.CategoryScore) {
	fmt.Fprintf(b, "## %s (%d/100)\n\n", Titleize(c.Name), c.Score)
	fmt.Fprintf(b, "Base score %d.\n\n", c.Base)
	if len(c.Matches) == 0 {
		b.WriteString("_No rules matched._\n\n")
		return
	}
	b.WriteString("| Rule | Points | Evidence |\n")
	b.WriteString("|---|---:|---|\n")
	for _, m := range c.Matches {
		fmt.Fprintf(b, "| %s | +%d | %s |\n", Titleize(m.RuleID), m.Points, evidenceCell(m))
	}
	b.WriteString("\n")
}

func writeMissing(b *strings.Builder, missing []string) {
	if len(missing) == 0 {
		return
	}
	b.WriteString("## Missing Components\n\n")
	for _, m := range missing {
		fmt.Fprintf(b, "- %s\n", m)
	}
	b.WriteString("\n")
}

func writeRecommendations(b *strings.Builder, recs []domain.Recommendation) {
	b.WriteString("## Recommendations\n\n")
	if len(recs) == 0 {
		b.WriteString("_Every rule is satisfied._\n\n")
		return
	}

	buckets := []struct {
		title string
		recs  []domain.Recommendation
	}{
		{"Immediate Actions", sliceRange(recs, 0, immediateCount)},
		{"Medium-term Improvements", sliceRange(recs, immediateCount, immediateCount+mediumTermCount)},
		{"Long-term Enhancements", sliceRange(recs, immediateCount+mediumTermCount, len(recs))},
	}
	n := 1
	for _, bucket := range buckets {
		if len(bucket.recs) == 0 {
			continue
		}
		fmt.Fprintf(b, "### %s\n\n", bucket.title)
		for _, r := range bucket.recs {
			fmt.Fprintf(b, "%d. **%s** %s (+%d)\n", n, Titleize(r.Category), r.Message, r.Points)
			n++
		}
		b.WriteString("\n")
	}
}

func writeSkipped(b *strings.Builder, skipped []domain.SkippedEntry) {
	if len(skipped) == 0 {
		return
	}
	b.WriteString("## Skipped Files\n\n")
	for _, s := range skipped {
		p := s.Path
		if p == "" {
			p = "(unnamed)"
		}
		fmt.Fprintf(b, "- `%s`: %s\n", cell(p), s.Reason)
	}
	b.WriteString("\n")
}

func sliceRange(recs []domain.Recommendation, from, to int) []domain.Recommendation {
	if from >= len(recs) {
		return nil
	}
	return recs[from:min(to, len(recs))]
}

func evidenceCell(m domain.RuleMatch) string {
	if m.Evidence == "" || m.Evidence == m.Path {
		return "`" + cell(m.Path) + "`"
	}
	ev := fmt.Sprintf("`%s` in `%s`", cell(m.Evidence), cell(m.Path))
	if m.Files > 1 {
		ev += fmt.Sprintf(" and %d more", m.Files-1)
	}
	return ev
}

// cell makes text safe inside a table cell and an inline code span.
func cell(s string) string {
	r := strings.NewReplacer("|", "\\|", "`", "'", "\n", " ", "\r", " ")
	return r.Replace(s)
}

// Titleize turns identifiers such as "input_validation" or "ciCd" into
// "Input Validation" and "Ci Cd".
func Titleize(s string) string {
	var words []string
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == '_' || r == '-' || r == ' ' }) {
		for _, w := range camelcase.Split(part) {
			rs := []rune(w)
			rs[0] = unicode.ToUpper(rs[0])
			words = append(words, string(rs))
		}
	}
	return strings.Join(words, " ")
}

// HumanBytes formats a byte count with a binary unit.
func HumanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
