package tui

import (
	"fmt"
	"strings"

	"github.com/blueprintkit/blueprintkit/internal/domain"
	"github.com/blueprintkit/blueprintkit/internal/domain/rules"
)

var gradeScale = []struct {
	min   int
	grade string
}{
	{90, "A+"}, {80, "A"}, {70, "B"}, {60, "C"}, {0, "D"},
}

// RenderRules lists every rule table with its base score and point values,
// followed by the grading scale.
func RenderRules(set *rules.Set) string {
	var b strings.Builder
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s  %s\n", titleStyle.Render("Rule tables"), dimStyle.Render("version "+set.Version))
	b.WriteString("  " + separatorLine + "\n")

	for _, t := range set.Tables() {
		if t == nil {
			continue
		}
		maxScore := t.Base
		for _, r := range t.Rules {
			maxScore += r.Cap()
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "  %s %s\n",
			catNameStyle.Render(padRight(t.Category, 14)),
			dimStyle.Render(fmt.Sprintf("base %d · up to %d before clamping", t.Base, maxScore)))
		for _, r := range t.Rules {
			points := fmt.Sprintf("+%d", r.Points)
			if r.Mode == rules.ModePerFile {
				points = fmt.Sprintf("+%d/file (max %d)", r.Points, r.MaxPoints)
			}
			fmt.Fprintf(&b, "    %s %s %s\n",
				warnStyle.Render(padRight(points, 18)),
				padRight(r.ID, 24),
				faintStyle.Render(r.Title))
		}
	}

	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Grading scale") + "\n")
	for _, g := range gradeScale {
		fmt.Fprintf(&b, "    %s  %s\n",
			gradeCell(g.grade),
			dimStyle.Render(fmt.Sprintf(">= %d", g.min)))
	}
	fmt.Fprintf(&b, "\n  %s\n", faintStyle.Render(fmt.Sprintf("A category is compliant at %d or above.", domain.ComplianceThreshold)))
	return b.String()
}

func gradeCell(grade string) string {
	return boldGrade(grade).Render(padRight(domain.GradeLabel(grade), 22))
}
