package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/blueprintkit/blueprintkit/internal/domain"
)

// ── warm palette ──
var (
	accent = lipgloss.Color("#D97706") // amber
	fg     = lipgloss.Color("#E8E6E3") // warm light gray
	dim    = lipgloss.Color("#6B7280") // muted gray
	faint  = lipgloss.Color("#3F3F46") // very dim
	lime   = lipgloss.Color("#A3E635")

	success = lipgloss.Color("#22C55E")
	danger  = lipgloss.Color("#EF4444")
	warning = lipgloss.Color("#F59E0B")
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	gradeColors = map[string]lipgloss.Color{
		"A+": success,
		"A":  success,
		"B":  lime,
		"C":  warning,
		"D":  danger,
	}

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	catNameStyle  = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderSummary formats a validation result as a compact terminal dashboard.
func RenderSummary(result *domain.ValidationResult, limit int) string {
	var b strings.Builder

	grade := result.Grade
	title := headerStyle.Render("blueprintkit")
	app := result.Application.Type
	if app == "" {
		app = "unknown"
	}
	subtitle := dimStyle.Render(fmt.Sprintf("%s · confidence %.0f%%", app, result.Application.Confidence*100))
	scoreStyled := lipgloss.NewStyle().
		Bold(true).
		Foreground(gradeColor(grade)).
		Render(fmt.Sprintf("%d / 100", result.Overall))
	gradeStyled := boldGrade(grade).Render(domain.GradeLabel(grade))

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + scoreStyled + "  " + gradeStyled))
	b.WriteString("\n\n")

	for _, cat := range result.Categories() {
		renderCategory(&b, cat)
	}

	if labels := result.Technologies.Labels(); len(labels) > 0 {
		b.WriteString("\n")
		fmt.Fprintf(&b, "  %s  %s\n", titleStyle.Render("Technologies"), dimStyle.Render(strings.Join(labels, ", ")))
	}

	b.WriteString("\n")
	b.WriteString("  " + separatorLine)
	b.WriteString("\n\n")

	recs := result.Recommendations
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	if len(recs) == 0 && len(result.MissingParts) == 0 {
		b.WriteString("  " + passStyle.Render("Nothing left to recommend.") + "\n")
	} else {
		if len(recs) > 0 {
			b.WriteString("  " + titleStyle.Render("Recommendations") + "\n\n")
			for _, r := range recs {
				renderRecommendation(&b, r)
			}
		}
		if len(result.MissingParts) > 0 {
			b.WriteString("\n  " + titleStyle.Render("Missing components") + "\n\n")
			for _, m := range result.MissingParts {
				fmt.Fprintf(&b, "    %s %s\n", failStyle.Render("○"), dimStyle.Render(m))
			}
		}
	}

	if n := len(result.Skipped); n > 0 {
		b.WriteString("\n  " + faintStyle.Render(fmt.Sprintf("%d files skipped", n)) + "\n")
	}

	b.WriteString("\n")
	return b.String()
}

func renderCategory(b *strings.Builder, cat domain.CategoryScore) {
	color := scoreColor(cat.Score)
	scoreText := lipgloss.NewStyle().Bold(true).Foreground(color).Render(fmt.Sprintf("%3d", cat.Score))
	bar := coloredBar(cat.Score, 20)
	weight := dimStyle.Render(fmt.Sprintf("%d%%", int(cat.Weight*100+0.5)))

	name := catNameStyle.Render(padRight(cat.Name, 14))
	icon := passStyle.Render("●")
	if !cat.Compliant() {
		icon = warnStyle.Render("●")
	}
	fmt.Fprintf(b, "  %s %s %s  %s %s  %s\n", icon, name, bar, scoreText, weight,
		faintStyle.Render(fmt.Sprintf("%d rules matched", len(cat.Matches))))
}

func renderRecommendation(b *strings.Builder, r domain.Recommendation) {
	points := warnStyle.Render(fmt.Sprintf("+%-3d", r.Points))
	cat := faintStyle.Render(padRight(r.Category, 13))
	fmt.Fprintf(b, "    %s %s %s\n", points, cat, dimStyle.Render(r.Message))
}

func coloredBar(score, width int) string {
	filled := max(0, min(score*width/100, width))
	empty := width - filled

	color := scoreColor(score)
	filledStr := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	emptyStr := lipgloss.NewStyle().Foreground(faint).Render(strings.Repeat("░", empty))
	return filledStr + emptyStr
}

func scoreColor(score int) lipgloss.Color {
	switch {
	case score >= 80:
		return success
	case score >= 60:
		return lime
	case score >= 40:
		return warning
	default:
		return danger
	}
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// RenderHistory formats validation history for terminal output.
func RenderHistory(entries []domain.RunEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No validation history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Validation History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 60)) + "\n\n")

	for i, e := range entries {
		hash := e.CommitHash
		if len(hash) > 7 {
			hash = hash[:7]
		}
		if hash == "" {
			hash = "·······"
		}
		date := e.Timestamp
		if len(date) > 10 {
			date = date[:10]
		}

		scoreStyled := lipgloss.NewStyle().
			Foreground(scoreColor(e.Overall)).
			Render(fmt.Sprintf("%d/100", e.Overall))

		line := fmt.Sprintf("  %s  %s  %s  %-2s  %s",
			dimStyle.Render(date),
			faintStyle.Render(hash),
			scoreStyled,
			e.Grade,
			faintStyle.Render(fmt.Sprintf("S%d Q%d A%d", e.Security, e.Quality, e.Architecture)),
		)

		if i > 0 {
			diff := e.Overall - entries[i-1].Overall
			if diff > 0 {
				line += "  " + passStyle.Render(fmt.Sprintf("↑%d", diff))
			} else if diff < 0 {
				line += "  " + failStyle.Render(fmt.Sprintf("↓%d", -diff))
			}
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

func boldGrade(grade string) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(gradeColor(grade))
}

func gradeColor(grade string) lipgloss.Color {
	if c, ok := gradeColors[grade]; ok {
		return c
	}
	return fg
}
