package scoring

import (
	"strings"

	"github.com/blueprintkit/blueprintkit/internal/domain"
	"github.com/blueprintkit/blueprintkit/internal/domain/rules"
)

// ruleTally accumulates one rule's contribution across the corpus.
type ruleTally struct {
	points   int
	files    int
	evidence string
	path     string
}

// Analyze evaluates a compiled rule table against the corpus. The score starts at
// the table's base, each matched rule adds its points once (per-file rules up to
// their cap), and the total is clamped to [0,100]. Matches are listed in table order.
// Analyze holds no state between calls and never modifies the corpus.
func Analyze(table *rules.CompiledTable, corpus *domain.Corpus) domain.CategoryScore {
	cat := domain.CategoryScore{
		Name: table.Category,
		Base: table.Base,
	}

	tallies := make([]ruleTally, len(table.Rules))

	if corpus != nil {
		for _, f := range corpus.Files {
			lp := normalizePath(f.Path)
			source := rules.IsSourceFile(lp)
			var lowered string
			loweredReady := false

			for i := range table.Rules {
				r := &table.Rules[i]
				t := &tallies[i]
				if r.Mode == rules.ModeOnce && t.files > 0 {
					continue
				}
				if r.Mode == rules.ModePerFile && t.points >= r.MaxPoints {
					continue
				}

				var evidence string
				var ok bool
				switch r.Target {
				case rules.TargetPath:
					ok = r.MatchPath(lp)
					evidence = f.Path
				case rules.TargetContent:
					if f.Binary || f.Content == "" || (r.SourceOnly && !source) {
						continue
					}
					if !loweredReady {
						lowered = strings.ToLower(f.Content)
						loweredReady = true
					}
					evidence, ok = r.MatchContent(lowered)
				}
				if !ok {
					continue
				}

				if t.files == 0 {
					t.evidence = evidence
					t.path = f.Path
				}
				t.files++
				if r.Mode == rules.ModePerFile {
					t.points = min(t.points+r.Points, r.MaxPoints)
				} else {
					t.points = r.Points
				}
			}
		}
	}

	total := table.Base
	for i, r := range table.Rules {
		t := tallies[i]
		if t.files == 0 {
			continue
		}
		cat.Matches = append(cat.Matches, domain.RuleMatch{
			RuleID:   r.ID,
			Category: table.Category,
			Points:   t.points,
			Evidence: t.evidence,
			Path:     t.path,
			Files:    t.files,
		})
		total += t.points
	}
	cat.Score = domain.Clamp(total)
	return cat
}

// ScoreSecurity runs the security analyzer.
func ScoreSecurity(set *rules.Set, corpus *domain.Corpus) domain.CategoryScore {
	return Analyze(set.Security, corpus)
}

// ScoreQuality runs the quality analyzer.
func ScoreQuality(set *rules.Set, corpus *domain.Corpus) domain.CategoryScore {
	return Analyze(set.Quality, corpus)
}

// ScoreArchitecture runs the architecture analyzer.
func ScoreArchitecture(set *rules.Set, corpus *domain.Corpus) domain.CategoryScore {
	return Analyze(set.Architecture, corpus)
}
