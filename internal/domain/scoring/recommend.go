package scoring

import (
	"sort"

	"github.com/blueprintkit/blueprintkit/internal/domain"
	"github.com/blueprintkit/blueprintkit/internal/domain/rules"
)

// Recommend turns rules that awarded no points into recommendations, highest
// potential gain first, then by category priority (security, quality,
// architecture), then by table order. A positive limit caps the list.
func Recommend(set *rules.Set, scores []domain.CategoryScore, limit int) []domain.Recommendation {
	type candidate struct {
		rec      domain.Recommendation
		priority int
		index    int
	}

	var cands []candidate
	for _, cs := range scores {
		table := set.Table(cs.Name)
		if table == nil {
			continue
		}
		for idx, r := range table.Rules {
			if cs.Matched(r.ID) {
				continue
			}
			cands = append(cands, candidate{
				rec: domain.Recommendation{
					RuleID:   r.ID,
					Category: cs.Name,
					Points:   r.Cap(),
					Message:  r.Recommendation,
				},
				priority: domain.CategoryPriority(cs.Name),
				index:    idx,
			})
		}
	}

	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.rec.Points != b.rec.Points {
			return a.rec.Points > b.rec.Points
		}
		if a.priority != b.priority {
			return a.priority < b.priority
		}
		return a.index < b.index
	})

	if limit > 0 && len(cands) > limit {
		cands = cands[:limit]
	}

	recs := make([]domain.Recommendation, len(cands))
	for i, c := range cands {
		recs[i] = c.rec
	}
	return recs
}

// MissingComponents lists the gaps expected for the detected application type.
func MissingComponents(app domain.ApplicationType, profile domain.TechnologyProfile, security, quality domain.CategoryScore) []string {
	var missing []string

	switch app.Type {
	case AppFullStack:
		if !profile.Has("database") {
			missing = append(missing, "Database layer - No database technology detected")
		}
		if !quality.Matched("testing") {
			missing = append(missing, "Testing framework - No test files found")
		}
		if !quality.Matched("documentation") {
			missing = append(missing, "Documentation - Missing README or docs")
		}
	case AppAPIService:
		if !security.Matched("authentication") {
			missing = append(missing, "Authentication system - No auth implementation found")
		}
		if !security.Matched("input_validation") {
			missing = append(missing, "Input validation - No validation patterns found")
		}
	case AppMobile, AppMobileWithBackend:
		if !quality.Matched("error_handling") {
			missing = append(missing, "Error handling - Limited error handling patterns")
		}
	}

	return missing
}
