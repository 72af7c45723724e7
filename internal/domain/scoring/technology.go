package scoring

import (
	"github.com/blueprintkit/blueprintkit/internal/domain"
	"github.com/blueprintkit/blueprintkit/internal/domain/rules"
)

// DetectTechnologies classifies the corpus against the technology signals.
// Binary entries are matched by path only; text manifests are also sniffed.
// Labels within a category follow signal table order and are never repeated.
func DetectTechnologies(signals []rules.CompiledSignal, corpus *domain.Corpus) domain.TechnologyProfile {
	found := make([]bool, len(signals))

	if corpus != nil {
		for _, f := range corpus.Files {
			lp := normalizePath(f.Path)
			head := f.Content
			if len(head) > rules.TechSniffBytes {
				head = head[:rules.TechSniffBytes]
			}
			for i := range signals {
				if found[i] {
					continue
				}
				s := &signals[i]
				if s.MatchPath(lp) {
					found[i] = true
					continue
				}
				if !f.Binary && head != "" && s.SniffsFile(lp) && s.MatchContent(head) {
					found[i] = true
				}
			}
		}
	}

	profile := domain.TechnologyProfile{}
	for i, s := range signals {
		if !found[i] {
			continue
		}
		if !containsLabel(profile[s.Category], s.Label) {
			profile[s.Category] = append(profile[s.Category], s.Label)
		}
	}
	return profile
}

func containsLabel(labels []string, label string) bool {
	for _, l := range labels {
		if l == label {
			return true
		}
	}
	return false
}
