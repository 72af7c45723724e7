package scoring

import (
	"math"

	"github.com/blueprintkit/blueprintkit/internal/domain"
)

// Application type labels, in classification priority order.
const (
	AppFullStack         = "full-stack-web-app"
	AppMobileWithBackend = "mobile-app-with-backend"
	AppFrontend          = "frontend-app"
	AppCLI               = "cli-tool"
	AppAPIService        = "api-service"
	AppMobile            = "mobile-app"
	AppUnknown           = "unknown"
)

type appKind struct {
	name        string
	description string
	requires    []string
}

// applicationKinds is evaluated top to bottom; the first kind whose required
// technology categories are all present wins, which also settles ties.
var applicationKinds = []appKind{
	{AppFullStack, "Full-stack web application with frontend and backend components", []string{"frontend", "backend"}},
	{AppMobileWithBackend, "Mobile application with backend API", []string{"mobile", "backend"}},
	{AppFrontend, "Frontend web application", []string{"frontend"}},
	{AppCLI, "Command-line tool", []string{"cli"}},
	{AppAPIService, "Backend API or service", []string{"backend"}},
	{AppMobile, "Mobile application", []string{"mobile"}},
}

// supportingCategories add components and a little confidence to any application type.
var supportingCategories = []string{"database", "devops"}

// Confidence tuning.
const (
	confidenceTwoSided   = 0.4
	confidenceOneSided   = 0.3
	confidencePerLabel   = 0.1
	confidenceSupporting = 0.05
)

// ClassifyApplication derives the application type from the technology profile.
// Confidence grows with each corroborating label and is capped at 1.0.
func ClassifyApplication(profile domain.TechnologyProfile) domain.ApplicationType {
	var supporting []string
	for _, c := range supportingCategories {
		if profile.Has(c) {
			supporting = append(supporting, c)
		}
	}

	for _, k := range applicationKinds {
		if !hasAll(profile, k.requires) {
			continue
		}

		conf := confidenceOneSided
		if len(k.requires) > 1 {
			conf = confidenceTwoSided
		}
		for _, c := range k.requires {
			conf += confidencePerLabel * float64(len(profile[c]))
		}
		conf += confidenceSupporting * float64(len(supporting))

		components := append(append([]string{}, k.requires...), supporting...)
		return domain.ApplicationType{
			Type:        k.name,
			Description: k.description,
			Components:  components,
			Confidence:  roundConfidence(conf),
		}
	}

	return domain.ApplicationType{
		Type:        AppUnknown,
		Description: "Unrecognized project type",
		Components:  append([]string{}, supporting...),
		Confidence:  0,
	}
}

func hasAll(profile domain.TechnologyProfile, categories []string) bool {
	for _, c := range categories {
		if !profile.Has(c) {
			return false
		}
	}
	return true
}

func roundConfidence(v float64) float64 {
	return math.Min(1.0, math.Round(v*100)/100)
}

// ApplyWeights sets each category's weight from the configuration.
func ApplyWeights(categories []domain.CategoryScore, weights domain.CategoryWeights) []domain.CategoryScore {
	out := make([]domain.CategoryScore, len(categories))
	for i, c := range categories {
		c.Weight = weights.For(c.Name)
		out[i] = c
	}
	return out
}
