package domain

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
	"sort"
)

// Category names for the three scoring dimensions.
const (
	CategorySecurity     = "security"
	CategoryQuality      = "quality"
	CategoryArchitecture = "architecture"
)

// CategoryOrder is the fixed category priority used for tie-breaking and display.
var CategoryOrder = []string{CategorySecurity, CategoryQuality, CategoryArchitecture}

// CategoryPriority returns the position of a category in CategoryOrder, or len(CategoryOrder)
// for unknown names.
func CategoryPriority(name string) int {
	for i, c := range CategoryOrder {
		if c == name {
			return i
		}
	}
	return len(CategoryOrder)
}

// CorpusFile is a single entry of a project corpus.
type CorpusFile struct {
	Path    string `json:"path"`
	Content string `json:"-"`
	Size    int64  `json:"size"`
	Binary  bool   `json:"binary,omitempty"`
}

// Corpus is the ordered set of files handed to the engine for one validation run.
// It is never mutated by the engine.
type Corpus struct {
	Files []CorpusFile `json:"files"`
}

// Len returns the number of entries.
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Files)
}

// Hash returns a hex sha256 over the ordered entries: path, size, binary flag and content.
func (c *Corpus) Hash() string {
	h := sha256.New()
	if c == nil {
		return hex.EncodeToString(h.Sum(nil))
	}
	var buf [8]byte
	for _, f := range c.Files {
		h.Write([]byte(f.Path))
		h.Write([]byte{0})
		binary.BigEndian.PutUint64(buf[:], uint64(f.Size))
		h.Write(buf[:])
		if f.Binary {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
		h.Write([]byte(f.Content))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// TechnologyProfile maps a technology category ("backend", "frontend", ...) to the
// deduplicated labels detected for it.
type TechnologyProfile map[string][]string

// Has reports whether at least one label was detected for the category.
func (p TechnologyProfile) Has(category string) bool {
	return len(p[category]) > 0
}

// Categories returns the non-empty categories in sorted order.
func (p TechnologyProfile) Categories() []string {
	cats := make([]string, 0, len(p))
	for c, labels := range p {
		if len(labels) > 0 {
			cats = append(cats, c)
		}
	}
	sort.Strings(cats)
	return cats
}

// Labels returns every detected label, grouped by sorted category.
func (p TechnologyProfile) Labels() []string {
	var out []string
	for _, c := range p.Categories() {
		out = append(out, p[c]...)
	}
	return out
}

// Count returns the total number of labels across all categories.
func (p TechnologyProfile) Count() int {
	n := 0
	for _, labels := range p {
		n += len(labels)
	}
	return n
}

// RuleMatch records one rule that contributed points to a category.
type RuleMatch struct {
	RuleID   string `json:"rule_id"`
	Category string `json:"category"`
	Points   int    `json:"points"`
	Evidence string `json:"evidence,omitempty"`
	Path     string `json:"path,omitempty"`
	Files    int    `json:"files,omitempty"`
}

// CategoryScore is the result of one category analyzer.
type CategoryScore struct {
	Name    string      `json:"name"`
	Base    int         `json:"base"`
	Score   int         `json:"score"`
	Weight  float64     `json:"weight"`
	Matches []RuleMatch `json:"matches,omitempty"`
}

// Matched reports whether the given rule contributed to the score.
func (c CategoryScore) Matched(ruleID string) bool {
	for _, m := range c.Matches {
		if m.RuleID == ruleID {
			return true
		}
	}
	return false
}

// Compliant reports whether the category meets the compliance threshold.
func (c CategoryScore) Compliant() bool { return c.Score >= ComplianceThreshold }

// ComplianceThreshold is the minimum category score considered compliant.
const ComplianceThreshold = 80

// ApplicationType is the classified kind of project.
type ApplicationType struct {
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Components  []string `json:"components"`
	Confidence  float64  `json:"confidence"`
}

// Recommendation is a suggestion derived from an unmatched rule.
type Recommendation struct {
	RuleID   string `json:"rule_id"`
	Category string `json:"category"`
	Points   int    `json:"points"`
	Message  string `json:"message"`
}

// SkippedEntry records a corpus entry that was excluded from analysis.
type SkippedEntry struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// FileTypeCount counts corpus entries sharing an extension.
type FileTypeCount struct {
	Extension string `json:"extension"`
	Count     int    `json:"count"`
}

// ProjectStructure summarizes the analyzed corpus.
type ProjectStructure struct {
	TotalFiles  int             `json:"total_files"`
	TextFiles   int             `json:"text_files"`
	TotalBytes  int64           `json:"total_bytes"`
	Directories int             `json:"directories"`
	FileTypes   []FileTypeCount `json:"file_types,omitempty"`
}

// ValidationResult is the terminal output of one validation run. It carries no
// identifiers or timestamps so identical corpora produce identical results.
type ValidationResult struct {
	RulesVersion    string            `json:"rules_version"`
	Technologies    TechnologyProfile `json:"technologies"`
	Application     ApplicationType   `json:"application"`
	Security        CategoryScore     `json:"security"`
	Quality         CategoryScore     `json:"quality"`
	Architecture    CategoryScore     `json:"architecture"`
	Overall         int               `json:"overall"`
	Grade           string            `json:"grade"`
	Recommendations []Recommendation  `json:"recommendations"`
	MissingParts    []string          `json:"missing_components,omitempty"`
	Structure       ProjectStructure  `json:"structure"`
	Skipped         []SkippedEntry    `json:"skipped,omitempty"`
}

// Categories returns the three category scores in CategoryOrder.
func (r *ValidationResult) Categories() []CategoryScore {
	return []CategoryScore{r.Security, r.Quality, r.Architecture}
}

// Strengths lists notable positives: categories scoring 90+ and detected DevOps tooling.
func (r *ValidationResult) Strengths() []string {
	var out []string
	if r.Security.Score >= 90 {
		out = append(out, "Excellent security implementation")
	}
	if r.Quality.Score >= 90 {
		out = append(out, "High code quality standards")
	}
	if r.Architecture.Score >= 90 {
		out = append(out, "Well-structured architecture")
	}
	if r.Technologies.Has("devops") {
		out = append(out, "Modern DevOps practices")
	}
	return out
}

// GradeFor maps an overall score to a letter grade.
func GradeFor(score int) string {
	switch {
	case score >= 90:
		return "A+"
	case score >= 80:
		return "A"
	case score >= 70:
		return "B"
	case score >= 60:
		return "C"
	default:
		return "D"
	}
}

// GradeLabel returns the grade with its descriptive suffix.
func GradeLabel(grade string) string {
	switch grade {
	case "A+":
		return "A+ (Excellent)"
	case "A":
		return "A (Very Good)"
	case "B":
		return "B (Good)"
	case "C":
		return "C (Fair)"
	default:
		return "D (Needs Improvement)"
	}
}

// BadgeColor returns the shields.io badge color for an overall score.
func BadgeColor(score int) string {
	switch {
	case score >= 90:
		return "brightgreen"
	case score >= 80:
		return "green"
	case score >= 70:
		return "yellow"
	case score >= 60:
		return "orange"
	default:
		return "red"
	}
}

// ComputeOverallScore returns the weighted mean of the category scores, rounded.
// Zero total weight yields 0.
func ComputeOverallScore(categories []CategoryScore) int {
	var totalWeighted, totalWeight float64
	for _, c := range categories {
		totalWeighted += float64(c.Score) * c.Weight
		totalWeight += c.Weight
	}
	if totalWeight == 0 {
		return 0
	}
	return int(math.Round(totalWeighted / totalWeight))
}

// Clamp bounds a score to [0,100].
func Clamp(score int) int {
	return max(0, min(score, 100))
}
