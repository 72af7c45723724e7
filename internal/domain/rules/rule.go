// Package rules holds the declarative rule tables the category analyzers and the
// technology detector evaluate, and the load-time checks that guard them.
package rules

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/blueprintkit/blueprintkit/internal/domain"
)

// Version identifies the rule tables. It changes whenever a rule, point value or
// base score changes, so cached results are never reused across versions.
const Version = "2024.1"

// Target selects what a rule predicate is evaluated against.
type Target string

const (
	TargetPath    Target = "path"
	TargetContent Target = "content"
)

// Kind selects how a rule's patterns are interpreted.
type Kind string

const (
	KindGlob      Kind = "glob"
	KindRegex     Kind = "regex"
	KindSubstring Kind = "substring"
)

// Mode controls how often a rule may award points.
type Mode string

const (
	ModeOnce    Mode = "once"
	ModePerFile Mode = "per-file"
)

// SourceExtensions are the file extensions content rules marked SourceOnly inspect.
var SourceExtensions = []string{".js", ".jsx", ".ts", ".tsx", ".py", ".java", ".cs", ".php", ".rb", ".go", ".rs"}

// IsSourceFile reports whether the path has one of the SourceExtensions.
func IsSourceFile(p string) bool {
	ext := strings.ToLower(path.Ext(p))
	for _, e := range SourceExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Rule is one detection predicate and its point contribution.
type Rule struct {
	ID             string   `json:"id"`
	Category       string   `json:"category"`
	Title          string   `json:"title"`
	Points         int      `json:"points"`
	Target         Target   `json:"target"`
	Kind           Kind     `json:"kind"`
	Patterns       []string `json:"patterns"`
	SourceOnly     bool     `json:"source_only,omitempty"`
	Mode           Mode     `json:"mode"`
	MaxPoints      int      `json:"max_points,omitempty"`
	Recommendation string   `json:"recommendation"`
}

// Cap returns the most points the rule can ever award.
func (r Rule) Cap() int {
	if r.Mode == ModePerFile {
		return r.MaxPoints
	}
	return r.Points
}

// Table is the rule table of one category.
type Table struct {
	Category string `json:"category"`
	Base     int    `json:"base"`
	Rules    []Rule `json:"rules"`
}

// CompiledRule is a Rule with its patterns prepared for matching.
type CompiledRule struct {
	Rule
	regexes []*regexp.Regexp
	lowered []string
}

// CompiledTable is a Table that passed Compile.
type CompiledTable struct {
	Category string
	Base     int
	Rules    []CompiledRule
}

// Rule returns the compiled rule with the given id.
func (t *CompiledTable) Rule(id string) (CompiledRule, bool) {
	for _, r := range t.Rules {
		if r.ID == id {
			return r, true
		}
	}
	return CompiledRule{}, false
}

// Compile validates a table and prepares its predicates. Any inconsistency is
// reported as a *domain.RuleTableInconsistencyError.
func Compile(t Table) (*CompiledTable, error) {
	fail := func(id, format string, args ...any) error {
		return &domain.RuleTableInconsistencyError{Table: t.Category, RuleID: id, Reason: fmt.Sprintf(format, args...)}
	}

	if t.Category == "" {
		return nil, fail("", "missing category")
	}
	if t.Base < 0 || t.Base > 100 {
		return nil, fail("", "base score %d outside [0,100]", t.Base)
	}

	out := &CompiledTable{Category: t.Category, Base: t.Base}
	seen := make(map[string]bool, len(t.Rules))

	for _, r := range t.Rules {
		if r.ID == "" {
			return nil, fail("", "rule without id")
		}
		if seen[r.ID] {
			return nil, fail(r.ID, "duplicate rule id")
		}
		seen[r.ID] = true

		if r.Category != t.Category {
			return nil, fail(r.ID, "category %q does not match table", r.Category)
		}
		if r.Points <= 0 {
			return nil, fail(r.ID, "points must be positive, got %d", r.Points)
		}
		switch r.Mode {
		case ModeOnce:
		case ModePerFile:
			if r.MaxPoints <= 0 {
				return nil, fail(r.ID, "per-file rule needs a positive max_points")
			}
		default:
			return nil, fail(r.ID, "unknown mode %q", r.Mode)
		}
		if r.Target != TargetPath && r.Target != TargetContent {
			return nil, fail(r.ID, "unknown target %q", r.Target)
		}
		if len(r.Patterns) == 0 {
			return nil, fail(r.ID, "no patterns")
		}
		if r.Recommendation == "" {
			return nil, fail(r.ID, "missing recommendation")
		}

		cr := CompiledRule{Rule: r}
		for _, p := range r.Patterns {
			if p == "" {
				return nil, fail(r.ID, "empty pattern")
			}
			switch r.Kind {
			case KindGlob:
				if r.Target != TargetPath {
					return nil, fail(r.ID, "glob patterns only apply to paths")
				}
				lp := strings.ToLower(p)
				if !doublestar.ValidatePattern(lp) {
					return nil, fail(r.ID, "malformed glob %q", p)
				}
				cr.lowered = append(cr.lowered, lp)
			case KindRegex:
				re, err := regexp.Compile("(?i)" + p)
				if err != nil {
					return nil, fail(r.ID, "malformed regex %q: %v", p, err)
				}
				cr.regexes = append(cr.regexes, re)
			case KindSubstring:
				cr.lowered = append(cr.lowered, strings.ToLower(p))
			default:
				return nil, fail(r.ID, "unknown kind %q", r.Kind)
			}
		}
		out.Rules = append(out.Rules, cr)
	}

	return out, nil
}

// MustCompile is like Compile but panics. It is meant for the built-in tables.
func MustCompile(t Table) *CompiledTable {
	ct, err := Compile(t)
	if err != nil {
		panic(err)
	}
	return ct
}

// MatchPath reports whether the lowercased slash path satisfies the rule.
// The caller lowercases once per file.
func (r *CompiledRule) MatchPath(lowerPath string) bool {
	switch r.Kind {
	case KindGlob:
		for _, p := range r.lowered {
			if ok, _ := doublestar.Match(p, lowerPath); ok {
				return true
			}
		}
	case KindRegex:
		for _, re := range r.regexes {
			if re.MatchString(lowerPath) {
				return true
			}
		}
	case KindSubstring:
		for _, p := range r.lowered {
			if strings.Contains(lowerPath, p) {
				return true
			}
		}
	}
	return false
}

// MatchContent reports whether the lowercased content satisfies the rule and
// returns a short snippet around the first match.
func (r *CompiledRule) MatchContent(lowerContent string) (string, bool) {
	switch r.Kind {
	case KindRegex:
		for _, re := range r.regexes {
			if loc := re.FindStringIndex(lowerContent); loc != nil {
				return snippet(lowerContent, loc[0], loc[1]), true
			}
		}
	case KindSubstring:
		for _, p := range r.lowered {
			if i := strings.Index(lowerContent, p); i >= 0 {
				return snippet(lowerContent, i, i+len(p)), true
			}
		}
	}
	return "", false
}

const snippetContext = 20

// snippet returns the matched text with a little surrounding context on one line.
func snippet(s string, start, end int) string {
	from := max(0, start-snippetContext)
	to := min(len(s), end+snippetContext)
	if nl := strings.LastIndexByte(s[from:start], '\n'); nl >= 0 {
		from += nl + 1
	}
	if nl := strings.IndexByte(s[end:to], '\n'); nl >= 0 {
		to = end + nl
	}
	return strings.ToValidUTF8(strings.TrimSpace(s[from:to]), "")
}
