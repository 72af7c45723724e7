package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/blueprintkit/blueprintkit/internal/domain"
)

// TechSniffBytes is how much of a manifest file the detector inspects.
const TechSniffBytes = 8 * 1024

// Manifests are the files whose leading content is sniffed for technology signals.
var Manifests = []string{
	"**/package.json", "**/requirements*.txt", "**/pyproject.toml", "**/pipfile",
	"**/go.mod", "**/pom.xml", "**/build.gradle", "**/cargo.toml", "**/gemfile",
	"**/composer.json", "**/pubspec.yaml",
}

// TechSignal maps path and manifest-content patterns to a technology label.
// Path patterns are case-insensitive regexes over the slash path; Content patterns
// are regexes over the first TechSniffBytes of files matching ContentFiles globs
// (Manifests when empty).
type TechSignal struct {
	Category     string   `json:"category"`
	Label        string   `json:"label"`
	Paths        []string `json:"paths,omitempty"`
	ContentFiles []string `json:"content_files,omitempty"`
	Content      []string `json:"content,omitempty"`
}

// Technologies returns the technology signal table. Order is significant: labels
// within a category are reported in table order.
func Technologies() []TechSignal {
	return []TechSignal{
		// frontend
		{Category: "frontend", Label: "react", Paths: []string{`\.jsx$`, `\.tsx$`}, Content: []string{`"react"\s*:`}},
		{Category: "frontend", Label: "vue", Paths: []string{`\.vue$`, `(^|/)vue\.config\.js$`}, Content: []string{`"vue"\s*:`}},
		{Category: "frontend", Label: "angular", Paths: []string{`(^|/)angular\.json$`, `\.component\.ts$`}, Content: []string{`"@angular/core"`}},
		{Category: "frontend", Label: "svelte", Paths: []string{`\.svelte$`}, Content: []string{`"svelte"\s*:`}},
		{Category: "frontend", Label: "html_css", Paths: []string{`\.html?$`, `\.css$`, `\.s[ac]ss$`, `\.less$`}},
		// backend
		{Category: "backend", Label: "node", Paths: []string{`(^|/)server\.js$`}, Content: []string{`"(express|fastify|koa|@nestjs/core)"\s*:`}},
		{Category: "backend", Label: "python", Paths: []string{`(^|/)requirements[^/]*\.txt$`, `(^|/)pyproject\.toml$`, `(^|/)(main|app|manage|wsgi|asgi)\.py$`}},
		{Category: "backend", Label: "fastapi", Content: []string{`(?m)^\s*"?fastapi\b`}},
		{Category: "backend", Label: "flask", Content: []string{`(?m)^\s*"?flask\b`}},
		{Category: "backend", Label: "django", Content: []string{`(?m)^\s*"?django\b`}},
		{Category: "backend", Label: "java", Paths: []string{`(^|/)pom\.xml$`, `(^|/)src/main/java/`}},
		{Category: "backend", Label: "csharp", Paths: []string{`\.csproj$`, `\.sln$`, `(^|/)program\.cs$`}},
		{Category: "backend", Label: "php", Paths: []string{`(^|/)composer\.json$`, `(^|/)index\.php$`}},
		{Category: "backend", Label: "ruby", Paths: []string{`(^|/)gemfile$`, `(^|/)config\.ru$`}},
		{Category: "backend", Label: "go", Paths: []string{`(^|/)go\.mod$`, `(^|/)main\.go$`}},
		{Category: "backend", Label: "rust", Paths: []string{`(^|/)cargo\.toml$`, `(^|/)src/main\.rs$`}},
		// mobile
		{Category: "mobile", Label: "ios", Paths: []string{`\.xcodeproj/`, `\.swift$`, `(^|/)podfile$`}},
		{Category: "mobile", Label: "android", Paths: []string{`(^|/)androidmanifest\.xml$`, `\.kt$`}},
		{Category: "mobile", Label: "flutter", Paths: []string{`(^|/)pubspec\.yaml$`, `\.dart$`}},
		{Category: "mobile", Label: "react_native", Content: []string{`"react-native"\s*:`}},
		// database
		{Category: "database", Label: "sql", Paths: []string{`\.sql$`, `(^|/)migrations/`}},
		{Category: "database", Label: "postgresql", Content: []string{`psycopg|"pg"\s*:|asyncpg|github\.com/(lib/pq|jackc/pgx)`}},
		{Category: "database", Label: "mongodb", Paths: []string{`\.bson$`}, Content: []string{`mongoose|pymongo|"mongodb"|go\.mongodb\.org`}},
		{Category: "database", Label: "redis", Paths: []string{`(^|/)redis\.conf$`}, Content: []string{`\bredis\b`}},
		{Category: "database", Label: "sqlite", Paths: []string{`\.sqlite3?$`, `\.db$`}, Content: []string{`sqlite`}},
		// devops
		{Category: "devops", Label: "docker", Paths: []string{`(^|/)dockerfile$`, `\.dockerfile$`, `(^|/)docker-compose\.ya?ml$`, `(^|/)compose\.ya?ml$`, `(^|/)\.dockerignore$`}},
		{
			Category: "devops", Label: "kubernetes",
			Paths:        []string{`(^|/)k8s/`, `(^|/)kubernetes/`, `(^|/)chart\.yaml$`},
			ContentFiles: []string{"**/*.yaml", "**/*.yml"},
			Content:      []string{`(?m)^kind:\s*(deployment|service|statefulset|daemonset|ingress)\b`},
		},
		{Category: "devops", Label: "ci_cd", Paths: []string{`(^|/)\.github/workflows/`, `(^|/)\.gitlab-ci\.yml$`, `(^|/)jenkinsfile$`, `(^|/)\.travis\.yml$`}},
		{Category: "devops", Label: "terraform", Paths: []string{`\.tf$`}},
		// cli
		{Category: "cli", Label: "cobra", Content: []string{`github\.com/spf13/cobra`}},
		{Category: "cli", Label: "click", Content: []string{`(?m)^\s*"?(click|typer)\b`}},
		{Category: "cli", Label: "commander", Content: []string{`"(commander|yargs|oclif)"\s*:`}},
		{Category: "cli", Label: "clap", Content: []string{`(?m)^\s*clap\s*=`}},
	}
}

// CompiledSignal is a TechSignal with its patterns prepared.
type CompiledSignal struct {
	TechSignal
	paths        []*regexp.Regexp
	contentFiles []string
	content      []*regexp.Regexp
}

// CompileTechnologies validates the signal table. Duplicate (category, label)
// pairs and malformed patterns are reported as *domain.RuleTableInconsistencyError.
func CompileTechnologies(signals []TechSignal) ([]CompiledSignal, error) {
	fail := func(id, format string, args ...any) error {
		return &domain.RuleTableInconsistencyError{Table: "technologies", RuleID: id, Reason: fmt.Sprintf(format, args...)}
	}

	seen := make(map[string]bool, len(signals))
	out := make([]CompiledSignal, 0, len(signals))
	for _, s := range signals {
		id := s.Category + "/" + s.Label
		if s.Category == "" || s.Label == "" {
			return nil, fail(id, "missing category or label")
		}
		if seen[id] {
			return nil, fail(id, "duplicate signal")
		}
		seen[id] = true
		if len(s.Paths) == 0 && len(s.Content) == 0 {
			return nil, fail(id, "no patterns")
		}

		cs := CompiledSignal{TechSignal: s}
		for _, p := range s.Paths {
			re, err := regexp.Compile("(?i)" + p)
			if err != nil {
				return nil, fail(id, "malformed path regex %q: %v", p, err)
			}
			cs.paths = append(cs.paths, re)
		}
		for _, p := range s.Content {
			re, err := regexp.Compile("(?i)" + p)
			if err != nil {
				return nil, fail(id, "malformed content regex %q: %v", p, err)
			}
			cs.content = append(cs.content, re)
		}
		files := s.ContentFiles
		if len(files) == 0 {
			files = Manifests
		}
		for _, g := range files {
			lg := strings.ToLower(g)
			if !doublestar.ValidatePattern(lg) {
				return nil, fail(id, "malformed content file glob %q", g)
			}
			cs.contentFiles = append(cs.contentFiles, lg)
		}
		out = append(out, cs)
	}
	return out, nil
}

// MatchPath reports whether the lowercased path carries the signal.
func (s *CompiledSignal) MatchPath(lowerPath string) bool {
	for _, re := range s.paths {
		if re.MatchString(lowerPath) {
			return true
		}
	}
	return false
}

// SniffsFile reports whether the file's content should be inspected for this signal.
func (s *CompiledSignal) SniffsFile(lowerPath string) bool {
	if len(s.content) == 0 {
		return false
	}
	for _, g := range s.contentFiles {
		if ok, _ := doublestar.Match(g, lowerPath); ok {
			return true
		}
	}
	return false
}

// MatchContent reports whether the sniffed content carries the signal.
func (s *CompiledSignal) MatchContent(head string) bool {
	for _, re := range s.content {
		if re.MatchString(head) {
			return true
		}
	}
	return false
}
