package rules

import "github.com/blueprintkit/blueprintkit/internal/domain"

// Base scores credit a project that exists and runs before any rule matches.
const (
	SecurityBase     = 50
	QualityBase      = 60
	ArchitectureBase = 60
)

// Security returns the security rule table. Content rules scan source files only.
func Security() Table {
	c := domain.CategorySecurity
	return Table{
		Category: c,
		Base:     SecurityBase,
		Rules: []Rule{
			{
				ID: "authentication", Category: c, Title: "Authentication", Points: 25,
				Target: TargetContent, Kind: KindRegex, SourceOnly: true, Mode: ModeOnce,
				Patterns:       []string{`jwt`, `passport`, `oauth`, `saml`, `bcrypt`, `\blogin\b`, `session`, `\bauth`, `password`},
				Recommendation: "Implement authentication mechanisms (JWT, OAuth, session login)",
			},
			{
				ID: "input_validation", Category: c, Title: "Input Validation", Points: 15,
				Target: TargetContent, Kind: KindRegex, SourceOnly: true, Mode: ModeOnce,
				Patterns:       []string{`validat`, `sanitiz`, `\bescape`, `xss`, `csrf`, `\bjoi\b`, `\byup\b`, `pydantic`},
				Recommendation: "Implement input validation and sanitization mechanisms",
			},
			{
				ID: "encryption", Category: c, Title: "Encryption", Points: 10,
				Target: TargetContent, Kind: KindRegex, SourceOnly: true, Mode: ModeOnce,
				Patterns:       []string{`crypto`, `encrypt`, `decrypt`, `\bhash`, `\bssl\b`, `\btls\b`, `certificate`, `cipher`},
				Recommendation: "Implement encryption and password hashing mechanisms",
			},
			{
				ID: "security_headers", Category: c, Title: "Security Headers", Points: 5,
				Target: TargetContent, Kind: KindSubstring, SourceOnly: true, Mode: ModeOnce,
				Patterns:       []string{"helmet", "cors", "content-security-policy", "x-frame-options", "strict-transport-security"},
				Recommendation: "Implement security headers (CORS, CSP, X-Frame-Options)",
			},
			{
				ID: "rate_limiting", Category: c, Title: "Rate Limiting", Points: 5,
				Target: TargetContent, Kind: KindRegex, SourceOnly: true, Mode: ModeOnce,
				Patterns:       []string{`rate.?limit`, `throttl`, `\blimiter\b`},
				Recommendation: "Add rate limiting and abuse protection",
			},
			{
				ID: "dependency_scanning", Category: c, Title: "Dependency Scanning", Points: 5,
				Target: TargetPath, Kind: KindGlob, Mode: ModeOnce,
				Patterns:       []string{".github/dependabot.y*ml", "**/renovate.json", "**/.snyk", "**/.github/workflows/*codeql*"},
				Recommendation: "Add automated dependency and security scanning (Dependabot, CodeQL)",
			},
			{
				ID: "secret_hygiene", Category: c, Title: "Secret Hygiene", Points: 5,
				Target: TargetPath, Kind: KindGlob, Mode: ModeOnce,
				Patterns:       []string{"**/.env.example", "**/.env.sample", "**/.env.template"},
				Recommendation: "Document required secrets in an .env.example instead of committing them",
			},
		},
	}
}

// Quality returns the quality rule table.
func Quality() Table {
	c := domain.CategoryQuality
	return Table{
		Category: c,
		Base:     QualityBase,
		Rules: []Rule{
			{
				ID: "testing", Category: c, Title: "Testing", Points: 20,
				Target: TargetPath, Kind: KindRegex, Mode: ModeOnce,
				Patterns: []string{
					`(^|/)(tests?|spec|__tests__)/`, `\.(test|spec)\.[a-z]+$`,
					`(^|/)test_[^/]*\.py$`, `_test\.(go|py)$`, `(^|/)(pytest\.ini|jest\.config\.[a-z]+)$`,
				},
				Recommendation: "Add a testing framework and unit tests",
			},
			{
				ID: "documentation", Category: c, Title: "Documentation", Points: 15,
				Target: TargetPath, Kind: KindRegex, Mode: ModeOnce,
				Patterns:       []string{`(^|/)readme(\.[a-z]+)?$`, `(^|/)docs?/`, `swagger`, `openapi`},
				Recommendation: "Add documentation (README, API docs)",
			},
			{
				ID: "linting", Category: c, Title: "Linting", Points: 10,
				Target: TargetPath, Kind: KindRegex, Mode: ModeOnce,
				Patterns: []string{
					`(^|/)\.?eslint`, `(^|/)\.?prettier`, `(^|/)\.pylintrc$`, `(^|/)\.flake8$`,
					`(^|/)\.editorconfig$`, `(^|/)\.golangci\.ya?ml$`, `(^|/)ruff\.toml$`, `(^|/)\.rubocop\.yml$`,
				},
				Recommendation: "Add linting and formatting tools (ESLint, Prettier, Ruff, golangci-lint)",
			},
			{
				ID: "ci_cd", Category: c, Title: "CI/CD", Points: 10,
				Target: TargetPath, Kind: KindRegex, Mode: ModeOnce,
				Patterns: []string{
					`(^|/)\.github/workflows/`, `(^|/)\.gitlab-ci\.yml$`, `(^|/)jenkinsfile$`,
					`(^|/)\.travis\.yml$`, `(^|/)\.circleci/`, `(^|/)azure-pipelines\.yml$`,
				},
				Recommendation: "Set up a CI/CD pipeline with automated testing",
			},
			{
				ID: "error_handling", Category: c, Title: "Error Handling", Points: 5,
				Target: TargetContent, Kind: KindRegex, SourceOnly: true, Mode: ModeOnce,
				Patterns:       []string{`\btry\s*[:{]`, `\bexcept\b`, `\bcatch\s*\(`, `\braise\b`, `\bthrow\b`, `errors\.new`, `fmt\.errorf`, `\blogger\b`, `\blogging\b`},
				Recommendation: "Add consistent error handling and logging",
			},
			{
				ID: "type_checking", Category: c, Title: "Type Checking", Points: 5,
				Target: TargetPath, Kind: KindGlob, Mode: ModeOnce,
				Patterns:       []string{"**/tsconfig.json", "**/mypy.ini", "**/py.typed", "**/.mypy.ini", "**/pyrightconfig.json"},
				Recommendation: "Enable static type checking (TypeScript, mypy)",
			},
			{
				ID: "test_suite_breadth", Category: c, Title: "Test Suite Breadth", Points: 1,
				Target: TargetPath, Kind: KindRegex, Mode: ModePerFile, MaxPoints: 5,
				Patterns:       []string{`(^|/)test_[^/]*\.py$`, `_test\.(go|py)$`, `\.(test|spec)\.[a-z]+$`},
				Recommendation: "Grow the test suite beyond a handful of test files",
			},
		},
	}
}

// Architecture returns the architecture rule table. Directory rules are path globs.
func Architecture() Table {
	c := domain.CategoryArchitecture
	return Table{
		Category: c,
		Base:     ArchitectureBase,
		Rules: []Rule{
			{
				ID: "dependency_manifest", Category: c, Title: "Dependency Manifest", Points: 8,
				Target: TargetPath, Kind: KindGlob, Mode: ModeOnce,
				Patterns: []string{
					"requirements.txt", "pyproject.toml", "package.json", "go.mod", "pom.xml",
					"build.gradle", "cargo.toml", "gemfile", "composer.json", "*.csproj",
				},
				Recommendation: "Declare dependencies in a manifest (requirements.txt, package.json, go.mod)",
			},
			{
				ID: "components", Category: c, Title: "Component Structure", Points: 8,
				Target: TargetPath, Kind: KindGlob, Mode: ModeOnce,
				Patterns:       []string{"**/components/**", "**/pages/**"},
				Recommendation: "Organize UI code into components",
			},
			{
				ID: "service_layer", Category: c, Title: "Service Layer", Points: 7,
				Target: TargetPath, Kind: KindGlob, Mode: ModeOnce,
				Patterns:       []string{"**/services/**", "**/service/**"},
				Recommendation: "Introduce a service layer to separate business logic",
			},
			{
				ID: "test_directory", Category: c, Title: "Dedicated Test Directory", Points: 5,
				Target: TargetPath, Kind: KindGlob, Mode: ModeOnce,
				Patterns:       []string{"**/tests/**", "**/test/**", "**/__tests__/**", "**/spec/**"},
				Recommendation: "Keep tests in a dedicated tests/ directory",
			},
			{
				ID: "source_directory", Category: c, Title: "Source Directory", Points: 5,
				Target: TargetPath, Kind: KindGlob, Mode: ModeOnce,
				Patterns:       []string{"src/**", "internal/**", "lib/**", "app/**"},
				Recommendation: "Keep application code under an organized source directory (src/)",
			},
			{
				ID: "shared_utilities", Category: c, Title: "Shared Utilities", Points: 5,
				Target: TargetPath, Kind: KindGlob, Mode: ModeOnce,
				Patterns:       []string{"**/utils/**", "**/helpers/**", "**/common/**", "**/pkg/**"},
				Recommendation: "Separate shared helpers into a utilities package",
			},
			{
				ID: "mvc_layout", Category: c, Title: "MVC Layout", Points: 5,
				Target: TargetPath, Kind: KindGlob, Mode: ModeOnce,
				Patterns:       []string{"**/models/**", "**/views/**", "**/controllers/**"},
				Recommendation: "Implement clear separation of concerns (models, views, controllers)",
			},
			{
				ID: "api_layer", Category: c, Title: "API Layer", Points: 5,
				Target: TargetPath, Kind: KindGlob, Mode: ModeOnce,
				Patterns:       []string{"**/api/**", "**/routes/**", "**/handlers/**"},
				Recommendation: "Group API routes and handlers into a dedicated layer",
			},
			{
				ID: "containerization", Category: c, Title: "Containerization", Points: 5,
				Target: TargetPath, Kind: KindGlob, Mode: ModeOnce,
				Patterns:       []string{"**/dockerfile", "**/*.dockerfile"},
				Recommendation: "Containerize the application with a Dockerfile",
			},
			{
				ID: "static_assets", Category: c, Title: "Static Assets", Points: 3,
				Target: TargetPath, Kind: KindGlob, Mode: ModeOnce,
				Patterns:       []string{"**/static/**", "**/public/**", "**/assets/**", "**/templates/**"},
				Recommendation: "Keep static assets and templates in their own directories",
			},
			{
				ID: "orchestration", Category: c, Title: "Service Orchestration", Points: 3,
				Target: TargetPath, Kind: KindGlob, Mode: ModeOnce,
				Patterns:       []string{"**/docker-compose.y*ml", "**/compose.y*ml", "**/k8s/**", "**/kubernetes/**", "**/helm/**"},
				Recommendation: "Describe multi-service setups with docker-compose or Kubernetes manifests",
			},
			{
				ID: "configuration", Category: c, Title: "Configuration Management", Points: 2,
				Target: TargetPath, Kind: KindGlob, Mode: ModeOnce,
				Patterns:       []string{"**/config/**", "**/.env.example", "**/settings.py", "**/config.y*ml"},
				Recommendation: "Centralize configuration in a config/ directory or environment template",
			},
		},
	}
}

// Tables returns the three built-in tables in category priority order.
func Tables() []Table {
	return []Table{Security(), Quality(), Architecture()}
}
