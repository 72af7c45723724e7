package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/blueprintkit/blueprintkit/internal/adapters/outbound/archive"
	"github.com/blueprintkit/blueprintkit/internal/adapters/outbound/cache"
	"github.com/blueprintkit/blueprintkit/internal/adapters/outbound/config"
	"github.com/blueprintkit/blueprintkit/internal/adapters/outbound/gitinfo"
	"github.com/blueprintkit/blueprintkit/internal/adapters/outbound/history"
	"github.com/blueprintkit/blueprintkit/internal/adapters/outbound/report"
	"github.com/blueprintkit/blueprintkit/internal/adapters/outbound/scanner"
	"github.com/blueprintkit/blueprintkit/internal/application"
	"github.com/blueprintkit/blueprintkit/internal/domain/rules"
)

func newService() (*application.ValidateService, error) {
	set, err := rules.Default()
	if err != nil {
		return nil, fmt.Errorf("loading rules: %w", err)
	}
	return application.NewValidateService(
		set,
		config.New(),
		application.Sources{
			Directory: scanner.New(),
			Archive:   archive.New(),
			Git:       gitinfo.NewCloneSource(),
		},
		cache.New(cache.DefaultCapacity),
		history.New(),
		gitinfo.New(),
		report.New(),
	), nil
}

// sourceFlags selects where the corpus comes from.
type sourceFlags struct {
	git       bool
	archive   bool
	configDir string
}

// request resolves the positional argument into a validation request. Remote
// URLs and archive file names are recognized without the explicit flags.
func (f sourceFlags) request(args []string) (application.Request, error) {
	location := "."
	if len(args) > 0 {
		location = args[0]
	}

	kind := application.SourceDirectory
	switch {
	case f.git && f.archive:
		return application.Request{}, fmt.Errorf("--git and --archive are mutually exclusive")
	case f.git || gitinfo.IsRemote(location):
		kind = application.SourceGit
	case f.archive || archive.Supported(location):
		kind = application.SourceArchive
	}

	if kind != application.SourceGit {
		abs, err := filepath.Abs(location)
		if err != nil {
			return application.Request{}, fmt.Errorf("resolving path: %w", err)
		}
		location = abs
	}

	req := application.Request{Location: location, Kind: kind, ConfigDir: f.configDir}
	if req.ConfigDir != "" {
		abs, err := filepath.Abs(req.ConfigDir)
		if err != nil {
			return application.Request{}, fmt.Errorf("resolving config dir: %w", err)
		}
		req.ConfigDir = abs
	}
	return req, nil
}

// projectName derives a report title from a location.
func projectName(location string) string {
	name := strings.TrimSuffix(location, "/")
	name = strings.TrimSuffix(name, ".git")
	if i := strings.LastIndexAny(name, "/:"); i >= 0 {
		name = name[i+1:]
	}
	for _, ext := range []string{".tar.gz", ".tgz", ".tar", ".zip"} {
		name = strings.TrimSuffix(name, ext)
	}
	if name == "" || name == "." {
		return "Project"
	}
	return name
}
