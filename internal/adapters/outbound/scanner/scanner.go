package scanner

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/denormal/go-gitignore"
	"github.com/rs/zerolog"

	"github.com/blueprintkit/blueprintkit/internal/adapters/outbound/corpusio"
	"github.com/blueprintkit/blueprintkit/internal/domain"
	"github.com/blueprintkit/blueprintkit/internal/logging"
)

// FileScanner implements domain.CorpusSource by walking a local directory.
// Directories in corpusio.SkipDirs are never entered and the root .gitignore
// is honoured.
type FileScanner struct {
	log zerolog.Logger
}

func New() *FileScanner {
	return &FileScanner{log: logging.GetLogger("scanner")}
}

func (s *FileScanner) Load(ctx context.Context, projectPath string, limits domain.Limits) (*domain.Corpus, []domain.SkippedEntry, error) {
	absPath, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, nil, err
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, nil, fmt.Errorf("reading project directory: %w", err)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("%s is not a directory", projectPath)
	}

	ignore := loadGitignore(absPath)
	b := corpusio.NewBuilder(limits)

	err = filepath.WalkDir(absPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			rel, _ := filepath.Rel(absPath, path)
			b.Skip(filepath.ToSlash(rel), err.Error())
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if path == absPath {
			return nil
		}

		relPath, _ := filepath.Rel(absPath, path)
		rel := filepath.ToSlash(relPath)

		if d.IsDir() {
			if corpusio.SkipDirs[d.Name()] || b.Excluded(rel) || ignored(ignore, rel, true) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || b.Excluded(rel) || ignored(ignore, rel, false) {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			b.Skip(rel, err.Error())
			return nil
		}
		return b.Add(rel, fi.Size(), func() (io.ReadCloser, error) {
			return os.Open(path)
		})
	})
	if err != nil {
		return nil, nil, err
	}

	corpus, skipped := b.Corpus()
	s.log.Debug().
		Str("path", absPath).
		Int("files", corpus.Len()).
		Int("skipped", len(skipped)).
		Msg("scanned directory")
	return corpus, skipped, nil
}

func loadGitignore(root string) gitignore.GitIgnore {
	data, err := os.ReadFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gitignore.New(strings.NewReader(string(data)), root, nil)
}

func ignored(ig gitignore.GitIgnore, rel string, isDir bool) bool {
	if ig == nil {
		return false
	}
	match := ig.Relative(rel, isDir)
	return match != nil && match.Ignore()
}
