package gitinfo

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/rs/zerolog"

	"github.com/blueprintkit/blueprintkit/internal/adapters/outbound/corpusio"
	"github.com/blueprintkit/blueprintkit/internal/domain"
	"github.com/blueprintkit/blueprintkit/internal/logging"
)

// CloneSource implements domain.CorpusSource for git repositories. The clone
// lives entirely in memory; nothing is written to disk.
type CloneSource struct {
	log zerolog.Logger
}

func NewCloneSource() *CloneSource {
	return &CloneSource{log: logging.GetLogger("gitinfo")}
}

// IsRemote reports whether the location names a remote repository rather than
// a local path.
func IsRemote(location string) bool {
	for _, prefix := range []string{"https://", "http://", "ssh://", "git://", "git@"} {
		if strings.HasPrefix(location, prefix) {
			return true
		}
	}
	return false
}

func (s *CloneSource) Load(ctx context.Context, url string, limits domain.Limits) (*domain.Corpus, []domain.SkippedEntry, error) {
	corpus, skipped, _, err := s.LoadWithCommit(ctx, url, limits)
	return corpus, skipped, err
}

// LoadWithCommit clones url and returns its corpus together with the HEAD
// hash of the clone. The hash is empty when HEAD cannot be resolved.
func (s *CloneSource) LoadWithCommit(ctx context.Context, url string, limits domain.Limits) (*domain.Corpus, []domain.SkippedEntry, string, error) {
	opts := &git.CloneOptions{
		URL:          url,
		SingleBranch: true,
		Tags:         git.NoTags,
	}
	if IsRemote(url) {
		opts.Depth = 1
	}

	fs := memfs.New()
	repo, err := git.CloneContext(ctx, memory.NewStorage(), fs, opts)
	if err != nil {
		return nil, nil, "", fmt.Errorf("cloning %s: %w", url, err)
	}
	var commit string
	if head, err := repo.Head(); err == nil {
		commit = head.Hash().String()
	}

	corpus, skipped, err := walkFS(ctx, fs, limits)
	if err != nil {
		return nil, nil, "", err
	}
	s.log.Debug().
		Str("url", url).
		Str("commit", commit).
		Int("files", corpus.Len()).
		Msg("cloned repository")
	return corpus, skipped, commit, nil
}

func walkFS(ctx context.Context, fs billy.Filesystem, limits domain.Limits) (*domain.Corpus, []domain.SkippedEntry, error) {
	b := corpusio.NewBuilder(limits)

	err := util.Walk(fs, "/", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		rel := strings.TrimPrefix(filepath.ToSlash(path), "/")
		if rel == "" {
			return nil
		}
		if info.IsDir() {
			if corpusio.SkipDirs[info.Name()] || b.Excluded(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.Mode().IsRegular() || b.Excluded(rel) {
			return nil
		}
		return b.Add(rel, info.Size(), func() (io.ReadCloser, error) {
			return fs.Open(path)
		})
	})
	if err != nil {
		return nil, nil, err
	}

	corpus, skipped := b.Corpus()
	return corpus, skipped, nil
}
