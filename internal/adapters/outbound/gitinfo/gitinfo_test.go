package gitinfo_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/blueprintkit/blueprintkit/internal/adapters/outbound/gitinfo"
	"github.com/blueprintkit/blueprintkit/internal/domain"
)

// initRepo creates a repository with one commit holding the given files.
func initRepo(t *testing.T, files map[string]string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	for rel, content := range files {
		full := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}

	wt, err := repo.Worktree()
	require.NoError(t, err)
	require.NoError(t, wt.AddWithOptions(&git.AddOptions{All: true}))
	hash, err := wt.Commit("init", &git.CommitOptions{
		Author: &object.Signature{Name: "Test", Email: "test@test.com", When: time.Unix(1700000000, 0)},
	})
	require.NoError(t, err)
	return dir, hash.String()
}

func TestGitInfo_IsGitRepo_True(t *testing.T) {
	dir, _ := initRepo(t, map[string]string{"README.md": "# x"})
	assert.True(t, gitinfo.New().IsGitRepo(dir))
}

func TestGitInfo_IsGitRepo_False(t *testing.T) {
	assert.False(t, gitinfo.New().IsGitRepo(t.TempDir()))
}

func TestGitInfo_CommitHash_ReturnsHash(t *testing.T) {
	dir, want := initRepo(t, map[string]string{"file.txt": "hello"})

	hash, err := gitinfo.New().CommitHash(dir)
	require.NoError(t, err)
	assert.Len(t, hash, 40, "should be a full SHA-1 hash")
	assert.Equal(t, want, hash)
}

func TestGitInfo_CommitHash_Subdirectory(t *testing.T) {
	dir, want := initRepo(t, map[string]string{"src/app.py": "x = 1"})

	hash, err := gitinfo.New().CommitHash(filepath.Join(dir, "src"))
	require.NoError(t, err)
	assert.Equal(t, want, hash)
}

func TestGitInfo_CommitHash_NotGitRepo(t *testing.T) {
	_, err := gitinfo.New().CommitHash(t.TempDir())
	assert.Error(t, err)
}

func TestCloneSource_LocalRepository(t *testing.T) {
	dir, want := initRepo(t, map[string]string{
		"requirements.txt":          "flask\n",
		"app.py":                    "import jwt\n",
		"node_modules/pkg/index.js": "x",
	})

	corpus, skipped, commit, err := gitinfo.NewCloneSource().LoadWithCommit(context.Background(), dir, domain.Limits{})
	require.NoError(t, err)

	assert.Empty(t, skipped)
	var got []string
	for _, f := range corpus.Files {
		got = append(got, f.Path)
	}
	assert.Equal(t, []string{"app.py", "requirements.txt"}, got)
	assert.Equal(t, "import jwt\n", corpus.Files[0].Content)
	assert.Equal(t, want, commit)
}

func TestCloneSource_ConcurrentLoadsReturnOwnCommit(t *testing.T) {
	dirA, wantA := initRepo(t, map[string]string{"a.py": "a = 1\n"})
	dirB, wantB := initRepo(t, map[string]string{"b.py": "b = 2\n"})
	src := gitinfo.NewCloneSource()

	var g errgroup.Group
	for i := 0; i < 4; i++ {
		for _, tc := range []struct{ dir, want string }{{dirA, wantA}, {dirB, wantB}} {
			g.Go(func() error {
				_, _, commit, err := src.LoadWithCommit(context.Background(), tc.dir, domain.Limits{})
				if err != nil {
					return err
				}
				if commit != tc.want {
					return fmt.Errorf("clone of %s reported %s, want %s", tc.dir, commit, tc.want)
				}
				return nil
			})
		}
	}
	require.NoError(t, g.Wait())
}

func TestCloneSource_BadURL(t *testing.T) {
	_, _, err := gitinfo.NewCloneSource().Load(context.Background(), filepath.Join(t.TempDir(), "nope"), domain.Limits{})
	assert.Error(t, err)
}

func TestIsRemote(t *testing.T) {
	assert.True(t, gitinfo.IsRemote("https://github.com/example/shop.git"))
	assert.True(t, gitinfo.IsRemote("git@github.com:example/shop.git"))
	assert.False(t, gitinfo.IsRemote("/tmp/shop"))
}
