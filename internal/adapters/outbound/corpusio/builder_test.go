package corpusio_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/blueprintkit/blueprintkit/internal/adapters/outbound/corpusio"
	"github.com/blueprintkit/blueprintkit/internal/domain"
	"github.com/blueprintkit/blueprintkit/internal/domain/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func opener(content string) func() (io.ReadCloser, error) {
	return func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(content)), nil
	}
}

func TestIsTextFile(t *testing.T) {
	assert.True(t, corpusio.IsTextFile("main.py"))
	assert.True(t, corpusio.IsTextFile("web/App.TSX"))
	assert.True(t, corpusio.IsTextFile("Dockerfile"))
	assert.True(t, corpusio.IsTextFile("build/Makefile"))
	assert.True(t, corpusio.IsTextFile("go.mod"))
	assert.False(t, corpusio.IsTextFile("logo.png"))
	assert.False(t, corpusio.IsTextFile("bin/server"))
}

func TestBuilder_TextAndBinary(t *testing.T) {
	b := corpusio.NewBuilder(domain.Limits{MaxFiles: 10, MaxFileSizeBytes: 1024})

	require.NoError(t, b.Add("main.py", 12, opener("import jwt\n")))
	require.NoError(t, b.Add("logo.png", 2048, func() (io.ReadCloser, error) {
		t.Fatal("binary files are never opened")
		return nil, nil
	}))

	corpus, skipped := b.Corpus()
	require.Equal(t, 2, corpus.Len())
	assert.Empty(t, skipped)

	assert.Equal(t, "logo.png", corpus.Files[0].Path)
	assert.True(t, corpus.Files[0].Binary)
	assert.Equal(t, "main.py", corpus.Files[1].Path)
	assert.Equal(t, "import jwt\n", corpus.Files[1].Content)
}

func TestBuilder_FileLimit(t *testing.T) {
	b := corpusio.NewBuilder(domain.Limits{MaxFiles: 1})

	require.NoError(t, b.Add("a.py", 1, opener("a")))
	require.NoError(t, b.Add("b.py", 1, opener("b")))

	corpus, skipped := b.Corpus()
	assert.Equal(t, 1, corpus.Len())
	require.Len(t, skipped, 1)
	assert.Equal(t, domain.SkippedEntry{Path: "b.py", Reason: scoring.ReasonFileLimit}, skipped[0])
	assert.True(t, b.Full())
}

func TestBuilder_StrictFileLimit(t *testing.T) {
	b := corpusio.NewBuilder(domain.Limits{MaxFiles: 1, Strict: true})

	require.NoError(t, b.Add("a.py", 1, opener("a")))
	err := b.Add("b.py", 1, opener("b"))

	var tooLarge *domain.CorpusTooLargeError
	require.True(t, errors.As(err, &tooLarge))
	assert.Equal(t, 1, tooLarge.MaxFiles)
}

func TestBuilder_SizeLimitKeepsPath(t *testing.T) {
	b := corpusio.NewBuilder(domain.Limits{MaxFileSizeBytes: 4})

	require.NoError(t, b.Add("Dockerfile", 64, opener(strings.Repeat("x", 64))))

	corpus, skipped := b.Corpus()
	require.Equal(t, 1, corpus.Len())
	assert.True(t, corpus.Files[0].Binary)
	assert.Empty(t, corpus.Files[0].Content)
	require.Len(t, skipped, 1)
	assert.Equal(t, scoring.ReasonSizeLimit, skipped[0].Reason)
}

func TestBuilder_UnderreportedSizeIsCaught(t *testing.T) {
	b := corpusio.NewBuilder(domain.Limits{MaxFileSizeBytes: 4})

	require.NoError(t, b.Add("notes.txt", 0, opener("longer than four bytes")))

	corpus, skipped := b.Corpus()
	assert.True(t, corpus.Files[0].Binary)
	require.Len(t, skipped, 1)
	assert.Contains(t, skipped[0].Reason, "unreadable entry notes.txt")
}

func TestBuilder_OpenError(t *testing.T) {
	b := corpusio.NewBuilder(domain.Limits{})

	require.NoError(t, b.Add("secret.env.txt", 3, func() (io.ReadCloser, error) {
		return nil, errors.New("permission denied")
	}))

	_, skipped := b.Corpus()
	require.Len(t, skipped, 1)
	assert.Equal(t, "unreadable entry secret.env.txt: permission denied", skipped[0].Reason)
}

func TestBuilder_NULBytesMeanBinary(t *testing.T) {
	b := corpusio.NewBuilder(domain.Limits{})

	require.NoError(t, b.Add("data.json", 3, opener("{\x00}")))

	corpus, _ := b.Corpus()
	assert.True(t, corpus.Files[0].Binary)
	assert.Empty(t, corpus.Files[0].Content)
}

func TestExcluded(t *testing.T) {
	patterns := []string{"generated", "docs/legacy/", "**/*.min.js"}

	assert.True(t, corpusio.Excluded("generated/api.py", patterns))
	assert.True(t, corpusio.Excluded("src/generated/api.py", patterns))
	assert.True(t, corpusio.Excluded("docs/legacy/old.md", patterns))
	assert.True(t, corpusio.Excluded("web/vendor.min.js", patterns))
	assert.False(t, corpusio.Excluded("docs/new.md", patterns))
	assert.False(t, corpusio.Excluded("src/app.py", nil))
}
