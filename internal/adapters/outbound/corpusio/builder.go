// Package corpusio holds the corpus construction rules shared by every corpus
// source: which files are read as text, how caps apply and which paths are skipped.
package corpusio

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/blueprintkit/blueprintkit/internal/domain"
	"github.com/blueprintkit/blueprintkit/internal/domain/scoring"
)

// SkipDirs are directory names never descended into.
var SkipDirs = map[string]bool{
	".git":          true,
	"node_modules":  true,
	"__pycache__":   true,
	".venv":         true,
	"venv":          true,
	".blueprintkit": true,
}

var textExtensions = map[string]bool{
	".py": true, ".js": true, ".jsx": true, ".ts": true, ".tsx": true, ".java": true,
	".cs": true, ".php": true, ".rb": true, ".go": true, ".rs": true, ".html": true,
	".css": true, ".scss": true, ".sass": true, ".less": true, ".vue": true, ".svelte": true,
	".json": true, ".xml": true, ".yaml": true, ".yml": true, ".toml": true, ".ini": true,
	".cfg": true, ".conf": true, ".md": true, ".txt": true, ".rst": true, ".sql": true,
	".sh": true, ".bat": true, ".ps1": true, ".dockerfile": true, ".gitignore": true,
	".gitattributes": true, ".editorconfig": true, ".mod": true, ".lock": true,
}

// IsTextFile reports whether a file is read for its content. Other files enter the
// corpus as path-only binary entries.
func IsTextFile(name string) bool {
	base := strings.ToLower(path.Base(name))
	if strings.Contains(base, "makefile") || strings.Contains(base, "dockerfile") {
		return true
	}
	return textExtensions[path.Ext(base)]
}

// Builder accumulates corpus entries under a set of limits.
type Builder struct {
	limits  domain.Limits
	files   []domain.CorpusFile
	skipped []domain.SkippedEntry
}

// NewBuilder returns a builder enforcing the given limits.
func NewBuilder(limits domain.Limits) *Builder {
	return &Builder{limits: limits}
}

// Excluded reports whether a slash path matches one of the configured exclude
// patterns. A pattern without glob syntax excludes a directory of that name or
// a path prefix.
func (b *Builder) Excluded(rel string) bool {
	return Excluded(rel, b.limits.ExcludePaths)
}

// Excluded is the package-level form of Builder.Excluded.
func Excluded(rel string, patterns []string) bool {
	rel = strings.TrimPrefix(rel, "./")
	for _, p := range patterns {
		p = strings.TrimSuffix(strings.TrimPrefix(p, "./"), "/")
		if p == "" {
			continue
		}
		if rel == p || strings.HasPrefix(rel, p+"/") {
			return true
		}
		for _, seg := range strings.Split(rel, "/") {
			if seg == p {
				return true
			}
		}
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

// Full reports whether the file cap has been reached.
func (b *Builder) Full() bool {
	return b.limits.MaxFiles > 0 && len(b.files) >= b.limits.MaxFiles
}

// Add records one file. The content is read through open only for text files
// within the size cap. Errors from open or reading are recorded as skipped
// entries; only strict-mode cap violations are returned.
func (b *Builder) Add(rel string, size int64, open func() (io.ReadCloser, error)) error {
	rel = strings.TrimPrefix(rel, "./")
	if b.Full() {
		if b.limits.Strict {
			return &domain.CorpusTooLargeError{Files: len(b.files) + 1, MaxFiles: b.limits.MaxFiles}
		}
		b.skipped = append(b.skipped, domain.SkippedEntry{Path: rel, Reason: scoring.ReasonFileLimit})
		return nil
	}

	entry := domain.CorpusFile{Path: rel, Size: size}

	if !IsTextFile(rel) {
		entry.Binary = true
		b.files = append(b.files, entry)
		return nil
	}

	if b.limits.MaxFileSizeBytes > 0 && size > b.limits.MaxFileSizeBytes {
		if b.limits.Strict {
			return &domain.CorpusTooLargeError{Path: rel, Size: size, MaxSize: b.limits.MaxFileSizeBytes}
		}
		entry.Binary = true
		b.files = append(b.files, entry)
		b.skipped = append(b.skipped, domain.SkippedEntry{Path: rel, Reason: scoring.ReasonSizeLimit})
		return nil
	}

	data, err := readAll(open, b.limits.MaxFileSizeBytes)
	if err != nil {
		entry.Binary = true
		b.files = append(b.files, entry)
		unreadable := &domain.UnreadableEntryError{Path: rel, Err: err}
		b.skipped = append(b.skipped, domain.SkippedEntry{Path: rel, Reason: unreadable.Error()})
		return nil
	}

	if bytes.IndexByte(data, 0) >= 0 || !utf8.Valid(data) {
		entry.Binary = true
		b.files = append(b.files, entry)
		return nil
	}

	entry.Content = string(data)
	entry.Size = max(size, int64(len(data)))
	b.files = append(b.files, entry)
	return nil
}

// Skip records an entry that never made it into the corpus.
func (b *Builder) Skip(rel, reason string) {
	b.skipped = append(b.skipped, domain.SkippedEntry{Path: rel, Reason: reason})
}

// Corpus returns the collected corpus, ordered by path, and the skipped entries.
func (b *Builder) Corpus() (*domain.Corpus, []domain.SkippedEntry) {
	files := append([]domain.CorpusFile(nil), b.files...)
	sort.SliceStable(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return &domain.Corpus{Files: files}, b.skipped
}

func readAll(open func() (io.ReadCloser, error), limit int64) ([]byte, error) {
	rc, err := open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var r io.Reader = rc
	if limit > 0 {
		r = io.LimitReader(rc, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, fmt.Errorf("content exceeds %d bytes", limit)
	}
	return data, nil
}
