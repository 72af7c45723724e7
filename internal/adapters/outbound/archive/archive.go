// Package archive loads a corpus from a zip or tar(.gz) upload.
package archive

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/blueprintkit/blueprintkit/internal/adapters/outbound/corpusio"
	"github.com/blueprintkit/blueprintkit/internal/domain"
	"github.com/blueprintkit/blueprintkit/internal/logging"
)

// ReasonUnsafePath marks archive entries that would escape the project root.
const ReasonUnsafePath = "unsafe archive path"

// ErrUnsupportedFormat is returned for archives that are neither zip nor tar.
var ErrUnsupportedFormat = errors.New("unsupported archive format (want .zip, .tar, .tar.gz or .tgz)")

type format int

const (
	formatZip format = iota
	formatTar
	formatTarGz
)

// entryFunc visits one archive member. open is valid only during the call.
type entryFunc func(name string, size int64, isDir bool, open func() (io.ReadCloser, error)) error

// Source implements domain.CorpusSource for archive files. A single top-level
// directory shared by every member is stripped only when it wraps the project:
// its name equals the archive stem, or it has the <stem>-<ref> shape of GitHub
// source downloads. Any other shared directory, such as src/, is kept.
type Source struct {
	log zerolog.Logger
}

func New() *Source {
	return &Source{log: logging.GetLogger("archive")}
}

// Supported reports whether the location looks like an archive this source reads.
func Supported(location string) bool {
	_, err := detect(location)
	return err == nil
}

func (s *Source) Load(ctx context.Context, location string, limits domain.Limits) (*domain.Corpus, []domain.SkippedEntry, error) {
	f, err := detect(location)
	if err != nil {
		return nil, nil, err
	}

	var names []string
	err = walk(location, f, func(name string, _ int64, isDir bool, _ func() (io.ReadCloser, error)) error {
		if !isDir {
			names = append(names, filepath.ToSlash(name))
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("reading archive %s: %w", location, err)
	}
	root := wrapperRoot(location, names)

	b := corpusio.NewBuilder(limits)
	err = walk(location, f, func(name string, size int64, isDir bool, open func() (io.ReadCloser, error)) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if isDir {
			return nil
		}
		rel, ok := cleanEntry(name, root)
		if !ok {
			b.Skip(name, ReasonUnsafePath)
			return nil
		}
		if rel == "" || inSkipDir(rel) || b.Excluded(rel) {
			return nil
		}
		return b.Add(rel, size, open)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("reading archive %s: %w", location, err)
	}

	corpus, skipped := b.Corpus()
	s.log.Debug().
		Str("archive", location).
		Str("root", root).
		Int("files", corpus.Len()).
		Int("skipped", len(skipped)).
		Msg("loaded archive")
	return corpus, skipped, nil
}

func detect(location string) (format, error) {
	lower := strings.ToLower(location)
	switch {
	case strings.HasSuffix(lower, ".zip"):
		return formatZip, nil
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return formatTarGz, nil
	case strings.HasSuffix(lower, ".tar"):
		return formatTar, nil
	default:
		return 0, ErrUnsupportedFormat
	}
}

func walk(location string, f format, fn entryFunc) error {
	if f == formatZip {
		return walkZip(location, fn)
	}
	return walkTar(location, f == formatTarGz, fn)
}

func walkZip(location string, fn entryFunc) error {
	zr, err := zip.OpenReader(location)
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return err
	}
	defer zr.Close()

	for _, zf := range zr.File {
		info := zf.FileInfo()
		if !info.IsDir() && !info.Mode().IsRegular() {
			continue
		}
		open := func() (io.ReadCloser, error) { return zf.Open() }
		if err := fn(zf.Name, int64(zf.UncompressedSize64), info.IsDir(), open); err != nil {
			return err
		}
	}
	return nil
}

func walkTar(location string, gzipped bool, fn entryFunc) error {
	file, err := os.Open(location)
	if err != nil {
		return err
	}
	defer file.Close()

	var r io.Reader = file
	if gzipped {
		gz, err := gzip.NewReader(file)
		if err != nil {
			return err
		}
		defer gz.Close()
		r = gz
	}

	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		// Insecure names are still returned; cleanEntry rejects them.
		if err != nil && !errors.Is(err, tar.ErrInsecurePath) {
			return err
		}
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := fn(hdr.Name, 0, true, nil); err != nil {
				return err
			}
		case tar.TypeReg:
			open := func() (io.ReadCloser, error) { return io.NopCloser(tr), nil }
			if err := fn(hdr.Name, hdr.Size, false, open); err != nil {
				return err
			}
		}
	}
}

// commonRoot returns the first path segment when every member lives under it.
func commonRoot(names []string) string {
	var root string
	for _, n := range names {
		n = strings.TrimPrefix(n, "./")
		i := strings.IndexByte(n, '/')
		if i <= 0 {
			return ""
		}
		if root == "" {
			root = n[:i]
		} else if n[:i] != root {
			return ""
		}
	}
	return root
}

// wrapperRoot returns the common root of names when it is a packaging
// wrapper named after the archive, and "" otherwise.
func wrapperRoot(location string, names []string) string {
	root := commonRoot(names)
	if root == "" {
		return ""
	}
	stem := strings.ToLower(archiveStem(location))
	r := strings.ToLower(root)
	if stem == "" {
		return ""
	}
	if r == stem || strings.HasPrefix(r, stem+"-") || strings.HasPrefix(stem, r+"-") {
		return root
	}
	return ""
}

// archiveStem is the archive's base name without its format suffix.
func archiveStem(location string) string {
	base := filepath.Base(location)
	lower := strings.ToLower(base)
	for _, ext := range []string{".tar.gz", ".tgz", ".tar", ".zip"} {
		if strings.HasSuffix(lower, ext) {
			return base[:len(base)-len(ext)]
		}
	}
	return base
}

// cleanEntry converts an archive member name into a corpus path relative to
// root. It reports false for members that would escape the root.
func cleanEntry(name, root string) (string, bool) {
	name = filepath.ToSlash(name)
	if strings.HasPrefix(name, "/") {
		return "", false
	}
	clean := path.Clean(name)
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return "", false
	}
	if root != "" {
		clean = strings.TrimPrefix(strings.TrimPrefix(clean, root), "/")
	}
	if clean == "." {
		return "", true
	}
	return clean, true
}

func inSkipDir(rel string) bool {
	segs := strings.Split(rel, "/")
	for _, seg := range segs[:len(segs)-1] {
		if corpusio.SkipDirs[seg] {
			return true
		}
	}
	return false
}
