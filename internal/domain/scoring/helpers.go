package scoring

import (
	"path/filepath"
	"strings"
)

// normalizePath returns the lowercased slash form of a corpus path, the form
// every path predicate is evaluated against.
func normalizePath(p string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.ToSlash(p), "./"))
}
