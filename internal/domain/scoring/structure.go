package scoring

import (
	"path"
	"sort"
	"strings"

	"github.com/blueprintkit/blueprintkit/internal/domain"
)

// maxFileTypes is how many extensions Summarize reports.
const maxFileTypes = 10

// Summarize counts files, bytes, directories and the most common extensions.
func Summarize(corpus *domain.Corpus) domain.ProjectStructure {
	var s domain.ProjectStructure
	if corpus == nil {
		return s
	}

	dirs := map[string]bool{}
	exts := map[string]int{}
	for _, f := range corpus.Files {
		s.TotalFiles++
		s.TotalBytes += f.Size
		if !f.Binary {
			s.TextFiles++
		}
		p := normalizePath(f.Path)
		for d := path.Dir(p); d != "." && d != "/" && !dirs[d]; d = path.Dir(d) {
			dirs[d] = true
		}
		exts[strings.ToLower(path.Ext(p))]++
	}
	s.Directories = len(dirs)

	for ext, n := range exts {
		s.FileTypes = append(s.FileTypes, domain.FileTypeCount{Extension: ext, Count: n})
	}
	sort.Slice(s.FileTypes, func(i, j int) bool {
		a, b := s.FileTypes[i], s.FileTypes[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Extension < b.Extension
	})
	if len(s.FileTypes) > maxFileTypes {
		s.FileTypes = s.FileTypes[:maxFileTypes]
	}
	return s
}
