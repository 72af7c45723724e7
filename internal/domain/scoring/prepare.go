package scoring

import (
	"errors"
	"unicode/utf8"

	"github.com/blueprintkit/blueprintkit/internal/domain"
)

// Skip reasons recorded in ValidationResult.Skipped.
const (
	ReasonFileLimit = "file limit exceeded"
	ReasonSizeLimit = "content exceeds size limit"
	ReasonEmptyPath = "empty path"
)

// Prepare applies the engine caps to a corpus and returns the corpus the analyzers
// see. The input is never modified. Entries beyond MaxFiles are dropped; oversized
// or undecodable text keeps its path but loses its content. In strict mode cap
// violations return a *domain.CorpusTooLargeError instead.
//
// The file limit keeps the first MaxFiles entries in corpus order, so a file
// added ahead of others can push a later entry past the limit and lower a
// score. Below the limit, adding a file never lowers any category.
func Prepare(corpus *domain.Corpus, cfg domain.EngineConfig) (*domain.Corpus, []domain.SkippedEntry, error) {
	out := &domain.Corpus{}
	if corpus == nil {
		return out, nil, nil
	}

	var skipped []domain.SkippedEntry
	kept := 0
	for _, f := range corpus.Files {
		if f.Path == "" {
			skipped = append(skipped, domain.SkippedEntry{Reason: ReasonEmptyPath})
			continue
		}
		if cfg.MaxFiles > 0 && kept >= cfg.MaxFiles {
			if cfg.Strict {
				return nil, nil, &domain.CorpusTooLargeError{Files: len(corpus.Files), MaxFiles: cfg.MaxFiles}
			}
			skipped = append(skipped, domain.SkippedEntry{Path: f.Path, Reason: ReasonFileLimit})
			continue
		}
		kept++

		size := max(f.Size, int64(len(f.Content)))
		if cfg.MaxFileSizeBytes > 0 && size > cfg.MaxFileSizeBytes && !f.Binary {
			if cfg.Strict {
				return nil, nil, &domain.CorpusTooLargeError{Path: f.Path, Size: size, MaxSize: cfg.MaxFileSizeBytes}
			}
			skipped = append(skipped, domain.SkippedEntry{Path: f.Path, Reason: ReasonSizeLimit})
			out.Files = append(out.Files, domain.CorpusFile{Path: f.Path, Size: size, Binary: true})
			continue
		}

		if !f.Binary && !utf8.ValidString(f.Content) {
			err := &domain.UnreadableEntryError{Path: f.Path, Err: errors.New("invalid UTF-8")}
			skipped = append(skipped, domain.SkippedEntry{Path: f.Path, Reason: err.Error()})
			out.Files = append(out.Files, domain.CorpusFile{Path: f.Path, Size: size, Binary: true})
			continue
		}

		if f.Binary {
			f.Content = ""
		}
		out.Files = append(out.Files, f)
	}
	return out, skipped, nil
}
