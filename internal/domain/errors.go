package domain

import "fmt"

// CorpusTooLargeError reports a corpus that exceeds the configured file or byte caps.
// The engine only returns it in strict mode; otherwise excess entries are skipped.
type CorpusTooLargeError struct {
	Files    int
	MaxFiles int
	Path     string
	Size     int64
	MaxSize  int64
}

func (e *CorpusTooLargeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("corpus too large: %s is %d bytes (max %d)", e.Path, e.Size, e.MaxSize)
	}
	return fmt.Sprintf("corpus too large: %d files (max %d)", e.Files, e.MaxFiles)
}

// UnreadableEntryError reports a file claimed as text that could not be decoded.
// It is never fatal.
type UnreadableEntryError struct {
	Path string
	Err  error
}

func (e *UnreadableEntryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unreadable entry %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("unreadable entry %s", e.Path)
}

func (e *UnreadableEntryError) Unwrap() error { return e.Err }

// RuleTableInconsistencyError is raised when a rule table fails its load-time checks.
type RuleTableInconsistencyError struct {
	Table  string
	RuleID string
	Reason string
}

func (e *RuleTableInconsistencyError) Error() string {
	if e.RuleID == "" {
		return fmt.Sprintf("rule table %s: %s", e.Table, e.Reason)
	}
	return fmt.Sprintf("rule table %s: rule %q: %s", e.Table, e.RuleID, e.Reason)
}
