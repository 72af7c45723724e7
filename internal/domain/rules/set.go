package rules

import (
	"sync"

	"github.com/blueprintkit/blueprintkit/internal/domain"
)

// Set bundles the compiled category tables and technology signals of one rules version.
type Set struct {
	Version      string
	Security     *CompiledTable
	Quality      *CompiledTable
	Architecture *CompiledTable
	Technologies []CompiledSignal
}

// Tables returns the category tables in priority order.
func (s *Set) Tables() []*CompiledTable {
	return []*CompiledTable{s.Security, s.Quality, s.Architecture}
}

// Table returns the table for the named category, or nil.
func (s *Set) Table(category string) *CompiledTable {
	for _, t := range s.Tables() {
		if t != nil && t.Category == category {
			return t
		}
	}
	return nil
}

// NewSet compiles one table per category plus the technology signals.
func NewSet(version string, tables []Table, signals []TechSignal) (*Set, error) {
	s := &Set{Version: version}
	for _, t := range tables {
		ct, err := Compile(t)
		if err != nil {
			return nil, err
		}
		var slot **CompiledTable
		switch t.Category {
		case domain.CategorySecurity:
			slot = &s.Security
		case domain.CategoryQuality:
			slot = &s.Quality
		case domain.CategoryArchitecture:
			slot = &s.Architecture
		default:
			return nil, &domain.RuleTableInconsistencyError{Table: t.Category, Reason: "unknown category"}
		}
		if *slot != nil {
			return nil, &domain.RuleTableInconsistencyError{Table: t.Category, Reason: "table defined twice"}
		}
		*slot = ct
	}
	for _, cat := range domain.CategoryOrder {
		if s.Table(cat) == nil {
			return nil, &domain.RuleTableInconsistencyError{Table: cat, Reason: "table missing"}
		}
	}

	sigs, err := CompileTechnologies(signals)
	if err != nil {
		return nil, err
	}
	s.Technologies = sigs
	return s, nil
}

// Load compiles the built-in tables.
func Load() (*Set, error) {
	return NewSet(Version, Tables(), Technologies())
}

// Default returns the built-in set, compiled once per process.
var Default = sync.OnceValues(Load)
