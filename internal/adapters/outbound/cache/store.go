package cache

import (
	"sync"

	"github.com/golang/groupcache/lru"

	"github.com/blueprintkit/blueprintkit/internal/domain"
)

// DefaultCapacity is the number of results kept when New is given no size.
const DefaultCapacity = 64

// Store is a bounded in-memory implementation of domain.ResultCache. Least
// recently used results are evicted first. Stored results are shared between
// callers and must be treated as read-only.
type Store struct {
	mu  sync.Mutex
	lru *lru.Cache
}

// New creates a cache holding at most capacity results.
func New(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{lru: lru.New(capacity)}
}

// Get returns the cached result for key.
func (s *Store) Get(key string) (*domain.ValidationResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.lru.Get(key)
	if !ok {
		return nil, false
	}
	return v.(*domain.ValidationResult), true
}

// Add stores a result, evicting the oldest entry when full.
func (s *Store) Add(key string, result *domain.ValidationResult) {
	if result == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lru.Add(key, result)
}

// Len returns the number of cached results.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lru.Len()
}

// Clear drops every cached result.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lru.Clear()
}
