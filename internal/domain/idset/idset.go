// Package idset tracks the set of employee IDs present in the loaded roster.
// Candidate submissions are rejected when their ID already belongs to it.
package idset

import (
	"context"
	"sync"
)

// Set answers membership questions about roster IDs. Matching is exact and
// case-sensitive: "007" and "7" are different IDs.
type Set interface {
	// Contains reports whether id belongs to the roster.
	Contains(ctx context.Context, id string) bool

	// Record adds id to the set. The dataset load uses this to seed the
	// roster; candidates are never recorded.
	Record(ctx context.Context, id string)

	Size() int64
}

// inMemorySet implements Set with a plain map. The roster is bounded by the
// loaded dataset and never evicts.
type inMemorySet struct {
	mu   sync.RWMutex
	seen map[string]struct{}
}

// New creates an empty in-memory set.
func New() Set {
	return &inMemorySet{
		seen: make(map[string]struct{}),
	}
}

// FromIDs creates a set pre-seeded with ids.
func FromIDs(ids []string) Set {
	s := &inMemorySet{
		seen: make(map[string]struct{}, len(ids)),
	}
	for _, id := range ids {
		s.seen[id] = struct{}{}
	}
	return s
}

func (s *inMemorySet) Contains(_ context.Context, id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.seen[id]
	return ok
}

func (s *inMemorySet) Record(_ context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen[id] = struct{}{}
}

func (s *inMemorySet) Size() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.seen))
}
