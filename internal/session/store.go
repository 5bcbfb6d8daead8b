// Package session holds the per-analysis-session result state bridging
// orchestration and presentation. Entries live for one run and are
// discarded wholesale on the next.
package session

import (
	"sync"

	"randeval/domain/battery"
	"randeval/ports"
)

// Entry is the stored outcome for one selected test identifier: a
// successful result, a fallback result, or an explicit failure marker.
// Result is nil exactly when Status is StatusFailed; Test is nil
// whenever no live instance exists (fallback and failure).
type Entry struct {
	ID     battery.TestID
	Status ports.RunStatus
	Result *battery.Normalized
	Test   ports.HypothesisTest
	Err    string
}

// Store is the session-scoped key-value state. It is written only by
// the orchestrator (single-writer rule); the lock exists for readers
// on the presentation side.
type Store struct {
	mu      sync.RWMutex
	order   []battery.TestID
	entries map[battery.TestID]Entry
}

// NewStore creates an empty result store
func NewStore() *Store {
	return &Store{entries: make(map[battery.TestID]Entry)}
}

// Put records the entry for an identifier, overwriting any prior one.
// A re-run of the same identifier keeps its original position.
func (s *Store) Put(e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entries[e.ID]; !exists {
		s.order = append(s.order, e.ID)
	}
	s.entries[e.ID] = e
}

// Get returns the entry for an identifier, if present
func (s *Store) Get(id battery.TestID) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	return e, ok
}

// Len returns the number of stored entries
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Snapshot returns all entries in insertion (selection) order
func (s *Store) Snapshot() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.entries[id])
	}
	return out
}

// Clear discards all entries. Invoked at the start of every new run so
// stale results from a previous dataset are never displayed alongside
// new ones.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = nil
	s.entries = make(map[battery.TestID]Entry)
}
