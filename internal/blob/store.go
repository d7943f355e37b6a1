// Package blob provides an in-memory store for attachment bytes, addressed
// by opaque locator handles. Locators are process-local: they are never
// serialized, and a restored backup carries only dead (zero) locators until
// a relink re-populates them.
package blob

import "sync"

// Locator is an opaque handle to bytes held by a Store.
// The zero Locator is dead and resolves to nothing.
type Locator uint64

// IsZero reports whether the locator is the dead zero handle.
func (l Locator) IsZero() bool { return l == 0 }

// Store holds attachment bytes for the lifetime of a session.
// All methods are safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	next Locator
	data map[Locator][]byte
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		next: 1,
		data: make(map[Locator][]byte),
	}
}

// Put stores content and returns a live locator for it.
func (s *Store) Put(content []byte) Locator {
	s.mu.Lock()
	defer s.mu.Unlock()

	loc := s.next
	s.next++
	s.data[loc] = content
	return loc
}

// Get resolves a locator to its content. Returns false for dead or
// released locators.
func (s *Store) Get(loc Locator) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	content, ok := s.data[loc]
	return content, ok
}

// Alive reports whether the locator currently resolves to content.
func (s *Store) Alive(loc Locator) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.data[loc]
	return ok
}

// Release frees the content behind a locator. Releasing a dead or
// already-released locator is a no-op.
func (s *Store) Release(loc Locator) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, loc)
}

// Len returns the number of live entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.data)
}
