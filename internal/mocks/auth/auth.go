// Package auth provides in-memory test doubles for the session store and
// lesson cache ports. They are safe for concurrent use and count mutations so
// tests can assert on cache behavior.
package auth

import (
	"context"
	"sync"

	domainauth "github.com/guitarguru/gg-dashboard/internal/domain/auth"
	"github.com/guitarguru/gg-dashboard/internal/domain/model"
	"github.com/guitarguru/gg-dashboard/internal/ports"
)

// MemorySessionStore is an in-memory ports.SessionStore.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]domainauth.Session
}

// NewMemorySessionStore creates an empty in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]domainauth.Session)}
}

// Save stores a session keyed by its ID.
func (s *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return nil
}

// Get returns the session for id, or ports.ErrSessionNotFound.
func (s *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return domainauth.Session{}, ports.ErrSessionNotFound
	}
	return sess, nil
}

// Delete removes the session for id. Deleting a missing session is a no-op.
func (s *MemorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Len reports how many sessions are stored.
func (s *MemorySessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// MemoryLessonCache is an in-memory ports.LessonCache that counts Set and
// Delete calls.
type MemoryLessonCache struct {
	mu      sync.Mutex
	entries map[string][]model.Lesson

	// Sets and Deletes count completed mutations.
	Sets    int
	Deletes int
}

// NewMemoryLessonCache creates an empty in-memory lesson cache.
func NewMemoryLessonCache() *MemoryLessonCache {
	return &MemoryLessonCache{entries: make(map[string][]model.Lesson)}
}

// Get returns the cached list for key; the bool reports a hit.
func (c *MemoryLessonCache) Get(_ context.Context, key string) ([]model.Lesson, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	lessons, ok := c.entries[key]
	return lessons, ok, nil
}

// Set stores a lesson list under key.
func (c *MemoryLessonCache) Set(_ context.Context, key string, lessons []model.Lesson) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = lessons
	c.Sets++
	return nil
}

// Delete drops the cached list for key.
func (c *MemoryLessonCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	c.Deletes++
	return nil
}
