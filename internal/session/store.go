// Package session keeps each session's most recent dashboard query in
// memory. Nothing is persisted: the store exists so a reloaded dashboard can
// re-serve the last bundle without re-running the engine.
package session

import (
	"sync"
	"time"

	"vcs-dashboard/internal/models"
)

type entry struct {
	spec    models.FilterSpec
	bundle  models.DashboardBundle
	touched time.Time
}

// Store holds the last dashboard query per session id.
type Store struct {
	mu  sync.RWMutex
	ttl time.Duration
	now func() time.Time

	entries map[string]entry
}

// NewStore creates a store whose entries expire ttl after their last write.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

// Put records a session's last query, replacing any previous one.
func (s *Store) Put(sessionID string, spec models.FilterSpec, bundle models.DashboardBundle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[sessionID] = entry{spec: spec, bundle: bundle, touched: s.now()}
}

// Get returns the cached bundle if the session's last query matches spec and
// has not expired. Expired entries are evicted on access.
func (s *Store) Get(sessionID string, spec models.FilterSpec) (models.DashboardBundle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[sessionID]
	if !ok {
		return models.DashboardBundle{}, false
	}
	if s.now().Sub(e.touched) > s.ttl {
		delete(s.entries, sessionID)
		return models.DashboardBundle{}, false
	}
	if e.spec != spec {
		return models.DashboardBundle{}, false
	}
	return e.bundle, true
}

// Len reports the number of live sessions, counting expired ones until they
// are evicted.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
