// Package inmemory keeps consultations in process memory, the fallback when
// no external storage is configured.
package inmemory

import (
	"context"
	"sync"
	"time"

	"github.com/livewell-ai/livewell/session"
)

type entry struct {
	consultation session.Consultation
	expiresAt    time.Time
}

// Store is a TTL-bounded in-process consultation store.
type Store struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry
}

// NewStore creates an in-memory store. A zero ttl keeps entries forever.
func NewStore(ttl time.Duration) *Store {
	return &Store{ttl: ttl, entries: make(map[string]entry)}
}

func (s *Store) Save(ctx context.Context, c session.Consultation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := entry{consultation: c}
	if s.ttl > 0 {
		e.expiresAt = time.Now().Add(s.ttl)
	}
	s.entries[c.ID] = e
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (session.Consultation, error) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return session.Consultation{}, session.ErrNotFound
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.entries, id)
		s.mu.Unlock()
		return session.Consultation{}, session.ErrNotFound
	}
	return e.consultation, nil
}
