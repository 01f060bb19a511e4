package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a process-local Store used when no Redis address is configured.
// Sessions die with the process.
type MemoryStore struct {
	mu  sync.RWMutex
	m   map[string]Session
	now func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		m:   make(map[string]Session),
		now: time.Now,
	}
}

// Save stores sess and drops every other session that has already expired,
// so abandoned logins do not pile up.
func (s *MemoryStore) Save(_ context.Context, sess Session) error {
	now := s.now()

	s.mu.Lock()
	s.sweep(now)
	s.m[sess.ID] = sess
	s.mu.Unlock()
	return nil
}

// sweep must be called with mu held.
func (s *MemoryStore) sweep(now time.Time) {
	for id, sess := range s.m {
		if sess.Expired(now) {
			delete(s.m, id)
		}
	}
}

func (s *MemoryStore) Get(_ context.Context, id string) (Session, error) {
	now := s.now()

	s.mu.RLock()
	sess, ok := s.m[id]
	s.mu.RUnlock()

	if !ok {
		return Session{}, ErrNotFound
	}

	if sess.Expired(now) {
		s.mu.Lock()
		delete(s.m, id)
		s.mu.Unlock()
		return Session{}, ErrExpired
	}

	return sess, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.m, id)
	s.mu.Unlock()
	return nil
}

// Len reports stored sessions, expired ones included until the next Save or read.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}
