package storage

import (
	"sync"
	"time"
)

type sessionEntry[T any] struct {
	value    T
	lastSeen time.Time
}

// SessionStorage provides in-memory storage for per-user session objects.
type SessionStorage[T any] struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry[T]
	clock    func() time.Time
}

// NewSessionStorage creates a new SessionStorage.
func NewSessionStorage[T any]() *SessionStorage[T] {
	return &SessionStorage[T]{
		sessions: make(map[string]*sessionEntry[T]),
		clock:    time.Now,
	}
}

// GetOrCreate returns the session of a user, creating it with create on first use.
// created is true when the session was just built.
func (s *SessionStorage[T]) GetOrCreate(userID string, create func() T) (value T, created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	if e, ok := s.sessions[userID]; ok {
		e.lastSeen = now
		return e.value, false
	}

	e := &sessionEntry[T]{value: create(), lastSeen: now}
	s.sessions[userID] = e
	return e.value, true
}

// Get retrieves the session of a user and marks it as used.
func (s *SessionStorage[T]) Get(userID string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[userID]
	if !ok {
		var zero T
		return zero, false
	}

	e.lastSeen = s.clock()
	return e.value, true
}

// Store saves or replaces the session of a user.
func (s *SessionStorage[T]) Store(userID string, value T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = &sessionEntry[T]{value: value, lastSeen: s.clock()}
}

// Delete removes the session of a user and returns it.
func (s *SessionStorage[T]) Delete(userID string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[userID]
	if !ok {
		var zero T
		return zero, false
	}

	delete(s.sessions, userID)
	return e.value, true
}

// Sweep removes sessions idle for longer than ttl and returns them,
// so the caller can release their resources outside the lock.
func (s *SessionStorage[T]) Sweep(ttl time.Duration) []T {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.clock().Add(-ttl)

	var evicted []T
	for userID, e := range s.sessions {
		if e.lastSeen.Before(cutoff) {
			evicted = append(evicted, e.value)
			delete(s.sessions, userID)
		}
	}

	return evicted
}

// Drain removes and returns every session.
func (s *SessionStorage[T]) Drain() []T {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]T, 0, len(s.sessions))
	for _, e := range s.sessions {
		out = append(out, e.value)
	}
	s.sessions = make(map[string]*sessionEntry[T])

	return out
}

// Len returns the number of stored sessions.
func (s *SessionStorage[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
