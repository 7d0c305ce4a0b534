package repository

import (
	"context"
	"sync"
	"time"
)

// MemorySessionStore is a thread-safe in-memory SessionStore.
// Sessions are lost on server restart.
type MemorySessionStore struct {
	mu          sync.RWMutex
	data        map[string]*memorySession
	idleTimeout time.Duration
	now         func() time.Time
}

type memorySession struct {
	values   map[string]string
	lastSeen time.Time
}

var _ SessionStore = (*MemorySessionStore)(nil)

// NewMemorySessionStore creates an in-memory session store.
// idleTimeout of 0 disables idle timeout checking.
func NewMemorySessionStore(idleTimeout time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		data:        make(map[string]*memorySession),
		idleTimeout: idleTimeout,
		now:         time.Now,
	}
}

func (s *MemorySessionStore) expired(sess *memorySession) bool {
	return s.idleTimeout > 0 && s.now().Sub(sess.lastSeen) > s.idleTimeout
}

func (s *MemorySessionStore) GetString(_ context.Context, sessionID, key string) (string, bool, error) {
	s.mu.RLock()
	sess, ok := s.data[sessionID]
	if !ok {
		s.mu.RUnlock()
		return "", false, nil
	}
	if s.expired(sess) {
		s.mu.RUnlock()
		s.drop(sessionID)
		return "", false, nil
	}
	v, ok := sess.values[key]
	s.mu.RUnlock()
	return v, ok, nil
}

func (s *MemorySessionStore) SetString(_ context.Context, sessionID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.sessionLocked(sessionID)
	sess.values[key] = value
	return nil
}

func (s *MemorySessionStore) Remove(_ context.Context, sessionID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.data[sessionID]; ok {
		delete(sess.values, key)
	}
	return nil
}

func (s *MemorySessionStore) Touch(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessionLocked(sessionID)
	return nil
}

func (s *MemorySessionStore) Sweep(_ context.Context, idleBefore time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, sess := range s.data {
		if sess.lastSeen.Before(idleBefore) {
			delete(s.data, id)
			removed++
		}
	}
	return removed, nil
}

// Len reports the number of live sessions.
func (s *MemorySessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// sessionLocked returns the session, creating or resetting it, and marks it
// as seen. Callers hold mu for writing.
func (s *MemorySessionStore) sessionLocked(sessionID string) *memorySession {
	sess, ok := s.data[sessionID]
	if !ok || s.expired(sess) {
		sess = &memorySession{values: make(map[string]string)}
		s.data[sessionID] = sess
	}
	sess.lastSeen = s.now()
	return sess
}

func (s *MemorySessionStore) drop(sessionID string) {
	s.mu.Lock()
	delete(s.data, sessionID)
	s.mu.Unlock()
}
