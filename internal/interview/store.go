package interview

import (
	"context"
	"sync"
)

// SessionRepo persists Session records by ID.
type SessionRepo interface {
	// Save inserts or replaces the session.
	Save(ctx context.Context, s *Session) error

	// Find returns the session, or nil when no session has the ID.
	Find(ctx context.Context, id string) (*Session, error)

	// ListCompleted returns completed sessions, newest completion first.
	ListCompleted(ctx context.Context, limit int) ([]SessionSummary, error)
}

// StateStore holds SessionState entries keyed by session ID.
type StateStore interface {
	// Get returns the state, or nil when none exists.
	Get(ctx context.Context, sessionID string) (*SessionState, error)
	Put(ctx context.Context, st *SessionState) error
	Delete(ctx context.Context, sessionID string) error
}

// MemoryStateStore is a process-local StateStore. Entries are copied on
// the way in and out so callers never share state with the map.
type MemoryStateStore struct {
	mu     sync.RWMutex
	states map[string]SessionState
}

// NewMemoryStateStore creates an empty MemoryStateStore.
func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{states: make(map[string]SessionState)}
}

func (m *MemoryStateStore) Get(_ context.Context, sessionID string) (*SessionState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.states[sessionID]
	if !ok {
		return nil, nil
	}
	return &st, nil
}

func (m *MemoryStateStore) Put(_ context.Context, st *SessionState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[st.SessionID] = *st
	return nil
}

func (m *MemoryStateStore) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, sessionID)
	return nil
}

// Len returns the number of live states.
func (m *MemoryStateStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.states)
}
