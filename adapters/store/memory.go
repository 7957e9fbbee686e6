package store

import (
	"context"
	"sync"

	"pbihub/domain/session"
	"pbihub/internal/errors"

	"github.com/google/uuid"
)

// MemorySessionStore keeps sessions in process. It backs the hub when no
// record store is configured and in tests.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]session.Session
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: map[uuid.UUID]session.Session{}}
}

func (m *MemorySessionStore) Save(_ context.Context, s session.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id uuid.UUID) (session.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return session.Session{}, errors.NotFound("session " + id.String())
	}
	return s, nil
}
