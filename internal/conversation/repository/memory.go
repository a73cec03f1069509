// Package repository provides the session store implementations: an
// in-memory map for development and tests, and Redis for production.
package repository

import (
	"context"
	"sync"
	"time"

	"legal_intake_backend/internal/conversation/domain"
	"legal_intake_backend/platform/apperr"
)

// MemorySessionStore keeps sessions in a process-local map. Entries expire
// lazily on read once their TTL has passed.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	ttl      time.Duration
	now      func() time.Time
}

type memoryEntry struct {
	session   domain.Session
	expiresAt time.Time
}

// NewMemorySessionStore returns an empty store. A zero ttl disables expiry.
func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]memoryEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (m *MemorySessionStore) Get(_ context.Context, sessionID string) (*domain.Session, error) {
	m.mu.RLock()
	entry, ok := m.sessions[sessionID]
	m.mu.RUnlock()

	if !ok {
		return nil, apperr.NotFound("session not found")
	}
	if m.ttl > 0 && m.now().After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.sessions, sessionID)
		m.mu.Unlock()
		return nil, apperr.NotFound("session expired")
	}

	clone := entry.session
	return &clone, nil
}

func (m *MemorySessionStore) Save(_ context.Context, session *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[session.ID] = memoryEntry{
		session:   *session,
		expiresAt: m.now().Add(m.ttl),
	}
	return nil
}

func (m *MemorySessionStore) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, sessionID)
	return nil
}

func (m *MemorySessionStore) Ping(context.Context) error { return nil }

// Len reports the number of stored sessions, expired entries included.
func (m *MemorySessionStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
