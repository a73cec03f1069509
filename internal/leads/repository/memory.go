package repository

import (
	"context"
	"sync"

	"legal_intake_backend/internal/conversation/domain"
)

// Memory is the in-process lead store used when no database is configured.
type Memory struct {
	mu    sync.Mutex
	leads []*domain.Lead
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Save(_ context.Context, lead *domain.Lead) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	clone := *lead
	clone.Answers = append([]domain.LeadAnswer(nil), lead.Answers...)
	m.leads = append(m.leads, &clone)
	return nil
}

// All returns a copy of the stored snapshots.
func (m *Memory) All() []*domain.Lead {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.Lead(nil), m.leads...)
}
