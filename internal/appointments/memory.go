package appointments

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryRepository is an in-memory Repository used by unit tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	seq   int
	store map[string]*Appointment
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{store: map[string]*Appointment{}}
}

func (m *MemoryRepository) Create(ctx context.Context, a *Appointment) (*Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.ID == "" {
		m.seq++
		a.ID = fmt.Sprintf("apt-%d", m.seq)
	}
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	cp := *a
	m.store[a.ID] = &cp
	return a, nil
}

func (m *MemoryRepository) GetByID(ctx context.Context, id string) (*Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *MemoryRepository) ListByUser(ctx context.Context, userID string) ([]*Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*Appointment{}
	for _, a := range m.store {
		if a.UserID == userID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MemoryRepository) ListAll(ctx context.Context) ([]*Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Appointment, 0, len(m.store))
	for _, a := range m.store {
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MemoryRepository) UpdateStatus(ctx context.Context, id, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.store[id]
	if !ok {
		return ErrNotFound
	}
	a.Status = status
	a.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *MemoryRepository) UpdateAssignment(ctx context.Context, id, assignedMember, notes string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.store[id]
	if !ok {
		return ErrNotFound
	}
	a.AssignedMember = assignedMember
	a.Notes = notes
	a.UpdatedAt = time.Now().UTC()
	return nil
}
