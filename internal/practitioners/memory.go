package practitioners

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// MemoryRepository is an in-memory Repository used by tests.
type MemoryRepository struct {
	mu   sync.Mutex
	byID map[string]*Practitioner
	seq  int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: map[string]*Practitioner{}}
}

func (m *MemoryRepository) Create(ctx context.Context, p *Practitioner) (*Practitioner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	now := time.Now().UTC()
	cp := *p
	cp.ID = fmt.Sprintf("pr-%d", m.seq)
	cp.CreatedAt = now
	cp.UpdatedAt = now
	m.byID[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *MemoryRepository) GetByID(ctx context.Context, id string) (*Practitioner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *MemoryRepository) List(ctx context.Context) ([]*Practitioner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := []*Practitioner{}
	for _, p := range m.byID {
		cp := *p
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (m *MemoryRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "name":
			p.Name = v.(string)
		case "title":
			p.Title = v.(string)
		case "bio":
			p.Bio = v.(string)
		case "summary":
			p.Summary = v.(string)
		case "credentials":
			p.Credentials = v.(string)
		case "status":
			p.Status = v.(string)
		case "photoUrl":
			p.PhotoURL = v.(string)
		case "photoKey":
			p.PhotoKey = v.(string)
		case "specialties":
			p.Specialties = v.([]string)
		case "availability":
			p.Availability = v.([]AvailabilitySlot)
		}
	}
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *MemoryRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *MemoryRepository) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.byID)), nil
}
