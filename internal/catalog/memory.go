package catalog

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
	byID map[string]*Service
	seq  int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: map[string]*Service{}}
}

func (m *MemoryRepository) Create(ctx context.Context, s *Service) (*Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	now := time.Now().UTC()
	cp := *s
	cp.ID = fmt.Sprintf("svc-%d", m.seq)
	cp.CreatedAt = now
	cp.UpdatedAt = now
	m.byID[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *MemoryRepository) GetByID(ctx context.Context, id string) (*Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *MemoryRepository) List(ctx context.Context) ([]*Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := []*Service{}
	for _, s := range m.byID {
		cp := *s
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Title < list[j].Title })
	return list, nil
}

func (m *MemoryRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "title":
			s.Title = v.(string)
		case "description":
			s.Description = v.(string)
		case "duration":
			s.Duration = v.(string)
		case "price":
			s.Price = v.(string)
		case "category":
			s.Category = v.(string)
		case "features":
			s.Features = v.([]string)
		}
	}
	s.UpdatedAt = time.Now().UTC()
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
