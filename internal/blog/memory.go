package blog

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
	byID map[string]*Post
	seq  int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: map[string]*Post{}}
}

func (m *MemoryRepository) Create(ctx context.Context, p *Post) (*Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	now := time.Now().UTC()
	cp := *p
	cp.ID = fmt.Sprintf("post-%d", m.seq)
	cp.CreatedAt = now
	cp.UpdatedAt = now
	m.byID[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *MemoryRepository) GetByID(ctx context.Context, id string) (*Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *MemoryRepository) GetBySlug(ctx context.Context, slug string) (*Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.byID {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryRepository) ListPublished(ctx context.Context) ([]*Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := []*Post{}
	for _, p := range m.byID {
		if !p.Published {
			continue
		}
		cp := *p
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool {
		var ti, tj time.Time
		if list[i].PublishedAt != nil {
			ti = *list[i].PublishedAt
		}
		if list[j].PublishedAt != nil {
			tj = *list[j].PublishedAt
		}
		return ti.After(tj)
	})
	return list, nil
}

func (m *MemoryRepository) ListAll(ctx context.Context) ([]*Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := []*Post{}
	for _, p := range m.byID {
		cp := *p
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
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
		case "title":
			p.Title = v.(string)
		case "slug":
			p.Slug = v.(string)
		case "excerpt":
			p.Excerpt = v.(string)
		case "content":
			p.Content = v.(string)
		case "coverUrl":
			p.CoverURL = v.(string)
		case "coverKey":
			p.CoverKey = v.(string)
		case "category":
			p.Category = v.(string)
		case "tags":
			p.Tags = v.([]string)
		case "published":
			p.Published = v.(bool)
		case "publishedAt":
			if v == nil {
				p.PublishedAt = nil
			} else {
				t := v.(time.Time)
				p.PublishedAt = &t
			}
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

func (m *MemoryRepository) SlugInUse(ctx context.Context, slug, excludeID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, p := range m.byID {
		if p.Slug == slug && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryRepository) CountPublished(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, p := range m.byID {
		if p.Published {
			n++
		}
	}
	return n, nil
}
