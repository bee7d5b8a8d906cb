package intake

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// MemoryRepository is an in-memory Repository used by tests.
type MemoryRepository struct {
	mu          sync.Mutex
	Inquiries   []*Inquiry
	Forms       []*PatientForm
	Subscribers map[string]*NewsletterSubscriber
	seq         int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{Subscribers: map[string]*NewsletterSubscriber{}}
}

func (m *MemoryRepository) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

func (m *MemoryRepository) CreateInquiry(ctx context.Context, inq *Inquiry) (*Inquiry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *inq
	cp.ID = m.nextID("inq")
	cp.CreatedAt = time.Now().UTC()
	m.Inquiries = append(m.Inquiries, &cp)
	out := cp
	return &out, nil
}

func (m *MemoryRepository) CreatePatientForm(ctx context.Context, pf *PatientForm) (*PatientForm, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *pf
	cp.ID = m.nextID("pf")
	cp.CreatedAt = time.Now().UTC()
	m.Forms = append(m.Forms, &cp)
	out := cp
	return &out, nil
}

func (m *MemoryRepository) Subscribe(ctx context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := strings.ToLower(strings.TrimSpace(email))
	if _, ok := m.Subscribers[key]; ok {
		return false, nil
	}
	m.Subscribers[key] = &NewsletterSubscriber{
		ID:           m.nextID("sub"),
		Email:        key,
		SubscribedAt: time.Now().UTC(),
	}
	return true, nil
}
