package handlers

import (
	"context"
	"io"
	"sync"
)

// stubStore is an in-memory object store for handler tests.
type stubStore struct {
	mu      sync.Mutex
	objects map[string]bool
}

func newStubStore() *stubStore {
	return &stubStore{objects: map[string]bool{}}
}

func (s *stubStore) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = true
	return "https://files.example.com/" + key, nil
}

func (s *stubStore) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}
