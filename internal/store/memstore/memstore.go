package memstore

import (
	"context"
	"sync"

	"github.com/idilsaglam/shoplist/internal/store"
)

// Store is an in-memory Storage. Used by tests and the "memory" backend.
type Store struct {
	m    map[string]string
	mu   sync.RWMutex
	sets int
}

func New() *Store {
	return &Store{m: make(map[string]string)}
}

func (s *Store) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	val, exists := s.m[key]
	if !exists {
		return "", store.ErrNotFound
	}
	return val, nil
}

func (s *Store) Set(_ context.Context, key, blob string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.m[key] = blob
	s.sets++
	return nil
}

// Writes reports how many times Set has been called.
func (s *Store) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sets
}
