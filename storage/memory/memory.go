// Package memory provides an in-memory Storage backend for tests and
// embedding scenarios where persistence across restarts is not needed.
package memory

import (
	"context"
	"sync"

	"github.com/mdrianislam0or1/admin-dashboard/storage"
)

// Store is a map-backed storage.Storage.
type Store struct {
	mu     sync.RWMutex
	values map[string]string
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		values: make(map[string]string),
	}
}

// Get implements storage.Storage.
func (s *Store) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return "", storage.ErrNotFound
	}
	return value, nil
}

// Set implements storage.Storage.
func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}

// Delete implements storage.Storage.
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}

// Close implements storage.Storage.
func (s *Store) Close() error {
	return nil
}

// Len returns the number of stored keys.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}
