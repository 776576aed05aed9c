// Package file provides a single-file JSON Storage backend. The whole key
// set is kept in one document and rewritten atomically on every change,
// which is plenty for the handful of session keys this store carries.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mdrianislam0or1/admin-dashboard/storage"
)

// Store is a file-backed storage.Storage.
type Store struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// New creates a file store at path, loading any existing content. A missing
// or unreadable file starts the store empty rather than failing: the session
// layer treats that as a logged-out state.
func New(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("file storage: path is empty")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("file storage: create dir: %w", err)
	}

	s := &Store{
		path:   path,
		values: make(map[string]string),
	}
	s.load()

	return s, nil
}

// load reads the backing file. Corrupt or missing content yields an empty
// store; the previous file is overwritten on the next Set.
func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}

	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil || values == nil {
		return
	}

	s.values = values
}

// Get implements storage.Storage.
func (s *Store) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

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
	return s.flush()
}

// Delete implements storage.Storage.
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.values[key]; !ok {
		return nil
	}
	delete(s.values, key)
	return s.flush()
}

// Close implements storage.Storage.
func (s *Store) Close() error {
	return nil
}

// flush writes the full key set atomically: write to a temp file in the same
// directory, then rename over the target. Mode 0600, the file holds tokens.
func (s *Store) flush() error {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("file storage: marshal: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".session-*")
	if err != nil {
		return fmt.Errorf("file storage: create temp: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("file storage: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("file storage: close temp: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("file storage: chmod: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("file storage: rename: %w", err)
	}

	return nil
}
