// Package storage defines the durable key-value store backing the session
// layer. Implementations persist the three session keys (user, token,
// refreshToken) across restarts; which backend is used depends on the
// deployment (file for desktop/CLI use, redis for shared service use,
// memory for tests).
package storage

import (
	"context"
	"errors"
)

// Persisted session keys.
const (
	KeyUser         = "user"
	KeyToken        = "token"
	KeyRefreshToken = "refreshToken"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("storage: key not found")

// Storage is a durable string key-value store. All operations are expected
// to be safe for concurrent use.
type Storage interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}
