// Package redis provides a redis-backed Storage for deployments where the
// dashboard client runs as a shared service and the session must survive
// individual process restarts.
package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/mdrianislam0or1/admin-dashboard/storage"
)

// Store is a redis-backed storage.Storage.
type Store struct {
	client *goredis.Client
	prefix string
}

// New creates a redis store and verifies connectivity with a ping.
func New(ctx context.Context, cfg *Config) (*Store, error) {
	if err := cfg.ApplyDefaults(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:         cfg.Addr,
		Username:     cfg.Username,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  time.Duration(cfg.DialTimeout) * time.Millisecond,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Millisecond,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Millisecond,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return &Store{
		client: client,
		prefix: cfg.Prefix,
	}, nil
}

// Get implements storage.Storage.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Result()
	if err == goredis.Nil {
		return "", storage.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// Set implements storage.Storage. Session values have no expiry: they live
// until logout removes them.
func (s *Store) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, s.prefix+key, value, 0).Err()
}

// Delete implements storage.Storage.
func (s *Store) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}

// Close implements storage.Storage.
func (s *Store) Close() error {
	return s.client.Close()
}
