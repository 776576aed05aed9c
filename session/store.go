package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/mdrianislam0or1/admin-dashboard/log"
	"github.com/mdrianislam0or1/admin-dashboard/storage"
)

// nullLiteral is how a broken web client serializes an absent value; stored
// values equal to it are treated as not set.
const nullLiteral = "null"

// Store guards the session state and mirrors credentials to durable storage.
type Store struct {
	mu      sync.RWMutex
	state   State
	storage storage.Storage
	logger  *log.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for persistence failures.
func WithLogger(logger *log.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates a session store over the given storage backend. The
// state starts logged out; call LoadInitial to rehydrate.
func NewStore(st storage.Storage, opts ...StoreOption) *Store {
	s := &Store{
		state:   LoggedOut(),
		storage: st,
		logger:  log.G,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// LoadInitial rehydrates the session from durable storage. Any missing,
// unreadable or "null" value yields the logged-out default for that field;
// this never fails.
func (s *Store) LoadInitial(ctx context.Context) {
	state := LoggedOut()

	if raw, ok := s.readValue(ctx, storage.KeyUser); ok {
		var user User
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			s.logger.Warn().Err(err).Msg("discarding malformed persisted user")
		} else {
			state.User = &user
		}
	}

	if raw, ok := s.readValue(ctx, storage.KeyToken); ok {
		state.Token = raw
	}

	if raw, ok := s.readValue(ctx, storage.KeyRefreshToken); ok {
		state.RefreshToken = raw
	}

	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// SetCredentials records a successful login and persists the three
// credential values.
func (s *Store) SetCredentials(ctx context.Context, user *User, accessToken, refreshToken string) {
	s.mu.Lock()
	s.state = s.state.WithCredentials(user, accessToken, refreshToken)
	s.mu.Unlock()

	if data, err := json.Marshal(user); err != nil {
		s.logger.Error().Err(err).Msg("failed to serialize user for persistence")
	} else {
		s.persistSet(ctx, storage.KeyUser, string(data))
	}
	s.persistSet(ctx, storage.KeyToken, accessToken)
	s.persistSet(ctx, storage.KeyRefreshToken, refreshToken)
}

// SetLoading toggles the transient loading flag. Not persisted.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	s.state = s.state.WithLoading(loading)
	s.mu.Unlock()
}

// SetVerificationPending marks a registration as awaiting verification.
// Session-only: a restart during the verification window forgets it.
func (s *Store) SetVerificationPending(userID string) {
	s.mu.Lock()
	s.state = s.state.WithVerificationPending(userID)
	s.mu.Unlock()
}

// VerificationComplete clears a pending verification.
func (s *Store) VerificationComplete() {
	s.mu.Lock()
	s.state = s.state.WithVerificationComplete()
	s.mu.Unlock()
}

// Logout resets the session and removes the persisted credentials.
// Idempotent: logging out twice leaves the same observable state.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.state = LoggedOut()
	s.mu.Unlock()

	s.persistDelete(ctx, storage.KeyUser)
	s.persistDelete(ctx, storage.KeyToken)
	s.persistDelete(ctx, storage.KeyRefreshToken)
}

// UpdateUser replaces the identity in place, e.g. after a profile update,
// and persists it.
func (s *Store) UpdateUser(ctx context.Context, user *User) {
	s.mu.Lock()
	s.state = s.state.WithUser(user)
	s.mu.Unlock()

	if data, err := json.Marshal(user); err != nil {
		s.logger.Error().Err(err).Msg("failed to serialize user for persistence")
	} else {
		s.persistSet(ctx, storage.KeyUser, string(data))
	}
}

// UpdateToken replaces the access token in place and persists it.
func (s *Store) UpdateToken(ctx context.Context, token string) {
	s.mu.Lock()
	s.state = s.state.WithToken(token)
	s.mu.Unlock()

	s.persistSet(ctx, storage.KeyToken, token)
}

// Current returns a snapshot of the session state.
func (s *Store) Current() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Token returns the current access token, empty when logged out. Satisfies
// the HTTP adapter's token provider.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

// IsAuthenticated reports whether the session holds an access token.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Authenticated()
}

// readValue fetches a persisted value, mapping absence, read errors and the
// "null" literal to not-set.
func (s *Store) readValue(ctx context.Context, key string) (string, bool) {
	value, err := s.storage.Get(ctx, key)
	if err != nil {
		if err != storage.ErrNotFound {
			s.logger.Warn().Err(err).Str("key", key).Msg("failed to read persisted session value")
		}
		return "", false
	}
	if value == "" || value == nullLiteral {
		return "", false
	}
	return value, true
}

func (s *Store) persistSet(ctx context.Context, key, value string) {
	if err := s.storage.Set(ctx, key, value); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to persist session value")
	}
}

func (s *Store) persistDelete(ctx context.Context, key string) {
	if err := s.storage.Delete(ctx, key); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to remove persisted session value")
	}
}
