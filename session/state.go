// Package session is the single source of truth for "who is logged in".
// State transitions are pure value operations; the Store applies them and
// mirrors the credential fields to durable storage. Persistence failures are
// logged and never surfaced: the in-memory session always moves forward.
package session

import (
	"time"
)

// Role is the dashboard access level of a user.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
)

// User is the authenticated identity returned by the dashboard API.
type User struct {
	ID        string     `json:"_id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      Role       `json:"role"`
	IsActive  bool       `json:"isActive"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// State holds the full session state. Token and User are set together by
// WithCredentials and cleared together by the logged-out state: a non-empty
// Token is what "authenticated" means.
type State struct {
	User                *User
	Token               string
	RefreshToken        string
	Loading             bool
	VerificationPending bool
	UserID              string
}

// LoggedOut returns the default, fully logged-out state.
func LoggedOut() State {
	return State{}
}

// WithCredentials returns the state after a successful login: identity and
// tokens set, loading cleared.
func (s State) WithCredentials(user *User, accessToken, refreshToken string) State {
	s.User = user
	s.Token = accessToken
	s.RefreshToken = refreshToken
	s.Loading = false
	return s
}

// WithLoading returns the state with the transient loading flag toggled.
func (s State) WithLoading(loading bool) State {
	s.Loading = loading
	return s
}

// WithVerificationPending returns the state after a registration that still
// needs a verification step. Registration does not imply login.
func (s State) WithVerificationPending(userID string) State {
	s.VerificationPending = true
	s.UserID = userID
	return s
}

// WithVerificationComplete returns the state with the pending verification
// cleared.
func (s State) WithVerificationComplete() State {
	s.VerificationPending = false
	return s
}

// WithUser returns the state with a refreshed identity, tokens unchanged.
func (s State) WithUser(user *User) State {
	s.User = user
	return s
}

// WithToken returns the state with a refreshed access token.
func (s State) WithToken(token string) State {
	s.Token = token
	return s
}

// Authenticated reports whether the session holds an access token.
func (s State) Authenticated() bool {
	return s.Token != ""
}
