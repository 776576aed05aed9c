package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// The API issues JWT access tokens but the client never verifies them (it
// has no key material); it only inspects the exp claim so callers can act
// before the server starts answering 401. There is no refresh flow: an
// expired token means re-login.

// TokenExpiresAt returns the expiry of the current access token. The second
// return is false when there is no token, the token is not a JWT, or it
// carries no exp claim.
func (s *Store) TokenExpiresAt() (time.Time, bool) {
	token := s.Token()
	if token == "" {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}

	return exp.Time, true
}

// TokenExpired reports whether the current access token has expired. Tokens
// without a readable expiry are never reported expired.
func (s *Store) TokenExpired(now time.Time) bool {
	exp, ok := s.TokenExpiresAt()
	if !ok {
		return false
	}
	return now.After(exp)
}
