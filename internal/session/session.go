// Package session holds the signed-in admin's session: the bearer token issued by
// the admin API plus the identity decoded from it. Sessions are passed explicitly
// through the request context; nothing here is process-global.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"
)

// CookieName is the name of the session cookie sent to the browser
const CookieName = "ma_session"

// ErrNotFound is returned by stores when a session does not exist or has expired
var ErrNotFound = errors.New("session not found")

// Session is one signed-in admin
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	AdminID   string    `json:"admin_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at now
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// HasAnyRole reports whether the session carries at least one of roles.
// Role names compare case-insensitively.
func (s *Session) HasAnyRole(roles ...string) bool {
	for _, want := range roles {
		for _, have := range s.Roles {
			if strings.EqualFold(want, have) {
				return true
			}
		}
	}
	return false
}

// Store persists sessions by ID
type Store interface {
	Save(ctx context.Context, s *Session) error
	// Get returns ErrNotFound for unknown or expired sessions.
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

type contextKey string

const sessionKey contextKey = "session"

// WithSession returns a copy of ctx carrying s
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// FromContext returns the session stored in ctx, if any
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey).(*Session)
	return s, ok && s != nil
}

// TokenFromContext yields the bearer token of the session in ctx.
// It has the shape of adminapi.TokenSource.
func TokenFromContext(ctx context.Context) (string, bool) {
	s, ok := FromContext(ctx)
	if !ok || s.Token == "" {
		return "", false
	}
	return s.Token, true
}

// newID creates a random 256-bit session identifier
func newID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
