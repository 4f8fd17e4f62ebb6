package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"marketadmin/internal/models"
)

// Manager creates, resolves and destroys sessions
type Manager struct {
	store        Store
	decoder      *TokenDecoder
	ttl          time.Duration
	cookieSecure bool
	now          func() time.Time
}

// NewManager creates a session manager. ttl caps every session; the token's own
// expiry caps it further.
func NewManager(store Store, decoder *TokenDecoder, ttl time.Duration, cookieSecure bool) *Manager {
	return &Manager{
		store:        store,
		decoder:      decoder,
		ttl:          ttl,
		cookieSecure: cookieSecure,
		now:          time.Now,
	}
}

// Begin builds and stores a session for a freshly issued token.
// Without signature verification a non-JWT token is accepted as an opaque
// credential; the identity then comes from admin and the session lives for ttl.
func (m *Manager) Begin(ctx context.Context, token string, admin models.AdminProfile) (*Session, error) {
	claims, err := m.decoder.Decode(token)
	switch {
	case errors.Is(err, ErrOpaqueToken) && token != "":
		claims = &Claims{}
	case err != nil:
		return nil, err
	}

	id, err := newID()
	if err != nil {
		return nil, fmt.Errorf("session id: %w", err)
	}

	now := m.now()
	expires := now.Add(m.ttl)
	if claims.ExpiresAt != nil && claims.ExpiresAt.Time.Before(expires) {
		expires = claims.ExpiresAt.Time
	}

	roles := claims.AllRoles()
	if admin.Role != "" {
		roles = append(roles, admin.Role)
	}

	adminID := admin.ID
	if adminID == "" {
		adminID = claims.AdminIdentifier()
	}
	email := admin.Email
	if email == "" {
		email = claims.Email
	}

	s := &Session{
		ID:        id,
		Token:     token,
		AdminID:   adminID,
		Name:      admin.Name,
		Email:     email,
		Roles:     dedupe(roles),
		CreatedAt: now,
		ExpiresAt: expires,
	}

	if err := m.store.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Resolve loads the session named by the request cookie.
// It returns ErrNotFound when there is no cookie or no live session.
func (m *Manager) Resolve(ctx context.Context, r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil, ErrNotFound
	}
	return m.store.Get(ctx, cookie.Value)
}

// End deletes the session and expires the cookie
func (m *Manager) End(ctx context.Context, w http.ResponseWriter, s *Session) error {
	m.ClearCookie(w)
	if s == nil {
		return nil
	}
	if err := m.store.Delete(ctx, s.ID); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}

// SetCookie writes the session cookie
func (m *Manager) SetCookie(w http.ResponseWriter, s *Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    s.ID,
		Path:     "/",
		Expires:  s.ExpiresAt,
		HttpOnly: true,
		Secure:   m.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie
func (m *Manager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// Refresh stores changed identity fields of a live session
func (m *Manager) Refresh(ctx context.Context, s *Session) error {
	return m.store.Save(ctx, s)
}
