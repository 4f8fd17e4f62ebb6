package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// ErrOpaqueToken is returned by an unverifying decoder for a token that is not a JWT
var ErrOpaqueToken = errors.New("token is not a JWT")

// Claims are the fields the console reads from an admin token
type Claims struct {
	AdminID string   `json:"id,omitempty"`
	Email   string   `json:"email,omitempty"`
	Role    string   `json:"role,omitempty"`
	Roles   []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// AdminIdentifier returns the admin id, falling back to the sub claim
func (c *Claims) AdminIdentifier() string {
	if c.AdminID != "" {
		return c.AdminID
	}
	return c.RegisteredClaims.Subject
}

// AllRoles merges the single role claim with the roles array
func (c *Claims) AllRoles() []string {
	roles := append([]string(nil), c.Roles...)
	if c.Role != "" {
		roles = append(roles, c.Role)
	}
	return roles
}

// TokenDecoder reads admin tokens issued by the API.
// With a keyfunc the signature is verified; without one the claims are read as-is,
// since the API remains the authority on every request.
type TokenDecoder struct {
	keyfunc jwt.Keyfunc
	now     func() time.Time
}

// NewTokenDecoder creates a decoder. A nil keyfunc skips signature verification.
func NewTokenDecoder(kf jwt.Keyfunc) *TokenDecoder {
	return &TokenDecoder{keyfunc: kf, now: time.Now}
}

// NewJWKSDecoder creates a decoder that verifies tokens against a JWKS endpoint.
// The returned stop function ends the background key refresh.
func NewJWKSDecoder(ctx context.Context, jwksURL string, logger *zap.Logger) (*TokenDecoder, func(), error) {
	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
		Ctx:               ctx,
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  5 * time.Minute,
		RefreshTimeout:    10 * time.Second,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			logger.Warn("jwks refresh failed", zap.String("url", jwksURL), zap.Error(err))
		},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("load jwks %s: %w", jwksURL, err)
	}
	return NewTokenDecoder(jwks.Keyfunc), jwks.EndBackground, nil
}

// Decode parses token and checks its expiry
func (d *TokenDecoder) Decode(token string) (*Claims, error) {
	claims := &Claims{}

	if d.keyfunc == nil {
		parser := jwt.NewParser()
		if _, _, err := parser.ParseUnverified(token, claims); err != nil {
			if errors.Is(err, jwt.ErrTokenMalformed) {
				return nil, fmt.Errorf("%w: %w", ErrOpaqueToken, err)
			}
			return nil, fmt.Errorf("parse token: %w", err)
		}
	} else {
		parser := jwt.NewParser(jwt.WithTimeFunc(d.now))
		if _, err := parser.ParseWithClaims(token, claims, d.keyfunc); err != nil {
			return nil, fmt.Errorf("verify token: %w", err)
		}
	}

	if claims.ExpiresAt != nil && !d.now().Before(claims.ExpiresAt.Time) {
		return nil, errors.New("token expired")
	}
	return claims, nil
}
