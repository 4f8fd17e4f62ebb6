package middleware

import (
	"errors"

	"marketadmin/internal/session"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SessionLoader resolves the session cookie and places the session on the request
// context. It never rejects a request; RequireRoles does the gating.
func SessionLoader(manager *session.Manager, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			s, err := manager.Resolve(req.Context(), req)
			if err != nil {
				if !errors.Is(err, session.ErrNotFound) {
					logger.Warn("session lookup failed", zap.Error(err))
				}
				return next(c)
			}

			c.SetRequest(req.WithContext(session.WithSession(req.Context(), s)))
			return next(c)
		}
	}
}
