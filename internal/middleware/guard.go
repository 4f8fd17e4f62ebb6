package middleware

import (
	"net/http"
	"net/url"

	"marketadmin/internal/session"

	"github.com/labstack/echo/v4"
)

// LoginPath is where unauthenticated requests are sent
const LoginPath = "/login"

// RequireRoles admits requests that carry a session holding at least one of roles.
// With no roles any signed-in admin is admitted. A request without a session is
// redirected to the login page with its path in next; a session without a
// required role gets 403.
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s, ok := session.FromContext(c.Request().Context())
			if !ok {
				return c.Redirect(http.StatusFound, LoginPath+"?next="+url.QueryEscape(c.Request().URL.RequestURI()))
			}

			if len(roles) > 0 && !s.HasAnyRole(roles...) {
				return echo.NewHTTPError(http.StatusForbidden, "You do not have access to the admin console")
			}

			return next(c)
		}
	}
}
