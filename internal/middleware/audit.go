package middleware

import (
	"net/http"

	"marketadmin/internal/common"
	"marketadmin/internal/session"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuditActions logs every state-changing request made by a signed-in admin:
// who did it, to which route, and how it ended.
func AuditActions(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)

			req := c.Request()
			if req.Method == http.MethodGet || req.Method == http.MethodHead {
				return err
			}
			s, ok := session.FromContext(req.Context())
			if !ok {
				return err
			}

			fields := []zap.Field{
				zap.String("admin_id", s.AdminID),
				zap.String("admin_email", s.Email),
				zap.String("method", req.Method),
				zap.String("route", c.Path()),
				zap.String("target_id", c.Param("id")),
				zap.Int("status", c.Response().Status),
				zap.String("request_id", common.GetRequestID(req.Context())),
			}
			if err != nil {
				logger.Warn("admin action failed", append(fields, zap.Error(err))...)
			} else {
				logger.Info("admin action", fields...)
			}
			return err
		}
	}
}
