package handlers

import (
	"errors"
	"net/http"

	"marketadmin/internal/passwordreset"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Handlers groups every page handler of the console
type Handlers struct {
	Auth      *AuthHandlers
	Dashboard *DashboardHandlers
	Users     *UserHandlers
	Sellers   *SellerHandlers
	Orders    *OrderHandlers
	Profile   *ProfileHandlers
	Password  *PasswordHandlers
	Health    *HealthHandlers
}

// New wires all handlers to one admin API client
func New(base *Base, api AdminAPI, checks map[string]HealthCheck) *Handlers {
	var reset passwordreset.API = api
	return &Handlers{
		Auth:      NewAuthHandlers(base, api),
		Dashboard: NewDashboardHandlers(base, api),
		Users:     NewUserHandlers(base, api),
		Sellers:   NewSellerHandlers(base, api),
		Orders:    NewOrderHandlers(base, api),
		Profile:   NewProfileHandlers(base, api),
		Password:  NewPasswordHandlers(base, reset),
		Health:    NewHealthHandlers(checks),
	}
}

// RegisterRoutes mounts the console. guard gates every admin page; the
// remaining middlewares run inside it.
func RegisterRoutes(e *echo.Echo, h *Handlers, guard echo.MiddlewareFunc, admin ...echo.MiddlewareFunc) {
	e.GET("/health", h.Health.HealthCheck)
	e.GET("/health/ready", h.Health.ReadinessCheck)

	e.GET("/login", h.Auth.LoginPage)
	e.POST("/login", h.Auth.Login)
	e.POST("/logout", h.Auth.Logout)

	e.GET("/forgot-password", h.Password.ForgotPage)
	e.POST("/forgot-password/send", h.Password.ForgotSend)
	e.POST("/forgot-password/reset", h.Password.ForgotReset)

	mw := append([]echo.MiddlewareFunc{guard}, admin...)
	protected := routeSet{e: e, mw: mw}

	protected.GET("/", h.Dashboard.Home)
	protected.GET("/dashboard", h.Dashboard.Dashboard)

	protected.GET("/users", h.Users.ListUsers)
	protected.GET("/users/:id", h.Users.GetUser)
	protected.GET("/users/:id/ban/confirm", h.Users.ConfirmBan)
	protected.POST("/users/:id/ban", h.Users.BanUser)
	protected.POST("/users/:id/unban", h.Users.UnbanUser)
	protected.GET("/users/:id/delete/confirm", h.Users.ConfirmDelete)
	protected.POST("/users/:id/delete", h.Users.DeleteUser)

	protected.GET("/sellers", h.Sellers.ListSellers)
	protected.GET("/sellers/:id", h.Sellers.GetSeller)
	protected.POST("/sellers/:id/approve", h.Sellers.ApproveSeller)
	protected.GET("/sellers/:id/ban/confirm", h.Sellers.ConfirmBan)
	protected.POST("/sellers/:id/ban", h.Sellers.BanSeller)
	protected.POST("/sellers/:id/unban", h.Sellers.UnbanSeller)

	protected.GET("/orders", h.Orders.GetOrders)
	protected.GET("/orders/:id", h.Orders.GetOrder)
	protected.POST("/orders/:id/status", h.Orders.AdvanceStatus)

	protected.GET("/profile", h.Profile.GetProfile)
	protected.POST("/profile", h.Profile.UpdateProfile)

	protected.GET("/change-password", h.Password.ChangePage)
	protected.POST("/change-password/send", h.Password.ChangeSend)
	protected.POST("/change-password/reset", h.Password.ChangeReset)
}

// routeSet registers routes that share a middleware chain. An echo Group
// with an empty prefix would also install a "/*" not-found route carrying
// the guard, turning every unknown path into a login redirect.
type routeSet struct {
	e  *echo.Echo
	mw []echo.MiddlewareFunc
}

func (r routeSet) GET(path string, h echo.HandlerFunc) {
	r.e.GET(path, h, r.mw...)
}

func (r routeSet) POST(path string, h echo.HandlerFunc) {
	r.e.POST(path, h, r.mw...)
}

type errorView struct {
	Status  int
	Message string
}

// ErrorHandler renders echo errors as an HTML page
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "Something went wrong. Please try again."
		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			if msg, ok := he.Message.(string); ok {
				message = msg
			} else {
				message = http.StatusText(status)
			}
		}
		if status >= http.StatusInternalServerError {
			logger.Error("request error", zap.Error(err), zap.String("path", c.Request().URL.Path))
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		page := &PageData{Title: http.StatusText(status), Data: errorView{Status: status, Message: message}}
		if rerr := c.Render(status, "error", page); rerr != nil {
			logger.Error("failed to render error page", zap.Error(rerr))
			_ = c.String(status, message)
		}
	}
}
