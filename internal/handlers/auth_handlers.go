package handlers

import (
	"net/http"

	"marketadmin/internal/adminapi"
	"marketadmin/internal/common"
	"marketadmin/internal/flash"
	"marketadmin/internal/models"
	"marketadmin/internal/session"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthHandlers handles sign-in and sign-out
type AuthHandlers struct {
	*Base
	api AuthAPI
}

// NewAuthHandlers creates a new auth handlers instance
func NewAuthHandlers(base *Base, api AuthAPI) *AuthHandlers {
	return &AuthHandlers{Base: base, api: api}
}

type loginView struct {
	Email string
	Next  string
}

// LoginPage shows the sign-in form
func (h *AuthHandlers) LoginPage(c echo.Context) error {
	next := common.SafeRedirect(c.QueryParam("next"), "/dashboard")
	if _, ok := session.FromContext(c.Request().Context()); ok {
		return c.Redirect(http.StatusSeeOther, next)
	}
	return c.Render(http.StatusOK, "login", &PageData{
		Title: "Sign in",
		Data:  loginView{Next: next},
	})
}

// Login exchanges credentials for an admin token and starts a session
func (h *AuthHandlers) Login(c echo.Context) error {
	ctx := c.Request().Context()
	next := common.SafeRedirect(c.FormValue("next"), "/dashboard")

	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form submission")
	}

	fail := func(message string) error {
		return c.Render(http.StatusUnauthorized, "login", &PageData{
			Title:   "Sign in",
			Data:    loginView{Email: req.Email, Next: next},
			Flashes: []flash.Message{{Type: flash.Error, Message: message}},
		})
	}

	if err := common.Validate(req); err != nil {
		return fail(common.ValidationMessage(err))
	}

	resp, err := h.api.Login(ctx, req)
	if err != nil {
		return fail(adminapi.Message(err))
	}

	s, err := h.sessions.Begin(ctx, resp.Token, resp.Admin)
	if err != nil {
		h.logger.Warn("rejected admin token", zap.String("email", req.Email), zap.Error(err))
		return fail("Sign-in failed: the server returned an unusable token")
	}
	h.sessions.SetCookie(c.Response(), s)

	h.logger.Info("admin signed in", zap.String("admin_id", s.AdminID), zap.String("email", s.Email))
	return c.Redirect(http.StatusSeeOther, next)
}

// Logout ends the session
func (h *AuthHandlers) Logout(c echo.Context) error {
	req := c.Request()
	s, _ := session.FromContext(req.Context())
	if err := h.sessions.End(req.Context(), c.Response(), s); err != nil {
		h.logger.Warn("failed to delete session", zap.Error(err))
	}
	if s != nil {
		h.tracker.Forget(s.ID)
	}
	flash.Add(c.Response(), req, flash.Info, "You have been signed out")
	return c.Redirect(http.StatusSeeOther, "/login")
}
