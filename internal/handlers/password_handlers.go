package handlers

import (
	"net/http"

	"marketadmin/internal/adminapi"
	"marketadmin/internal/common"
	"marketadmin/internal/flash"
	"marketadmin/internal/passwordreset"
	"marketadmin/internal/session"

	"github.com/labstack/echo/v4"
)

// PasswordHandlers serves the OTP reset flow, both signed out (forgot password)
// and signed in (change password)
type PasswordHandlers struct {
	*Base
	api passwordreset.API
}

// NewPasswordHandlers creates a new password handlers instance
func NewPasswordHandlers(base *Base, api passwordreset.API) *PasswordHandlers {
	return &PasswordHandlers{Base: base, api: api}
}

// passwordMode distinguishes the two entry points
type passwordMode struct {
	Title     string
	Section   string
	Base      string
	Done      string
	DoneText  string
	FixedMail string
}

func forgotMode() passwordMode {
	return passwordMode{
		Title:    "Forgot password",
		Base:     "/forgot-password",
		Done:     "/login",
		DoneText: "Password reset. You can now sign in.",
	}
}

func changeMode(c echo.Context) passwordMode {
	m := passwordMode{
		Title:    "Change password",
		Section:  "profile",
		Base:     "/change-password",
		Done:     "/profile",
		DoneText: "Password changed",
	}
	if s, ok := session.FromContext(c.Request().Context()); ok {
		m.FixedMail = s.Email
	}
	return m
}

type passwordView struct {
	Mode  passwordMode
	Step  string
	Email string
}

func (h *PasswordHandlers) render(c echo.Context, status int, mode passwordMode, flow *passwordreset.Flow, email string, err error) error {
	p := &PageData{
		Title:   mode.Title,
		Section: mode.Section,
		Data: passwordView{
			Mode:  mode,
			Step:  flow.State().String(),
			Email: email,
		},
	}
	if err != nil {
		msg := common.ValidationMessage(err)
		if msg == "" {
			msg = adminapi.Message(err)
		}
		p.Flashes = []flash.Message{{Type: flash.Error, Message: msg}}
	}
	return c.Render(status, "password", p)
}

// ForgotPage shows the first step of the signed-out flow
func (h *PasswordHandlers) ForgotPage(c echo.Context) error {
	return h.render(c, http.StatusOK, forgotMode(), passwordreset.New(h.api), "", nil)
}

// ChangePage shows the first step of the signed-in flow
func (h *PasswordHandlers) ChangePage(c echo.Context) error {
	mode := changeMode(c)
	return h.render(c, http.StatusOK, mode, passwordreset.New(h.api), mode.FixedMail, nil)
}

// ForgotSend requests a reset code
func (h *PasswordHandlers) ForgotSend(c echo.Context) error {
	return h.send(c, forgotMode())
}

// ChangeSend requests a reset code for the signed-in admin
func (h *PasswordHandlers) ChangeSend(c echo.Context) error {
	return h.send(c, changeMode(c))
}

// ForgotReset submits the code and new password
func (h *PasswordHandlers) ForgotReset(c echo.Context) error {
	return h.reset(c, forgotMode())
}

// ChangeReset submits the code and new password for the signed-in admin
func (h *PasswordHandlers) ChangeReset(c echo.Context) error {
	return h.reset(c, changeMode(c))
}

func (h *PasswordHandlers) send(c echo.Context, mode passwordMode) error {
	var form passwordreset.EmailForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form submission")
	}
	if mode.FixedMail != "" {
		form.Email = mode.FixedMail
	}

	flow := passwordreset.New(h.api)
	if err := flow.SubmitEmail(c.Request().Context(), form); err != nil {
		if adminapi.IsUnauthorized(err) && mode.FixedMail != "" {
			return h.reauthenticate(c)
		}
		return h.render(c, http.StatusUnprocessableEntity, mode, flow, form.Email, err)
	}

	p := &PageData{
		Title:   mode.Title,
		Section: mode.Section,
		Data:    passwordView{Mode: mode, Step: flow.State().String(), Email: flow.Email()},
		Flashes: []flash.Message{{Type: flash.Success, Message: "A one-time code has been sent to " + flow.Email()}},
	}
	return c.Render(http.StatusOK, "password", p)
}

func (h *PasswordHandlers) reset(c echo.Context, mode passwordMode) error {
	var form passwordreset.ResetForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form submission")
	}
	if mode.FixedMail != "" {
		form.Email = mode.FixedMail
	}

	flow := passwordreset.Resume(h.api, form.Email)
	if flow.State() != passwordreset.AwaitingOtpAndNewPassword {
		return c.Redirect(http.StatusSeeOther, mode.Base)
	}
	if err := flow.SubmitReset(c.Request().Context(), form); err != nil {
		return h.render(c, http.StatusUnprocessableEntity, mode, flow, form.Email, err)
	}

	flash.Add(c.Response(), c.Request(), flash.Success, mode.DoneText)
	return c.Redirect(http.StatusSeeOther, mode.Done)
}
