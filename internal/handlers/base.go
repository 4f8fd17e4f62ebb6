package handlers

import (
	"context"
	"net/http"
	"net/url"

	"marketadmin/internal/adminapi"
	"marketadmin/internal/common"
	"marketadmin/internal/flash"
	"marketadmin/internal/session"
	"marketadmin/internal/viewstate"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Base carries what every page handler needs
type Base struct {
	tracker  *viewstate.Tracker
	sessions *session.Manager
	logger   *zap.Logger
}

// NewBase creates the shared handler dependencies
func NewBase(tracker *viewstate.Tracker, sessions *session.Manager, logger *zap.Logger) *Base {
	return &Base{tracker: tracker, sessions: sessions, logger: logger}
}

// viewState describes how a page's data was obtained
type viewState struct {
	Stale        bool
	LoadError    string
	NotFound     bool
	Unauthorized bool
}

// failed reports whether there is no data to render
func (v viewState) failed() bool {
	return v.LoadError != "" && !v.Stale
}

// fetch runs one read for view and falls back to the last good snapshot on failure
func fetch[T any](b *Base, c echo.Context, view string, load func(ctx context.Context) (T, error)) (T, viewState) {
	ctx := c.Request().Context()
	sessionID := ""
	if s, ok := session.FromContext(ctx); ok {
		sessionID = s.ID
	}

	data, ok, err := viewstate.Fetch(b.tracker, sessionID, view, func() (T, error) { return load(ctx) })
	if err == nil {
		return data, viewState{}
	}

	st := viewState{
		LoadError:    adminapi.Message(err),
		NotFound:     adminapi.IsNotFound(err),
		Unauthorized: adminapi.IsUnauthorized(err),
		Stale:        ok,
	}
	return data, st
}

// page renders name with the view state applied
func (b *Base) page(c echo.Context, name, title, section string, data any, st viewState) error {
	p := &PageData{
		Title:   title,
		Section: section,
		Data:    data,
		Stale:   st.Stale,
	}
	status := http.StatusOK
	if st.LoadError != "" {
		if st.Stale {
			p.Flashes = append(p.Flashes, flash.Message{Type: flash.Error, Message: st.LoadError})
		} else {
			p.LoadError = st.LoadError
			status = http.StatusBadGateway
		}
	}
	return c.Render(status, name, p)
}

// reauthenticate ends a session whose token the API rejected
func (b *Base) reauthenticate(c echo.Context) error {
	req := c.Request()
	s, _ := session.FromContext(req.Context())
	if err := b.sessions.End(req.Context(), c.Response(), s); err != nil {
		b.logger.Warn("failed to end rejected session", zap.Error(err))
	}
	if s != nil {
		b.tracker.Forget(s.ID)
	}
	flash.Add(c.Response(), req, flash.Error, "Your session has expired. Please sign in again.")
	return c.Redirect(http.StatusSeeOther, "/login")
}

// backTo returns the page an action was posted from: the "back" form field when
// it is a local path, otherwise def
func backTo(c echo.Context, def string) string {
	return common.SafeRedirect(c.FormValue("back"), def)
}

// act runs one write and redirects to the posting page (or def) with a flash
// describing the outcome
func (b *Base) act(c echo.Context, success, def string, write func(ctx context.Context) error) error {
	err := write(c.Request().Context())
	redirect := backTo(c, def)
	return b.finish(c, err, success, redirect, redirect)
}

// finish flashes the outcome of a write and redirects
func (b *Base) finish(c echo.Context, err error, success, onSuccess, onFailure string) error {
	req := c.Request()
	switch {
	case err == nil:
		flash.Add(c.Response(), req, flash.Success, success)
		return c.Redirect(http.StatusSeeOther, onSuccess)
	case adminapi.IsUnauthorized(err):
		return b.reauthenticate(c)
	case common.IsValidationError(err):
		flash.Add(c.Response(), req, flash.Error, common.ValidationMessage(err))
	default:
		flash.Add(c.Response(), req, flash.Error, adminapi.Message(err))
	}
	return c.Redirect(http.StatusSeeOther, onFailure)
}

// notFound sends the admin back to a list page
func (b *Base) notFound(c echo.Context, entity, list string) error {
	flash.Add(c.Response(), c.Request(), flash.Error, entity+" not found")
	return c.Redirect(http.StatusSeeOther, list)
}

// confirmed reports whether a destructive POST carries explicit confirmation
func confirmed(c echo.Context) bool {
	return c.FormValue("confirm") == "yes"
}

// confirmView is rendered before any destructive action
type confirmView struct {
	Heading string
	Message string
	Action  string
	Cancel  string
	Button  string
	Back    string
}

// confirm renders v. A local "back" query parameter is carried through the
// confirmation so the action returns to the page it started from.
func (b *Base) confirm(c echo.Context, title, section string, v confirmView) error {
	if back := common.SafeRedirect(c.QueryParam("back"), ""); back != "" {
		v.Back = back
		v.Cancel = back
	}
	return c.Render(http.StatusOK, "confirm", &PageData{Title: title, Section: section, Data: v})
}

// confirmPath is where an unconfirmed destructive POST is sent
func confirmPath(c echo.Context, path string) string {
	if back := common.SafeRedirect(c.FormValue("back"), ""); back != "" {
		return path + "?back=" + url.QueryEscape(back)
	}
	return path
}
