package handlers

import (
	"context"
	"net/http"

	"marketadmin/internal/common"
	"marketadmin/internal/flash"
	"marketadmin/internal/models"
	"marketadmin/internal/session"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ProfileHandlers handles the signed-in admin's own record
type ProfileHandlers struct {
	*Base
	api ProfileAPI
}

// NewProfileHandlers creates a new profile handlers instance
func NewProfileHandlers(base *Base, api ProfileAPI) *ProfileHandlers {
	return &ProfileHandlers{Base: base, api: api}
}

// GetProfile shows the profile form
func (h *ProfileHandlers) GetProfile(c echo.Context) error {
	profile, st := fetch(h.Base, c, "profile", h.api.GetProfile)
	if st.Unauthorized {
		return h.reauthenticate(c)
	}
	return h.page(c, "profile", "Profile", "profile", profile, st)
}

// UpdateProfile saves the profile form
func (h *ProfileHandlers) UpdateProfile(c echo.Context) error {
	var form models.ProfileUpdate
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form submission")
	}
	if err := common.Validate(form); err != nil {
		flash.Add(c.Response(), c.Request(), flash.Error, common.ValidationMessage(err))
		return c.Redirect(http.StatusSeeOther, "/profile")
	}

	ctx := c.Request().Context()
	updated, err := h.api.UpdateProfile(ctx, form)
	if err == nil {
		h.syncSession(ctx, form, updated)
	}
	return h.finish(c, err, "Profile updated", "/profile", "/profile")
}

// syncSession keeps the name in the navigation bar current
func (h *ProfileHandlers) syncSession(ctx context.Context, form models.ProfileUpdate, updated *models.AdminProfile) {
	s, ok := session.FromContext(ctx)
	if !ok {
		return
	}
	s.Name, s.Email = form.Name, form.Email
	if updated != nil && updated.Name != "" {
		s.Name, s.Email = updated.Name, updated.Email
	}
	if err := h.sessions.Refresh(ctx, s); err != nil {
		h.logger.Warn("failed to refresh session after profile update", zap.Error(err), zap.String("admin_id", s.AdminID))
	}
}
