package handlers

import (
	"net/http"

	"marketadmin/internal/models"

	"github.com/labstack/echo/v4"
)

// DashboardHandlers renders the landing page
type DashboardHandlers struct {
	*Base
	api DashboardAPI
}

// NewDashboardHandlers creates a new dashboard handlers instance
func NewDashboardHandlers(base *Base, api DashboardAPI) *DashboardHandlers {
	return &DashboardHandlers{Base: base, api: api}
}

// Home redirects to the dashboard
func (h *DashboardHandlers) Home(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/dashboard")
}

// Dashboard shows the platform counters and shortcuts to each section
func (h *DashboardHandlers) Dashboard(c echo.Context) error {
	stats, st := fetch(h.Base, c, "dashboard", h.api.Dashboard)
	if st.Unauthorized {
		return h.reauthenticate(c)
	}
	if stats == nil {
		stats = &models.DashboardStats{}
	}
	return h.page(c, "dashboard", "Dashboard", "dashboard", stats, st)
}
