package handlers

import (
	"context"
	"net/http"
	"net/url"

	"marketadmin/internal/common"
	"marketadmin/internal/models"

	"github.com/labstack/echo/v4"
)

// UserHandlers handles customer pages and actions
type UserHandlers struct {
	*Base
	api UserAPI
}

// NewUserHandlers creates a new user handlers instance
func NewUserHandlers(base *Base, api UserAPI) *UserHandlers {
	return &UserHandlers{Base: base, api: api}
}

type userListView struct {
	Users []models.User
	Query string
	Total int
	Back  string
}

// ListUsers shows every customer, optionally filtered by name or email
func (h *UserHandlers) ListUsers(c echo.Context) error {
	users, st := fetch(h.Base, c, "users", h.api.ListUsers)
	if st.Unauthorized {
		return h.reauthenticate(c)
	}

	q := common.SearchQuery(c)
	filtered := make([]models.User, 0, len(users))
	for _, u := range users {
		if common.MatchesQuery(q, u.Name, u.Email, u.Phone) {
			filtered = append(filtered, u)
		}
	}

	return h.page(c, "users", "Users", "users", userListView{
		Users: filtered,
		Query: c.QueryParam("q"),
		Total: len(users),
		Back:  c.Request().URL.RequestURI(),
	}, st)
}

// GetUser shows one customer
func (h *UserHandlers) GetUser(c echo.Context) error {
	id := c.Param("id")
	user, st := fetch(h.Base, c, "user:"+id, func(ctx context.Context) (*models.User, error) {
		return h.api.GetUser(ctx, id)
	})
	switch {
	case st.Unauthorized:
		return h.reauthenticate(c)
	case st.NotFound:
		return h.notFound(c, "User", "/users")
	}
	return h.page(c, "user_detail", "User", "users", user, st)
}

func userPath(id string) string {
	return "/users/" + url.PathEscape(id)
}

// ConfirmBan asks before banning a customer
func (h *UserHandlers) ConfirmBan(c echo.Context) error {
	id := c.Param("id")
	return h.confirm(c, "Ban user", "users", confirmView{
		Heading: "Ban this user?",
		Message: "The user will be signed out and unable to place orders until unbanned.",
		Action:  userPath(id) + "/ban",
		Cancel:  userPath(id),
		Button:  "Ban user",
	})
}

// BanUser bans a customer once confirmed
func (h *UserHandlers) BanUser(c echo.Context) error {
	id := c.Param("id")
	if !confirmed(c) {
		return c.Redirect(http.StatusSeeOther, confirmPath(c, userPath(id)+"/ban/confirm"))
	}
	return h.act(c, "User banned", userPath(id), func(ctx context.Context) error {
		return h.api.BanUser(ctx, id)
	})
}

// UnbanUser lifts a ban
func (h *UserHandlers) UnbanUser(c echo.Context) error {
	id := c.Param("id")
	return h.act(c, "User unbanned", userPath(id), func(ctx context.Context) error {
		return h.api.UnbanUser(ctx, id)
	})
}

// ConfirmDelete asks before deleting a customer
func (h *UserHandlers) ConfirmDelete(c echo.Context) error {
	id := c.Param("id")
	return h.confirm(c, "Delete user", "users", confirmView{
		Heading: "Delete this user?",
		Message: "This permanently removes the account. It cannot be undone.",
		Action:  userPath(id) + "/delete",
		Cancel:  userPath(id),
		Button:  "Delete user",
	})
}

// DeleteUser removes a customer once confirmed
func (h *UserHandlers) DeleteUser(c echo.Context) error {
	id := c.Param("id")
	if !confirmed(c) {
		return c.Redirect(http.StatusSeeOther, confirmPath(c, userPath(id)+"/delete/confirm"))
	}
	err := h.api.DeleteUser(c.Request().Context(), id)
	return h.finish(c, err, "User deleted", backTo(c, "/users"), backTo(c, userPath(id)))
}
