package handlers

import (
	"context"
	"net/http"
	"net/url"

	"marketadmin/internal/common"
	"marketadmin/internal/models"

	"github.com/labstack/echo/v4"
)

// SellerHandlers handles seller pages and lifecycle actions
type SellerHandlers struct {
	*Base
	api SellerAPI
}

// NewSellerHandlers creates a new seller handlers instance
func NewSellerHandlers(base *Base, api SellerAPI) *SellerHandlers {
	return &SellerHandlers{Base: base, api: api}
}

type sellerListView struct {
	Sellers []models.Seller
	Query   string
	Status  string
	Total   int
	Pending int
	Back    string
}

// ListSellers shows sellers, filtered by text and approval status
func (h *SellerHandlers) ListSellers(c echo.Context) error {
	sellers, st := fetch(h.Base, c, "sellers", h.api.ListSellers)
	if st.Unauthorized {
		return h.reauthenticate(c)
	}

	q := common.SearchQuery(c)
	status := c.QueryParam("status")
	switch status {
	case models.SellerStatusPending, models.SellerStatusApproved, models.SellerStatusBanned:
	default:
		status = ""
	}

	view := sellerListView{
		Query:  c.QueryParam("q"),
		Status: status,
		Total:  len(sellers),
		Back:   c.Request().URL.RequestURI(),
	}
	for _, s := range sellers {
		if s.Status() == models.SellerStatusPending {
			view.Pending++
		}
		if status != "" && s.Status() != status {
			continue
		}
		if !common.MatchesQuery(q, s.Name, s.Email, s.StoreName, s.GSTNumber) {
			continue
		}
		view.Sellers = append(view.Sellers, s)
	}

	return h.page(c, "sellers", "Sellers", "sellers", view, st)
}

// GetSeller shows one seller
func (h *SellerHandlers) GetSeller(c echo.Context) error {
	id := c.Param("id")
	seller, st := fetch(h.Base, c, "seller:"+id, func(ctx context.Context) (*models.Seller, error) {
		return h.api.GetSeller(ctx, id)
	})
	switch {
	case st.Unauthorized:
		return h.reauthenticate(c)
	case st.NotFound:
		return h.notFound(c, "Seller", "/sellers")
	}
	return h.page(c, "seller_detail", "Seller", "sellers", seller, st)
}

func sellerPath(id string) string {
	return "/sellers/" + url.PathEscape(id)
}

// ApproveSeller approves a pending seller
func (h *SellerHandlers) ApproveSeller(c echo.Context) error {
	id := c.Param("id")
	return h.act(c, "Seller approved", sellerPath(id), func(ctx context.Context) error {
		return h.api.ApproveSeller(ctx, id)
	})
}

// ConfirmBan asks before banning a seller
func (h *SellerHandlers) ConfirmBan(c echo.Context) error {
	id := c.Param("id")
	return h.confirm(c, "Ban seller", "sellers", confirmView{
		Heading: "Ban this seller?",
		Message: "The seller's store and listings will be hidden until unbanned.",
		Action:  sellerPath(id) + "/ban",
		Cancel:  sellerPath(id),
		Button:  "Ban seller",
	})
}

// BanSeller bans a seller once confirmed
func (h *SellerHandlers) BanSeller(c echo.Context) error {
	id := c.Param("id")
	if !confirmed(c) {
		return c.Redirect(http.StatusSeeOther, confirmPath(c, sellerPath(id)+"/ban/confirm"))
	}
	return h.act(c, "Seller banned", sellerPath(id), func(ctx context.Context) error {
		return h.api.BanSeller(ctx, id)
	})
}

// UnbanSeller lifts a seller ban
func (h *SellerHandlers) UnbanSeller(c echo.Context) error {
	id := c.Param("id")
	return h.act(c, "Seller unbanned", sellerPath(id), func(ctx context.Context) error {
		return h.api.UnbanSeller(ctx, id)
	})
}
