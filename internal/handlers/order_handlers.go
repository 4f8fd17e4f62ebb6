package handlers

import (
	"context"
	"net/http"
	"net/url"

	"marketadmin/internal/common"
	"marketadmin/internal/flash"
	"marketadmin/internal/models"

	"github.com/labstack/echo/v4"
)

// OrderHandlers handles order pages and status changes
type OrderHandlers struct {
	*Base
	api OrderAPI
}

// NewOrderHandlers creates a new order handlers instance
func NewOrderHandlers(base *Base, api OrderAPI) *OrderHandlers {
	return &OrderHandlers{Base: base, api: api}
}

type orderListView struct {
	Orders []models.Order
	Query  string
	Status string
	Total  int
	Back   string
}

// GetOrders lists orders, optionally filtered by status or customer
func (h *OrderHandlers) GetOrders(c echo.Context) error {
	orders, st := fetch(h.Base, c, "orders", h.api.ListOrders)
	if st.Unauthorized {
		return h.reauthenticate(c)
	}

	status := c.QueryParam("status")
	if !models.ValidOrderStatus(status) {
		status = ""
	}
	q := common.SearchQuery(c)

	view := orderListView{
		Query:  c.QueryParam("q"),
		Status: status,
		Total:  len(orders),
		Back:   c.Request().URL.RequestURI(),
	}
	for _, o := range orders {
		if status != "" && o.Status != status {
			continue
		}
		if !common.MatchesQuery(q, o.ID, o.OrderNumber, o.Customer.Name, o.Customer.Email) {
			continue
		}
		view.Orders = append(view.Orders, o)
	}

	return h.page(c, "orders", "Orders", "orders", view, st)
}

type orderDetailView struct {
	Order *models.Order
	Split models.RevenueSplit
}

// GetOrder shows one parent order with its per-seller child orders
func (h *OrderHandlers) GetOrder(c echo.Context) error {
	id := c.Param("id")
	order, st := fetch(h.Base, c, "order:"+id, func(ctx context.Context) (*models.Order, error) {
		return h.api.GetOrder(ctx, id)
	})
	switch {
	case st.Unauthorized:
		return h.reauthenticate(c)
	case st.NotFound:
		return h.notFound(c, "Order", "/orders")
	}

	view := orderDetailView{Order: order}
	if order != nil {
		view.Split = order.Split()
	}
	return h.page(c, "order_detail", "Order", "orders", view, st)
}

// statusForm is posted from the order list and detail pages. From is the status
// the admin was looking at; the order (or child order) advances one step from there.
type statusForm struct {
	From  string `form:"from"`
	Child string `form:"child"`
}

// AdvanceStatus moves an order or one of its child orders to the next status
func (h *OrderHandlers) AdvanceStatus(c echo.Context) error {
	id := c.Param("id")
	back := backTo(c, "/orders/"+url.PathEscape(id))

	var form statusForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form submission")
	}

	next, ok := models.NextOrderStatus(form.From)
	if !ok {
		flash.Add(c.Response(), c.Request(), flash.Error, "This order can no longer be advanced")
		return c.Redirect(http.StatusSeeOther, back)
	}

	update := models.OrderStatusUpdate{Status: next, ChildOrderID: form.Child}
	return h.act(c, "Order marked "+next, back, func(ctx context.Context) error {
		return h.api.UpdateOrderStatus(ctx, id, update)
	})
}
