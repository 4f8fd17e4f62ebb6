package adminapi

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"marketadmin/internal/models"
)

func idPath(prefix, id string) string {
	return prefix + url.PathEscape(id)
}

// Login exchanges admin credentials for a bearer token
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	err := c.do(ctx, request{
		method:  http.MethodPost,
		route:   "/auth/login",
		path:    "/auth/login",
		payload: req,
		out:     &resp,
	})
	if err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, errors.New("admin api login response carried no token")
	}
	return &resp, nil
}

// SendResetOTP asks the API to email a password-reset OTP
func (c *Client) SendResetOTP(ctx context.Context, email string) error {
	return c.do(ctx, request{
		method:  http.MethodPost,
		route:   "/auth/send-reset-otp",
		path:    "/auth/send-reset-otp",
		payload: map[string]string{"email": email},
	})
}

// VerifyResetOTP verifies the OTP and sets the new password
func (c *Client) VerifyResetOTP(ctx context.Context, email, otp, newPassword string) error {
	return c.do(ctx, request{
		method: http.MethodPost,
		route:  "/auth/verify-reset-otp",
		path:   "/auth/verify-reset-otp",
		payload: map[string]string{
			"email":       email,
			"otp":         otp,
			"newPassword": newPassword,
		},
	})
}

// Dashboard fetches the aggregate counters
func (c *Client) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	err := c.do(ctx, request{
		method:   http.MethodGet,
		route:    "/admin/dashboard",
		path:     "/admin/dashboard",
		envelope: "stats",
		out:      &stats,
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// ListUsers fetches all end users
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := c.do(ctx, request{
		method:   http.MethodGet,
		route:    "/admin/users",
		path:     "/admin/users",
		envelope: "users",
		out:      &users,
	})
	return users, err
}

// GetUser fetches one user
func (c *Client) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := c.do(ctx, request{
		method:   http.MethodGet,
		route:    "/admin/users/:id",
		path:     idPath("/admin/users/", id),
		envelope: "user",
		out:      &user,
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// BanUser bans a user
func (c *Client) BanUser(ctx context.Context, id string) error {
	return c.do(ctx, request{
		method: http.MethodPatch,
		route:  "/admin/users/ban/:id",
		path:   idPath("/admin/users/ban/", id),
	})
}

// UnbanUser lifts a user ban
func (c *Client) UnbanUser(ctx context.Context, id string) error {
	return c.do(ctx, request{
		method: http.MethodPatch,
		route:  "/admin/users/unban/:id",
		path:   idPath("/admin/users/unban/", id),
	})
}

// DeleteUser permanently removes a user
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, request{
		method: http.MethodDelete,
		route:  "/admin/users/:id",
		path:   idPath("/admin/users/", id),
	})
}

// ListSellers fetches all sellers
func (c *Client) ListSellers(ctx context.Context) ([]models.Seller, error) {
	var sellers []models.Seller
	err := c.do(ctx, request{
		method:   http.MethodGet,
		route:    "/admin/sellers",
		path:     "/admin/sellers",
		envelope: "sellers",
		out:      &sellers,
	})
	return sellers, err
}

// GetSeller fetches one seller
func (c *Client) GetSeller(ctx context.Context, id string) (*models.Seller, error) {
	var seller models.Seller
	err := c.do(ctx, request{
		method:   http.MethodGet,
		route:    "/admin/sellers/:id",
		path:     idPath("/admin/sellers/", id),
		envelope: "seller",
		out:      &seller,
	})
	if err != nil {
		return nil, err
	}
	return &seller, nil
}

// ApproveSeller approves a pending seller
func (c *Client) ApproveSeller(ctx context.Context, id string) error {
	return c.do(ctx, request{
		method: http.MethodPatch,
		route:  "/admin/sellers/approve/:id",
		path:   idPath("/admin/sellers/approve/", id),
	})
}

// BanSeller bans a seller
func (c *Client) BanSeller(ctx context.Context, id string) error {
	return c.do(ctx, request{
		method: http.MethodPatch,
		route:  "/admin/sellers/ban/:id",
		path:   idPath("/admin/sellers/ban/", id),
	})
}

// UnbanSeller lifts a seller ban
func (c *Client) UnbanSeller(ctx context.Context, id string) error {
	return c.do(ctx, request{
		method: http.MethodPatch,
		route:  "/admin/sellers/unban/:id",
		path:   idPath("/admin/sellers/unban/", id),
	})
}

// ListOrders fetches all parent orders
func (c *Client) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := c.do(ctx, request{
		method:   http.MethodGet,
		route:    "/admin/orders",
		path:     "/admin/orders",
		envelope: "orders",
		out:      &orders,
	})
	return orders, err
}

// GetOrder fetches one parent order with its child orders
func (c *Client) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := c.do(ctx, request{
		method:   http.MethodGet,
		route:    "/admin/orders/:id",
		path:     idPath("/admin/orders/", id),
		envelope: "order",
		out:      &order,
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus sets the status of a parent order, or of one of its child orders
func (c *Client) UpdateOrderStatus(ctx context.Context, id string, update models.OrderStatusUpdate) error {
	return c.do(ctx, request{
		method:  http.MethodPatch,
		route:   "/admin/orders/status/:id",
		path:    idPath("/admin/orders/status/", id),
		payload: update,
	})
}

// GetProfile fetches the signed-in admin's record
func (c *Client) GetProfile(ctx context.Context) (*models.AdminProfile, error) {
	var profile models.AdminProfile
	err := c.do(ctx, request{
		method:   http.MethodGet,
		route:    "/admin/profile",
		path:     "/admin/profile",
		envelope: "admin",
		out:      &profile,
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile updates the signed-in admin's record
func (c *Client) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.AdminProfile, error) {
	var profile models.AdminProfile
	err := c.do(ctx, request{
		method:   http.MethodPut,
		route:    "/admin/profile",
		path:     "/admin/profile",
		payload:  update,
		envelope: "admin",
		out:      &profile,
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
