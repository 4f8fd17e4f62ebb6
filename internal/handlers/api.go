package handlers

import (
	"context"

	"marketadmin/internal/models"
)

// AuthAPI covers sign-in and password reset
type AuthAPI interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	SendResetOTP(ctx context.Context, email string) error
	VerifyResetOTP(ctx context.Context, email, otp, newPassword string) error
}

// DashboardAPI reads the dashboard counters
type DashboardAPI interface {
	Dashboard(ctx context.Context) (*models.DashboardStats, error)
}

// UserAPI covers customer management
type UserAPI interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	BanUser(ctx context.Context, id string) error
	UnbanUser(ctx context.Context, id string) error
	DeleteUser(ctx context.Context, id string) error
}

// SellerAPI covers seller management
type SellerAPI interface {
	ListSellers(ctx context.Context) ([]models.Seller, error)
	GetSeller(ctx context.Context, id string) (*models.Seller, error)
	ApproveSeller(ctx context.Context, id string) error
	BanSeller(ctx context.Context, id string) error
	UnbanSeller(ctx context.Context, id string) error
}

// OrderAPI covers order management
type OrderAPI interface {
	ListOrders(ctx context.Context) ([]models.Order, error)
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, update models.OrderStatusUpdate) error
}

// ProfileAPI covers the signed-in admin's own record
type ProfileAPI interface {
	GetProfile(ctx context.Context) (*models.AdminProfile, error)
	UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.AdminProfile, error)
}

// AdminAPI is everything the console calls on the admin API
type AdminAPI interface {
	AuthAPI
	DashboardAPI
	UserAPI
	SellerAPI
	OrderAPI
	ProfileAPI
}
