package models

// DashboardStats are the aggregate counters shown on the dashboard
type DashboardStats struct {
	Users             int `json:"users"`
	Sellers           int `json:"sellers"`
	Orders            int `json:"orders"`
	PendingDeliveries int `json:"pendingDeliveries"`
}

// AdminProfile is the signed-in admin's own record
type AdminProfile struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// ProfileUpdate is the payload sent to PUT /admin/profile
type ProfileUpdate struct {
	Name  string `json:"name" form:"name" validate:"required,max=100"`
	Email string `json:"email" form:"email" validate:"required,email"`
	Phone string `json:"phone,omitempty" form:"phone" validate:"omitempty,max=20"`
}

// LoginRequest is the payload sent to POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// LoginResponse is returned by POST /auth/login
type LoginResponse struct {
	Token string       `json:"token"`
	Admin AdminProfile `json:"admin"`
}
