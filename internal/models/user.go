package models

import "time"

// Address is a postal address attached to users, sellers and orders
type Address struct {
	Line1      string `json:"line1,omitempty"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

// User is the console's view of an end customer
type User struct {
	ID         string    `json:"_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	Role       string    `json:"role,omitempty"`
	IsBanned   bool      `json:"isBanned"`
	IsVerified bool      `json:"isVerified"`
	Addresses  []Address `json:"addresses,omitempty"`
	OrderCount int       `json:"orderCount,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Status returns the label shown in list and detail views
func (u User) Status() string {
	if u.IsBanned {
		return "banned"
	}
	return "active"
}
