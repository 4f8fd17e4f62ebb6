package models

import "time"

// BankDetails holds payout information shown on the seller detail page
type BankDetails struct {
	AccountHolder string `json:"accountHolderName,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
	IFSC          string `json:"ifscCode,omitempty"`
	BankName      string `json:"bankName,omitempty"`
}

// Seller is the console's view of a marketplace seller
type Seller struct {
	ID           string       `json:"_id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone,omitempty"`
	StoreName    string       `json:"storeName,omitempty"`
	GSTNumber    string       `json:"gstNumber,omitempty"`
	IsApproved   bool         `json:"isApproved"`
	IsBanned     bool         `json:"isBanned"`
	Address      *Address     `json:"address,omitempty"`
	BankDetails  *BankDetails `json:"bankDetails,omitempty"`
	ProductCount int          `json:"productCount,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// Seller lifecycle labels
const (
	SellerStatusPending  = "pending"
	SellerStatusApproved = "approved"
	SellerStatusBanned   = "banned"
)

// Status collapses the approval and ban flags into one label.
// A ban wins over approval.
func (s Seller) Status() string {
	switch {
	case s.IsBanned:
		return SellerStatusBanned
	case s.IsApproved:
		return SellerStatusApproved
	default:
		return SellerStatusPending
	}
}
