package models

import (
	"math"
	"time"
)

// Order statuses in the order they advance
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

var orderStatusFlow = []string{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
}

// NextOrderStatus returns the status that follows current.
// Delivered and cancelled orders (and unknown statuses) do not advance.
func NextOrderStatus(current string) (string, bool) {
	for i, status := range orderStatusFlow {
		if status == current && i+1 < len(orderStatusFlow) {
			return orderStatusFlow[i+1], true
		}
	}
	return "", false
}

// ValidOrderStatus reports whether status is one the API accepts
func ValidOrderStatus(status string) bool {
	if status == OrderStatusCancelled {
		return true
	}
	for _, s := range orderStatusFlow {
		if s == status {
			return true
		}
	}
	return false
}

// PartyRef is the embedded customer or seller summary on an order
type PartyRef struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	StoreName string `json:"storeName,omitempty"`
}

// OrderItem is a single line of a child order
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// LineTotal returns quantity times unit price
func (i OrderItem) LineTotal() float64 {
	return float64(i.Quantity) * i.Price
}

// ChildOrder is the per-seller slice of a parent order
type ChildOrder struct {
	ID          string      `json:"_id"`
	Seller      PartyRef    `json:"seller"`
	Items       []OrderItem `json:"items"`
	TotalAmount float64     `json:"totalAmount"`
	Status      string      `json:"status"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// NextStatus returns the status this child order would advance to
func (c ChildOrder) NextStatus() (string, bool) {
	return NextOrderStatus(c.Status)
}

// Split returns the revenue split for this seller's share of the order
func (c ChildOrder) Split() RevenueSplit {
	return SplitRevenue(c.TotalAmount)
}

// Order is a parent order aggregating one child order per seller
type Order struct {
	ID              string       `json:"_id"`
	OrderNumber     string       `json:"orderNumber,omitempty"`
	Customer        PartyRef     `json:"user"`
	ChildOrders     []ChildOrder `json:"childOrders,omitempty"`
	TotalAmount     float64      `json:"totalAmount"`
	Status          string       `json:"status"`
	PaymentMethod   string       `json:"paymentMethod,omitempty"`
	PaymentStatus   string       `json:"paymentStatus,omitempty"`
	ShippingAddress *Address     `json:"shippingAddress,omitempty"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

// NextStatus returns the status this order would advance to
func (o Order) NextStatus() (string, bool) {
	return NextOrderStatus(o.Status)
}

// Split returns the revenue split for the order total
func (o Order) Split() RevenueSplit {
	return SplitRevenue(o.TotalAmount)
}

// OrderStatusUpdate is the payload sent to PATCH /admin/orders/status/:id
type OrderStatusUpdate struct {
	Status       string `json:"status"`
	ChildOrderID string `json:"childOrderId,omitempty"`
}

// RevenueSplit divides a total between the platform and the seller
type RevenueSplit struct {
	Total         int64
	PlatformFee   int64
	SellerRevenue int64
}

// SplitRevenue splits total into a 20% platform fee and an 80% seller share.
// The total is rounded to whole currency units first; the fee is round(T/5)
// and the seller gets the remainder, so the two parts always sum to T.
func SplitRevenue(total float64) RevenueSplit {
	if total <= 0 || math.IsNaN(total) {
		return RevenueSplit{}
	}
	t := int64(math.Round(total))
	fee := (2*t + 5) / 10
	return RevenueSplit{
		Total:         t,
		PlatformFee:   fee,
		SellerRevenue: t - fee,
	}
}
