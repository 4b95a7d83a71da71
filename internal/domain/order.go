package domain

import (
	"time"

	"github.com/google/uuid"
)

type OrderID = uuid.UUID

type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderDelivered OrderStatus = "Delivered"
	OrderCancelled OrderStatus = "Cancelled"
)

// ValidOrderStatus reports whether s is one of the enumerated states.
// Free-form status strings from clients are rejected before any write.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderPending, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

type OrderItem struct {
	FoodID   FoodID `json:"foodId"`
	Quantity int    `json:"quantity"`
}

type FoodOrder struct {
	ID         OrderID     `json:"id"`
	UserID     UserID      `json:"userId"`
	Items      []OrderItem `json:"items"`
	TotalPrice float64     `json:"totalPrice"`
	Status     OrderStatus `json:"status"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}
