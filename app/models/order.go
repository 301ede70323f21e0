package models

import (
	"fmt"

	"gorm.io/gorm"
)

// OrderStatus is the closed set of order states.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// transitions is the allowed adjacency per state. Delivered and cancelled
// are terminal.
var transitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

// ParseOrderStatus validates a raw status value against the closed set.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	s := OrderStatus(raw)
	if _, ok := transitions[s]; !ok {
		return "", fmt.Errorf("unknown order status %q", raw)
	}
	return s, nil
}

// CanTransition reports whether moving from s to target is allowed.
func (s OrderStatus) CanTransition(target OrderStatus) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// Order is the aggregate root a checkout creates. TotalPrice is the
// caller-supplied total; see the repository for the transactional write.
type Order struct {
	gorm.Model
	UserID        uint        `gorm:"not null;index" json:"userId"`
	TotalPrice    float64     `gorm:"not null;default:0" json:"totalPrice"`
	Status        OrderStatus `gorm:"size:50;not null;default:pending" json:"status"`
	CustomerEmail string      `gorm:"size:255" json:"customerEmail"`
	Items         []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// OrderItem is one line of an order. Price snapshots the unit price at
// purchase time, so later product price changes never rewrite history.
type OrderItem struct {
	gorm.Model
	OrderID   uint    `gorm:"not null;index" json:"orderId"`
	ProductID uint    `gorm:"not null;index" json:"productId"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	Price     float64 `gorm:"not null" json:"price"`
}
