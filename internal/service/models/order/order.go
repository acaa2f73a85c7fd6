package order

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("order not found")

// Order represents an order in the system.
type Order struct {
	ID              string          `json:"id"`
	CustomerID      string          `json:"customerId"`
	Items           []OrderItem     `json:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	Subtotal        int64           `json:"subtotal"`
	ShippingFee     int64           `json:"shippingFee"`
	Total           int64           `json:"total"`
	Note            string          `json:"note,omitempty"`
	Status          Status          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// OrderItem represents a line item within an order.
type OrderItem struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName,omitempty"`
	Quantity    int    `json:"quantity"`
	Price       int64  `json:"price"`
}

// ShippingAddress represents the delivery destination of an order.
type ShippingAddress struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	Province   string `json:"province"`
	PostalCode string `json:"postalCode"`
}

// Subtotal sums price times quantity over all items.
func SubtotalOf(items []OrderItem) int64 {
	var sum int64
	for _, item := range items {
		sum += item.Price * int64(item.Quantity)
	}

	return sum
}

// RecalculateTotals recomputes subtotal and total from the current items
// and shipping fee.
func (o *Order) RecalculateTotals() {
	o.Subtotal = SubtotalOf(o.Items)
	o.Total = o.Subtotal + o.ShippingFee
}
