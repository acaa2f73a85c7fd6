package order

import "errors"

// ErrInvalidRequest marks create/update payloads that fail validation. The
// wrapped message is safe to return to the caller.
var ErrInvalidRequest = errors.New("invalid request")

// CreateRequest is the payload for creating an order.
type CreateRequest struct {
	CustomerID      string          `json:"customerId"`
	Items           []OrderItem     `json:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	ShippingFee     int64           `json:"shippingFee"`
	Note            string          `json:"note"`
}

// UpdateRequest is the partial payload for updating an order. Nil fields are
// left untouched; an explicitly empty items list clears the order's items.
type UpdateRequest struct {
	Items           *[]OrderItem     `json:"items"`
	ShippingAddress *ShippingAddress `json:"shippingAddress"`
	Status          *Status          `json:"status"`
	Note            *string          `json:"note"`
	ShippingFee     *int64           `json:"shippingFee"`
}
