package client

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/kittiBank/order-manage-web/pkg/client/tokenstore"
)

// Order is an order as returned by the server.
type Order struct {
	ID              string          `json:"id"`
	CustomerID      string          `json:"customerId"`
	Items           []OrderItem     `json:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	Subtotal        int64           `json:"subtotal"`
	ShippingFee     int64           `json:"shippingFee"`
	Total           int64           `json:"total"`
	Note            string          `json:"note,omitempty"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// OrderItem is a single order line.
type OrderItem struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName,omitempty"`
	Quantity    int    `json:"quantity"`
	Price       int64  `json:"price"`
}

// ShippingAddress is the order's delivery destination.
type ShippingAddress struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	Province   string `json:"province"`
	PostalCode string `json:"postalCode"`
}

// CreateOrderRequest is the payload for creating an order.
type CreateOrderRequest struct {
	CustomerID      string          `json:"customerId"`
	Items           []OrderItem     `json:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	ShippingFee     int64           `json:"shippingFee"`
	Note            string          `json:"note,omitempty"`
}

// UpdateOrderRequest is a partial order update. Nil fields are left
// unchanged; an explicitly empty items list clears the order's items.
type UpdateOrderRequest struct {
	Items           *[]OrderItem     `json:"items,omitempty"`
	ShippingAddress *ShippingAddress `json:"shippingAddress,omitempty"`
	Status          *string          `json:"status,omitempty"`
	Note            *string          `json:"note,omitempty"`
	ShippingFee     *int64           `json:"shippingFee,omitempty"`
}

// ListOrdersQuery selects, orders and pages the order listing. Zero
// values are omitted from the request.
type ListOrdersQuery struct {
	Cursor     string
	Limit      int
	CustomerID string
	Status     string
	MinPrice   int64
	MaxPrice   int64
	SortBy     string
	SortOrder  string
}

func (q ListOrdersQuery) values() url.Values {
	values := url.Values{}
	if q.Cursor != "" {
		values.Set("cursor", q.Cursor)
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.CustomerID != "" {
		values.Set("customerId", q.CustomerID)
	}
	if q.Status != "" {
		values.Set("status", q.Status)
	}
	if q.MinPrice > 0 {
		values.Set("minPrice", strconv.FormatInt(q.MinPrice, 10))
	}
	if q.MaxPrice > 0 {
		values.Set("maxPrice", strconv.FormatInt(q.MaxPrice, 10))
	}
	if q.SortBy != "" {
		values.Set("sortBy", q.SortBy)
	}
	if q.SortOrder != "" {
		values.Set("sortOrder", q.SortOrder)
	}

	return values
}

// Pagination describes the window an order page was cut from.
type Pagination struct {
	NextCursor string `json:"nextCursor,omitempty"`
	PrevCursor string `json:"prevCursor,omitempty"`
	HasMore    bool   `json:"hasMore"`
	Total      int    `json:"total"`
}

// OrderPage is one page of the order listing.
type OrderPage struct {
	Data       []Order    `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role,omitempty"`
}

// LoginResult is what a successful login returns.
type LoginResult struct {
	AccessToken  string          `json:"accessToken"`
	RefreshToken string          `json:"refreshToken"`
	ExpiresIn    int64           `json:"expiresIn"`
	User         tokenstore.User `json:"user"`
}

// APIError is a non-2xx server response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}
