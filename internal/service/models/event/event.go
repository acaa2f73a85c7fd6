package event

import (
	"time"
)

// Type identifies what happened to an order.
type Type string

const (
	TypeOrderCreated Type = "order.created"
	TypeOrderUpdated Type = "order.updated"
	TypeOrderDeleted Type = "order.deleted"
)

// OrderEvent is an outbox record describing a mutation of an order. It is
// stored alongside the mutation and published asynchronously by the outbox
// worker.
type OrderEvent struct {
	ID          int64
	Type        Type
	OrderID     string
	Payload     []byte
	ContentType string
	RetryCount  int
	LastError   string
	CreatedAt   time.Time
	NextRetryAt time.Time
}
