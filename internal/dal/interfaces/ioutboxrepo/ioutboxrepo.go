package ioutboxrepo

import (
	"context"
	"time"

	"github.com/kittiBank/order-manage-web/internal/service/models/event"
)

// IOutboxRepository defines the interface for outbox operations.
type IOutboxRepository interface {
	// Insert adds a new event to the outbox
	Insert(ctx context.Context, ev event.OrderEvent) error

	// GetPendingEvents retrieves events that are ready for publishing
	GetPendingEvents(ctx context.Context, limit int) ([]event.OrderEvent, error)

	// Delete removes an event from the outbox after successful delivery
	Delete(ctx context.Context, id int64) error

	// UpdateRetry updates retry count and error information
	UpdateRetry(
		ctx context.Context,
		id int64,
		retryCount int,
		lastError string,
		nextRetryAt time.Time,
	) error
}
