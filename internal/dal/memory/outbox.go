package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/kittiBank/order-manage-web/internal/service/models/event"
)

var ErrEventNotFound = errors.New("outbox event not found")

// OutboxRepository is a process-local outbox queue for order events.
type OutboxRepository struct {
	mu     sync.Mutex
	nextID int64
	events []event.OrderEvent
}

func NewOutboxRepository() *OutboxRepository {
	return &OutboxRepository{nextID: 1}
}

func (r *OutboxRepository) Insert(_ context.Context, ev event.OrderEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ev.ID = r.nextID
	r.nextID++
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now()
	}
	r.events = append(r.events, ev)

	return nil
}

// GetPendingEvents returns up to limit events whose retry time has come.
func (r *OutboxRepository) GetPendingEvents(_ context.Context, limit int) ([]event.OrderEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	result := make([]event.OrderEvent, 0, limit)
	for _, ev := range r.events {
		if len(result) == limit {
			break
		}
		if ev.NextRetryAt.After(now) {
			continue
		}
		result = append(result, ev)
	}

	return result, nil
}

// All returns a snapshot of every queued event, including those waiting
// out a retry backoff.
func (r *OutboxRepository) All() ([]event.OrderEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]event.OrderEvent(nil), r.events...), nil
}

func (r *OutboxRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.events {
		if r.events[i].ID == id {
			r.events = append(r.events[:i], r.events[i+1:]...)
			return nil
		}
	}

	return ErrEventNotFound
}

func (r *OutboxRepository) UpdateRetry(
	_ context.Context,
	id int64,
	retryCount int,
	lastError string,
	nextRetryAt time.Time,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.events {
		if r.events[i].ID == id {
			r.events[i].RetryCount = retryCount
			r.events[i].LastError = lastError
			r.events[i].NextRetryAt = nextRetryAt

			return nil
		}
	}

	return ErrEventNotFound
}
