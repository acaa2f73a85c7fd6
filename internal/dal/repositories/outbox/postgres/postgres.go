package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/kittiBank/order-manage-web/internal/dal/postgres"
	"github.com/kittiBank/order-manage-web/internal/service/models/event"
)

// OutboxRepository implements the outbox repository for PostgreSQL.
type OutboxRepository struct {
	client *postgres.Client
}

// NewOutboxRepository creates a new outbox repository.
func NewOutboxRepository(client *postgres.Client) *OutboxRepository {
	return &OutboxRepository{
		client: client,
	}
}

// Insert adds a new event to the outbox.
func (r *OutboxRepository) Insert(ctx context.Context, ev event.OrderEvent) error {
	now := time.Now()
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = now
	}
	if ev.NextRetryAt.IsZero() {
		ev.NextRetryAt = now
	}

	query, args, err := sq.Insert("outbox").
		Columns(
			"event_type",
			"order_id",
			"payload",
			"content_type",
			"retry_count",
			"last_error",
			"created_at",
			"next_retry_at",
		).
		Values(
			string(ev.Type),
			ev.OrderID,
			ev.Payload,
			ev.ContentType,
			ev.RetryCount,
			ev.LastError,
			ev.CreatedAt,
			ev.NextRetryAt,
		).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.client.DB().ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert outbox event: %w", err)
	}

	return nil
}

// GetPendingEvents retrieves events that are ready for publishing.
func (r *OutboxRepository) GetPendingEvents(ctx context.Context, limit int) ([]event.OrderEvent, error) {
	query, args, err := sq.Select(
		"id",
		"event_type",
		"order_id",
		"payload",
		"content_type",
		"retry_count",
		"last_error",
		"created_at",
		"next_retry_at",
	).
		From("outbox").
		Where(sq.LtOrEq{"next_retry_at": time.Now()}).
		OrderBy("id").
		Limit(uint64(limit)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build pending events query: %w", err)
	}

	rows, err := r.client.DB().QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending events: %w", err)
	}
	defer rows.Close()

	var result []event.OrderEvent
	for rows.Next() {
		var (
			ev        event.OrderEvent
			eventType string
		)
		if err := rows.Scan(
			&ev.ID,
			&eventType,
			&ev.OrderID,
			&ev.Payload,
			&ev.ContentType,
			&ev.RetryCount,
			&ev.LastError,
			&ev.CreatedAt,
			&ev.NextRetryAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan outbox event: %w", err)
		}
		ev.Type = event.Type(eventType)
		result = append(result, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Delete removes an event from the outbox after successful delivery.
func (r *OutboxRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := sq.Delete("outbox").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	if _, err := r.client.DB().ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete outbox event: %w", err)
	}

	return nil
}

// UpdateRetry updates retry count and error information.
func (r *OutboxRepository) UpdateRetry(
	ctx context.Context,
	id int64,
	retryCount int,
	lastError string,
	nextRetryAt time.Time,
) error {
	query, args, err := sq.Update("outbox").
		Set("retry_count", retryCount).
		Set("last_error", lastError).
		Set("next_retry_at", nextRetryAt).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	_, err = r.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update outbox event: %w", err)
	}

	return nil
}
