package outbox

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/kittiBank/order-manage-web/internal/dal/interfaces/ioutboxrepo"
	"github.com/kittiBank/order-manage-web/internal/service/models/event"
)

// publisher delivers one event body to the message broker.
type publisher interface {
	Publish(contentType string, body []byte) error
}

// Worker publishes order events from the outbox.
type Worker struct {
	outboxRepo   ioutboxrepo.IOutboxRepository
	publisher    publisher
	pollInterval time.Duration
	batchSize    int
	concurrency  int
	stopCh       chan struct{}
}

// NewWorker creates a new outbox worker.
func NewWorker(
	outboxRepo ioutboxrepo.IOutboxRepository,
	publisher publisher,
) *Worker {
	pollIntervalSeconds := viper.GetInt("rabbitmq.outbox.poll_interval_seconds")
	if pollIntervalSeconds == 0 {
		pollIntervalSeconds = 10
	}

	batchSize := viper.GetInt("rabbitmq.outbox.batch_size")
	if batchSize == 0 {
		batchSize = 100
	}

	concurrency := viper.GetInt("rabbitmq.outbox.publish_concurrency")
	if concurrency == 0 {
		concurrency = 3
	}

	return &Worker{
		outboxRepo:   outboxRepo,
		publisher:    publisher,
		pollInterval: time.Duration(pollIntervalSeconds) * time.Second,
		batchSize:    batchSize,
		concurrency:  concurrency,
		stopCh:       make(chan struct{}),
	}
}

// Start begins publishing events from the outbox.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	slog.Info("Outbox worker started", "poll_interval", w.pollInterval, "batch_size", w.batchSize)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Outbox worker shutting down")

			return
		case <-w.stopCh:
			slog.Info("Outbox worker stopped")

			return
		case <-ticker.C:
			w.processEvents(ctx)
		}
	}
}

// Stop stops the worker.
func (w *Worker) Stop() {
	close(w.stopCh)
}

// processEvents retrieves pending events and publishes them with bounded
// concurrency. Every event keeps its own retry bookkeeping, so a failed
// publish never aborts the rest of the batch.
func (w *Worker) processEvents(ctx context.Context) {
	events, err := w.outboxRepo.GetPendingEvents(ctx, w.batchSize)
	if err != nil {
		slog.Error("Failed to get pending events from outbox", "error", err)

		return
	}

	if len(events) == 0 {
		return
	}

	slog.Info("Publishing outbox events", "count", len(events))

	var g errgroup.Group
	g.SetLimit(w.concurrency)

	for _, ev := range events {
		g.Go(func() error {
			return w.publishEvent(ctx, ev)
		})
	}

	if err := g.Wait(); err != nil {
		slog.Warn("Outbox batch finished with failures", "error", err)
	}
}

// publishEvent delivers one event, deleting it on success and scheduling a
// retry on failure.
func (w *Worker) publishEvent(ctx context.Context, ev event.OrderEvent) error {
	err := w.publisher.Publish(ev.ContentType, ev.Payload)

	if err != nil {
		// Exponential backoff: 60s, 120s, 240s, ...
		newRetryCount := ev.RetryCount + 1
		backoffSeconds := math.Pow(2, float64(newRetryCount)) * 30
		nextRetryAt := time.Now().Add(time.Duration(backoffSeconds) * time.Second)

		slog.Warn("Failed to publish event from outbox, will retry",
			"outbox_id", ev.ID,
			"order_id", ev.OrderID,
			"retry_count", newRetryCount,
			"next_retry", nextRetryAt,
			"error", err,
		)

		if updateErr := w.outboxRepo.UpdateRetry(ctx, ev.ID, newRetryCount, err.Error(), nextRetryAt); updateErr != nil {
			slog.Error("Failed to update retry information", "outbox_id", ev.ID, "error", updateErr)
		}

		return err
	}

	if err := w.outboxRepo.Delete(ctx, ev.ID); err != nil {
		slog.Error("Failed to delete event from outbox after successful publish",
			"outbox_id", ev.ID,
			"error", err,
		)
	}

	return nil
}
