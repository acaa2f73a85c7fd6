package outbox

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittiBank/order-manage-web/internal/dal/memory"
	"github.com/kittiBank/order-manage-web/internal/service/models/event"
)

type fakePublisher struct {
	mu          sync.Mutex
	published   [][]byte
	failBodies  map[string]error
	inFlight    int
	maxInFlight int
	delay       time.Duration
}

func (p *fakePublisher) Publish(_ string, body []byte) error {
	p.mu.Lock()
	p.inFlight++
	if p.inFlight > p.maxInFlight {
		p.maxInFlight = p.inFlight
	}
	p.mu.Unlock()

	if p.delay > 0 {
		time.Sleep(p.delay)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.inFlight--

	if err, ok := p.failBodies[string(body)]; ok {
		return err
	}
	p.published = append(p.published, body)

	return nil
}

func seedEvent(t *testing.T, repo *memory.OutboxRepository, orderID string) {
	t.Helper()

	err := repo.Insert(context.Background(), event.OrderEvent{
		Type:        event.TypeOrderCreated,
		OrderID:     orderID,
		Payload:     []byte(fmt.Sprintf(`{"id":%q}`, orderID)),
		ContentType: "application/json",
		CreatedAt:   time.Now(),
	})
	require.NoError(t, err)
}

func TestProcessEvents_PublishesAndDeletes(t *testing.T) {
	repo := memory.NewOutboxRepository()
	seedEvent(t, repo, "ORD-1")
	pub := &fakePublisher{}

	w := NewWorker(repo, pub)
	w.processEvents(context.Background())

	require.Len(t, pub.published, 1)

	pending, err := repo.GetPendingEvents(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestProcessEvents_FailureSchedulesRetryWithBackoff(t *testing.T) {
	repo := memory.NewOutboxRepository()
	seedEvent(t, repo, "ORD-1")
	pub := &fakePublisher{
		failBodies: map[string]error{`{"id":"ORD-1"}`: errors.New("broker unavailable")},
	}

	w := NewWorker(repo, pub)
	before := time.Now()
	w.processEvents(context.Background())

	// The event is scheduled for later, not lost and not pending now.
	pending, err := repo.GetPendingEvents(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, pending)

	all, err := repo.All()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 1, all[0].RetryCount)
	assert.Equal(t, "broker unavailable", all[0].LastError)

	// First retry is 2^1 * 30s out.
	gap := all[0].NextRetryAt.Sub(before)
	assert.InDelta(t, (60 * time.Second).Seconds(), gap.Seconds(), 5)
}

func TestProcessEvents_OneFailureDoesNotStopTheBatch(t *testing.T) {
	repo := memory.NewOutboxRepository()
	for i := 1; i <= 5; i++ {
		seedEvent(t, repo, fmt.Sprintf("ORD-%d", i))
	}
	pub := &fakePublisher{
		failBodies: map[string]error{`{"id":"ORD-3"}`: errors.New("broker unavailable")},
	}

	w := NewWorker(repo, pub)
	w.processEvents(context.Background())

	assert.Len(t, pub.published, 4)

	all, err := repo.All()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "ORD-3", all[0].OrderID)
	assert.Equal(t, 1, all[0].RetryCount)
}

func TestProcessEvents_FanOutIsBounded(t *testing.T) {
	repo := memory.NewOutboxRepository()
	for i := 1; i <= 10; i++ {
		seedEvent(t, repo, fmt.Sprintf("ORD-%d", i))
	}
	pub := &fakePublisher{delay: 10 * time.Millisecond}

	w := NewWorker(repo, pub)
	w.processEvents(context.Background())

	assert.Len(t, pub.published, 10)
	assert.Greater(t, pub.maxInFlight, 1)
	assert.LessOrEqual(t, pub.maxInFlight, w.concurrency)
}

func TestProcessEvents_EmptyOutboxIsQuiet(t *testing.T) {
	repo := memory.NewOutboxRepository()
	pub := &fakePublisher{}

	w := NewWorker(repo, pub)
	w.processEvents(context.Background())

	assert.Empty(t, pub.published)
}
