package worker

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/spec-kit/contact-service/internal/events"
)

func TestEventWorker_DeliversQueuedEventsBeforeStopping(t *testing.T) {
	defer goleak.VerifyNone(t)

	dispatcher := events.NewInMemoryDispatcher()
	w := NewEventWorker(dispatcher, 16, zap.NewNop())

	var (
		mu   sync.Mutex
		seen []string
	)
	w.Subscribe(events.EventContactCreated, func(_ context.Context, e events.Event) error {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, e.ContactID)
		return nil
	})

	w.Start()
	for _, id := range []string{"c1", "c2", "c3"} {
		require.NoError(t, w.Publish(context.Background(), events.NewEvent(events.EventContactCreated, "o", id, nil)))
	}
	w.Stop()

	assert.Equal(t, []string{"c1", "c2", "c3"}, seen)
	assert.ErrorIs(t, w.Publish(context.Background(), events.NewEvent(events.EventContactCreated, "o", "late", nil)), ErrStopped)
	w.Stop()
}

func TestEventWorker_FullQueue(t *testing.T) {
	defer goleak.VerifyNone(t)

	w := NewEventWorker(events.NewInMemoryDispatcher(), 1, zap.NewNop())

	// Not started, so the single slot stays occupied.
	require.NoError(t, w.Publish(context.Background(), events.NewEvent(events.EventContactDeleted, "o", "c1", nil)))
	assert.ErrorIs(t, w.Publish(context.Background(), events.NewEvent(events.EventContactDeleted, "o", "c2", nil)), ErrQueueFull)

	w.Start()
	w.Stop()
}
