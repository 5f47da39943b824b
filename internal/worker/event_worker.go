package worker

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/contact-service/internal/events"
)

// ErrQueueFull is returned by Publish when the buffer has no room.
var ErrQueueFull = errors.New("event queue full")

// ErrStopped is returned by Publish after Stop.
var ErrStopped = errors.New("event worker stopped")

// EventWorker hands events to a dispatcher on a background goroutine so
// request handlers do not wait on subscribers. It satisfies events.Dispatcher.
type EventWorker struct {
	next   events.Dispatcher
	logger *zap.Logger
	queue  chan events.Event

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
}

// NewEventWorker creates a worker in front of next with room for buffer pending events.
func NewEventWorker(next events.Dispatcher, buffer int, logger *zap.Logger) *EventWorker {
	if buffer <= 0 {
		buffer = 64
	}
	return &EventWorker{
		next:   next,
		logger: logger,
		queue:  make(chan events.Event, buffer),
	}
}

// Start launches the delivery loop.
func (w *EventWorker) Start() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for event := range w.queue {
			if err := w.next.Publish(context.Background(), event); err != nil {
				w.logger.Warn("event handler failed",
					zap.String("event_type", string(event.Type)),
					zap.String("event_id", event.ID),
					zap.Error(err))
			}
		}
	}()
}

// Publish enqueues event without blocking.
func (w *EventWorker) Publish(_ context.Context, event events.Event) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.stopped {
		return ErrStopped
	}
	select {
	case w.queue <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

// Subscribe registers handler on the underlying dispatcher.
func (w *EventWorker) Subscribe(eventType events.EventType, handler events.EventHandler) {
	w.next.Subscribe(eventType, handler)
}

// Stop refuses new events, delivers the queued ones and waits for the loop to exit.
func (w *EventWorker) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	close(w.queue)
	w.mu.Unlock()

	w.wg.Wait()
}
