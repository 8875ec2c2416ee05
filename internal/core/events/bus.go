package events

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is a domain fact announced once the unit of work that produced it has committed.
// Its LogValue renders the typed fields that identify it.
type Event interface {
	slog.LogValuer
	Name() string
	ID() string
	OccurredAt() time.Time
}

// Header carries what every event shares; concrete events embed it.
type Header struct {
	EventID   string    `json:"id"`
	EventName string    `json:"name"`
	At        time.Time `json:"occurred_at"`
}

func newHeader(name string, at time.Time) Header {
	return Header{EventID: uuid.NewString(), EventName: name, At: at}
}

func (h Header) Name() string          { return h.EventName }
func (h Header) ID() string            { return h.EventID }
func (h Header) OccurredAt() time.Time { return h.At }

type Handler func(ctx context.Context, event Event) error

// Publisher is what services depend on to announce domain events.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Bus dispatches events to their handlers on the caller's goroutine; a CLI invocation
// has nothing to hand work off to.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   *slog.Logger
}

func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		handlers: make(map[string][]Handler),
		logger:   logger,
	}
}

func (b *Bus) Subscribe(name string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[name] = append(b.handlers[name], handler)
}

// Publish runs the handlers in subscription order and stops at the first failure.
func (b *Bus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.Name()]
	b.mu.RUnlock()

	if len(handlers) == 0 {
		b.logger.DebugContext(ctx, "no subscribers", "event", event.Name())
		return nil
	}

	for i, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			b.logger.ErrorContext(ctx, "event handler failed",
				"event", event.Name(), "event_id", event.ID(), "handler", i, "error", err)
			return fmt.Errorf("%s handler %d: %w", event.Name(), i, err)
		}
	}
	return nil
}
