// Package notify publishes domain events to real-time subscribers and brokers.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	portssvc "github.com/SscSPs/b2b_inventory_app/internal/core/ports/services"
	"github.com/SscSPs/b2b_inventory_app/internal/middleware"
)

// Event is the payload delivered to subscribers and brokers.
type Event struct {
	Name       string    `json:"event"`
	Args       []any     `json:"args"`
	OccurredAt time.Time `json:"occurredAt"`
}

func newEvent(name string, args []any) Event {
	return Event{Name: name, Args: args, OccurredAt: time.Now().UTC()}
}

// Hub fans events out to in-process subscribers. Slow subscribers miss events instead of blocking publishers.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[chan Event]struct{}
	buffer      int
	closed      bool
}

func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = 16
	}
	return &Hub{subscribers: make(map[chan Event]struct{}), buffer: buffer}
}

var _ portssvc.Notifier = (*Hub)(nil)

// Subscribe returns a channel of events and a function that detaches it.
// The channel is closed on detach or when the hub closes; after Close it is returned already closed.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, h.buffer)
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(ch)
		return ch, func() {}
	}
	h.subscribers[ch] = struct{}{}

	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subscribers[ch]; ok {
			delete(h.subscribers, ch)
			close(ch)
		}
	}
}

// Close detaches every subscriber so open streams end. Later events are dropped.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for ch := range h.subscribers {
		delete(h.subscribers, ch)
		close(ch)
	}
}

func (h *Hub) Notify(ctx context.Context, event string, args ...any) {
	e := newEvent(event, args)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subscribers {
		select {
		case ch <- e:
		default:
			middleware.GetLoggerFromCtx(ctx).Warn("Dropping event for slow subscriber", slog.String("event", event))
		}
	}
}

// Subscribers reports the number of attached subscribers.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
