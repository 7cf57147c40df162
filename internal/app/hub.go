package app

import (
	"sync"

	"github.com/google/uuid"
	"github.com/raysh454/inspectra/internal/logging"
	"github.com/raysh454/inspectra/internal/model"
)

const defaultSubscriberBuffer = 64

// Hub fans dashboard events out to subscribers. Publishing never blocks:
// a subscriber whose buffer is full misses the event.
type Hub struct {
	logger logging.Logger

	mu     sync.RWMutex
	subs   map[string]chan model.DashboardEvent
	closed bool
}

func NewHub(logger logging.Logger) *Hub {
	return &Hub{
		logger: logger.With(logging.Field{Key: "component", Value: "hub"}),
		subs:   make(map[string]chan model.DashboardEvent),
	}
}

// Subscribe registers a new subscriber. The returned cancel func
// unregisters it and closes the channel.
func (h *Hub) Subscribe(buffer int) (<-chan model.DashboardEvent, func()) {
	if buffer <= 0 {
		buffer = defaultSubscriberBuffer
	}
	ch := make(chan model.DashboardEvent, buffer)
	id := uuid.New().String()

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	h.subs[id] = ch
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if c, ok := h.subs[id]; ok {
				delete(h.subs, id)
				close(c)
			}
		})
	}
}

func (h *Hub) Publish(ev model.DashboardEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, ch := range h.subs {
		// Non-blocking send; drop if buffer is full.
		select {
		case ch <- ev:
		default:
			h.logger.Debug("dropping event for slow subscriber",
				logging.Field{Key: "subscriber", Value: id},
				logging.Field{Key: "type", Value: string(ev.Type)})
		}
	}
}

// Close closes every subscriber channel. Later subscriptions get a
// closed channel.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}
