// Package notify fans content change events out to subscribers such as the
// snapshot cache and SSE clients.
package notify

import (
	"sync"
	"time"
)

// Action names the mutation that produced an event.
type Action string

const (
	ActionCreated   Action = "created"
	ActionUpdated   Action = "updated"
	ActionDeleted   Action = "deleted"
	ActionReordered Action = "reordered"
	ActionPublished Action = "published"
	ActionDrafted   Action = "unpublished"
	ActionReloaded  Action = "reloaded"
)

// Event describes one successful change to site content.
type Event struct {
	Entity string    `json:"entity"`
	Action Action    `json:"action"`
	ID     uint      `json:"id,omitempty"`
	At     time.Time `json:"at"`
}

// Publisher accepts events. Accessors depend on this, not on Hub.
type Publisher interface {
	Publish(Event)
}

// Hub is an in-process broadcaster. Slow subscribers miss events rather
// than blocking publishers.
type Hub struct {
	mu     sync.RWMutex
	subs   map[int]chan Event
	nextID int
	buffer int
	closed bool
	now    func() time.Time
}

// NewHub returns a hub whose subscriber channels hold buffer events.
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = 16
	}
	return &Hub{
		subs:   make(map[int]chan Event),
		buffer: buffer,
		now:    time.Now,
	}
}

// Publish delivers ev to every subscriber without blocking.
func (h *Hub) Publish(ev Event) {
	if ev.At.IsZero() {
		ev.At = h.now()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return
	}
	for _, ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Subscribe registers a listener. The returned cancel func must be called
// once the caller stops reading; it closes the channel.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, h.buffer)
	if h.closed {
		close(ch)
		return ch, func() {}
	}

	id := h.nextID
	h.nextID++
	h.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if sub, ok := h.subs[id]; ok {
				delete(h.subs, id)
				close(sub)
			}
		})
	}
}

// Subscribers returns the number of active subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Close closes every subscriber channel; later publishes are dropped.
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
