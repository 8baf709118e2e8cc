// ABOUTME: Process-wide typed event bus with named topics for decoupled UI components
// ABOUTME: Bus[T] delivers to subscribers; Hub maps event names to typed buses

package eventbus

import (
	"fmt"
	"sort"
	"sync"
)

// Handler is a callback function for events.
type Handler[T any] func(T)

// Bus is a typed event bus that delivers events to registered handlers.
type Bus[T any] struct {
	mu       sync.RWMutex
	handlers map[int]Handler[T]
	nextID   int
}

// New creates a new event bus.
func New[T any]() *Bus[T] {
	return &Bus[T]{
		handlers: make(map[int]Handler[T]),
	}
}

// Subscribe registers a handler and returns an unsubscribe function.
// The unsubscribe function is idempotent.
func (b *Bus[T]) Subscribe(handler Handler[T]) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.handlers[id] = handler
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.handlers, id)
			b.mu.Unlock()
		})
	}
}

// Publish sends an event to all registered handlers in subscription order.
// Handlers run synchronously on the caller's goroutine, outside the lock,
// so a handler may publish or unsubscribe.
func (b *Bus[T]) Publish(event T) {
	b.mu.RLock()
	ids := make([]int, 0, len(b.handlers))
	for id := range b.handlers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	snapshot := make([]Handler[T], len(ids))
	for i, id := range ids {
		snapshot[i] = b.handlers[id]
	}
	b.mu.RUnlock()

	for _, h := range snapshot {
		h(event)
	}
}

// Count returns the number of registered handlers.
func (b *Bus[T]) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers)
}

// Key names a topic and fixes its payload type.
type Key[T any] struct {
	name string
}

// NewKey declares a topic. Two keys with the same name must share T.
func NewKey[T any](name string) Key[T] {
	return Key[T]{name: name}
}

// Name returns the wire name of the topic (e.g. "editor:replace").
func (k Key[T]) Name() string { return k.name }

// Hub is a registry of typed buses keyed by event name.
type Hub struct {
	mu     sync.Mutex
	topics map[string]any
}

// NewHub creates an empty registry.
func NewHub() *Hub {
	return &Hub{topics: make(map[string]any)}
}

// Default is the process-wide hub used by the TUI.
var Default = NewHub()

func topic[T any](h *Hub, k Key[T]) *Bus[T] {
	h.mu.Lock()
	defer h.mu.Unlock()
	if existing, ok := h.topics[k.name]; ok {
		bus, ok := existing.(*Bus[T])
		if !ok {
			panic(fmt.Sprintf("eventbus: topic %q registered with a different payload type", k.name))
		}
		return bus
	}
	bus := New[T]()
	h.topics[k.name] = bus
	return bus
}

// On subscribes fn to the topic and returns its unsubscribe function.
func On[T any](h *Hub, k Key[T], fn Handler[T]) func() {
	return topic(h, k).Subscribe(fn)
}

// Emit publishes payload on the topic.
func Emit[T any](h *Hub, k Key[T], payload T) {
	topic(h, k).Publish(payload)
}

// Listeners returns the number of subscribers on the topic.
func Listeners[T any](h *Hub, k Key[T]) int {
	return topic(h, k).Count()
}

// Group collects unsubscribe functions so a component can release all of
// its subscriptions on unmount.
type Group struct {
	mu     sync.Mutex
	unsubs []func()
}

// Add records an unsubscribe function.
func (g *Group) Add(unsub func()) {
	g.mu.Lock()
	g.unsubs = append(g.unsubs, unsub)
	g.mu.Unlock()
}

// Close unsubscribes everything recorded so far.
func (g *Group) Close() {
	g.mu.Lock()
	unsubs := g.unsubs
	g.unsubs = nil
	g.mu.Unlock()
	for _, u := range unsubs {
		u()
	}
}
