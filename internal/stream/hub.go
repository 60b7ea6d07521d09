// Package stream carries live collection snapshots from the stores to
// whoever is watching them: websocket feeds locally, sibling server
// instances through the optional Redis bridge.
package stream

import "sync"

// Hub fans a full collection snapshot out to subscribers. Publishes are
// serialized; a callback sees snapshots in publish order and never
// concurrently with itself.
type Hub[T any] struct {
	mu   sync.Mutex
	next int
	subs map[int]func(T)
}

func NewHub[T any]() *Hub[T] {
	return &Hub[T]{subs: make(map[int]func(T))}
}

// Subscribe registers fn and returns its unsubscribe function. Unsubscribe
// is idempotent and must be called once the subscriber's scope ends, or the
// listener leaks.
func (h *Hub[T]) Subscribe(fn func(T)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.next
	h.next++
	h.subs[id] = fn

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs, id)
	}
}

// Publish delivers the snapshot to every subscriber, in registration order
// not guaranteed, under the hub lock.
func (h *Hub[T]) Publish(v T) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, fn := range h.subs {
		fn(v)
	}
}

// Len reports the current subscriber count. Stores use it to skip snapshot
// reloads nobody would see.
func (h *Hub[T]) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
