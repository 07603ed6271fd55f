// Package event is the in-process dispatcher for catalog change events.
//
// Services fire an event after each successful write (product created,
// category deleted, order status changed) and decoupled listeners react:
// cache invalidation, the websocket hub, audit logging. Async dispatch runs
// through a bounded worker pool so a write burst cannot spawn unbounded
// goroutines.
package event

import (
	"sync"

	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/logger"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/workerpool"
)

// Event names fired by the application services.
const (
	ProductCreated     = "product.created"
	ProductUpdated     = "product.updated"
	ProductDeleted     = "product.deleted"
	CategoryCreated    = "category.created"
	CategoryUpdated    = "category.updated"
	CategoryDeleted    = "category.deleted"
	OrderPlaced        = "order.placed"
	OrderStatusChanged = "order.status_changed"
)

// Handler receives an event payload.
type Handler func(payload interface{})

var (
	mu       sync.RWMutex
	handlers = map[string][]Handler{}

	poolOnce sync.Once
	pool     *workerpool.Pool
)

func asyncPool() *workerpool.Pool {
	poolOnce.Do(func() { pool = workerpool.New(8) })
	return pool
}

// Listen registers a handler for the given event name.
func Listen(name string, h Handler) {
	mu.Lock()
	defer mu.Unlock()
	handlers[name] = append(handlers[name], h)
}

// Fire dispatches an event synchronously to all registered listeners.
func Fire(name string, payload interface{}) {
	for _, h := range snapshot(name) {
		h(payload)
	}
}

// FireAsync dispatches the event to all listeners through the worker pool
// and returns immediately. When the pool is saturated the handler is dropped
// with a warning rather than blocking the write path.
func FireAsync(name string, payload interface{}) {
	for _, h := range snapshot(name) {
		h := h
		if err := asyncPool().Submit(func() { h(payload) }); err != nil {
			logger.Warn("event handler dropped", "event", name, "error", err)
		}
	}
}

// Flush removes all listeners. Tests use it to isolate subscriptions.
func Flush() {
	mu.Lock()
	defer mu.Unlock()
	handlers = map[string][]Handler{}
}

func snapshot(name string) []Handler {
	mu.RLock()
	defer mu.RUnlock()
	hs := make([]Handler, len(handlers[name]))
	copy(hs, handlers[name])
	return hs
}
