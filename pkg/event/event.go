// Package event provides the in-process event dispatcher that connects
// domain actions (stock adjusted, order placed) to their side effects
// (websocket broadcasts, alert jobs) without direct coupling.
package event

import (
	"sync"

	"github.com/lumicea/lumicea/pkg/logger"
	"github.com/lumicea/lumicea/pkg/workerpool"
)

// Handler is a function that receives an event payload.
type Handler func(payload interface{})

var (
	mu       sync.RWMutex
	handlers = map[string][]Handler{}

	// Async handlers run on a bounded pool so an event storm cannot
	// spawn unbounded goroutines.
	asyncPool = workerpool.New(16)
)

// Listen registers a handler for the given event name.
func Listen(event string, handler Handler) {
	mu.Lock()
	defer mu.Unlock()
	handlers[event] = append(handlers[event], handler)
}

// Fire dispatches an event synchronously to all registered listeners.
func Fire(event string, payload interface{}) {
	for _, h := range snapshot(event) {
		h(payload)
	}
}

// FireAsync dispatches the event to all listeners on the async pool and
// returns immediately. When the pool is saturated the handler runs
// inline instead of being dropped.
func FireAsync(event string, payload interface{}) {
	for _, h := range snapshot(event) {
		h := h
		if err := asyncPool.Submit(func() { h(payload) }); err != nil {
			logger.Warn("event: async pool saturated, running handler inline", "event", event)
			h(payload)
		}
	}
}

// Flush removes all listeners (useful in tests).
func Flush() {
	mu.Lock()
	defer mu.Unlock()
	handlers = map[string][]Handler{}
}

func snapshot(event string) []Handler {
	mu.RLock()
	defer mu.RUnlock()

	hs := make([]Handler, len(handlers[event]))
	copy(hs, handlers[event])
	return hs
}
