package events

import (
	"sync"

	"github.com/manav03panchal/dashkit/internal/logging"
)

type subscription struct {
	id      uint64
	kinds   map[Kind]bool // nil receives every kind
	handler Handler
}

// Bus is a synchronous in-process event bus. Handlers run on the publishing
// goroutine, after the bus lock is released.
type Bus struct {
	mu     sync.RWMutex
	subs   []subscription
	nextID uint64
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler for the given kinds, or for every kind when
// none are given. Returns an unsubscribe function.
func (b *Bus) Subscribe(handler Handler, kinds ...Kind) func() {
	var filter map[Kind]bool
	if len(kinds) > 0 {
		filter = make(map[Kind]bool, len(kinds))
		for _, k := range kinds {
			filter[k] = true
		}
	}

	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, kinds: filter, handler: handler})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers event to every matching subscriber in subscription order.
// A nil bus drops the event.
func (b *Bus) Publish(event Event) {
	if b == nil {
		return
	}

	b.mu.RLock()
	subs := make([]subscription, len(b.subs))
	copy(subs, b.subs)
	b.mu.RUnlock()

	for _, s := range subs {
		if s.kinds != nil && !s.kinds[event.Kind] {
			continue
		}
		b.dispatch(event, s)
	}
}

func (b *Bus) dispatch(event Event, s subscription) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error("event handler panicked",
				logging.KeyEvent, string(event.Kind),
				"panic", r,
			)
		}
	}()
	s.handler(event)
}

// Len returns the number of active subscriptions.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
