package store

import (
	"sync"

	"reticlego/pkg/model"
)

// Bus fans change events out to any number of listeners.
//
// Delivery is synchronous. A change emitted while another is being delivered
// (a listener that writes) is queued and delivered once the current one has
// reached every listener, so each listener observes events in write order.
type Bus struct {
	mu         sync.Mutex
	listeners  []subscription
	nextID     int
	pending    []model.Change
	delivering bool
}

type subscription struct {
	id int
	fn Listener
}

// Subscribe attaches fn. The returned function detaches it; calling it twice is harmless.
func (b *Bus) Subscribe(fn Listener) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	// Copy on write: an in-flight delivery keeps iterating its own slice.
	next := make([]subscription, len(b.listeners), len(b.listeners)+1)
	copy(next, b.listeners)
	b.listeners = append(next, subscription{id: id, fn: fn})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		next := make([]subscription, 0, len(b.listeners))
		for _, s := range b.listeners {
			if s.id != id {
				next = append(next, s)
			}
		}
		b.listeners = next
	}
}

// Len returns the number of attached listeners.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners)
}

// Emit delivers c to every listener.
func (b *Bus) Emit(c model.Change) {
	b.mu.Lock()
	b.pending = append(b.pending, c)
	if b.delivering {
		b.mu.Unlock()
		return
	}
	b.delivering = true
	for len(b.pending) > 0 {
		next := b.pending[0]
		b.pending = b.pending[1:]
		listeners := b.listeners
		b.mu.Unlock()

		for _, s := range listeners {
			s.fn(next)
		}

		b.mu.Lock()
	}
	b.delivering = false
	b.mu.Unlock()
}
