// Package notifier fans a single event source out to any number of listeners.
// The TUI uses it to hear about host page edits.
package notifier

import "sync"

// Notifier broadcasts values of type T to every subscriber. Delivery is
// best effort: a listener that has not consumed the previous value misses
// the new one, since only the latest state matters to page reloads.
type Notifier[T any] struct {
	mu        sync.RWMutex
	listeners map[chan T]struct{}
	closed    bool
}

// New creates an empty Notifier.
func New[T any]() *Notifier[T] {
	return &Notifier[T]{
		listeners: make(map[chan T]struct{}),
	}
}

// Subscribe returns a channel with room for one pending value.
// Call Unsubscribe when done.
func (n *Notifier[T]) Subscribe() chan T {
	ch := make(chan T, 1)
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		close(ch)
		return ch
	}
	n.listeners[ch] = struct{}{}
	return ch
}

// Unsubscribe removes and closes a listener channel.
func (n *Notifier[T]) Unsubscribe(ch chan T) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.listeners[ch]; !ok {
		return
	}
	delete(n.listeners, ch)
	close(ch)
}

// Broadcast offers v to every listener without blocking.
func (n *Notifier[T]) Broadcast(v T) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for ch := range n.listeners {
		select {
		case ch <- v:
		default:
		}
	}
}

// Close closes every listener channel. Later subscriptions receive a closed
// channel.
func (n *Notifier[T]) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for ch := range n.listeners {
		close(ch)
		delete(n.listeners, ch)
	}
	n.closed = true
}

// Len returns the number of listeners.
func (n *Notifier[T]) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.listeners)
}
