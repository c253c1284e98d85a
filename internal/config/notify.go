package config

import (
	"sync"
)

// Observer is called when the layout configuration is reloaded.
type Observer func(cfg Layout)

// Subscription represents an active observer subscription.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes this subscription.
func (s *Subscription) Unsubscribe() {
	if s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

// Notifier manages configuration reload subscriptions. Delivery is
// synchronous: Notify calls every observer before returning.
type Notifier struct {
	mu        sync.RWMutex
	nextID    uint64
	observers map[uint64]Observer
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{
		observers: make(map[uint64]Observer),
	}
}

// Subscribe registers an observer for reload events.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextID++
	id := n.nextID
	n.observers[id] = observer
	return &Subscription{id: id, notifier: n}
}

// Notify delivers a reloaded configuration to every observer.
func (n *Notifier) Notify(cfg Layout) {
	n.mu.RLock()
	observers := make([]Observer, 0, len(n.observers))
	for _, o := range n.observers {
		observers = append(observers, o)
	}
	n.mu.RUnlock()

	for _, o := range observers {
		o(cfg)
	}
}

// Count returns the number of active subscriptions.
func (n *Notifier) Count() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.observers)
}

func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.observers, id)
}
