package realtime

import (
	"context"
	"sync"
)

// MemoryFeed is an in-process feed used in tests and single-node setups.
type MemoryFeed struct {
	mu        sync.RWMutex
	nextID    int
	listeners map[string]map[int]subscriber
}

type subscriber struct {
	filter Filter
	fn     Handler
}

// NewMemoryFeed creates an empty feed.
func NewMemoryFeed() *MemoryFeed {
	return &MemoryFeed{listeners: make(map[string]map[int]subscriber)}
}

// Publish synchronously delivers to matching subscribers.
func (f *MemoryFeed) Publish(_ context.Context, ev ChangeEvent) error {
	f.mu.RLock()
	subs := make([]subscriber, 0, len(f.listeners[ev.Table]))
	for _, sub := range f.listeners[ev.Table] {
		subs = append(subs, sub)
	}
	f.mu.RUnlock()

	for _, sub := range subs {
		if sub.filter.Matches(ev) {
			sub.fn(ev)
		}
	}
	return nil
}

// Subscribe registers a handler for the table.
func (f *MemoryFeed) Subscribe(_ context.Context, table string, filter Filter, fn Handler) (*Subscription, error) {
	f.mu.Lock()
	if f.listeners[table] == nil {
		f.listeners[table] = make(map[int]subscriber)
	}
	id := f.nextID
	f.nextID++
	f.listeners[table][id] = subscriber{filter: filter, fn: fn}
	f.mu.Unlock()

	return newSubscription(func() {
		f.mu.Lock()
		delete(f.listeners[table], id)
		f.mu.Unlock()
	}), nil
}
