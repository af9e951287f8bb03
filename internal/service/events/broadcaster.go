// Package events fans out todo change notifications to live subscribers.
package events

import (
	"sync"

	"todoapi/internal/model/todo"
)

// Change types published by the CRUD handlers.
const (
	TypeCreated = "created"
	TypeUpdated = "updated"
	TypeDeleted = "deleted"
)

// Event describes one change to the collection.
type Event struct {
	Type string    `json:"type"`
	Todo todo.Todo `json:"todo"`
}

// Broadcaster delivers events to all current subscribers. Publishing
// never blocks: a subscriber whose buffer is full misses that event.
type Broadcaster struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
}

// NewBroadcaster returns an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[chan Event]struct{})}
}

// Subscribe registers a new subscriber and returns its event channel
// plus a cancel function. Cancel closes the channel and must be called
// exactly once when the subscriber goes away.
func (b *Broadcaster) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)

	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.subs[ch]; ok {
			delete(b.subs, ch)
			close(ch)
		}
	}
	return ch, cancel
}

// Publish sends the event to every subscriber that has buffer room.
func (b *Broadcaster) Publish(event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- event:
		default:
		}
	}
}
