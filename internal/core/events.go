package core

import (
	"sync"
	"time"
)

// EventReason says why a view changed.
type EventReason string

const (
	// ReasonMutation follows a committed change to a collection.
	ReasonMutation    EventReason = "mutation"
	ReasonFilter      EventReason = "filter"
	ReasonSort        EventReason = "sort"
	ReasonPreferences EventReason = "preferences"
)

// Persistent reports whether the event follows a change to stored state
// rather than to view settings.
func (r EventReason) Persistent() bool {
	return r == ReasonMutation || r == ReasonPreferences
}

// ViewEvent signals that the view of Entity changed. Entity is empty for
// preference changes.
type ViewEvent struct {
	Revision uint64
	Entity   EntityType
	Reason   EventReason
	At       time.Time
}

type notifier struct {
	mu   sync.Mutex
	next int
	subs map[int]chan ViewEvent
}

// publish never blocks; a subscriber whose buffer is full misses the event.
func (n *notifier) publish(ev ViewEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (n *notifier) subscribe(buffer int) (<-chan ViewEvent, func()) {
	if buffer < 1 {
		buffer = 1
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.subs == nil {
		n.subs = make(map[int]chan ViewEvent)
	}
	id := n.next
	n.next++
	ch := make(chan ViewEvent, buffer)
	n.subs[id] = ch
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			n.mu.Lock()
			defer n.mu.Unlock()
			delete(n.subs, id)
			close(ch)
		})
	}
}

// Subscribe returns a channel receiving a ViewEvent after every committed
// change and every filter or sort update, and a cancel func that closes it.
// Slow consumers miss events rather than stall the model; re-reading the
// views after any event is always sufficient.
func (m *Model) Subscribe(buffer int) (<-chan ViewEvent, func()) {
	return m.events.subscribe(buffer)
}
