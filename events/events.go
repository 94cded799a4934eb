// Package events carries notifications from the reading engine to whatever is
// presenting it
package events

import (
	"log/slog"
	"sync"
)

// Event is one of BookAdded, ReadingProgressUpdated or DailyProgressReset.
type Event interface {
	Name() string
	event()
}

// BookAdded is published after a book is added to the catalog.
type BookAdded struct {
	BookID string
}

// ReadingProgressUpdated is published after a book's current page changes.
type ReadingProgressUpdated struct {
	BookID string
	Page   int
}

// DailyProgressReset is published when the daily total rolls over to Date.
type DailyProgressReset struct {
	Date string
}

func (BookAdded) Name() string              { return "BookAdded" }
func (ReadingProgressUpdated) Name() string { return "ReadingProgressUpdated" }
func (DailyProgressReset) Name() string     { return "DailyProgressReset" }

func (BookAdded) event()              {}
func (ReadingProgressUpdated) event() {}
func (DailyProgressReset) event()     {}

// Publisher is what the engine needs to announce a change.
type Publisher interface {
	Publish(e Event)
}

// Discard drops every event.
var Discard Publisher = discard{}

type discard struct{}

func (discard) Publish(Event) {}

// Bus fans events out to subscribers. Publish never blocks: a subscriber
// whose buffer is full misses the event.
type Bus struct {
	subs   map[int]chan Event
	mu     sync.Mutex
	nextID int
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{
		subs: make(map[int]chan Event),
	}
}

// Subscribe registers a subscriber with the given buffer size. The returned
// func unsubscribes and closes the channel.
func (b *Bus) Subscribe(buffer int) (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++

	ch := make(chan Event, buffer)
	b.subs[id] = ch

	var once sync.Once

	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()

			delete(b.subs, id)
			close(ch)
		})
	}
}

func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, ch := range b.subs {
		select {
		case ch <- e:
		default:
			slog.Debug("dropped event for slow subscriber",
				slog.String("event", e.Name()),
				slog.Int("subscriber", id),
			)
		}
	}
}
