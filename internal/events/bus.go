// Package events carries color changes, resolved statuses and log lines
// between the poller, the HTTP API and its SSE streams.
package events

import (
	"github.com/kelindar/event"
)

// Bus is an in-process publish/subscribe bus. Delivery is asynchronous and
// ordered per subscriber.
type Bus struct {
	dispatcher *event.Dispatcher
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{dispatcher: event.NewDispatcher()}
}

// Publish delivers ev to the subscribers of its concrete type. Publishing on
// a nil bus does nothing.
func (b *Bus) Publish(ev Event) {
	if b == nil {
		return
	}
	switch e := ev.(type) {
	case ColorChangedEvent:
		event.Publish(b.dispatcher, e)
	case StatusResolvedEvent:
		event.Publish(b.dispatcher, e)
	case LogEntryEvent:
		event.Publish(b.dispatcher, e)
	}
}

// Subscribe calls fn for every event of type T published on b and returns
// the function that cancels the subscription.
func Subscribe[T Event](b *Bus, fn func(T)) func() {
	return event.Subscribe(b.dispatcher, fn)
}
