package events

import (
	"fmt"

	"github.com/smazurov/statusled/internal/metrics"
)

// SubscribeToChannel forwards events of type T into ch for select-driven
// consumers such as SSE handlers. Delivery never blocks the publisher: when
// ch is full the event is dropped and counted.
func SubscribeToChannel[T Event](bus *Bus, ch chan<- any) func() {
	var zero T
	name := eventName(zero)
	return Subscribe(bus, func(e T) {
		select {
		case ch <- e:
		default:
			metrics.RecordDroppedEvent(name)
		}
	})
}

func eventName(e Event) string {
	switch e.(type) {
	case ColorChangedEvent:
		return "color-changed"
	case StatusResolvedEvent:
		return "status-resolved"
	case LogEntryEvent:
		return "log"
	default:
		return fmt.Sprintf("type-%d", e.Type())
	}
}
