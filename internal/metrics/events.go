package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var eventsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "statusled",
	Subsystem: "events",
	Name:      "dropped_total",
	Help:      "Events not delivered to a slow stream subscriber",
}, []string{"event"})

// RecordDroppedEvent counts one event a subscriber's buffer had no room for.
func RecordDroppedEvent(event string) {
	eventsDropped.WithLabelValues(event).Inc()
}
