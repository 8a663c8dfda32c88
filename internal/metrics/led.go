// Package metrics provides Prometheus metrics for the LED driver and the status poller.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Write outcomes used as the result label of led_writes_total.
const (
	ResultOK    = "ok"
	ResultError = "error"
	ResultRetry = "retry"
)

var (
	ledWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "statusled",
		Subsystem: "led",
		Name:      "writes_total",
		Help:      "LED strip render attempts by result",
	}, []string{"result"})

	ledColor = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "statusled",
		Subsystem: "led",
		Name:      "color",
		Help:      "Currently displayed color (1 for the active color, 0 otherwise)",
	}, []string{"color"})

	ledInitialized = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "statusled",
		Subsystem: "led",
		Name:      "initialized",
		Help:      "Whether the LED strip completed initialization",
	})
)

// RecordLEDWrite counts a render attempt.
func RecordLEDWrite(result string) {
	ledWrites.WithLabelValues(result).Inc()
}

// SetLEDColor marks color as the displayed one among all known names.
func SetLEDColor(color string, all []string) {
	for _, name := range all {
		value := 0.0
		if name == color {
			value = 1
		}
		ledColor.WithLabelValues(name).Set(value)
	}
}

// SetLEDInitialized records the driver initialization state.
func SetLEDInitialized(initialized bool) {
	if initialized {
		ledInitialized.Set(1)
		return
	}
	ledInitialized.Set(0)
}
