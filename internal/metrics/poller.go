package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pollCycles = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "statusled",
		Subsystem: "poller",
		Name:      "cycles_total",
		Help:      "Completed status poll cycles",
	})

	sourceErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "statusled",
		Subsystem: "poller",
		Name:      "source_errors_total",
		Help:      "Failed status source queries",
	}, []string{"source"})

	sourceDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "statusled",
		Subsystem: "poller",
		Name:      "source_duration_seconds",
		Help:      "Status source query latency",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
	}, []string{"source"})

	signalActive = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "statusled",
		Subsystem: "poller",
		Name:      "signal_active",
		Help:      "Whether a status source currently reports a problem",
	}, []string{"source"})

	statusDegraded = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "statusled",
		Subsystem: "poller",
		Name:      "degraded",
		Help:      "Whether the last cycle resolved with failed sources",
	})
)

// RecordPollCycle counts a finished poll cycle and its degraded state.
func RecordPollCycle(degraded bool) {
	pollCycles.Inc()
	if degraded {
		statusDegraded.Set(1)
	} else {
		statusDegraded.Set(0)
	}
}

// ObserveSource records the latency and outcome of one source query.
func ObserveSource(source string, took time.Duration, failed, active bool) {
	sourceDuration.WithLabelValues(source).Observe(took.Seconds())
	if failed {
		sourceErrors.WithLabelValues(source).Inc()
	}
	value := 0.0
	if active {
		value = 1
	}
	signalActive.WithLabelValues(source).Set(value)
}
