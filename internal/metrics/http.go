package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var httpRequests = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "statusled",
	Subsystem: "http",
	Name:      "request_duration_seconds",
	Help:      "API request latency by route and status code",
	Buckets:   prometheus.DefBuckets,
}, []string{"route", "code"})

// ObserveHTTPRequest records one served API request. route is the
// registered path template, not the raw URL.
func ObserveHTTPRequest(route string, code int, took time.Duration) {
	httpRequests.WithLabelValues(route, strconv.Itoa(code)).Observe(took.Seconds())
}
