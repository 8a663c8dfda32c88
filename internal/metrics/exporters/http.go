// Package exporters serves the collected metrics over HTTP.
package exporters

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smazurov/statusled/internal/logging"
)

// HTTPHandler serves every promauto-registered collector from the default
// registry. Collection errors are logged and the remaining metrics are still
// served.
func HTTPHandler() http.Handler {
	return HandlerFor(prometheus.DefaultGatherer)
}

// HandlerFor serves the metrics of g.
func HandlerFor(g prometheus.Gatherer) http.Handler {
	logger := logging.GetLogger("metrics")
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{
		ErrorLog:          promLogger{logger},
		ErrorHandling:     promhttp.ContinueOnError,
		EnableOpenMetrics: true,
	})
}

type promLogger struct {
	logger logging.Logger
}

func (l promLogger) Println(v ...any) {
	l.logger.Warn("metrics collection failed", "error", fmt.Sprint(v...))
}
