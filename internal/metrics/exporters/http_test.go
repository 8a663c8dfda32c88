package exporters

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/smazurov/statusled/internal/metrics"
)

func TestHTTPHandler(t *testing.T) {
	handler := HTTPHandler()
	if handler == nil {
		t.Fatal("expected non-nil handler")
	}

	// Set a metric so there's something to export
	metrics.SetLEDColor("green", []string{"green", "red"})
	metrics.RecordPollCycle(false)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}

	body := w.Body.String()
	for _, name := range []string{"statusled_led_color", "statusled_poller_cycles_total"} {
		if !strings.Contains(body, name) {
			t.Errorf("expected %s in response", name)
		}
	}
}

type brokenCollector struct{ desc *prometheus.Desc }

func (b brokenCollector) Describe(ch chan<- *prometheus.Desc) { ch <- b.desc }

func (b brokenCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.NewInvalidMetric(b.desc, errors.New("strip unreadable"))
}

func TestHandlerForContinuesOnError(t *testing.T) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(brokenCollector{desc: prometheus.NewDesc("statusled_broken", "always fails", nil, nil)})
	healthy := prometheus.NewGauge(prometheus.GaugeOpts{Name: "statusled_healthy", Help: "always 1"})
	healthy.Set(1)
	reg.MustRegister(healthy)

	w := httptest.NewRecorder()
	HandlerFor(reg).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), "statusled_healthy 1") {
		t.Errorf("healthy metric missing from %q", w.Body.String())
	}
}
