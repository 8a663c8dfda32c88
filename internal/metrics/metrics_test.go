package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestSetLEDColor(t *testing.T) {
	all := []string{"green", "amber", "red"}

	SetLEDColor("amber", all)

	if got := testutil.ToFloat64(ledColor.WithLabelValues("amber")); got != 1 {
		t.Errorf("amber = %v, want 1", got)
	}
	if got := testutil.ToFloat64(ledColor.WithLabelValues("green")); got != 0 {
		t.Errorf("green = %v, want 0", got)
	}

	SetLEDColor("red", all)
	if got := testutil.ToFloat64(ledColor.WithLabelValues("amber")); got != 0 {
		t.Errorf("amber after switch = %v, want 0", got)
	}
	if got := testutil.ToFloat64(ledColor.WithLabelValues("red")); got != 1 {
		t.Errorf("red after switch = %v, want 1", got)
	}
}

func TestObserveSource(t *testing.T) {
	before := testutil.ToFloat64(sourceErrors.WithLabelValues("metrics-test"))

	ObserveSource("metrics-test", 20*time.Millisecond, true, false)
	ObserveSource("metrics-test", 20*time.Millisecond, false, true)

	if got := testutil.ToFloat64(sourceErrors.WithLabelValues("metrics-test")); got != before+1 {
		t.Errorf("source errors = %v, want %v", got, before+1)
	}
	if got := testutil.ToFloat64(signalActive.WithLabelValues("metrics-test")); got != 1 {
		t.Errorf("signal active = %v, want 1", got)
	}
}

func TestRecordPollCycle(t *testing.T) {
	RecordPollCycle(true)
	if got := testutil.ToFloat64(statusDegraded); got != 1 {
		t.Errorf("degraded = %v, want 1", got)
	}
	RecordPollCycle(false)
	if got := testutil.ToFloat64(statusDegraded); got != 0 {
		t.Errorf("degraded = %v, want 0", got)
	}
}

func TestObserveHTTPRequest(t *testing.T) {
	before := testutil.CollectAndCount(httpRequests)
	ObserveHTTPRequest("/set_color", 400, 2*time.Millisecond)
	ObserveHTTPRequest("/set_color", 400, 3*time.Millisecond)

	if got := testutil.CollectAndCount(httpRequests); got != before+1 {
		t.Errorf("series = %d, want %d", got, before+1)
	}
}

func TestRecordDroppedEvent(t *testing.T) {
	before := testutil.ToFloat64(eventsDropped.WithLabelValues("color-changed"))
	RecordDroppedEvent("color-changed")
	if got := testutil.ToFloat64(eventsDropped.WithLabelValues("color-changed")); got != before+1 {
		t.Errorf("dropped = %v, want %v", got, before+1)
	}
}
