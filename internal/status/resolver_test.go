package status

import (
	"errors"
	"fmt"
	"testing"

	"github.com/smazurov/statusled/internal/led"
)

var errTimeout = errors.New("context deadline exceeded")

func sig(source string, kind Kind, active bool) Signal {
	return Signal{Source: source, Kind: kind, Known: true, Active: active}
}

// combos enumerates every known/active/unknown state for one device and two update sources.
func combos() []Signals {
	states := []func(string, Kind) Signal{
		func(s string, k Kind) Signal { return sig(s, k, false) },
		func(s string, k Kind) Signal { return sig(s, k, true) },
		func(s string, k Kind) Signal { return Unknown(s, k, errTimeout) },
	}

	var out []Signals
	for _, dev := range states {
		for _, core := range states {
			for _, addons := range states {
				out = append(out, Signals{
					dev("devices", DeviceUnavailable),
					core("core", UpdatePending),
					addons("addons", UpdatePending),
				})
			}
		}
	}
	return out
}

func TestEvaluate_Priority(t *testing.T) {
	for i, signals := range combos() {
		t.Run(fmt.Sprintf("combo-%02d", i), func(t *testing.T) {
			got, rule := Evaluate(DefaultRules(), signals, led.Green)

			switch {
			case signals.AnyActive(DeviceUnavailable):
				if got != led.Red || rule != RuleDeviceUnavailable {
					t.Errorf("%s: got %v (%s), want red", signals, got, rule)
				}
			case signals.AnyActive(UpdatePending):
				if got != led.Amber || rule != RuleUpdatePending {
					t.Errorf("%s: got %v (%s), want amber", signals, got, rule)
				}
			default:
				if got != led.Green || rule != RuleHealthy {
					t.Errorf("%s: got %v (%s), want green", signals, got, rule)
				}
			}
		})
	}
}

func TestEvaluate_Table(t *testing.T) {
	tests := []struct {
		name    string
		signals Signals
		want    led.Color
	}{
		{
			name:    "all healthy",
			signals: Signals{sig("devices", DeviceUnavailable, false), sig("core", UpdatePending, false)},
			want:    led.Green,
		},
		{
			name:    "device down beats updates",
			signals: Signals{sig("core", UpdatePending, true), sig("devices", DeviceUnavailable, true)},
			want:    led.Red,
		},
		{
			name:    "update pending only",
			signals: Signals{sig("devices", DeviceUnavailable, false), sig("os", UpdatePending, true)},
			want:    led.Amber,
		},
		{
			name:    "unknown device signal is healthy",
			signals: Signals{Unknown("devices", DeviceUnavailable, errTimeout), sig("core", UpdatePending, false)},
			want:    led.Green,
		},
		{
			name:    "no signals",
			signals: nil,
			want:    led.Green,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, _ := Evaluate(DefaultRules(), tt.signals, led.Green); got != tt.want {
				t.Errorf("Evaluate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluate_ShortCircuits(t *testing.T) {
	called := false
	rules := []Rule{
		{Name: "first", Color: led.Red, Match: func(Signals) bool { return true }},
		{Name: "second", Color: led.Amber, Match: func(Signals) bool { called = true; return true }},
	}

	if got, rule := Evaluate(rules, nil, led.Green); got != led.Red || rule != "first" {
		t.Errorf("Evaluate() = %v (%s), want red (first)", got, rule)
	}
	if called {
		t.Error("lower priority rule evaluated after a match")
	}
}

func TestResolver_PartialFailureTreatedAsHealthy(t *testing.T) {
	r := NewResolver()

	res := r.Resolve(Signals{
		Unknown("core", UpdatePending, errTimeout),
		sig("devices", DeviceUnavailable, false),
	})

	if res.Color != led.Green {
		t.Errorf("Color = %v, want green", res.Color)
	}
	if !res.Degraded {
		t.Error("Degraded = false, want true")
	}
	if res.Stale {
		t.Error("Stale = true, want false")
	}
}

func TestResolver_AllFailedFirstCycleUsesFallback(t *testing.T) {
	r := NewResolver(WithFallback(led.White))

	res := r.Resolve(Signals{
		Unknown("core", UpdatePending, errTimeout),
		Unknown("devices", DeviceUnavailable, errTimeout),
	})

	if res.Color != led.White || res.Rule != RuleFallback {
		t.Errorf("Resolve() = %v (%s), want white (fallback)", res.Color, res.Rule)
	}
	if _, ok := r.Last(); ok {
		t.Error("Last() reported a resolution after only failed cycles")
	}
}

func TestResolver_AllFailedKeepsLastColor(t *testing.T) {
	r := NewResolver()

	first := r.Resolve(Signals{sig("core", UpdatePending, true), sig("devices", DeviceUnavailable, false)})
	if first.Color != led.Amber {
		t.Fatalf("first Resolve() = %v, want amber", first.Color)
	}

	res := r.Resolve(Signals{
		Unknown("core", UpdatePending, errTimeout),
		Unknown("devices", DeviceUnavailable, errTimeout),
	})
	if res.Color != led.Amber || res.Rule != RuleLastKnown {
		t.Errorf("Resolve() = %v (%s), want amber (last-known)", res.Color, res.Rule)
	}
	if !res.Stale || !res.Degraded {
		t.Errorf("Resolve() stale=%v degraded=%v, want both true", res.Stale, res.Degraded)
	}

	recovered := r.Resolve(Signals{sig("core", UpdatePending, false), sig("devices", DeviceUnavailable, false)})
	if recovered.Color != led.Green {
		t.Errorf("Resolve() after recovery = %v, want green", recovered.Color)
	}
}

func TestResolver_NoSourcesIsHealthy(t *testing.T) {
	r := NewResolver()
	if res := r.Resolve(nil); res.Color != led.Green || res.Degraded {
		t.Errorf("Resolve(nil) = %+v, want healthy green", res)
	}
}

func TestResolver_CustomRulesAndHealthy(t *testing.T) {
	anyUpdate := Rule{
		Name:  "any-update",
		Color: led.Red,
		Match: func(s Signals) bool { return s.AnyActive(UpdatePending) },
	}
	r := NewResolver(WithRules([]Rule{anyUpdate}), WithHealthy(led.Off))

	res := r.Resolve(Signals{sig("devices", DeviceUnavailable, true)})
	if res.Color != led.Off || res.Rule != RuleHealthy {
		t.Errorf("Resolve(device only) = %v (%s), want off (healthy)", res.Color, res.Rule)
	}

	res = r.Resolve(Signals{sig("core", UpdatePending, true)})
	if res.Color != led.Red || res.Rule != "any-update" {
		t.Errorf("Resolve(update) = %v (%s), want red (any-update)", res.Color, res.Rule)
	}
}

func TestSignals_Details(t *testing.T) {
	signals := Signals{
		{Source: "devices", Kind: DeviceUnavailable, Known: true, Active: true, Details: []string{"Bedroom blind"}},
		{Source: "addons", Kind: UpdatePending, Known: true, Active: true, Details: []string{"Add-on: Mosquitto"}},
		{Source: "core", Kind: UpdatePending, Known: true, Active: false},
	}

	if got := signals.Details(DeviceUnavailable); len(got) != 1 || got[0] != "Bedroom blind" {
		t.Errorf("Details(DeviceUnavailable) = %v", got)
	}
	if got := signals.Details(UpdatePending); len(got) != 1 || got[0] != "Add-on: Mosquitto" {
		t.Errorf("Details(UpdatePending) = %v", got)
	}
}
