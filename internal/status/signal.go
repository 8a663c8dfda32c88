// Package status turns health signals into a single display color.
//
// Resolution is a first-match walk over an ordered rule table: the first rule
// whose predicate holds decides the color and later rules are not consulted.
package status

import "strings"

// Kind identifies what a signal reports on.
type Kind int

// Signal kinds.
const (
	DeviceUnavailable Kind = iota + 1
	UpdatePending
)

// String returns the kind name used in logs and API output.
func (k Kind) String() string {
	switch k {
	case DeviceUnavailable:
		return "device_unavailable"
	case UpdatePending:
		return "update_pending"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Signal is one health fact collected in a poll cycle.
type Signal struct {
	Source  string   `json:"source"`
	Kind    Kind     `json:"kind"`
	Active  bool     `json:"active"`
	Known   bool     `json:"known"`
	Details []string `json:"details,omitempty"`
	Err     error    `json:"-"`
}

// Unknown builds the degraded signal for a source whose query failed.
// Unknown signals never count as active.
func Unknown(source string, kind Kind, err error) Signal {
	return Signal{Source: source, Kind: kind, Known: false, Err: err}
}

// Healthy reports whether s does not indicate a problem.
func (s Signal) Healthy() bool {
	return !s.Known || !s.Active
}

// Error returns the query error text, if any.
func (s Signal) Error() string {
	if s.Err == nil {
		return ""
	}
	return s.Err.Error()
}

// Signals is the set collected in one poll cycle.
type Signals []Signal

// AnyActive reports whether a known signal of kind k is active.
func (ss Signals) AnyActive(k Kind) bool {
	for _, s := range ss {
		if s.Kind == k && s.Known && s.Active {
			return true
		}
	}
	return false
}

// Details collects the details of every active signal of kind k.
func (ss Signals) Details(k Kind) []string {
	var out []string
	for _, s := range ss {
		if s.Kind == k && s.Known && s.Active {
			out = append(out, s.Details...)
		}
	}
	return out
}

// Failed returns the sources whose query failed this cycle.
func (ss Signals) Failed() []string {
	var out []string
	for _, s := range ss {
		if !s.Known {
			out = append(out, s.Source)
		}
	}
	return out
}

// AllFailed reports whether at least one source was queried and none succeeded.
func (ss Signals) AllFailed() bool {
	return len(ss) > 0 && len(ss.Failed()) == len(ss)
}

// String renders a compact summary for debug logs.
func (ss Signals) String() string {
	parts := make([]string, 0, len(ss))
	for _, s := range ss {
		state := "ok"
		switch {
		case !s.Known:
			state = "unknown"
		case s.Active:
			state = "active"
		}
		parts = append(parts, s.Source+"="+state)
	}
	return strings.Join(parts, " ")
}
