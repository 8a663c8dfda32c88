package status

import (
	"sync"
	"time"

	"github.com/smazurov/statusled/internal/led"
)

// Rule maps a predicate over the cycle's signals to a color.
type Rule struct {
	Name  string
	Color led.Color
	Match func(Signals) bool
}

// Rule names reported in resolutions.
const (
	RuleDeviceUnavailable = "device-unavailable"
	RuleUpdatePending     = "update-pending"
	RuleHealthy           = "healthy"
	RuleFallback          = "fallback"
	RuleLastKnown         = "last-known"
)

// DefaultRules returns the priority table: unavailable devices beat pending
// updates, and anything else is healthy.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:  RuleDeviceUnavailable,
			Color: led.Red,
			Match: func(ss Signals) bool { return ss.AnyActive(DeviceUnavailable) },
		},
		{
			Name:  RuleUpdatePending,
			Color: led.Amber,
			Match: func(ss Signals) bool { return ss.AnyActive(UpdatePending) },
		},
	}
}

// Evaluate returns the color of the first matching rule, or healthy when none match.
func Evaluate(rules []Rule, signals Signals, healthy led.Color) (led.Color, string) {
	for _, r := range rules {
		if r.Match(signals) {
			return r.Color, r.Name
		}
	}
	return healthy, RuleHealthy
}

// Resolution is the outcome of one resolve call.
type Resolution struct {
	Color    led.Color `json:"color"`
	Rule     string    `json:"rule"`
	Degraded bool      `json:"degraded"`
	Stale    bool      `json:"stale"`
	At       time.Time `json:"at"`
}

// Resolver applies the rule table plus the failure policy:
// failed sources count as healthy; when every queried source fails the last
// resolved color is kept, or the fallback color if nothing resolved yet.
type Resolver struct {
	rules    []Rule
	healthy  led.Color
	fallback led.Color
	now      func() time.Time

	mu       sync.Mutex
	last     Resolution
	resolved bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithRules replaces the default rule table.
func WithRules(rules []Rule) Option {
	return func(r *Resolver) { r.rules = rules }
}

// WithFallback sets the color shown when no resolution has succeeded yet.
func WithFallback(c led.Color) Option {
	return func(r *Resolver) { r.fallback = c }
}

// WithHealthy sets the color used when no rule matches.
func WithHealthy(c led.Color) Option {
	return func(r *Resolver) { r.healthy = c }
}

// NewResolver creates a resolver with the default table, green as healthy and
// blue as fallback.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		rules:    DefaultRules(),
		healthy:  led.Green,
		fallback: led.Blue,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve reduces signals to one color.
func (r *Resolver) Resolve(signals Signals) Resolution {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()

	if signals.AllFailed() {
		if r.resolved {
			res := r.last
			res.Rule = RuleLastKnown
			res.Degraded = true
			res.Stale = true
			res.At = now
			return res
		}
		return Resolution{Color: r.fallback, Rule: RuleFallback, Degraded: true, Stale: true, At: now}
	}

	color, rule := Evaluate(r.rules, signals, r.healthy)
	res := Resolution{
		Color:    color,
		Rule:     rule,
		Degraded: len(signals.Failed()) > 0,
		At:       now,
	}
	r.last = res
	r.resolved = true
	return res
}

// Last returns the last successful resolution, if any.
func (r *Resolver) Last() (Resolution, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last, r.resolved
}
