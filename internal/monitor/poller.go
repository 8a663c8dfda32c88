// Package monitor runs the status polling loop: query every source, resolve
// the signals to one color and write it to the strip when it changed.
package monitor

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/smazurov/statusled/internal/events"
	"github.com/smazurov/statusled/internal/led"
	"github.com/smazurov/statusled/internal/logging"
	"github.com/smazurov/statusled/internal/metrics"
	"github.com/smazurov/statusled/internal/status"
)

// Source produces one status signal per cycle. A failed query must be
// reported as an unknown signal, never as a panic or a blocked call.
type Source interface {
	Name() string
	Check(ctx context.Context) status.Signal
}

// LED is the part of led.Driver the poller writes through.
type LED interface {
	SetColor(c led.Color) error
	Current() (led.Color, bool)
}

// Notifier receives a one-line status after each color change.
type Notifier interface {
	Status(status string)
}

// Config holds the loop timing.
type Config struct {
	Interval     time.Duration
	StartupDelay time.Duration
	QueryTimeout time.Duration
	// Starting is shown before the first cycle.
	Starting led.Color
}

// Snapshot is the outcome of the most recent cycle.
type Snapshot struct {
	Resolution status.Resolution
	Signals    status.Signals
}

// Poller drives the monitor loop. Cycles run sequentially on the caller's
// goroutine; Last may be called concurrently.
type Poller struct {
	cfg      Config
	sources  []Source
	resolver *status.Resolver
	led      LED
	bus      *events.Bus
	notifier Notifier
	logger   *slog.Logger

	mu       sync.RWMutex
	last     Snapshot
	hasLast  bool
	lastRule string
}

// Option configures a Poller.
type Option func(*Poller)

// WithEventBus publishes cycle results on bus.
func WithEventBus(bus *events.Bus) Option {
	return func(p *Poller) { p.bus = bus }
}

// WithNotifier reports color changes to n.
func WithNotifier(n Notifier) Option {
	return func(p *Poller) { p.notifier = n }
}

// New creates a poller over sources.
func New(cfg Config, resolver *status.Resolver, strip LED, sources []Source, opts ...Option) *Poller {
	p := &Poller{
		cfg:      cfg,
		sources:  sources,
		resolver: resolver,
		led:      strip,
		logger:   logging.GetLogger("monitor"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run shows the starting color, waits the startup delay, then polls until
// ctx is cancelled.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Info("Setting startup indicator", "color", p.cfg.Starting)
	p.apply(p.cfg.Starting)

	if p.cfg.StartupDelay > 0 {
		p.logger.Info("Waiting for Home Assistant to be ready", "delay", p.cfg.StartupDelay)
		timer := time.NewTimer(p.cfg.StartupDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}
	}

	p.logger.Info("Starting status monitoring loop",
		"interval", p.cfg.Interval,
		"sources", len(p.sources))

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	for {
		p.Cycle(ctx)

		select {
		case <-ctx.Done():
			p.logger.Info("Status monitoring stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// Cycle runs one poll: collect, resolve, maybe write, publish.
func (p *Poller) Cycle(ctx context.Context) status.Resolution {
	signals := p.collect(ctx)
	res := p.resolver.Resolve(signals)
	metrics.RecordPollCycle(res.Degraded)

	p.logTransition(res, signals)
	p.apply(res.Color)

	p.mu.Lock()
	p.last = Snapshot{Resolution: res, Signals: signals}
	p.hasLast = true
	p.mu.Unlock()

	p.publishResolved(res, signals)
	return res
}

// Last returns the snapshot of the most recent cycle.
func (p *Poller) Last() (Snapshot, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.last, p.hasLast
}

func (p *Poller) collect(ctx context.Context) status.Signals {
	signals := make(status.Signals, 0, len(p.sources))
	for _, src := range p.sources {
		qctx, cancel := context.WithTimeout(ctx, p.cfg.QueryTimeout)
		start := time.Now()
		sig := src.Check(qctx)
		took := time.Since(start)
		cancel()

		if sig.Source == "" {
			sig.Source = src.Name()
		}
		metrics.ObserveSource(sig.Source, took, !sig.Known, sig.Known && sig.Active)

		if !sig.Known {
			p.logger.Warn("Status query failed, treating as healthy",
				"source", sig.Source,
				"took", took,
				"error", sig.Error())
		}
		signals = append(signals, sig)
	}
	return signals
}

// apply writes c unless the strip already shows it. A failed write leaves the
// previous color; the next cycle tries again.
func (p *Poller) apply(c led.Color) {
	prev, shown := p.led.Current()
	if shown && prev == c {
		return
	}

	if err := p.led.SetColor(c); err != nil {
		p.logger.Error("Failed to update LED", "color", c, "error", err)
		return
	}

	previous := ""
	if shown {
		previous = prev.String()
	}
	p.logger.Debug("LED updated", "from", previous, "to", c)

	if p.notifier != nil {
		p.notifier.Status("LED " + c.String())
	}
	if p.bus != nil {
		p.bus.Publish(events.ColorChangedEvent{
			Color:     c.String(),
			Previous:  previous,
			Origin:    "monitor",
			Timestamp: time.Now().Format(time.RFC3339),
		})
	}
}

// logTransition logs rule changes together with what caused them.
func (p *Poller) logTransition(res status.Resolution, signals status.Signals) {
	p.mu.RLock()
	prevRule := p.lastRule
	p.mu.RUnlock()

	if res.Rule == prevRule {
		p.logger.Debug("Status unchanged",
			"color", res.Color,
			"rule", res.Rule,
			"signals", signals.String())
		return
	}

	p.logger.Info("Status changed", "from", orNone(prevRule), "to", res.Rule, "color", res.Color)

	if devices := signals.Details(status.DeviceUnavailable); len(devices) > 0 {
		p.logger.Warn("Device issues detected", "unavailable", strings.Join(devices, ", "))
	}
	if updates := signals.Details(status.UpdatePending); len(updates) > 0 {
		p.logger.Info("Updates available", "pending", strings.Join(updates, ", "))
	}
	if res.Stale {
		p.logger.Warn("All status queries failed", "failed", strings.Join(signals.Failed(), ", "))
	}

	p.mu.Lock()
	p.lastRule = res.Rule
	p.mu.Unlock()
}

func (p *Poller) publishResolved(res status.Resolution, signals status.Signals) {
	if p.bus == nil {
		return
	}
	p.bus.Publish(events.StatusResolvedEvent{
		Color:     res.Color.String(),
		Rule:      res.Rule,
		Degraded:  res.Degraded,
		Stale:     res.Stale,
		Signals:   SignalStates(signals),
		Timestamp: res.At.Format(time.RFC3339),
	})
}

// SignalStates converts signals to their wire form.
func SignalStates(signals status.Signals) []events.SignalState {
	states := make([]events.SignalState, len(signals))
	for i, s := range signals {
		states[i] = events.SignalState{
			Source:  s.Source,
			Kind:    s.Kind.String(),
			Active:  s.Active,
			Known:   s.Known,
			Details: s.Details,
			Error:   s.Error(),
		}
	}
	return states
}

func orNone(rule string) string {
	if rule == "" {
		return "none"
	}
	return rule
}
