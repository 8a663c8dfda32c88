package led

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/smazurov/statusled/internal/metrics"
)

const (
	defaultRenderAttempts = 3
	defaultRenderDelay    = 20 * time.Millisecond
)

// Driver owns the LED strip and the color it currently shows.
// All writes are serialized; a write commits to hardware before the next starts.
type Driver struct {
	open   Opener
	logger *slog.Logger

	renderAttempts uint
	renderDelay    time.Duration

	mu      sync.Mutex
	strip   Strip
	pin     int
	current Color
	applied bool
}

// NewDriver creates an uninitialized driver that opens its strip with open.
func NewDriver(open Opener, logger *slog.Logger) *Driver {
	return &Driver{
		open:           open,
		logger:         logger,
		renderAttempts: defaultRenderAttempts,
		renderDelay:    defaultRenderDelay,
	}
}

// Initialize opens the strip on pin with pixelCount pixels and a global
// brightness percentage (1-100). Failures are returned as *InitError.
func (d *Driver) Initialize(pin, pixelCount, brightness int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	fail := func(cause error) error {
		return &InitError{Pin: pin, Count: pixelCount, Cause: cause}
	}

	if d.strip != nil {
		return fail(ErrAlreadyInitialized)
	}
	if pixelCount < 1 {
		return fail(errors.New("pixel count must be positive"))
	}
	if brightness < 1 || brightness > 100 {
		return fail(errors.New("brightness must be within 1-100"))
	}

	strip, err := d.open(StripConfig{
		Pin:        pin,
		Count:      pixelCount,
		Brightness: ScaleBrightness(brightness),
	})
	if err != nil {
		return fail(err)
	}
	if err := strip.Init(); err != nil {
		strip.Fini()
		return fail(err)
	}

	d.strip = strip
	d.pin = pin
	metrics.SetLEDInitialized(true)
	d.logger.Info("LED strip initialized", "gpio_pin", pin, "pixels", pixelCount, "brightness", brightness)
	return nil
}

// SetColor writes c to every pixel and commits the frame in one render.
// Failed renders are retried; if all attempts fail a *WriteError is returned
// and the previously displayed color stays current.
func (d *Driver) SetColor(c Color) error {
	_, _, err := d.Swap(c)
	return err
}

// Swap is SetColor that also returns the color it replaced. The boolean is
// false when nothing had been shown yet. Both are read under the same lock
// as the write, so concurrent callers each see the color they overwrote.
func (d *Driver) Swap(c Color) (Color, bool, error) {
	if !c.Valid() {
		return Off, false, &WriteError{Color: c, Cause: ErrUnknownColor}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.strip == nil {
		return Off, false, &WriteError{Color: c, Cause: ErrNotInitialized}
	}
	prev, had := d.current, d.applied

	value := c.Uint32()
	for i := 0; i < d.strip.Count(); i++ {
		d.strip.SetLED(i, value)
	}

	err := retry.Do(
		d.strip.Render,
		retry.Attempts(d.renderAttempts),
		retry.Delay(d.renderDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(attempt uint, err error) {
			metrics.RecordLEDWrite(metrics.ResultRetry)
			d.logger.Debug("Retrying LED render", "attempt", attempt+1, "color", c.String(), "error", err)
		}),
	)
	if err != nil {
		metrics.RecordLEDWrite(metrics.ResultError)
		return prev, had, &WriteError{Color: c, Cause: err}
	}

	metrics.RecordLEDWrite(metrics.ResultOK)
	metrics.SetLEDColor(c.String(), Names())

	if !d.applied || d.current != c {
		d.logger.Info("LED color set", "color", c.String())
	}
	d.current = c
	d.applied = true
	return prev, had, nil
}

// Current returns the last successfully applied color. The boolean is false
// until the first successful SetColor.
func (d *Driver) Current() (Color, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current, d.applied
}

// Initialized reports whether Initialize completed.
func (d *Driver) Initialized() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.strip != nil
}

// Close turns the strip off and releases the hardware.
func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.strip == nil {
		return nil
	}

	for i := 0; i < d.strip.Count(); i++ {
		d.strip.SetLED(i, Off.Uint32())
	}
	err := d.strip.Render()
	d.strip.Fini()
	d.strip = nil
	d.current = Off
	d.applied = false
	metrics.SetLEDInitialized(false)

	d.logger.Info("LED strip released", "gpio_pin", d.pin)
	if err != nil {
		return &WriteError{Color: Off, Cause: err}
	}
	return nil
}
