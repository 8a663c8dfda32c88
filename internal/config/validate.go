package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/smazurov/statusled/internal/led"
)

// ValidPins lists the GPIO pins the ws281x driver can drive.
var ValidPins = []int{10, 12, 13, 18, 19, 21, 31, 38, 40, 41, 45, 52, 53}

// spiPin is the SPI0 MOSI pin.
const spiPin = 10

// MaxLEDCount bounds the strip length.
const MaxLEDCount = 1024

// Problem describes one invalid option.
type Problem struct {
	Option string
	Value  any
	Reason string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s=%v: %s", p.Option, p.Value, p.Reason)
}

// Error reports every invalid option found by Validate.
type Error struct {
	Problems []Problem
}

func (e *Error) Error() string {
	parts := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		parts[i] = p.String()
	}
	return "CONFIG_INVALID: " + strings.Join(parts, "; ")
}

// Has reports whether option is among the problems.
func (e *Error) Has(option string) bool {
	for _, p := range e.Problems {
		if p.Option == option {
			return true
		}
	}
	return false
}

// Validate checks the options used by mode. Values are never clamped; the
// returned *Error lists every offending option.
func (o *Options) Validate(mode string) error {
	var problems []Problem
	add := func(option string, value any, reason string) {
		problems = append(problems, Problem{Option: option, Value: value, Reason: reason})
	}

	if !slices.Contains(ValidPins, o.GpioPin) {
		add("gpio_pin", o.GpioPin, fmt.Sprintf("must be one of %v", ValidPins))
	}
	if o.UseSPI && o.GpioPin != spiPin {
		add("use_spi", o.UseSPI, fmt.Sprintf("requires gpio_pin %d", spiPin))
	}
	if o.LedCount < 1 || o.LedCount > MaxLEDCount {
		add("led_count", o.LedCount, fmt.Sprintf("must be between 1 and %d", MaxLEDCount))
	}
	if o.Brightness < 1 || o.Brightness > 100 {
		add("brightness", o.Brightness, "must be between 1 and 100")
	}

	switch strings.ToLower(o.LoggingLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		add("logging.level", o.LoggingLevel, "must be debug, info, warn or error")
	}
	switch o.LoggingFormat {
	case "text", "json":
	default:
		add("logging.format", o.LoggingFormat, "must be text or json")
	}

	switch mode {
	case ModeController:
		if o.Listen == "" {
			add("listen", o.Listen, "required in controller mode")
		}
	case ModeMonitor:
		if o.RefreshInterval < 1 {
			add("refresh_interval", o.RefreshInterval, "must be at least 1 second")
		}
		if o.StartupDelay < 0 {
			add("startup_delay", o.StartupDelay, "must not be negative")
		}
		if o.QueryTimeout < 1 {
			add("query_timeout", o.QueryTimeout, "must be at least 1 second")
		}
		if _, err := led.ParseColor(o.FallbackColor); err != nil {
			add("fallback_color", o.FallbackColor, "must be one of "+strings.Join(led.Names(), ", "))
		}
		if o.CheckZigbee && !hasPattern(o.ZigbeeEntityPatterns) {
			add("zigbee_entity_patterns", o.ZigbeeEntityPatterns, "at least one pattern required when check_zigbee is set")
		}
		if u, err := url.Parse(o.SupervisorURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			add("supervisor_url", o.SupervisorURL, "must be an http(s) URL")
		}
	default:
		add("mode", mode, "unknown mode")
	}

	if len(problems) > 0 {
		return &Error{Problems: problems}
	}
	return nil
}

func hasPattern(patterns []string) bool {
	for _, p := range patterns {
		if strings.TrimSpace(p) != "" {
			return true
		}
	}
	return false
}
