package config

import (
	"time"
)

// Modes select which subcommand an option belongs to.
const (
	ModeMonitor    = "monitor"
	ModeController = "controller"
)

// Options for the CLI - flat structure with toml, json and env mapping.
// The json key is the Home Assistant add-on options.json name.
type Options struct {
	Config string `help:"Path to configuration file (.toml, or add-on options .json)" short:"c" default:"config.toml"`

	// LED settings
	GpioPin    int  `help:"GPIO pin driving the strip" default:"18" toml:"led.gpio_pin" json:"gpio_pin" env:"GPIO_PIN"`
	LedCount   int  `help:"Number of pixels on the strip" default:"8" toml:"led.count" json:"led_count" env:"LED_COUNT"`
	Brightness int  `help:"Brightness in percent (1-100)" default:"50" toml:"led.brightness" json:"brightness" env:"BRIGHTNESS"`
	UseSPI     bool `help:"Drive the strip through SPI (requires GPIO 10)" flag:"use-spi" default:"false" toml:"led.use_spi" json:"use_spi" env:"USE_SPI"`
	Simulate   bool `help:"Use the simulated strip even on supported hardware" default:"false" toml:"led.simulate" json:"simulate" env:"SIMULATE"`

	// Server settings
	Listen string `help:"HTTP listen address (empty disables the API in monitor mode)" default:":8099" toml:"server.listen" json:"listen" env:"LISTEN"`

	// Monitor settings
	RefreshInterval      int      `help:"Seconds between status checks" mode:"monitor" default:"30" toml:"monitor.refresh_interval" json:"refresh_interval" env:"REFRESH_INTERVAL"`
	CheckZigbee          bool     `help:"Watch device entities for unavailability" mode:"monitor" default:"true" toml:"monitor.check_zigbee" json:"check_zigbee" env:"CHECK_ZIGBEE"`
	CheckUpdates         bool     `help:"Watch core, OS, supervisor and add-on updates" mode:"monitor" default:"true" toml:"monitor.check_updates" json:"check_updates" env:"CHECK_UPDATES"`
	ZigbeeEntityPatterns []string `help:"Entity id patterns of monitored devices (* wildcard)" mode:"monitor" default:"lumi,zha,zigbee" toml:"monitor.zigbee_entity_patterns" json:"zigbee_entity_patterns" env:"ZIGBEE_ENTITY_PATTERNS"`
	DeviceDomains        []string `help:"Entity domains of monitored devices (empty for all)" mode:"monitor" default:"cover" toml:"monitor.device_domains" json:"device_domains" env:"DEVICE_DOMAINS"`
	StartupDelay         int      `help:"Seconds to wait for Home Assistant before the first check" mode:"monitor" default:"10" toml:"monitor.startup_delay" json:"startup_delay" env:"STARTUP_DELAY"`
	QueryTimeout         int      `help:"Seconds before a status query is abandoned" mode:"monitor" default:"10" toml:"monitor.query_timeout" json:"query_timeout" env:"QUERY_TIMEOUT"`
	FallbackColor        string   `help:"Color shown when no status has ever been resolved" mode:"monitor" default:"blue" toml:"monitor.fallback_color" json:"fallback_color" env:"FALLBACK_COLOR"`

	// Supervisor settings
	SupervisorURL   string `help:"Supervisor API base URL" flag:"supervisor-url" mode:"monitor" default:"http://supervisor" toml:"supervisor.url" json:"supervisor_url" env:"SUPERVISOR_URL"`
	SupervisorToken string `toml:"supervisor.token" json:"-" env:"SUPERVISOR_TOKEN" envalias:"SUPERVISOR_TOKEN"`

	// Logging settings
	LoggingLevel  string `help:"Global logging level (debug, info, warn, error)" flag:"log-level" default:"info" toml:"logging.level" json:"log_level" env:"LOGGING_LEVEL"`
	LoggingFormat string `help:"Logging format (text, json)" flag:"log-format" default:"text" toml:"logging.format" json:"log_format" env:"LOGGING_FORMAT"`
}

// Refresh returns the polling interval.
func (o *Options) Refresh() time.Duration {
	return time.Duration(o.RefreshInterval) * time.Second
}

// Startup returns the delay before the first poll.
func (o *Options) Startup() time.Duration {
	return time.Duration(o.StartupDelay) * time.Second
}

// Timeout returns the per-query timeout.
func (o *Options) Timeout() time.Duration {
	return time.Duration(o.QueryTimeout) * time.Second
}
