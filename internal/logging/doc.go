// Package logging hands out per-module slog loggers for statusled.
//
// Call Initialize once after the configuration is loaded, then ask for a
// logger by module name:
//
//	logging.Initialize(logging.Config{
//		Level:   "info",
//		Format:  "text",
//		Modules: map[string]string{"homeassistant": "debug"},
//	})
//	logger := logging.GetLogger("monitor")
//	logger.Info("status resolved", "color", "amber", "rule", "update-pending")
//
// Loggers obtained before Initialize keep working: they switch to the
// configured level, format and sinks when the configuration arrives.
//
// # Sinks
//
// Every record goes to up to three places:
//
//   - stdout as text or json, unless stdout is missing or already connected
//     to the journal (running under systemd)
//   - the systemd journal when its socket is reachable, with attributes as
//     upper case fields
//   - an in-memory History of the last 1000 entries, replayed by the
//     /api/logs stream, plus the callback set with SetLogCallback
//
// On a Home Assistant add-on there is no journal, and stdout is what the
// Supervisor shows in the add-on log tab. On a plain Raspberry Pi install
// the journal can be filtered by field:
//
//	journalctl -t statusled MODULE=led -p warning
//
// # Configuration
//
// In config.toml the [logging] table holds level and format; every other key
// names a module:
//
//	[logging]
//	level = "info"
//	format = "text"
//	monitor = "debug"
//	homeassistant = "warn"
package logging
