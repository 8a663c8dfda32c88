package cmd

import (
	"context"
	"fmt"

	"github.com/smazurov/statusled/internal/api"
	"github.com/smazurov/statusled/internal/config"
	"github.com/smazurov/statusled/internal/events"
	"github.com/smazurov/statusled/internal/homeassistant"
	"github.com/smazurov/statusled/internal/led"
	"github.com/smazurov/statusled/internal/metrics/exporters"
	"github.com/smazurov/statusled/internal/monitor"
	"github.com/smazurov/statusled/internal/status"
	"github.com/smazurov/statusled/internal/systemd"
	"github.com/spf13/cobra"
)

// CreateMonitorCmd creates the monitor command.
func CreateMonitorCmd() *cobra.Command {
	return newModeCmd(config.ModeMonitor, "Show Home Assistant health on the LED strip", runMonitor)
}

func runMonitor(ctx context.Context, opts *config.Options, opener led.Opener) error {
	logger, err := prepare(opts, config.ModeMonitor)
	if err != nil {
		return err
	}
	logger.Info("Monitor configuration",
		"refresh_interval", opts.Refresh(),
		"check_zigbee", opts.CheckZigbee,
		"check_updates", opts.CheckUpdates,
		"zigbee_entity_patterns", opts.ZigbeeEntityPatterns,
		"device_domains", opts.DeviceDomains,
		"supervisor_url", opts.SupervisorURL)

	client := homeassistant.NewClient(opts.SupervisorURL, opts.SupervisorToken, nil)
	var sources []monitor.Source
	if opts.CheckZigbee {
		devices, err := homeassistant.NewDeviceSource(client, opts.ZigbeeEntityPatterns, opts.DeviceDomains)
		if err != nil {
			return fmt.Errorf("device patterns: %w", err)
		}
		sources = append(sources, devices)
	}
	if opts.CheckUpdates {
		for _, s := range homeassistant.UpdateSources(client) {
			sources = append(sources, s)
		}
	}
	if len(sources) == 0 {
		logger.Warn("All checks disabled, the strip will stay green")
	}

	fallback, err := led.ParseColor(opts.FallbackColor)
	if err != nil {
		return err
	}

	driver, err := openDriver(opts, opener)
	if err != nil {
		logger.Error("Failed to initialize LED strip", "error", err)
		return err
	}
	defer closeDriver(driver, logger)

	bus := events.New()
	defer forwardLogs(bus)()

	notifier := systemd.NewNotifier()
	go notifier.RunWatchdog(ctx)

	poller := monitor.New(monitor.Config{
		Interval:     opts.Refresh(),
		StartupDelay: opts.Startup(),
		QueryTimeout: opts.Timeout(),
		Starting:     led.Blue,
	}, status.NewResolver(status.WithFallback(fallback)), driver, sources,
		monitor.WithEventBus(bus),
		monitor.WithNotifier(notifier))

	if opts.Listen != "" {
		server := api.NewServer(&api.Options{
			Driver:            driver,
			Status:            poller,
			EventBus:          bus,
			PrometheusHandler: exporters.HTTPHandler(),
		})
		errCh := serve(server, opts.Listen)
		defer stopServer(server, logger)
		go func() {
			// The API is optional in monitor mode; the loop keeps running without it.
			if err, ok := <-errCh; ok {
				logger.Error("HTTP server failed", "addr", opts.Listen, "error", err)
			}
		}()
	}

	notifier.Ready()
	err = poller.Run(ctx)
	notifier.Stopping()
	logger.Info("Shutting down")
	return err
}
