package cmd

import (
	"context"

	"github.com/smazurov/statusled/internal/api"
	"github.com/smazurov/statusled/internal/config"
	"github.com/smazurov/statusled/internal/events"
	"github.com/smazurov/statusled/internal/led"
	"github.com/smazurov/statusled/internal/metrics/exporters"
	"github.com/smazurov/statusled/internal/systemd"
	"github.com/spf13/cobra"
)

// CreateControllerCmd creates the controller command.
func CreateControllerCmd() *cobra.Command {
	return newModeCmd(config.ModeController, "Serve an HTTP API that sets the LED color", runController)
}

func runController(ctx context.Context, opts *config.Options, opener led.Opener) error {
	logger, err := prepare(opts, config.ModeController)
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

	server := api.NewServer(&api.Options{
		Driver:            driver,
		EventBus:          bus,
		EnableSetColor:    true,
		PrometheusHandler: exporters.HTTPHandler(),
	})
	errCh := serve(server, opts.Listen)
	notifier.Ready()

	select {
	case err, ok := <-errCh:
		if ok {
			logger.Error("HTTP server failed", "addr", opts.Listen, "error", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	notifier.Stopping()
	logger.Info("Shutting down")
	stopServer(server, logger)
	return nil
}
