// Package cmd wires the statusled subcommands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/smazurov/statusled/internal/api"
	"github.com/smazurov/statusled/internal/config"
	"github.com/smazurov/statusled/internal/events"
	"github.com/smazurov/statusled/internal/led"
	"github.com/smazurov/statusled/internal/logging"
	"github.com/smazurov/statusled/internal/version"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

// NewRootCmd builds the statusled command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "statusled",
		Short:         "Drive a WS281X status LED strip",
		Long:          "Shows Home Assistant health on an addressable RGB LED strip (monitor) or exposes an HTTP API to set its color (controller).",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(CreateMonitorCmd(), CreateControllerCmd(), CreateVersionCmd())
	return root
}

// Execute runs the command tree and returns the process exit code.
func Execute(ctx context.Context) int {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "statusled:", err)
		return 1
	}
	return 0
}

// newModeCmd returns a subcommand whose flags are bound to a fresh Options
// for mode. run receives the options after file and env loading; a nil
// opener selects the board's strip once logging is configured.
func newModeCmd(mode, short string, run func(ctx context.Context, opts *config.Options, opener led.Opener) error) *cobra.Command {
	opts := &config.Options{}

	cmd := &cobra.Command{
		Use:   mode,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.LoadConfig(opts, cmd); err != nil {
				return err
			}
			return run(cmd.Context(), opts, nil)
		},
	}

	if err := config.RegisterFlags(cmd.Flags(), opts, mode); err != nil {
		panic(err)
	}
	return cmd
}

// prepare validates opts and initializes logging. It runs before any
// hardware access so a bad option never touches the strip.
func prepare(opts *config.Options, mode string) (*slog.Logger, error) {
	if err := opts.Validate(mode); err != nil {
		return nil, err
	}

	loggingConfig := config.LoadLoggingConfig(opts.Config)
	loggingConfig.Level = opts.LoggingLevel
	loggingConfig.Format = opts.LoggingFormat
	logging.Initialize(loggingConfig)

	logger := logging.GetLogger("main")
	logger.Info("statusled starting",
		"mode", mode,
		"version", version.Short(),
		"gpio_pin", opts.GpioPin,
		"led_count", opts.LedCount,
		"use_spi", opts.UseSPI,
		"brightness", opts.Brightness)
	return logger, nil
}

// openDriver initializes the strip. It must run after prepare so the board
// detection lines use the configured log format.
func openDriver(opts *config.Options, opener led.Opener) (*led.Driver, error) {
	if opener == nil {
		opener = led.NewOpener(logging.GetLogger("led"), opts.Simulate)
	}
	driver := led.NewDriver(opener, logging.GetLogger("led"))
	if err := driver.Initialize(opts.GpioPin, opts.LedCount, opts.Brightness); err != nil {
		return nil, err
	}
	return driver, nil
}

// forwardLogs publishes every log line on bus for the /api/logs stream.
func forwardLogs(bus *events.Bus) func() {
	logging.SetLogCallback(func(entry logging.LogEntry) {
		bus.Publish(api.LogEvent(entry))
	})
	return func() { logging.SetLogCallback(nil) }
}

// serve runs server on addr in the background. The returned channel yields
// the listener error, if any, and is closed when the server stops.
func serve(server *api.Server, addr string) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		if err := server.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	return errCh
}

func stopServer(server *api.Server, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		logger.Error("Error stopping HTTP server", "error", err)
	}
}

func closeDriver(driver *led.Driver, logger *slog.Logger) {
	if err := driver.Close(); err != nil {
		logger.Error("Failed to turn off LED strip", "error", err)
	}
}
