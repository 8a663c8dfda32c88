// Package systemd reports service state to the service manager through
// sd_notify. Every call is a no-op when NOTIFY_SOCKET is unset.
package systemd

import (
	"context"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/smazurov/statusled/internal/logging"
)

// Notifier sends READY, STOPPING, STATUS and WATCHDOG notifications.
type Notifier struct {
	logger   logging.Logger
	watchdog time.Duration
}

// NewNotifier creates a notifier and reads the watchdog interval requested
// by the service manager, if any.
func NewNotifier() *Notifier {
	n := &Notifier{logger: logging.GetLogger("systemd")}

	interval, err := daemon.SdWatchdogEnabled(false)
	if err != nil {
		n.logger.Warn("Invalid watchdog configuration", "error", err)
	}
	n.watchdog = interval
	return n
}

// Ready tells the service manager startup is complete.
func (n *Notifier) Ready() {
	n.notify(daemon.SdNotifyReady)
}

// Stopping tells the service manager shutdown has begun.
func (n *Notifier) Stopping() {
	n.notify(daemon.SdNotifyStopping)
}

// Status publishes a one-line status shown by systemctl status.
func (n *Notifier) Status(status string) {
	n.notify("STATUS=" + status)
}

// WatchdogInterval returns the configured watchdog timeout, zero when disabled.
func (n *Notifier) WatchdogInterval() time.Duration {
	return n.watchdog
}

// RunWatchdog pings the watchdog at half the configured timeout until ctx
// ends. It returns immediately when the watchdog is disabled.
func (n *Notifier) RunWatchdog(ctx context.Context) {
	if n.watchdog <= 0 {
		return
	}

	ticker := time.NewTicker(n.watchdog / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n.notify(daemon.SdNotifyWatchdog)
		}
	}
}

func (n *Notifier) notify(state string) {
	sent, err := daemon.SdNotify(false, state)
	if err != nil {
		n.logger.Warn("sd_notify failed", "state", state, "error", err)
		return
	}
	if sent {
		n.logger.Debug("sd_notify sent", "state", state)
	}
}
