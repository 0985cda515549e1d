// Package notification provides desktop notification utilities.
package notification

import (
	"fmt"

	"github.com/gen2brain/beeep"

	"github.com/xvierd/habit-cli/internal/config"
	"github.com/xvierd/habit-cli/internal/ports"
)

// Notifier handles desktop notifications.
type Notifier struct {
	cfg  *config.NotificationConfig
	send func(title, message string, sound bool) error
}

// Ensure Notifier implements ports.Notifier.
var _ ports.Notifier = (*Notifier)(nil)

// New creates a new notifier with the given configuration.
func New(cfg *config.NotificationConfig) *Notifier {
	return &Notifier{cfg: cfg, send: desktop}
}

func desktop(title, message string, sound bool) error {
	if sound {
		return beeep.Alert(title, message, "")
	}
	return beeep.Notify(title, message, "")
}

// Notify displays a desktop notification if enabled.
func (n *Notifier) Notify(title, message string) error {
	if !n.IsEnabled() {
		return nil
	}
	return n.send(title, message, n.cfg.Sound)
}

// NotifyPerfectDay implements ports.Notifier.
func (n *Notifier) NotifyPerfectDay(streak, perfectDays int) error {
	title := "🔥 Perfect day!"
	message := fmt.Sprintf("Every habit done. Streak: %d, perfect days: %d.", streak, perfectDays)
	if streak == 1 {
		message = fmt.Sprintf("Every habit done. A new streak starts today (%d perfect days).", perfectDays)
	}
	return n.Notify(title, message)
}

// IsEnabled returns true if notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	return n.cfg != nil && n.cfg.Enabled
}
