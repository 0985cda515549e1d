package ports

// Notifier delivers out-of-band messages, such as desktop notifications.
// This is a driven port (implemented by adapters).
type Notifier interface {
	// NotifyPerfectDay announces that every habit was completed today.
	NotifyPerfectDay(streak, perfectDays int) error
}
