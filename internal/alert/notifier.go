// Package alert watches gauge levels for threshold crossings and turns them
// into notifications.
package alert

import (
	"context"
	"log/slog"
)

// Notification is a fired alert, ready for dispatch. Tag deduplicates
// notifications at the delivery layer.
type Notification struct {
	SubscriptionID string `json:"subscriptionId"`
	Title          string `json:"title"`
	Body           string `json:"body"`
	Tag            string `json:"tag"`
}

// Notifier delivers notifications. Dispatch is fire-and-forget; a denied
// permission means deliveries are silently skipped, never an error.
type Notifier interface {
	// RequestPermission asks for the delivery capability. Best-effort; a
	// false return disables delivery for the current check only.
	RequestPermission(ctx context.Context) bool

	// Send dispatches one notification.
	Send(ctx context.Context, n Notification)
}

// LogNotifier writes notifications to the structured log. It stands in for
// a real delivery channel; permission is always granted.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a log-backed notifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) RequestPermission(_ context.Context) bool { return true }

func (n *LogNotifier) Send(_ context.Context, notification Notification) {
	n.logger.Info("notification",
		"subscription_id", notification.SubscriptionID,
		"title", notification.Title,
		"body", notification.Body,
		"tag", notification.Tag,
	)
}
