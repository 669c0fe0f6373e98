package alert

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/CodeGuy93/buffalo-float-site/internal/domain"
	"github.com/CodeGuy93/buffalo-float-site/internal/observability"
)

const notificationTag = "buffalo-river-alert"

// SubscriptionSource supplies the current subscription snapshot.
type SubscriptionSource interface {
	List() []domain.AlertSubscription
}

// LevelRecorder reads and overwrites the per-gauge previous-level records.
type LevelRecorder interface {
	Previous(gaugeID string) (float64, bool)
	Record(gaugeID string, level float64)
}

// Engine detects level-range entry and exit transitions for each enabled
// subscription and fires notifications on the edges.
type Engine struct {
	subs     SubscriptionSource
	levels   LevelRecorder
	notifier Notifier
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// New creates an alert engine.
func New(subs SubscriptionSource, levels LevelRecorder, notifier Notifier, logger *slog.Logger, metrics *observability.Metrics) *Engine {
	return &Engine{
		subs:     subs,
		levels:   levels,
		notifier: notifier,
		logger:   logger,
		metrics:  metrics,
	}
}

// CheckConditions compares the given levels against every enabled
// subscription's range and fires a notification per transition. Previous
// levels are read before any write, then overwritten once per gauge after
// all comparisons, so multiple subscriptions on one gauge see the same
// previous sample. The fired notifications are returned; delivery is
// skipped when permission is denied but evaluation still completes.
func (e *Engine) CheckConditions(ctx context.Context, currentLevels map[string]float64) []Notification {
	hasPermission := e.notifier.RequestPermission(ctx)

	var fired []Notification
	for _, sub := range e.subs.List() {
		if !sub.Enabled {
			continue
		}
		level, ok := currentLevels[sub.GaugeID]
		if !ok {
			continue
		}

		wasInRange := false
		if previous, ok := e.levels.Previous(sub.GaugeID); ok {
			wasInRange = sub.InRange(previous)
		}
		isInRange := sub.InRange(level)

		switch {
		case !wasInRange && isInRange:
			fired = append(fired, Notification{
				SubscriptionID: sub.ID,
				Title:          "Buffalo River Alert",
				Body:           fmt.Sprintf("Water level at %s is now %.1fft - perfect for floating!", sub.GaugeID, level),
				Tag:            notificationTag,
			})
		case wasInRange && !isInRange:
			fired = append(fired, Notification{
				SubscriptionID: sub.ID,
				Title:          "Buffalo River Alert",
				Body:           fmt.Sprintf("Water level at %s is now %.1fft - outside your preferred range", sub.GaugeID, level),
				Tag:            notificationTag,
			})
		}
	}

	// One write per gauge per check, after every comparison has read the
	// old sample.
	for gaugeID, level := range currentLevels {
		e.levels.Record(gaugeID, level)
	}

	if len(fired) > 0 {
		e.metrics.NotificationsFired.Add(float64(len(fired)))
	}

	for _, n := range fired {
		if !hasPermission {
			e.logger.Debug("notification suppressed, no permission", "subscription_id", n.SubscriptionID)
			continue
		}
		e.notifier.Send(ctx, n)
	}

	return fired
}
