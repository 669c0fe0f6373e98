package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// refresh and alert paths.
type Metrics struct {
	RefreshCycles      prometheus.Counter
	SuppressedTriggers prometheus.Counter
	RefreshDuration    prometheus.Histogram

	GaugeFetchErrors *prometheus.CounterVec // labels: gauge
	GaugeLevel       *prometheus.GaugeVec   // labels: gauge
	FallbacksServed  *prometheus.CounterVec // labels: source={weather,history}

	NotificationsFired  prometheus.Counter
	SubscriptionsActive prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RefreshCycles,
		m.SuppressedTriggers,
		m.RefreshDuration,
		m.GaugeFetchErrors,
		m.GaugeLevel,
		m.FallbacksServed,
		m.NotificationsFired,
		m.SubscriptionsActive,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RefreshCycles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "riverd",
			Name:      "refresh_cycles_total",
			Help:      "Total completed refresh cycles.",
		}),
		SuppressedTriggers: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "riverd",
			Name:      "refresh_suppressed_triggers_total",
			Help:      "Refresh triggers dropped because a cycle was already in flight.",
		}),
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "riverd",
			Name:      "refresh_duration_seconds",
			Help:      "Duration of a complete gauge/weather/history refresh cycle.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		GaugeFetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "riverd",
			Name:      "gauge_fetch_errors_total",
			Help:      "Failed gauge reading fetches by gauge.",
		}, []string{"gauge"}),
		GaugeLevel: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "riverd",
			Name:      "gauge_level_feet",
			Help:      "Latest observed level per gauge in feet.",
		}, []string{"gauge"}),
		FallbacksServed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "riverd",
			Name:      "fallbacks_served_total",
			Help:      "Times baked-in fallback data replaced a live fetch, by source.",
		}, []string{"source"}),
		NotificationsFired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "riverd",
			Name:      "notifications_fired_total",
			Help:      "Threshold-crossing notifications fired.",
		}),
		SubscriptionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "riverd",
			Name:      "subscriptions_active",
			Help:      "Number of enabled alert subscriptions.",
		}),
	}
}
