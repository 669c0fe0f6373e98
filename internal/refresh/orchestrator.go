// Package refresh drives the periodic fetch-and-update cycle that keeps the
// gauge catalog current and feeds the alert engine.
package refresh

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/CodeGuy93/buffalo-float-site/internal/alert"
	"github.com/CodeGuy93/buffalo-float-site/internal/catalog"
	"github.com/CodeGuy93/buffalo-float-site/internal/domain"
	"github.com/CodeGuy93/buffalo-float-site/internal/observability"
)

// Advisory messages surfaced with cached data. Soft, never fatal.
const (
	advisoryAllFailed  = "Unable to fetch live data - showing cached information"
	advisoryConnection = "Connection error - showing cached data"
)

// GaugeSource fetches the current reading for one site.
type GaugeSource interface {
	FetchReading(ctx context.Context, siteID string) (domain.Reading, error)
}

// HistorySource fetches the day-windowed level series for one site.
type HistorySource interface {
	FetchHistory(ctx context.Context, siteID string, days int) ([]domain.HistoricalPoint, error)
}

// WeatherSource fetches the combined weather snapshot.
type WeatherSource interface {
	Fetch(ctx context.Context) (domain.WeatherSnapshot, error)
}

// ConditionChecker evaluates alert subscriptions against the latest levels.
type ConditionChecker interface {
	CheckConditions(ctx context.Context, currentLevels map[string]float64) []alert.Notification
}

// Orchestrator runs one refresh cycle at a time. Overlapping triggers are
// dropped, not queued; the drop is observable through TryRefresh's return
// value and a counter metric.
type Orchestrator struct {
	catalog     *catalog.Catalog
	gauges      GaugeSource
	weather     WeatherSource
	history     HistorySource
	checker     ConditionChecker
	logger      *slog.Logger
	metrics     *observability.Metrics
	historyDays int

	inFlight atomic.Bool
	ready    atomic.Bool
}

// New creates an orchestrator over the given sources.
func New(cat *catalog.Catalog, gauges GaugeSource, weather WeatherSource, history HistorySource, checker ConditionChecker, logger *slog.Logger, metrics *observability.Metrics, historyDays int) *Orchestrator {
	return &Orchestrator{
		catalog:     cat,
		gauges:      gauges,
		weather:     weather,
		history:     history,
		checker:     checker,
		logger:      logger,
		metrics:     metrics,
		historyDays: historyDays,
	}
}

// CheckReadiness returns nil once the first refresh cycle has completed.
func (o *Orchestrator) CheckReadiness(_ context.Context) error {
	if !o.ready.Load() {
		return errors.New("no refresh cycle has completed yet")
	}
	return nil
}

// TryRefresh runs one cycle unless one is already in flight, in which case
// the trigger is dropped and false returned.
func (o *Orchestrator) TryRefresh(ctx context.Context) bool {
	if !o.begin() {
		return false
	}
	defer o.inFlight.Store(false)

	o.refresh(ctx)
	return true
}

// TriggerRefresh starts a cycle in the background unless one is already in
// flight. Reports whether the cycle was started.
func (o *Orchestrator) TriggerRefresh(ctx context.Context) bool {
	if !o.begin() {
		return false
	}
	go func() {
		defer o.inFlight.Store(false)
		o.refresh(ctx)
	}()
	return true
}

func (o *Orchestrator) begin() bool {
	if !o.inFlight.CompareAndSwap(false, true) {
		o.metrics.SuppressedTriggers.Inc()
		o.logger.Debug("refresh trigger dropped, cycle already in flight")
		return false
	}
	return true
}

type gaugeResults struct {
	levels        map[string]float64 // gauge ID → fresh level
	failed        int
	transportOnly bool // every failure was a transport error
	total         int
}

// refresh runs one full cycle: the three fetches issue concurrently so the
// cycle takes as long as the slowest source, results are applied on this
// goroutine, and the alert check runs strictly after all gauge updates.
func (o *Orchestrator) refresh(ctx context.Context) {
	start := time.Now()
	selected := o.catalog.Selected()

	var (
		wg          sync.WaitGroup
		gaugeRes    gaugeResults
		weatherSnap domain.WeatherSnapshot
		weatherErr  error
		histPoints  []domain.HistoricalPoint
		histErr     error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		gaugeRes = o.fetchGauges(ctx)
	}()
	go func() {
		defer wg.Done()
		weatherSnap, weatherErr = o.weather.Fetch(ctx)
	}()
	go func() {
		defer wg.Done()
		histPoints, histErr = o.history.FetchHistory(ctx, selected.SiteID, o.historyDays)
	}()
	wg.Wait()

	for gaugeID, level := range gaugeRes.levels {
		o.catalog.ApplyReading(gaugeID, level)
		o.metrics.GaugeLevel.WithLabelValues(gaugeID).Set(level)
	}
	o.catalog.SetAdvisory(advisoryFor(gaugeRes))

	if weatherErr != nil {
		// Fallback weather is never an error to the user.
		o.catalog.SetWeather(domain.FallbackWeather())
		o.metrics.FallbacksServed.WithLabelValues("weather").Inc()
		o.logger.Debug("weather unavailable, serving fallback", "error", weatherErr)
	} else {
		o.catalog.SetWeather(weatherSnap)
	}

	if histErr != nil || len(histPoints) == 0 {
		o.catalog.SetHistory(domain.FallbackHistory(selected.ID))
		o.metrics.FallbacksServed.WithLabelValues("history").Inc()
		if histErr != nil {
			o.logger.Debug("history unavailable, serving fallback", "gauge", selected.ID, "error", histErr)
		}
	} else {
		o.catalog.SetHistory(histPoints)
	}

	// Alert evaluation sees the fully applied catalog, including cached
	// levels for gauges that failed this cycle.
	if len(gaugeRes.levels) > 0 {
		fired := o.checker.CheckConditions(ctx, o.catalog.Levels())
		if len(fired) > 0 {
			o.logger.Info("alert notifications fired", "count", len(fired))
		}
	}

	o.catalog.MarkUpdated(time.Now())
	o.ready.Store(true)
	o.metrics.RefreshCycles.Inc()
	o.metrics.RefreshDuration.Observe(time.Since(start).Seconds())

	o.logger.Info("refresh cycle complete",
		"fresh_gauges", len(gaugeRes.levels),
		"failed_gauges", gaugeRes.failed,
		"duration", time.Since(start),
	)
}

// fetchGauges reads every gauge sequentially. A failed gauge keeps its
// cached level; the failure only shapes the advisory.
func (o *Orchestrator) fetchGauges(ctx context.Context) gaugeResults {
	res := gaugeResults{
		levels:        make(map[string]float64),
		transportOnly: true,
	}
	for _, g := range o.catalog.Gauges() {
		res.total++
		reading, err := o.gauges.FetchReading(ctx, g.SiteID)
		if err != nil {
			res.failed++
			if errors.Is(err, domain.ErrNoData) {
				res.transportOnly = false
			}
			o.metrics.GaugeFetchErrors.WithLabelValues(g.ID).Inc()
			o.logger.Warn("gauge fetch failed, keeping cached level", "gauge", g.ID, "site", g.SiteID, "error", err)
			continue
		}
		res.levels[g.ID] = reading.Value
	}
	return res
}

func advisoryFor(res gaugeResults) string {
	switch {
	case res.failed == 0:
		return ""
	case len(res.levels) == 0 && res.transportOnly:
		return advisoryConnection
	case len(res.levels) == 0:
		return advisoryAllFailed
	default:
		return fmt.Sprintf("Live data unavailable for %d of %d gauges - showing cached levels", res.failed, res.total)
	}
}
