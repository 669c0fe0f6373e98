package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/robfig/cron/v3"

	"github.com/CodeGuy93/buffalo-float-site/internal/adapter/httpapi"
	"github.com/CodeGuy93/buffalo-float-site/internal/adapter/usgs"
	"github.com/CodeGuy93/buffalo-float-site/internal/adapter/weather"
	"github.com/CodeGuy93/buffalo-float-site/internal/alert"
	"github.com/CodeGuy93/buffalo-float-site/internal/catalog"
	"github.com/CodeGuy93/buffalo-float-site/internal/config"
	"github.com/CodeGuy93/buffalo-float-site/internal/domain"
	"github.com/CodeGuy93/buffalo-float-site/internal/observability"
	"github.com/CodeGuy93/buffalo-float-site/internal/refresh"
	"github.com/CodeGuy93/buffalo-float-site/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	kv, err := store.NewSQLiteKV(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}

	subscriptions := store.NewSubscriptionStore(kv, clockwork.NewRealClock(), logger)
	previousLevels := store.NewPreviousLevels(kv, logger)

	cat, err := catalog.New(domain.DefaultGauges(), cfg.DefaultGauge)
	if err != nil {
		logger.Error("failed to build gauge catalog", "error", err)
		os.Exit(1)
	}

	usgsClient := usgs.NewClient(cfg.USGSBaseURL, cfg.FetchTimeout, logger)
	weatherClient := weather.NewClient(cfg.WeatherAPIKey, cfg.WeatherBaseURL, cfg.NWSAlertsURL, cfg.FetchTimeout, logger)
	notifier := alert.NewLogNotifier(logger)
	engine := alert.New(subscriptions, previousLevels, notifier, logger, metrics)

	orchestrator := refresh.New(cat, usgsClient, weatherClient, usgsClient, engine, logger, metrics, cfg.HistoryDays)

	srv := httpapi.NewServer(cfg.HTTPAddr, cat, subscriptions, orchestrator, orchestrator, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// First cycle runs immediately so the dashboard has live data at startup.
	go func() {
		orchestrator.TryRefresh(ctx)
		metrics.SubscriptionsActive.Set(float64(subscriptions.EnabledCount()))
	}()

	scheduler := cron.New()
	_, err = scheduler.AddFunc(fmt.Sprintf("@every %s", cfg.RefreshInterval), func() {
		orchestrator.TryRefresh(ctx)
		metrics.SubscriptionsActive.Set(float64(subscriptions.EnabledCount()))
	})
	if err != nil {
		logger.Error("failed to schedule refresh", "error", err)
		os.Exit(1)
	}
	scheduler.Start()
	logger.Info("refresh scheduled", "interval", cfg.RefreshInterval)

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	stopCtx := scheduler.Stop()
	select {
	case <-stopCtx.Done():
	case <-shutdownCtx.Done():
		logger.Warn("scheduler stop timed out")
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := kv.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("shutdown complete")
}
