package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/Francescodib/armonia-scheduler/internal/api/router"
	"github.com/Francescodib/armonia-scheduler/internal/appointments"
	"github.com/Francescodib/armonia-scheduler/internal/center"
	appconfig "github.com/Francescodib/armonia-scheduler/internal/config"
	"github.com/Francescodib/armonia-scheduler/internal/observability/metrics"
	"github.com/Francescodib/armonia-scheduler/internal/schedule"
	"github.com/Francescodib/armonia-scheduler/internal/treatments"
	"github.com/Francescodib/armonia-scheduler/pkg/logging"
)

func main() {
	// Load .env if present; real environments set variables directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting armonia-scheduler API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	registry := prometheus.NewRegistry()
	schedMetrics := metrics.NewSchedulingMetrics(registry)

	// Load center settings, from Redis when configured.
	settings := center.DefaultSettings()
	var settingsStore *center.Store
	if cfg.RedisAddr != "" {
		opts := &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		client := redis.NewClient(opts)
		settingsStore = center.NewStore(client, cfg.SettingsKey)

		loaded, err := settingsStore.Get(context.Background())
		if err != nil {
			logger.Error("failed to load settings", "error", err)
			os.Exit(1)
		}
		settings = loaded
	} else {
		logger.Info("redis not configured, using default settings")
	}
	if cfg.SlotDurationMinutes > 0 {
		settings.SlotDurationMinutes = cfg.SlotDurationMinutes
	}
	if cfg.Timezone != "" {
		settings.Timezone = cfg.Timezone
	}
	if err := settings.Validate(); err != nil {
		logger.Error("invalid settings", "error", err)
		os.Exit(1)
	}

	catalog := treatments.DefaultCatalog()
	clock := schedule.SystemClock()

	engine, err := schedule.NewEngine(schedule.EngineConfig{
		Template:           settings.WorkingHours,
		SlotMinutes:        settings.SlotDurationMinutes,
		Durations:          catalog,
		SuggestedDurations: settings.SuggestedDurationsMinutes,
		Clock:              clock,
		Logger:             logger,
		Metrics:            schedMetrics,
	})
	if err != nil {
		logger.Error("failed to build schedule engine", "error", err)
		os.Exit(1)
	}

	repo := appointments.NewInMemoryRepository()
	service := appointments.NewService(repo, catalog, engine, clock, logger, schedMetrics)

	routerCfg := &router.Config{
		Logger:              logger,
		AppointmentsHandler: appointments.NewHandler(service, logger),
		TreatmentsHandler:   treatments.NewHandler(catalog, logger),
		MetricsHandler:      promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		AdminAuthSecret:     cfg.AdminJWTSecret,
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
		MutationRatePerSec:  5,
		MutationBurst:       10,
	}
	if settingsStore != nil {
		routerCfg.SettingsHandler = center.NewHandler(settingsStore, logger)
	}
	r := router.New(routerCfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
