package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"github.com/hushd/hushd/internal/config"
	"github.com/hushd/hushd/internal/domain"
	"github.com/hushd/hushd/internal/handler"
	"github.com/hushd/hushd/internal/health"
	"github.com/hushd/hushd/internal/infra/decisionrecorder"
	"github.com/hushd/hushd/internal/infra/dndctl"
	"github.com/hushd/hushd/internal/infra/eventsource"
	"github.com/hushd/hushd/internal/infra/settings"
	"github.com/hushd/hushd/internal/observability/logging"
	"github.com/hushd/hushd/internal/observability/metrics"
	"github.com/hushd/hushd/internal/observability/middleware"
	"github.com/hushd/hushd/internal/service/dayfilter"
	"github.com/hushd/hushd/internal/service/decision"
	"github.com/hushd/hushd/internal/service/scheduler"
	"github.com/hushd/hushd/internal/service/scope"
)

// Version is set via ldflags at build time
var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	obs, err := initObservability(ctx)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	// Validate configuration
	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	if err := cfg.Waker.Validate(); err != nil {
		slog.Error("waker configuration error", slog.String("error", err.Error()))
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	engineMetrics, err := metrics.NewEngineMetrics()
	if err != nil {
		slog.Error("failed to initialize engine metrics", slog.String("error", err.Error()))
		return 1
	}

	// Initialize decision recorder (InfluxDB for local, BigQuery for gcloud)
	recorder, err := decisionrecorder.NewRecorder(ctx, decisionrecorder.LoadConfig())
	if err != nil {
		slog.Error("failed to initialize decision recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := recorder.Close(); err != nil {
			slog.Warn("failed to close decision recorder", slog.String("error", err.Error()))
		}
	}()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		slog.Error("failed to instrument redis tracing",
			slog.String("event", "redis.otel.tracing.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisotel.InstrumentMetrics(redisClient); err != nil {
		slog.Error("failed to instrument redis metrics",
			slog.String("event", "redis.otel.metrics.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Warn("failed to close redis client", slog.String("error", err.Error()))
		}
	}()

	slog.Info("redis connected",
		slog.String("addr", cfg.Redis.Addr),
	)

	settingsRepo := settings.NewSettingsRepository(redisClient)

	calendars, err := eventsource.LoadCalendars(cfg.CalendarsFile)
	if err != nil {
		slog.Error("failed to load calendars", slog.String("error", err.Error()))
		return 1
	}
	source := eventsource.New(calendars, nil)

	slog.Info("calendars loaded",
		slog.Int("count", len(calendars)),
	)

	var controller domain.DNDController
	if cfg.DNDControllerURL != "" {
		controller = dndctl.NewClient(cfg.DNDControllerURL)
		slog.Info("interruption controller initialized",
			slog.String("type", "http"),
			slog.String("url", cfg.DNDControllerURL),
		)
	} else {
		controller = dndctl.NewInMemory()
		slog.Warn("DND_CONTROLLER_URL not set, using in-memory controller")
	}

	// The waker needs a callback into the scheduler, which is constructed
	// afterwards; the closure resolves the reference at fire time.
	var sched *scheduler.Scheduler
	w, wakerCleanup, err := initWaker(ctx, cfg, func() {
		if sched != nil {
			sched.Trigger(domain.TriggerPeriodicAlarm)
		}
	})
	if err != nil {
		slog.Error("failed to initialize waker", slog.String("error", err.Error()))
		return 1
	}
	if wakerCleanup != nil {
		defer func() {
			if err := wakerCleanup(); err != nil {
				slog.Warn("waker cleanup error", slog.String("error", err.Error()))
			}
		}()
	}

	sched = scheduler.New(
		settingsRepo,
		source,
		controller,
		w,
		recorder,
		engineMetrics,
		scope.NewResolver(),
		dayfilter.NewFilter(cfg.Engine.Timezone),
		decision.NewEngine(),
		scheduler.Config{
			Horizon:          cfg.Engine.Horizon,
			FallbackInterval: cfg.Engine.FallbackInterval,
			PeriodicSpec:     cfg.Engine.PeriodicSpec,
		},
	)
	if err := sched.Start(ctx); err != nil {
		slog.Error("failed to start scheduler", slog.String("error", err.Error()))
		return 1
	}
	defer sched.Stop()

	evaluateHandler := handler.NewEvaluateHandler(sched)
	statusHandler := handler.NewStatusHandler(sched)
	overrideHandler := handler.NewOverrideHandler(settingsRepo)
	settingsHandler := handler.NewSettingsHandler(settingsRepo, calendars)

	// Setup router with observability middleware
	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/health", "/health/live", "/health/ready", "/metrics"},
		Module:      logging.Module("hushd"),
		TracerName:  "github.com/hushd/hushd/internal/observability/middleware",
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	// Health check endpoints
	healthChecker := health.NewChecker(redisClient, controller, len(calendars), Version)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	// API routes
	v1 := r.Group("/api/v1")
	{
		v1.POST("/evaluate", evaluateHandler.HandleEvaluate)
		v1.GET("/status", statusHandler.HandleStatus)
		v1.POST("/override", overrideHandler.HandleSetOverride)
		v1.GET("/override", overrideHandler.HandleGetOverride)
		v1.DELETE("/override", overrideHandler.HandleClearOverride)
		v1.GET("/settings", settingsHandler.HandleGetSettings)
		v1.PUT("/settings/scope", settingsHandler.HandleSetScope)
		v1.PUT("/settings/weekdays", settingsHandler.HandleSetWeekdays)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.Duration("horizon", cfg.Engine.Horizon),
			slog.Duration("fallback_interval", cfg.Engine.FallbackInterval),
			slog.String("periodic_spec", cfg.Engine.PeriodicSpec),
		)
		serverErr <- srv.ListenAndServe()
	}()

	// Wait for shutdown signal or server error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}
