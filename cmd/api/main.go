package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/wolfman30/medcare-booking/internal/api/router"
	"github.com/wolfman30/medcare-booking/internal/app/bootstrap"
	"github.com/wolfman30/medcare-booking/internal/appointments"
	"github.com/wolfman30/medcare-booking/internal/booking"
	"github.com/wolfman30/medcare-booking/internal/catalog"
	appconfig "github.com/wolfman30/medcare-booking/internal/config"
	httpmiddleware "github.com/wolfman30/medcare-booking/internal/http/middleware"
	"github.com/wolfman30/medcare-booking/internal/notify"
	"github.com/wolfman30/medcare-booking/internal/observability/metrics"
	"github.com/wolfman30/medcare-booking/internal/scheduling"
	"github.com/wolfman30/medcare-booking/internal/sessions"
	"github.com/wolfman30/medcare-booking/pkg/logging"
)

func main() {
	if err := appconfig.LoadDotEnv(); err != nil {
		logging.Default().Error("failed to load .env", "error", err)
		os.Exit(1)
	}
	cfg := appconfig.Load()

	logger := logging.NewWithWriter(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger.Info("starting medcare-booking API server",
		"env", cfg.Env,
		"port", cfg.Port,
		"slot_availability", cfg.SlotAvailability,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redisClient := bootstrap.BuildRedisClient(ctx, cfg, logger, true)
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}
	pool := bootstrap.ConnectPostgresPool(ctx, cfg.DatabaseURL, logger)
	if pool != nil {
		defer pool.Close()
	}

	metricsHandler, bookingMetrics := setupMetrics()
	app := buildApp(cfg, deps{
		redis:   redisClient,
		pool:    pool,
		metrics: bookingMetrics,
		now:     time.Now,
	}, logger)
	app.routerCfg.MetricsHandler = metricsHandler

	if app.limiter != nil {
		go app.limiter.RunEviction(ctx, 5*time.Minute, 10*time.Minute)
	}
	if app.memorySessions != nil {
		go app.memorySessions.RunEviction(ctx, time.Minute)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.New(app.routerCfg),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

type deps struct {
	redis   *redis.Client
	pool    *pgxpool.Pool
	metrics *metrics.BookingMetrics
	now     func() time.Time
}

type app struct {
	routerCfg *router.Config
	limiter   *httpmiddleware.RateLimiter
	bookings  *booking.Service
	// set when sessions live in process memory and need an eviction loop
	memorySessions *sessions.MemoryStore[booking.State]
}

// buildApp wires domain services and handlers on top of the infrastructure in d.
func buildApp(cfg *appconfig.Config, d deps, logger *logging.Logger) *app {
	if d.now == nil {
		d.now = time.Now
	}
	loc := cfg.Location()
	now := func() time.Time { return d.now().In(loc) }

	cat := catalog.Default()
	slots := scheduling.NewGenerator(bootstrap.BuildAvailability(cfg))
	repo := bootstrap.BuildAppointmentRepository(cfg, d.pool, now(), logger)
	notifier := notify.NewService(bootstrap.BuildEmailSender(cfg, logger), loc, logger)

	store := bootstrap.BuildSessionStore(cfg, d.redis, logger)
	svc := booking.NewService(booking.ServiceConfig{
		Store:        store,
		Catalog:      cat,
		Slots:        slots,
		Appointments: repo,
		Notifier:     notifier,
		Metrics:      d.metrics,
		Now:          now,
		Location:     loc,
		Logger:       logger,
	})

	a := &app{bookings: svc}
	if mem, ok := store.(*sessions.MemoryStore[booking.State]); ok {
		a.memorySessions = mem
	}
	if cfg.BookingRateLimit > 0 {
		a.limiter = httpmiddleware.NewRateLimiter(cfg.BookingRateLimit, cfg.BookingRateBurst)
	}

	checks := map[string]router.HealthCheck{}
	if d.redis != nil {
		checks["redis"] = func(ctx context.Context) error { return d.redis.Ping(ctx).Err() }
	}
	if d.pool != nil {
		checks["postgres"] = d.pool.Ping
	}

	a.routerCfg = &router.Config{
		Logger:              logger,
		CatalogHandler:      catalog.NewHandler(cat, logger),
		SchedulingHandler:   scheduling.NewHandler(slots, now, logger),
		BookingHandler:      booking.NewHandler(svc, logger),
		AppointmentsHandler: appointments.NewHandler(repo, logger),
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
		BookingLimiter:      a.limiter,
		HealthChecks:        checks,
	}
	return a
}

func setupMetrics() (http.Handler, *metrics.BookingMetrics) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), metrics.NewBookingMetrics(reg)
}
