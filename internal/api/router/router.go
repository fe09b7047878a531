package router

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/wolfman30/medcare-booking/internal/appointments"
	"github.com/wolfman30/medcare-booking/internal/booking"
	"github.com/wolfman30/medcare-booking/internal/catalog"
	httpmiddleware "github.com/wolfman30/medcare-booking/internal/http/middleware"
	"github.com/wolfman30/medcare-booking/internal/scheduling"
	"github.com/wolfman30/medcare-booking/pkg/logging"
)

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

// Config holds router configuration
type Config struct {
	Logger              *logging.Logger
	CatalogHandler      *catalog.Handler
	SchedulingHandler   *scheduling.Handler
	BookingHandler      *booking.Handler
	AppointmentsHandler *appointments.Handler
	MetricsHandler      http.Handler
	CORSAllowedOrigins  []string

	// BookingLimiter throttles session creation per client when set.
	BookingLimiter *httpmiddleware.RateLimiter

	// HealthChecks are run by /health, keyed by dependency name.
	HealthChecks map[string]HealthCheck
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", healthHandler(cfg.HealthChecks))
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	if cfg.CatalogHandler != nil {
		r.Route("/catalog", cfg.CatalogHandler.RegisterRoutes)
	}
	if cfg.SchedulingHandler != nil {
		r.Route("/schedule", cfg.SchedulingHandler.RegisterRoutes)
	}
	if cfg.BookingHandler != nil {
		r.Route("/bookings", func(br chi.Router) {
			if cfg.BookingLimiter != nil {
				br.Use(limitSessionCreation(cfg.BookingLimiter))
			}
			cfg.BookingHandler.RegisterRoutes(br)
		})
	}
	if cfg.AppointmentsHandler != nil {
		r.Route("/appointments", cfg.AppointmentsHandler.RegisterRoutes)
	}

	return r
}

// limitSessionCreation throttles POST /bookings only; steps inside an
// existing session are not limited.
func limitSessionCreation(limiter *httpmiddleware.RateLimiter) func(http.Handler) http.Handler {
	limit := httpmiddleware.RateLimit(limiter)
	return func(next http.Handler) http.Handler {
		limited := limit(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost && strings.TrimSuffix(r.URL.Path, "/") == "/bookings" {
				limited.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func healthHandler(checks map[string]HealthCheck) http.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := healthResponse{Status: "ok"}
		status := http.StatusOK
		if len(names) > 0 {
			resp.Checks = make(map[string]string, len(names))
		}
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				resp.Checks[name] = err.Error()
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(resp)
	}
}
