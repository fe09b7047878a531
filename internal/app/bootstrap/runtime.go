// Package bootstrap builds the infrastructure the API server runs on from
// configuration, degrading to in-process fallbacks when a backing service is
// not configured.
package bootstrap

import (
	"context"
	"crypto/tls"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/wolfman30/medcare-booking/internal/appointments"
	"github.com/wolfman30/medcare-booking/internal/booking"
	appconfig "github.com/wolfman30/medcare-booking/internal/config"
	"github.com/wolfman30/medcare-booking/internal/notify"
	"github.com/wolfman30/medcare-booking/internal/scheduling"
	"github.com/wolfman30/medcare-booking/internal/sessions"
	"github.com/wolfman30/medcare-booking/pkg/logging"
)

// SessionKeyPrefix namespaces booking sessions in Redis.
const SessionKeyPrefix = "booking_session"

// BuildRedisClient returns a configured Redis client or nil when disabled.
// When verify is true, a ping is issued and failures return nil.
func BuildRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, verify bool) *redis.Client {
	if cfg == nil || strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	opts := &redis.Options{
		Addr:        cfg.RedisAddr,
		Password:    cfg.RedisPassword,
		DialTimeout: 5 * time.Second,
	}
	if cfg.RedisTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(opts)
	if !verify {
		return client
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available, booking sessions stay in memory", "error", err)
		_ = client.Close()
		return nil
	}
	return client
}

// BuildSessionStore keeps wizard state in Redis when a client is available and
// in process memory otherwise.
func BuildSessionStore(cfg *appconfig.Config, client *redis.Client, logger *logging.Logger) sessions.Store[booking.State] {
	if logger == nil {
		logger = logging.Default()
	}
	ttl := 30 * time.Minute
	if cfg != nil && cfg.SessionTTL > 0 {
		ttl = cfg.SessionTTL
	}
	if client == nil {
		logger.Info("booking sessions: in-memory store", "ttl", ttl.String())
		return sessions.NewMemoryStore[booking.State](ttl)
	}
	logger.Info("booking sessions: redis store", "ttl", ttl.String())
	return sessions.NewRedisStore[booking.State](client, SessionKeyPrefix, ttl)
}

// ConnectPostgresPool opens a pgx pool, or returns nil when url is empty or
// the database cannot be reached.
func ConnectPostgresPool(ctx context.Context, url string, logger *logging.Logger) *pgxpool.Pool {
	if strings.TrimSpace(url) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		logger.Error("failed to connect postgres", "error", err)
		return nil
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		logger.Error("postgres ping failed", "error", err)
		pool.Close()
		return nil
	}
	return pool
}

// BuildAppointmentRepository uses Postgres when a pool is available. The
// in-memory fallback is optionally seeded with demo appointments around now.
func BuildAppointmentRepository(cfg *appconfig.Config, pool *pgxpool.Pool, now time.Time, logger *logging.Logger) appointments.Repository {
	if logger == nil {
		logger = logging.Default()
	}
	if pool != nil {
		logger.Info("appointments: postgres repository")
		return appointments.NewPostgresRepository(pool)
	}
	var seed []appointments.Appointment
	if cfg == nil || cfg.SeedSampleAppointments {
		seed = appointments.SampleAppointments(now)
	}
	logger.Info("appointments: in-memory repository", "seeded", len(seed))
	return appointments.NewInMemoryRepository(seed...)
}

// BuildAvailability picks the slot availability provider for the configured
// mode. Stable mode keeps a date's availability fixed across requests.
func BuildAvailability(cfg *appconfig.Config) scheduling.AvailabilityProvider {
	if cfg != nil && cfg.SlotAvailability == appconfig.SlotAvailabilityStable {
		return scheduling.NewDateSeededAvailability(0)
	}
	return scheduling.NewRandomAvailability(nil)
}

// BuildEmailSender returns a SendGrid sender when an API key is configured
// and a logging stub otherwise.
func BuildEmailSender(cfg *appconfig.Config, logger *logging.Logger) notify.EmailSender {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg != nil {
		sender := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger)
		if sender != nil {
			logger.Info("confirmation email: sendgrid", "from", cfg.SendGridFromEmail)
			return sender
		}
	}
	logger.Info("confirmation email: stub sender")
	return notify.NewStubEmailSender(logger)
}
