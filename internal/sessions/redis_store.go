package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// RedisStore keeps JSON-encoded values under "<prefix>:<id>" with a TTL that
// is refreshed on every save.
type RedisStore[T any] struct {
	redis  *redis.Client
	prefix string
	ttl    time.Duration
	tracer trace.Tracer
}

// NewRedisStore builds a Redis-backed store. The client must not be nil.
func NewRedisStore[T any](client *redis.Client, prefix string, ttl time.Duration) *RedisStore[T] {
	if client == nil {
		panic("sessions: redis client cannot be nil")
	}
	if prefix == "" {
		prefix = "session"
	}
	return &RedisStore[T]{
		redis:  client,
		prefix: prefix,
		ttl:    ttl,
		tracer: otel.Tracer("medcare.internal.sessions"),
	}
}

func (s *RedisStore[T]) key(id string) string {
	return fmt.Sprintf("%s:%s", s.prefix, id)
}

func (s *RedisStore[T]) Save(ctx context.Context, id string, value T) error {
	ctx, span := s.tracer.Start(ctx, "sessions.save")
	defer span.End()

	data, err := json.Marshal(value)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("sessions: marshal %s: %w", id, err)
	}
	if err := s.redis.Set(ctx, s.key(id), data, s.ttl).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("sessions: save %s: %w", id, err)
	}
	return nil
}

func (s *RedisStore[T]) Load(ctx context.Context, id string) (T, error) {
	ctx, span := s.tracer.Start(ctx, "sessions.load")
	defer span.End()

	var value T
	data, err := s.redis.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return value, ErrNotFound
		}
		span.RecordError(err)
		return value, fmt.Errorf("sessions: load %s: %w", id, err)
	}
	if err := json.Unmarshal(data, &value); err != nil {
		span.RecordError(err)
		return value, fmt.Errorf("sessions: decode %s: %w", id, err)
	}
	return value, nil
}

func (s *RedisStore[T]) Delete(ctx context.Context, id string) error {
	if err := s.redis.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("sessions: delete %s: %w", id, err)
	}
	return nil
}
