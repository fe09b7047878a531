// Package sessions keeps short-lived per-session values, such as a booking
// wizard's state, in memory or in Redis.
package sessions

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned when a session id is unknown or has expired.
var ErrNotFound = errors.New("sessions: not found")

// Store saves one value per session id.
type Store[T any] interface {
	Save(ctx context.Context, id string, value T) error
	Load(ctx context.Context, id string) (T, error)
	Delete(ctx context.Context, id string) error
}

type memoryEntry[T any] struct {
	value   T
	expires time.Time
}

// MemoryStore is a process-local Store. Entries expire after the TTL; a zero
// TTL keeps them forever.
type MemoryStore[T any] struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry[T]
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore creates an in-memory store.
func NewMemoryStore[T any](ttl time.Duration) *MemoryStore[T] {
	return &MemoryStore[T]{
		entries: make(map[string]memoryEntry[T]),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore[T]) Save(ctx context.Context, id string, value T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := memoryEntry[T]{value: value}
	if s.ttl > 0 {
		entry.expires = s.now().Add(s.ttl)
	}
	s.entries[id] = entry
	return nil
}

func (s *MemoryStore[T]) Load(ctx context.Context, id string) (T, error) {
	s.mu.RLock()
	entry, ok := s.entries[id]
	s.mu.RUnlock()

	var zero T
	if !ok {
		return zero, ErrNotFound
	}
	if s.expired(entry, s.now()) {
		s.mu.Lock()
		// a Save may have refreshed the entry since the read lock was dropped
		if current, ok := s.entries[id]; ok && s.expired(current, s.now()) {
			delete(s.entries, id)
		} else if ok {
			s.mu.Unlock()
			return current.value, nil
		}
		s.mu.Unlock()
		return zero, ErrNotFound
	}
	return entry.value, nil
}

func (s *MemoryStore[T]) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}

// Evict drops expired sessions and returns how many went.
func (s *MemoryStore[T]) Evict() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	evicted := 0
	for id, entry := range s.entries {
		if s.expired(entry, now) {
			delete(s.entries, id)
			evicted++
		}
	}
	return evicted
}

// RunEviction evicts expired sessions every interval until ctx is done.
func (s *MemoryStore[T]) RunEviction(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Evict()
		}
	}
}

// Len reports how many sessions are held. Expired sessions count until the
// next Evict or Load drops them.
func (s *MemoryStore[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *MemoryStore[T]) expired(entry memoryEntry[T], now time.Time) bool {
	return !entry.expires.IsZero() && !now.Before(entry.expires)
}
