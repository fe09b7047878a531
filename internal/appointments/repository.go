package appointments

import (
	"context"
	"slices"
	"strings"
	"sync"
)

// Repository defines the interface for appointment storage
type Repository interface {
	Create(ctx context.Context, appt *Appointment) error
	List(ctx context.Context) ([]Appointment, error)
	GetByConfirmationCode(ctx context.Context, code string) (*Appointment, error)
}

// InMemoryRepository keeps appointments for the life of the process.
type InMemoryRepository struct {
	mu    sync.RWMutex
	items []Appointment
}

// NewInMemoryRepository creates a repository pre-populated with seed.
func NewInMemoryRepository(seed ...Appointment) *InMemoryRepository {
	return &InMemoryRepository{items: slices.Clone(seed)}
}

// Create appends the appointment. Ids and confirmation codes must be unique.
func (r *InMemoryRepository) Create(ctx context.Context, appt *Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.ID == appt.ID || strings.EqualFold(existing.ConfirmationCode, appt.ConfirmationCode) {
			return ErrDuplicate
		}
	}
	r.items = append(r.items, *appt)
	return nil
}

// List returns every appointment in insertion order.
func (r *InMemoryRepository) List(ctx context.Context) ([]Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.items), nil
}

// GetByConfirmationCode finds an appointment by code, ignoring case.
func (r *InMemoryRepository) GetByConfirmationCode(ctx context.Context, code string) (*Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.items {
		if strings.EqualFold(a.ConfirmationCode, code) {
			found := a
			return &found, nil
		}
	}
	return nil, ErrNotFound
}
