package scheduling

import (
	"math/rand/v2"
	"strconv"
	"sync"
	"time"
)

// AvailabilityProvider decides whether a slot is open. It stands in for a
// real schedule lookup.
type AvailabilityProvider interface {
	Available(date time.Time, period Period, index int) bool
}

// RandomAvailability draws every slot independently on each call.
type RandomAvailability struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomAvailability uses src when given, otherwise the global generator.
func NewRandomAvailability(src rand.Source) *RandomAvailability {
	ra := &RandomAvailability{}
	if src != nil {
		ra.rng = rand.New(src)
	}
	return ra
}

func (r *RandomAvailability) Available(_ time.Time, period Period, _ int) bool {
	return r.float64() < period.AvailabilityRate()
}

func (r *RandomAvailability) float64() float64 {
	if r.rng == nil {
		return rand.Float64()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

// DateSeededAvailability derives availability from the calendar date so the
// same day always shows the same open slots.
type DateSeededAvailability struct {
	salt uint64
}

// NewDateSeededAvailability creates a stable provider. Different salts give
// different (but still stable) layouts.
func NewDateSeededAvailability(salt uint64) *DateSeededAvailability {
	return &DateSeededAvailability{salt: salt}
}

func (d *DateSeededAvailability) Available(date time.Time, period Period, index int) bool {
	y, m, day := date.Date()
	dateKey := uint64(y)*10000 + uint64(m)*100 + uint64(day)
	slotKey := uint64(periodOrdinal(period))<<8 | uint64(index)
	rng := rand.New(rand.NewPCG(dateKey^d.salt, slotKey))
	return rng.Float64() < period.AvailabilityRate()
}

func periodOrdinal(p Period) int {
	for i, candidate := range Periods {
		if candidate == p {
			return i
		}
	}
	return len(Periods)
}

// FixedAvailability answers from a canned table keyed by slot id.
type FixedAvailability struct {
	Slots   map[string]bool
	Default bool
}

func (f FixedAvailability) Available(_ time.Time, period Period, index int) bool {
	if v, ok := f.Slots[slotID(period, index)]; ok {
		return v
	}
	return f.Default
}

func slotID(p Period, index int) string {
	return string(p) + "-" + strconv.Itoa(index)
}
