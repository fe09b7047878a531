// Package scheduling generates bookable time slots and drives the month
// calendar used to pick an appointment date.
package scheduling

import (
	"fmt"
	"time"
)

// Period is the coarse time-of-day bucket a slot belongs to.
type Period string

const (
	PeriodMorning   Period = "morning"
	PeriodAfternoon Period = "afternoon"
	PeriodEvening   Period = "evening"
)

// Periods lists the periods in display order.
var Periods = []Period{PeriodMorning, PeriodAfternoon, PeriodEvening}

// Valid reports whether p is one of the known periods.
func (p Period) Valid() bool {
	switch p {
	case PeriodMorning, PeriodAfternoon, PeriodEvening:
		return true
	}
	return false
}

// AvailabilityRate is the probability a slot in the period is open.
func (p Period) AvailabilityRate() float64 {
	if p == PeriodEvening {
		return 0.5
	}
	return 0.7
}

// TimeSlot is one bookable 30 minute interval on a given day.
type TimeSlot struct {
	ID        string `json:"id"`
	Time      string `json:"time"` // "HH:MM", 24h
	Available bool   `json:"available"`
	Period    Period `json:"period"`
}

// SlotInterval is the length of every slot.
const SlotInterval = 30 * time.Minute

type periodWindow struct {
	period Period
	hour   int
	count  int
}

// morning 08:00-11:30, afternoon 13:00-16:30, evening 17:00-18:30
var dayWindows = []periodWindow{
	{period: PeriodMorning, hour: 8, count: 8},
	{period: PeriodAfternoon, hour: 13, count: 8},
	{period: PeriodEvening, hour: 17, count: 4},
}

// Generator produces the slot list for a date. Availability is delegated to
// the provider so tests can pin it.
type Generator struct {
	availability AvailabilityProvider
}

// NewGenerator builds a generator. A nil provider falls back to RandomAvailability.
func NewGenerator(p AvailabilityProvider) *Generator {
	if p == nil {
		p = NewRandomAvailability(nil)
	}
	return &Generator{availability: p}
}

// Generate returns the 20 slots for date. With a random provider repeated
// calls for the same date may disagree on availability.
func (g *Generator) Generate(date time.Time) []TimeSlot {
	slots := make([]TimeSlot, 0, 20)
	for _, w := range dayWindows {
		start := w.hour * 60
		for i := 0; i < w.count; i++ {
			minutes := start + i*int(SlotInterval/time.Minute)
			slots = append(slots, TimeSlot{
				ID:        slotID(w.period, i),
				Time:      fmt.Sprintf("%02d:%02d", minutes/60, minutes%60),
				Available: g.availability.Available(date, w.period, i),
				Period:    w.period,
			})
		}
	}
	return slots
}

// Find returns the slot with the given id from a generated list.
func Find(slots []TimeSlot, id string) (TimeSlot, bool) {
	for _, s := range slots {
		if s.ID == id {
			return s, true
		}
	}
	return TimeSlot{}, false
}

// PeriodGroups splits a slot list for display.
type PeriodGroups struct {
	Morning   []TimeSlot `json:"morning"`
	Afternoon []TimeSlot `json:"afternoon"`
	Evening   []TimeSlot `json:"evening"`
}

// GroupByPeriod buckets slots by period, keeping their order.
func GroupByPeriod(slots []TimeSlot) PeriodGroups {
	var g PeriodGroups
	for _, s := range slots {
		switch s.Period {
		case PeriodMorning:
			g.Morning = append(g.Morning, s)
		case PeriodAfternoon:
			g.Afternoon = append(g.Afternoon, s)
		case PeriodEvening:
			g.Evening = append(g.Evening, s)
		}
	}
	return g
}

// AvailableCount counts the open slots.
func AvailableCount(slots []TimeSlot) int {
	n := 0
	for _, s := range slots {
		if s.Available {
			n++
		}
	}
	return n
}
