// Package booking implements the five-step appointment booking wizard and the
// session-backed service that exposes it over HTTP.
package booking

import (
	"time"

	"github.com/wolfman30/medcare-booking/internal/appointments"
	"github.com/wolfman30/medcare-booking/internal/catalog"
	"github.com/wolfman30/medcare-booking/internal/scheduling"
)

// State is everything the wizard knows about one booking in progress.
// Transitions never mutate a State in place; they build a new one.
type State struct {
	Step             Step                      `json:"step"`
	Service          *catalog.Service          `json:"service,omitempty"`
	Doctor           *catalog.Doctor           `json:"doctor,omitempty"`
	Date             *time.Time                `json:"date,omitempty"`
	Slot             *scheduling.TimeSlot      `json:"slot,omitempty"`
	Slots            []scheduling.TimeSlot     `json:"slots,omitempty"`
	Patient          *PatientFormData          `json:"patient,omitempty"`
	Confirmed        *appointments.Appointment `json:"confirmed,omitempty"`
	ConfirmationOpen bool                      `json:"confirmation_open"`
}

// NewState returns the state of a fresh wizard.
func NewState() State {
	return State{Step: StepService}
}

// ReadyToConfirm reports whether every selection a booking needs is present.
func (s State) ReadyToConfirm() bool {
	return s.Service != nil && s.Doctor != nil && s.Date != nil && s.Slot != nil && s.Patient != nil
}

// Consistent reports whether the current step's prerequisites hold. States
// reached through EditStep may be inconsistent on purpose.
func (s State) Consistent() bool {
	switch s.Step {
	case StepService:
		return true
	case StepDoctor:
		return s.Service != nil
	case StepSchedule:
		return s.Service != nil && s.Doctor != nil
	case StepDetails:
		return s.Service != nil && s.Doctor != nil && s.Date != nil && s.Slot != nil
	case StepConfirm:
		return s.ReadyToConfirm()
	}
	return false
}

// Summary is the running order shown beside the wizard.
type Summary struct {
	Service *catalog.Service     `json:"service,omitempty"`
	Doctor  *catalog.Doctor      `json:"doctor,omitempty"`
	Date    *time.Time           `json:"date,omitempty"`
	Slot    *scheduling.TimeSlot `json:"slot,omitempty"`
	Total   int                  `json:"total"`
}

// Summary totals the consultation fee and the service price of what has been
// picked so far.
func (s State) Summary() Summary {
	sum := Summary{Service: s.Service, Doctor: s.Doctor, Date: s.Date, Slot: s.Slot}
	if s.Service != nil {
		sum.Total += s.Service.Price
	}
	if s.Doctor != nil {
		sum.Total += s.Doctor.ConsultationFee
	}
	return sum
}
