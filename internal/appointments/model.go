// Package appointments stores booked appointments and implements the
// dashboard's search and status filter.
package appointments

import (
	"time"

	"github.com/wolfman30/medcare-booking/internal/catalog"
	"github.com/wolfman30/medcare-booking/internal/scheduling"
)

// Status is where an appointment sits in its lifecycle.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusUpcoming, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Appointment is a finished booking. It is never modified after creation.
type Appointment struct {
	ID               string              `json:"id"`
	PatientName      string              `json:"patient_name"`
	PatientEmail     string              `json:"patient_email"`
	PatientPhone     string              `json:"patient_phone"`
	Doctor           catalog.Doctor      `json:"doctor"`
	Service          catalog.Service     `json:"service"`
	Date             time.Time           `json:"date"`
	TimeSlot         scheduling.TimeSlot `json:"time_slot"`
	Status           Status              `json:"status"`
	Notes            string              `json:"notes,omitempty"`
	ConfirmationCode string              `json:"confirmation_code"`
}
