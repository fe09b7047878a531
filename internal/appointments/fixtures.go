package appointments

import (
	"time"

	"github.com/wolfman30/medcare-booking/internal/catalog"
	"github.com/wolfman30/medcare-booking/internal/scheduling"
)

// SampleAppointments seeds the dashboard for the demo patient. Dates are
// relative to now.
func SampleAppointments(now time.Time) []Appointment {
	doctors := catalog.DefaultDoctors()
	services := catalog.DefaultServices()
	day := 24 * time.Hour

	return []Appointment{
		{
			ID:               "1",
			PatientName:      "John Doe",
			PatientEmail:     "john@example.com",
			PatientPhone:     "(555) 123-4567",
			Doctor:           doctors[0],
			Service:          services[0],
			Date:             now.Add(2 * day),
			TimeSlot:         scheduling.TimeSlot{ID: "1", Time: "10:00", Period: scheduling.PeriodMorning},
			Status:           StatusUpcoming,
			ConfirmationCode: "MC-2024-001234",
		},
		{
			ID:               "2",
			PatientName:      "John Doe",
			PatientEmail:     "john@example.com",
			PatientPhone:     "(555) 123-4567",
			Doctor:           doctors[2],
			Service:          services[4],
			Date:             now.Add(7 * day),
			TimeSlot:         scheduling.TimeSlot{ID: "2", Time: "14:30", Period: scheduling.PeriodAfternoon},
			Status:           StatusUpcoming,
			ConfirmationCode: "MC-2024-001235",
		},
		{
			ID:               "3",
			PatientName:      "John Doe",
			PatientEmail:     "john@example.com",
			PatientPhone:     "(555) 123-4567",
			Doctor:           doctors[1],
			Service:          services[3],
			Date:             now.Add(-14 * day),
			TimeSlot:         scheduling.TimeSlot{ID: "3", Time: "09:00", Period: scheduling.PeriodMorning},
			Status:           StatusCompleted,
			ConfirmationCode: "MC-2024-001200",
		},
	}
}
