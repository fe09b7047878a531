// Package notify sends patient-facing notifications for confirmed bookings.
package notify

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/wolfman30/medcare-booking/internal/appointments"
	"github.com/wolfman30/medcare-booking/pkg/logging"
)

// Service turns booking events into notifications.
type Service struct {
	email  EmailSender
	loc    *time.Location
	logger *logging.Logger
}

// NewService creates a notification service. Dates are rendered in loc, or
// UTC when loc is nil.
func NewService(email EmailSender, loc *time.Location, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{email: email, loc: loc, logger: logger}
}

// NotifyBookingConfirmed emails the patient their confirmation.
func (s *Service) NotifyBookingConfirmed(ctx context.Context, appt appointments.Appointment) error {
	if s.email == nil {
		s.logger.Debug("notify: email sender not configured, skipping confirmation", "appointment_id", appt.ID)
		return nil
	}
	if strings.TrimSpace(appt.PatientEmail) == "" {
		s.logger.Warn("notify: appointment has no patient email", "appointment_id", appt.ID)
		return nil
	}

	msg := ConfirmationEmail(appt, s.loc)
	if err := s.email.Send(ctx, msg); err != nil {
		return fmt.Errorf("notify: send confirmation: %w", err)
	}
	s.logger.Info("notify: confirmation sent", "appointment_id", appt.ID, "confirmation_code", appt.ConfirmationCode)
	return nil
}

// ConfirmationEmail renders the confirmation for appt.
func ConfirmationEmail(appt appointments.Appointment, loc *time.Location) EmailMessage {
	if loc == nil {
		loc = time.UTC
	}
	date := appt.Date.In(loc).Format("Monday, January 2, 2006")
	clock := FormatSlotTime(appt.TimeSlot.Time)

	var body strings.Builder
	fmt.Fprintf(&body, "Hi %s,\n\n", appt.PatientName)
	body.WriteString("Your appointment has been successfully booked.\n\n")
	fmt.Fprintf(&body, "Confirmation code: %s\n", appt.ConfirmationCode)
	fmt.Fprintf(&body, "Service: %s\n", appt.Service.Name)
	fmt.Fprintf(&body, "Doctor: %s\n", appt.Doctor.Name)
	fmt.Fprintf(&body, "Date: %s\n", date)
	fmt.Fprintf(&body, "Time: %s\n", clock)
	body.WriteString("\nPlease arrive 10 minutes early. Reply to this email if you need to reschedule.\n")

	var h strings.Builder
	h.WriteString("<h2>Appointment Confirmed!</h2>")
	fmt.Fprintf(&h, "<p>Hi %s, your appointment has been successfully booked.</p>", html.EscapeString(appt.PatientName))
	fmt.Fprintf(&h, "<p>Confirmation code: <strong>%s</strong></p>", html.EscapeString(appt.ConfirmationCode))
	h.WriteString("<ul>")
	fmt.Fprintf(&h, "<li>Service: %s</li>", html.EscapeString(appt.Service.Name))
	fmt.Fprintf(&h, "<li>Doctor: %s</li>", html.EscapeString(appt.Doctor.Name))
	fmt.Fprintf(&h, "<li>Date: %s</li>", date)
	fmt.Fprintf(&h, "<li>Time: %s</li>", clock)
	h.WriteString("</ul>")

	return EmailMessage{
		To:      appt.PatientEmail,
		ToName:  appt.PatientName,
		Subject: fmt.Sprintf("Appointment confirmed: %s", appt.ConfirmationCode),
		Body:    body.String(),
		HTML:    h.String(),
	}
}

// FormatSlotTime renders a 24h "HH:MM" slot label as "9:30 AM". Labels that
// do not parse are returned unchanged.
func FormatSlotTime(label string) string {
	t, err := time.Parse("15:04", label)
	if err != nil {
		return label
	}
	return t.Format("3:04 PM")
}
