package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/medcare-booking/internal/appointments"
	"github.com/wolfman30/medcare-booking/internal/catalog"
	"github.com/wolfman30/medcare-booking/internal/scheduling"
	"github.com/wolfman30/medcare-booking/pkg/logging"
)

type failingSender struct{ err error }

func (f failingSender) Send(context.Context, EmailMessage) error { return f.err }

func testAppointment() appointments.Appointment {
	return appointments.Appointment{
		ID:               "appt-1790000000000",
		PatientName:      "Jane <Doe>",
		PatientEmail:     "jane@example.com",
		PatientPhone:     "555-0100",
		Doctor:           catalog.Doctor{ID: "d1", Name: "Dr. Sarah Mitchell"},
		Service:          catalog.Service{ID: "general", Name: "General Consultation"},
		Date:             time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
		TimeSlot:         scheduling.TimeSlot{ID: "afternoon-3", Time: "14:30", Available: true, Period: scheduling.PeriodAfternoon},
		Status:           appointments.StatusUpcoming,
		ConfirmationCode: "MC-2026-AB12CD",
	}
}

func TestConfirmationEmail(t *testing.T) {
	msg := ConfirmationEmail(testAppointment(), nil)

	assert.Equal(t, "jane@example.com", msg.To)
	assert.Equal(t, "Appointment confirmed: MC-2026-AB12CD", msg.Subject)
	assert.Contains(t, msg.Body, "Confirmation code: MC-2026-AB12CD")
	assert.Contains(t, msg.Body, "Doctor: Dr. Sarah Mitchell")
	assert.Contains(t, msg.Body, "Date: Tuesday, October 20, 2026")
	assert.Contains(t, msg.Body, "Time: 2:30 PM")
	assert.Contains(t, msg.HTML, "Jane &lt;Doe&gt;")
}

func TestFormatSlotTime(t *testing.T) {
	assert.Equal(t, "8:00 AM", FormatSlotTime("08:00"))
	assert.Equal(t, "5:30 PM", FormatSlotTime("17:30"))
	assert.Equal(t, "soon", FormatSlotTime("soon"))
}

func TestNotifyBookingConfirmed_Sends(t *testing.T) {
	stub := NewStubEmailSender(logging.Discard())
	svc := NewService(stub, time.UTC, logging.Discard())

	require.NoError(t, svc.NotifyBookingConfirmed(context.Background(), testAppointment()))
	sent := stub.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "jane@example.com", sent[0].To)
}

func TestNotifyBookingConfirmed_SkipsWithoutSenderOrEmail(t *testing.T) {
	svc := NewService(nil, nil, logging.Discard())
	assert.NoError(t, svc.NotifyBookingConfirmed(context.Background(), testAppointment()))

	stub := NewStubEmailSender(logging.Discard())
	svc = NewService(stub, nil, logging.Discard())
	appt := testAppointment()
	appt.PatientEmail = "  "
	assert.NoError(t, svc.NotifyBookingConfirmed(context.Background(), appt))
	assert.Empty(t, stub.Sent())
}

func TestNotifyBookingConfirmed_WrapsSendError(t *testing.T) {
	boom := errors.New("boom")
	svc := NewService(failingSender{err: boom}, nil, logging.Discard())

	err := svc.NotifyBookingConfirmed(context.Background(), testAppointment())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}
