package booking

import (
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/medcare-booking/internal/appointments"
	"github.com/wolfman30/medcare-booking/internal/catalog"
	"github.com/wolfman30/medcare-booking/internal/scheduling"
)

var testNow = time.Date(2026, 10, 17, 15, 30, 0, 0, time.UTC)

type fixedCodes string

func (c fixedCodes) Issue(time.Time) string { return string(c) }

func testClock() time.Time { return testNow }

func testService() catalog.Service {
	s, _ := catalog.Default().Service("1")
	return s
}

func testDoctor() catalog.Doctor {
	d, _ := catalog.Default().Doctor("1")
	return d
}

func openSlot(id string) scheduling.TimeSlot {
	return scheduling.TimeSlot{ID: id, Time: "09:00", Available: true, Period: scheduling.PeriodMorning}
}

func newTestWizard(opts ...Option) *Wizard {
	base := []Option{
		WithClock(testClock),
		WithCodeIssuer(fixedCodes("MC-2026-TEST01")),
		WithIDGenerator(&MonotonicIDs{}),
	}
	return New(append(base, opts...)...)
}

// walkToConfirm drives a wizard through the happy path up to the confirm step.
func walkToConfirm(t *testing.T, w *Wizard) {
	t.Helper()
	require.True(t, w.SelectService(testService()))
	require.True(t, w.SelectDoctor(testDoctor()))
	require.True(t, w.ContinueFromDoctor())
	require.True(t, w.SelectDate(testNow.AddDate(0, 0, 3)))
	require.True(t, w.SelectSlot(openSlot("morning-2")))
	require.True(t, w.ContinueFromSchedule())
	errs, ok := w.SubmitPatientDetails(validPatient())
	require.Nil(t, errs)
	require.True(t, ok)
	require.Equal(t, StepConfirm, w.Step())
}

func TestNewStartsAtService(t *testing.T) {
	w := New()
	assert.Equal(t, StepService, w.Step())
	assert.Equal(t, 1, w.Progress().Number)
	assert.False(t, w.State().ConfirmationOpen)
}

func TestWithInitialService(t *testing.T) {
	w := New(WithInitialService(testService()))
	assert.Equal(t, StepDoctor, w.Step())
	require.NotNil(t, w.State().Service)
	assert.Equal(t, "1", w.State().Service.ID)
	assert.True(t, w.State().Consistent())
}

func TestHappyPath(t *testing.T) {
	var completed []appointments.Appointment
	w := newTestWizard(WithCompletion(func(a appointments.Appointment) { completed = append(completed, a) }))
	walkToConfirm(t, w)

	require.True(t, w.ConfirmBooking())
	appt, ok := w.Confirmed()
	require.True(t, ok)
	require.Len(t, completed, 1)
	assert.Equal(t, appt, completed[0])

	assert.Equal(t, "Jane Doe", appt.PatientName)
	assert.Equal(t, "jane@example.com", appt.PatientEmail)
	assert.Equal(t, "555-0100", appt.PatientPhone)
	assert.Equal(t, "Annual check-up", appt.Notes)
	assert.Equal(t, appointments.StatusUpcoming, appt.Status)
	assert.Equal(t, "MC-2026-TEST01", appt.ConfirmationCode)
	assert.Equal(t, fmt.Sprintf("appt-%d", testNow.UnixMilli()), appt.ID)
	assert.Equal(t, "morning-2", appt.TimeSlot.ID)
	assert.Equal(t, time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC), appt.Date)
	assert.True(t, w.State().ConfirmationOpen)

	assert.True(t, w.DismissConfirmation())
	assert.False(t, w.State().ConfirmationOpen)
	assert.False(t, w.DismissConfirmation())
}

func TestSelectDoctorDoesNotAdvance(t *testing.T) {
	w := newTestWizard()
	require.True(t, w.SelectService(testService()))
	assert.False(t, w.ContinueFromDoctor(), "no doctor yet")
	assert.Equal(t, StepDoctor, w.Step())

	require.True(t, w.SelectDoctor(testDoctor()))
	assert.Equal(t, StepDoctor, w.Step())
}

func TestSelectDateClearsSlot(t *testing.T) {
	w := newTestWizard()
	require.True(t, w.SelectService(testService()))
	require.True(t, w.SelectDoctor(testDoctor()))
	require.True(t, w.ContinueFromDoctor())

	assert.False(t, w.SelectSlot(openSlot("morning-0")), "slot needs a date")
	assert.Nil(t, w.State().Slot)

	require.True(t, w.SelectDate(testNow))
	require.True(t, w.SelectSlot(openSlot("morning-0")))
	require.NotNil(t, w.State().Slot)

	require.True(t, w.SelectDate(testNow.AddDate(0, 0, 1)))
	assert.Nil(t, w.State().Slot)
	assert.False(t, w.ContinueFromSchedule())
	assert.Equal(t, StepSchedule, w.Step())
}

func TestSelectDateRefusesPastDays(t *testing.T) {
	w := newTestWizard()
	require.True(t, w.SelectService(testService()))
	require.True(t, w.SelectDoctor(testDoctor()))
	require.True(t, w.ContinueFromDoctor())

	assert.False(t, w.SelectDate(testNow.AddDate(0, 0, -1)))
	assert.Nil(t, w.State().Date)

	// earlier today is still today
	assert.True(t, w.SelectDate(time.Date(2026, 10, 17, 1, 0, 0, 0, time.UTC)))
	assert.Equal(t, time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC), *w.State().Date)
}

func TestSelectSlotRejectsUnavailable(t *testing.T) {
	w := newTestWizard()
	require.True(t, w.SelectService(testService()))
	require.True(t, w.SelectDoctor(testDoctor()))
	require.True(t, w.ContinueFromDoctor())
	require.True(t, w.SelectDate(testNow))

	taken := openSlot("evening-1")
	taken.Available = false
	assert.False(t, w.SelectSlot(taken))
	assert.Nil(t, w.State().Slot)
}

func TestSelectSlotByIDUsesGeneratedSlots(t *testing.T) {
	gen := scheduling.NewGenerator(scheduling.FixedAvailability{
		Default: true,
		Slots:   map[string]bool{"afternoon-4": false},
	})
	w := newTestWizard(WithSlotGenerator(gen))
	require.True(t, w.SelectService(testService()))
	require.True(t, w.SelectDoctor(testDoctor()))
	require.True(t, w.ContinueFromDoctor())
	require.True(t, w.SelectDate(testNow.AddDate(0, 0, 2)))
	require.Len(t, w.State().Slots, 20)

	assert.False(t, w.SelectSlotByID("afternoon-4"))
	assert.False(t, w.SelectSlotByID("night-0"))
	require.True(t, w.SelectSlotByID("afternoon-5"))
	assert.Equal(t, "15:30", w.State().Slot.Time)
}

func TestInvalidDetailsStayOnDetails(t *testing.T) {
	w := newTestWizard()
	require.True(t, w.SelectService(testService()))
	require.True(t, w.SelectDoctor(testDoctor()))
	require.True(t, w.ContinueFromDoctor())
	require.True(t, w.SelectDate(testNow))
	require.True(t, w.SelectSlot(openSlot("morning-1")))
	require.True(t, w.ContinueFromSchedule())

	bad := validPatient()
	bad.Email = "not-an-email"
	errs, ok := w.SubmitPatientDetails(bad)
	assert.False(t, ok)
	assert.Equal(t, FieldErrors{FieldEmail: "Please enter a valid email"}, errs)
	assert.Equal(t, StepDetails, w.Step())
	assert.Nil(t, w.State().Patient)

	errs, ok = w.SubmitPatientDetails(validPatient())
	assert.True(t, ok)
	assert.Nil(t, errs)
	assert.Equal(t, StepConfirm, w.Step())
}

func TestConfirmRequiresEverySelection(t *testing.T) {
	w := newTestWizard()
	assert.False(t, w.ConfirmBooking())

	// jumping to confirm without prerequisites does not allow booking
	require.True(t, w.EditStep(4))
	assert.Equal(t, StepConfirm, w.Step())
	assert.False(t, w.ConfirmBooking())
	_, ok := w.Confirmed()
	assert.False(t, ok)
	assert.False(t, w.State().ConfirmationOpen)
}

func TestEditStepAnyIndex(t *testing.T) {
	for i := range Steps {
		w := newTestWizard()
		assert.True(t, w.EditStep(i))
		assert.Equal(t, Steps[i], w.Step())
	}

	w := newTestWizard()
	walkToConfirm(t, w)
	assert.True(t, w.EditStep(2))
	assert.Equal(t, StepSchedule, w.Step())
	assert.NotNil(t, w.State().Patient, "edit keeps collected data")

	assert.False(t, w.EditStep(5))
	assert.False(t, w.EditStep(-1))
	assert.Equal(t, StepSchedule, w.Step())
}

func TestGoBack(t *testing.T) {
	w := newTestWizard()
	assert.False(t, w.GoBack())
	assert.Equal(t, StepService, w.Step())

	walkToConfirm(t, w)
	for _, want := range []Step{StepDetails, StepSchedule, StepDoctor, StepService} {
		require.True(t, w.GoBack())
		assert.Equal(t, want, w.Step())
	}
	assert.False(t, w.GoBack())
}

func TestOperationsGatedByStep(t *testing.T) {
	w := newTestWizard()
	assert.False(t, w.SelectDoctor(testDoctor()))
	assert.False(t, w.SelectDate(testNow))
	_, ok := w.SubmitPatientDetails(validPatient())
	assert.False(t, ok)
	assert.Equal(t, NewState(), w.State())

	require.True(t, w.SelectService(testService()))
	assert.False(t, w.SelectService(testService()), "already past the service step")
}

func TestClose(t *testing.T) {
	w := newTestWizard()
	walkToConfirm(t, w)
	require.True(t, w.ConfirmBooking())

	w.Close()
	assert.Equal(t, NewState(), w.State())
	assert.False(t, w.State().ConfirmationOpen)
}

func TestResumeNormalizesUnknownStep(t *testing.T) {
	w := Resume(State{Step: "bogus"})
	assert.Equal(t, StepService, w.Step())
}

func TestConfirmTwiceIssuesDistinctIDs(t *testing.T) {
	var completed []appointments.Appointment
	w := newTestWizard(WithCompletion(func(a appointments.Appointment) { completed = append(completed, a) }))
	walkToConfirm(t, w)

	require.True(t, w.ConfirmBooking())
	require.True(t, w.ConfirmBooking())
	require.Len(t, completed, 2)
	assert.NotEqual(t, completed[0].ID, completed[1].ID)

	latest, ok := w.Confirmed()
	require.True(t, ok)
	assert.Equal(t, completed[1].ID, latest.ID)
}

func TestReconfirmAfterEditingSlot(t *testing.T) {
	w := newTestWizard(WithSlotGenerator(scheduling.NewGenerator(scheduling.FixedAvailability{Default: true})))
	walkToConfirm(t, w)
	require.True(t, w.ConfirmBooking())
	first, _ := w.Confirmed()
	require.True(t, w.DismissConfirmation())

	require.True(t, w.EditStep(2))
	require.True(t, w.SelectSlotByID("morning-3"))
	require.True(t, w.ContinueFromSchedule())
	_, ok := w.SubmitPatientDetails(validPatient())
	require.True(t, ok)
	require.True(t, w.ConfirmBooking())

	second, ok := w.Confirmed()
	require.True(t, ok)
	assert.Equal(t, "morning-3", second.TimeSlot.ID)
	assert.Equal(t, w.State().Slot.ID, second.TimeSlot.ID)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestSummaryTotal(t *testing.T) {
	w := newTestWizard()
	assert.Equal(t, 0, w.State().Summary().Total)
	require.True(t, w.SelectService(testService()))
	require.True(t, w.SelectDoctor(testDoctor()))
	sum := w.State().Summary()
	assert.Equal(t, testService().Price+testDoctor().ConsultationFee, sum.Total)
}

// Any sequence of operations leaves the wizard on one of the five steps and,
// unless EditStep was used, with the step's prerequisites in place.
func TestRandomOperationSequences(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	gen := scheduling.NewGenerator(scheduling.FixedAvailability{Default: true})

	for run := 0; run < 200; run++ {
		w := newTestWizard(WithSlotGenerator(gen))
		edited := false
		for op := 0; op < 40; op++ {
			switch rng.IntN(11) {
			case 0:
				w.SelectService(testService())
			case 1:
				w.SelectDoctor(testDoctor())
			case 2:
				w.ContinueFromDoctor()
			case 3:
				w.SelectDate(testNow.AddDate(0, 0, rng.IntN(10)-3))
			case 4:
				w.SelectSlotByID(fmt.Sprintf("morning-%d", rng.IntN(8)))
			case 5:
				w.ContinueFromSchedule()
			case 6:
				p := validPatient()
				if rng.IntN(2) == 0 {
					p.Email = "broken"
				}
				w.SubmitPatientDetails(p)
			case 7:
				w.ConfirmBooking()
			case 8:
				w.GoBack()
			case 9:
				w.EditStep(rng.IntN(7) - 1)
				edited = true
			case 10:
				w.Close()
				edited = false
			}
			require.True(t, w.Step().Valid())
			if !edited {
				require.True(t, w.State().Consistent(), "step %s", w.Step())
			}
		}
	}
}
