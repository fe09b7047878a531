package booking

import (
	"time"

	"github.com/wolfman30/medcare-booking/internal/appointments"
	"github.com/wolfman30/medcare-booking/internal/catalog"
	"github.com/wolfman30/medcare-booking/internal/scheduling"
)

// Wizard applies booking transitions to a single State. It is not safe for
// concurrent use; Service serializes access per session.
//
// Every operation reports whether it was applied. A rejected operation leaves
// the state untouched.
type Wizard struct {
	state State

	now        func() time.Time
	codes      CodeIssuer
	ids        IDGenerator
	slots      *scheduling.Generator
	onComplete func(appointments.Appointment)
}

// Option configures a Wizard.
type Option func(*Wizard)

// WithInitialService starts the wizard at the doctor step with s preselected.
func WithInitialService(s catalog.Service) Option {
	return func(w *Wizard) {
		svc := s
		w.state.Service = &svc
		w.state.Step = StepDoctor
	}
}

// WithSlotGenerator makes SelectDate populate the day's slots.
func WithSlotGenerator(g *scheduling.Generator) Option {
	return func(w *Wizard) { w.slots = g }
}

func WithCodeIssuer(c CodeIssuer) Option {
	return func(w *Wizard) {
		if c != nil {
			w.codes = c
		}
	}
}

func WithIDGenerator(g IDGenerator) Option {
	return func(w *Wizard) {
		if g != nil {
			w.ids = g
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(w *Wizard) {
		if now != nil {
			w.now = now
		}
	}
}

// WithCompletion registers a callback run once per confirmed booking.
func WithCompletion(fn func(appointments.Appointment)) Option {
	return func(w *Wizard) { w.onComplete = fn }
}

var defaultIDs = &MonotonicIDs{}

// New returns a wizard at the service step.
func New(opts ...Option) *Wizard {
	return Resume(NewState(), opts...)
}

// Resume continues a wizard from a previously saved state.
func Resume(state State, opts ...Option) *Wizard {
	if !state.Step.Valid() {
		state.Step = StepService
	}
	w := &Wizard{
		state: state,
		now:   time.Now,
		codes: RandomCodeIssuer{},
		ids:   defaultIDs,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// State returns the current state.
func (w *Wizard) State() State { return w.state }

// Step returns the current step.
func (w *Wizard) Step() Step { return w.state.Step }

// Progress reports the step position for the progress bar.
func (w *Wizard) Progress() Progress { return ProgressOf(w.state.Step) }

// Confirmed returns the booked appointment once ConfirmBooking succeeded.
func (w *Wizard) Confirmed() (appointments.Appointment, bool) {
	if w.state.Confirmed == nil {
		return appointments.Appointment{}, false
	}
	return *w.state.Confirmed, true
}

func (w *Wizard) moveTo(next State, to Step) bool {
	if !CanTransition(w.state.Step, to) {
		return false
	}
	next.Step = to
	w.state = next
	return true
}

// SelectService records the service and advances to the doctor step.
func (w *Wizard) SelectService(s catalog.Service) bool {
	if w.state.Step != StepService {
		return false
	}
	next := w.state
	next.Service = &s
	return w.moveTo(next, StepDoctor)
}

// SelectDoctor records the doctor without advancing.
func (w *Wizard) SelectDoctor(d catalog.Doctor) bool {
	if w.state.Step != StepDoctor {
		return false
	}
	w.state.Doctor = &d
	return true
}

// ContinueFromDoctor advances to scheduling once a doctor is chosen.
func (w *Wizard) ContinueFromDoctor() bool {
	if w.state.Step != StepDoctor || w.state.Doctor == nil {
		return false
	}
	return w.moveTo(w.state, StepSchedule)
}

// SelectDate records the appointment date and clears any chosen slot. Dates
// before today are refused.
func (w *Wizard) SelectDate(date time.Time) bool {
	if w.state.Step != StepSchedule {
		return false
	}
	day := scheduling.StartOfDay(date)
	if day.Before(scheduling.StartOfDay(w.now().In(date.Location()))) {
		return false
	}
	next := w.state
	next.Date = &day
	next.Slot = nil
	next.Slots = nil
	if w.slots != nil {
		next.Slots = w.slots.Generate(day)
	}
	w.state = next
	return true
}

// SelectSlot records the time slot. It needs a date and an open slot.
func (w *Wizard) SelectSlot(slot scheduling.TimeSlot) bool {
	if w.state.Step != StepSchedule || w.state.Date == nil || !slot.Available {
		return false
	}
	w.state.Slot = &slot
	return true
}

// SelectSlotByID picks a slot from the ones generated for the selected date.
func (w *Wizard) SelectSlotByID(id string) bool {
	slot, ok := scheduling.Find(w.state.Slots, id)
	if !ok {
		return false
	}
	return w.SelectSlot(slot)
}

// ContinueFromSchedule advances to patient details once date and slot are set.
func (w *Wizard) ContinueFromSchedule() bool {
	if w.state.Step != StepSchedule || w.state.Date == nil || w.state.Slot == nil {
		return false
	}
	return w.moveTo(w.state, StepDetails)
}

// SubmitPatientDetails validates the form. Valid data is stored and the wizard
// moves to confirmation; otherwise the field errors are returned and the step
// stays on details.
func (w *Wizard) SubmitPatientDetails(data PatientFormData) (FieldErrors, bool) {
	if w.state.Step != StepDetails {
		return nil, false
	}
	if errs := data.Validate(); errs != nil {
		return errs, false
	}
	next := w.state
	next.Patient = &data
	return nil, w.moveTo(next, StepConfirm)
}

// ConfirmBooking turns the collected selections into an appointment, opens the
// confirmation dialog and runs the completion callback. Every call issues a
// fresh id and code and replaces any earlier confirmation.
func (w *Wizard) ConfirmBooking() bool {
	s := w.state
	if s.Step != StepConfirm || !s.ReadyToConfirm() {
		return false
	}
	now := w.now()
	appt := appointments.Appointment{
		ID:               w.ids.NextID(now),
		PatientName:      s.Patient.FullName(),
		PatientEmail:     s.Patient.Email,
		PatientPhone:     s.Patient.Phone,
		Doctor:           *s.Doctor,
		Service:          *s.Service,
		Date:             *s.Date,
		TimeSlot:         *s.Slot,
		Status:           appointments.StatusUpcoming,
		Notes:            s.Patient.ReasonForVisit,
		ConfirmationCode: w.codes.Issue(now),
	}
	next := s
	next.Confirmed = &appt
	next.ConfirmationOpen = true
	w.state = next

	if w.onComplete != nil {
		w.onComplete(appt)
	}
	return true
}

// DismissConfirmation closes the confirmation dialog.
func (w *Wizard) DismissConfirmation() bool {
	if !w.state.ConfirmationOpen {
		return false
	}
	w.state.ConfirmationOpen = false
	return true
}

// EditStep jumps straight to the step at index. Prerequisites are not
// checked; the summary's edit links rely on that.
func (w *Wizard) EditStep(index int) bool {
	step, ok := StepAt(index)
	if !ok {
		return false
	}
	w.state.Step = step
	return true
}

// GoBack returns to the previous step.
func (w *Wizard) GoBack() bool {
	prev, ok := w.state.Step.Previous()
	if !ok {
		return false
	}
	return w.moveTo(w.state, prev)
}

// Close abandons the booking and resets the wizard.
func (w *Wizard) Close() {
	w.state = NewState()
}
