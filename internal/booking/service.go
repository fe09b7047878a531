package booking

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/wolfman30/medcare-booking/internal/appointments"
	"github.com/wolfman30/medcare-booking/internal/catalog"
	"github.com/wolfman30/medcare-booking/internal/observability/metrics"
	"github.com/wolfman30/medcare-booking/internal/scheduling"
	"github.com/wolfman30/medcare-booking/internal/sessions"
	"github.com/wolfman30/medcare-booking/pkg/logging"
)

// Notifier is told about every confirmed appointment.
type Notifier interface {
	NotifyBookingConfirmed(ctx context.Context, appt appointments.Appointment) error
}

// ServiceConfig wires a Service. Store and Catalog are required.
type ServiceConfig struct {
	Store        sessions.Store[State]
	Catalog      *catalog.Catalog
	Slots        *scheduling.Generator
	Appointments appointments.Repository
	Notifier     Notifier
	Metrics      *metrics.BookingMetrics
	Codes        CodeIssuer
	IDs          IDGenerator
	Now          func() time.Time
	Location     *time.Location
	Logger       *logging.Logger
}

// Result is the outcome of one wizard operation.
type Result struct {
	SessionID string
	State     State
	Applied   bool
	Errors    FieldErrors
}

const lockStripes = 64

// Service runs booking wizards keyed by session id. Operations on the same
// session are serialized; different sessions proceed in parallel.
type Service struct {
	store    sessions.Store[State]
	catalog  *catalog.Catalog
	slots    *scheduling.Generator
	repo     appointments.Repository
	notifier Notifier
	metrics  *metrics.BookingMetrics
	codes    CodeIssuer
	ids      IDGenerator
	now      func() time.Time
	loc      *time.Location
	logger   *logging.Logger
	tracer   trace.Tracer

	locks [lockStripes]sync.Mutex
}

// NewService builds a booking service.
func NewService(cfg ServiceConfig) *Service {
	if cfg.Store == nil {
		panic("booking: session store cannot be nil")
	}
	if cfg.Catalog == nil {
		cfg.Catalog = catalog.Default()
	}
	if cfg.Slots == nil {
		cfg.Slots = scheduling.NewGenerator(nil)
	}
	if cfg.Codes == nil {
		cfg.Codes = RandomCodeIssuer{}
	}
	if cfg.IDs == nil {
		cfg.IDs = defaultIDs
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	return &Service{
		store:    cfg.Store,
		catalog:  cfg.Catalog,
		slots:    cfg.Slots,
		repo:     cfg.Appointments,
		notifier: cfg.Notifier,
		metrics:  cfg.Metrics,
		codes:    cfg.Codes,
		ids:      cfg.IDs,
		now:      cfg.Now,
		loc:      cfg.Location,
		logger:   cfg.Logger,
		tracer:   otel.Tracer("medcare.internal.booking"),
	}
}

// Location is the clinic time zone dates are interpreted in.
func (s *Service) Location() *time.Location { return s.loc }

func (s *Service) clock() time.Time { return s.now().In(s.loc) }

func (s *Service) lock(id string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	mu := &s.locks[h.Sum32()%lockStripes]
	mu.Lock()
	return mu.Unlock
}

func (s *Service) wizard(state State, onComplete func(appointments.Appointment)) *Wizard {
	return Resume(state,
		WithSlotGenerator(s.slots),
		WithCodeIssuer(s.codes),
		WithIDGenerator(s.ids),
		WithClock(s.clock),
		WithCompletion(onComplete),
	)
}

// Start opens a new session. A non-empty serviceID preselects that service.
func (s *Service) Start(ctx context.Context, serviceID string) (Result, error) {
	var opts []Option
	if serviceID != "" {
		svc, err := s.catalog.Service(serviceID)
		if err != nil {
			return Result{}, err
		}
		opts = append(opts, WithInitialService(svc))
	}
	w := New(opts...)

	id := uuid.NewString()
	if err := s.store.Save(ctx, id, w.State()); err != nil {
		return Result{}, fmt.Errorf("booking: start: %w", err)
	}
	s.metrics.ObserveSessionStarted(serviceID != "")
	s.logger.Info("booking session started", "session_id", id, "service_id", serviceID)
	return Result{SessionID: id, State: w.State(), Applied: true}, nil
}

// Get returns the current state of a session.
func (s *Service) Get(ctx context.Context, id string) (State, error) {
	return s.load(ctx, id)
}

func (s *Service) load(ctx context.Context, id string) (State, error) {
	state, err := s.store.Load(ctx, id)
	if errors.Is(err, sessions.ErrNotFound) {
		return State{}, ErrSessionNotFound
	}
	if err != nil {
		return State{}, fmt.Errorf("booking: load session: %w", err)
	}
	return state, nil
}

// apply loads the session, runs op on a wizard and saves the result when the
// operation was applied.
func (s *Service) apply(ctx context.Context, id, op string, fn func(w *Wizard) bool) (Result, error) {
	unlock := s.lock(id)
	defer unlock()

	state, err := s.load(ctx, id)
	if err != nil {
		return Result{}, err
	}
	w := s.wizard(state, nil)
	res := Result{SessionID: id}
	res.Applied = fn(w)
	res.State = w.State()

	if !res.Applied {
		s.metrics.ObserveTransition(op, "rejected")
		s.logger.Debug("booking transition rejected", "session_id", id, "operation", op, "step", state.Step)
		return res, nil
	}
	if err := s.store.Save(ctx, id, res.State); err != nil {
		return Result{}, fmt.Errorf("booking: %s: %w", op, err)
	}
	s.metrics.ObserveTransition(op, "applied")
	s.logger.Debug("booking transition applied", "session_id", id, "operation", op, "step", res.State.Step)
	return res, nil
}

func (s *Service) SelectService(ctx context.Context, id, serviceID string) (Result, error) {
	svc, err := s.catalog.Service(serviceID)
	if err != nil {
		return Result{}, err
	}
	return s.apply(ctx, id, "select_service", func(w *Wizard) bool { return w.SelectService(svc) })
}

func (s *Service) SelectDoctor(ctx context.Context, id, doctorID string) (Result, error) {
	doc, err := s.catalog.Doctor(doctorID)
	if err != nil {
		return Result{}, err
	}
	return s.apply(ctx, id, "select_doctor", func(w *Wizard) bool { return w.SelectDoctor(doc) })
}

func (s *Service) ContinueFromDoctor(ctx context.Context, id string) (Result, error) {
	return s.apply(ctx, id, "continue_doctor", (*Wizard).ContinueFromDoctor)
}

func (s *Service) SelectDate(ctx context.Context, id string, date time.Time) (Result, error) {
	return s.apply(ctx, id, "select_date", func(w *Wizard) bool { return w.SelectDate(date.In(s.loc)) })
}

// ParseDate reads a YYYY-MM-DD date in the clinic time zone.
func (s *Service) ParseDate(raw string) (time.Time, error) {
	d, err := time.ParseInLocation("2006-01-02", raw, s.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return d, nil
}

func (s *Service) SelectSlot(ctx context.Context, id, slotID string) (Result, error) {
	return s.apply(ctx, id, "select_slot", func(w *Wizard) bool { return w.SelectSlotByID(slotID) })
}

func (s *Service) ContinueFromSchedule(ctx context.Context, id string) (Result, error) {
	return s.apply(ctx, id, "continue_schedule", (*Wizard).ContinueFromSchedule)
}

// SubmitPatientDetails validates and stores the patient form. Validation
// failures come back in Result.Errors with Applied false.
func (s *Service) SubmitPatientDetails(ctx context.Context, id string, data PatientFormData) (Result, error) {
	var fieldErrs FieldErrors
	res, err := s.apply(ctx, id, "submit_details", func(w *Wizard) bool {
		var ok bool
		fieldErrs, ok = w.SubmitPatientDetails(data)
		return ok
	})
	if err != nil {
		return Result{}, err
	}
	res.Errors = fieldErrs
	return res, nil
}

// Confirm books the appointment and hands it to the repository and the
// notifier. Downstream failures are logged; the booking stands.
func (s *Service) Confirm(ctx context.Context, id string) (Result, error) {
	ctx, span := s.tracer.Start(ctx, "booking.confirm", trace.WithAttributes(attribute.String("booking.session_id", id)))
	defer span.End()
	started := time.Now()

	var booked *appointments.Appointment
	unlock := s.lock(id)
	defer unlock()

	state, err := s.load(ctx, id)
	if err != nil {
		span.RecordError(err)
		return Result{}, err
	}
	w := s.wizard(state, func(a appointments.Appointment) { booked = &a })
	res := Result{SessionID: id, Applied: w.ConfirmBooking(), State: w.State()}
	if !res.Applied {
		s.metrics.ObserveTransition("confirm", "rejected")
		span.SetAttributes(attribute.Bool("booking.applied", false))
		return res, nil
	}
	if err := s.store.Save(ctx, id, res.State); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "save session")
		return Result{}, fmt.Errorf("booking: confirm: %w", err)
	}
	s.metrics.ObserveTransition("confirm", "applied")
	s.metrics.ObserveConfirmed(booked.Service.ID)
	span.SetAttributes(
		attribute.Bool("booking.applied", true),
		attribute.String("booking.appointment_id", booked.ID),
		attribute.String("booking.service_id", booked.Service.ID),
		attribute.String("booking.doctor_id", booked.Doctor.ID),
	)
	s.logger.Info("booking confirmed",
		"session_id", id,
		"appointment_id", booked.ID,
		"confirmation_code", booked.ConfirmationCode,
		"service_id", booked.Service.ID,
		"doctor_id", booked.Doctor.ID,
	)

	s.complete(ctx, span, *booked)
	s.metrics.ObserveConfirmLatency(time.Since(started).Seconds())
	return res, nil
}

func (s *Service) complete(ctx context.Context, span trace.Span, appt appointments.Appointment) {
	if s.repo != nil {
		if err := s.repo.Create(ctx, &appt); err != nil {
			span.RecordError(err)
			s.metrics.ObserveSinkFailure("repository")
			s.logger.Error("booking: persist appointment", "error", err, "appointment_id", appt.ID)
		}
	}
	if s.notifier != nil {
		if err := s.notifier.NotifyBookingConfirmed(ctx, appt); err != nil {
			span.RecordError(err)
			s.metrics.ObserveSinkFailure("email")
			s.logger.Warn("booking: confirmation email failed", "error", err, "appointment_id", appt.ID)
		}
	}
}

func (s *Service) DismissConfirmation(ctx context.Context, id string) (Result, error) {
	return s.apply(ctx, id, "dismiss", (*Wizard).DismissConfirmation)
}

func (s *Service) EditStep(ctx context.Context, id string, index int) (Result, error) {
	return s.apply(ctx, id, "edit_step", func(w *Wizard) bool { return w.EditStep(index) })
}

func (s *Service) GoBack(ctx context.Context, id string) (Result, error) {
	return s.apply(ctx, id, "go_back", (*Wizard).GoBack)
}

// Close abandons the session.
func (s *Service) Close(ctx context.Context, id string) error {
	unlock := s.lock(id)
	defer unlock()

	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("booking: close: %w", err)
	}
	s.metrics.ObserveTransition("close", "applied")
	s.logger.Info("booking session closed", "session_id", id)
	return nil
}
