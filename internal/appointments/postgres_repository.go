package appointments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB abstracts the pgx query interface for testing.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const uniqueViolation = "23505"

// PostgresRepository stores appointments in the appointments table. The
// doctor, service and time slot are kept as JSONB snapshots so later catalog
// edits never rewrite history.
type PostgresRepository struct {
	db DB
}

// NewPostgresRepository initializes a repo backed by a pgx pool or mock.
func NewPostgresRepository(db DB) *PostgresRepository {
	if db == nil {
		panic("appointments: db required")
	}
	return &PostgresRepository{db: db}
}

const selectColumns = `id, patient_name, patient_email, patient_phone, doctor, service, appointment_date, time_slot, status, notes, confirmation_code`

// Create inserts a new row.
func (r *PostgresRepository) Create(ctx context.Context, appt *Appointment) error {
	doctor, err := json.Marshal(appt.Doctor)
	if err != nil {
		return fmt.Errorf("appointments: marshal doctor: %w", err)
	}
	service, err := json.Marshal(appt.Service)
	if err != nil {
		return fmt.Errorf("appointments: marshal service: %w", err)
	}
	slot, err := json.Marshal(appt.TimeSlot)
	if err != nil {
		return fmt.Errorf("appointments: marshal time slot: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO appointments (id, patient_name, patient_email, patient_phone, doctor, service, appointment_date, time_slot, status, notes, confirmation_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		appt.ID, appt.PatientName, appt.PatientEmail, appt.PatientPhone,
		doctor, service, appt.Date, slot, string(appt.Status), appt.Notes,
		appt.ConfirmationCode, time.Now().UTC(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicate
		}
		return fmt.Errorf("appointments: insert: %w", err)
	}
	return nil
}

// List returns all appointments, oldest booking first.
func (r *PostgresRepository) List(ctx context.Context) ([]Appointment, error) {
	rows, err := r.db.Query(ctx, `SELECT `+selectColumns+` FROM appointments ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("appointments: list: %w", err)
	}
	defer rows.Close()

	var out []Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("appointments: list rows: %w", err)
	}
	return out, nil
}

// GetByConfirmationCode fetches one appointment by code, ignoring case.
func (r *PostgresRepository) GetByConfirmationCode(ctx context.Context, code string) (*Appointment, error) {
	row := r.db.QueryRow(ctx, `SELECT `+selectColumns+` FROM appointments WHERE UPPER(confirmation_code) = UPPER($1)`, code)
	a, err := scanAppointment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var (
		a                     Appointment
		doctor, service, slot []byte
		status                string
	)
	if err := row.Scan(
		&a.ID, &a.PatientName, &a.PatientEmail, &a.PatientPhone,
		&doctor, &service, &a.Date, &slot, &status, &a.Notes, &a.ConfirmationCode,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("appointments: scan: %w", err)
	}
	a.Status = Status(status)
	if err := json.Unmarshal(doctor, &a.Doctor); err != nil {
		return nil, fmt.Errorf("appointments: decode doctor: %w", err)
	}
	if err := json.Unmarshal(service, &a.Service); err != nil {
		return nil, fmt.Errorf("appointments: decode service: %w", err)
	}
	if err := json.Unmarshal(slot, &a.TimeSlot); err != nil {
		return nil, fmt.Errorf("appointments: decode time slot: %w", err)
	}
	return &a, nil
}
