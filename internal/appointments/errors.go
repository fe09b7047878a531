package appointments

import "errors"

var (
	// ErrInvalidStatus is returned for a status filter outside all/upcoming/completed/cancelled
	ErrInvalidStatus = errors.New("appointments: invalid status filter")

	// ErrNotFound is returned when no appointment matches
	ErrNotFound = errors.New("appointments: not found")

	// ErrDuplicate is returned when an appointment id or confirmation code is reused
	ErrDuplicate = errors.New("appointments: duplicate appointment")
)
