package booking

import "errors"

var (
	// ErrSessionNotFound is returned for unknown or expired booking sessions.
	ErrSessionNotFound = errors.New("booking: session not found")
	// ErrInvalidDate is returned when a date cannot be parsed.
	ErrInvalidDate = errors.New("booking: invalid date")
)
