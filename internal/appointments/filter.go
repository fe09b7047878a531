package appointments

import (
	"strings"
)

// StatusFilter narrows the dashboard list. StatusAll imposes no constraint.
type StatusFilter string

const StatusAll StatusFilter = "all"

// ParseStatusFilter accepts "", "all" or a concrete status.
func ParseStatusFilter(raw string) (StatusFilter, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" || raw == string(StatusAll) {
		return StatusAll, nil
	}
	if !Status(raw).Valid() {
		return "", ErrInvalidStatus
	}
	return StatusFilter(raw), nil
}

// Filter combines a free-text query with a status filter.
type Filter struct {
	Query  string
	Status StatusFilter
}

// Matches reports whether a passes both the text and the status check.
func (f Filter) Matches(a Appointment) bool {
	return f.matchesText(a) && f.matchesStatus(a)
}

// matchesText is a case-insensitive substring check on doctor name, service
// name and confirmation code.
func (f Filter) matchesText(a Appointment) bool {
	q := strings.ToLower(f.Query)
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(a.Doctor.Name), q) ||
		strings.Contains(strings.ToLower(a.Service.Name), q) ||
		strings.Contains(strings.ToLower(a.ConfirmationCode), q)
}

func (f Filter) matchesStatus(a Appointment) bool {
	if f.Status == "" || f.Status == StatusAll {
		return true
	}
	return string(a.Status) == string(f.Status)
}

// Apply returns the matching appointments in their original order.
func (f Filter) Apply(list []Appointment) []Appointment {
	out := make([]Appointment, 0, len(list))
	for _, a := range list {
		if f.Matches(a) {
			out = append(out, a)
		}
	}
	return out
}

// Stats are the dashboard totals. They are always computed over the full list.
type Stats struct {
	Upcoming  int `json:"upcoming"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}

// ComputeStats counts appointments per status.
func ComputeStats(list []Appointment) Stats {
	var s Stats
	for _, a := range list {
		switch a.Status {
		case StatusUpcoming:
			s.Upcoming++
		case StatusCompleted:
			s.Completed++
		case StatusCancelled:
			s.Cancelled++
		}
	}
	return s
}
