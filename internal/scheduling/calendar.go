package scheduling

import "time"

// Day is one cell of the month grid. Leading cells before the 1st are Empty.
type Day struct {
	Date      time.Time `json:"date,omitzero"`
	Empty     bool      `json:"empty,omitempty"`
	IsToday   bool      `json:"is_today"`
	IsPast    bool      `json:"is_past"`
	IsWeekend bool      `json:"is_weekend"`
}

// Selectable reports whether the cell can be picked.
func (d Day) Selectable() bool {
	return !d.Empty && !d.IsPast
}

// WeekDays are the grid column headers, Sunday first.
var WeekDays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Calendar tracks the displayed month separately from the selected date.
// Navigation never goes before the month containing "now".
type Calendar struct {
	now      func() time.Time
	month    time.Time // first day of the displayed month
	selected *time.Time
}

// NewCalendar opens on the current month. now defaults to time.Now.
func NewCalendar(now func() time.Time) *Calendar {
	if now == nil {
		now = time.Now
	}
	return &Calendar{now: now, month: firstOfMonth(now())}
}

// DisplayedMonth returns midnight on the first of the displayed month.
func (c *Calendar) DisplayedMonth() time.Time {
	return c.month
}

// MonthLabel renders the displayed month as "October 2026".
func (c *Calendar) MonthLabel() string {
	return c.month.Format("January 2006")
}

// CanGoPrevious is false while the current month is displayed.
func (c *Calendar) CanGoPrevious() bool {
	return c.month.After(firstOfMonth(c.now()))
}

// PreviousMonth moves back one month when allowed.
func (c *Calendar) PreviousMonth() bool {
	if !c.CanGoPrevious() {
		return false
	}
	c.month = c.month.AddDate(0, -1, 0)
	return true
}

// NextMonth moves forward one month.
func (c *Calendar) NextMonth() {
	c.month = c.month.AddDate(0, 1, 0)
}

// ShowMonth jumps to the given month unless it lies before the current one.
func (c *Calendar) ShowMonth(year int, month time.Month) bool {
	target := time.Date(year, month, 1, 0, 0, 0, 0, c.month.Location())
	if target.Before(firstOfMonth(c.now())) {
		return false
	}
	c.month = target
	return true
}

// Days builds the grid for the displayed month.
func (c *Calendar) Days() []Day {
	today := startOfDay(c.now())
	first := c.month
	last := first.AddDate(0, 1, -1)

	days := make([]Day, 0, 42)
	for i := 0; i < int(first.Weekday()); i++ {
		days = append(days, Day{Empty: true})
	}
	for d := 1; d <= last.Day(); d++ {
		date := time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, first.Location())
		wd := date.Weekday()
		days = append(days, Day{
			Date:      date,
			IsToday:   date.Equal(today),
			IsPast:    date.Before(today),
			IsWeekend: wd == time.Saturday || wd == time.Sunday,
		})
	}
	return days
}

// IsSelectable reports whether date is today or later. Time of day is ignored.
func (c *Calendar) IsSelectable(date time.Time) bool {
	return !startOfDay(date).Before(startOfDay(c.now()))
}

// Select records date as the selection. Past dates are ignored.
func (c *Calendar) Select(date time.Time) bool {
	if !c.IsSelectable(date) {
		return false
	}
	d := startOfDay(date)
	c.selected = &d
	return true
}

// Selected returns the selected date, if any.
func (c *Calendar) Selected() (time.Time, bool) {
	if c.selected == nil {
		return time.Time{}, false
	}
	return *c.selected, true
}

// IsSelected compares calendar dates only.
func (c *Calendar) IsSelected(date time.Time) bool {
	if c.selected == nil {
		return false
	}
	return SameDay(*c.selected, date)
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// StartOfDay zeroes the time of day, keeping the location.
func StartOfDay(t time.Time) time.Time {
	return startOfDay(t)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
