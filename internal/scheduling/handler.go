package scheduling

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/wolfman30/medcare-booking/pkg/logging"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

// Handler exposes slot generation and the month calendar over HTTP.
type Handler struct {
	generator *Generator
	now       func() time.Time
	logger    *logging.Logger
}

// NewHandler creates a scheduling HTTP handler. now defaults to time.Now.
func NewHandler(gen *Generator, now func() time.Time, logger *logging.Logger) *Handler {
	if gen == nil {
		gen = NewGenerator(nil)
	}
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{generator: gen, now: now, logger: logger}
}

// RegisterRoutes mounts scheduling endpoints. Expected under /schedule.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/slots", h.getSlots)
	r.Get("/calendar", h.getCalendar)
}

// SlotsResponse is the body of GET /schedule/slots.
type SlotsResponse struct {
	Date           string       `json:"date"`
	Slots          []TimeSlot   `json:"slots"`
	Periods        PeriodGroups `json:"periods"`
	AvailableCount int          `json:"available_count"`
}

// getSlots handles GET /schedule/slots?date=YYYY-MM-DD
func (h *Handler) getSlots(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		h.writeError(w, http.StatusBadRequest, "date required")
		return
	}
	date, err := time.ParseInLocation(dateLayout, raw, h.now().Location())
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid date, use YYYY-MM-DD")
		return
	}
	if !NewCalendar(h.now).IsSelectable(date) {
		h.writeError(w, http.StatusUnprocessableEntity, "date is in the past")
		return
	}

	slots := h.generator.Generate(date)
	h.logger.Debug("slots generated", "date", raw, "available", AvailableCount(slots))
	h.writeJSON(w, http.StatusOK, SlotsResponse{
		Date:           raw,
		Slots:          slots,
		Periods:        GroupByPeriod(slots),
		AvailableCount: AvailableCount(slots),
	})
}

// CalendarResponse is the body of GET /schedule/calendar.
type CalendarResponse struct {
	Month         string   `json:"month"`
	Label         string   `json:"label"`
	CanGoPrevious bool     `json:"can_go_previous"`
	WeekDays      []string `json:"week_days"`
	Days          []Day    `json:"days"`
}

// getCalendar handles GET /schedule/calendar?month=YYYY-MM
func (h *Handler) getCalendar(w http.ResponseWriter, r *http.Request) {
	cal := NewCalendar(h.now)
	if raw := r.URL.Query().Get("month"); raw != "" {
		m, err := time.Parse(monthLayout, raw)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "invalid month, use YYYY-MM")
			return
		}
		if !cal.ShowMonth(m.Year(), m.Month()) {
			h.writeError(w, http.StatusBadRequest, "month is before the current month")
			return
		}
	}

	h.writeJSON(w, http.StatusOK, CalendarResponse{
		Month:         cal.DisplayedMonth().Format(monthLayout),
		Label:         cal.MonthLabel(),
		CanGoPrevious: cal.CanGoPrevious(),
		WeekDays:      WeekDays,
		Days:          cal.Days(),
	})
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("scheduling: encode response", "error", err)
	}
}
