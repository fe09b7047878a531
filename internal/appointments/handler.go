package appointments

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/wolfman30/medcare-booking/pkg/logging"
)

// Handler serves the patient dashboard.
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates a dashboard HTTP handler.
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, logger: logger}
}

// RegisterRoutes mounts dashboard endpoints. Expected under /appointments.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listAppointments)
	r.Get("/{code}", h.getAppointment)
}

// ListResponse is the dashboard payload. Stats ignore the filter.
type ListResponse struct {
	Appointments []Appointment `json:"appointments"`
	Count        int           `json:"count"`
	Stats        Stats         `json:"stats"`
	Query        string        `json:"query"`
	Status       StatusFilter  `json:"status"`
}

// listAppointments handles GET /appointments?q=&status=
func (h *Handler) listAppointments(w http.ResponseWriter, r *http.Request) {
	status, err := ParseStatusFilter(r.URL.Query().Get("status"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "status must be all, upcoming, completed or cancelled")
		return
	}
	filter := Filter{Query: r.URL.Query().Get("q"), Status: status}

	all, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("appointments handler: list", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	matched := filter.Apply(all)
	h.writeJSON(w, http.StatusOK, ListResponse{
		Appointments: matched,
		Count:        len(matched),
		Stats:        ComputeStats(all),
		Query:        filter.Query,
		Status:       filter.Status,
	})
}

// getAppointment handles GET /appointments/{code}
func (h *Handler) getAppointment(w http.ResponseWriter, r *http.Request) {
	appt, err := h.repo.GetByConfirmationCode(r.Context(), chi.URLParam(r, "code"))
	if errors.Is(err, ErrNotFound) {
		h.writeError(w, http.StatusNotFound, "appointment not found")
		return
	}
	if err != nil {
		h.logger.Error("appointments handler: get", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	h.writeJSON(w, http.StatusOK, appt)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("appointments handler: encode", "error", err)
	}
}
