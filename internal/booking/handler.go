package booking

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wolfman30/medcare-booking/internal/catalog"
	"github.com/wolfman30/medcare-booking/pkg/logging"
)

// Handler exposes booking sessions over HTTP.
type Handler struct {
	svc    *Service
	logger *logging.Logger
}

// NewHandler creates a booking HTTP handler.
func NewHandler(svc *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{svc: svc, logger: logger}
}

// RegisterRoutes mounts booking endpoints. Expected under /bookings.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.start)
	r.Route("/{sessionID}", func(r chi.Router) {
		r.Get("/", h.get)
		r.Delete("/", h.close)
		r.Post("/service", h.selectService)
		r.Post("/doctor", h.selectDoctor)
		r.Post("/doctor/continue", h.continueFromDoctor)
		r.Post("/date", h.selectDate)
		r.Post("/slot", h.selectSlot)
		r.Post("/schedule/continue", h.continueFromSchedule)
		r.Post("/details", h.submitDetails)
		r.Post("/confirm", h.confirm)
		r.Post("/back", h.goBack)
		r.Post("/edit", h.editStep)
		r.Post("/dismiss", h.dismiss)
	})
}

// SessionResponse is returned by every booking endpoint.
type SessionResponse struct {
	SessionID string   `json:"session_id"`
	Applied   bool     `json:"applied"`
	State     State    `json:"state"`
	Progress  Progress `json:"progress"`
	Summary   Summary  `json:"summary"`
}

type startRequest struct {
	ServiceID string `json:"service_id"`
}

type selectServiceRequest struct {
	ServiceID string `json:"service_id"`
}

type selectDoctorRequest struct {
	DoctorID string `json:"doctor_id"`
}

type selectDateRequest struct {
	Date string `json:"date"` // YYYY-MM-DD
}

type selectSlotRequest struct {
	SlotID string `json:"slot_id"`
}

type editStepRequest struct {
	Step int `json:"step"`
}

type validationResponse struct {
	Errors FieldErrors `json:"errors"`
}

// start handles POST /bookings. The body is optional.
func (h *Handler) start(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.ServiceID == "" {
		req.ServiceID = r.URL.Query().Get("service_id")
	}
	res, err := h.svc.Start(r.Context(), req.ServiceID)
	if err != nil {
		h.fail(w, "start", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toResponse(res))
}

// get handles GET /bookings/{sessionID}
func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	state, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.fail(w, "get", err)
		return
	}
	h.writeJSON(w, http.StatusOK, toResponse(Result{SessionID: id, State: state, Applied: true}))
}

// close handles DELETE /bookings/{sessionID}
func (h *Handler) close(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Close(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		h.fail(w, "close", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) selectService(w http.ResponseWriter, r *http.Request) {
	var req selectServiceRequest
	if !h.decode(w, r, &req) {
		return
	}
	res, err := h.svc.SelectService(r.Context(), chi.URLParam(r, "sessionID"), req.ServiceID)
	h.respond(w, "select service", res, err)
}

func (h *Handler) selectDoctor(w http.ResponseWriter, r *http.Request) {
	var req selectDoctorRequest
	if !h.decode(w, r, &req) {
		return
	}
	res, err := h.svc.SelectDoctor(r.Context(), chi.URLParam(r, "sessionID"), req.DoctorID)
	h.respond(w, "select doctor", res, err)
}

func (h *Handler) continueFromDoctor(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.ContinueFromDoctor(r.Context(), chi.URLParam(r, "sessionID"))
	h.respond(w, "continue from doctor", res, err)
}

func (h *Handler) selectDate(w http.ResponseWriter, r *http.Request) {
	var req selectDateRequest
	if !h.decode(w, r, &req) {
		return
	}
	date, err := h.svc.ParseDate(req.Date)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	res, err := h.svc.SelectDate(r.Context(), chi.URLParam(r, "sessionID"), date)
	h.respond(w, "select date", res, err)
}

func (h *Handler) selectSlot(w http.ResponseWriter, r *http.Request) {
	var req selectSlotRequest
	if !h.decode(w, r, &req) {
		return
	}
	res, err := h.svc.SelectSlot(r.Context(), chi.URLParam(r, "sessionID"), req.SlotID)
	h.respond(w, "select slot", res, err)
}

func (h *Handler) continueFromSchedule(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.ContinueFromSchedule(r.Context(), chi.URLParam(r, "sessionID"))
	h.respond(w, "continue from schedule", res, err)
}

// submitDetails handles POST /bookings/{sessionID}/details. Validation
// failures answer 422 with the per-field messages.
func (h *Handler) submitDetails(w http.ResponseWriter, r *http.Request) {
	var req PatientFormData
	if !h.decode(w, r, &req) {
		return
	}
	res, err := h.svc.SubmitPatientDetails(r.Context(), chi.URLParam(r, "sessionID"), req)
	if err == nil && len(res.Errors) > 0 {
		h.writeJSON(w, http.StatusUnprocessableEntity, validationResponse{Errors: res.Errors})
		return
	}
	h.respond(w, "submit details", res, err)
}

func (h *Handler) confirm(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Confirm(r.Context(), chi.URLParam(r, "sessionID"))
	h.respond(w, "confirm", res, err)
}

func (h *Handler) goBack(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.GoBack(r.Context(), chi.URLParam(r, "sessionID"))
	h.respond(w, "go back", res, err)
}

func (h *Handler) editStep(w http.ResponseWriter, r *http.Request) {
	var req editStepRequest
	if !h.decode(w, r, &req) {
		return
	}
	res, err := h.svc.EditStep(r.Context(), chi.URLParam(r, "sessionID"), req.Step)
	h.respond(w, "edit step", res, err)
}

func (h *Handler) dismiss(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.DismissConfirmation(r.Context(), chi.URLParam(r, "sessionID"))
	h.respond(w, "dismiss", res, err)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// respond writes 200 for an applied operation and 409 with the unchanged
// state for a rejected one.
func (h *Handler) respond(w http.ResponseWriter, op string, res Result, err error) {
	if err != nil {
		h.fail(w, op, err)
		return
	}
	status := http.StatusOK
	if !res.Applied {
		status = http.StatusConflict
	}
	h.writeJSON(w, status, toResponse(res))
}

func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		h.writeError(w, http.StatusNotFound, "booking session not found")
	case errors.Is(err, catalog.ErrUnknownService):
		h.writeError(w, http.StatusBadRequest, "unknown service")
	case errors.Is(err, catalog.ErrUnknownDoctor):
		h.writeError(w, http.StatusBadRequest, "unknown doctor")
	case errors.Is(err, ErrInvalidDate):
		h.writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
	default:
		h.logger.Error("booking handler: "+op, "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func toResponse(res Result) SessionResponse {
	return SessionResponse{
		SessionID: res.SessionID,
		Applied:   res.Applied,
		State:     res.State,
		Progress:  ProgressOf(res.State.Step),
		Summary:   res.State.Summary(),
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("booking handler: encode", "error", err)
	}
}
