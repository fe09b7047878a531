package catalog

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/wolfman30/medcare-booking/pkg/logging"
)

// Handler serves the read-only catalog.
type Handler struct {
	catalog *Catalog
	logger  *logging.Logger
}

// NewHandler creates a catalog HTTP handler.
func NewHandler(c *Catalog, logger *logging.Logger) *Handler {
	if c == nil {
		panic("catalog: catalog required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{catalog: c, logger: logger}
}

// RegisterRoutes mounts catalog endpoints. Expected under /catalog.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/services", h.listServices)
	r.Get("/services/{serviceID}", h.getService)
	r.Get("/doctors", h.listDoctors)
	r.Get("/doctors/{doctorID}", h.getDoctor)
}

func (h *Handler) listServices(w http.ResponseWriter, r *http.Request) {
	services := h.catalog.Services()
	h.writeJSON(w, http.StatusOK, map[string]any{
		"services": services,
		"count":    len(services),
	})
}

func (h *Handler) getService(w http.ResponseWriter, r *http.Request) {
	svc, err := h.catalog.Service(chi.URLParam(r, "serviceID"))
	if errors.Is(err, ErrUnknownService) {
		h.writeError(w, http.StatusNotFound, "service not found")
		return
	}
	h.writeJSON(w, http.StatusOK, svc)
}

func (h *Handler) listDoctors(w http.ResponseWriter, r *http.Request) {
	doctors := h.catalog.Doctors()
	h.writeJSON(w, http.StatusOK, map[string]any{
		"doctors": doctors,
		"count":   len(doctors),
	})
}

func (h *Handler) getDoctor(w http.ResponseWriter, r *http.Request) {
	doc, err := h.catalog.Doctor(chi.URLParam(r, "doctorID"))
	if errors.Is(err, ErrUnknownDoctor) {
		h.writeError(w, http.StatusNotFound, "doctor not found")
		return
	}
	h.writeJSON(w, http.StatusOK, doc)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("catalog: encode response", "error", err)
	}
}
