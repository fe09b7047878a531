package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wolfman30/medcare-booking/pkg/logging"
)

func TestDefaultCatalogLookups(t *testing.T) {
	c := Default()

	require.Len(t, c.Services(), 6)
	require.Len(t, c.Doctors(), 6)

	svc, err := c.Service("4")
	require.NoError(t, err)
	assert.Equal(t, "Cardiology", svc.Name)
	assert.Equal(t, 60, svc.Duration)

	doc, err := c.Doctor("2")
	require.NoError(t, err)
	assert.Equal(t, "Dr. James Wilson", doc.Name)
	assert.False(t, doc.AvailableToday)

	_, err = c.Service("99")
	assert.ErrorIs(t, err, ErrUnknownService)
	_, err = c.Doctor("")
	assert.ErrorIs(t, err, ErrUnknownDoctor)
}

func TestCatalogReturnsCopies(t *testing.T) {
	c := Default()
	doctors := c.Doctors()
	doctors[0].Name = "mutated"
	doctors[0].Languages[0] = "Klingon"

	again, err := c.Doctor("1")
	require.NoError(t, err)
	assert.Equal(t, "Dr. Sarah Mitchell", again.Name)
	assert.Equal(t, "English", again.Languages[0])
}

func TestDoctorLastName(t *testing.T) {
	assert.Equal(t, "Mitchell", Doctor{Name: "Dr. Sarah Mitchell"}.LastName())
	assert.Equal(t, "Cher", Doctor{Name: "Cher"}.LastName())
}

func newTestRouter() http.Handler {
	r := chi.NewRouter()
	r.Route("/catalog", NewHandler(Default(), logging.Discard()).RegisterRoutes)
	return r
}

func TestHandlerListServices(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/catalog/services", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var body struct {
		Services []Service `json:"services"`
		Count    int       `json:"count"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, 6, body.Count)
	assert.Equal(t, "General Consultation", body.Services[0].Name)
}

func TestHandlerGetDoctor(t *testing.T) {
	router := newTestRouter()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/catalog/doctors/3", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var doc Doctor
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&doc))
	assert.Equal(t, "Dr. Emily Chen", doc.Name)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/catalog/doctors/nope", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"doctor not found"}`, rr.Body.String())
}
