package scheduling

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

func newHandlerRouter() http.Handler {
	h := NewHandler(NewGenerator(FixedAvailability{Default: true}), fixedNow(calendarNow), logging.Discard())
	r := chi.NewRouter()
	r.Route("/schedule", h.RegisterRoutes)
	return r
}

func TestHandlerSlots(t *testing.T) {
	rr := httptest.NewRecorder()
	newHandlerRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/schedule/slots?date=2026-10-20", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var resp SlotsResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "2026-10-20", resp.Date)
	assert.Len(t, resp.Slots, 20)
	assert.Len(t, resp.Periods.Evening, 4)
	assert.Equal(t, 20, resp.AvailableCount)
}

func TestHandlerSlotsValidation(t *testing.T) {
	router := newHandlerRouter()
	cases := map[string]int{
		"/schedule/slots":                 http.StatusBadRequest,
		"/schedule/slots?date=10/20/2026": http.StatusBadRequest,
		"/schedule/slots?date=2026-10-16": http.StatusUnprocessableEntity,
		"/schedule/slots?date=2026-10-17": http.StatusOK,
	}
	for url, want := range cases {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, url, nil))
		assert.Equal(t, want, rr.Code, url)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"), url)
	}
}

func TestHandlerErrorsAreJSON(t *testing.T) {
	router := newHandlerRouter()
	cases := map[string]string{
		"/schedule/slots?date=2026-10-16":    "date is in the past",
		"/schedule/calendar?month=2026-09":   "month is before the current month",
		"/schedule/calendar?month=september": "invalid month, use YYYY-MM",
	}
	for url, msg := range cases {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, url, nil))
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"), url)
		var body map[string]string
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&body), url)
		assert.Equal(t, msg, body["error"], url)
	}
}

func TestHandlerCalendar(t *testing.T) {
	router := newHandlerRouter()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/schedule/calendar", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var resp CalendarResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "2026-10", resp.Month)
	assert.False(t, resp.CanGoPrevious)
	assert.Len(t, resp.Days, 35)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/schedule/calendar?month=2026-12", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "December 2026", resp.Label)
	assert.True(t, resp.CanGoPrevious)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/schedule/calendar?month=2026-09", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
