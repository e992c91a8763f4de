package bookings

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restoran-backoffice/internal/models"
	"restoran-backoffice/internal/webtest"
)

func TestListReservations_Paginates(t *testing.T) {
	var list []models.Reservation
	for i := 1; i <= 6; i++ {
		list = append(list, models.Reservation{ID: int64(i), Name: "Client", NumberOfPeople: i})
	}
	list = append(list, models.Reservation{ID: 7, Name: "Nadia"})
	up := webtest.NewUpstream(t).JSON("GET", "/api/reservations/all/42", 200, list)
	app := webtest.App()
	app.Get("/reservations", ListReservationsHandler(webtest.Deps(t, up)))

	status, body := webtest.Do(t, app, httptest.NewRequest("GET", "/reservations?page=2", nil))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2), body["page"])
	assert.Equal(t, float64(7), body["total"])
	assert.Len(t, body["items"], 2)

	status, body = webtest.Do(t, app, httptest.NewRequest("GET", "/reservations?search=nad", nil))
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["items"], 1)
}

func TestUpdateReservation(t *testing.T) {
	var sent models.Reservation
	up := webtest.NewUpstream(t)
	up.On("PUT", "/api/reservations/4", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
		assert.Equal(t, "userId=42", r.URL.RawQuery)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":4,"name":"Nadia","numberOfPeople":5}`)
	})
	app := webtest.App()
	app.Put("/reservations/:id", UpdateReservationHandler(webtest.Deps(t, up)))

	status, body := webtest.Do(t, app, webtest.JSONRequest("PUT", "/reservations/4", map[string]any{
		"name": " Nadia ", "phone": "0600000000", "datetime": "2026-03-07T20:00", "numberOfPeople": 5,
	}))
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, int64(4), sent.ID)
	assert.Equal(t, "Nadia", sent.Name)
	assert.Equal(t, 5, sent.NumberOfPeople)
	assert.Equal(t, "Reservation updated", body["message"])
}

func TestUpdateReservation_Invalid(t *testing.T) {
	up := webtest.NewUpstream(t)
	app := webtest.App()
	app.Put("/reservations/:id", UpdateReservationHandler(webtest.Deps(t, up)))

	status, body := webtest.Do(t, app, webtest.JSONRequest("PUT", "/reservations/4", map[string]any{
		"name": "Nadia", "phone": "", "datetime": "2026-03-07T20:00", "numberOfPeople": 0,
	}))
	assert.Equal(t, http.StatusBadRequest, status)
	fields := body["fields"].(map[string]any)
	assert.Contains(t, fields, "phone")
	assert.Contains(t, fields, "numberOfPeople")
	assert.Equal(t, "Nadia", body["form"].(map[string]any)["name"])
	assert.Empty(t, up.Calls())
}

func TestUpdateReservation_UnparsableKeepsInput(t *testing.T) {
	up := webtest.NewUpstream(t)
	app := webtest.App()
	app.Put("/reservations/:id", UpdateReservationHandler(webtest.Deps(t, up)))

	status, body := webtest.Do(t, app, webtest.JSONRequest("PUT", "/reservations/4", map[string]any{
		"name": "Nadia", "phone": "0600000000", "numberOfPeople": "five",
	}))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["fields"].(map[string]any), "_")
	form := body["form"].(map[string]any)
	assert.Equal(t, "Nadia", form["name"])
	assert.Equal(t, "0600000000", form["phone"])
	assert.Empty(t, up.Calls())
}

func TestDeleteReservation_NotFound(t *testing.T) {
	up := webtest.NewUpstream(t)
	app := webtest.App()
	app.Delete("/reservations/:id", DeleteReservationHandler(webtest.Deps(t, up)))

	status, body := webtest.Do(t, app, httptest.NewRequest("DELETE", "/reservations/9", nil))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Failed to delete reservation: not found", body["error"])
}
