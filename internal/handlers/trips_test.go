package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VIAJAPLUS_BACK-END/internal/dto"
	"VIAJAPLUS_BACK-END/internal/models"
)

func TestCreateTripEndpoint(t *testing.T) {
	env := newTestEnv(t)

	body := `{"title":"Patagonia Hike","destination":"El Chalten","start_date":"2026-11-01","end_date":"2026-11-14","budget":2500,"currency":"usd"}`
	r := authedRequest(http.MethodPost, "/api/trips", body, env.owner)
	w := httptest.NewRecorder()
	env.trips.Trips(w, r)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp dto.TripResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "planning", resp.Status)
	assert.Equal(t, "USD", resp.Currency)

	// The creator is on the roster as owner.
	tripID, err := uuid.Parse(resp.ID)
	require.NoError(t, err)
	member, err := env.store.GetMember(context.Background(), tripID, env.owner.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleOwner, member.Role)
}

func TestCreateTripRejectsBadDates(t *testing.T) {
	env := newTestEnv(t)

	body := `{"title":"Backwards","destination":"Nowhere","start_date":"2026-11-14","end_date":"2026-11-01"}`
	r := authedRequest(http.MethodPost, "/api/trips", body, env.owner)
	w := httptest.NewRecorder()
	env.trips.Trips(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTripDetailRequiresMembership(t *testing.T) {
	env := newTestEnv(t)

	outsider := models.User{ID: uuid.New(), Email: "outsider@example.com"}
	require.NoError(t, env.store.CreateUser(context.Background(), outsider))

	r := authedRequest(http.MethodGet, "/api/trips/"+env.trip.ID.String(), "", outsider)
	w := httptest.NewRecorder()
	env.trips.Trips(w, r)
	assert.Equal(t, http.StatusForbidden, w.Code)

	r = authedRequest(http.MethodGet, "/api/trips/"+env.trip.ID.String(), "", env.owner)
	w = httptest.NewRecorder()
	env.trips.Trips(w, r)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.TripDetailResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, env.trip.Title, resp.Title)
	require.Len(t, resp.Members, 1)
	assert.Equal(t, env.owner.ID.String(), resp.Members[0].UserID)
}

func TestUpdateTripOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	env.addMember(t, env.invitee)

	body := `{"title":"Renamed"}`
	r := authedRequest(http.MethodPut, "/api/trips/"+env.trip.ID.String(), body, env.invitee)
	w := httptest.NewRecorder()
	env.trips.Trips(w, r)
	assert.Equal(t, http.StatusForbidden, w.Code)

	r = authedRequest(http.MethodPut, "/api/trips/"+env.trip.ID.String(), body, env.owner)
	w = httptest.NewRecorder()
	env.trips.Trips(w, r)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.TripResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Renamed", resp.Title)
	// Untouched fields survived the partial update.
	assert.Equal(t, env.trip.Destination, resp.Destination)
}

func TestListTripsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.addMember(t, env.invitee)

	r := authedRequest(http.MethodGet, "/api/trips", "", env.invitee)
	w := httptest.NewRecorder()
	env.trips.Trips(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.TripListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
}

func TestDeleteTripOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	env.addMember(t, env.invitee)

	r := authedRequest(http.MethodDelete, "/api/trips/"+env.trip.ID.String(), "", env.invitee)
	w := httptest.NewRecorder()
	env.trips.Trips(w, r)
	assert.Equal(t, http.StatusForbidden, w.Code)

	r = authedRequest(http.MethodDelete, "/api/trips/"+env.trip.ID.String(), "", env.owner)
	w = httptest.NewRecorder()
	env.trips.Trips(w, r)
	require.Equal(t, http.StatusOK, w.Code)

	_, err := env.store.GetTrip(context.Background(), env.trip.ID)
	assert.Error(t, err)
}
