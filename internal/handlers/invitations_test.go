package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VIAJAPLUS_BACK-END/internal/dto"
	"VIAJAPLUS_BACK-END/internal/invitations"
	"VIAJAPLUS_BACK-END/internal/membership"
	"VIAJAPLUS_BACK-END/internal/models"
	"VIAJAPLUS_BACK-END/internal/notifications"
	"VIAJAPLUS_BACK-END/internal/store/memorystore"
	"VIAJAPLUS_BACK-END/internal/utils"
)

type testEnv struct {
	store       *memorystore.Store
	gate        *membership.Gate
	invitations *InvitationsHandler
	members     *MembersHandler
	trips       *TripsHandler
	owner       models.User
	invitee     models.User
	trip        models.Trip
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	st := memorystore.New()

	owner := models.User{ID: uuid.New(), Email: "owner@example.com", CreatedAt: time.Now(), UpdatedAt: time.Now()}
	invitee := models.User{ID: uuid.New(), Email: "invitee@example.com", CreatedAt: time.Now(), UpdatedAt: time.Now()}
	require.NoError(t, st.CreateUser(ctx, owner))
	require.NoError(t, st.CreateUser(ctx, invitee))

	trip := models.Trip{
		ID:          uuid.New(),
		OwnerID:     owner.ID,
		Title:       "Kyoto in Autumn",
		Destination: "Kyoto",
		StartDate:   time.Now().AddDate(0, 2, 0),
		EndDate:     time.Now().AddDate(0, 2, 10),
		Status:      models.TripStatusPlanning,
		Currency:    "JPY",
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	require.NoError(t, st.CreateTrip(ctx, trip))
	require.NoError(t, st.AddMember(ctx, models.TripMember{
		TripID: trip.ID, UserID: owner.ID, Role: models.RoleOwner, JoinedAt: time.Now(),
	}))

	notifier := notifications.NewService(st)
	gate := membership.NewGate(st, notifier)
	manager := invitations.NewManager(st, gate, notifier, nil)

	return &testEnv{
		store:       st,
		gate:        gate,
		invitations: NewInvitationsHandler(manager),
		members:     NewMembersHandler(gate),
		trips:       NewTripsHandler(st, gate),
		owner:       owner,
		invitee:     invitee,
		trip:        trip,
	}
}

// authedRequest builds a request carrying the given user's identity, the way
// the JWT middleware would after validating a token.
func authedRequest(method, target string, body string, user models.User) *http.Request {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	return r.WithContext(utils.WithUser(r.Context(), user.ID, user.Email))
}

func (env *testEnv) createInvitation(t *testing.T) dto.InvitationResponse {
	t.Helper()
	body := `{"trip_id":"` + env.trip.ID.String() + `","email":"invitee@example.com"}`
	r := authedRequest(http.MethodPost, "/api/invitations", body, env.owner)
	w := httptest.NewRecorder()
	env.invitations.Invitations(w, r)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp dto.CreateInvitationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	return resp.Invitation
}

func TestCreateInvitationEndpoint(t *testing.T) {
	env := newTestEnv(t)

	resp := env.createInvitation(t)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, env.trip.ID.String(), resp.TripID)
	assert.Equal(t, env.owner.ID.String(), resp.InviterID)
}

func TestCreateInvitationByNonMember(t *testing.T) {
	env := newTestEnv(t)

	stranger := models.User{ID: uuid.New(), Email: "stranger@example.com"}
	require.NoError(t, env.store.CreateUser(context.Background(), stranger))

	body := `{"trip_id":"` + env.trip.ID.String() + `","email":"invitee@example.com"}`
	r := authedRequest(http.MethodPost, "/api/invitations", body, stranger)
	w := httptest.NewRecorder()
	env.invitations.Invitations(w, r)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListInvitationsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.createInvitation(t)

	r := authedRequest(http.MethodGet, "/api/invitations", "", env.invitee)
	w := httptest.NewRecorder()
	env.invitations.Invitations(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.InvitationListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, env.trip.Title, resp.Invitations[0].Trip.Title)
}

func TestAcceptInvitationEndpoint(t *testing.T) {
	env := newTestEnv(t)
	inv := env.createInvitation(t)

	r := authedRequest(http.MethodPost, "/api/invitations/"+inv.ID+"/accept", "", env.invitee)
	w := httptest.NewRecorder()
	env.invitations.InvitationAction(w, r)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp dto.AcceptInvitationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, env.trip.ID.String(), resp.Trip.ID)

	// Invitee is now on the roster.
	_, err := env.store.GetMember(context.Background(), env.trip.ID, env.invitee.ID)
	assert.NoError(t, err)
}

func TestAcceptInvitationWrongUser(t *testing.T) {
	env := newTestEnv(t)
	inv := env.createInvitation(t)

	imposter := models.User{ID: uuid.New(), Email: "imposter@example.com"}
	require.NoError(t, env.store.CreateUser(context.Background(), imposter))

	r := authedRequest(http.MethodPost, "/api/invitations/"+inv.ID+"/accept", "", imposter)
	w := httptest.NewRecorder()
	env.invitations.InvitationAction(w, r)

	// The response must not reveal that the invitation exists.
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAcceptInvitationTwice(t *testing.T) {
	env := newTestEnv(t)
	inv := env.createInvitation(t)

	r := authedRequest(http.MethodPost, "/api/invitations/"+inv.ID+"/accept", "", env.invitee)
	w := httptest.NewRecorder()
	env.invitations.InvitationAction(w, r)
	require.Equal(t, http.StatusOK, w.Code)

	r = authedRequest(http.MethodPost, "/api/invitations/"+inv.ID+"/accept", "", env.invitee)
	w = httptest.NewRecorder()
	env.invitations.InvitationAction(w, r)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeclineInvitationEndpoint(t *testing.T) {
	env := newTestEnv(t)
	inv := env.createInvitation(t)

	r := authedRequest(http.MethodPost, "/api/invitations/"+inv.ID+"/decline", "", env.invitee)
	w := httptest.NewRecorder()
	env.invitations.InvitationAction(w, r)
	require.Equal(t, http.StatusOK, w.Code)

	// No membership was created.
	_, err := env.store.GetMember(context.Background(), env.trip.ID, env.invitee.ID)
	assert.Error(t, err)
}

func TestInvitationActionUnknownEndpoint(t *testing.T) {
	env := newTestEnv(t)
	inv := env.createInvitation(t)

	r := authedRequest(http.MethodPost, "/api/invitations/"+inv.ID+"/snooze", "", env.invitee)
	w := httptest.NewRecorder()
	env.invitations.InvitationAction(w, r)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
