package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VIAJAPLUS_BACK-END/internal/dto"
	"VIAJAPLUS_BACK-END/internal/models"
)

func (env *testEnv) addMember(t *testing.T, user models.User) {
	t.Helper()
	require.NoError(t, env.store.AddMember(context.Background(), models.TripMember{
		TripID: env.trip.ID, UserID: user.ID, Role: models.RoleMember, JoinedAt: time.Now(),
	}))
}

func TestListMembersEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.addMember(t, env.invitee)

	r := authedRequest(http.MethodGet, "/api/trips/"+env.trip.ID.String()+"/members", "", env.invitee)
	w := httptest.NewRecorder()
	env.members.Members(w, r, env.trip.ID, "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.MemberListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Total)

	roles := map[string]string{}
	for _, m := range resp.Members {
		roles[m.Email] = m.Role
	}
	assert.Equal(t, "owner", roles["owner@example.com"])
	assert.Equal(t, "member", roles["invitee@example.com"])
}

func TestListMembersRequiresMembership(t *testing.T) {
	env := newTestEnv(t)

	outsider := models.User{ID: uuid.New(), Email: "outsider@example.com"}
	require.NoError(t, env.store.CreateUser(context.Background(), outsider))

	r := authedRequest(http.MethodGet, "/api/trips/"+env.trip.ID.String()+"/members", "", outsider)
	w := httptest.NewRecorder()
	env.members.Members(w, r, env.trip.ID, "")

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRemoveMemberEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.addMember(t, env.invitee)

	target := env.invitee.ID.String()
	r := authedRequest(http.MethodDelete, "/api/trips/"+env.trip.ID.String()+"/members/"+target, "", env.owner)
	w := httptest.NewRecorder()
	env.members.Members(w, r, env.trip.ID, target)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	_, err := env.store.GetMember(context.Background(), env.trip.ID, env.invitee.ID)
	assert.Error(t, err)
}

func TestRemoveMemberByQueryParam(t *testing.T) {
	env := newTestEnv(t)
	env.addMember(t, env.invitee)

	target := "/api/trips/" + env.trip.ID.String() + "/members?userId=" + env.invitee.ID.String()
	r := authedRequest(http.MethodDelete, target, "", env.owner)
	w := httptest.NewRecorder()
	env.members.Members(w, r, env.trip.ID, "")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp dto.RemoveMemberResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestRemoveMemberMissingTarget(t *testing.T) {
	env := newTestEnv(t)

	r := authedRequest(http.MethodDelete, "/api/trips/"+env.trip.ID.String()+"/members", "", env.owner)
	w := httptest.NewRecorder()
	env.members.Members(w, r, env.trip.ID, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRemoveMemberByNonOwner(t *testing.T) {
	env := newTestEnv(t)
	env.addMember(t, env.invitee)

	target := env.owner.ID.String()
	r := authedRequest(http.MethodDelete, "/api/trips/"+env.trip.ID.String()+"/members/"+target, "", env.invitee)
	w := httptest.NewRecorder()
	env.members.Members(w, r, env.trip.ID, target)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRemoveOwnerRow(t *testing.T) {
	env := newTestEnv(t)

	target := env.owner.ID.String()
	r := authedRequest(http.MethodDelete, "/api/trips/"+env.trip.ID.String()+"/members/"+target, "", env.owner)
	w := httptest.NewRecorder()
	env.members.Members(w, r, env.trip.ID, target)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
