package membership

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VIAJAPLUS_BACK-END/internal/models"
	"VIAJAPLUS_BACK-END/internal/notifications"
	"VIAJAPLUS_BACK-END/internal/store"
	"VIAJAPLUS_BACK-END/internal/store/memorystore"
)

func setupGate(t *testing.T) (*Gate, *memorystore.Store, models.Trip, models.User, models.User) {
	t.Helper()
	ctx := context.Background()
	st := memorystore.New()

	owner := models.User{ID: uuid.New(), Email: "owner@example.com"}
	member := models.User{ID: uuid.New(), Email: "member@example.com"}
	require.NoError(t, st.CreateUser(ctx, owner))
	require.NoError(t, st.CreateUser(ctx, member))

	trip := models.Trip{
		ID:          uuid.New(),
		OwnerID:     owner.ID,
		Title:       "Andes Trek",
		Destination: "Cusco",
		StartDate:   time.Now(),
		EndDate:     time.Now().AddDate(0, 0, 10),
		Status:      models.TripStatusPlanning,
		Currency:    "USD",
	}
	require.NoError(t, st.CreateTrip(ctx, trip))
	require.NoError(t, st.AddMember(ctx, models.TripMember{
		TripID: trip.ID, UserID: owner.ID, Role: models.RoleOwner, JoinedAt: time.Now(),
	}))
	require.NoError(t, st.AddMember(ctx, models.TripMember{
		TripID: trip.ID, UserID: member.ID, Role: models.RoleMember, JoinedAt: time.Now(),
	}))

	return NewGate(st, notifications.NewService(st)), st, trip, owner, member
}

func TestRequire(t *testing.T) {
	gate, st, trip, _, member := setupGate(t)
	ctx := context.Background()

	assert.NoError(t, gate.Require(ctx, trip.ID, member.ID))

	outsider := models.User{ID: uuid.New(), Email: "outsider@example.com"}
	require.NoError(t, st.CreateUser(ctx, outsider))
	assert.ErrorIs(t, gate.Require(ctx, trip.ID, outsider.ID), ErrNotMember)
}

func TestMembersRequiresMembership(t *testing.T) {
	gate, _, trip, _, member := setupGate(t)
	ctx := context.Background()

	members, err := gate.Members(ctx, trip.ID, member.ID)
	require.NoError(t, err)
	assert.Len(t, members, 2)

	_, err = gate.Members(ctx, trip.ID, uuid.New())
	assert.ErrorIs(t, err, ErrNotMember)
}

func TestRemoveMemberOwnerOnly(t *testing.T) {
	gate, st, trip, owner, member := setupGate(t)
	ctx := context.Background()

	// A plain member cannot remove anyone.
	err := gate.RemoveMember(ctx, trip.ID, member.ID, owner.ID)
	assert.ErrorIs(t, err, ErrOwnerOnly)

	// Outsiders are rejected before the role check.
	err = gate.RemoveMember(ctx, trip.ID, uuid.New(), member.ID)
	assert.ErrorIs(t, err, ErrNotMember)

	// The owner removes the member and the member is notified.
	require.NoError(t, gate.RemoveMember(ctx, trip.ID, owner.ID, member.ID))
	_, err = st.GetMember(ctx, trip.ID, member.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	notifs, err := st.ListNotifications(ctx, member.ID, false, 10, 0)
	require.NoError(t, err)
	require.Len(t, notifs, 1)
	assert.Equal(t, models.NotificationMemberRemoved, notifs[0].Type)
}

func TestRemoveMemberOwnerImmutable(t *testing.T) {
	gate, _, trip, owner, _ := setupGate(t)

	err := gate.RemoveMember(context.Background(), trip.ID, owner.ID, owner.ID)
	assert.ErrorIs(t, err, ErrOwnerImmutable)
}

func TestRemoveMemberUnknownTarget(t *testing.T) {
	gate, _, trip, owner, _ := setupGate(t)

	err := gate.RemoveMember(context.Background(), trip.ID, owner.ID, uuid.New())
	assert.ErrorIs(t, err, store.ErrNotFound)
}
