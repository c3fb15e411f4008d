package invitations

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VIAJAPLUS_BACK-END/internal/membership"
	"VIAJAPLUS_BACK-END/internal/models"
	"VIAJAPLUS_BACK-END/internal/notifications"
	"VIAJAPLUS_BACK-END/internal/store"
	"VIAJAPLUS_BACK-END/internal/store/memorystore"
)

type fixture struct {
	store   *memorystore.Store
	manager *Manager
	owner   models.User
	invitee models.User
	trip    models.Trip
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	st := memorystore.New()

	owner := models.User{ID: uuid.New(), Email: "owner@example.com", CreatedAt: time.Now(), UpdatedAt: time.Now()}
	invitee := models.User{ID: uuid.New(), Email: "Friend@Example.com", CreatedAt: time.Now(), UpdatedAt: time.Now()}
	require.NoError(t, st.CreateUser(ctx, owner))
	require.NoError(t, st.CreateUser(ctx, invitee))

	trip := models.Trip{
		ID:          uuid.New(),
		OwnerID:     owner.ID,
		Title:       "Lisbon Getaway",
		Destination: "Lisbon",
		StartDate:   time.Now().AddDate(0, 1, 0),
		EndDate:     time.Now().AddDate(0, 1, 7),
		Status:      models.TripStatusPlanning,
		Currency:    "EUR",
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	require.NoError(t, st.CreateTrip(ctx, trip))
	require.NoError(t, st.AddMember(ctx, models.TripMember{
		TripID: trip.ID, UserID: owner.ID, Role: models.RoleOwner, JoinedAt: time.Now(),
	}))

	notifier := notifications.NewService(st)
	gate := membership.NewGate(st, notifier)
	return &fixture{
		store:   st,
		manager: NewManager(st, gate, notifier, nil),
		owner:   owner,
		invitee: invitee,
		trip:    trip,
	}
}

func TestCreateRequiresInviterMembership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	stranger := models.User{ID: uuid.New(), Email: "stranger@example.com"}
	require.NoError(t, f.store.CreateUser(ctx, stranger))

	_, err := f.manager.Create(ctx, stranger.ID, f.trip.ID, "friend@example.com")
	assert.ErrorIs(t, err, membership.ErrNotMember)

	inv, err := f.manager.Create(ctx, f.owner.ID, f.trip.ID, "friend@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.InvitationPending, inv.Status)
	assert.Equal(t, f.owner.ID, inv.InviterID)
}

func TestCreateRejectsExistingMember(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.AddMember(ctx, models.TripMember{
		TripID: f.trip.ID, UserID: f.invitee.ID, Role: models.RoleMember, JoinedAt: time.Now(),
	}))

	_, err := f.manager.Create(ctx, f.owner.ID, f.trip.ID, "friend@example.com")
	assert.ErrorIs(t, err, ErrAlreadyMember)
}

func TestCreateNotifiesRegisteredInvitee(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.manager.Create(ctx, f.owner.ID, f.trip.ID, "friend@example.com")
	require.NoError(t, err)

	notifs, err := f.store.ListNotifications(ctx, f.invitee.ID, false, 10, 0)
	require.NoError(t, err)
	require.Len(t, notifs, 1)
	assert.Equal(t, models.NotificationTripInvitation, notifs[0].Type)
}

func TestListPendingMatchesEmailCaseInsensitively(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.manager.Create(ctx, f.owner.ID, f.trip.ID, "FRIEND@example.com")
	require.NoError(t, err)

	list, err := f.manager.ListPending(ctx, "friend@EXAMPLE.com")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, f.trip.ID, list[0].Invitation.TripID)
	assert.Equal(t, f.trip.Title, list[0].Trip.Title)
}

func TestAcceptAddsMembership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	inv, err := f.manager.Create(ctx, f.owner.ID, f.trip.ID, "friend@example.com")
	require.NoError(t, err)

	summary, err := f.manager.Accept(ctx, inv.ID, f.invitee.ID, f.invitee.Email)
	require.NoError(t, err)
	assert.Equal(t, f.trip.ID, summary.ID)

	member, err := f.store.GetMember(ctx, f.trip.ID, f.invitee.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleMember, member.Role)

	got, err := f.store.GetInvitation(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvitationAccepted, got.Status)

	// Inviter hears about the outcome.
	notifs, err := f.store.ListNotifications(ctx, f.owner.ID, false, 10, 0)
	require.NoError(t, err)
	require.Len(t, notifs, 1)
	assert.Equal(t, models.NotificationInvitationAccepted, notifs[0].Type)
}

func TestAcceptIsIdempotentOnMembership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.manager.Create(ctx, f.owner.ID, f.trip.ID, "friend@example.com")
	require.NoError(t, err)
	second, err := f.manager.Create(ctx, f.owner.ID, f.trip.ID, "friend@example.com")
	require.NoError(t, err)

	_, err = f.manager.Accept(ctx, first.ID, f.invitee.ID, f.invitee.Email)
	require.NoError(t, err)
	_, err = f.manager.Accept(ctx, second.ID, f.invitee.ID, f.invitee.Email)
	require.NoError(t, err)

	members, err := f.store.ListMembers(ctx, f.trip.ID)
	require.NoError(t, err)
	assert.Len(t, members, 2) // owner + invitee, never a duplicate row
}

func TestAcceptRejectsRepeatAndTerminalStates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	inv, err := f.manager.Create(ctx, f.owner.ID, f.trip.ID, "friend@example.com")
	require.NoError(t, err)

	_, err = f.manager.Accept(ctx, inv.ID, f.invitee.ID, f.invitee.Email)
	require.NoError(t, err)

	// Accepting again fails: the invitation is no longer pending.
	_, err = f.manager.Accept(ctx, inv.ID, f.invitee.ID, f.invitee.Email)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// So does declining after acceptance.
	err = f.manager.Decline(ctx, inv.ID, f.invitee.ID, f.invitee.Email)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestAcceptRejectsEmailMismatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	inv, err := f.manager.Create(ctx, f.owner.ID, f.trip.ID, "friend@example.com")
	require.NoError(t, err)

	imposter := models.User{ID: uuid.New(), Email: "imposter@example.com"}
	require.NoError(t, f.store.CreateUser(ctx, imposter))

	_, err = f.manager.Accept(ctx, inv.ID, imposter.ID, imposter.Email)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// The invitation is untouched and no membership was created.
	got, err := f.store.GetInvitation(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvitationPending, got.Status)

	_, err = f.store.GetMember(ctx, f.trip.ID, imposter.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestAcceptUnknownInvitation(t *testing.T) {
	f := newFixture(t)

	_, err := f.manager.Accept(context.Background(), uuid.New(), f.invitee.ID, f.invitee.Email)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeclineLeavesRosterUntouched(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	inv, err := f.manager.Create(ctx, f.owner.ID, f.trip.ID, "friend@example.com")
	require.NoError(t, err)

	require.NoError(t, f.manager.Decline(ctx, inv.ID, f.invitee.ID, f.invitee.Email))

	got, err := f.store.GetInvitation(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvitationDeclined, got.Status)

	_, err = f.store.GetMember(ctx, f.trip.ID, f.invitee.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Accept after decline fails; the state is terminal.
	_, err = f.manager.Accept(ctx, inv.ID, f.invitee.ID, f.invitee.Email)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
