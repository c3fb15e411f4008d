// Package invitations implements the trip invitation lifecycle: creation by an
// existing member, listing for the invitee, and the accept/decline transitions.
package invitations

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"VIAJAPLUS_BACK-END/internal/membership"
	"VIAJAPLUS_BACK-END/internal/models"
	"VIAJAPLUS_BACK-END/internal/notifications"
	"VIAJAPLUS_BACK-END/internal/store"
)

// ErrAlreadyMember is returned when the invitee already belongs to the trip.
var ErrAlreadyMember = errors.New("user is already a trip member")

// Emailer sends invitation emails. Delivery is best-effort; the invitation
// record is the source of truth.
type Emailer interface {
	SendTripInvitation(to, tripTitle, inviterName string) error
}

// Manager drives the invitation state machine
type Manager struct {
	store    store.Store
	gate     *membership.Gate
	notifier notifications.Service
	emailer  Emailer
}

// NewManager returns a Manager. emailer may be nil when email is not configured.
func NewManager(st store.Store, gate *membership.Gate, notifier notifications.Service, emailer Emailer) *Manager {
	return &Manager{store: st, gate: gate, notifier: notifier, emailer: emailer}
}

// Create records a pending invitation. The inviter must be a member of the
// trip. The invitee email is stored as given; matching is case-insensitive.
func (m *Manager) Create(ctx context.Context, inviterID, tripID uuid.UUID, inviteeEmail string) (models.Invitation, error) {
	inviteeEmail = strings.TrimSpace(inviteeEmail)
	if inviteeEmail == "" {
		return models.Invitation{}, errors.New("invitee email is required")
	}

	if err := m.gate.Require(ctx, tripID, inviterID); err != nil {
		return models.Invitation{}, err
	}

	trip, err := m.store.GetTrip(ctx, tripID)
	if err != nil {
		return models.Invitation{}, err
	}

	// Reject invitations to users already on the roster.
	invitee, err := m.store.GetUserByEmail(ctx, inviteeEmail)
	hasAccount := err == nil
	switch {
	case err == nil:
		ok, merr := m.gate.IsMember(ctx, tripID, invitee.ID)
		if merr != nil {
			return models.Invitation{}, merr
		}
		if ok {
			return models.Invitation{}, ErrAlreadyMember
		}
	case errors.Is(err, store.ErrNotFound):
		// Invitee has no account yet; the invitation still stands.
	default:
		return models.Invitation{}, err
	}

	now := time.Now()
	inv := models.Invitation{
		ID:           uuid.New(),
		TripID:       tripID,
		InviterID:    inviterID,
		InviteeEmail: inviteeEmail,
		Status:       models.InvitationPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := m.store.CreateInvitation(ctx, inv); err != nil {
		return models.Invitation{}, err
	}

	m.deliverInvitation(ctx, inv, trip, invitee, hasAccount)

	return inv, nil
}

// deliverInvitation sends the email and in-app notification for a new
// invitation. Both are best-effort.
func (m *Manager) deliverInvitation(ctx context.Context, inv models.Invitation, trip models.Trip, invitee models.User, hasAccount bool) {
	inviterName := "A fellow traveler"
	if inviter, err := m.store.GetUserByID(ctx, inv.InviterID); err == nil {
		if inviter.DisplayName != nil && *inviter.DisplayName != "" {
			inviterName = *inviter.DisplayName
		} else {
			inviterName = inviter.Email
		}
	}

	if m.emailer != nil {
		if err := m.emailer.SendTripInvitation(inv.InviteeEmail, trip.Title, inviterName); err != nil {
			log.Printf("Failed to send invitation email to %s: %v", inv.InviteeEmail, err)
		}
	}

	if hasAccount {
		msg := fmt.Sprintf("%s invited you to join \"%s\"", inviterName, trip.Title)
		err := m.notifier.Create(ctx, invitee.ID, models.NotificationTripInvitation,
			"Trip invitation", &msg, map[string]any{
				"invitation_id": inv.ID.String(),
				"trip_id":       inv.TripID.String(),
			})
		if err != nil {
			log.Printf("Failed to notify invitee %s: %v", invitee.ID, err)
		}
	}
}

// ListPending returns the caller's pending invitations with trip summaries.
// Matching against the invitee email is case-insensitive.
func (m *Manager) ListPending(ctx context.Context, email string) ([]models.InvitationWithTrip, error) {
	return m.store.ListPendingInvitations(ctx, email)
}

// Accept moves a pending invitation to accepted and adds the caller to the
// trip roster in the same transaction. Any precondition failure, including an
// email mismatch or a terminal status, surfaces as store.ErrNotFound.
func (m *Manager) Accept(ctx context.Context, id, userID uuid.UUID, email string) (models.TripSummary, error) {
	if _, err := models.TransitionInvitation(models.InvitationPending, models.InvitationAccepted); err != nil {
		return models.TripSummary{}, err
	}

	var inv models.Invitation
	err := m.store.Transact(ctx, func(tx store.Store) error {
		now := time.Now()
		if err := tx.UpdateInvitationStatus(ctx, id, email, models.InvitationPending, models.InvitationAccepted, now); err != nil {
			return err
		}

		var err error
		inv, err = tx.GetInvitation(ctx, id)
		if err != nil {
			return err
		}

		return tx.AddMember(ctx, models.TripMember{
			TripID:   inv.TripID,
			UserID:   userID,
			Role:     models.RoleMember,
			JoinedAt: now,
		})
	})
	if err != nil {
		return models.TripSummary{}, err
	}

	trip, err := m.store.GetTrip(ctx, inv.TripID)
	if err != nil {
		return models.TripSummary{}, err
	}

	m.notifyInviter(ctx, inv, trip, userID, models.NotificationInvitationAccepted, "accepted")

	return trip.Summary(), nil
}

// Decline moves a pending invitation to declined. The caller never joins the
// trip. Precondition failures surface as store.ErrNotFound.
func (m *Manager) Decline(ctx context.Context, id, userID uuid.UUID, email string) error {
	if _, err := models.TransitionInvitation(models.InvitationPending, models.InvitationDeclined); err != nil {
		return err
	}

	if err := m.store.UpdateInvitationStatus(ctx, id, email, models.InvitationPending, models.InvitationDeclined, time.Now()); err != nil {
		return err
	}

	inv, err := m.store.GetInvitation(ctx, id)
	if err != nil {
		log.Printf("Failed to load invitation %s after decline: %v", id, err)
		return nil
	}
	trip, err := m.store.GetTrip(ctx, inv.TripID)
	if err != nil {
		log.Printf("Failed to load trip %s after decline: %v", inv.TripID, err)
		return nil
	}

	m.notifyInviter(ctx, inv, trip, userID, models.NotificationInvitationDeclined, "declined")

	return nil
}

// notifyInviter tells the inviter how their invitation was resolved.
// Best-effort only.
func (m *Manager) notifyInviter(ctx context.Context, inv models.Invitation, trip models.Trip, actorID uuid.UUID, nType, verb string) {
	actorName := inv.InviteeEmail
	if actor, err := m.store.GetUserByID(ctx, actorID); err == nil {
		if actor.DisplayName != nil && *actor.DisplayName != "" {
			actorName = *actor.DisplayName
		} else {
			actorName = actor.Email
		}
	}

	msg := fmt.Sprintf("%s %s your invitation to \"%s\"", actorName, verb, trip.Title)
	err := m.notifier.Create(ctx, inv.InviterID, nType, "Invitation "+verb, &msg, map[string]any{
		"invitation_id": inv.ID.String(),
		"trip_id":       inv.TripID.String(),
	})
	if err != nil {
		log.Printf("Failed to notify inviter %s: %v", inv.InviterID, err)
	}
}
