// Package membership answers "is this user on this trip" and manages the
// member roster. Every trip-scoped read or write goes through the gate first.
package membership

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"VIAJAPLUS_BACK-END/internal/models"
	"VIAJAPLUS_BACK-END/internal/notifications"
	"VIAJAPLUS_BACK-END/internal/store"
)

var (
	// ErrNotMember is returned when the caller has no membership row for the trip.
	ErrNotMember = errors.New("not a trip member")
	// ErrOwnerOnly is returned when a non-owner attempts an owner-only action.
	ErrOwnerOnly = errors.New("only the trip owner may do this")
	// ErrOwnerImmutable is returned on attempts to remove the owner's membership.
	ErrOwnerImmutable = errors.New("trip owner cannot be removed")
)

// Gate enforces membership checks against the store
type Gate struct {
	store    store.Store
	notifier notifications.Service
}

// NewGate returns a Gate backed by the given store
func NewGate(st store.Store, notifier notifications.Service) *Gate {
	return &Gate{store: st, notifier: notifier}
}

// IsMember reports whether userID has a membership row for tripID
func (g *Gate) IsMember(ctx context.Context, tripID, userID uuid.UUID) (bool, error) {
	_, err := g.store.GetMember(ctx, tripID, userID)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Require returns ErrNotMember when userID is not a member of tripID
func (g *Gate) Require(ctx context.Context, tripID, userID uuid.UUID) error {
	ok, err := g.IsMember(ctx, tripID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotMember
	}
	return nil
}

// Members lists the roster of a trip. The caller must be a member.
func (g *Gate) Members(ctx context.Context, tripID, callerID uuid.UUID) ([]models.MemberWithProfile, error) {
	if err := g.Require(ctx, tripID, callerID); err != nil {
		return nil, err
	}
	return g.store.ListMembers(ctx, tripID)
}

// RemoveMember removes targetID from the trip roster. Only the trip owner may
// remove members, and the owner's own row is immutable.
func (g *Gate) RemoveMember(ctx context.Context, tripID, callerID, targetID uuid.UUID) error {
	caller, err := g.store.GetMember(ctx, tripID, callerID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotMember
	}
	if err != nil {
		return err
	}
	if caller.Role != models.RoleOwner {
		return ErrOwnerOnly
	}

	target, err := g.store.GetMember(ctx, tripID, targetID)
	if err != nil {
		return err
	}
	if target.Role == models.RoleOwner {
		return ErrOwnerImmutable
	}

	if err := g.store.RemoveMember(ctx, tripID, targetID); err != nil {
		return err
	}

	// Notify the removed user. Failures here do not undo the removal.
	trip, err := g.store.GetTrip(ctx, tripID)
	if err != nil {
		log.Printf("Failed to load trip %s for removal notification: %v", tripID, err)
		return nil
	}
	msg := fmt.Sprintf("You were removed from the trip \"%s\"", trip.Title)
	if err := g.notifier.Create(ctx, targetID, models.NotificationMemberRemoved,
		"Removed from trip", &msg, map[string]any{"trip_id": tripID.String()}); err != nil {
		log.Printf("Failed to notify removed member %s: %v", targetID, err)
	}

	return nil
}
