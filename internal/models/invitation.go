package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// InvitationStatus is the state of a trip invitation.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
)

// Valid reports whether s is a known invitation status.
func (s InvitationStatus) Valid() bool {
	switch s {
	case InvitationPending, InvitationAccepted, InvitationDeclined:
		return true
	}
	return false
}

// Terminal reports whether the status admits no further transitions.
func (s InvitationStatus) Terminal() bool {
	return s == InvitationAccepted || s == InvitationDeclined
}

// TransitionInvitation validates a status change. The only legal moves are
// pending -> accepted and pending -> declined; accepted and declined are sticky.
func TransitionInvitation(from, to InvitationStatus) (InvitationStatus, error) {
	if !from.Valid() || !to.Valid() {
		return from, fmt.Errorf("unknown invitation status %q -> %q", from, to)
	}
	if from != InvitationPending || to == InvitationPending {
		return from, fmt.Errorf("invitation cannot move from %s to %s", from, to)
	}
	return to, nil
}

// Invitation represents a pending offer of trip membership sent to an email address.
// Invitations are kept as history and are never deleted.
type Invitation struct {
	ID           uuid.UUID        `json:"id" db:"id"`
	TripID       uuid.UUID        `json:"trip_id" db:"trip_id"`
	InviterID    uuid.UUID        `json:"inviter_id" db:"inviter_id"`
	InviteeEmail string           `json:"invitee_email" db:"invitee_email"`
	Status       InvitationStatus `json:"status" db:"status"`
	CreatedAt    time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at" db:"updated_at"`
}

// InvitationWithTrip pairs an invitation with the summary of the trip it refers to
type InvitationWithTrip struct {
	Invitation Invitation  `json:"invitation"`
	Trip       TripSummary `json:"trip"`
}
