package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification types emitted by the invitation and membership lifecycle.
const (
	NotificationTripInvitation     = "trip_invitation"
	NotificationInvitationAccepted = "invitation_accepted"
	NotificationInvitationDeclined = "invitation_declined"
	NotificationMemberRemoved      = "member_removed"
)

// ValidNotificationType reports whether t is a known notification type.
func ValidNotificationType(t string) bool {
	switch t {
	case NotificationTripInvitation, NotificationInvitationAccepted,
		NotificationInvitationDeclined, NotificationMemberRemoved:
		return true
	}
	return false
}

// Notification is an in-app message delivered to a single user
type Notification struct {
	ID        uuid.UUID      `json:"id" db:"id"`
	UserID    uuid.UUID      `json:"user_id" db:"user_id"`
	Type      string         `json:"type" db:"type"`
	Title     string         `json:"title" db:"title"`
	Message   *string        `json:"message" db:"message"`
	Data      map[string]any `json:"data,omitempty" db:"data"`
	Read      bool           `json:"read" db:"read"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
}
