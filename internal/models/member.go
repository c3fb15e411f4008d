package models

import (
	"time"

	"github.com/google/uuid"
)

// Membership roles. Exactly one owner exists per trip, assigned at creation.
const (
	RoleOwner  = "owner"
	RoleMember = "member"
)

// TripMember is the join entity granting a user access to a trip's resources
type TripMember struct {
	TripID   uuid.UUID `json:"trip_id" db:"trip_id"`
	UserID   uuid.UUID `json:"user_id" db:"user_id"`
	Role     string    `json:"role" db:"role"`
	JoinedAt time.Time `json:"joined_at" db:"joined_at"`
}

// MemberWithProfile is a membership row joined with the member's profile fields
type MemberWithProfile struct {
	TripMember
	Email       string  `json:"email"`
	DisplayName *string `json:"display_name"`
	AvatarURL   *string `json:"avatar_url"`
}
