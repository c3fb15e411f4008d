package dto

// CreateInvitationRequest represents the payload to invite someone to a trip
type CreateInvitationRequest struct {
	TripID string `json:"trip_id" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
}

// InvitationResponse represents invitation data in API responses
type InvitationResponse struct {
	ID           string `json:"id"`
	TripID       string `json:"trip_id"`
	InviterID    string `json:"inviter_id"`
	InviteeEmail string `json:"invitee_email"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// InvitationWithTripResponse pairs an invitation with its trip summary
type InvitationWithTripResponse struct {
	InvitationResponse
	Trip TripSummaryResponse `json:"trip"`
}

// InvitationListResponse wraps the caller's pending invitations
type InvitationListResponse struct {
	Invitations []InvitationWithTripResponse `json:"invitations"`
	Total       int                          `json:"total"`
}

// CreateInvitationResponse confirms a created invitation
type CreateInvitationResponse struct {
	Success    bool               `json:"success"`
	Invitation InvitationResponse `json:"invitation"`
}

// AcceptInvitationResponse confirms an accepted invitation
type AcceptInvitationResponse struct {
	Success bool                `json:"success"`
	Trip    TripSummaryResponse `json:"trip"`
}

// DeclineInvitationResponse confirms a declined invitation
type DeclineInvitationResponse struct {
	Success bool `json:"success"`
}
