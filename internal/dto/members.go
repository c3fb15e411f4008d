package dto

// MemberResponse represents a trip member with profile data
type MemberResponse struct {
	TripID      string  `json:"trip_id"`
	UserID      string  `json:"user_id"`
	Role        string  `json:"role"`
	JoinedAt    string  `json:"joined_at"`
	Email       string  `json:"email"`
	DisplayName *string `json:"display_name"`
	AvatarURL   *string `json:"avatar_url"`
}

// MemberListResponse wraps the members of a trip
type MemberListResponse struct {
	Members []MemberResponse `json:"members"`
	Total   int              `json:"total"`
}

// RemoveMemberResponse confirms a member removal
type RemoveMemberResponse struct {
	Success bool `json:"success"`
}
