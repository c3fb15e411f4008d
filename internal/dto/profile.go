package dto

// UpdateProfileRequest represents the payload to update the caller's profile
type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
}
