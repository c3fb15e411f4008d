package dto

// GoogleAuthURLResponse returns the Google consent screen URL
type GoogleAuthURLResponse struct {
	AuthURL string `json:"auth_url"`
	State   string `json:"state"`
}

// GoogleCallbackRequest carries the authorization code exchanged for tokens
type GoogleCallbackRequest struct {
	Code  string `json:"code" validate:"required"`
	State string `json:"state"`
}

// GoogleUserInfo mirrors the userinfo payload returned by Google
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
