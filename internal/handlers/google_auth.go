package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	googleOAuth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"VIAJAPLUS_BACK-END/internal/config"
	"VIAJAPLUS_BACK-END/internal/dto"
	"VIAJAPLUS_BACK-END/internal/middleware"
	"VIAJAPLUS_BACK-END/internal/models"
	"VIAJAPLUS_BACK-END/internal/store"
	"VIAJAPLUS_BACK-END/internal/utils"
)

// GoogleAuthHandler handles Google OAuth authentication
type GoogleAuthHandler struct {
	store        store.Store
	oauth2Config *oauth2.Config
	config       *config.Config
}

// NewGoogleAuthHandler creates a new GoogleAuthHandler instance
func NewGoogleAuthHandler(st store.Store, cfg *config.Config) *GoogleAuthHandler {
	oauth2Config := &oauth2.Config{
		ClientID:     cfg.GoogleOAuth.ClientID,
		ClientSecret: cfg.GoogleOAuth.ClientSecret,
		RedirectURL:  cfg.GoogleOAuth.RedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	return &GoogleAuthHandler{
		store:        st,
		oauth2Config: oauth2Config,
		config:       cfg,
	}
}

// GoogleLogin initiates Google OAuth login
// @Summary Google OAuth login
// @Description Initiate Google OAuth login flow
// @Tags authentication
// @Produce json
// @Success 200 {object} dto.GoogleAuthURLResponse "Google OAuth URL"
// @Router /api/auth/google/login [get]
func (h *GoogleAuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// State parameter for CSRF protection
	state := uuid.New().String()
	authURL := h.oauth2Config.AuthCodeURL(state, oauth2.AccessTypeOffline)

	utils.WriteJSONResponse(w, http.StatusOK, dto.GoogleAuthURLResponse{
		AuthURL: authURL,
		State:   state,
	})
}

// GoogleCallback handles Google OAuth callback
// @Summary Google OAuth callback
// @Description Handle Google OAuth callback with authorization code
// @Tags authentication
// @Produce json
// @Param code query string true "Authorization code from Google"
// @Param state query string false "State parameter for CSRF protection"
// @Success 302 "Redirect to frontend with token"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid authorization code"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/google/callback [get]
func (h *GoogleAuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Missing authorization code", "Authorization code is required")
		return
	}

	token, err := h.oauth2Config.Exchange(r.Context(), code)
	if err != nil {
		log.Printf("Google code exchange failed: %v", err)
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid authorization code", "Authorization code could not be exchanged")
		return
	}

	userInfo, err := h.getGoogleUserInfo(r.Context(), token.AccessToken)
	if err != nil {
		log.Printf("Failed to fetch Google user info: %v", err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Authentication failed", "Could not retrieve account information")
		return
	}

	user, err := h.store.GetUserByEmail(r.Context(), userInfo.Email)
	if errors.Is(err, store.ErrNotFound) {
		user, err = h.createGoogleUser(r.Context(), userInfo)
	}
	if err != nil {
		log.Printf("Failed to resolve Google user %s: %v", userInfo.Email, err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Authentication failed", "Could not sign in with Google")
		return
	}

	jwtToken, err := middleware.GenerateToken(user.ID, user.Email, &h.config.JWT)
	if err != nil {
		log.Printf("Failed to generate token for user %s: %v", user.ID, err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Authentication failed", "Could not sign in with Google")
		return
	}

	redirectURL := fmt.Sprintf("%s/callback?token=%s&user_id=%s&email=%s&provider=google",
		h.config.GoogleOAuth.FrontendURL,
		url.QueryEscape(jwtToken),
		user.ID.String(),
		url.QueryEscape(user.Email))

	http.Redirect(w, r, redirectURL, http.StatusFound)
}

// getGoogleUserInfo fetches user information from Google
func (h *GoogleAuthHandler) getGoogleUserInfo(ctx context.Context, accessToken string) (*dto.GoogleUserInfo, error) {
	service, err := googleOAuth2.NewService(ctx, option.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
	})))
	if err != nil {
		return nil, err
	}

	userInfo, err := service.Userinfo.Get().Do()
	if err != nil {
		return nil, err
	}

	verified := false
	if userInfo.VerifiedEmail != nil {
		verified = *userInfo.VerifiedEmail
	}

	return &dto.GoogleUserInfo{
		ID:            userInfo.Id,
		Email:         userInfo.Email,
		VerifiedEmail: verified,
		Name:          userInfo.Name,
		Picture:       userInfo.Picture,
	}, nil
}

// createGoogleUser creates a new account from Google OAuth data. The account
// has no local password until the user sets one.
func (h *GoogleAuthHandler) createGoogleUser(ctx context.Context, googleUser *dto.GoogleUserInfo) (models.User, error) {
	now := time.Now()
	user := models.User{
		ID:        uuid.New(),
		Email:     googleUser.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if googleUser.Name != "" {
		user.DisplayName = &googleUser.Name
	}
	if googleUser.Picture != "" {
		user.AvatarURL = &googleUser.Picture
	}

	if err := h.store.CreateUser(ctx, user); err != nil {
		return models.User{}, err
	}
	return user, nil
}
