package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"VIAJAPLUS_BACK-END/internal/config"
	"VIAJAPLUS_BACK-END/internal/dto"
	"VIAJAPLUS_BACK-END/internal/middleware"
	"VIAJAPLUS_BACK-END/internal/models"
	"VIAJAPLUS_BACK-END/internal/store"
	"VIAJAPLUS_BACK-END/internal/utils"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	store  store.Store
	config *config.Config
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(st store.Store, cfg *config.Config) *AuthHandler {
	return &AuthHandler{store: st, config: cfg}
}

func userResponse(u models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          u.ID.String(),
		Email:       u.Email,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
		CreatedAt:   utils.FormatTimestamp(u.CreatedAt),
		UpdatedAt:   utils.FormatTimestamp(u.UpdatedAt),
	}
}

// Register handles user registration
// @Summary Register a new user
// @Description Create a new user account with email and password
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "User registration data"
// @Success 201 {object} dto.AuthResponse "User created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "User already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.RegisterRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Missing required fields", "Email and password are required")
		return
	}
	if len(req.Password) < 6 {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "Password must be at least 6 characters")
		return
	}

	// Emails are unique case-insensitively.
	if _, err := h.store.GetUserByEmail(r.Context(), req.Email); err == nil {
		utils.WriteErrorResponse(w, http.StatusConflict, "User already exists", "An account with this email already exists")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Printf("Failed to check existing user %s: %v", req.Email, err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to create account")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal error", "Failed to create account")
		return
	}

	now := time.Now()
	user := models.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hash),
		DisplayName:  req.DisplayName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.store.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			utils.WriteErrorResponse(w, http.StatusConflict, "User already exists", "An account with this email already exists")
			return
		}
		log.Printf("Failed to create user %s: %v", req.Email, err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to create account")
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, &h.config.JWT)
	if err != nil {
		log.Printf("Failed to generate token for user %s: %v", user.ID, err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal error", "Failed to create account")
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.AuthResponse{
		User:  userResponse(user),
		Token: token,
	})
}

// Login handles user login
// @Summary Authenticate a user
// @Description Verify credentials and return a JWT token
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "User credentials"
// @Success 200 {object} dto.AuthResponse "Authenticated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.LoginRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Missing required fields", "Email and password are required")
		return
	}

	user, err := h.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid credentials", "Email or password is incorrect")
			return
		}
		log.Printf("Failed to load user %s: %v", req.Email, err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to sign in")
		return
	}

	if user.PasswordHash == "" {
		// Google-only account, no local password set.
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid credentials", "Email or password is incorrect")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid credentials", "Email or password is incorrect")
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, &h.config.JWT)
	if err != nil {
		log.Printf("Failed to generate token for user %s: %v", user.ID, err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal error", "Failed to sign in")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.AuthResponse{
		User:  userResponse(user),
		Token: token,
	})
}

// Me returns the authenticated user's account
// @Summary Get current user
// @Tags authentication
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/auth/me [get]
// @Security BearerAuth
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	user, err := h.store.GetUserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not found", "Account no longer exists")
			return
		}
		log.Printf("Failed to load user %s: %v", userID, err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to load account")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, userResponse(user))
}

// ChangePassword updates the authenticated user's password
// @Summary Change password
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.ChangePasswordRequest true "Password change data"
// @Success 200 {object} map[string]string
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/auth/change-password [post]
// @Security BearerAuth
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	var req dto.ChangePasswordRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	if req.CurrentPassword == "" || req.NewPassword == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Missing required fields", "Current and new password are required")
		return
	}
	if len(req.NewPassword) < 6 {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "New password must be at least 6 characters")
		return
	}
	if req.ConfirmPassword != "" && req.ConfirmPassword != req.NewPassword {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "Password confirmation does not match")
		return
	}

	user, err := h.store.GetUserByID(r.Context(), userID)
	if err != nil {
		log.Printf("Failed to load user %s: %v", userID, err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to change password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid credentials", "Current password is incorrect")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal error", "Failed to change password")
		return
	}

	if err := h.store.UpdateUserPassword(r.Context(), userID, string(hash)); err != nil {
		log.Printf("Failed to update password for user %s: %v", userID, err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to change password")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, map[string]string{"message": "Password changed successfully"})
}
