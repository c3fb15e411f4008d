package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"VIAJAPLUS_BACK-END/internal/dto"
	"VIAJAPLUS_BACK-END/internal/store"
	"VIAJAPLUS_BACK-END/internal/utils"
)

// ProfileHandler manages the authenticated user's profile
type ProfileHandler struct {
	store store.Store
}

// NewProfileHandler creates a new ProfileHandler instance
func NewProfileHandler(st store.Store) *ProfileHandler {
	return &ProfileHandler{store: st}
}

// Profile dispatches by HTTP method for /api/profile
func (h *ProfileHandler) Profile(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.GetProfile(w, r)
	case http.MethodPut, http.MethodPatch:
		h.UpdateProfile(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// GetProfile handles GET /api/profile
// @Summary Get the caller's profile
// @Tags profile
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/profile [get]
// @Security BearerAuth
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
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
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to load profile")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, userResponse(user))
}

// UpdateProfile handles PUT /api/profile
// @Summary Update the caller's profile
// @Tags profile
// @Accept json
// @Produce json
// @Param request body dto.UpdateProfileRequest true "Profile fields to update"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/profile [put]
// @Security BearerAuth
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	var req dto.UpdateProfileRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	if req.DisplayName == nil && req.AvatarURL == nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "No fields to update")
		return
	}
	if req.DisplayName != nil {
		trimmed := strings.TrimSpace(*req.DisplayName)
		if len(trimmed) > 100 {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "Display name exceeds 100 characters")
			return
		}
		req.DisplayName = &trimmed
	}

	// The store writes both columns, so merge with current values to keep
	// omitted fields intact.
	current, err := h.store.GetUserByID(r.Context(), userID)
	if err != nil {
		log.Printf("Failed to load user %s: %v", userID, err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to update profile")
		return
	}
	displayName := current.DisplayName
	if req.DisplayName != nil {
		displayName = req.DisplayName
	}
	avatarURL := current.AvatarURL
	if req.AvatarURL != nil {
		avatarURL = req.AvatarURL
	}

	if err := h.store.UpdateUserProfile(r.Context(), userID, displayName, avatarURL); err != nil {
		log.Printf("Failed to update profile for user %s: %v", userID, err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to update profile")
		return
	}

	user, err := h.store.GetUserByID(r.Context(), userID)
	if err != nil {
		log.Printf("Failed to reload user %s: %v", userID, err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to update profile")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, userResponse(user))
}
