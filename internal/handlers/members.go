package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"VIAJAPLUS_BACK-END/internal/dto"
	"VIAJAPLUS_BACK-END/internal/membership"
	"VIAJAPLUS_BACK-END/internal/models"
	"VIAJAPLUS_BACK-END/internal/utils"
)

// MembersHandler manages the trip member roster endpoints
type MembersHandler struct {
	gate *membership.Gate
}

// NewMembersHandler creates a new MembersHandler
func NewMembersHandler(gate *membership.Gate) *MembersHandler {
	return &MembersHandler{gate: gate}
}

func memberResponse(m models.MemberWithProfile) dto.MemberResponse {
	return dto.MemberResponse{
		TripID:      m.TripID.String(),
		UserID:      m.UserID.String(),
		Role:        m.Role,
		JoinedAt:    utils.FormatTimestamp(m.JoinedAt),
		Email:       m.Email,
		DisplayName: m.DisplayName,
		AvatarURL:   m.AvatarURL,
	}
}

// Members dispatches /api/trips/{id}/members and /api/trips/{id}/members/{userID}
func (h *MembersHandler) Members(w http.ResponseWriter, r *http.Request, tripID uuid.UUID, rest string) {
	switch r.Method {
	case http.MethodGet:
		if rest != "" {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.ListMembers(w, r, tripID)
	case http.MethodDelete:
		// The member to remove can come as a path segment or a userId query param.
		raw := strings.TrimSuffix(rest, "/")
		if raw == "" {
			raw = r.URL.Query().Get("userId")
		}
		if raw == "" {
			raw = r.URL.Query().Get("user_id")
		}
		if raw == "" {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Missing required fields", "userId is required")
			return
		}
		targetID, err := uuid.Parse(raw)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "Invalid member id")
			return
		}
		h.RemoveMember(w, r, tripID, targetID)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// ListMembers handles GET /api/trips/{id}/members
// @Summary List trip members
// @Description List the roster of a trip; the caller must be a member
// @Tags members
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} dto.MemberListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/trips/{id}/members [get]
// @Security BearerAuth
func (h *MembersHandler) ListMembers(w http.ResponseWriter, r *http.Request, tripID uuid.UUID) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	members, err := h.gate.Members(r.Context(), tripID, userID)
	if err != nil {
		writeGateError(w, err, tripID, userID)
		return
	}

	resp := dto.MemberListResponse{Members: make([]dto.MemberResponse, 0, len(members)), Total: len(members)}
	for _, m := range members {
		resp.Members = append(resp.Members, memberResponse(m))
	}
	utils.WriteJSONResponse(w, http.StatusOK, resp)
}

// RemoveMember handles DELETE /api/trips/{id}/members/{userID}
// @Summary Remove a trip member
// @Description Remove a member from the roster; only the owner may remove, and the owner row is immutable
// @Tags members
// @Produce json
// @Param id path string true "Trip ID"
// @Param userID path string true "Member user ID"
// @Success 200 {object} dto.RemoveMemberResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/trips/{id}/members/{userID} [delete]
// @Security BearerAuth
func (h *MembersHandler) RemoveMember(w http.ResponseWriter, r *http.Request, tripID, targetID uuid.UUID) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	if err := h.gate.RemoveMember(r.Context(), tripID, userID, targetID); err != nil {
		writeGateError(w, err, tripID, userID)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.RemoveMemberResponse{Success: true})
}
