package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"VIAJAPLUS_BACK-END/internal/dto"
	"VIAJAPLUS_BACK-END/internal/invitations"
	"VIAJAPLUS_BACK-END/internal/membership"
	"VIAJAPLUS_BACK-END/internal/models"
	"VIAJAPLUS_BACK-END/internal/store"
	"VIAJAPLUS_BACK-END/internal/utils"
)

// InvitationsHandler manages invitation endpoints
type InvitationsHandler struct {
	manager *invitations.Manager
}

// NewInvitationsHandler creates a new InvitationsHandler
func NewInvitationsHandler(manager *invitations.Manager) *InvitationsHandler {
	return &InvitationsHandler{manager: manager}
}

func invitationResponse(inv models.Invitation) dto.InvitationResponse {
	return dto.InvitationResponse{
		ID:           inv.ID.String(),
		TripID:       inv.TripID.String(),
		InviterID:    inv.InviterID.String(),
		InviteeEmail: inv.InviteeEmail,
		Status:       string(inv.Status),
		CreatedAt:    utils.FormatTimestamp(inv.CreatedAt),
		UpdatedAt:    utils.FormatTimestamp(inv.UpdatedAt),
	}
}

// Invitations dispatches by HTTP method for /api/invitations
func (h *InvitationsHandler) Invitations(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.ListInvitations(w, r)
	case http.MethodPost:
		h.CreateInvitation(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// InvitationAction dispatches /api/invitations/{id}/accept and {id}/decline
func (h *InvitationsHandler) InvitationAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/invitations/")
	parts := strings.Split(strings.TrimSuffix(rest, "/"), "/")
	if len(parts) != 2 {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not found", "Unknown invitation endpoint")
		return
	}

	id, err := uuid.Parse(parts[0])
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "Invalid invitation id")
		return
	}

	switch parts[1] {
	case "accept":
		h.AcceptInvitation(w, r, id)
	case "decline":
		h.DeclineInvitation(w, r, id)
	default:
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not found", "Unknown invitation endpoint")
	}
}

// CreateInvitation handles POST /api/invitations
// @Summary Invite a user to a trip
// @Description Create a pending invitation; the caller must be a member of the trip
// @Tags invitations
// @Accept json
// @Produce json
// @Param payload body dto.CreateInvitationRequest true "Invitation payload"
// @Success 201 {object} dto.CreateInvitationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/invitations [post]
// @Security BearerAuth
func (h *InvitationsHandler) CreateInvitation(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	var req dto.CreateInvitationRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.TripID == "" || req.Email == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Missing required fields", "trip_id and email are required")
		return
	}

	tripID, err := uuid.Parse(req.TripID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "Invalid trip id")
		return
	}

	inv, err := h.manager.Create(r.Context(), userID, tripID, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, membership.ErrNotMember):
			utils.WriteErrorResponse(w, http.StatusForbidden, "Forbidden", "You are not a member of this trip")
		case errors.Is(err, invitations.ErrAlreadyMember):
			utils.WriteErrorResponse(w, http.StatusConflict, "Conflict", "This user is already a trip member")
		case errors.Is(err, store.ErrNotFound):
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not found", "Trip not found")
		default:
			log.Printf("Failed to create invitation for trip %s by user %s: %v", tripID, userID, err)
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to create invitation")
		}
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.CreateInvitationResponse{
		Success:    true,
		Invitation: invitationResponse(inv),
	})
}

// ListInvitations handles GET /api/invitations
// @Summary List pending invitations
// @Description List the caller's pending invitations with trip summaries
// @Tags invitations
// @Produce json
// @Success 200 {object} dto.InvitationListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/invitations [get]
// @Security BearerAuth
func (h *InvitationsHandler) ListInvitations(w http.ResponseWriter, r *http.Request) {
	email, ok := utils.GetEmailFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	list, err := h.manager.ListPending(r.Context(), email)
	if err != nil {
		log.Printf("Failed to list invitations for %s: %v", email, err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to list invitations")
		return
	}

	resp := dto.InvitationListResponse{
		Invitations: make([]dto.InvitationWithTripResponse, 0, len(list)),
		Total:       len(list),
	}
	for _, item := range list {
		resp.Invitations = append(resp.Invitations, dto.InvitationWithTripResponse{
			InvitationResponse: invitationResponse(item.Invitation),
			Trip:               tripSummaryResponse(item.Trip),
		})
	}
	utils.WriteJSONResponse(w, http.StatusOK, resp)
}

// AcceptInvitation handles POST /api/invitations/{id}/accept
// @Summary Accept an invitation
// @Description Accept a pending invitation addressed to the caller and join the trip
// @Tags invitations
// @Produce json
// @Param id path string true "Invitation ID"
// @Success 200 {object} dto.AcceptInvitationResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/invitations/{id}/accept [post]
// @Security BearerAuth
func (h *InvitationsHandler) AcceptInvitation(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	email, okEmail := utils.GetEmailFromContext(r.Context())
	if !ok || !okEmail {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	summary, err := h.manager.Accept(r.Context(), id, userID, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Covers unknown id, email mismatch, and terminal invitations alike.
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not found", "Invitation not found")
			return
		}
		log.Printf("Failed to accept invitation %s for user %s: %v", id, userID, err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to accept invitation")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.AcceptInvitationResponse{
		Success: true,
		Trip:    tripSummaryResponse(summary),
	})
}

// DeclineInvitation handles POST /api/invitations/{id}/decline
// @Summary Decline an invitation
// @Description Decline a pending invitation addressed to the caller
// @Tags invitations
// @Produce json
// @Param id path string true "Invitation ID"
// @Success 200 {object} dto.DeclineInvitationResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/invitations/{id}/decline [post]
// @Security BearerAuth
func (h *InvitationsHandler) DeclineInvitation(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	email, okEmail := utils.GetEmailFromContext(r.Context())
	if !ok || !okEmail {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	if err := h.manager.Decline(r.Context(), id, userID, email); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not found", "Invitation not found")
			return
		}
		log.Printf("Failed to decline invitation %s for user %s: %v", id, userID, err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to decline invitation")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.DeclineInvitationResponse{
		Success: true,
	})
}
