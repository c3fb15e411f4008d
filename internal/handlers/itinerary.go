package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"VIAJAPLUS_BACK-END/internal/dto"
	"VIAJAPLUS_BACK-END/internal/membership"
	"VIAJAPLUS_BACK-END/internal/models"
	"VIAJAPLUS_BACK-END/internal/store"
	"VIAJAPLUS_BACK-END/internal/utils"
)

// ItineraryHandler manages trip itinerary endpoints
type ItineraryHandler struct {
	store store.Store
	gate  *membership.Gate
}

// NewItineraryHandler creates a new ItineraryHandler
func NewItineraryHandler(st store.Store, gate *membership.Gate) *ItineraryHandler {
	return &ItineraryHandler{store: st, gate: gate}
}

func itineraryItemResponse(it models.ItineraryItem) dto.ItineraryItemResponse {
	return dto.ItineraryItemResponse{
		ID:          it.ID.String(),
		TripID:      it.TripID.String(),
		UserID:      it.UserID.String(),
		Title:       it.Title,
		Description: it.Description,
		Location:    it.Location,
		Date:        utils.FormatDate(it.Date),
		StartTime:   it.StartTime,
		EndTime:     it.EndTime,
		CreatedAt:   utils.FormatTimestamp(it.CreatedAt),
	}
}

// Itinerary dispatches /api/trips/{id}/itinerary
func (h *ItineraryHandler) Itinerary(w http.ResponseWriter, r *http.Request, tripID uuid.UUID) {
	switch r.Method {
	case http.MethodGet:
		h.ListItems(w, r, tripID)
	case http.MethodPost:
		h.CreateItem(w, r, tripID)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// ListItems handles GET /api/trips/{id}/itinerary
// @Summary List itinerary items
// @Tags itinerary
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} dto.ItineraryListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/trips/{id}/itinerary [get]
// @Security BearerAuth
func (h *ItineraryHandler) ListItems(w http.ResponseWriter, r *http.Request, tripID uuid.UUID) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}
	if err := h.gate.Require(r.Context(), tripID, userID); err != nil {
		writeGateError(w, err, tripID, userID)
		return
	}

	items, err := h.store.ListItineraryItems(r.Context(), tripID)
	if err != nil {
		log.Printf("Failed to list itinerary for trip %s: %v", tripID, err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to list itinerary")
		return
	}

	resp := dto.ItineraryListResponse{Items: make([]dto.ItineraryItemResponse, 0, len(items)), Total: len(items)}
	for _, it := range items {
		resp.Items = append(resp.Items, itineraryItemResponse(it))
	}
	utils.WriteJSONResponse(w, http.StatusOK, resp)
}

// CreateItem handles POST /api/trips/{id}/itinerary
// @Summary Schedule an itinerary item
// @Tags itinerary
// @Accept json
// @Produce json
// @Param id path string true "Trip ID"
// @Param payload body dto.CreateItineraryItemRequest true "Itinerary payload"
// @Success 201 {object} dto.ItineraryItemResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/trips/{id}/itinerary [post]
// @Security BearerAuth
func (h *ItineraryHandler) CreateItem(w http.ResponseWriter, r *http.Request, tripID uuid.UUID) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}
	if err := h.gate.Require(r.Context(), tripID, userID); err != nil {
		writeGateError(w, err, tripID, userID)
		return
	}

	var req dto.CreateItineraryItemRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || req.Date == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "title and date are required")
		return
	}
	date, err := utils.ParseDate(req.Date)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "date must be ISO 8601 format")
		return
	}

	item := models.ItineraryItem{
		ID:          uuid.New(),
		TripID:      tripID,
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Date:        date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		CreatedAt:   time.Now(),
	}

	if err := h.store.CreateItineraryItem(r.Context(), item); err != nil {
		log.Printf("Failed to create itinerary item for trip %s: %v", tripID, err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to create itinerary item")
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, itineraryItemResponse(item))
}
