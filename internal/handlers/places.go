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

// PlacesHandler manages saved place endpoints
type PlacesHandler struct {
	store store.Store
	gate  *membership.Gate
}

// NewPlacesHandler creates a new PlacesHandler
func NewPlacesHandler(st store.Store, gate *membership.Gate) *PlacesHandler {
	return &PlacesHandler{store: st, gate: gate}
}

func placeResponse(p models.Place) dto.PlaceResponse {
	return dto.PlaceResponse{
		ID:        p.ID.String(),
		TripID:    p.TripID.String(),
		UserID:    p.UserID.String(),
		Name:      p.Name,
		Address:   p.Address,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		Rating:    p.Rating,
		Notes:     p.Notes,
		CreatedAt: utils.FormatTimestamp(p.CreatedAt),
	}
}

// Places dispatches /api/trips/{id}/places
func (h *PlacesHandler) Places(w http.ResponseWriter, r *http.Request, tripID uuid.UUID) {
	switch r.Method {
	case http.MethodGet:
		h.ListPlaces(w, r, tripID)
	case http.MethodPost:
		h.CreatePlace(w, r, tripID)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// ListPlaces handles GET /api/trips/{id}/places
// @Summary List saved places
// @Tags places
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} dto.PlaceListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/trips/{id}/places [get]
// @Security BearerAuth
func (h *PlacesHandler) ListPlaces(w http.ResponseWriter, r *http.Request, tripID uuid.UUID) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}
	if err := h.gate.Require(r.Context(), tripID, userID); err != nil {
		writeGateError(w, err, tripID, userID)
		return
	}

	places, err := h.store.ListPlaces(r.Context(), tripID)
	if err != nil {
		log.Printf("Failed to list places for trip %s: %v", tripID, err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to list places")
		return
	}

	resp := dto.PlaceListResponse{Places: make([]dto.PlaceResponse, 0, len(places)), Total: len(places)}
	for _, p := range places {
		resp.Places = append(resp.Places, placeResponse(p))
	}
	utils.WriteJSONResponse(w, http.StatusOK, resp)
}

// CreatePlace handles POST /api/trips/{id}/places
// @Summary Save a place for a trip
// @Tags places
// @Accept json
// @Produce json
// @Param id path string true "Trip ID"
// @Param payload body dto.CreatePlaceRequest true "Place payload"
// @Success 201 {object} dto.PlaceResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/trips/{id}/places [post]
// @Security BearerAuth
func (h *PlacesHandler) CreatePlace(w http.ResponseWriter, r *http.Request, tripID uuid.UUID) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}
	if err := h.gate.Require(r.Context(), tripID, userID); err != nil {
		writeGateError(w, err, tripID, userID)
		return
	}

	var req dto.CreatePlaceRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "name is required")
		return
	}
	if (req.Latitude == nil) != (req.Longitude == nil) {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "latitude and longitude must be set together")
		return
	}
	if req.Rating != nil && (*req.Rating < 0 || *req.Rating > 5) {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "rating must be between 0 and 5")
		return
	}

	place := models.Place{
		ID:        uuid.New(),
		TripID:    tripID,
		UserID:    userID,
		Name:      req.Name,
		Address:   req.Address,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Rating:    req.Rating,
		Notes:     req.Notes,
		CreatedAt: time.Now(),
	}

	if err := h.store.CreatePlace(r.Context(), place); err != nil {
		log.Printf("Failed to save place for trip %s: %v", tripID, err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to save place")
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, placeResponse(place))
}
