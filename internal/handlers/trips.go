package handlers

import (
	"errors"
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

// TripsHandler manages trip-related endpoints
type TripsHandler struct {
	store store.Store
	gate  *membership.Gate
}

// NewTripsHandler creates a new TripsHandler
func NewTripsHandler(st store.Store, gate *membership.Gate) *TripsHandler {
	return &TripsHandler{store: st, gate: gate}
}

func tripResponse(t models.Trip) dto.TripResponse {
	return dto.TripResponse{
		ID:          t.ID.String(),
		OwnerID:     t.OwnerID.String(),
		Title:       t.Title,
		Destination: t.Destination,
		StartDate:   utils.FormatDate(t.StartDate),
		EndDate:     utils.FormatDate(t.EndDate),
		Status:      t.Status,
		Budget:      t.Budget,
		Currency:    t.Currency,
		CreatedAt:   utils.FormatTimestamp(t.CreatedAt),
		UpdatedAt:   utils.FormatTimestamp(t.UpdatedAt),
	}
}

func tripSummaryResponse(s models.TripSummary) dto.TripSummaryResponse {
	return dto.TripSummaryResponse{
		ID:          s.ID.String(),
		Title:       s.Title,
		Destination: s.Destination,
		StartDate:   utils.FormatDate(s.StartDate),
		EndDate:     utils.FormatDate(s.EndDate),
		Status:      s.Status,
	}
}

// Trips dispatches by HTTP method for /api/trips and /api/trips/{id}
func (h *TripsHandler) Trips(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.CreateTrip(w, r)
	case http.MethodGet:
		if strings.HasPrefix(r.URL.Path, "/api/trips/") && len(r.URL.Path) > len("/api/trips/") {
			h.TripDetail(w, r)
			return
		}
		h.ListTrips(w, r)
	case http.MethodPut, http.MethodPatch:
		h.UpdateTrip(w, r)
	case http.MethodDelete:
		h.DeleteTrip(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// tripIDFromPath extracts the trip id from /api/trips/{id}
func tripIDFromPath(path string) (uuid.UUID, error) {
	raw := strings.TrimPrefix(path, "/api/trips/")
	raw = strings.TrimSuffix(raw, "/")
	return uuid.Parse(raw)
}

// CreateTrip handles POST /api/trips
// @Summary Create a new trip
// @Description Create a trip; the creator becomes its owner member
// @Tags trips
// @Accept json
// @Produce json
// @Param payload body dto.CreateTripRequest true "Trip payload"
// @Success 201 {object} dto.TripResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/trips [post]
// @Security BearerAuth
func (h *TripsHandler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	var req dto.CreateTripRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Destination = strings.TrimSpace(req.Destination)
	if req.Title == "" || req.Destination == "" || req.StartDate == "" || req.EndDate == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "title, destination, start_date, end_date are required")
		return
	}

	status := models.TripStatusPlanning
	if req.Status != nil {
		status = strings.ToLower(strings.TrimSpace(*req.Status))
		if !models.ValidTripStatus(status) {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "status must be planning, confirmed, ongoing, completed, or cancelled")
			return
		}
	}

	startDate, err := utils.ParseDate(req.StartDate)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "start_date must be ISO 8601 format (YYYY-MM-DD or RFC3339)")
		return
	}
	endDate, err := utils.ParseDate(req.EndDate)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "end_date must be ISO 8601 format (YYYY-MM-DD or RFC3339)")
		return
	}
	if endDate.Before(startDate) {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "end_date cannot be before start_date")
		return
	}

	currency := "USD"
	if req.Currency != nil {
		currency = strings.ToUpper(strings.TrimSpace(*req.Currency))
	}
	if req.Budget != nil && *req.Budget < 0 {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "budget cannot be negative")
		return
	}

	now := time.Now()
	trip := models.Trip{
		ID:          uuid.New(),
		OwnerID:     userID,
		Title:       req.Title,
		Destination: req.Destination,
		StartDate:   startDate,
		EndDate:     endDate,
		Status:      status,
		Budget:      req.Budget,
		Currency:    currency,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// Trip row and owner membership are created as a unit.
	err = h.store.Transact(r.Context(), func(tx store.Store) error {
		if err := tx.CreateTrip(r.Context(), trip); err != nil {
			return err
		}
		return tx.AddMember(r.Context(), models.TripMember{
			TripID:   trip.ID,
			UserID:   userID,
			Role:     models.RoleOwner,
			JoinedAt: now,
		})
	})
	if err != nil {
		log.Printf("Failed to create trip for user %s: %v", userID, err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to create trip")
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, tripResponse(trip))
}

// ListTrips handles GET /api/trips
// @Summary List the caller's trips
// @Description List every trip the caller is a member of
// @Tags trips
// @Produce json
// @Success 200 {object} dto.TripListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/trips [get]
// @Security BearerAuth
func (h *TripsHandler) ListTrips(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	trips, err := h.store.ListTripsForUser(r.Context(), userID)
	if err != nil {
		log.Printf("Failed to list trips for user %s: %v", userID, err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to list trips")
		return
	}

	resp := dto.TripListResponse{Trips: make([]dto.TripResponse, 0, len(trips)), Total: len(trips)}
	for _, t := range trips {
		resp.Trips = append(resp.Trips, tripResponse(t))
	}
	utils.WriteJSONResponse(w, http.StatusOK, resp)
}

// TripDetail handles GET /api/trips/{id}
// @Summary Get a trip
// @Description Get a trip with its member roster; the caller must be a member
// @Tags trips
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} dto.TripDetailResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/trips/{id} [get]
// @Security BearerAuth
func (h *TripsHandler) TripDetail(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	tripID, err := tripIDFromPath(r.URL.Path)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "Invalid trip id")
		return
	}

	if err := h.gate.Require(r.Context(), tripID, userID); err != nil {
		writeGateError(w, err, tripID, userID)
		return
	}

	trip, err := h.store.GetTrip(r.Context(), tripID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not found", "Trip not found")
			return
		}
		log.Printf("Failed to load trip %s: %v", tripID, err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to load trip")
		return
	}

	members, err := h.gate.Members(r.Context(), tripID, userID)
	if err != nil {
		writeGateError(w, err, tripID, userID)
		return
	}

	resp := dto.TripDetailResponse{TripResponse: tripResponse(trip)}
	resp.Members = make([]dto.MemberResponse, 0, len(members))
	for _, m := range members {
		resp.Members = append(resp.Members, memberResponse(m))
	}
	utils.WriteJSONResponse(w, http.StatusOK, resp)
}

// UpdateTrip handles PUT /api/trips/{id}
// @Summary Update a trip
// @Description Update trip fields; only the owner may update
// @Tags trips
// @Accept json
// @Produce json
// @Param id path string true "Trip ID"
// @Param payload body dto.UpdateTripRequest true "Fields to update"
// @Success 200 {object} dto.TripResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/trips/{id} [put]
// @Security BearerAuth
func (h *TripsHandler) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	tripID, err := tripIDFromPath(r.URL.Path)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "Invalid trip id")
		return
	}

	trip, err := h.store.GetTrip(r.Context(), tripID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not found", "Trip not found")
			return
		}
		log.Printf("Failed to load trip %s: %v", tripID, err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to update trip")
		return
	}

	if trip.OwnerID != userID {
		utils.WriteErrorResponse(w, http.StatusForbidden, "Forbidden", "Only the trip owner may update the trip")
		return
	}

	var req dto.UpdateTripRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "title cannot be empty")
			return
		}
		trip.Title = title
	}
	if req.Destination != nil {
		dest := strings.TrimSpace(*req.Destination)
		if dest == "" {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "destination cannot be empty")
			return
		}
		trip.Destination = dest
	}
	if req.StartDate != nil {
		start, err := utils.ParseDate(*req.StartDate)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "start_date must be ISO 8601 format")
			return
		}
		trip.StartDate = start
	}
	if req.EndDate != nil {
		end, err := utils.ParseDate(*req.EndDate)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "end_date must be ISO 8601 format")
			return
		}
		trip.EndDate = end
	}
	if trip.EndDate.Before(trip.StartDate) {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "end_date cannot be before start_date")
		return
	}
	if req.Status != nil {
		status := strings.ToLower(strings.TrimSpace(*req.Status))
		if !models.ValidTripStatus(status) {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "invalid trip status")
			return
		}
		trip.Status = status
	}
	if req.Budget != nil {
		if *req.Budget < 0 {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "budget cannot be negative")
			return
		}
		trip.Budget = req.Budget
	}
	if req.Currency != nil {
		trip.Currency = strings.ToUpper(strings.TrimSpace(*req.Currency))
	}
	trip.UpdatedAt = time.Now()

	if err := h.store.UpdateTrip(r.Context(), trip); err != nil {
		log.Printf("Failed to update trip %s: %v", tripID, err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to update trip")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, tripResponse(trip))
}

// DeleteTrip handles DELETE /api/trips/{id}
// @Summary Delete a trip
// @Description Delete a trip and its related records; only the owner may delete
// @Tags trips
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/trips/{id} [delete]
// @Security BearerAuth
func (h *TripsHandler) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	tripID, err := tripIDFromPath(r.URL.Path)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "Invalid trip id")
		return
	}

	trip, err := h.store.GetTrip(r.Context(), tripID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not found", "Trip not found")
			return
		}
		log.Printf("Failed to load trip %s: %v", tripID, err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to delete trip")
		return
	}

	if trip.OwnerID != userID {
		utils.WriteErrorResponse(w, http.StatusForbidden, "Forbidden", "Only the trip owner may delete the trip")
		return
	}

	if err := h.store.DeleteTrip(r.Context(), tripID); err != nil {
		log.Printf("Failed to delete trip %s: %v", tripID, err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to delete trip")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, map[string]string{"message": "Trip deleted successfully"})
}

// writeGateError maps membership gate errors to HTTP responses
func writeGateError(w http.ResponseWriter, err error, tripID, userID uuid.UUID) {
	switch {
	case errors.Is(err, membership.ErrNotMember):
		utils.WriteErrorResponse(w, http.StatusForbidden, "Forbidden", "You are not a member of this trip")
	case errors.Is(err, membership.ErrOwnerOnly):
		utils.WriteErrorResponse(w, http.StatusForbidden, "Forbidden", "Only the trip owner may do this")
	case errors.Is(err, membership.ErrOwnerImmutable):
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "The trip owner cannot be removed")
	case errors.Is(err, store.ErrNotFound):
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not found", "Record not found")
	default:
		log.Printf("Membership check failed for trip %s user %s: %v", tripID, userID, err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to verify membership")
	}
}
