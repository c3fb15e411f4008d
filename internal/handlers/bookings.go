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

// BookingsHandler manages trip booking endpoints
type BookingsHandler struct {
	store store.Store
	gate  *membership.Gate
}

// NewBookingsHandler creates a new BookingsHandler
func NewBookingsHandler(st store.Store, gate *membership.Gate) *BookingsHandler {
	return &BookingsHandler{store: st, gate: gate}
}

func bookingResponse(b models.Booking) dto.BookingResponse {
	resp := dto.BookingResponse{
		ID:                 b.ID.String(),
		TripID:             b.TripID.String(),
		UserID:             b.UserID.String(),
		Type:               b.Type,
		Title:              b.Title,
		Provider:           b.Provider,
		ConfirmationNumber: b.ConfirmationNumber,
		StartDate:          utils.FormatDate(b.StartDate),
		Amount:             b.Amount,
		Status:             b.Status,
		Notes:              b.Notes,
		CreatedAt:          utils.FormatTimestamp(b.CreatedAt),
	}
	if b.EndDate != nil {
		end := utils.FormatDate(*b.EndDate)
		resp.EndDate = &end
	}
	return resp
}

// Bookings dispatches /api/trips/{id}/bookings
func (h *BookingsHandler) Bookings(w http.ResponseWriter, r *http.Request, tripID uuid.UUID) {
	switch r.Method {
	case http.MethodGet:
		h.ListBookings(w, r, tripID)
	case http.MethodPost:
		h.CreateBooking(w, r, tripID)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// ListBookings handles GET /api/trips/{id}/bookings
// @Summary List trip bookings
// @Tags bookings
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} dto.BookingListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/trips/{id}/bookings [get]
// @Security BearerAuth
func (h *BookingsHandler) ListBookings(w http.ResponseWriter, r *http.Request, tripID uuid.UUID) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}
	if err := h.gate.Require(r.Context(), tripID, userID); err != nil {
		writeGateError(w, err, tripID, userID)
		return
	}

	bookings, err := h.store.ListBookings(r.Context(), tripID)
	if err != nil {
		log.Printf("Failed to list bookings for trip %s: %v", tripID, err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to list bookings")
		return
	}

	resp := dto.BookingListResponse{Bookings: make([]dto.BookingResponse, 0, len(bookings)), Total: len(bookings)}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, bookingResponse(b))
	}
	utils.WriteJSONResponse(w, http.StatusOK, resp)
}

// CreateBooking handles POST /api/trips/{id}/bookings
// @Summary Attach a booking to a trip
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path string true "Trip ID"
// @Param payload body dto.CreateBookingRequest true "Booking payload"
// @Success 201 {object} dto.BookingResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/trips/{id}/bookings [post]
// @Security BearerAuth
func (h *BookingsHandler) CreateBooking(w http.ResponseWriter, r *http.Request, tripID uuid.UUID) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}
	if err := h.gate.Require(r.Context(), tripID, userID); err != nil {
		writeGateError(w, err, tripID, userID)
		return
	}

	var req dto.CreateBookingRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	req.Type = strings.ToLower(strings.TrimSpace(req.Type))
	req.Title = strings.TrimSpace(req.Title)
	if req.Type == "" || req.Title == "" || req.StartDate == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "type, title, start_date are required")
		return
	}

	startDate, err := utils.ParseDate(req.StartDate)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "start_date must be ISO 8601 format")
		return
	}
	var endDate *time.Time
	if req.EndDate != nil {
		end, err := utils.ParseDate(*req.EndDate)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "end_date must be ISO 8601 format")
			return
		}
		if end.Before(startDate) {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "end_date cannot be before start_date")
			return
		}
		endDate = &end
	}

	status := "confirmed"
	if req.Status != nil && strings.TrimSpace(*req.Status) != "" {
		status = strings.ToLower(strings.TrimSpace(*req.Status))
	}

	booking := models.Booking{
		ID:                 uuid.New(),
		TripID:             tripID,
		UserID:             userID,
		Type:               req.Type,
		Title:              req.Title,
		Provider:           req.Provider,
		ConfirmationNumber: req.ConfirmationNumber,
		StartDate:          startDate,
		EndDate:            endDate,
		Amount:             req.Amount,
		Status:             status,
		Notes:              req.Notes,
		CreatedAt:          time.Now(),
	}

	if err := h.store.CreateBooking(r.Context(), booking); err != nil {
		log.Printf("Failed to create booking for trip %s: %v", tripID, err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to create booking")
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, bookingResponse(booking))
}
