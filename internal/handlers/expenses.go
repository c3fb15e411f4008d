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

// ExpensesHandler manages trip expense endpoints
type ExpensesHandler struct {
	store store.Store
	gate  *membership.Gate
}

// NewExpensesHandler creates a new ExpensesHandler
func NewExpensesHandler(st store.Store, gate *membership.Gate) *ExpensesHandler {
	return &ExpensesHandler{store: st, gate: gate}
}

func expenseResponse(e models.Expense) dto.ExpenseResponse {
	return dto.ExpenseResponse{
		ID:          e.ID.String(),
		TripID:      e.TripID.String(),
		UserID:      e.UserID.String(),
		Description: e.Description,
		Amount:      e.Amount,
		Category:    e.Category,
		Date:        utils.FormatDate(e.Date),
		CreatedAt:   utils.FormatTimestamp(e.CreatedAt),
	}
}

// Expenses dispatches /api/trips/{id}/expenses
func (h *ExpensesHandler) Expenses(w http.ResponseWriter, r *http.Request, tripID uuid.UUID) {
	switch r.Method {
	case http.MethodGet:
		h.ListExpenses(w, r, tripID)
	case http.MethodPost:
		h.CreateExpense(w, r, tripID)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// ListExpenses handles GET /api/trips/{id}/expenses
// @Summary List trip expenses
// @Tags expenses
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} dto.ExpenseListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/trips/{id}/expenses [get]
// @Security BearerAuth
func (h *ExpensesHandler) ListExpenses(w http.ResponseWriter, r *http.Request, tripID uuid.UUID) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}
	if err := h.gate.Require(r.Context(), tripID, userID); err != nil {
		writeGateError(w, err, tripID, userID)
		return
	}

	expenses, err := h.store.ListExpenses(r.Context(), tripID)
	if err != nil {
		log.Printf("Failed to list expenses for trip %s: %v", tripID, err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to list expenses")
		return
	}

	resp := dto.ExpenseListResponse{Expenses: make([]dto.ExpenseResponse, 0, len(expenses)), Count: len(expenses)}
	for _, e := range expenses {
		resp.Expenses = append(resp.Expenses, expenseResponse(e))
		resp.Total += e.Amount
	}
	utils.WriteJSONResponse(w, http.StatusOK, resp)
}

// CreateExpense handles POST /api/trips/{id}/expenses
// @Summary Record a trip expense
// @Tags expenses
// @Accept json
// @Produce json
// @Param id path string true "Trip ID"
// @Param payload body dto.CreateExpenseRequest true "Expense payload"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/trips/{id}/expenses [post]
// @Security BearerAuth
func (h *ExpensesHandler) CreateExpense(w http.ResponseWriter, r *http.Request, tripID uuid.UUID) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}
	if err := h.gate.Require(r.Context(), tripID, userID); err != nil {
		writeGateError(w, err, tripID, userID)
		return
	}

	var req dto.CreateExpenseRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	req.Description = strings.TrimSpace(req.Description)
	req.Category = strings.TrimSpace(req.Category)
	if req.Description == "" || req.Category == "" || req.Date == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "description, category, date are required")
		return
	}
	if req.Amount <= 0 {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "amount must be positive")
		return
	}
	date, err := utils.ParseDate(req.Date)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "date must be ISO 8601 format")
		return
	}

	expense := models.Expense{
		ID:          uuid.New(),
		TripID:      tripID,
		UserID:      userID,
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		Date:        date,
		CreatedAt:   time.Now(),
	}

	if err := h.store.CreateExpense(r.Context(), expense); err != nil {
		log.Printf("Failed to create expense for trip %s: %v", tripID, err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to record expense")
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, expenseResponse(expense))
}
