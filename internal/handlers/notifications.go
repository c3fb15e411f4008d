package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"VIAJAPLUS_BACK-END/internal/dto"
	"VIAJAPLUS_BACK-END/internal/models"
	"VIAJAPLUS_BACK-END/internal/store"
	"VIAJAPLUS_BACK-END/internal/utils"
)

const (
	defaultNotificationLimit = 20
	maxNotificationLimit     = 100
)

// NotificationsHandler manages notification endpoints
type NotificationsHandler struct {
	store store.Store
}

// NewNotificationsHandler creates a new NotificationsHandler
func NewNotificationsHandler(st store.Store) *NotificationsHandler {
	return &NotificationsHandler{store: st}
}

func notificationResponse(n models.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:        n.ID.String(),
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Data:      n.Data,
		Read:      n.Read,
		CreatedAt: utils.FormatTimestamp(n.CreatedAt),
	}
}

// Notifications dispatches /api/notifications and its subroutes
func (h *NotificationsHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/notifications")
	rest = strings.Trim(rest, "/")

	switch {
	case rest == "":
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.ListNotifications(w, r)
	case rest == "read-all":
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.MarkAllRead(w, r)
	case strings.HasSuffix(rest, "/read"):
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		id, err := uuid.Parse(strings.TrimSuffix(rest, "/read"))
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "Invalid notification id")
			return
		}
		h.MarkRead(w, r, id)
	default:
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not found", "Unknown notification endpoint")
	}
}

// ListNotifications handles GET /api/notifications
// @Summary List notifications
// @Description List the caller's notifications, newest first
// @Tags notifications
// @Produce json
// @Param unread query bool false "Only unread notifications"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.NotificationListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/notifications [get]
// @Security BearerAuth
func (h *NotificationsHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	unreadOnly := r.URL.Query().Get("unread") == "true"
	limit := defaultNotificationLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxNotificationLimit {
		limit = maxNotificationLimit
	}
	offset := 0
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			offset = n
		}
	}

	notifs, err := h.store.ListNotifications(r.Context(), userID, unreadOnly, limit, offset)
	if err != nil {
		log.Printf("Failed to list notifications for user %s: %v", userID, err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to list notifications")
		return
	}

	total, err := h.store.CountNotifications(r.Context(), userID, unreadOnly)
	if err != nil {
		log.Printf("Failed to count notifications for user %s: %v", userID, err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to list notifications")
		return
	}
	unread, err := h.store.CountNotifications(r.Context(), userID, true)
	if err != nil {
		log.Printf("Failed to count unread notifications for user %s: %v", userID, err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to list notifications")
		return
	}

	resp := dto.NotificationListResponse{
		Notifications: make([]dto.NotificationResponse, 0, len(notifs)),
		Unread:        unread,
		Total:         total,
	}
	for _, n := range notifs {
		resp.Notifications = append(resp.Notifications, notificationResponse(n))
	}
	utils.WriteJSONResponse(w, http.StatusOK, resp)
}

// MarkRead handles POST /api/notifications/{id}/read
// @Summary Mark a notification as read
// @Tags notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/notifications/{id}/read [post]
// @Security BearerAuth
func (h *NotificationsHandler) MarkRead(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	if err := h.store.MarkNotificationRead(r.Context(), id, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not found", "Notification not found")
			return
		}
		log.Printf("Failed to mark notification %s read for user %s: %v", id, userID, err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to update notification")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, map[string]string{"message": "Notification marked as read"})
}

// MarkAllRead handles POST /api/notifications/read-all
// @Summary Mark all notifications as read
// @Tags notifications
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/notifications/read-all [post]
// @Security BearerAuth
func (h *NotificationsHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	updated, err := h.store.MarkAllNotificationsRead(r.Context(), userID)
	if err != nil {
		log.Printf("Failed to mark notifications read for user %s: %v", userID, err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to update notifications")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"message": "All notifications marked as read",
		"updated": updated,
	})
}
