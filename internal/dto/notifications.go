package dto

// NotificationResponse represents a notification in API responses
type NotificationResponse struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Message   *string        `json:"message"`
	Data      map[string]any `json:"data,omitempty"`
	Read      bool           `json:"read"`
	CreatedAt string         `json:"created_at"`
}

// NotificationListResponse wraps the caller's notifications
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Unread        int                    `json:"unread"`
	Total         int                    `json:"total"`
}
