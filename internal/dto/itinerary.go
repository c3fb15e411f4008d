package dto

// CreateItineraryItemRequest represents the payload to schedule an activity
type CreateItineraryItemRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description,omitempty"`
	Location    *string `json:"location,omitempty"`
	Date        string  `json:"date" validate:"required"`
	StartTime   *string `json:"start_time,omitempty"`
	EndTime     *string `json:"end_time,omitempty"`
}

// ItineraryItemResponse represents itinerary data in API responses
type ItineraryItemResponse struct {
	ID          string  `json:"id"`
	TripID      string  `json:"trip_id"`
	UserID      string  `json:"user_id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	Date        string  `json:"date"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	CreatedAt   string  `json:"created_at"`
}

// ItineraryListResponse wraps a trip's itinerary items
type ItineraryListResponse struct {
	Items []ItineraryItemResponse `json:"items"`
	Total int                     `json:"total"`
}
