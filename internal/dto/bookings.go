package dto

// CreateBookingRequest represents the payload to attach a reservation to a trip
type CreateBookingRequest struct {
	Type               string   `json:"type" validate:"required"`
	Title              string   `json:"title" validate:"required"`
	Provider           *string  `json:"provider,omitempty"`
	ConfirmationNumber *string  `json:"confirmation_number,omitempty"`
	StartDate          string   `json:"start_date" validate:"required"`
	EndDate            *string  `json:"end_date,omitempty"`
	Amount             *float64 `json:"amount,omitempty"`
	Status             *string  `json:"status,omitempty"`
	Notes              *string  `json:"notes,omitempty"`
}

// BookingResponse represents booking data in API responses
type BookingResponse struct {
	ID                 string   `json:"id"`
	TripID             string   `json:"trip_id"`
	UserID             string   `json:"user_id"`
	Type               string   `json:"type"`
	Title              string   `json:"title"`
	Provider           *string  `json:"provider"`
	ConfirmationNumber *string  `json:"confirmation_number"`
	StartDate          string   `json:"start_date"`
	EndDate            *string  `json:"end_date"`
	Amount             *float64 `json:"amount"`
	Status             string   `json:"status"`
	Notes              *string  `json:"notes"`
	CreatedAt          string   `json:"created_at"`
}

// BookingListResponse wraps a trip's bookings
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}
