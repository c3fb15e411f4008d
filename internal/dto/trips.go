package dto

// CreateTripRequest represents the payload to create a trip
type CreateTripRequest struct {
	Title       string   `json:"title" validate:"required"`
	Destination string   `json:"destination" validate:"required"`
	StartDate   string   `json:"start_date" validate:"required"`
	EndDate     string   `json:"end_date" validate:"required"`
	Status      *string  `json:"status,omitempty"`
	Budget      *float64 `json:"budget,omitempty"`
	Currency    *string  `json:"currency,omitempty"`
}

// UpdateTripRequest represents the payload to update a trip, all fields optional
type UpdateTripRequest struct {
	Title       *string  `json:"title,omitempty"`
	Destination *string  `json:"destination,omitempty"`
	StartDate   *string  `json:"start_date,omitempty"`
	EndDate     *string  `json:"end_date,omitempty"`
	Status      *string  `json:"status,omitempty"`
	Budget      *float64 `json:"budget,omitempty"`
	Currency    *string  `json:"currency,omitempty"`
}

// TripResponse represents trip data in API responses
type TripResponse struct {
	ID          string   `json:"id"`
	OwnerID     string   `json:"owner_id"`
	Title       string   `json:"title"`
	Destination string   `json:"destination"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Status      string   `json:"status"`
	Budget      *float64 `json:"budget"`
	Currency    string   `json:"currency"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

// TripSummaryResponse is the compact trip shape embedded in other responses
type TripSummaryResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Destination string `json:"destination"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Status      string `json:"status"`
}

// TripDetailResponse is a trip together with its member roster
type TripDetailResponse struct {
	TripResponse
	Members []MemberResponse `json:"members"`
}

// TripListResponse wraps a list of trips
type TripListResponse struct {
	Trips []TripResponse `json:"trips"`
	Total int            `json:"total"`
}
