package dto

// CreatePlaceRequest represents the payload to save a point of interest
type CreatePlaceRequest struct {
	Name      string   `json:"name" validate:"required"`
	Address   *string  `json:"address,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Rating    *float64 `json:"rating,omitempty"`
	Notes     *string  `json:"notes,omitempty"`
}

// PlaceResponse represents place data in API responses
type PlaceResponse struct {
	ID        string   `json:"id"`
	TripID    string   `json:"trip_id"`
	UserID    string   `json:"user_id"`
	Name      string   `json:"name"`
	Address   *string  `json:"address"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Rating    *float64 `json:"rating"`
	Notes     *string  `json:"notes"`
	CreatedAt string   `json:"created_at"`
}

// PlaceListResponse wraps a trip's saved places
type PlaceListResponse struct {
	Places []PlaceResponse `json:"places"`
	Total  int             `json:"total"`
}
