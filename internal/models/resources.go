package models

import (
	"time"

	"github.com/google/uuid"
)

// Expense is a cost recorded against a trip
type Expense struct {
	ID          uuid.UUID `json:"id" db:"id"`
	TripID      uuid.UUID `json:"trip_id" db:"trip_id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	Description string    `json:"description" db:"description"`
	Amount      float64   `json:"amount" db:"amount"`
	Category    string    `json:"category" db:"category"`
	Date        time.Time `json:"date" db:"date"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// ItineraryItem is a scheduled activity within a trip
type ItineraryItem struct {
	ID          uuid.UUID `json:"id" db:"id"`
	TripID      uuid.UUID `json:"trip_id" db:"trip_id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description" db:"description"`
	Location    *string   `json:"location" db:"location"`
	Date        time.Time `json:"date" db:"date"`
	StartTime   *string   `json:"start_time" db:"start_time"`
	EndTime     *string   `json:"end_time" db:"end_time"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Booking is a reservation (flight, hotel, car, ...) attached to a trip
type Booking struct {
	ID                 uuid.UUID  `json:"id" db:"id"`
	TripID             uuid.UUID  `json:"trip_id" db:"trip_id"`
	UserID             uuid.UUID  `json:"user_id" db:"user_id"`
	Type               string     `json:"type" db:"type"`
	Title              string     `json:"title" db:"title"`
	Provider           *string    `json:"provider" db:"provider"`
	ConfirmationNumber *string    `json:"confirmation_number" db:"confirmation_number"`
	StartDate          time.Time  `json:"start_date" db:"start_date"`
	EndDate            *time.Time `json:"end_date" db:"end_date"`
	Amount             *float64   `json:"amount" db:"amount"`
	Status             string     `json:"status" db:"status"`
	Notes              *string    `json:"notes" db:"notes"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
}

// Place is a saved point of interest for a trip
type Place struct {
	ID        uuid.UUID `json:"id" db:"id"`
	TripID    uuid.UUID `json:"trip_id" db:"trip_id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Address   *string   `json:"address" db:"address"`
	Latitude  *float64  `json:"latitude" db:"latitude"`
	Longitude *float64  `json:"longitude" db:"longitude"`
	Rating    *float64  `json:"rating" db:"rating"`
	Notes     *string   `json:"notes" db:"notes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
