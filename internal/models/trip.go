package models

import (
	"time"

	"github.com/google/uuid"
)

// Trip statuses follow the planning lifecycle of a journey.
const (
	TripStatusPlanning  = "planning"
	TripStatusConfirmed = "confirmed"
	TripStatusOngoing   = "ongoing"
	TripStatusCompleted = "completed"
	TripStatusCancelled = "cancelled"
)

// ValidTripStatus reports whether s is one of the known trip statuses.
func ValidTripStatus(s string) bool {
	switch s {
	case TripStatusPlanning, TripStatusConfirmed, TripStatusOngoing, TripStatusCompleted, TripStatusCancelled:
		return true
	}
	return false
}

// Trip represents a planned journey owned by one user and shared with its members
type Trip struct {
	ID          uuid.UUID `json:"id" db:"id"`
	OwnerID     uuid.UUID `json:"owner_id" db:"owner_id"`
	Title       string    `json:"title" db:"title"`
	Destination string    `json:"destination" db:"destination"`
	StartDate   time.Time `json:"start_date" db:"start_date"`
	EndDate     time.Time `json:"end_date" db:"end_date"`
	Status      string    `json:"status" db:"status"`
	Budget      *float64  `json:"budget" db:"budget"`
	Currency    string    `json:"currency" db:"currency"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// TripSummary carries the trip fields shown alongside an invitation
type TripSummary struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Destination string    `json:"destination"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Status      string    `json:"status"`
}

// Summary projects a trip down to its invitation summary fields.
func (t Trip) Summary() TripSummary {
	return TripSummary{
		ID:          t.ID,
		Title:       t.Title,
		Destination: t.Destination,
		StartDate:   t.StartDate,
		EndDate:     t.EndDate,
		Status:      t.Status,
	}
}
