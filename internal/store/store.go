// Package store defines the persistence boundary of the backend. Handlers and
// services talk to these interfaces; the postgres subpackage implements them on
// pgx, and memorystore provides an in-memory implementation for tests.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"VIAJAPLUS_BACK-END/internal/models"
)

var (
	// ErrNotFound is returned when a row does not exist or does not satisfy
	// the caller's filter. Callers must not learn which precondition failed.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned on unique-constraint violations.
	ErrDuplicate = errors.New("record already exists")
)

// UserStore persists accounts.
type UserStore interface {
	CreateUser(ctx context.Context, u models.User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	UpdateUserProfile(ctx context.Context, id uuid.UUID, displayName, avatarURL *string) error
	UpdateUserPassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

// TripStore persists trips.
type TripStore interface {
	CreateTrip(ctx context.Context, t models.Trip) error
	GetTrip(ctx context.Context, id uuid.UUID) (models.Trip, error)
	ListTripsForUser(ctx context.Context, userID uuid.UUID) ([]models.Trip, error)
	UpdateTrip(ctx context.Context, t models.Trip) error
	DeleteTrip(ctx context.Context, id uuid.UUID) error
}

// MemberStore persists trip memberships. AddMember must be idempotent per
// (trip_id, user_id); the storage layer enforces the uniqueness constraint.
type MemberStore interface {
	AddMember(ctx context.Context, m models.TripMember) error
	GetMember(ctx context.Context, tripID, userID uuid.UUID) (models.TripMember, error)
	ListMembers(ctx context.Context, tripID uuid.UUID) ([]models.MemberWithProfile, error)
	RemoveMember(ctx context.Context, tripID, userID uuid.UUID) error
}

// InvitationStore persists trip invitations. Invitations are never deleted.
type InvitationStore interface {
	CreateInvitation(ctx context.Context, inv models.Invitation) error
	GetInvitation(ctx context.Context, id uuid.UUID) (models.Invitation, error)
	// ListPendingInvitations matches invitee_email case-insensitively.
	ListPendingInvitations(ctx context.Context, email string) ([]models.InvitationWithTrip, error)
	// UpdateInvitationStatus applies a filtered update: the row must match id,
	// invitee_email (case-insensitive) and the expected current status.
	// Returns ErrNotFound when no row was affected.
	UpdateInvitationStatus(ctx context.Context, id uuid.UUID, email string, from, to models.InvitationStatus, updatedAt time.Time) error
}

// ExpenseStore persists trip expenses.
type ExpenseStore interface {
	CreateExpense(ctx context.Context, e models.Expense) error
	ListExpenses(ctx context.Context, tripID uuid.UUID) ([]models.Expense, error)
}

// ItineraryStore persists itinerary items.
type ItineraryStore interface {
	CreateItineraryItem(ctx context.Context, it models.ItineraryItem) error
	ListItineraryItems(ctx context.Context, tripID uuid.UUID) ([]models.ItineraryItem, error)
}

// BookingStore persists bookings.
type BookingStore interface {
	CreateBooking(ctx context.Context, b models.Booking) error
	ListBookings(ctx context.Context, tripID uuid.UUID) ([]models.Booking, error)
}

// PlaceStore persists saved places.
type PlaceStore interface {
	CreatePlace(ctx context.Context, p models.Place) error
	ListPlaces(ctx context.Context, tripID uuid.UUID) ([]models.Place, error)
}

// NotificationStore persists in-app notifications.
type NotificationStore interface {
	CreateNotification(ctx context.Context, n models.Notification) error
	ListNotifications(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit, offset int) ([]models.Notification, error)
	CountNotifications(ctx context.Context, userID uuid.UUID, unreadOnly bool) (int, error)
	MarkNotificationRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllNotificationsRead(ctx context.Context, userID uuid.UUID) (int64, error)
}

// VerificationStore persists one-time password-reset codes.
type VerificationStore interface {
	CreateVerification(ctx context.Context, v Verification) error
	LatestVerification(ctx context.Context, userID uuid.UUID, email string) (Verification, error)
	MarkVerificationUsed(ctx context.Context, id uuid.UUID) error
}

// Verification is a short-lived password-reset code
type Verification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Email     string
	Code      string
	Used      bool
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Store aggregates every persistence concern plus transactional execution.
type Store interface {
	UserStore
	TripStore
	MemberStore
	InvitationStore
	ExpenseStore
	ItineraryStore
	BookingStore
	PlaceStore
	NotificationStore
	VerificationStore

	// Transact runs fn against a store whose writes commit or roll back as a
	// unit. The invitation accept path relies on this to keep the membership
	// insert and the status update atomic.
	Transact(ctx context.Context, fn func(Store) error) error
}
