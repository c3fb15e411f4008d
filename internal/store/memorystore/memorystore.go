// Package memorystore is an in-memory store.Store used by tests. It mirrors
// the Postgres implementation's filtering and idempotency semantics, including
// case-insensitive email matching and the (trip_id, user_id) uniqueness
// backstop on memberships.
package memorystore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"VIAJAPLUS_BACK-END/internal/models"
	"VIAJAPLUS_BACK-END/internal/store"
)

type memberKey struct {
	TripID uuid.UUID
	UserID uuid.UUID
}

// Store holds every table as a map guarded by one mutex.
type Store struct {
	mu            sync.Mutex
	users         map[uuid.UUID]models.User
	trips         map[uuid.UUID]models.Trip
	members       map[memberKey]models.TripMember
	invitations   map[uuid.UUID]models.Invitation
	expenses      map[uuid.UUID]models.Expense
	itinerary     map[uuid.UUID]models.ItineraryItem
	bookings      map[uuid.UUID]models.Booking
	places        map[uuid.UUID]models.Place
	notifications map[uuid.UUID]models.Notification
	verifications map[uuid.UUID]store.Verification
}

func New() *Store {
	return &Store{
		users:         make(map[uuid.UUID]models.User),
		trips:         make(map[uuid.UUID]models.Trip),
		members:       make(map[memberKey]models.TripMember),
		invitations:   make(map[uuid.UUID]models.Invitation),
		expenses:      make(map[uuid.UUID]models.Expense),
		itinerary:     make(map[uuid.UUID]models.ItineraryItem),
		bookings:      make(map[uuid.UUID]models.Booking),
		places:        make(map[uuid.UUID]models.Place),
		notifications: make(map[uuid.UUID]models.Notification),
		verifications: make(map[uuid.UUID]store.Verification),
	}
}

// Transact simply runs fn against the same store. Tests exercise logical
// behavior, not rollback semantics.
func (s *Store) Transact(ctx context.Context, fn func(store.Store) error) error {
	return fn(s)
}

// --- users ---

func (s *Store) CreateUser(ctx context.Context, u models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return store.ErrDuplicate
		}
	}
	s.users[u.ID] = u
	return nil
}

func (s *Store) GetUserByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	return u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return models.User{}, store.ErrNotFound
}

func (s *Store) UpdateUserProfile(ctx context.Context, id uuid.UUID, displayName, avatarURL *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return store.ErrNotFound
	}
	u.DisplayName = displayName
	u.AvatarURL = avatarURL
	u.UpdatedAt = time.Now()
	s.users[id] = u
	return nil
}

func (s *Store) UpdateUserPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return store.ErrNotFound
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	s.users[id] = u
	return nil
}

// --- trips ---

func (s *Store) CreateTrip(ctx context.Context, t models.Trip) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.trips[t.ID]; ok {
		return store.ErrDuplicate
	}
	s.trips[t.ID] = t
	return nil
}

func (s *Store) GetTrip(ctx context.Context, id uuid.UUID) (models.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.trips[id]
	if !ok {
		return models.Trip{}, store.ErrNotFound
	}
	return t, nil
}

func (s *Store) ListTripsForUser(ctx context.Context, userID uuid.UUID) ([]models.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	trips := make([]models.Trip, 0)
	for key, m := range s.members {
		if m.UserID != userID {
			continue
		}
		if t, ok := s.trips[key.TripID]; ok {
			trips = append(trips, t)
		}
	}
	sort.Slice(trips, func(i, j int) bool { return trips[i].StartDate.After(trips[j].StartDate) })
	return trips, nil
}

func (s *Store) UpdateTrip(ctx context.Context, t models.Trip) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.trips[t.ID]
	if !ok {
		return store.ErrNotFound
	}
	t.CreatedAt = cur.CreatedAt
	t.UpdatedAt = time.Now()
	s.trips[t.ID] = t
	return nil
}

func (s *Store) DeleteTrip(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.trips[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.trips, id)
	for key := range s.members {
		if key.TripID == id {
			delete(s.members, key)
		}
	}
	return nil
}

// --- members ---

func (s *Store) AddMember(ctx context.Context, m models.TripMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := memberKey{TripID: m.TripID, UserID: m.UserID}
	if _, ok := s.members[key]; ok {
		return nil // ON CONFLICT DO NOTHING
	}
	s.members[key] = m
	return nil
}

func (s *Store) GetMember(ctx context.Context, tripID, userID uuid.UUID) (models.TripMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.members[memberKey{TripID: tripID, UserID: userID}]
	if !ok {
		return models.TripMember{}, store.ErrNotFound
	}
	return m, nil
}

func (s *Store) ListMembers(ctx context.Context, tripID uuid.UUID) ([]models.MemberWithProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	members := make([]models.MemberWithProfile, 0)
	for key, m := range s.members {
		if key.TripID != tripID {
			continue
		}
		mp := models.MemberWithProfile{TripMember: m}
		if u, ok := s.users[m.UserID]; ok {
			mp.Email = u.Email
			mp.DisplayName = u.DisplayName
			mp.AvatarURL = u.AvatarURL
		}
		members = append(members, mp)
	}
	sort.Slice(members, func(i, j int) bool { return members[i].JoinedAt.Before(members[j].JoinedAt) })
	return members, nil
}

func (s *Store) RemoveMember(ctx context.Context, tripID, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := memberKey{TripID: tripID, UserID: userID}
	if _, ok := s.members[key]; !ok {
		return store.ErrNotFound
	}
	delete(s.members, key)
	return nil
}

// --- invitations ---

func (s *Store) CreateInvitation(ctx context.Context, inv models.Invitation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.invitations[inv.ID]; ok {
		return store.ErrDuplicate
	}
	s.invitations[inv.ID] = inv
	return nil
}

func (s *Store) GetInvitation(ctx context.Context, id uuid.UUID) (models.Invitation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.invitations[id]
	if !ok {
		return models.Invitation{}, store.ErrNotFound
	}
	return inv, nil
}

func (s *Store) ListPendingInvitations(ctx context.Context, email string) ([]models.InvitationWithTrip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]models.InvitationWithTrip, 0)
	for _, inv := range s.invitations {
		if inv.Status != models.InvitationPending || !strings.EqualFold(inv.InviteeEmail, email) {
			continue
		}
		t, ok := s.trips[inv.TripID]
		if !ok {
			continue
		}
		items = append(items, models.InvitationWithTrip{Invitation: inv, Trip: t.Summary()})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Invitation.CreatedAt.Before(items[j].Invitation.CreatedAt)
	})
	return items, nil
}

func (s *Store) UpdateInvitationStatus(ctx context.Context, id uuid.UUID, email string, from, to models.InvitationStatus, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.invitations[id]
	if !ok || inv.Status != from || !strings.EqualFold(inv.InviteeEmail, email) {
		return store.ErrNotFound
	}
	inv.Status = to
	inv.UpdatedAt = updatedAt
	s.invitations[id] = inv
	return nil
}

// --- trip-scoped resources ---

func (s *Store) CreateExpense(ctx context.Context, e models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses[e.ID] = e
	return nil
}

func (s *Store) ListExpenses(ctx context.Context, tripID uuid.UUID) ([]models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]models.Expense, 0)
	for _, e := range s.expenses {
		if e.TripID == tripID {
			items = append(items, e)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Date.After(items[j].Date) })
	return items, nil
}

func (s *Store) CreateItineraryItem(ctx context.Context, it models.ItineraryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.itinerary[it.ID] = it
	return nil
}

func (s *Store) ListItineraryItems(ctx context.Context, tripID uuid.UUID) ([]models.ItineraryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]models.ItineraryItem, 0)
	for _, it := range s.itinerary {
		if it.TripID == tripID {
			items = append(items, it)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Date.Before(items[j].Date) })
	return items, nil
}

func (s *Store) CreateBooking(ctx context.Context, b models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[b.ID] = b
	return nil
}

func (s *Store) ListBookings(ctx context.Context, tripID uuid.UUID) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]models.Booking, 0)
	for _, b := range s.bookings {
		if b.TripID == tripID {
			items = append(items, b)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].StartDate.Before(items[j].StartDate) })
	return items, nil
}

func (s *Store) CreatePlace(ctx context.Context, p models.Place) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.places[p.ID] = p
	return nil
}

func (s *Store) ListPlaces(ctx context.Context, tripID uuid.UUID) ([]models.Place, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]models.Place, 0)
	for _, p := range s.places {
		if p.TripID == tripID {
			items = append(items, p)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items, nil
}

// --- notifications ---

func (s *Store) CreateNotification(ctx context.Context, n models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications[n.ID] = n
	return nil
}

func (s *Store) ListNotifications(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit, offset int) ([]models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]models.Notification, 0)
	for _, n := range s.notifications {
		if n.UserID != userID || (unreadOnly && n.Read) {
			continue
		}
		items = append(items, n)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	if offset >= len(items) {
		return []models.Notification{}, nil
	}
	items = items[offset:]
	if limit < len(items) {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) CountNotifications(ctx context.Context, userID uuid.UUID, unreadOnly bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.notifications {
		if n.UserID == userID && (!unreadOnly || !n.Read) {
			total++
		}
	}
	return total, nil
}

func (s *Store) MarkNotificationRead(ctx context.Context, id, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notifications[id]
	if !ok || n.UserID != userID || n.Read {
		return store.ErrNotFound
	}
	n.Read = true
	s.notifications[id] = n
	return nil
}

func (s *Store) MarkAllNotificationsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var updated int64
	for id, n := range s.notifications {
		if n.UserID == userID && !n.Read {
			n.Read = true
			s.notifications[id] = n
			updated++
		}
	}
	return updated, nil
}

// --- verifications ---

func (s *Store) CreateVerification(ctx context.Context, v store.Verification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.verifications[v.ID] = v
	return nil
}

func (s *Store) LatestVerification(ctx context.Context, userID uuid.UUID, email string) (store.Verification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var latest store.Verification
	found := false
	for _, v := range s.verifications {
		if v.UserID != userID || !strings.EqualFold(v.Email, email) {
			continue
		}
		if !found || v.CreatedAt.After(latest.CreatedAt) {
			latest = v
			found = true
		}
	}
	if !found {
		return store.Verification{}, store.ErrNotFound
	}
	return latest, nil
}

func (s *Store) MarkVerificationUsed(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.verifications[id]
	if !ok {
		return store.ErrNotFound
	}
	v.Used = true
	s.verifications[id] = v
	return nil
}

var _ store.Store = (*Store)(nil)
