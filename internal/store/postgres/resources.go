package postgres

import (
	"context"

	"github.com/google/uuid"

	"VIAJAPLUS_BACK-END/internal/models"
)

func (s *Store) CreateExpense(ctx context.Context, e models.Expense) error {
	_, err := s.q.Exec(ctx,
		`INSERT INTO expenses (id, trip_id, user_id, description, amount, category, date, created_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.TripID, e.UserID, e.Description, e.Amount, e.Category, e.Date, e.CreatedAt,
	)
	return mapError(err)
}

func (s *Store) ListExpenses(ctx context.Context, tripID uuid.UUID) ([]models.Expense, error) {
	rows, err := s.q.Query(ctx,
		`SELECT id, trip_id, user_id, description, amount, category, date, created_at
           FROM expenses WHERE trip_id = $1 ORDER BY date DESC`, tripID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	items := make([]models.Expense, 0)
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.TripID, &e.UserID, &e.Description, &e.Amount, &e.Category, &e.Date, &e.CreatedAt); err != nil {
			return nil, mapError(err)
		}
		items = append(items, e)
	}
	return items, mapError(rows.Err())
}

func (s *Store) CreateItineraryItem(ctx context.Context, it models.ItineraryItem) error {
	_, err := s.q.Exec(ctx,
		`INSERT INTO itinerary_items (id, trip_id, user_id, title, description, location, date, start_time, end_time, created_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		it.ID, it.TripID, it.UserID, it.Title, it.Description, it.Location, it.Date, it.StartTime, it.EndTime, it.CreatedAt,
	)
	return mapError(err)
}

func (s *Store) ListItineraryItems(ctx context.Context, tripID uuid.UUID) ([]models.ItineraryItem, error) {
	rows, err := s.q.Query(ctx,
		`SELECT id, trip_id, user_id, title, description, location, date, start_time, end_time, created_at
           FROM itinerary_items WHERE trip_id = $1 ORDER BY date, start_time`, tripID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	items := make([]models.ItineraryItem, 0)
	for rows.Next() {
		var it models.ItineraryItem
		if err := rows.Scan(&it.ID, &it.TripID, &it.UserID, &it.Title, &it.Description, &it.Location, &it.Date, &it.StartTime, &it.EndTime, &it.CreatedAt); err != nil {
			return nil, mapError(err)
		}
		items = append(items, it)
	}
	return items, mapError(rows.Err())
}

func (s *Store) CreateBooking(ctx context.Context, b models.Booking) error {
	_, err := s.q.Exec(ctx,
		`INSERT INTO bookings (id, trip_id, user_id, type, title, provider, confirmation_number, start_date, end_date, amount, status, notes, created_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		b.ID, b.TripID, b.UserID, b.Type, b.Title, b.Provider, b.ConfirmationNumber, b.StartDate, b.EndDate, b.Amount, b.Status, b.Notes, b.CreatedAt,
	)
	return mapError(err)
}

func (s *Store) ListBookings(ctx context.Context, tripID uuid.UUID) ([]models.Booking, error) {
	rows, err := s.q.Query(ctx,
		`SELECT id, trip_id, user_id, type, title, provider, confirmation_number, start_date, end_date, amount, status, notes, created_at
           FROM bookings WHERE trip_id = $1 ORDER BY start_date`, tripID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	items := make([]models.Booking, 0)
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(&b.ID, &b.TripID, &b.UserID, &b.Type, &b.Title, &b.Provider, &b.ConfirmationNumber, &b.StartDate, &b.EndDate, &b.Amount, &b.Status, &b.Notes, &b.CreatedAt); err != nil {
			return nil, mapError(err)
		}
		items = append(items, b)
	}
	return items, mapError(rows.Err())
}

func (s *Store) CreatePlace(ctx context.Context, p models.Place) error {
	_, err := s.q.Exec(ctx,
		`INSERT INTO places (id, trip_id, user_id, name, address, latitude, longitude, rating, notes, created_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.TripID, p.UserID, p.Name, p.Address, p.Latitude, p.Longitude, p.Rating, p.Notes, p.CreatedAt,
	)
	return mapError(err)
}

func (s *Store) ListPlaces(ctx context.Context, tripID uuid.UUID) ([]models.Place, error) {
	rows, err := s.q.Query(ctx,
		`SELECT id, trip_id, user_id, name, address, latitude, longitude, rating, notes, created_at
           FROM places WHERE trip_id = $1 ORDER BY created_at DESC`, tripID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	items := make([]models.Place, 0)
	for rows.Next() {
		var p models.Place
		if err := rows.Scan(&p.ID, &p.TripID, &p.UserID, &p.Name, &p.Address, &p.Latitude, &p.Longitude, &p.Rating, &p.Notes, &p.CreatedAt); err != nil {
			return nil, mapError(err)
		}
		items = append(items, p)
	}
	return items, mapError(rows.Err())
}
