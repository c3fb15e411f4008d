package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"VIAJAPLUS_BACK-END/internal/models"
	"VIAJAPLUS_BACK-END/internal/store"
)

func (s *Store) CreateTrip(ctx context.Context, t models.Trip) error {
	_, err := s.q.Exec(ctx,
		`INSERT INTO trips (id, owner_id, title, destination, start_date, end_date, status, budget, currency, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		t.ID, t.OwnerID, t.Title, t.Destination, t.StartDate, t.EndDate, t.Status, t.Budget, t.Currency, t.CreatedAt, t.UpdatedAt,
	)
	return mapError(err)
}

func (s *Store) GetTrip(ctx context.Context, id uuid.UUID) (models.Trip, error) {
	var t models.Trip
	err := s.q.QueryRow(ctx,
		`SELECT id, owner_id, title, destination, start_date, end_date, status, budget, currency, created_at, updated_at
           FROM trips WHERE id = $1`, id).Scan(
		&t.ID, &t.OwnerID, &t.Title, &t.Destination, &t.StartDate, &t.EndDate, &t.Status, &t.Budget, &t.Currency, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, mapError(err)
}

func (s *Store) ListTripsForUser(ctx context.Context, userID uuid.UUID) ([]models.Trip, error) {
	rows, err := s.q.Query(ctx,
		`SELECT t.id, t.owner_id, t.title, t.destination, t.start_date, t.end_date, t.status, t.budget, t.currency, t.created_at, t.updated_at
           FROM trips t
           JOIN trip_members tm ON tm.trip_id = t.id
          WHERE tm.user_id = $1
          ORDER BY t.start_date DESC`, userID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	trips := make([]models.Trip, 0)
	for rows.Next() {
		var t models.Trip
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Destination, &t.StartDate, &t.EndDate, &t.Status, &t.Budget, &t.Currency, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, mapError(err)
		}
		trips = append(trips, t)
	}
	return trips, mapError(rows.Err())
}

func (s *Store) UpdateTrip(ctx context.Context, t models.Trip) error {
	cmd, err := s.q.Exec(ctx,
		`UPDATE trips
            SET title = $1, destination = $2, start_date = $3, end_date = $4,
                status = $5, budget = $6, currency = $7, updated_at = $8
          WHERE id = $9`,
		t.Title, t.Destination, t.StartDate, t.EndDate, t.Status, t.Budget, t.Currency, time.Now(), t.ID,
	)
	if err != nil {
		return mapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteTrip(ctx context.Context, id uuid.UUID) error {
	cmd, err := s.q.Exec(ctx, `DELETE FROM trips WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
