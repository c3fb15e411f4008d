package postgres

import (
	"context"

	"github.com/google/uuid"

	"VIAJAPLUS_BACK-END/internal/models"
	"VIAJAPLUS_BACK-END/internal/store"
)

// AddMember is idempotent: a second insert for the same (trip_id, user_id)
// pair is a no-op. The unique constraint is the backstop for concurrent
// accepts that both pass the existence check.
func (s *Store) AddMember(ctx context.Context, m models.TripMember) error {
	_, err := s.q.Exec(ctx,
		`INSERT INTO trip_members (trip_id, user_id, role, joined_at)
         VALUES ($1, $2, $3, $4)
         ON CONFLICT (trip_id, user_id) DO NOTHING`,
		m.TripID, m.UserID, m.Role, m.JoinedAt,
	)
	return mapError(err)
}

func (s *Store) GetMember(ctx context.Context, tripID, userID uuid.UUID) (models.TripMember, error) {
	var m models.TripMember
	err := s.q.QueryRow(ctx,
		`SELECT trip_id, user_id, role, joined_at FROM trip_members WHERE trip_id = $1 AND user_id = $2`,
		tripID, userID).Scan(&m.TripID, &m.UserID, &m.Role, &m.JoinedAt)
	return m, mapError(err)
}

func (s *Store) ListMembers(ctx context.Context, tripID uuid.UUID) ([]models.MemberWithProfile, error) {
	rows, err := s.q.Query(ctx,
		`SELECT tm.trip_id, tm.user_id, tm.role, tm.joined_at,
                COALESCE(u.email, ''), u.display_name, u.avatar_url
           FROM trip_members tm
           LEFT JOIN users u ON u.id = tm.user_id
          WHERE tm.trip_id = $1
          ORDER BY tm.joined_at`, tripID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	members := make([]models.MemberWithProfile, 0)
	for rows.Next() {
		var m models.MemberWithProfile
		if err := rows.Scan(&m.TripID, &m.UserID, &m.Role, &m.JoinedAt, &m.Email, &m.DisplayName, &m.AvatarURL); err != nil {
			return nil, mapError(err)
		}
		members = append(members, m)
	}
	return members, mapError(rows.Err())
}

func (s *Store) RemoveMember(ctx context.Context, tripID, userID uuid.UUID) error {
	cmd, err := s.q.Exec(ctx,
		`DELETE FROM trip_members WHERE trip_id = $1 AND user_id = $2`, tripID, userID)
	if err != nil {
		return mapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
