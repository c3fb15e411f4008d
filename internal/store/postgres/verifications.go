package postgres

import (
	"context"

	"github.com/google/uuid"

	"VIAJAPLUS_BACK-END/internal/store"
)

func (s *Store) CreateVerification(ctx context.Context, v store.Verification) error {
	_, err := s.q.Exec(ctx,
		`INSERT INTO auth_verifications (id, user_id, email, code, used, expires_at, created_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		v.ID, v.UserID, v.Email, v.Code, v.Used, v.ExpiresAt, v.CreatedAt,
	)
	return mapError(err)
}

func (s *Store) LatestVerification(ctx context.Context, userID uuid.UUID, email string) (store.Verification, error) {
	var v store.Verification
	err := s.q.QueryRow(ctx,
		`SELECT id, user_id, email, code, used, expires_at, created_at
           FROM auth_verifications
          WHERE user_id = $1 AND LOWER(email) = LOWER($2)
          ORDER BY created_at DESC LIMIT 1`,
		userID, email).Scan(&v.ID, &v.UserID, &v.Email, &v.Code, &v.Used, &v.ExpiresAt, &v.CreatedAt)
	return v, mapError(err)
}

func (s *Store) MarkVerificationUsed(ctx context.Context, id uuid.UUID) error {
	cmd, err := s.q.Exec(ctx,
		`UPDATE auth_verifications SET used = true WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
