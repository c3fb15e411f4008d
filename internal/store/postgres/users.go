package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"VIAJAPLUS_BACK-END/internal/models"
	"VIAJAPLUS_BACK-END/internal/store"
)

func (s *Store) CreateUser(ctx context.Context, u models.User) error {
	_, err := s.q.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, display_name, avatar_url, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID, u.Email, u.PasswordHash, u.DisplayName, u.AvatarURL, u.CreatedAt, u.UpdatedAt,
	)
	return mapError(err)
}

func (s *Store) GetUserByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	return s.getUser(ctx, `WHERE id = $1`, id)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	return s.getUser(ctx, `WHERE LOWER(email) = LOWER($1)`, email)
}

func (s *Store) getUser(ctx context.Context, where string, arg any) (models.User, error) {
	var u models.User
	err := s.q.QueryRow(ctx,
		`SELECT id, email, password_hash, display_name, avatar_url, created_at, updated_at FROM users `+where,
		arg).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &u.AvatarURL, &u.CreatedAt, &u.UpdatedAt)
	return u, mapError(err)
}

func (s *Store) UpdateUserProfile(ctx context.Context, id uuid.UUID, displayName, avatarURL *string) error {
	cmd, err := s.q.Exec(ctx,
		`UPDATE users SET display_name = $1, avatar_url = $2, updated_at = $3 WHERE id = $4`,
		displayName, avatarURL, time.Now(), id,
	)
	if err != nil {
		return mapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) UpdateUserPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	cmd, err := s.q.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`,
		passwordHash, time.Now(), id,
	)
	if err != nil {
		return mapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
