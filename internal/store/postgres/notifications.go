package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"VIAJAPLUS_BACK-END/internal/models"
	"VIAJAPLUS_BACK-END/internal/store"
)

func (s *Store) CreateNotification(ctx context.Context, n models.Notification) error {
	var dataJSON any
	if len(n.Data) > 0 {
		b, err := json.Marshal(n.Data)
		if err != nil {
			return fmt.Errorf("marshal notification data: %w", err)
		}
		dataJSON = string(b)
	}

	_, err := s.q.Exec(ctx,
		`INSERT INTO notifications (id, user_id, type, title, message, data, read, created_at)
         VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7, $8)`,
		n.ID, n.UserID, n.Type, n.Title, n.Message, dataJSON, n.Read, n.CreatedAt,
	)
	return mapError(err)
}

func (s *Store) ListNotifications(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit, offset int) ([]models.Notification, error) {
	where := `WHERE user_id = $1`
	if unreadOnly {
		where += ` AND read = false`
	}
	rows, err := s.q.Query(ctx,
		`SELECT id, user_id, type, title, message, data, read, created_at
           FROM notifications `+where+`
          ORDER BY created_at DESC
          LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	items := make([]models.Notification, 0, limit)
	for rows.Next() {
		var n models.Notification
		var dataRaw []byte
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &dataRaw, &n.Read, &n.CreatedAt); err != nil {
			return nil, mapError(err)
		}
		if len(dataRaw) > 0 && string(dataRaw) != "null" {
			// tolerate malformed payloads instead of failing the listing
			_ = json.Unmarshal(dataRaw, &n.Data)
		}
		items = append(items, n)
	}
	return items, mapError(rows.Err())
}

func (s *Store) CountNotifications(ctx context.Context, userID uuid.UUID, unreadOnly bool) (int, error) {
	where := `WHERE user_id = $1`
	if unreadOnly {
		where += ` AND read = false`
	}
	var total int
	err := s.q.QueryRow(ctx, `SELECT COUNT(1) FROM notifications `+where, userID).Scan(&total)
	return total, mapError(err)
}

func (s *Store) MarkNotificationRead(ctx context.Context, id, userID uuid.UUID) error {
	cmd, err := s.q.Exec(ctx,
		`UPDATE notifications SET read = true WHERE id = $1 AND user_id = $2 AND read = false`,
		id, userID)
	if err != nil {
		return mapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) MarkAllNotificationsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	cmd, err := s.q.Exec(ctx,
		`UPDATE notifications SET read = true WHERE user_id = $1 AND read = false`, userID)
	if err != nil {
		return 0, mapError(err)
	}
	return cmd.RowsAffected(), nil
}
