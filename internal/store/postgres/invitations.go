package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"VIAJAPLUS_BACK-END/internal/models"
	"VIAJAPLUS_BACK-END/internal/store"
)

func (s *Store) CreateInvitation(ctx context.Context, inv models.Invitation) error {
	_, err := s.q.Exec(ctx,
		`INSERT INTO trip_invitations (id, trip_id, inviter_id, invitee_email, status, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		inv.ID, inv.TripID, inv.InviterID, inv.InviteeEmail, inv.Status, inv.CreatedAt, inv.UpdatedAt,
	)
	return mapError(err)
}

func (s *Store) GetInvitation(ctx context.Context, id uuid.UUID) (models.Invitation, error) {
	var inv models.Invitation
	err := s.q.QueryRow(ctx,
		`SELECT id, trip_id, inviter_id, invitee_email, status, created_at, updated_at
           FROM trip_invitations WHERE id = $1`, id).Scan(
		&inv.ID, &inv.TripID, &inv.InviterID, &inv.InviteeEmail, &inv.Status, &inv.CreatedAt, &inv.UpdatedAt,
	)
	return inv, mapError(err)
}

// ListPendingInvitations joins each pending invitation with its trip summary.
// Email matching is case-insensitive.
func (s *Store) ListPendingInvitations(ctx context.Context, email string) ([]models.InvitationWithTrip, error) {
	rows, err := s.q.Query(ctx,
		`SELECT i.id, i.trip_id, i.inviter_id, i.invitee_email, i.status, i.created_at, i.updated_at,
                t.id, t.title, t.destination, t.start_date, t.end_date, t.status
           FROM trip_invitations i
           JOIN trips t ON t.id = i.trip_id
          WHERE LOWER(i.invitee_email) = LOWER($1) AND i.status = $2
          ORDER BY i.created_at`, email, models.InvitationPending)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	items := make([]models.InvitationWithTrip, 0)
	for rows.Next() {
		var it models.InvitationWithTrip
		if err := rows.Scan(
			&it.Invitation.ID, &it.Invitation.TripID, &it.Invitation.InviterID,
			&it.Invitation.InviteeEmail, &it.Invitation.Status,
			&it.Invitation.CreatedAt, &it.Invitation.UpdatedAt,
			&it.Trip.ID, &it.Trip.Title, &it.Trip.Destination, &it.Trip.StartDate, &it.Trip.EndDate, &it.Trip.Status,
		); err != nil {
			return nil, mapError(err)
		}
		items = append(items, it)
	}
	return items, mapError(rows.Err())
}

// UpdateInvitationStatus is a filtered single-row update. A zero-row result is
// reported as ErrNotFound so a mismatched id, email or a non-pending status
// all collapse into the same error.
func (s *Store) UpdateInvitationStatus(ctx context.Context, id uuid.UUID, email string, from, to models.InvitationStatus, updatedAt time.Time) error {
	cmd, err := s.q.Exec(ctx,
		`UPDATE trip_invitations
            SET status = $1, updated_at = $2
          WHERE id = $3 AND LOWER(invitee_email) = LOWER($4) AND status = $5`,
		to, updatedAt, id, email, from,
	)
	if err != nil {
		return mapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
