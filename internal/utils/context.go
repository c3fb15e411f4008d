package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	// ContextKeyUserID carries the authenticated user's id (uuid.UUID).
	ContextKeyUserID contextKey = "user_id"
	// ContextKeyEmail carries the authenticated user's verified email.
	ContextKeyEmail contextKey = "email"
)

// WithUser returns a context carrying the authenticated principal.
func WithUser(ctx context.Context, userID uuid.UUID, email string) context.Context {
	ctx = context.WithValue(ctx, ContextKeyUserID, userID)
	return context.WithValue(ctx, ContextKeyEmail, email)
}

// GetUserIDFromContext extracts the authenticated user id set by the auth middleware.
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ContextKeyUserID).(uuid.UUID)
	return id, ok
}

// GetEmailFromContext extracts the authenticated user's email.
func GetEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(ContextKeyEmail).(string)
	return email, ok && email != ""
}
