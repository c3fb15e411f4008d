// Package notifications creates and queries in-app notifications.
package notifications

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"VIAJAPLUS_BACK-END/internal/models"
	"VIAJAPLUS_BACK-END/internal/store"
)

// Service creates notifications for lifecycle events
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, nType string, title string, message *string, data map[string]any) error
}

type service struct {
	store store.NotificationStore
}

// NewService returns a Service backed by the given store
func NewService(st store.NotificationStore) Service {
	return &service{store: st}
}

func (s *service) Create(
	ctx context.Context,
	userID uuid.UUID,
	nType string,
	title string,
	message *string,
	data map[string]any,
) error {
	if userID == uuid.Nil {
		return errors.New("user_id cannot be nil")
	}
	if strings.TrimSpace(title) == "" {
		return errors.New("notification title is required")
	}
	if len(title) > 255 {
		return errors.New("notification title exceeds maximum length of 255 characters")
	}
	if message != nil && len(*message) > 10000 {
		return errors.New("notification message exceeds maximum length of 10000 characters")
	}
	if !models.ValidNotificationType(nType) {
		return errors.New("invalid notification type: " + nType)
	}

	n := models.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      nType,
		Title:     title,
		Message:   message,
		Data:      data,
		Read:      false,
		CreatedAt: time.Now(),
	}

	if err := s.store.CreateNotification(ctx, n); err != nil {
		log.Printf("Failed to create notification for user %s: %v", userID, err)
		return err
	}

	return nil
}
