package service

import (
	"context"
	"fmt"
	"time"

	"ameen-storefront/internal/core/domain"
	"ameen-storefront/internal/core/ports"
	"ameen-storefront/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// NotificationServiceImpl implements ports.NotificationService.
type NotificationServiceImpl struct {
	repo ports.NotificationRepository
	log  zerolog.Logger
}

// NewNotificationService creates a new NotificationServiceImpl.
func NewNotificationService(repo ports.NotificationRepository, log zerolog.Logger) *NotificationServiceImpl {
	return &NotificationServiceImpl{repo: repo, log: log}
}

// Notify persists a ledger event as an admin notification.
func (s *NotificationServiceImpl) Notify(ctx context.Context, event ports.LedgerEvent) error {
	n := &domain.Notification{
		ID:        uuid.New(),
		Title:     event.Title,
		Message:   event.Message,
		Type:      event.Type,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}

	s.log.Debug().
		Str("notification_id", n.ID.String()).
		Str("title", n.Title).
		Str("method", event.Method).
		Str("amount", event.Amount.String()).
		Msg("notification stored")

	return nil
}

// List returns the most recent notifications.
func (s *NotificationServiceImpl) List(ctx context.Context, limit int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	notifications, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list notifications: %w", err))
	}
	return notifications, nil
}
