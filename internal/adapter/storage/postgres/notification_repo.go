package postgres

import (
	"context"
	"fmt"

	"ameen-storefront/internal/core/domain"
)

// NotificationRepo implements ports.NotificationRepository.
type NotificationRepo struct {
	pool Pool
}

// NewNotificationRepo creates a new NotificationRepo.
func NewNotificationRepo(pool Pool) *NotificationRepo {
	return &NotificationRepo{pool: pool}
}

// Create inserts a new notification.
func (r *NotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	query := `INSERT INTO notifications (id, title, message, type, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, query, n.ID, n.Title, n.Message, n.Type, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// List returns the most recent notifications, newest first.
func (r *NotificationRepo) List(ctx context.Context, limit int) ([]domain.Notification, error) {
	query := `SELECT id, title, message, type, created_at
		FROM notifications ORDER BY created_at DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var out []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.Title, &n.Message, &n.Type, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification row: %w", err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notification rows: %w", err)
	}
	return out, nil
}
