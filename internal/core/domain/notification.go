package domain

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType classifies a notification for the admin dashboard.
type NotificationType string

const (
	NotificationTypeBalance NotificationType = "balance"
	NotificationTypeOrder   NotificationType = "order"
)

// Notification is an event persisted for the admin notifications page.
type Notification struct {
	ID        uuid.UUID        `json:"id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	CreatedAt time.Time        `json:"created_at"`
}
