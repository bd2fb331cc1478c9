package notification

import (
	"context"
)

// Repository defines the notification repository interface
type Repository interface {
	Create(ctx context.Context, notification *Notification) error
	CreateBatch(ctx context.Context, notifications []*Notification) error
	List(ctx context.Context, req ListNotificationsRequest) ([]*Notification, error)
	MarkAsRead(ctx context.Context, id string) error
}
