package notification

import (
	"context"
)

// Service defines the notification service interface
type Service interface {
	// Notify queues a notification for async processing via background workers
	Notify(ctx context.Context, employeeID, message string, audience Audience, category string) error

	// Direct operations
	Create(ctx context.Context, req CreateNotificationRequest) (NotificationResponse, error)
	ListForEmployee(ctx context.Context, employeeID string) ([]NotificationResponse, error)
	ListForAdmin(ctx context.Context, category *string) ([]NotificationResponse, error)
	MarkAsRead(ctx context.Context, id string) error

	// SSE subscription
	Subscribe(ctx context.Context, employeeID string) (<-chan SSEEvent, func())

	// Lifecycle
	Stop()
}
