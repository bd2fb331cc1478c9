package notification

import (
	"time"

	"github.com/audyningrum27/simtrendi/internal/pkg/validator"
)

// ============= Request DTOs =============

// CreateNotificationRequest represents a request to create a notification
type CreateNotificationRequest struct {
	EmployeeID string   `json:"id_pegawai"`
	Message    string   `json:"message"`
	Audience   Audience `json:"-"`
	Category   string   `json:"category"`
}

func (r *CreateNotificationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id_pegawai",
			Message: "id_pegawai is required",
		})
	}
	if validator.IsEmpty(r.Message) {
		errs = append(errs, validator.ValidationError{
			Field:   "message",
			Message: "message is required",
		})
	}
	if !r.Audience.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "audience",
			Message: "audience must be pegawai or admin",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ListNotificationsRequest represents a request to list notifications
type ListNotificationsRequest struct {
	EmployeeID *string
	Audience   Audience
	Category   *string
}

// ============= Response DTOs =============

// NotificationResponse represents a notification in API responses
type NotificationResponse struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	Message    string    `json:"message"`
	Audience   Audience  `json:"audience"`
	Category   string    `json:"category,omitempty"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}

// SSETokenResponse represents the SSE token response
type SSETokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

// ============= SSE Event =============

// SSEEvent represents a Server-Sent Event
type SSEEvent struct {
	Event string               `json:"event"`
	Data  NotificationResponse `json:"data"`
}
