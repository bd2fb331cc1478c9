package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/audyningrum27/simtrendi/internal/domain/auth"
	"github.com/audyningrum27/simtrendi/internal/domain/employee"
	"github.com/audyningrum27/simtrendi/internal/domain/leave"
	"github.com/audyningrum27/simtrendi/internal/domain/notification"
	"github.com/audyningrum27/simtrendi/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.First(), validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrUnauthorizedApprover):
		Forbidden(w, "Anda tidak memiliki wewenang untuk menyetujui cuti")
	case errors.Is(err, leave.ErrLeaveAlreadyFinalized):
		BadRequest(w, "Cuti sudah dikonfirmasi atau selesai", nil)
	case errors.Is(err, leave.ErrAlreadyApproved):
		BadRequest(w, "Cuti sudah disetujui oleh tingkat ini", nil)
	case errors.Is(err, leave.ErrInconsistentApproval):
		slog.Error("Leave approval integrity fault", "error", err)
		InternalServerError(w, "Leave approval data is inconsistent")

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
