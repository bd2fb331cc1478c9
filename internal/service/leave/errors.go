package leave

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/audyningrum27/simtrendi/internal/domain/employee"
	"github.com/audyningrum27/simtrendi/internal/domain/leave"
	"github.com/audyningrum27/simtrendi/internal/pkg/validator"
)

var passthroughErrors = []error{
	leave.ErrLeaveRequestNotFound,
	leave.ErrLeaveAlreadyFinalized,
	leave.ErrUnauthorizedApprover,
	leave.ErrAlreadyApproved,
	leave.ErrInconsistentApproval,
	leave.ErrStoreUnavailable,
	employee.ErrEmployeeNotFound,
}

// translateStoreError keeps domain errors as they are and folds everything
// else into ErrStoreUnavailable. The raw cause is logged, never returned to callers verbatim.
func translateStoreError(op string, err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return err
	}

	for _, known := range passthroughErrors {
		if errors.Is(err, known) {
			if errors.Is(err, leave.ErrInconsistentApproval) {
				slog.Error("Leave data integrity fault", "op", op, "error", err)
			}
			return err
		}
	}

	slog.Error("Leave store error", "op", op, "error", err)
	return fmt.Errorf("%w: %s: %w", leave.ErrStoreUnavailable, op, err)
}

// approvalOutcome labels a failed approval for metrics.
func approvalOutcome(err error) string {
	switch {
	case errors.Is(err, leave.ErrLeaveRequestNotFound), errors.Is(err, employee.ErrEmployeeNotFound):
		return "not_found"
	case errors.Is(err, leave.ErrLeaveAlreadyFinalized):
		return "already_finalized"
	case errors.Is(err, leave.ErrUnauthorizedApprover):
		return "unauthorized"
	case errors.Is(err, leave.ErrAlreadyApproved):
		return "already_approved"
	case errors.Is(err, leave.ErrInconsistentApproval):
		return "inconsistent"
	default:
		return "store_error"
	}
}
