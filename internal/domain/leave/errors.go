package leave

import "errors"

var (
	ErrLeaveRequestNotFound  = errors.New("leave request not found")
	ErrLeaveAlreadyFinalized = errors.New("leave request already confirmed or finished")
	ErrUnauthorizedApprover  = errors.New("employee has no approval authority")
	ErrAlreadyApproved       = errors.New("tier has already approved this leave request")
	ErrInconsistentApproval  = errors.New("approval record is in an inconsistent state")
	ErrStoreUnavailable      = errors.New("leave store unavailable")
)
