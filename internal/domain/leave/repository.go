package leave

import (
	"context"
	"time"
)

// LeaveRequestRepository - interface for leave_requests and leave_approvals tables
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	CreateApprovals(ctx context.Context, leaveRequestID string, tiers []Tier) error
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	// GetByIDForUpdate locks the row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id string) (LeaveRequest, error)
	Finalize(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, today time.Time) (int64, error)

	GetApproval(ctx context.Context, leaveRequestID string, tier Tier) (ApprovalRecord, error)
	// TrySignApproval signs the tier only if it is unsigned and reports whether it did.
	TrySignApproval(ctx context.Context, leaveRequestID string, tier Tier, approverID string, now time.Time) (bool, error)
	ListApprovals(ctx context.Context, leaveRequestID string) ([]ApprovalRecord, error)

	GetDetail(ctx context.Context, id string) (LeaveRequestDetail, error)
	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequestDetail, error)
	ApprovedMonthlySummary(ctx context.Context, employeeID string) ([]MonthlyLeaveSummary, error)
	CountOnLeave(ctx context.Context, date time.Time) (int64, error)
}

type LeaveRequestFilter struct {
	EmployeeID *string
	Status     *LeaveRequestStatus
}
