package leave

import (
	"context"

	"github.com/audyningrum27/simtrendi/internal/domain/notification"
)

type LeaveService interface {
	SubmitLeaveRequest(ctx context.Context, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	SubmitApproval(ctx context.Context, req ApprovalRequest) (ApprovalResult, error)
	SweepExpired(ctx context.Context) (int64, error)

	ListAll(ctx context.Context) ([]LeaveRequestResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]LeaveRequestResponse, error)
	ListApproved(ctx context.Context) ([]LeaveRequestResponse, error)
	ApprovedMonthlySummary(ctx context.Context, employeeID string) ([]MonthlySummaryResponse, error)
	CountOnLeave(ctx context.Context, date string) (DailyCountResponse, error)
}

// NotificationSink receives human-readable leave events. Delivery is its concern.
type NotificationSink interface {
	Notify(ctx context.Context, employeeID, message string, audience notification.Audience, category string) error
}
