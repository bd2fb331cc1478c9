package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/audyningrum27/simtrendi/internal/domain/employee"
	"github.com/audyningrum27/simtrendi/internal/domain/leave"
	"github.com/audyningrum27/simtrendi/internal/domain/notification"
	"github.com/audyningrum27/simtrendi/internal/pkg/database"
	"github.com/audyningrum27/simtrendi/internal/pkg/metrics"
)

const approvedMessage = "Cuti telah disetujui oleh semua pihak. Silakan cek status cuti Anda."

// ApprovalWorkflow advances a leave request through the KAUR, KANIT and KADIV sign-offs.
type ApprovalWorkflow struct {
	transactor database.Transactor
	requests   leave.LeaveRequestRepository
	employees  employee.EmployeeRepository
	classifier leave.RoleClassifier
	notifier   leave.NotificationSink
	now        func() time.Time
}

func NewApprovalWorkflow(
	transactor database.Transactor,
	requests leave.LeaveRequestRepository,
	employees employee.EmployeeRepository,
	classifier leave.RoleClassifier,
	notifier leave.NotificationSink,
) *ApprovalWorkflow {
	return &ApprovalWorkflow{
		transactor: transactor,
		requests:   requests,
		employees:  employees,
		classifier: classifier,
		notifier:   notifier,
		now:        time.Now,
	}
}

// SubmitApproval records the acting employee's tier sign-off. Each tier signs at
// most once; the request becomes Diterima when the last outstanding tier signs.
//
// The leave request row is locked for the whole check-sign-recount sequence, so
// concurrent approvals of one request are serialized and the final signer always
// sees every other signature.
func (w *ApprovalWorkflow) SubmitApproval(ctx context.Context, req leave.ApprovalRequest) (leave.ApprovalResult, error) {
	if err := req.Validate(); err != nil {
		return leave.ApprovalResult{}, err
	}

	var (
		result leave.ApprovalResult
		tier   leave.Tier
		owner  string
	)

	err := w.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		request, err := w.requests.GetByIDForUpdate(ctx, req.LeaveRequestID)
		if err != nil {
			return fmt.Errorf("get leave request: %w", err)
		}
		if request.Status != leave.LeaveRequestStatusProses {
			return leave.ErrLeaveAlreadyFinalized
		}
		owner = request.EmployeeID

		approver, err := w.employees.GetByID(ctx, req.EmployeeID)
		if err != nil {
			return fmt.Errorf("get approver: %w", err)
		}
		tier = w.classifier.Classify(approver.RoleName)
		if tier == leave.TierNone {
			return leave.ErrUnauthorizedApprover
		}

		record, err := w.requests.GetApproval(ctx, request.ID, tier)
		if err != nil {
			return fmt.Errorf("get %s approval: %w", tier, err)
		}
		if !record.Consistent() {
			return fmt.Errorf("%w: tier %s of leave request %s", leave.ErrInconsistentApproval, tier, request.ID)
		}
		if record.Signed {
			return leave.ErrAlreadyApproved
		}

		signed, err := w.requests.TrySignApproval(ctx, request.ID, tier, approver.ID, w.now())
		if err != nil {
			return fmt.Errorf("sign %s approval: %w", tier, err)
		}
		if !signed {
			return leave.ErrAlreadyApproved
		}

		records, err := w.requests.ListApprovals(ctx, request.ID)
		if err != nil {
			return fmt.Errorf("list approvals: %w", err)
		}
		if len(records) != len(leave.Tiers()) {
			return fmt.Errorf("%w: leave request %s has %d approval records", leave.ErrInconsistentApproval, request.ID, len(records))
		}
		for _, r := range records {
			if !r.Consistent() {
				return fmt.Errorf("%w: tier %s of leave request %s", leave.ErrInconsistentApproval, r.Tier, request.ID)
			}
		}

		outstanding := leave.Outstanding(records)
		if len(outstanding) > 0 {
			result = leave.ApprovalResult{
				Finalized:      false,
				LeaveRequestID: request.ID,
				Status:         leave.LeaveRequestStatusProses,
				Outstanding:    outstanding,
			}
			return nil
		}

		if err := w.requests.Finalize(ctx, request.ID); err != nil {
			return fmt.Errorf("finalize leave request: %w", err)
		}
		result = leave.ApprovalResult{
			Finalized:      true,
			LeaveRequestID: request.ID,
			Status:         leave.LeaveRequestStatusDiterima,
		}
		return nil
	})
	if err != nil {
		metrics.RecordApproval(string(tier), approvalOutcome(err))
		return leave.ApprovalResult{}, translateStoreError("submit approval", err)
	}

	if !result.Finalized {
		metrics.RecordApproval(string(tier), "signed")
		return result, nil
	}
	metrics.RecordApproval(string(tier), "finalized")

	// The approval is durable at this point; notification is best-effort.
	target := req.NotifyEmployeeID
	if target == "" {
		target = owner
	}
	if err := w.notifier.Notify(ctx, target, approvedMessage, notification.AudienceEmployee, notification.CategoryLeave); err != nil {
		slog.Error("Failed to send leave approval notification", "leave_request_id", result.LeaveRequestID, "employee_id", target, "error", err)
		metrics.RecordNotificationFailure(notification.CategoryLeave)
		return result, nil
	}
	result.NotificationSent = true

	return result, nil
}
