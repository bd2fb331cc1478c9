package leave

import (
	"context"

	"github.com/audyningrum27/simtrendi/internal/domain/leave"
	"github.com/audyningrum27/simtrendi/internal/pkg/validator"
)

type LeaveServiceImpl struct {
	requests leave.LeaveRequestRepository
	*RequestService
	*ApprovalWorkflow
}

var _ leave.LeaveService = (*LeaveServiceImpl)(nil)

func NewLeaveService(requests leave.LeaveRequestRepository, requestService *RequestService, workflow *ApprovalWorkflow) leave.LeaveService {
	return &LeaveServiceImpl{
		requests:         requests,
		RequestService:   requestService,
		ApprovalWorkflow: workflow,
	}
}

// ListAll implements leave.LeaveService.
func (l *LeaveServiceImpl) ListAll(ctx context.Context) ([]leave.LeaveRequestResponse, error) {
	return l.list(ctx, "list leave requests", leave.LeaveRequestFilter{})
}

// ListByEmployee implements leave.LeaveService.
func (l *LeaveServiceImpl) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequestResponse, error) {
	if validator.IsEmpty(employeeID) {
		return nil, validator.ValidationErrors{{Field: "id_pegawai", Message: "id_pegawai is required"}}
	}
	return l.list(ctx, "list employee leave requests", leave.LeaveRequestFilter{EmployeeID: &employeeID})
}

// ListApproved implements leave.LeaveService.
func (l *LeaveServiceImpl) ListApproved(ctx context.Context) ([]leave.LeaveRequestResponse, error) {
	status := leave.LeaveRequestStatusDiterima
	return l.list(ctx, "list approved leave requests", leave.LeaveRequestFilter{Status: &status})
}

func (l *LeaveServiceImpl) list(ctx context.Context, op string, filter leave.LeaveRequestFilter) ([]leave.LeaveRequestResponse, error) {
	details, err := l.requests.List(ctx, filter)
	if err != nil {
		return nil, translateStoreError(op, err)
	}

	responses := make([]leave.LeaveRequestResponse, len(details))
	for i, d := range details {
		responses[i] = d.ToResponse()
	}
	return responses, nil
}

// ApprovedMonthlySummary implements leave.LeaveService.
func (l *LeaveServiceImpl) ApprovedMonthlySummary(ctx context.Context, employeeID string) ([]leave.MonthlySummaryResponse, error) {
	if validator.IsEmpty(employeeID) {
		return nil, validator.ValidationErrors{{Field: "id_pegawai", Message: "id_pegawai is required"}}
	}

	summaries, err := l.requests.ApprovedMonthlySummary(ctx, employeeID)
	if err != nil {
		return nil, translateStoreError("approved leave summary", err)
	}

	responses := make([]leave.MonthlySummaryResponse, len(summaries))
	for i, s := range summaries {
		responses[i] = leave.MonthlySummaryResponse{Month: s.Month, Year: s.Year, Days: s.Days}
	}
	return responses, nil
}

// CountOnLeave implements leave.LeaveService.
func (l *LeaveServiceImpl) CountOnLeave(ctx context.Context, date string) (leave.DailyCountResponse, error) {
	day, ok := validator.IsValidDate(date)
	if !ok {
		return leave.DailyCountResponse{}, validator.ValidationErrors{{Field: "date", Message: "date must be in YYYY-MM-DD format"}}
	}

	count, err := l.requests.CountOnLeave(ctx, day)
	if err != nil {
		return leave.DailyCountResponse{}, translateStoreError("count employees on leave", err)
	}
	return leave.DailyCountResponse{Date: date, Count: count}, nil
}
