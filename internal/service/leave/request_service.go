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
	"github.com/google/uuid"
)

// RequestService handles leave submission and the expiry sweep.
type RequestService struct {
	transactor database.Transactor
	requests   leave.LeaveRequestRepository
	employees  employee.EmployeeRepository
	notifier   leave.NotificationSink
	location   *time.Location
	now        func() time.Time
}

func NewRequestService(
	transactor database.Transactor,
	requests leave.LeaveRequestRepository,
	employees employee.EmployeeRepository,
	notifier leave.NotificationSink,
	location *time.Location,
) *RequestService {
	if location == nil {
		location = time.Local
	}
	return &RequestService{
		transactor: transactor,
		requests:   requests,
		employees:  employees,
		notifier:   notifier,
		location:   location,
		now:        time.Now,
	}
}

// SubmitLeaveRequest creates a Proses request with one unsigned approval per tier.
func (s *RequestService) SubmitLeaveRequest(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	startDate, err := time.Parse(leave.DateLayout, req.StartDate)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to parse start date: %w", err)
	}
	endDate, err := time.Parse(leave.DateLayout, req.EndDate)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to parse end date: %w", err)
	}

	emp, err := s.employees.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, translateStoreError("get employee", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("generate leave request id: %w", err)
	}

	var created leave.LeaveRequest
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		created, err = s.requests.Create(ctx, leave.LeaveRequest{
			ID:         id.String(),
			EmployeeID: emp.ID,
			StartDate:  startDate,
			EndDate:    endDate,
			Reason:     req.Reason,
			Status:     leave.LeaveRequestStatusProses,
		})
		if err != nil {
			return fmt.Errorf("create leave request: %w", err)
		}

		if err := s.requests.CreateApprovals(ctx, created.ID, leave.Tiers()); err != nil {
			return fmt.Errorf("create approval records: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, translateStoreError("submit leave request", err)
	}
	metrics.RecordSubmission()

	message := submissionMessage(emp.Name, created.StartDate, created.EndDate)
	for _, audience := range []notification.Audience{notification.AudienceEmployee, notification.AudienceAdmin} {
		if err := s.notifier.Notify(ctx, emp.ID, message, audience, notification.CategoryLeave); err != nil {
			slog.Error("Failed to send leave submission notification", "leave_request_id", created.ID, "audience", audience, "error", err)
			metrics.RecordNotificationFailure(notification.CategoryLeave)
		}
	}

	return leave.LeaveRequestDetail{
		LeaveRequest: created,
		EmployeeNIP:  emp.NIP,
		EmployeeName: emp.Name,
		RoleName:     emp.RoleName,
	}.ToResponse(), nil
}

// SweepExpired deletes Proses requests whose end date is before today in the
// configured location. It sends no notifications.
func (s *RequestService) SweepExpired(ctx context.Context) (int64, error) {
	deleted, err := s.requests.DeleteExpired(ctx, s.today())
	if err != nil {
		return 0, translateStoreError("delete expired leave requests", err)
	}

	metrics.RecordExpired(deleted)
	if deleted > 0 {
		slog.Info("Expired leave requests removed", "count", deleted)
	}
	return deleted, nil
}

// today is the current calendar date in s.location, expressed as UTC midnight
// to match how DATE columns are scanned.
func (s *RequestService) today() time.Time {
	y, m, d := s.now().In(s.location).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func submissionMessage(employeeName string, start, end time.Time) string {
	return fmt.Sprintf("%s melakukan pengajuan cuti dari %s hingga %s.", employeeName, formatDate(start), formatDate(end))
}

// formatDate renders DD/MM/YYYY.
func formatDate(t time.Time) string {
	return t.Format("02/01/2006")
}
