package leave

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/audyningrum27/simtrendi/internal/domain/employee"
	"github.com/audyningrum27/simtrendi/internal/domain/leave"
	"github.com/audyningrum27/simtrendi/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLeaveServiceFixture(t *testing.T) (leave.LeaveService, *fakeLeaveStore) {
	t.Helper()

	employees := newFakeEmployeeRepo(
		employee.Employee{ID: "E", NIP: "1001", Name: "Siti Aminah", RoleName: roleStaff},
		employee.Employee{ID: "F", NIP: "1002", Name: "Fajar", RoleName: roleStaff},
	)
	store := newFakeLeaveStore(employees)
	store.seed(leave.LeaveRequest{ID: "1", EmployeeID: "E", StartDate: date(2026, 9, 1), EndDate: date(2026, 9, 3), Status: leave.LeaveRequestStatusDiterima})
	store.seed(leave.LeaveRequest{ID: "2", EmployeeID: "E", StartDate: date(2026, 9, 20), EndDate: date(2026, 9, 21), Status: leave.LeaveRequestStatusDiterima})
	store.seed(leave.LeaveRequest{ID: "3", EmployeeID: "E", StartDate: date(2026, 10, 5), EndDate: date(2026, 10, 5), Status: leave.LeaveRequestStatusDiterima})
	store.seed(leave.LeaveRequest{ID: "4", EmployeeID: "E", StartDate: date(2026, 10, 20), EndDate: date(2026, 10, 22), Status: leave.LeaveRequestStatusProses})
	store.seed(leave.LeaveRequest{ID: "5", EmployeeID: "F", StartDate: date(2026, 10, 21), EndDate: date(2026, 10, 21), Status: leave.LeaveRequestStatusProses})

	location, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)
	tx := &serialTransactor{store: store}
	notifier := &fakeNotifier{}
	svc := NewLeaveService(
		store,
		NewRequestService(tx, store, employees, notifier, location),
		NewApprovalWorkflow(tx, store, employees, NewRoleClassifier(nil), notifier),
	)
	return svc, store
}

func TestLeaveService_Lists(t *testing.T) {
	svc, _ := newLeaveServiceFixture(t)
	ctx := context.Background()

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	mine, err := svc.ListByEmployee(ctx, "F")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "5", mine[0].ID)
	assert.Equal(t, "Fajar", mine[0].EmployeeName)
	assert.Equal(t, "2026-10-21", mine[0].StartDate)

	approved, err := svc.ListApproved(ctx)
	require.NoError(t, err)
	assert.Len(t, approved, 3)
	for _, r := range approved {
		assert.Equal(t, leave.LeaveRequestStatusDiterima, r.Status)
	}
}

func TestLeaveService_ListByEmployee_RequiresID(t *testing.T) {
	svc, _ := newLeaveServiceFixture(t)

	_, err := svc.ListByEmployee(context.Background(), " ")

	var verrs validator.ValidationErrors
	assert.True(t, errors.As(err, &verrs))
}

func TestLeaveService_ListStoreUnavailable(t *testing.T) {
	svc, store := newLeaveServiceFixture(t)
	store.errGetByID = errStoreDown

	_, err := svc.ListAll(context.Background())
	assert.ErrorIs(t, err, leave.ErrStoreUnavailable)
}

func TestLeaveService_ApprovedMonthlySummary(t *testing.T) {
	svc, _ := newLeaveServiceFixture(t)

	summary, err := svc.ApprovedMonthlySummary(context.Background(), "E")

	require.NoError(t, err)
	assert.Equal(t, []leave.MonthlySummaryResponse{
		{Month: 9, Year: 2026, Days: 5},
		{Month: 10, Year: 2026, Days: 1},
	}, summary)
}

func TestLeaveService_CountOnLeave(t *testing.T) {
	svc, _ := newLeaveServiceFixture(t)

	resp, err := svc.CountOnLeave(context.Background(), "2026-10-21")
	require.NoError(t, err)
	assert.Equal(t, leave.DailyCountResponse{Date: "2026-10-21", Count: 2}, resp)

	_, err = svc.CountOnLeave(context.Background(), "21/10/2026")
	var verrs validator.ValidationErrors
	assert.True(t, errors.As(err, &verrs))
}
