package leave

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/audyningrum27/simtrendi/internal/domain/employee"
	"github.com/audyningrum27/simtrendi/internal/domain/leave"
	"github.com/audyningrum27/simtrendi/internal/domain/notification"
)

var errStoreDown = errors.New("connection refused")

// ===== employees =====

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func newFakeEmployeeRepo(emps ...employee.Employee) *fakeEmployeeRepo {
	r := &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
	for _, e := range emps {
		r.employees[e.ID] = e
	}
	return r
}

func (r *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *fakeEmployeeRepo) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	for _, e := range r.employees {
		if e.Email == email {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

// ===== leave store =====

type fakeLeaveStore struct {
	mu        sync.Mutex
	requests  map[string]leave.LeaveRequest
	approvals map[string]map[leave.Tier]leave.ApprovalRecord
	employees *fakeEmployeeRepo

	errCreateApprovals error
	errGetByID         error
	errDeleteExpired   error
	finalizeCalls      int
}

func newFakeLeaveStore(employees *fakeEmployeeRepo) *fakeLeaveStore {
	return &fakeLeaveStore{
		requests:  make(map[string]leave.LeaveRequest),
		approvals: make(map[string]map[leave.Tier]leave.ApprovalRecord),
		employees: employees,
	}
}

// seed inserts a request with three unsigned approvals.
func (s *fakeLeaveStore) seed(req leave.LeaveRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[req.ID] = req
	s.approvals[req.ID] = make(map[leave.Tier]leave.ApprovalRecord)
	for _, t := range leave.Tiers() {
		s.approvals[req.ID][t] = leave.ApprovalRecord{LeaveRequestID: req.ID, Tier: t}
	}
}

func (s *fakeLeaveStore) status(id string) (leave.LeaveRequestStatus, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[id]
	return r.Status, ok
}

func (s *fakeLeaveStore) approval(id string, tier leave.Tier) leave.ApprovalRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.approvals[id][tier]
}

func (s *fakeLeaveStore) snapshot() func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	requests := make(map[string]leave.LeaveRequest, len(s.requests))
	for k, v := range s.requests {
		requests[k] = v
	}
	approvals := make(map[string]map[leave.Tier]leave.ApprovalRecord, len(s.approvals))
	for k, v := range s.approvals {
		inner := make(map[leave.Tier]leave.ApprovalRecord, len(v))
		for t, r := range v {
			inner[t] = r
		}
		approvals[k] = inner
	}
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.requests = requests
		s.approvals = approvals
	}
}

func (s *fakeLeaveStore) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	request.CreatedAt = now
	request.UpdatedAt = now
	s.requests[request.ID] = request
	return request, nil
}

func (s *fakeLeaveStore) CreateApprovals(ctx context.Context, leaveRequestID string, tiers []leave.Tier) error {
	if s.errCreateApprovals != nil {
		return s.errCreateApprovals
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	records := make(map[leave.Tier]leave.ApprovalRecord, len(tiers))
	for _, t := range tiers {
		records[t] = leave.ApprovalRecord{LeaveRequestID: leaveRequestID, Tier: t}
	}
	s.approvals[leaveRequestID] = records
	return nil
}

func (s *fakeLeaveStore) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	if s.errGetByID != nil {
		return leave.LeaveRequest{}, s.errGetByID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return r, nil
}

func (s *fakeLeaveStore) GetByIDForUpdate(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return s.GetByID(ctx, id)
}

func (s *fakeLeaveStore) Finalize(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[id]
	if !ok {
		return leave.ErrLeaveRequestNotFound
	}
	r.Status = leave.LeaveRequestStatusDiterima
	s.requests[id] = r
	s.finalizeCalls++
	return nil
}

func (s *fakeLeaveStore) DeleteExpired(ctx context.Context, today time.Time) (int64, error) {
	if s.errDeleteExpired != nil {
		return 0, s.errDeleteExpired
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, r := range s.requests {
		if r.Status == leave.LeaveRequestStatusProses && r.EndDate.Before(today) {
			delete(s.requests, id)
			delete(s.approvals, id)
			n++
		}
	}
	return n, nil
}

func (s *fakeLeaveStore) GetApproval(ctx context.Context, leaveRequestID string, tier leave.Tier) (leave.ApprovalRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.approvals[leaveRequestID][tier]
	if !ok {
		return leave.ApprovalRecord{}, leave.ErrInconsistentApproval
	}
	return r, nil
}

func (s *fakeLeaveStore) TrySignApproval(ctx context.Context, leaveRequestID string, tier leave.Tier, approverID string, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.approvals[leaveRequestID][tier]
	if !ok || r.Signed {
		return false, nil
	}
	r.Signed = true
	r.ApproverEmployeeID = &approverID
	r.SignedAt = &now
	s.approvals[leaveRequestID][tier] = r
	return true, nil
}

func (s *fakeLeaveStore) ListApprovals(ctx context.Context, leaveRequestID string) ([]leave.ApprovalRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := make([]leave.ApprovalRecord, 0, 3)
	for _, r := range s.approvals[leaveRequestID] {
		records = append(records, r)
	}
	return records, nil
}

func (s *fakeLeaveStore) detail(r leave.LeaveRequest) leave.LeaveRequestDetail {
	d := leave.LeaveRequestDetail{LeaveRequest: r}
	if e, ok := s.employees.employees[r.EmployeeID]; ok {
		d.EmployeeNIP = e.NIP
		d.EmployeeName = e.Name
		d.RoleName = e.RoleName
	}
	approvals := s.approvals[r.ID]
	d.StatusKaur = approvals[leave.TierKaur].Signed
	d.StatusKanit = approvals[leave.TierKanit].Signed
	d.StatusKadiv = approvals[leave.TierKadiv].Signed
	return d
}

func (s *fakeLeaveStore) GetDetail(ctx context.Context, id string) (leave.LeaveRequestDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[id]
	if !ok {
		return leave.LeaveRequestDetail{}, leave.ErrLeaveRequestNotFound
	}
	return s.detail(r), nil
}

func (s *fakeLeaveStore) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequestDetail, error) {
	if s.errGetByID != nil {
		return nil, s.errGetByID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []leave.LeaveRequestDetail
	for _, r := range s.requests {
		if filter.EmployeeID != nil && r.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && r.Status != *filter.Status {
			continue
		}
		out = append(out, s.detail(r))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

func (s *fakeLeaveStore) ApprovedMonthlySummary(ctx context.Context, employeeID string) ([]leave.MonthlyLeaveSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	type key struct{ y, m int }
	days := make(map[key]int64)
	for _, r := range s.requests {
		if r.EmployeeID != employeeID || r.Status != leave.LeaveRequestStatusDiterima {
			continue
		}
		k := key{r.StartDate.Year(), int(r.StartDate.Month())}
		days[k] += int64(r.EndDate.Sub(r.StartDate).Hours()/24) + 1
	}
	var out []leave.MonthlyLeaveSummary
	for k, d := range days {
		out = append(out, leave.MonthlyLeaveSummary{Month: k.m, Year: k.y, Days: d})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out, nil
}

func (s *fakeLeaveStore) CountOnLeave(ctx context.Context, date time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, r := range s.requests {
		if !r.StartDate.After(date) && !r.EndDate.Before(date) {
			n++
		}
	}
	return n, nil
}

// ===== transactions =====

// serialTransactor runs one transaction at a time and rolls the store back on error.
type serialTransactor struct {
	mu    sync.Mutex
	store *fakeLeaveStore
}

func (t *serialTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	restore := t.store.snapshot()
	if err := fn(ctx); err != nil {
		restore()
		return err
	}
	return nil
}

// passthroughTransactor provides no isolation at all.
type passthroughTransactor struct{}

func (passthroughTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// ===== notifications =====

type sentNotification struct {
	EmployeeID string
	Message    string
	Audience   notification.Audience
	Category   string
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
	err  error
}

func (n *fakeNotifier) Notify(ctx context.Context, employeeID, message string, audience notification.Audience, category string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, sentNotification{employeeID, message, audience, category})
	return nil
}

func (n *fakeNotifier) all() []sentNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sentNotification(nil), n.sent...)
}
