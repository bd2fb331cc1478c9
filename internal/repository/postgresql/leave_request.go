package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/audyningrum27/simtrendi/internal/domain/leave"
	"github.com/audyningrum27/simtrendi/internal/pkg/database"
	"github.com/audyningrum27/simtrendi/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			id, employee_id, start_date, end_date, reason, status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, NOW(), NOW()
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.ID, request.EmployeeID, request.StartDate, request.EndDate, request.Reason, request.Status,
	).Scan(&request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("insert leave request: %w", err)
	}

	return request, nil
}

// CreateApprovals implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) CreateApprovals(ctx context.Context, leaveRequestID string, tiers []leave.Tier) error {
	q := GetQuerier(ctx, r.db)

	names := make([]string, len(tiers))
	for i, t := range tiers {
		names[i] = string(t)
	}

	query := `
		INSERT INTO leave_approvals (leave_request_id, tier, signed)
		SELECT $1, t, FALSE FROM unnest($2::text[]) AS t
	`

	tag, err := q.Exec(ctx, query, leaveRequestID, names)
	if err != nil {
		return fmt.Errorf("insert leave approvals: %w", err)
	}
	if tag.RowsAffected() != int64(len(tiers)) {
		return fmt.Errorf("insert leave approvals: %d of %d rows written", tag.RowsAffected(), len(tiers))
	}
	return nil
}

const leaveRequestColumns = `id, employee_id, start_date, end_date, reason, status, created_at, updated_at`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID, &lr.EmployeeID, &lr.StartDate, &lr.EndDate,
		&lr.Reason, &lr.Status, &lr.CreatedAt, &lr.UpdatedAt,
	)
	return lr, err
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return r.getByID(ctx, id, "")
}

// GetByIDForUpdate implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return r.getByID(ctx, id, "FOR UPDATE")
}

func (r *leaveRequestRepositoryImpl) getByID(ctx context.Context, id string, lock string) (leave.LeaveRequest, error) {
	// ids are uuid columns; anything else cannot match a row
	if !validator.IsValidUUID(id) {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests WHERE id = $1 ` + lock

	lr, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("select leave request %s: %w", id, err)
	}
	return lr, nil
}

// Finalize implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Finalize(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = $3
	`

	tag, err := q.Exec(ctx, query, id, leave.LeaveRequestStatusDiterima, leave.LeaveRequestStatusProses)
	if err != nil {
		return fmt.Errorf("finalize leave request %s: %w", id, err)
	}
	if tag.RowsAffected() != 1 {
		return leave.ErrLeaveAlreadyFinalized
	}
	return nil
}

// DeleteExpired implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) DeleteExpired(ctx context.Context, today time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM leave_requests
		WHERE status = $1 AND end_date < $2::date
	`

	tag, err := q.Exec(ctx, query, leave.LeaveRequestStatusProses, today)
	if err != nil {
		return 0, fmt.Errorf("delete expired leave requests: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanApproval(row pgx.Row) (leave.ApprovalRecord, error) {
	var a leave.ApprovalRecord
	err := row.Scan(&a.LeaveRequestID, &a.Tier, &a.Signed, &a.ApproverEmployeeID, &a.SignedAt)
	return a, err
}

// GetApproval implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetApproval(ctx context.Context, leaveRequestID string, tier leave.Tier) (leave.ApprovalRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT leave_request_id, tier, signed, approver_employee_id, signed_at
		FROM leave_approvals
		WHERE leave_request_id = $1 AND tier = $2
	`

	a, err := scanApproval(q.QueryRow(ctx, query, leaveRequestID, tier))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.ApprovalRecord{}, fmt.Errorf("%w: no %s record for leave request %s", leave.ErrInconsistentApproval, tier, leaveRequestID)
		}
		return leave.ApprovalRecord{}, fmt.Errorf("select %s approval: %w", tier, err)
	}
	return a, nil
}

// TrySignApproval implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) TrySignApproval(ctx context.Context, leaveRequestID string, tier leave.Tier, approverID string, now time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_approvals
		SET signed = TRUE, approver_employee_id = $3, signed_at = $4
		WHERE leave_request_id = $1 AND tier = $2 AND signed = FALSE
	`

	tag, err := q.Exec(ctx, query, leaveRequestID, tier, approverID, now)
	if err != nil {
		return false, fmt.Errorf("sign %s approval: %w", tier, err)
	}
	return tag.RowsAffected() == 1, nil
}

// ListApprovals implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListApprovals(ctx context.Context, leaveRequestID string) ([]leave.ApprovalRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT leave_request_id, tier, signed, approver_employee_id, signed_at
		FROM leave_approvals
		WHERE leave_request_id = $1
		ORDER BY tier
	`

	rows, err := q.Query(ctx, query, leaveRequestID)
	if err != nil {
		return nil, fmt.Errorf("select leave approvals: %w", err)
	}
	defer rows.Close()

	var records []leave.ApprovalRecord
	for rows.Next() {
		a, err := scanApproval(rows)
		if err != nil {
			return nil, fmt.Errorf("scan leave approval: %w", err)
		}
		records = append(records, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leave approvals: %w", err)
	}

	return records, nil
}

const leaveDetailQuery = `
	SELECT lr.id, lr.employee_id, lr.start_date, lr.end_date, lr.reason, lr.status, lr.created_at, lr.updated_at,
		   e.nip, e.name, COALESCE(ro.name, ''),
		   COALESCE(bool_or(la.signed) FILTER (WHERE la.tier = 'KAUR'), FALSE),
		   COALESCE(bool_or(la.signed) FILTER (WHERE la.tier = 'KANIT'), FALSE),
		   COALESCE(bool_or(la.signed) FILTER (WHERE la.tier = 'KADIV'), FALSE)
	FROM leave_requests lr
	JOIN employees e ON e.id = lr.employee_id
	LEFT JOIN roles ro ON ro.id = e.role_id
	LEFT JOIN leave_approvals la ON la.leave_request_id = lr.id
`

const leaveDetailGroupBy = ` GROUP BY lr.id, e.nip, e.name, ro.name `

func scanLeaveDetail(row pgx.Row) (leave.LeaveRequestDetail, error) {
	var d leave.LeaveRequestDetail
	err := row.Scan(
		&d.ID, &d.EmployeeID, &d.StartDate, &d.EndDate, &d.Reason, &d.Status, &d.CreatedAt, &d.UpdatedAt,
		&d.EmployeeNIP, &d.EmployeeName, &d.RoleName,
		&d.StatusKaur, &d.StatusKanit, &d.StatusKadiv,
	)
	return d, err
}

// GetDetail implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetDetail(ctx context.Context, id string) (leave.LeaveRequestDetail, error) {
	if !validator.IsValidUUID(id) {
		return leave.LeaveRequestDetail{}, leave.ErrLeaveRequestNotFound
	}
	q := GetQuerier(ctx, r.db)

	query := leaveDetailQuery + ` WHERE lr.id = $1 ` + leaveDetailGroupBy

	d, err := scanLeaveDetail(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequestDetail{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequestDetail{}, fmt.Errorf("select leave request detail %s: %w", id, err)
	}
	return d, nil
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequestDetail, error) {
	q := GetQuerier(ctx, r.db)

	// Build WHERE clause
	var conditions []string
	args := []interface{}{}
	argIndex := 1

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("lr.employee_id = $%d", argIndex))
		args = append(args, *filter.EmployeeID)
		argIndex++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("lr.status = $%d", argIndex))
		args = append(args, *filter.Status)
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	query := leaveDetailQuery + whereClause + leaveDetailGroupBy + ` ORDER BY lr.start_date DESC, lr.created_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list leave requests: %w", err)
	}
	defer rows.Close()

	details := []leave.LeaveRequestDetail{}
	for rows.Next() {
		d, err := scanLeaveDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("scan leave request: %w", err)
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leave requests: %w", err)
	}

	return details, nil
}

// ApprovedMonthlySummary implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ApprovedMonthlySummary(ctx context.Context, employeeID string) ([]leave.MonthlyLeaveSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXTRACT(MONTH FROM start_date)::int AS month,
			   EXTRACT(YEAR FROM start_date)::int AS year,
			   SUM(end_date - start_date + 1)::bigint AS days
		FROM leave_requests
		WHERE employee_id = $1 AND status = $2
		GROUP BY year, month
		ORDER BY year, month
	`

	rows, err := q.Query(ctx, query, employeeID, leave.LeaveRequestStatusDiterima)
	if err != nil {
		return nil, fmt.Errorf("summarize approved leave: %w", err)
	}
	defer rows.Close()

	summaries := []leave.MonthlyLeaveSummary{}
	for rows.Next() {
		var s leave.MonthlyLeaveSummary
		if err := rows.Scan(&s.Month, &s.Year, &s.Days); err != nil {
			return nil, fmt.Errorf("scan leave summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leave summary: %w", err)
	}

	return summaries, nil
}

// CountOnLeave implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) CountOnLeave(ctx context.Context, date time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM leave_requests
		WHERE $1::date BETWEEN start_date AND end_date
	`

	var count int64
	if err := q.QueryRow(ctx, query, date).Scan(&count); err != nil {
		return 0, fmt.Errorf("count employees on leave: %w", err)
	}
	return count, nil
}
