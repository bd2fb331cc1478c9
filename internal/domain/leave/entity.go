package leave

import (
	"time"
)

type LeaveRequestStatus string

const (
	LeaveRequestStatusProses   LeaveRequestStatus = "Proses"
	LeaveRequestStatusDiterima LeaveRequestStatus = "Diterima"
)

// LeaveRequest entity
type LeaveRequest struct {
	ID         string
	EmployeeID string

	// Inclusive range
	StartDate time.Time
	EndDate   time.Time

	Reason string
	Status LeaveRequestStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ApprovalRecord is one tier's sign-off on a leave request.
// Signed, ApproverEmployeeID and SignedAt are either all set or all empty.
type ApprovalRecord struct {
	LeaveRequestID     string
	Tier               Tier
	Signed             bool
	ApproverEmployeeID *string
	SignedAt           *time.Time
}

// Consistent reports whether the signed flag agrees with the approver and timestamp.
func (a ApprovalRecord) Consistent() bool {
	hasApprover := a.ApproverEmployeeID != nil
	hasTimestamp := a.SignedAt != nil
	return a.Signed == hasApprover && hasApprover == hasTimestamp
}

// Outstanding returns the signing tiers not yet signed, in canonical order.
// A tier with no record counts as outstanding.
func Outstanding(records []ApprovalRecord) []Tier {
	signed := make(map[Tier]bool, len(records))
	for _, r := range records {
		if r.Signed {
			signed[r.Tier] = true
		}
	}

	outstanding := make([]Tier, 0, len(Tiers()))
	for _, t := range Tiers() {
		if !signed[t] {
			outstanding = append(outstanding, t)
		}
	}
	return outstanding
}

// LeaveRequestDetail is a leave request joined with its owner and tier flags,
// used for list views.
type LeaveRequestDetail struct {
	LeaveRequest
	EmployeeNIP  string
	EmployeeName string
	RoleName     string
	StatusKaur   bool
	StatusKanit  bool
	StatusKadiv  bool
}

// MonthlyLeaveSummary is the number of approved leave days starting in a month.
type MonthlyLeaveSummary struct {
	Month int
	Year  int
	Days  int64
}
