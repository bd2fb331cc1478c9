package leave

import (
	"time"

	"github.com/audyningrum27/simtrendi/internal/pkg/validator"
)

const DateLayout = "2006-01-02"

type CreateLeaveRequestRequest struct {
	EmployeeID string `json:"idPegawai"`
	StartDate  string `json:"tanggalMulai"`
	EndDate    string `json:"tanggalSelesai"`
	Reason     string `json:"alasan"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "alasan",
			Message: "Alasan cuti wajib diisi",
		})
	}

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "idPegawai",
			Message: "idPegawai is required",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "tanggalMulai",
			Message: "tanggalMulai must be a date in YYYY-MM-DD format",
		})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "tanggalSelesai",
			Message: "tanggalSelesai must be a date in YYYY-MM-DD format",
		})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "tanggalSelesai",
			Message: "tanggalSelesai must not be before tanggalMulai",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ApprovalRequest struct {
	LeaveRequestID string `json:"idCuti"`
	EmployeeID     string `json:"idPegawai"`
	// NotifyEmployeeID receives the final approval notice; defaults to the request owner.
	NotifyEmployeeID string `json:"idPegawaiCuti"`
}

func (r *ApprovalRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveRequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "idCuti",
			Message: "idCuti is required",
		})
	}
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "idPegawai",
			Message: "idPegawai is required",
		})
	}
	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ApprovalResult is the outcome of one tier's sign-off.
type ApprovalResult struct {
	Finalized        bool               `json:"finalized"`
	LeaveRequestID   string             `json:"leave_request_id"`
	Status           LeaveRequestStatus `json:"status"`
	Outstanding      []Tier             `json:"outstanding,omitempty"`
	NotificationSent bool               `json:"notification_sent"`
}

type LeaveRequestResponse struct {
	ID           string             `json:"id"`
	EmployeeID   string             `json:"employee_id"`
	EmployeeNIP  string             `json:"employee_nip,omitempty"`
	EmployeeName string             `json:"employee_name,omitempty"`
	RoleName     string             `json:"role_name,omitempty"`
	StartDate    string             `json:"start_date"`
	EndDate      string             `json:"end_date"`
	Reason       string             `json:"reason"`
	Status       LeaveRequestStatus `json:"status"`
	StatusKaur   bool               `json:"status_kaur"`
	StatusKanit  bool               `json:"status_kanit"`
	StatusKadiv  bool               `json:"status_kadiv"`
	CreatedAt    time.Time          `json:"created_at"`
}

type MonthlySummaryResponse struct {
	Month int   `json:"month"`
	Year  int   `json:"year"`
	Days  int64 `json:"days"`
}

type SweepResponse struct {
	Deleted int64 `json:"deleted"`
}

type DailyCountResponse struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// ToResponse converts a detail row into its API shape.
func (d LeaveRequestDetail) ToResponse() LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:           d.ID,
		EmployeeID:   d.EmployeeID,
		EmployeeNIP:  d.EmployeeNIP,
		EmployeeName: d.EmployeeName,
		RoleName:     d.RoleName,
		StartDate:    d.StartDate.Format(DateLayout),
		EndDate:      d.EndDate.Format(DateLayout),
		Reason:       d.Reason,
		Status:       d.Status,
		StatusKaur:   d.StatusKaur,
		StatusKanit:  d.StatusKanit,
		StatusKadiv:  d.StatusKadiv,
		CreatedAt:    d.CreatedAt,
	}
}
