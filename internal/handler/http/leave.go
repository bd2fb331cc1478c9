package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/audyningrum27/simtrendi/internal/domain/leave"
	"github.com/audyningrum27/simtrendi/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	CreateRequest(w http.ResponseWriter, r *http.Request)
	SubmitApproval(w http.ResponseWriter, r *http.Request)
	SweepExpired(w http.ResponseWriter, r *http.Request)

	ListAll(w http.ResponseWriter, r *http.Request)
	ListApproved(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
	ApprovedSummary(w http.ResponseWriter, r *http.Request)
	DailyCount(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// CreateRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveRequestRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// 2. Call service, which validates
	created, err := l.leaveService.SubmitLeaveRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Pengajuan cuti berhasil", created)
}

// SubmitApproval implements LeaveHandler.
func (l *LeaveHandlerImpl) SubmitApproval(w http.ResponseWriter, r *http.Request) {
	var req leave.ApprovalRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SubmitApproval decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// The approver is the token subject
	subject := getEmployeeIDFromContext(r)
	if req.EmployeeID == "" {
		req.EmployeeID = subject
	}
	if req.EmployeeID != subject {
		response.Forbidden(w, "idPegawai does not match the authenticated employee")
		return
	}

	result, err := l.leaveService.SubmitApproval(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	message := "Persetujuan berhasil disimpan"
	if result.Finalized {
		message = "Cuti telah disetujui oleh semua pihak"
	}
	response.SuccessWithMessage(w, message, result)
}

// SweepExpired implements LeaveHandler.
func (l *LeaveHandlerImpl) SweepExpired(w http.ResponseWriter, r *http.Request) {
	deleted, err := l.leaveService.SweepExpired(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.SweepResponse{Deleted: deleted})
}

// ListAll implements LeaveHandler.
func (l *LeaveHandlerImpl) ListAll(w http.ResponseWriter, r *http.Request) {
	requests, err := l.leaveService.ListAll(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// ListApproved implements LeaveHandler.
func (l *LeaveHandlerImpl) ListApproved(w http.ResponseWriter, r *http.Request) {
	requests, err := l.leaveService.ListApproved(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// ListByEmployee implements LeaveHandler.
func (l *LeaveHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	requests, err := l.leaveService.ListByEmployee(r.Context(), chi.URLParam(r, "idPegawai"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// ApprovedSummary implements LeaveHandler.
func (l *LeaveHandlerImpl) ApprovedSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := l.leaveService.ApprovedMonthlySummary(r.Context(), chi.URLParam(r, "idPegawai"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// DailyCount implements LeaveHandler.
func (l *LeaveHandlerImpl) DailyCount(w http.ResponseWriter, r *http.Request) {
	count, err := l.leaveService.CountOnLeave(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, count)
}
