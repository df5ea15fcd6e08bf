package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/corehive/corehive-backend-go/internal/domain/payroll"
	"github.com/corehive/corehive-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	Run(w http.ResponseWriter, r *http.Request)
	ListPayslips(w http.ResponseWriter, r *http.Request)
	MarkPaid(w http.ResponseWriter, r *http.Request)
	GetSalaryBreakdown(w http.ResponseWriter, r *http.Request)
	UpdateSalaryBreakdown(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{
		payrollService: payrollService,
	}
}

// Run implements PayrollHandler.
func (h *payrollHandlerImpl) Run(w http.ResponseWriter, r *http.Request) {
	var req payroll.RunPayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	report, err := h.payrollService.RunPayroll(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll run finished", report)
}

// ListPayslips implements PayrollHandler.
func (h *payrollHandlerImpl) ListPayslips(w http.ResponseWriter, r *http.Request) {
	var year, month int
	var err error

	if raw := r.URL.Query().Get("year"); raw != "" {
		if year, err = strconv.Atoi(raw); err != nil {
			response.BadRequest(w, "Invalid year", nil)
			return
		}
	}
	if raw := r.URL.Query().Get("month"); raw != "" {
		if month, err = strconv.Atoi(raw); err != nil {
			response.BadRequest(w, "Invalid month", nil)
			return
		}
	}

	payslips, err := h.payrollService.ListPayslips(r.Context(), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payslips)
}

// MarkPaid implements PayrollHandler.
func (h *payrollHandlerImpl) MarkPaid(w http.ResponseWriter, r *http.Request) {
	payslipID := chi.URLParam(r, "payslipId")
	if payslipID == "" {
		response.BadRequest(w, "Payslip id is required", nil)
		return
	}

	slip, err := h.payrollService.MarkPaid(r.Context(), payslipID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payslip marked as paid", slip)
}

// GetSalaryBreakdown implements PayrollHandler.
func (h *payrollHandlerImpl) GetSalaryBreakdown(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if employeeID == "" {
		response.BadRequest(w, "Employee id is required", nil)
		return
	}

	structure, err := h.payrollService.GetSalaryStructure(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, structure)
}

// UpdateSalaryBreakdown implements PayrollHandler.
func (h *payrollHandlerImpl) UpdateSalaryBreakdown(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if employeeID == "" {
		response.BadRequest(w, "Employee id is required", nil)
		return
	}

	var req payroll.UpdateSalaryStructureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = employeeID

	structure, err := h.payrollService.UpdateSalaryStructure(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, structure)
}
