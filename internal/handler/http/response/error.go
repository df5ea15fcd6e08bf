package response

import (
	"errors"
	"net/http"

	"github.com/corehive/corehive-backend-go/internal/domain/attendance"
	"github.com/corehive/corehive-backend-go/internal/domain/employee"
	"github.com/corehive/corehive-backend-go/internal/domain/payroll"
	"github.com/corehive/corehive-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyLocked):
		Conflict(w, "Attendance record is locked by checkout")
	case errors.Is(err, attendance.ErrInvalidTransition):
		Conflict(w, "Attendance status does not allow this transition")
	case errors.Is(err, attendance.ErrUnknownStatus):
		BadRequest(w, "Unknown attendance status", nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrUnknownSalaryType):
		BadRequest(w, "Unknown salary type", nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrMissingSalaryStructure):
		NotFound(w, "Salary structure not found")
	case errors.Is(err, payroll.ErrRunNotFound):
		NotFound(w, "Payroll run not found")
	case errors.Is(err, payroll.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")
	case errors.Is(err, payroll.ErrDuplicateRun):
		Conflict(w, "Payroll already ran for this period")
	case errors.Is(err, payroll.ErrRunInProgress):
		Conflict(w, "A payroll run is already in progress for this period")
	case errors.Is(err, payroll.ErrAlreadyPaid):
		Conflict(w, "Payslip is already paid")
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)
	case errors.Is(err, payroll.ErrUnknownPaymentStatus):
		BadRequest(w, "Unknown payment status", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
