package payroll

import (
	"github.com/corehive/corehive-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// PAYROLL DTOs
// ========================================

type RunPayrollRequest struct {
	Year  int  `json:"year"`
	Month int  `json:"month"`
	Force bool `json:"force,omitempty"`
}

func (r *RunPayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidPeriod(r.Year, r.Month) {
		errs = append(errs, validator.ValidationError{
			Field:   "period",
			Message: "year/month must form a valid payroll period",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateSalaryStructureRequest struct {
	EmployeeID  string                      `json:"-"`
	BasicSalary *decimal.Decimal            `json:"basic_salary,omitempty"`
	Allowances  *map[string]decimal.Decimal `json:"allowances,omitempty"`
	Deductions  *map[string]decimal.Decimal `json:"deductions,omitempty"`
}

func (r *UpdateSalaryStructureRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.BasicSalary != nil && r.BasicSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "basic_salary",
			Message: "basic_salary must not be negative",
		})
	}

	if r.Allowances != nil {
		for name, amount := range *r.Allowances {
			if amount.IsNegative() {
				errs = append(errs, validator.ValidationError{
					Field:   "allowances." + name,
					Message: "amount must not be negative",
				})
			}
		}
	}

	if r.Deductions != nil {
		for name, amount := range *r.Deductions {
			if amount.IsNegative() {
				errs = append(errs, validator.ValidationError{
					Field:   "deductions." + name,
					Message: "amount must not be negative",
				})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SalaryStructureResponse struct {
	EmployeeID  string                     `json:"employee_id"`
	BasicSalary decimal.Decimal            `json:"basic_salary"`
	Allowances  map[string]decimal.Decimal `json:"allowances"`
	Deductions  map[string]decimal.Decimal `json:"deductions"`
	UpdatedAt   string                     `json:"updated_at"`
}

type PayslipResponse struct {
	ID               string          `json:"id"`
	EmployeeID       string          `json:"employee_id"`
	EmployeeName     string          `json:"employee_name"`
	EmployeeCode     string          `json:"employee_code,omitempty"`
	RunID            string          `json:"run_id"`
	BasicSalary      decimal.Decimal `json:"basic_salary"`
	TotalAllowances  decimal.Decimal `json:"total_allowances"`
	TotalDeductions  decimal.Decimal `json:"total_deductions"`
	LatePenalty      decimal.Decimal `json:"late_penalty"`
	NetSalary        decimal.Decimal `json:"net_salary"`
	DaysWorked       decimal.Decimal `json:"days_worked"`
	TotalLateMinutes int             `json:"total_late_minutes"`
	PaymentStatus    string          `json:"payment_status"`
	PaidAt           *string         `json:"paid_at,omitempty"`
	CreatedAt        string          `json:"created_at"`
}

type RunReportResponse struct {
	RunID       string       `json:"run_id"`
	PeriodYear  int          `json:"period_year"`
	PeriodMonth int          `json:"period_month"`
	Status      string       `json:"status"`
	Succeeded   []string     `json:"succeeded"`
	Failed      []RunFailure `json:"failed"`
	Skipped     []string     `json:"skipped,omitempty"`
	Warnings    []RunWarning `json:"warnings,omitempty"`
}
