package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalaryStructure is the configured pay for one employee: basic salary plus
// named allowance and deduction components. Mutable in place by HR; a payroll
// run reads the structure active at run time.
type SalaryStructure struct {
	EmployeeID  string
	BasicSalary decimal.Decimal
	Allowances  map[string]decimal.Decimal // {"transport": 5000, "food": 3000}
	Deductions  map[string]decimal.Decimal // {"epfEmployee": 1200, "tax": 2000}
	UpdatedAt   time.Time
}

// DeductionKeyLatePenalty names the deduction slot the engine owns. A stored
// entry under this key is replaced by the computed value whenever the period
// has attendance data.
const DeductionKeyLatePenalty = "latePenalty"

// RunStatus enum
type RunStatus string

const (
	RunStatusRunning             RunStatus = "RUNNING"
	RunStatusCompleted           RunStatus = "COMPLETED"
	RunStatusCompletedWithErrors RunStatus = "COMPLETED_WITH_ERRORS"

	// RunStatusVoided marks a run superseded by a forced re-run. Its PENDING
	// payslips are retired from reporting; PAID ones remain visible.
	RunStatusVoided RunStatus = "VOIDED"
)

// PayrollRun is one batch computation of payslips for a (year, month) period.
type PayrollRun struct {
	ID          string
	PeriodYear  int
	PeriodMonth int
	Status      RunStatus
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// PaymentStatus enum
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
)

// ParsePaymentStatus rejects unrecognized values instead of defaulting.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(s) {
	case PaymentStatusPending, PaymentStatusPaid:
		return PaymentStatus(s), nil
	}
	return "", ErrUnknownPaymentStatus
}

// Payslip is the computed, persisted pay outcome for one employee for one
// period. NetSalary = round2(basicForPeriod + totalAllowances -
// totalDeductions). Never deleted; PENDING -> PAID exactly once.
type Payslip struct {
	ID               string
	EmployeeID       string
	RunID            string
	BasicSalary      decimal.Decimal
	TotalAllowances  decimal.Decimal
	TotalDeductions  decimal.Decimal
	LatePenalty      decimal.Decimal
	NetSalary        decimal.Decimal
	DaysWorked       decimal.Decimal
	TotalLateMinutes int
	PaymentStatus    PaymentStatus
	PaidAt           *time.Time
	CreatedAt        time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

// Policy is the organization's payroll computation policy.
type Policy struct {
	LatePenaltyPerMinute decimal.Decimal
	HalfDayWeight        decimal.Decimal
	Workers              int
}

// RunFailure records one employee's isolated failure inside a batch run.
type RunFailure struct {
	EmployeeID string `json:"employee_id"`
	Reason     string `json:"reason"`
}

// RunWarning is a computation advisory surfaced for human review, never a
// hard failure.
type RunWarning struct {
	EmployeeID string `json:"employee_id"`
	Message    string `json:"message"`
}

// RunReport is the outcome of one payroll run.
type RunReport struct {
	Run       PayrollRun
	Succeeded []string
	Failed    []RunFailure
	Skipped   []string
	Warnings  []RunWarning
}
