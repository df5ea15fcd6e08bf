package payroll

import "context"

// SalaryStructureRepository is the keyed lookup for per-employee pay
// configuration.
type SalaryStructureRepository interface {
	GetByEmployeeID(ctx context.Context, employeeID string) (SalaryStructure, error)
	Upsert(ctx context.Context, structure SalaryStructure) (SalaryStructure, error)
}

// PayrollRunRepository persists batch runs.
type PayrollRunRepository interface {
	Create(ctx context.Context, run PayrollRun) (PayrollRun, error)

	// GetLiveByPeriod returns the non-voided run for a period, or
	// ErrRunNotFound.
	GetLiveByPeriod(ctx context.Context, year, month int) (PayrollRun, error)

	// Complete stamps the terminal status and completion time.
	Complete(ctx context.Context, runID string, status RunStatus) error

	// Void marks a run superseded by a forced re-run.
	Void(ctx context.Context, runID string) error
}

// PayslipRepository persists payslips and owns the one-way PENDING -> PAID
// transition.
type PayslipRepository interface {
	// Create inserts a PENDING payslip; unique on (employee_id, run_id).
	Create(ctx context.Context, payslip Payslip) (Payslip, error)

	GetByID(ctx context.Context, id string) (Payslip, error)

	// MarkPaid performs the transition as a single atomic conditional
	// update. A payslip that is already PAID yields ErrAlreadyPaid, a
	// missing one ErrPayslipNotFound.
	MarkPaid(ctx context.Context, id string) (Payslip, error)

	// ListByPeriod returns payslips for a period, excluding those attached
	// to voided runs unless already PAID. Zero year and month list all.
	ListByPeriod(ctx context.Context, year, month int) ([]Payslip, error)

	// ListPaidEmployeeIDsByPeriod returns the employees whose pay for the
	// period is already finalized; forced re-runs must skip them.
	ListPaidEmployeeIDsByPeriod(ctx context.Context, year, month int) ([]string, error)
}
