package payroll

import "context"

// PayrollService defines business logic for payroll runs, payslips, and
// salary structures.
type PayrollService interface {
	// RunPayroll drives the batch for one period. Per-employee failures
	// are isolated into the report; only infrastructure faults abort.
	RunPayroll(ctx context.Context, req RunPayrollRequest) (RunReportResponse, error)

	ListPayslips(ctx context.Context, year, month int) ([]PayslipResponse, error)

	// MarkPaid transitions a payslip PENDING -> PAID exactly once.
	MarkPaid(ctx context.Context, payslipID string) (PayslipResponse, error)

	GetSalaryStructure(ctx context.Context, employeeID string) (SalaryStructureResponse, error)
	UpdateSalaryStructure(ctx context.Context, req UpdateSalaryStructureRequest) (SalaryStructureResponse, error)
}
