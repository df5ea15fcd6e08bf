package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)

	// GetActive returns the active roster used by attendance summaries and
	// payroll runs.
	GetActive(ctx context.Context) ([]Employee, error)

	List(ctx context.Context) ([]Employee, error)
}
