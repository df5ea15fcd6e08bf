package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records.
type AttendanceRepository interface {
	// Create inserts a record. Under a concurrent first check-in for the
	// same (employee, date) the unique constraint wins and the surviving
	// row is returned instead, so callers stay idempotent.
	Create(ctx context.Context, record AttendanceRecord) (AttendanceRecord, error)

	// GetByEmployeeAndDate returns nil when no record exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*AttendanceRecord, error)

	// GetByEmployeeAndDateForUpdate is GetByEmployeeAndDate with the row
	// locked for the duration of the surrounding transaction.
	GetByEmployeeAndDateForUpdate(ctx context.Context, employeeID string, date time.Time) (*AttendanceRecord, error)

	Update(ctx context.Context, record AttendanceRecord) error

	// ListByDate returns all records for one calendar day, with employee
	// names joined.
	ListByDate(ctx context.Context, date time.Time) ([]AttendanceRecord, error)

	// ListByEmployeeAndPeriod returns an employee's records for one
	// (year, month), ordered by date.
	ListByEmployeeAndPeriod(ctx context.Context, employeeID string, year, month int) ([]AttendanceRecord, error)

	// BulkCreate inserts absence records, skipping (employee, date) pairs
	// that already exist.
	BulkCreate(ctx context.Context, records []AttendanceRecord) error
}
