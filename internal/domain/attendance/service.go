package attendance

import (
	"context"
	"time"
)

// AttendanceService defines business logic for the attendance lifecycle.
type AttendanceService interface {
	// CheckIn creates the day's record, deciding PRESENT vs LATE from the
	// shift policy. Repeated calls for the same day return the existing
	// record unchanged.
	CheckIn(ctx context.Context, employeeID string) (RecordResponse, error)

	// CheckOut stamps the checkout time and locks the record.
	CheckOut(ctx context.Context, employeeID string) (RecordResponse, error)

	// SetStatus is the administrative override. Allowed only while the
	// record is unlocked.
	SetStatus(ctx context.Context, req SetStatusRequest) (RecordResponse, error)

	// TodayRoster lists every active employee with today's attendance
	// state, NOT_CHECKED_IN for those without a record.
	TodayRoster(ctx context.Context) ([]RosterEntry, error)

	// DailySummary counts employees by status for a date, with an explicit
	// NOT_MARKED bucket for active employees without a record.
	DailySummary(ctx context.Context, date time.Time) (DailySummaryResponse, error)

	// MonthlySummary returns the per-day list and totals for one employee
	// and period.
	MonthlySummary(ctx context.Context, employeeID string, year, month int) (MonthlySummaryResponse, error)

	// MonthlyTotals exposes just the aggregate used by payroll.
	MonthlyTotals(ctx context.Context, employeeID string, year, month int) (MonthlyTotals, error)

	// MarkAbsentForDate records ABSENT for active employees with no record
	// on the given date. Used by the end-of-day job.
	MarkAbsentForDate(ctx context.Context, date time.Time) (int, error)
}
