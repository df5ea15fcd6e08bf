package attendance

import (
	"github.com/corehive/corehive-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type SetStatusRequest struct {
	EmployeeID  string  `json:"-"`
	Status      string  `json:"status"`
	CheckInTime *string `json:"check_in_time,omitempty"`
}

func (r *SetStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, err := ParseStatus(r.Status); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of PRESENT, LATE, HALF_DAY, ON_LEAVE, ABSENT, WORK_FROM_HOME",
		})
	}

	if r.CheckInTime != nil {
		if _, ok := validator.IsValidDateTime(*r.CheckInTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in_time",
				Message: "check_in_time must be an ISO8601 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RecordResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Date         string  `json:"date"`
	CheckInTime  *string `json:"check_in_time,omitempty"`
	CheckOutTime *string `json:"check_out_time,omitempty"`
	Status       string  `json:"status"`
	LateMinutes  int     `json:"late_minutes"`
	Locked       bool    `json:"locked"`
}

type RosterEntry struct {
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	CheckInTime  *string `json:"check_in_time,omitempty"`
	CheckOutTime *string `json:"check_out_time,omitempty"`
	Status       string  `json:"status"`
}

type DailySummaryResponse struct {
	Date   string         `json:"date"`
	Counts map[string]int `json:"counts"`
}

// MonthlyTotals is the aggregate the payroll engine consumes.
type MonthlyTotals struct {
	DaysPresent          int
	DaysLate             int
	DaysHalfDay          int
	DaysAbsent           int
	DaysOnLeave          int
	DaysWorkFromHome     int
	TotalLateMinutes     int
	DaysWorkedForPayroll decimal.Decimal

	// RecordedDays is the number of attendance records found in the period.
	// Zero means the registry has no data for the month.
	RecordedDays int
}

type MonthlyDayEntry struct {
	Date         string  `json:"date"`
	Status       string  `json:"status"`
	CheckInTime  *string `json:"check_in_time,omitempty"`
	CheckOutTime *string `json:"check_out_time,omitempty"`
	LateMinutes  int     `json:"late_minutes"`
}

type MonthlySummaryResponse struct {
	EmployeeID           string            `json:"employee_id"`
	Year                 int               `json:"year"`
	Month                int               `json:"month"`
	Days                 []MonthlyDayEntry `json:"days"`
	DaysPresent          int               `json:"days_present"`
	DaysLate             int               `json:"days_late"`
	DaysHalfDay          int               `json:"days_half_day"`
	DaysAbsent           int               `json:"days_absent"`
	DaysOnLeave          int               `json:"days_on_leave"`
	DaysWorkFromHome     int               `json:"days_work_from_home"`
	TotalLateMinutes     int               `json:"total_late_minutes"`
	DaysWorkedForPayroll decimal.Decimal   `json:"days_worked_for_payroll"`
}
