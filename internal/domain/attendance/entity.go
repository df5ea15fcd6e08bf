package attendance

import (
	"time"
)

// AttendanceRecord is one employee's attendance state for one calendar day.
// At most one record exists per (employee, date). Once CheckOutTime is set
// the record is locked: status and check-in time become immutable.
type AttendanceRecord struct {
	ID           string
	EmployeeID   string
	Date         time.Time
	CheckInTime  *time.Time
	CheckOutTime *time.Time
	Status       Status
	LateMinutes  int
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined fields
	EmployeeName *string
}

// Locked reports whether the record has been frozen by a checkout.
func (r *AttendanceRecord) Locked() bool {
	return r.CheckOutTime != nil
}

type Status string

const (
	// StatusNotCheckedIn is the implicit state of an employee with no record
	// for a date. It is never stored; roster views report it explicitly.
	StatusNotCheckedIn Status = "NOT_CHECKED_IN"

	StatusPresent      Status = "PRESENT"
	StatusLate         Status = "LATE"
	StatusHalfDay      Status = "HALF_DAY"
	StatusOnLeave      Status = "ON_LEAVE"
	StatusAbsent       Status = "ABSENT"
	StatusWorkFromHome Status = "WORK_FROM_HOME"
)

// SummaryKeyNotMarked is the daily-summary bucket for active employees with
// no record at all for the date. Deliberately distinct from ABSENT.
const SummaryKeyNotMarked = "NOT_MARKED"

// ParseStatus accepts only storable statuses. Unrecognized values are an
// error, never a silent default.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPresent, StatusLate, StatusHalfDay, StatusOnLeave, StatusAbsent, StatusWorkFromHome:
		return Status(s), nil
	}
	return "", ErrUnknownStatus
}

// CanCheckOut reports whether a record in the given status may be checked
// out. ABSENT and ON_LEAVE never carry a checkout.
func (s Status) CanCheckOut() bool {
	switch s {
	case StatusPresent, StatusLate, StatusHalfDay, StatusWorkFromHome:
		return true
	}
	return false
}

// CarriesCheckIn reports whether the status is a working status that keeps a
// check-in time. ABSENT and ON_LEAVE clear it.
func (s Status) CarriesCheckIn() bool {
	switch s {
	case StatusPresent, StatusLate, StatusHalfDay, StatusWorkFromHome:
		return true
	}
	return false
}

// Policy is the organization's check-in policy: shift start plus a grace
// window that separates PRESENT from LATE.
type Policy struct {
	ShiftStartHour   int
	ShiftStartMinute int
	GracePeriod      time.Duration
}

// ShiftStartOn returns the shift start instant for the calendar day of t, in
// t's location.
func (p Policy) ShiftStartOn(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), p.ShiftStartHour, p.ShiftStartMinute, 0, 0, t.Location())
}

// EvaluateCheckIn decides PRESENT vs LATE for a check-in at now, and how many
// whole minutes past the grace limit it was.
func (p Policy) EvaluateCheckIn(now time.Time) (Status, int) {
	late := p.LateMinutes(now)
	if late > 0 {
		return StatusLate, late
	}
	return StatusPresent, 0
}

// LateMinutes returns max(0, now - (shiftStart + grace)) in whole minutes.
func (p Policy) LateMinutes(now time.Time) int {
	graceLimit := p.ShiftStartOn(now).Add(p.GracePeriod)
	if !now.After(graceLimit) {
		return 0
	}
	return int(now.Sub(graceLimit).Minutes())
}
