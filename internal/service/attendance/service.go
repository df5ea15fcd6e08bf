package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/corehive/corehive-backend-go/internal/domain/attendance"
	"github.com/corehive/corehive-backend-go/internal/domain/employee"
	"github.com/corehive/corehive-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type AttendanceServiceImpl struct {
	tx database.TxRunner
	attendance.AttendanceRepository
	employee.EmployeeRepository
	policy        attendance.Policy
	halfDayWeight decimal.Decimal
	location      *time.Location
	now           func() time.Time
}

func NewAttendanceService(
	tx database.TxRunner,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	policy attendance.Policy,
	halfDayWeight decimal.Decimal,
	location *time.Location,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		tx:                   tx,
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		policy:               policy,
		halfDayWeight:        halfDayWeight,
		location:             location,
		now:                  time.Now,
	}
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format(time.RFC3339)
	return &format
}

// dayOf truncates an instant to its calendar date in the company timezone.
func (a *AttendanceServiceImpl) dayOf(t time.Time) time.Time {
	local := t.In(a.location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// atMidnightUTC normalizes a calendar date to its canonical stored form,
// keeping the date's own year, month and day. Unlike dayOf it performs no
// timezone conversion: the caller is naming a day, not an instant.
func atMidnightUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, employeeID string) (attendance.RecordResponse, error) {
	if _, err := a.EmployeeRepository.GetByID(ctx, employeeID); err != nil {
		return attendance.RecordResponse{}, err
	}

	nowLocal := a.now().In(a.location)
	day := a.dayOf(nowLocal)

	var rec attendance.AttendanceRecord
	err := a.tx.WithTx(ctx, func(ctx context.Context) error {
		existing, err := a.AttendanceRepository.GetByEmployeeAndDateForUpdate(ctx, employeeID, day)
		if err != nil {
			return fmt.Errorf("failed to load attendance record: %w", err)
		}

		// Duplicate client retries are safe: the existing record is
		// returned unchanged.
		if existing != nil {
			if existing.Locked() {
				return attendance.ErrAlreadyLocked
			}
			rec = *existing
			return nil
		}

		status, lateMinutes := a.policy.EvaluateCheckIn(nowLocal)
		checkIn := nowLocal.UTC()

		created, err := a.AttendanceRepository.Create(ctx, attendance.AttendanceRecord{
			EmployeeID:  employeeID,
			Date:        day,
			CheckInTime: &checkIn,
			Status:      status,
			LateMinutes: lateMinutes,
		})
		if err != nil {
			return fmt.Errorf("failed to create attendance record: %w", err)
		}

		rec = created
		return nil
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	return mapRecordToResponse(rec), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, employeeID string) (attendance.RecordResponse, error) {
	if _, err := a.EmployeeRepository.GetByID(ctx, employeeID); err != nil {
		return attendance.RecordResponse{}, err
	}

	nowUTC := a.now().UTC()
	day := a.dayOf(nowUTC)

	var rec attendance.AttendanceRecord
	err := a.tx.WithTx(ctx, func(ctx context.Context) error {
		existing, err := a.AttendanceRepository.GetByEmployeeAndDateForUpdate(ctx, employeeID, day)
		if err != nil {
			return fmt.Errorf("failed to load attendance record: %w", err)
		}
		if existing == nil {
			return attendance.ErrRecordNotFound
		}
		if existing.Locked() {
			return attendance.ErrAlreadyLocked
		}
		if !existing.Status.CanCheckOut() {
			return attendance.ErrInvalidTransition
		}

		checkOut := nowUTC
		if existing.CheckInTime != nil && checkOut.Before(*existing.CheckInTime) {
			checkOut = *existing.CheckInTime
		}
		existing.CheckOutTime = &checkOut

		if err := a.AttendanceRepository.Update(ctx, *existing); err != nil {
			return fmt.Errorf("failed to update attendance record: %w", err)
		}

		rec = *existing
		return nil
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	return mapRecordToResponse(rec), nil
}

// SetStatus implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) SetStatus(ctx context.Context, req attendance.SetStatusRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	newStatus, err := attendance.ParseStatus(req.Status)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	if _, err := a.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return attendance.RecordResponse{}, err
	}

	nowLocal := a.now().In(a.location)
	day := a.dayOf(nowLocal)

	overrideTime := nowLocal
	if req.CheckInTime != nil {
		if parsed, err := time.Parse(time.RFC3339, *req.CheckInTime); err == nil {
			overrideTime = parsed.In(a.location)
		}
	}

	var rec attendance.AttendanceRecord
	err = a.tx.WithTx(ctx, func(ctx context.Context) error {
		existing, err := a.AttendanceRepository.GetByEmployeeAndDateForUpdate(ctx, req.EmployeeID, day)
		if err != nil {
			return fmt.Errorf("failed to load attendance record: %w", err)
		}
		if existing != nil && existing.Locked() {
			return attendance.ErrAlreadyLocked
		}

		target := attendance.AttendanceRecord{
			EmployeeID: req.EmployeeID,
			Date:       day,
		}
		if existing != nil {
			target = *existing
		}

		target.Status = newStatus
		if newStatus.CarriesCheckIn() {
			// A synthetic check-in keeps the record coherent, but an
			// override never invents a checkout.
			if target.CheckInTime == nil {
				syntheticUTC := overrideTime.UTC()
				target.CheckInTime = &syntheticUTC
			}
			if newStatus == attendance.StatusLate {
				target.LateMinutes = a.policy.LateMinutes(target.CheckInTime.In(a.location))
			} else {
				target.LateMinutes = 0
			}
		} else {
			// ABSENT and ON_LEAVE never carry a check-in.
			target.CheckInTime = nil
			target.LateMinutes = 0
		}

		if existing == nil {
			created, err := a.AttendanceRepository.Create(ctx, target)
			if err != nil {
				return fmt.Errorf("failed to create attendance record: %w", err)
			}
			rec = created
			return nil
		}

		if err := a.AttendanceRepository.Update(ctx, target); err != nil {
			return fmt.Errorf("failed to update attendance record: %w", err)
		}
		rec = target
		return nil
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	return mapRecordToResponse(rec), nil
}

// TodayRoster implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) TodayRoster(ctx context.Context) ([]attendance.RosterEntry, error) {
	day := a.dayOf(a.now())

	employees, err := a.EmployeeRepository.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get active employees: %w", err)
	}

	records, err := a.AttendanceRepository.ListByDate(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}

	byEmployee := make(map[string]attendance.AttendanceRecord, len(records))
	for _, rec := range records {
		byEmployee[rec.EmployeeID] = rec
	}

	roster := make([]attendance.RosterEntry, 0, len(employees))
	for _, emp := range employees {
		entry := attendance.RosterEntry{
			EmployeeID:   emp.ID,
			EmployeeName: emp.FullName,
			Status:       string(attendance.StatusNotCheckedIn),
		}
		if rec, ok := byEmployee[emp.ID]; ok {
			entry.Status = string(rec.Status)
			entry.CheckInTime = timePtrToString(rec.CheckInTime)
			entry.CheckOutTime = timePtrToString(rec.CheckOutTime)
		}
		roster = append(roster, entry)
	}

	return roster, nil
}

// DailySummary implements attendance.AttendanceService. The date argument is
// a calendar date; only its year, month and day are used.
func (a *AttendanceServiceImpl) DailySummary(ctx context.Context, date time.Time) (attendance.DailySummaryResponse, error) {
	day := atMidnightUTC(date)

	employees, err := a.EmployeeRepository.GetActive(ctx)
	if err != nil {
		return attendance.DailySummaryResponse{}, fmt.Errorf("failed to get active employees: %w", err)
	}

	records, err := a.AttendanceRepository.ListByDate(ctx, day)
	if err != nil {
		return attendance.DailySummaryResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	return attendance.DailySummaryResponse{
		Date:   day.Format("2006-01-02"),
		Counts: summarizeDay(employees, records),
	}, nil
}

// MonthlySummary implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MonthlySummary(ctx context.Context, employeeID string, year, month int) (attendance.MonthlySummaryResponse, error) {
	if _, err := a.EmployeeRepository.GetByID(ctx, employeeID); err != nil {
		return attendance.MonthlySummaryResponse{}, err
	}

	records, err := a.AttendanceRepository.ListByEmployeeAndPeriod(ctx, employeeID, year, month)
	if err != nil {
		return attendance.MonthlySummaryResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	totals := summarizePeriod(records, a.halfDayWeight)

	days := make([]attendance.MonthlyDayEntry, 0, len(records))
	for _, rec := range records {
		days = append(days, attendance.MonthlyDayEntry{
			Date:         rec.Date.Format("2006-01-02"),
			Status:       string(rec.Status),
			CheckInTime:  timePtrToString(rec.CheckInTime),
			CheckOutTime: timePtrToString(rec.CheckOutTime),
			LateMinutes:  rec.LateMinutes,
		})
	}

	return attendance.MonthlySummaryResponse{
		EmployeeID:           employeeID,
		Year:                 year,
		Month:                month,
		Days:                 days,
		DaysPresent:          totals.DaysPresent,
		DaysLate:             totals.DaysLate,
		DaysHalfDay:          totals.DaysHalfDay,
		DaysAbsent:           totals.DaysAbsent,
		DaysOnLeave:          totals.DaysOnLeave,
		DaysWorkFromHome:     totals.DaysWorkFromHome,
		TotalLateMinutes:     totals.TotalLateMinutes,
		DaysWorkedForPayroll: totals.DaysWorkedForPayroll,
	}, nil
}

// MonthlyTotals implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MonthlyTotals(ctx context.Context, employeeID string, year, month int) (attendance.MonthlyTotals, error) {
	records, err := a.AttendanceRepository.ListByEmployeeAndPeriod(ctx, employeeID, year, month)
	if err != nil {
		return attendance.MonthlyTotals{}, fmt.Errorf("failed to list attendance records: %w", err)
	}
	return summarizePeriod(records, a.halfDayWeight), nil
}

// MarkAbsentForDate implements attendance.AttendanceService. Like
// DailySummary it treats date as a calendar date, not an instant.
func (a *AttendanceServiceImpl) MarkAbsentForDate(ctx context.Context, date time.Time) (int, error) {
	day := atMidnightUTC(date)

	employees, err := a.EmployeeRepository.GetActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get active employees: %w", err)
	}

	records, err := a.AttendanceRepository.ListByDate(ctx, day)
	if err != nil {
		return 0, fmt.Errorf("failed to list attendance records: %w", err)
	}

	marked := make(map[string]bool, len(records))
	for _, rec := range records {
		marked[rec.EmployeeID] = true
	}

	var absences []attendance.AttendanceRecord
	for _, emp := range employees {
		if marked[emp.ID] {
			continue
		}
		absences = append(absences, attendance.AttendanceRecord{
			EmployeeID: emp.ID,
			Date:       day,
			Status:     attendance.StatusAbsent,
		})
	}

	if len(absences) == 0 {
		return 0, nil
	}

	if err := a.AttendanceRepository.BulkCreate(ctx, absences); err != nil {
		return 0, fmt.Errorf("failed to create absence records: %w", err)
	}

	return len(absences), nil
}

func mapRecordToResponse(rec attendance.AttendanceRecord) attendance.RecordResponse {
	return attendance.RecordResponse{
		ID:           rec.ID,
		EmployeeID:   rec.EmployeeID,
		EmployeeName: rec.EmployeeName,
		Date:         rec.Date.Format("2006-01-02"),
		CheckInTime:  timePtrToString(rec.CheckInTime),
		CheckOutTime: timePtrToString(rec.CheckOutTime),
		Status:       string(rec.Status),
		LateMinutes:  rec.LateMinutes,
		Locked:       rec.Locked(),
	}
}
