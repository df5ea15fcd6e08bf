package attendance

import (
	"github.com/corehive/corehive-backend-go/internal/domain/attendance"
	"github.com/corehive/corehive-backend-go/internal/domain/employee"
	"github.com/shopspring/decimal"
)

// summarizeDay counts records per status across the active roster. Employees
// without a record for the day land in the NOT_MARKED bucket so the count
// always covers the whole roster.
func summarizeDay(employees []employee.Employee, records []attendance.AttendanceRecord) map[string]int {
	counts := map[string]int{
		string(attendance.StatusPresent):      0,
		string(attendance.StatusLate):         0,
		string(attendance.StatusHalfDay):      0,
		string(attendance.StatusOnLeave):      0,
		string(attendance.StatusAbsent):       0,
		string(attendance.StatusWorkFromHome): 0,
		attendance.SummaryKeyNotMarked:        0,
	}

	recorded := make(map[string]attendance.Status, len(records))
	for _, rec := range records {
		recorded[rec.EmployeeID] = rec.Status
	}

	for _, emp := range employees {
		status, ok := recorded[emp.ID]
		if !ok {
			counts[attendance.SummaryKeyNotMarked]++
			continue
		}
		counts[string(status)]++
	}

	return counts
}

// summarizePeriod reduces one employee's records for a period into the totals
// payroll consumes. PRESENT, LATE and WORK_FROM_HOME each contribute a full
// day to DaysWorkedForPayroll; HALF_DAY contributes halfDayWeight.
func summarizePeriod(records []attendance.AttendanceRecord, halfDayWeight decimal.Decimal) attendance.MonthlyTotals {
	totals := attendance.MonthlyTotals{
		DaysWorkedForPayroll: decimal.Zero,
	}

	one := decimal.NewFromInt(1)
	for _, rec := range records {
		totals.RecordedDays++
		switch rec.Status {
		case attendance.StatusPresent:
			totals.DaysPresent++
			totals.DaysWorkedForPayroll = totals.DaysWorkedForPayroll.Add(one)
		case attendance.StatusLate:
			totals.DaysLate++
			totals.TotalLateMinutes += rec.LateMinutes
			totals.DaysWorkedForPayroll = totals.DaysWorkedForPayroll.Add(one)
		case attendance.StatusWorkFromHome:
			totals.DaysWorkFromHome++
			totals.DaysWorkedForPayroll = totals.DaysWorkedForPayroll.Add(one)
		case attendance.StatusHalfDay:
			totals.DaysHalfDay++
			totals.DaysWorkedForPayroll = totals.DaysWorkedForPayroll.Add(halfDayWeight)
		case attendance.StatusAbsent:
			totals.DaysAbsent++
		case attendance.StatusOnLeave:
			totals.DaysOnLeave++
		}
	}

	return totals
}
