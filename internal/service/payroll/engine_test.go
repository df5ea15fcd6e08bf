package payroll

import (
	"testing"

	"github.com/corehive/corehive-backend-go/internal/domain/attendance"
	"github.com/corehive/corehive-backend-go/internal/domain/employee"
	"github.com/corehive/corehive-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testPayrollPolicy() payroll.Policy {
	return payroll.Policy{
		LatePenaltyPerMinute: dec("50"),
		HalfDayWeight:        dec("0.5"),
		Workers:              2,
	}
}

func monthlyEmployee(id string) employee.Employee {
	return employee.Employee{ID: id, FullName: "Asha Rao", SalaryType: employee.SalaryTypeMonthly, IsActive: true}
}

func TestComputePayslip_MonthlyWithLatePenalty(t *testing.T) {
	t.Parallel()
	structure := payroll.SalaryStructure{
		EmployeeID:  "e1",
		BasicSalary: dec("50000"),
		Allowances:  map[string]decimal.Decimal{"transport": dec("5000"), "food": dec("3000")},
		Deductions:  map[string]decimal.Decimal{"tax": dec("2000")},
	}
	totals := attendance.MonthlyTotals{
		DaysPresent:          18,
		DaysLate:             2,
		TotalLateMinutes:     40,
		DaysWorkedForPayroll: dec("20"),
		RecordedDays:         20,
	}

	slip, warnings := computePayslip(monthlyEmployee("e1"), structure, totals, testPayrollPolicy())

	assert.True(t, slip.TotalAllowances.Equal(dec("8000")), "allowances = %s", slip.TotalAllowances)
	assert.True(t, slip.LatePenalty.Equal(dec("2000")), "latePenalty = %s", slip.LatePenalty)
	assert.True(t, slip.TotalDeductions.Equal(dec("4000")), "deductions = %s", slip.TotalDeductions)
	assert.True(t, slip.NetSalary.Equal(dec("54000")), "net = %s", slip.NetSalary)
	assert.Equal(t, "54000.00", slip.NetSalary.StringFixed(2))
	assert.Equal(t, payroll.PaymentStatusPending, slip.PaymentStatus)
	assert.Empty(t, warnings)
}

func TestComputePayslip_ComputedPenaltyReplacesStoredEntry(t *testing.T) {
	t.Parallel()
	structure := payroll.SalaryStructure{
		EmployeeID:  "e1",
		BasicSalary: dec("50000"),
		Deductions: map[string]decimal.Decimal{
			"tax":                           dec("2000"),
			payroll.DeductionKeyLatePenalty: dec("9999"),
		},
	}
	totals := attendance.MonthlyTotals{
		TotalLateMinutes:     10,
		DaysWorkedForPayroll: dec("20"),
		RecordedDays:         20,
	}

	slip, _ := computePayslip(monthlyEmployee("e1"), structure, totals, testPayrollPolicy())

	assert.True(t, slip.LatePenalty.Equal(dec("500")), "latePenalty = %s", slip.LatePenalty)
	assert.True(t, slip.TotalDeductions.Equal(dec("2500")), "deductions = %s", slip.TotalDeductions)
}

func TestComputePayslip_StoredPenaltyUsedWithoutAttendanceData(t *testing.T) {
	t.Parallel()
	structure := payroll.SalaryStructure{
		EmployeeID:  "e1",
		BasicSalary: dec("50000"),
		Deductions:  map[string]decimal.Decimal{payroll.DeductionKeyLatePenalty: dec("1500")},
	}
	totals := attendance.MonthlyTotals{DaysWorkedForPayroll: decimal.Zero}

	slip, _ := computePayslip(monthlyEmployee("e1"), structure, totals, testPayrollPolicy())

	assert.True(t, slip.LatePenalty.Equal(dec("1500")), "latePenalty = %s", slip.LatePenalty)
	assert.True(t, slip.NetSalary.Equal(dec("48500")), "net = %s", slip.NetSalary)
}

func TestComputePayslip_DailyProration(t *testing.T) {
	t.Parallel()
	emp := employee.Employee{ID: "e2", SalaryType: employee.SalaryTypeDaily, IsActive: true}
	structure := payroll.SalaryStructure{
		EmployeeID:  "e2",
		BasicSalary: dec("2000"),
	}
	totals := attendance.MonthlyTotals{
		DaysWorkedForPayroll: dec("4.5"),
		RecordedDays:         6,
	}

	slip, warnings := computePayslip(emp, structure, totals, testPayrollPolicy())

	assert.True(t, slip.BasicSalary.Equal(dec("9000")), "basic = %s", slip.BasicSalary)
	assert.True(t, slip.NetSalary.Equal(dec("9000")), "net = %s", slip.NetSalary)
	assert.Empty(t, warnings)
}

func TestComputePayslip_RoundsHalfUp(t *testing.T) {
	t.Parallel()
	emp := employee.Employee{ID: "e3", SalaryType: employee.SalaryTypeDaily, IsActive: true}
	structure := payroll.SalaryStructure{
		EmployeeID:  "e3",
		BasicSalary: dec("333.335"),
	}
	totals := attendance.MonthlyTotals{
		DaysWorkedForPayroll: dec("1"),
		RecordedDays:         1,
	}

	slip, _ := computePayslip(emp, structure, totals, testPayrollPolicy())

	assert.Equal(t, "333.34", slip.NetSalary.StringFixed(2))
}

func TestComputePayslip_NegativeNetRoundsHalfUp(t *testing.T) {
	t.Parallel()
	structure := payroll.SalaryStructure{
		EmployeeID:  "e1",
		BasicSalary: dec("10"),
		Deductions:  map[string]decimal.Decimal{"loan": dec("110.005")},
	}
	totals := attendance.MonthlyTotals{
		DaysWorkedForPayroll: dec("20"),
		RecordedDays:         20,
	}

	slip, warnings := computePayslip(monthlyEmployee("e1"), structure, totals, testPayrollPolicy())

	// Half-up keeps the tie toward positive infinity on the negative side,
	// so -100.005 becomes -100.00 rather than -100.01.
	assert.Equal(t, "-100.00", slip.NetSalary.StringFixed(2))
	assert.Equal(t, "110.01", slip.TotalDeductions.StringFixed(2))
	require.Len(t, warnings, 1)
}

func TestComputePayslip_NegativeNetWarns(t *testing.T) {
	t.Parallel()
	structure := payroll.SalaryStructure{
		EmployeeID:  "e1",
		BasicSalary: dec("1000"),
		Deductions:  map[string]decimal.Decimal{"loan": dec("5000")},
	}
	totals := attendance.MonthlyTotals{
		DaysWorkedForPayroll: dec("20"),
		RecordedDays:         20,
	}

	slip, warnings := computePayslip(monthlyEmployee("e1"), structure, totals, testPayrollPolicy())

	assert.True(t, slip.NetSalary.IsNegative())
	require.Len(t, warnings, 1)
	assert.Equal(t, "e1", warnings[0].EmployeeID)
	assert.Contains(t, warnings[0].Message, "negative")
}
