package payroll

import (
	"fmt"

	"github.com/corehive/corehive-backend-go/internal/domain/attendance"
	"github.com/corehive/corehive-backend-go/internal/domain/employee"
	"github.com/corehive/corehive-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

var half = decimal.New(5, -1)

// roundMoney rounds to 2 decimal places with ties going up toward positive
// infinity. Decimal.Round breaks ties away from zero, which gives a different
// result for negative amounts ending in a half cent.
func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Shift(2).Add(half).Floor().Shift(-2)
}

// computePayslip derives one employee's payslip for a period from their salary
// structure and attendance totals. Pure function; persistence and run ids are
// the orchestrator's problem.
//
// The late penalty owns the "latePenalty" deduction slot: whenever the period
// has attendance records the computed value (totalLateMinutes x rate) replaces
// any stored manual entry. A stored entry only applies to periods with no
// attendance data at all.
func computePayslip(
	emp employee.Employee,
	structure payroll.SalaryStructure,
	totals attendance.MonthlyTotals,
	policy payroll.Policy,
) (payroll.Payslip, []payroll.RunWarning) {
	totalAllowances := decimal.Zero
	for _, amount := range structure.Allowances {
		totalAllowances = totalAllowances.Add(amount)
	}

	latePenalty := structure.Deductions[payroll.DeductionKeyLatePenalty]
	if totals.RecordedDays > 0 {
		latePenalty = decimal.NewFromInt(int64(totals.TotalLateMinutes)).Mul(policy.LatePenaltyPerMinute)
	}

	totalDeductions := latePenalty
	for key, amount := range structure.Deductions {
		if key == payroll.DeductionKeyLatePenalty {
			continue
		}
		totalDeductions = totalDeductions.Add(amount)
	}

	basicForPeriod := structure.BasicSalary
	if emp.SalaryType == employee.SalaryTypeDaily {
		basicForPeriod = structure.BasicSalary.Mul(totals.DaysWorkedForPayroll)
	}

	net := roundMoney(basicForPeriod.Add(totalAllowances).Sub(totalDeductions))

	slip := payroll.Payslip{
		EmployeeID:       emp.ID,
		BasicSalary:      roundMoney(basicForPeriod),
		TotalAllowances:  roundMoney(totalAllowances),
		TotalDeductions:  roundMoney(totalDeductions),
		LatePenalty:      roundMoney(latePenalty),
		NetSalary:        net,
		DaysWorked:       totals.DaysWorkedForPayroll,
		TotalLateMinutes: totals.TotalLateMinutes,
		PaymentStatus:    payroll.PaymentStatusPending,
	}

	var warnings []payroll.RunWarning
	if net.IsNegative() {
		warnings = append(warnings, payroll.RunWarning{
			EmployeeID: emp.ID,
			Message:    fmt.Sprintf("net salary %s is negative, review deductions", net.StringFixed(2)),
		})
	}

	return slip, warnings
}
