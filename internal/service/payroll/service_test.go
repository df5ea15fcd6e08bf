package payroll

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/corehive/corehive-backend-go/internal/domain/attendance"
	"github.com/corehive/corehive-backend-go/internal/domain/employee"
	"github.com/corehive/corehive-backend-go/internal/domain/payroll"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== IN-MEMORY FAKES =====

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.ID == id {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetActive(_ context.Context) ([]employee.Employee, error) {
	var active []employee.Employee
	for _, emp := range f.employees {
		if emp.IsActive {
			active = append(active, emp)
		}
	}
	return active, nil
}

func (f *fakeEmployeeRepo) List(_ context.Context) ([]employee.Employee, error) {
	return f.employees, nil
}

type fakeStructureRepo struct {
	mu         sync.Mutex
	structures map[string]payroll.SalaryStructure
}

func (f *fakeStructureRepo) GetByEmployeeID(_ context.Context, employeeID string) (payroll.SalaryStructure, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	structure, ok := f.structures[employeeID]
	if !ok {
		return payroll.SalaryStructure{}, payroll.ErrMissingSalaryStructure
	}
	return structure, nil
}

func (f *fakeStructureRepo) Upsert(_ context.Context, structure payroll.SalaryStructure) (payroll.SalaryStructure, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	structure.UpdatedAt = time.Now()
	f.structures[structure.EmployeeID] = structure
	return structure, nil
}

type fakeRunRepo struct {
	mu   sync.Mutex
	runs map[string]payroll.PayrollRun
}

func (f *fakeRunRepo) Create(_ context.Context, run payroll.PayrollRun) (payroll.PayrollRun, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	run.CreatedAt = time.Now()
	f.runs[run.ID] = run
	return run, nil
}

func (f *fakeRunRepo) GetLiveByPeriod(_ context.Context, year, month int) (payroll.PayrollRun, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, run := range f.runs {
		if run.PeriodYear == year && run.PeriodMonth == month && run.Status != payroll.RunStatusVoided {
			return run, nil
		}
	}
	return payroll.PayrollRun{}, payroll.ErrRunNotFound
}

func (f *fakeRunRepo) Complete(_ context.Context, runID string, status payroll.RunStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	run, ok := f.runs[runID]
	if !ok {
		return payroll.ErrRunNotFound
	}
	now := time.Now()
	run.Status = status
	run.CompletedAt = &now
	f.runs[runID] = run
	return nil
}

func (f *fakeRunRepo) Void(_ context.Context, runID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	run, ok := f.runs[runID]
	if !ok {
		return payroll.ErrRunNotFound
	}
	run.Status = payroll.RunStatusVoided
	f.runs[runID] = run
	return nil
}

type fakePayslipRepo struct {
	mu       sync.Mutex
	payslips map[string]payroll.Payslip
	runs     *fakeRunRepo
	periodOf map[string][2]int // runID -> (year, month)
}

func (f *fakePayslipRepo) Create(_ context.Context, slip payroll.Payslip) (payroll.Payslip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	slip.ID = uuid.NewString()
	slip.CreatedAt = time.Now()
	f.payslips[slip.ID] = slip
	return slip, nil
}

func (f *fakePayslipRepo) GetByID(_ context.Context, id string) (payroll.Payslip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	slip, ok := f.payslips[id]
	if !ok {
		return payroll.Payslip{}, payroll.ErrPayslipNotFound
	}
	return slip, nil
}

func (f *fakePayslipRepo) MarkPaid(_ context.Context, id string) (payroll.Payslip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	slip, ok := f.payslips[id]
	if !ok {
		return payroll.Payslip{}, payroll.ErrPayslipNotFound
	}
	if slip.PaymentStatus == payroll.PaymentStatusPaid {
		return payroll.Payslip{}, payroll.ErrAlreadyPaid
	}
	now := time.Now()
	slip.PaymentStatus = payroll.PaymentStatusPaid
	slip.PaidAt = &now
	f.payslips[id] = slip
	return slip, nil
}

func (f *fakePayslipRepo) ListByPeriod(_ context.Context, year, month int) ([]payroll.Payslip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []payroll.Payslip
	for _, slip := range f.payslips {
		if year != 0 || month != 0 {
			period, ok := f.periodOf[slip.RunID]
			if !ok || period[0] != year || period[1] != month {
				continue
			}
		}
		if f.runVoided(slip.RunID) && slip.PaymentStatus != payroll.PaymentStatusPaid {
			continue
		}
		out = append(out, slip)
	}
	return out, nil
}

func (f *fakePayslipRepo) ListPaidEmployeeIDsByPeriod(_ context.Context, year, month int) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []string
	for _, slip := range f.payslips {
		period, ok := f.periodOf[slip.RunID]
		if ok && period[0] == year && period[1] == month && slip.PaymentStatus == payroll.PaymentStatusPaid {
			ids = append(ids, slip.EmployeeID)
		}
	}
	return ids, nil
}

func (f *fakePayslipRepo) runVoided(runID string) bool {
	if f.runs == nil {
		return false
	}
	f.runs.mu.Lock()
	defer f.runs.mu.Unlock()
	run, ok := f.runs.runs[runID]
	return ok && run.Status == payroll.RunStatusVoided
}

// fakeAttendanceService serves canned monthly totals per employee.
type fakeAttendanceService struct {
	totals map[string]attendance.MonthlyTotals
}

func (f *fakeAttendanceService) MonthlyTotals(_ context.Context, employeeID string, _, _ int) (attendance.MonthlyTotals, error) {
	return f.totals[employeeID], nil
}

func (f *fakeAttendanceService) CheckIn(context.Context, string) (attendance.RecordResponse, error) {
	panic("not used")
}

func (f *fakeAttendanceService) CheckOut(context.Context, string) (attendance.RecordResponse, error) {
	panic("not used")
}

func (f *fakeAttendanceService) SetStatus(context.Context, attendance.SetStatusRequest) (attendance.RecordResponse, error) {
	panic("not used")
}

func (f *fakeAttendanceService) TodayRoster(context.Context) ([]attendance.RosterEntry, error) {
	panic("not used")
}

func (f *fakeAttendanceService) DailySummary(context.Context, time.Time) (attendance.DailySummaryResponse, error) {
	panic("not used")
}

func (f *fakeAttendanceService) MonthlySummary(context.Context, string, int, int) (attendance.MonthlySummaryResponse, error) {
	panic("not used")
}

func (f *fakeAttendanceService) MarkAbsentForDate(context.Context, time.Time) (int, error) {
	panic("not used")
}

// ===== FIXTURE =====

type payrollFixture struct {
	svc         payroll.PayrollService
	runRepo     *fakeRunRepo
	payslipRepo *fakePayslipRepo
	structures  *fakeStructureRepo
	attendance  *fakeAttendanceService
}

func newPayrollFixture(employees ...employee.Employee) *payrollFixture {
	runRepo := &fakeRunRepo{runs: make(map[string]payroll.PayrollRun)}
	payslipRepo := &fakePayslipRepo{
		payslips: make(map[string]payroll.Payslip),
		runs:     runRepo,
		periodOf: make(map[string][2]int),
	}
	structures := &fakeStructureRepo{structures: make(map[string]payroll.SalaryStructure)}
	attendanceSvc := &fakeAttendanceService{totals: make(map[string]attendance.MonthlyTotals)}

	svc := NewPayrollService(
		runRepo,
		payslipRepo,
		structures,
		&fakeEmployeeRepo{employees: employees},
		attendanceSvc,
		testPayrollPolicy(),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	return &payrollFixture{
		svc:         svc,
		runRepo:     runRepo,
		payslipRepo: payslipRepo,
		structures:  structures,
		attendance:  attendanceSvc,
	}
}

func (fx *payrollFixture) seedStructure(employeeID, basic string) {
	fx.structures.structures[employeeID] = payroll.SalaryStructure{
		EmployeeID:  employeeID,
		BasicSalary: dec(basic),
	}
}

func (fx *payrollFixture) trackPeriods(year, month int) {
	fx.runRepo.mu.Lock()
	defer fx.runRepo.mu.Unlock()
	for id, run := range fx.runRepo.runs {
		if run.PeriodYear == year && run.PeriodMonth == month {
			fx.payslipRepo.periodOf[id] = [2]int{year, month}
		}
	}
}

// ===== RUN PAYROLL =====

func TestPayrollService_RunPayroll_Completes(t *testing.T) {
	t.Parallel()
	fx := newPayrollFixture(
		employee.Employee{ID: "e1", SalaryType: employee.SalaryTypeMonthly, IsActive: true},
		employee.Employee{ID: "e2", SalaryType: employee.SalaryTypeMonthly, IsActive: true},
	)
	fx.seedStructure("e1", "50000")
	fx.seedStructure("e2", "40000")

	report, err := fx.svc.RunPayroll(context.Background(), payroll.RunPayrollRequest{Year: 2025, Month: 3})

	require.NoError(t, err)
	assert.Equal(t, string(payroll.RunStatusCompleted), report.Status)
	assert.ElementsMatch(t, []string{"e1", "e2"}, report.Succeeded)
	assert.Empty(t, report.Failed)
	assert.Len(t, fx.payslipRepo.payslips, 2)
}

func TestPayrollService_RunPayroll_DuplicateRejected(t *testing.T) {
	t.Parallel()
	fx := newPayrollFixture(employee.Employee{ID: "e1", SalaryType: employee.SalaryTypeMonthly, IsActive: true})
	fx.seedStructure("e1", "50000")

	_, err := fx.svc.RunPayroll(context.Background(), payroll.RunPayrollRequest{Year: 2025, Month: 3})
	require.NoError(t, err)

	_, err = fx.svc.RunPayroll(context.Background(), payroll.RunPayrollRequest{Year: 2025, Month: 3})

	assert.ErrorIs(t, err, payroll.ErrDuplicateRun)
}

func TestPayrollService_RunPayroll_ForceVoidsAndRecreates(t *testing.T) {
	t.Parallel()
	fx := newPayrollFixture(employee.Employee{ID: "e1", SalaryType: employee.SalaryTypeMonthly, IsActive: true})
	fx.seedStructure("e1", "50000")

	first, err := fx.svc.RunPayroll(context.Background(), payroll.RunPayrollRequest{Year: 2025, Month: 3})
	require.NoError(t, err)

	second, err := fx.svc.RunPayroll(context.Background(), payroll.RunPayrollRequest{Year: 2025, Month: 3, Force: true})

	require.NoError(t, err)
	assert.NotEqual(t, first.RunID, second.RunID)
	assert.Equal(t, payroll.RunStatusVoided, fx.runRepo.runs[first.RunID].Status)
	assert.ElementsMatch(t, []string{"e1"}, second.Succeeded)
}

func TestPayrollService_RunPayroll_ForceSkipsPaidEmployees(t *testing.T) {
	t.Parallel()
	fx := newPayrollFixture(
		employee.Employee{ID: "e1", SalaryType: employee.SalaryTypeMonthly, IsActive: true},
		employee.Employee{ID: "e2", SalaryType: employee.SalaryTypeMonthly, IsActive: true},
	)
	fx.seedStructure("e1", "50000")
	fx.seedStructure("e2", "40000")

	first, err := fx.svc.RunPayroll(context.Background(), payroll.RunPayrollRequest{Year: 2025, Month: 3})
	require.NoError(t, err)
	fx.trackPeriods(2025, 3)

	// Pay e1 before the forced re-run.
	var paidID string
	for id, slip := range fx.payslipRepo.payslips {
		if slip.EmployeeID == "e1" {
			paidID = id
		}
	}
	_, err = fx.svc.MarkPaid(context.Background(), paidID)
	require.NoError(t, err)

	second, err := fx.svc.RunPayroll(context.Background(), payroll.RunPayrollRequest{Year: 2025, Month: 3, Force: true})

	require.NoError(t, err)
	assert.NotEqual(t, first.RunID, second.RunID)
	assert.ElementsMatch(t, []string{"e1"}, second.Skipped)
	assert.ElementsMatch(t, []string{"e2"}, second.Succeeded)
}

func TestPayrollService_RunPayroll_MissingStructureIsolated(t *testing.T) {
	t.Parallel()
	fx := newPayrollFixture(
		employee.Employee{ID: "e1", SalaryType: employee.SalaryTypeMonthly, IsActive: true},
		employee.Employee{ID: "e2", SalaryType: employee.SalaryTypeMonthly, IsActive: true},
	)
	fx.seedStructure("e1", "50000")

	report, err := fx.svc.RunPayroll(context.Background(), payroll.RunPayrollRequest{Year: 2025, Month: 3})

	require.NoError(t, err)
	assert.Equal(t, string(payroll.RunStatusCompletedWithErrors), report.Status)
	assert.ElementsMatch(t, []string{"e1"}, report.Succeeded)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, "e2", report.Failed[0].EmployeeID)
}

func TestPayrollService_RunPayroll_InvalidPeriod(t *testing.T) {
	t.Parallel()
	fx := newPayrollFixture()

	_, err := fx.svc.RunPayroll(context.Background(), payroll.RunPayrollRequest{Year: 2025, Month: 13})

	assert.Error(t, err)
}

// ===== MARK PAID =====

func TestPayrollService_MarkPaid_OnlyOnce(t *testing.T) {
	t.Parallel()
	fx := newPayrollFixture(employee.Employee{ID: "e1", SalaryType: employee.SalaryTypeMonthly, IsActive: true})
	fx.seedStructure("e1", "50000")

	_, err := fx.svc.RunPayroll(context.Background(), payroll.RunPayrollRequest{Year: 2025, Month: 3})
	require.NoError(t, err)

	var slipID string
	for id := range fx.payslipRepo.payslips {
		slipID = id
	}

	paid, err := fx.svc.MarkPaid(context.Background(), slipID)
	require.NoError(t, err)
	assert.Equal(t, string(payroll.PaymentStatusPaid), paid.PaymentStatus)
	require.NotNil(t, paid.PaidAt)

	_, err = fx.svc.MarkPaid(context.Background(), slipID)
	assert.ErrorIs(t, err, payroll.ErrAlreadyPaid)
}

func TestPayrollService_MarkPaid_Unknown(t *testing.T) {
	t.Parallel()
	fx := newPayrollFixture()

	_, err := fx.svc.MarkPaid(context.Background(), uuid.NewString())

	assert.ErrorIs(t, err, payroll.ErrPayslipNotFound)
}

// ===== SALARY STRUCTURE =====

func TestPayrollService_UpdateSalaryStructure_MergesFields(t *testing.T) {
	t.Parallel()
	fx := newPayrollFixture(employee.Employee{ID: "e1", SalaryType: employee.SalaryTypeMonthly, IsActive: true})

	basic := dec("50000")
	allowances := map[string]decimal.Decimal{"transport": dec("5000")}
	_, err := fx.svc.UpdateSalaryStructure(context.Background(), payroll.UpdateSalaryStructureRequest{
		EmployeeID:  "e1",
		BasicSalary: &basic,
		Allowances:  &allowances,
	})
	require.NoError(t, err)

	// A later patch that only touches deductions keeps the rest.
	deductions := map[string]decimal.Decimal{"tax": dec("2000")}
	resp, err := fx.svc.UpdateSalaryStructure(context.Background(), payroll.UpdateSalaryStructureRequest{
		EmployeeID: "e1",
		Deductions: &deductions,
	})

	require.NoError(t, err)
	assert.True(t, resp.BasicSalary.Equal(dec("50000")))
	assert.True(t, resp.Allowances["transport"].Equal(dec("5000")))
	assert.True(t, resp.Deductions["tax"].Equal(dec("2000")))
}

func TestPayrollService_GetSalaryStructure_Missing(t *testing.T) {
	t.Parallel()
	fx := newPayrollFixture(employee.Employee{ID: "e1", SalaryType: employee.SalaryTypeMonthly, IsActive: true})

	_, err := fx.svc.GetSalaryStructure(context.Background(), "e1")

	assert.ErrorIs(t, err, payroll.ErrMissingSalaryStructure)
}
