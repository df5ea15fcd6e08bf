package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/corehive/corehive-backend-go/internal/domain/attendance"
	"github.com/corehive/corehive-backend-go/internal/domain/employee"
	"github.com/corehive/corehive-backend-go/internal/domain/payroll"
	"github.com/corehive/corehive-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type PayrollServiceImpl struct {
	runRepo       payroll.PayrollRunRepository
	payslipRepo   payroll.PayslipRepository
	structureRepo payroll.SalaryStructureRepository
	employeeRepo  employee.EmployeeRepository
	attendanceSvc attendance.AttendanceService
	policy        payroll.Policy
	logger        *slog.Logger
}

func NewPayrollService(
	runRepo payroll.PayrollRunRepository,
	payslipRepo payroll.PayslipRepository,
	structureRepo payroll.SalaryStructureRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceSvc attendance.AttendanceService,
	policy payroll.Policy,
	logger *slog.Logger,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		runRepo:       runRepo,
		payslipRepo:   payslipRepo,
		structureRepo: structureRepo,
		employeeRepo:  employeeRepo,
		attendanceSvc: attendanceSvc,
		policy:        policy,
		logger:        logger,
	}
}

// RunPayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) RunPayroll(ctx context.Context, req payroll.RunPayrollRequest) (payroll.RunReportResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RunReportResponse{}, err
	}

	existing, err := s.runRepo.GetLiveByPeriod(ctx, req.Year, req.Month)
	switch {
	case err == nil:
		if existing.Status == payroll.RunStatusRunning {
			return payroll.RunReportResponse{}, payroll.ErrRunInProgress
		}
		if !req.Force {
			return payroll.RunReportResponse{}, payroll.ErrDuplicateRun
		}
		// Force is void-and-recreate. The voided run's PENDING payslips
		// drop out of reporting; PAID ones stay and their employees are
		// skipped below.
		if err := s.runRepo.Void(ctx, existing.ID); err != nil {
			return payroll.RunReportResponse{}, fmt.Errorf("failed to void previous run: %w", err)
		}
		s.logger.InfoContext(ctx, "voided previous payroll run",
			slog.String("run_id", existing.ID),
			slog.Int("year", req.Year),
			slog.Int("month", req.Month))
	case errors.Is(err, payroll.ErrRunNotFound):
		// First run for the period.
	default:
		return payroll.RunReportResponse{}, fmt.Errorf("failed to look up payroll run: %w", err)
	}

	run, err := s.runRepo.Create(ctx, payroll.PayrollRun{
		ID:          uuid.NewString(),
		PeriodYear:  req.Year,
		PeriodMonth: req.Month,
		Status:      payroll.RunStatusRunning,
	})
	if err != nil {
		return payroll.RunReportResponse{}, fmt.Errorf("failed to create payroll run: %w", err)
	}

	employees, err := s.employeeRepo.GetActive(ctx)
	if err != nil {
		return payroll.RunReportResponse{}, fmt.Errorf("failed to get active employees: %w", err)
	}

	paidIDs, err := s.payslipRepo.ListPaidEmployeeIDsByPeriod(ctx, req.Year, req.Month)
	if err != nil {
		return payroll.RunReportResponse{}, fmt.Errorf("failed to list paid employees: %w", err)
	}
	alreadyPaid := make(map[string]bool, len(paidIDs))
	for _, id := range paidIDs {
		alreadyPaid[id] = true
	}

	s.logger.InfoContext(ctx, "payroll run started",
		slog.String("run_id", run.ID),
		slog.Int("year", req.Year),
		slog.Int("month", req.Month),
		slog.Int("employees", len(employees)))

	report := payroll.RunReport{Run: run}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.policy.Workers)

	for _, emp := range employees {
		emp := emp
		if gctx.Err() != nil {
			break
		}
		if alreadyPaid[emp.ID] {
			mu.Lock()
			report.Skipped = append(report.Skipped, emp.ID)
			mu.Unlock()
			continue
		}

		g.Go(func() error {
			// One employee's failure never takes down the batch; it is
			// recorded and the run moves on.
			slip, warnings, err := s.processEmployee(gctx, run, emp)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				report.Failed = append(report.Failed, payroll.RunFailure{
					EmployeeID: emp.ID,
					Reason:     err.Error(),
				})
				return nil
			}
			report.Succeeded = append(report.Succeeded, slip.EmployeeID)
			report.Warnings = append(report.Warnings, warnings...)
			return nil
		})
	}

	_ = g.Wait()

	if ctx.Err() != nil {
		// Abort leaves the run RUNNING for operator follow-up.
		s.logger.WarnContext(context.WithoutCancel(ctx), "payroll run aborted",
			slog.String("run_id", run.ID))
		return payroll.RunReportResponse{}, ctx.Err()
	}

	finalStatus := payroll.RunStatusCompleted
	if len(report.Failed) > 0 {
		finalStatus = payroll.RunStatusCompletedWithErrors
	}
	if err := s.runRepo.Complete(ctx, run.ID, finalStatus); err != nil {
		return payroll.RunReportResponse{}, fmt.Errorf("failed to complete payroll run: %w", err)
	}
	report.Run.Status = finalStatus

	s.logger.InfoContext(ctx, "payroll run finished",
		slog.String("run_id", run.ID),
		slog.String("status", string(finalStatus)),
		slog.Int("succeeded", len(report.Succeeded)),
		slog.Int("failed", len(report.Failed)),
		slog.Int("skipped", len(report.Skipped)))

	return mapReportToResponse(report), nil
}

func (s *PayrollServiceImpl) processEmployee(ctx context.Context, run payroll.PayrollRun, emp employee.Employee) (payroll.Payslip, []payroll.RunWarning, error) {
	structure, err := s.structureRepo.GetByEmployeeID(ctx, emp.ID)
	if err != nil {
		if errors.Is(err, payroll.ErrMissingSalaryStructure) {
			return payroll.Payslip{}, nil, payroll.ErrMissingSalaryStructure
		}
		return payroll.Payslip{}, nil, fmt.Errorf("failed to load salary structure: %w", err)
	}

	totals, err := s.attendanceSvc.MonthlyTotals(ctx, emp.ID, run.PeriodYear, run.PeriodMonth)
	if err != nil {
		return payroll.Payslip{}, nil, fmt.Errorf("failed to aggregate attendance: %w", err)
	}

	slip, warnings := computePayslip(emp, structure, totals, s.policy)
	slip.RunID = run.ID

	created, err := s.payslipRepo.Create(ctx, slip)
	if err != nil {
		return payroll.Payslip{}, nil, fmt.Errorf("failed to persist payslip: %w", err)
	}

	return created, warnings, nil
}

// ListPayslips implements payroll.PayrollService. Zero year and month list
// every period.
func (s *PayrollServiceImpl) ListPayslips(ctx context.Context, year, month int) ([]payroll.PayslipResponse, error) {
	if (year != 0 || month != 0) && !validator.IsValidPeriod(year, month) {
		return nil, payroll.ErrInvalidPeriod
	}

	payslips, err := s.payslipRepo.ListByPeriod(ctx, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips: %w", err)
	}

	responses := make([]payroll.PayslipResponse, 0, len(payslips))
	for _, slip := range payslips {
		responses = append(responses, mapPayslipToResponse(slip))
	}
	return responses, nil
}

// MarkPaid implements payroll.PayrollService.
func (s *PayrollServiceImpl) MarkPaid(ctx context.Context, payslipID string) (payroll.PayslipResponse, error) {
	slip, err := s.payslipRepo.MarkPaid(ctx, payslipID)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	s.logger.InfoContext(ctx, "payslip marked paid",
		slog.String("payslip_id", slip.ID),
		slog.String("employee_id", slip.EmployeeID))

	return mapPayslipToResponse(slip), nil
}

// GetSalaryStructure implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetSalaryStructure(ctx context.Context, employeeID string) (payroll.SalaryStructureResponse, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return payroll.SalaryStructureResponse{}, err
	}

	structure, err := s.structureRepo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return payroll.SalaryStructureResponse{}, err
	}

	return mapStructureToResponse(structure), nil
}

// UpdateSalaryStructure implements payroll.PayrollService. Missing request
// fields leave the stored value untouched.
func (s *PayrollServiceImpl) UpdateSalaryStructure(ctx context.Context, req payroll.UpdateSalaryStructureRequest) (payroll.SalaryStructureResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.SalaryStructureResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return payroll.SalaryStructureResponse{}, err
	}

	structure, err := s.structureRepo.GetByEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		if !errors.Is(err, payroll.ErrMissingSalaryStructure) {
			return payroll.SalaryStructureResponse{}, err
		}
		structure = payroll.SalaryStructure{EmployeeID: req.EmployeeID}
	}

	if req.BasicSalary != nil {
		structure.BasicSalary = *req.BasicSalary
	}
	if req.Allowances != nil {
		structure.Allowances = *req.Allowances
	}
	if req.Deductions != nil {
		structure.Deductions = *req.Deductions
	}

	updated, err := s.structureRepo.Upsert(ctx, structure)
	if err != nil {
		return payroll.SalaryStructureResponse{}, fmt.Errorf("failed to upsert salary structure: %w", err)
	}

	return mapStructureToResponse(updated), nil
}

func mapReportToResponse(report payroll.RunReport) payroll.RunReportResponse {
	return payroll.RunReportResponse{
		RunID:       report.Run.ID,
		PeriodYear:  report.Run.PeriodYear,
		PeriodMonth: report.Run.PeriodMonth,
		Status:      string(report.Run.Status),
		Succeeded:   report.Succeeded,
		Failed:      report.Failed,
		Skipped:     report.Skipped,
		Warnings:    report.Warnings,
	}
}

func mapPayslipToResponse(slip payroll.Payslip) payroll.PayslipResponse {
	resp := payroll.PayslipResponse{
		ID:               slip.ID,
		EmployeeID:       slip.EmployeeID,
		RunID:            slip.RunID,
		BasicSalary:      slip.BasicSalary,
		TotalAllowances:  slip.TotalAllowances,
		TotalDeductions:  slip.TotalDeductions,
		LatePenalty:      slip.LatePenalty,
		NetSalary:        slip.NetSalary,
		DaysWorked:       slip.DaysWorked,
		TotalLateMinutes: slip.TotalLateMinutes,
		PaymentStatus:    string(slip.PaymentStatus),
		CreatedAt:        slip.CreatedAt.Format(time.RFC3339),
	}
	if slip.EmployeeName != nil {
		resp.EmployeeName = *slip.EmployeeName
	}
	if slip.EmployeeCode != nil {
		resp.EmployeeCode = *slip.EmployeeCode
	}
	if slip.PaidAt != nil {
		paidAt := slip.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &paidAt
	}
	return resp
}

func mapStructureToResponse(structure payroll.SalaryStructure) payroll.SalaryStructureResponse {
	allowances := structure.Allowances
	if allowances == nil {
		allowances = map[string]decimal.Decimal{}
	}
	deductions := structure.Deductions
	if deductions == nil {
		deductions = map[string]decimal.Decimal{}
	}
	return payroll.SalaryStructureResponse{
		EmployeeID:  structure.EmployeeID,
		BasicSalary: structure.BasicSalary,
		Allowances:  allowances,
		Deductions:  deductions,
		UpdatedAt:   structure.UpdatedAt.Format(time.RFC3339),
	}
}
