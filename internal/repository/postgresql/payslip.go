package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/corehive/corehive-backend-go/internal/domain/payroll"
	"github.com/corehive/corehive-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payslipRepository struct {
	db *database.DB
}

func NewPayslipRepository(db *database.DB) payroll.PayslipRepository {
	return &payslipRepository{db: db}
}

// Create implements payroll.PayslipRepository.
func (p *payslipRepository) Create(ctx context.Context, slip payroll.Payslip) (payroll.Payslip, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		INSERT INTO payslips (
			employee_id, run_id, basic_salary, total_allowances, total_deductions,
			late_penalty, net_salary, days_worked, total_late_minutes, payment_status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		) RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		slip.EmployeeID,
		slip.RunID,
		slip.BasicSalary,
		slip.TotalAllowances,
		slip.TotalDeductions,
		slip.LatePenalty,
		slip.NetSalary,
		slip.DaysWorked,
		slip.TotalLateMinutes,
		slip.PaymentStatus,
	).Scan(&slip.ID, &slip.CreatedAt)
	if err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to create payslip: %w", err)
	}

	return slip, nil
}

const payslipColumns = `
	p.id, p.employee_id, p.run_id, p.basic_salary, p.total_allowances,
	p.total_deductions, p.late_penalty, p.net_salary, p.days_worked,
	p.total_late_minutes, p.payment_status, p.paid_at, p.created_at,
	e.full_name, e.employee_code
`

func scanPayslip(row pgx.Row) (payroll.Payslip, error) {
	var slip payroll.Payslip
	err := row.Scan(
		&slip.ID, &slip.EmployeeID, &slip.RunID, &slip.BasicSalary, &slip.TotalAllowances,
		&slip.TotalDeductions, &slip.LatePenalty, &slip.NetSalary, &slip.DaysWorked,
		&slip.TotalLateMinutes, &slip.PaymentStatus, &slip.PaidAt, &slip.CreatedAt,
		&slip.EmployeeName, &slip.EmployeeCode,
	)
	return slip, err
}

// GetByID implements payroll.PayslipRepository.
func (p *payslipRepository) GetByID(ctx context.Context, id string) (payroll.Payslip, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT ` + payslipColumns + `
		FROM payslips p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.id = $1
	`

	slip, err := scanPayslip(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payslip{}, payroll.ErrPayslipNotFound
		}
		return payroll.Payslip{}, fmt.Errorf("failed to get payslip: %w", err)
	}

	return slip, nil
}

// MarkPaid implements payroll.PayslipRepository. The PENDING -> PAID
// transition is a single conditional update; under concurrent calls exactly
// one wins and the rest observe ErrAlreadyPaid.
func (p *payslipRepository) MarkPaid(ctx context.Context, id string) (payroll.Payslip, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		UPDATE payslips
		SET payment_status = $1, paid_at = NOW()
		WHERE id = $2 AND payment_status = $3
	`

	tag, err := q.Exec(ctx, query, payroll.PaymentStatusPaid, id, payroll.PaymentStatusPending)
	if err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to mark payslip paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		slip, getErr := p.GetByID(ctx, id)
		if getErr != nil {
			return payroll.Payslip{}, getErr
		}
		if slip.PaymentStatus == payroll.PaymentStatusPaid {
			return payroll.Payslip{}, payroll.ErrAlreadyPaid
		}
		return payroll.Payslip{}, payroll.ErrPayslipNotFound
	}

	return p.GetByID(ctx, id)
}

// ListByPeriod implements payroll.PayslipRepository. Payslips of voided runs
// are hidden unless already PAID; zero year and month list every period.
func (p *payslipRepository) ListByPeriod(ctx context.Context, year, month int) ([]payroll.Payslip, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT ` + payslipColumns + `
		FROM payslips p
		JOIN employees e ON e.id = p.employee_id
		JOIN payroll_runs r ON r.id = p.run_id
		WHERE (r.status <> $1 OR p.payment_status = $2)
		  AND ($3 = 0 OR r.period_year = $3)
		  AND ($4 = 0 OR r.period_month = $4)
		ORDER BY r.period_year DESC, r.period_month DESC, e.full_name
	`

	rows, err := q.Query(ctx, query, payroll.RunStatusVoided, payroll.PaymentStatusPaid, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query payslips: %w", err)
	}
	defer rows.Close()

	var payslips []payroll.Payslip
	for rows.Next() {
		slip, err := scanPayslip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payslip: %w", err)
		}
		payslips = append(payslips, slip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read payslips: %w", err)
	}

	return payslips, nil
}

// ListPaidEmployeeIDsByPeriod implements payroll.PayslipRepository.
func (p *payslipRepository) ListPaidEmployeeIDsByPeriod(ctx context.Context, year, month int) ([]string, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT DISTINCT p.employee_id
		FROM payslips p
		JOIN payroll_runs r ON r.id = p.run_id
		WHERE r.period_year = $1 AND r.period_month = $2 AND p.payment_status = $3
	`

	rows, err := q.Query(ctx, query, year, month, payroll.PaymentStatusPaid)
	if err != nil {
		return nil, fmt.Errorf("failed to query paid employees: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan employee id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read paid employees: %w", err)
	}

	return ids, nil
}
