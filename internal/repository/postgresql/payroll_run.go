package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/corehive/corehive-backend-go/internal/domain/payroll"
	"github.com/corehive/corehive-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRunRepository struct {
	db *database.DB
}

func NewPayrollRunRepository(db *database.DB) payroll.PayrollRunRepository {
	return &payrollRunRepository{db: db}
}

// Create implements payroll.PayrollRunRepository.
func (p *payrollRunRepository) Create(ctx context.Context, run payroll.PayrollRun) (payroll.PayrollRun, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		INSERT INTO payroll_runs (id, period_year, period_month, status)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query, run.ID, run.PeriodYear, run.PeriodMonth, run.Status).Scan(&run.CreatedAt)
	if err != nil {
		return payroll.PayrollRun{}, fmt.Errorf("failed to create payroll run: %w", err)
	}

	return run, nil
}

// GetLiveByPeriod implements payroll.PayrollRunRepository. Voided runs do not
// count; at most one live run exists per period.
func (p *payrollRunRepository) GetLiveByPeriod(ctx context.Context, year, month int) (payroll.PayrollRun, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT id, period_year, period_month, status, created_at, completed_at
		FROM payroll_runs
		WHERE period_year = $1 AND period_month = $2 AND status <> $3
		ORDER BY created_at DESC
		LIMIT 1
	`

	var run payroll.PayrollRun
	err := q.QueryRow(ctx, query, year, month, payroll.RunStatusVoided).Scan(
		&run.ID, &run.PeriodYear, &run.PeriodMonth, &run.Status, &run.CreatedAt, &run.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRun{}, payroll.ErrRunNotFound
		}
		return payroll.PayrollRun{}, fmt.Errorf("failed to get payroll run: %w", err)
	}

	return run, nil
}

// Complete implements payroll.PayrollRunRepository.
func (p *payrollRunRepository) Complete(ctx context.Context, runID string, status payroll.RunStatus) error {
	q := GetQuerier(ctx, p.db)

	query := `
		UPDATE payroll_runs
		SET status = $1, completed_at = NOW()
		WHERE id = $2
	`

	tag, err := q.Exec(ctx, query, status, runID)
	if err != nil {
		return fmt.Errorf("failed to complete payroll run: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrRunNotFound
	}

	return nil
}

// Void implements payroll.PayrollRunRepository.
func (p *payrollRunRepository) Void(ctx context.Context, runID string) error {
	q := GetQuerier(ctx, p.db)

	query := `UPDATE payroll_runs SET status = $1 WHERE id = $2`

	tag, err := q.Exec(ctx, query, payroll.RunStatusVoided, runID)
	if err != nil {
		return fmt.Errorf("failed to void payroll run: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrRunNotFound
	}

	return nil
}
