package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/corehive/corehive-backend-go/internal/domain/payroll"
	"github.com/corehive/corehive-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type salaryStructureRepository struct {
	db *database.DB
}

func NewSalaryStructureRepository(db *database.DB) payroll.SalaryStructureRepository {
	return &salaryStructureRepository{db: db}
}

// GetByEmployeeID implements payroll.SalaryStructureRepository. Allowances and
// deductions are stored as jsonb maps of component name to amount.
func (s *salaryStructureRepository) GetByEmployeeID(ctx context.Context, employeeID string) (payroll.SalaryStructure, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT employee_id, basic_salary, allowances, deductions, updated_at
		FROM salary_structures
		WHERE employee_id = $1
	`

	var structure payroll.SalaryStructure
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&structure.EmployeeID,
		&structure.BasicSalary,
		&structure.Allowances,
		&structure.Deductions,
		&structure.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.SalaryStructure{}, payroll.ErrMissingSalaryStructure
		}
		return payroll.SalaryStructure{}, fmt.Errorf("failed to get salary structure: %w", err)
	}

	return structure, nil
}

// Upsert implements payroll.SalaryStructureRepository.
func (s *salaryStructureRepository) Upsert(ctx context.Context, structure payroll.SalaryStructure) (payroll.SalaryStructure, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		INSERT INTO salary_structures (employee_id, basic_salary, allowances, deductions, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (employee_id) DO UPDATE
		SET basic_salary = EXCLUDED.basic_salary,
			allowances = EXCLUDED.allowances,
			deductions = EXCLUDED.deductions,
			updated_at = NOW()
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		structure.EmployeeID,
		structure.BasicSalary,
		structure.Allowances,
		structure.Deductions,
	).Scan(&structure.UpdatedAt)
	if err != nil {
		return payroll.SalaryStructure{}, fmt.Errorf("failed to upsert salary structure: %w", err)
	}

	return structure, nil
}
