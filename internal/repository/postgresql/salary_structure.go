package postgresql

import (
	"context"
	"errors"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/payroll"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type salaryStructureRepositoryImpl struct {
	db *database.DB
}

func NewSalaryStructureRepository(db *database.DB) payroll.SalaryStructureRepository {
	return &salaryStructureRepositoryImpl{db: db}
}

func (r *salaryStructureRepositoryImpl) Upsert(ctx context.Context, structure *payroll.SalaryStructure) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_structures (employee_id, basic_salary, allowances, deductions, tax_deduction)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (employee_id) DO UPDATE
		SET basic_salary = EXCLUDED.basic_salary,
		    allowances = EXCLUDED.allowances,
		    deductions = EXCLUDED.deductions,
		    tax_deduction = EXCLUDED.tax_deduction,
		    updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	return q.QueryRow(ctx, query,
		structure.EmployeeID,
		structure.BasicSalary,
		structure.Allowances,
		structure.Deductions,
		structure.TaxDeduction,
	).Scan(&structure.ID, &structure.CreatedAt, &structure.UpdatedAt)
}

func (r *salaryStructureRepositoryImpl) GetByEmployee(ctx context.Context, employeeID string) (*payroll.SalaryStructure, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, basic_salary, allowances, deductions, tax_deduction, created_at, updated_at
		FROM salary_structures
		WHERE employee_id = $1
	`

	var s payroll.SalaryStructure
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&s.ID,
		&s.EmployeeID,
		&s.BasicSalary,
		&s.Allowances,
		&s.Deductions,
		&s.TaxDeduction,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, payroll.ErrSalaryStructureNotFound
		}
		return nil, err
	}

	return &s, nil
}
