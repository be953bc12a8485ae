package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/payroll"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type payrollRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.Repository {
	return &payrollRepositoryImpl{db: db}
}

const payrollColumns = `
	p.id, p.employee_id, p.month, p.year, p.basic_salary, p.allowances, p.deductions,
	p.gross_salary, p.tax_deduction, p.net_salary, p.payment_date, p.status, p.notes,
	p.created_at, p.updated_at,
	e.first_name || ' ' || e.last_name AS employee_name, e.employee_code`

const payrollJoins = `
	FROM payroll_records p
	INNER JOIN employees e ON p.employee_id = e.id`

func scanPayrollRecord(row pgx.Row, p *payroll.PayrollRecord) error {
	return row.Scan(
		&p.ID,
		&p.EmployeeID,
		&p.Month,
		&p.Year,
		&p.BasicSalary,
		&p.Allowances,
		&p.Deductions,
		&p.GrossSalary,
		&p.TaxDeduction,
		&p.NetSalary,
		&p.PaymentDate,
		&p.Status,
		&p.Notes,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.EmployeeName,
		&p.EmployeeCode,
	)
}

func (r *payrollRepositoryImpl) Create(ctx context.Context, record *payroll.PayrollRecord) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_records (employee_id, month, year, basic_salary, allowances, deductions,
			gross_salary, tax_deduction, net_salary, payment_date, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.EmployeeID,
		record.Month,
		record.Year,
		record.BasicSalary,
		record.Allowances,
		record.Deductions,
		record.GrossSalary,
		record.TaxDeduction,
		record.NetSalary,
		record.PaymentDate,
		record.Status,
		record.Notes,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return payroll.ErrDuplicatePayroll
		}
		return err
	}

	return nil
}

func (r *payrollRepositoryImpl) GetByID(ctx context.Context, id string) (*payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + payrollColumns + payrollJoins + `
	WHERE p.id = $1`

	var p payroll.PayrollRecord
	if err := scanPayrollRecord(q.QueryRow(ctx, query, id), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, payroll.ErrPayrollNotFound
		}
		return nil, err
	}

	return &p, nil
}

func (r *payrollRepositoryImpl) ExistsForPeriod(ctx context.Context, employeeID string, month, year int) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM payroll_records
			WHERE employee_id = $1 AND month = $2 AND year = $3
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, employeeID, month, year).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *payrollRepositoryImpl) Update(ctx context.Context, record *payroll.PayrollRecord) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_records
		SET basic_salary = $2,
		    allowances = $3,
		    deductions = $4,
		    gross_salary = $5,
		    tax_deduction = $6,
		    net_salary = $7,
		    payment_date = $8,
		    status = $9,
		    notes = $10,
		    updated_at = NOW()
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query,
		record.ID,
		record.BasicSalary,
		record.Allowances,
		record.Deductions,
		record.GrossSalary,
		record.TaxDeduction,
		record.NetSalary,
		record.PaymentDate,
		record.Status,
		record.Notes,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return payroll.ErrPayrollNotFound
	}

	return nil
}

func (r *payrollRepositoryImpl) List(ctx context.Context, filter payroll.ListPayrollFilter) ([]payroll.PayrollRecord, int, error) {
	q := GetQuerier(ctx, r.db)

	where := "WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != "" {
		where += fmt.Sprintf(" AND p.employee_id = $%d", argIdx)
		args = append(args, filter.EmployeeID)
		argIdx++
	}
	if filter.Month != 0 {
		where += fmt.Sprintf(" AND p.month = $%d", argIdx)
		args = append(args, filter.Month)
		argIdx++
	}
	if filter.Year != 0 {
		where += fmt.Sprintf(" AND p.year = $%d", argIdx)
		args = append(args, filter.Year)
		argIdx++
	}
	if filter.Status != "" {
		where += fmt.Sprintf(" AND p.status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}

	countQuery := `SELECT COUNT(*)` + payrollJoins + `
	` + where
	var total int
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT` + payrollColumns + payrollJoins + `
	` + where + fmt.Sprintf(" ORDER BY p.year DESC, p.month DESC, e.employee_code LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	records := []payroll.PayrollRecord{}
	for rows.Next() {
		var p payroll.PayrollRecord
		if err := scanPayrollRecord(rows, &p); err != nil {
			return nil, 0, err
		}
		records = append(records, p)
	}

	return records, total, rows.Err()
}

func (r *payrollRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, limit int) ([]payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + payrollColumns + payrollJoins + `
	WHERE p.employee_id = $1
	ORDER BY p.year DESC, p.month DESC
	LIMIT $2`

	rows, err := q.Query(ctx, query, employeeID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []payroll.PayrollRecord{}
	for rows.Next() {
		var p payroll.PayrollRecord
		if err := scanPayrollRecord(rows, &p); err != nil {
			return nil, err
		}
		records = append(records, p)
	}

	return records, rows.Err()
}

// Stats COALESCEs every aggregate so an empty period yields zeros, not
// NULL scan failures.
func (r *payrollRepositoryImpl) Stats(ctx context.Context, month, year int) (*payroll.PayrollStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(gross_salary), 0),
		       COALESCE(SUM(net_salary), 0),
		       COALESCE(SUM(tax_deduction), 0),
		       COUNT(*)
		FROM payroll_records
		WHERE month = $1 AND year = $2
	`

	stats := &payroll.PayrollStats{Month: month, Year: year}
	err := q.QueryRow(ctx, query, month, year).Scan(
		&stats.TotalGross,
		&stats.TotalNet,
		&stats.TotalTax,
		&stats.Count,
	)
	if err != nil {
		return nil, err
	}

	return stats, nil
}
