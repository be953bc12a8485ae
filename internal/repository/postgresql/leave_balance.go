package postgresql

import (
	"context"
	"errors"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/leave"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.BalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

func (r *leaveBalanceRepositoryImpl) Create(ctx context.Context, balance *leave.LeaveBalance) error {
	q := GetQuerier(ctx, r.db)

	balance.RemainingLeaves = leave.Remaining(balance.TotalLeaves, balance.UsedLeaves)

	query := `
		INSERT INTO leave_balances (employee_id, year, leave_type, total_leaves, used_leaves, remaining_leaves)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		balance.EmployeeID,
		balance.Year,
		balance.LeaveType,
		balance.TotalLeaves,
		balance.UsedLeaves,
		balance.RemainingLeaves,
	).Scan(&balance.ID, &balance.CreatedAt, &balance.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return leave.ErrDuplicateBalance
		}
		return err
	}

	return nil
}

func (r *leaveBalanceRepositoryImpl) GetByEmployeeYear(ctx context.Context, employeeID string, year int) ([]leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, year, leave_type, total_leaves, used_leaves, remaining_leaves, created_at, updated_at
		FROM leave_balances
		WHERE employee_id = $1 AND year = $2
		ORDER BY leave_type
	`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	balances := []leave.LeaveBalance{}
	for rows.Next() {
		var b leave.LeaveBalance
		err := rows.Scan(
			&b.ID,
			&b.EmployeeID,
			&b.Year,
			&b.LeaveType,
			&b.TotalLeaves,
			&b.UsedLeaves,
			&b.RemainingLeaves,
			&b.CreatedAt,
			&b.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}

	return balances, rows.Err()
}

func (r *leaveBalanceRepositoryImpl) GetByEmployeeYearType(ctx context.Context, employeeID string, year int, leaveType leave.LeaveType) (*leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, year, leave_type, total_leaves, used_leaves, remaining_leaves, created_at, updated_at
		FROM leave_balances
		WHERE employee_id = $1 AND year = $2 AND leave_type = $3
	`

	var b leave.LeaveBalance
	err := q.QueryRow(ctx, query, employeeID, year, leaveType).Scan(
		&b.ID,
		&b.EmployeeID,
		&b.Year,
		&b.LeaveType,
		&b.TotalLeaves,
		&b.UsedLeaves,
		&b.RemainingLeaves,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, leave.ErrBalanceNotFound
		}
		return nil, err
	}

	return &b, nil
}

// Debit increments used_leaves and recomputes remaining_leaves in one
// statement, so concurrent approvals never interleave a stale read.
func (r *leaveBalanceRepositoryImpl) Debit(ctx context.Context, employeeID string, year int, leaveType leave.LeaveType, days float64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET used_leaves = used_leaves + $4,
		    remaining_leaves = total_leaves - (used_leaves + $4),
		    updated_at = NOW()
		WHERE employee_id = $1 AND year = $2 AND leave_type = $3
	`

	commandTag, err := q.Exec(ctx, query, employeeID, year, leaveType, days)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return leave.ErrBalanceNotFound
	}

	return nil
}
