package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/leave"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.RequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `
	lr.id, lr.employee_id, lr.leave_type, lr.start_date, lr.end_date, lr.duration,
	lr.reason, lr.status, lr.approver_id, lr.approver_comments, lr.applied_at,
	lr.reviewed_at, lr.created_at, lr.updated_at,
	e.first_name || ' ' || e.last_name AS employee_name, e.email,
	a.first_name || ' ' || a.last_name AS approver_name`

const leaveRequestJoins = `
	FROM leave_requests lr
	INNER JOIN employees e ON lr.employee_id = e.id
	LEFT JOIN employees a ON lr.approver_id = a.id`

func scanLeaveRequest(row pgx.Row, lr *leave.LeaveRequest) error {
	return row.Scan(
		&lr.ID,
		&lr.EmployeeID,
		&lr.LeaveType,
		&lr.StartDate,
		&lr.EndDate,
		&lr.Duration,
		&lr.Reason,
		&lr.Status,
		&lr.ApproverID,
		&lr.ApproverComments,
		&lr.AppliedAt,
		&lr.ReviewedAt,
		&lr.CreatedAt,
		&lr.UpdatedAt,
		&lr.EmployeeName,
		&lr.EmployeeEmail,
		&lr.ApproverName,
	)
}

func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request *leave.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (employee_id, leave_type, start_date, end_date, duration, reason, status, applied_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	return q.QueryRow(ctx, query,
		request.EmployeeID,
		request.LeaveType,
		request.StartDate,
		request.EndDate,
		request.Duration,
		request.Reason,
		request.Status,
		request.AppliedAt,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)
}

func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (*leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + leaveRequestColumns + leaveRequestJoins + `
	WHERE lr.id = $1`

	var lr leave.LeaveRequest
	if err := scanLeaveRequest(q.QueryRow(ctx, query, id), &lr); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, leave.ErrLeaveRequestNotFound
		}
		return nil, err
	}

	return &lr, nil
}

// HasOverlapping uses inclusive bounds on both ends: a request ending on
// day X overlaps one starting on day X.
func (r *leaveRequestRepositoryImpl) HasOverlapping(ctx context.Context, employeeID string, startDate, endDate time.Time, excludeID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM leave_requests
			WHERE employee_id = $1
			  AND status IN ('pending', 'approved')
			  AND start_date <= $3
			  AND end_date >= $2
			  AND ($4 = '' OR id::text <> $4)
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, employeeID, startDate, endDate, excludeID).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

// UpdateStatusIfPending is the compare-and-swap transition guard: the
// WHERE clause only matches while the row is still pending, so two
// concurrent reviews cannot both succeed.
func (r *leaveRequestRepositoryImpl) UpdateStatusIfPending(ctx context.Context, id string, status leave.LeaveStatus, approverID string, comments *string, reviewedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $2,
		    approver_id = $3,
		    approver_comments = $4,
		    reviewed_at = $5,
		    updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	commandTag, err := q.Exec(ctx, query, id, status, approverID, comments, reviewedAt)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		// Distinguish a missing row from a lost race.
		var exists bool
		if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM leave_requests WHERE id = $1)`, id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return leave.ErrLeaveRequestNotFound
		}
		return leave.ErrAlreadyReviewed
	}

	return nil
}

func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.ListLeaveFilter) ([]leave.LeaveRequest, int, error) {
	q := GetQuerier(ctx, r.db)

	where := "WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != "" {
		where += fmt.Sprintf(" AND lr.employee_id = $%d", argIdx)
		args = append(args, filter.EmployeeID)
		argIdx++
	}
	if filter.Status != "" {
		where += fmt.Sprintf(" AND lr.status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.From != nil {
		where += fmt.Sprintf(" AND lr.end_date >= $%d", argIdx)
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil {
		where += fmt.Sprintf(" AND lr.start_date <= $%d", argIdx)
		args = append(args, *filter.To)
		argIdx++
	}

	countQuery := `SELECT COUNT(*)` + leaveRequestJoins + `
	` + where
	var total int
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT` + leaveRequestColumns + leaveRequestJoins + `
	` + where + fmt.Sprintf(" ORDER BY lr.applied_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	requests := []leave.LeaveRequest{}
	for rows.Next() {
		var lr leave.LeaveRequest
		if err := scanLeaveRequest(rows, &lr); err != nil {
			return nil, 0, err
		}
		requests = append(requests, lr)
	}

	return requests, total, rows.Err()
}

func (r *leaveRequestRepositoryImpl) ListApprovedBetween(ctx context.Context, from, to time.Time) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + leaveRequestColumns + leaveRequestJoins + `
	WHERE lr.status = 'approved'
	  AND lr.start_date <= $2
	  AND lr.end_date >= $1
	ORDER BY lr.start_date`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := []leave.LeaveRequest{}
	for rows.Next() {
		var lr leave.LeaveRequest
		if err := scanLeaveRequest(rows, &lr); err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}

	return requests, rows.Err()
}
