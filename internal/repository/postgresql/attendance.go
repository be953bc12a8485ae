package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `
	ar.id, ar.employee_id, ar.date, ar.check_in, ar.check_out, ar.status,
	ar.location, ar.notes, ar.overtime_hours, ar.is_manual, ar.created_at, ar.updated_at,
	e.first_name || ' ' || e.last_name AS employee_name, e.employee_code`

const attendanceJoins = `
	FROM attendance_records ar
	INNER JOIN employees e ON ar.employee_id = e.id`

func scanAttendanceRecord(row pgx.Row, ar *attendance.AttendanceRecord) error {
	return row.Scan(
		&ar.ID,
		&ar.EmployeeID,
		&ar.Date,
		&ar.CheckIn,
		&ar.CheckOut,
		&ar.Status,
		&ar.Location,
		&ar.Notes,
		&ar.OvertimeHours,
		&ar.IsManual,
		&ar.CreatedAt,
		&ar.UpdatedAt,
		&ar.EmployeeName,
		&ar.EmployeeCode,
	)
}

func (r *attendanceRepositoryImpl) Create(ctx context.Context, record *attendance.AttendanceRecord) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (employee_id, date, check_in, check_out, status, location, notes, overtime_hours, is_manual)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.EmployeeID,
		record.Date,
		record.CheckIn,
		record.CheckOut,
		record.Status,
		record.Location,
		record.Notes,
		record.OvertimeHours,
		record.IsManual,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.ErrAlreadyCheckedIn
		}
		return err
	}

	return nil
}

func (r *attendanceRepositoryImpl) GetByEmployeeDate(ctx context.Context, employeeID string, date time.Time) (*attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + attendanceColumns + attendanceJoins + `
	WHERE ar.employee_id = $1 AND ar.date = $2`

	var ar attendance.AttendanceRecord
	if err := scanAttendanceRecord(q.QueryRow(ctx, query, employeeID, date), &ar); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, attendance.ErrAttendanceNotFound
		}
		return nil, err
	}

	return &ar, nil
}

func (r *attendanceRepositoryImpl) Update(ctx context.Context, record *attendance.AttendanceRecord) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET check_in = $2,
		    check_out = $3,
		    status = $4,
		    location = $5,
		    notes = $6,
		    overtime_hours = $7,
		    is_manual = $8,
		    updated_at = NOW()
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query,
		record.ID,
		record.CheckIn,
		record.CheckOut,
		record.Status,
		record.Location,
		record.Notes,
		record.OvertimeHours,
		record.IsManual,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

func (r *attendanceRepositoryImpl) Upsert(ctx context.Context, record *attendance.AttendanceRecord) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (employee_id, date, check_in, check_out, status, location, notes, overtime_hours, is_manual)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (employee_id, date) DO UPDATE
		SET check_in = EXCLUDED.check_in,
		    check_out = EXCLUDED.check_out,
		    status = EXCLUDED.status,
		    location = EXCLUDED.location,
		    notes = EXCLUDED.notes,
		    overtime_hours = EXCLUDED.overtime_hours,
		    is_manual = EXCLUDED.is_manual,
		    updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	return q.QueryRow(ctx, query,
		record.EmployeeID,
		record.Date,
		record.CheckIn,
		record.CheckOut,
		record.Status,
		record.Location,
		record.Notes,
		record.OvertimeHours,
		record.IsManual,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
}

func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.ListAttendanceFilter) ([]attendance.AttendanceRecord, int, error) {
	q := GetQuerier(ctx, r.db)

	where := "WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != "" {
		where += fmt.Sprintf(" AND ar.employee_id = $%d", argIdx)
		args = append(args, filter.EmployeeID)
		argIdx++
	}
	if filter.Status != "" {
		where += fmt.Sprintf(" AND ar.status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.From != nil {
		where += fmt.Sprintf(" AND ar.date >= $%d", argIdx)
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil {
		where += fmt.Sprintf(" AND ar.date <= $%d", argIdx)
		args = append(args, *filter.To)
		argIdx++
	}

	countQuery := `SELECT COUNT(*)` + attendanceJoins + `
	` + where
	var total int
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT` + attendanceColumns + attendanceJoins + `
	` + where + fmt.Sprintf(" ORDER BY ar.date DESC, e.employee_code LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	records := []attendance.AttendanceRecord{}
	for rows.Next() {
		var ar attendance.AttendanceRecord
		if err := scanAttendanceRecord(rows, &ar); err != nil {
			return nil, 0, err
		}
		records = append(records, ar)
	}

	return records, total, rows.Err()
}

func (r *attendanceRepositoryImpl) ListBetween(ctx context.Context, from, to time.Time, employeeID string) ([]attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + attendanceColumns + attendanceJoins + `
	WHERE ar.date >= $1 AND ar.date <= $2
	  AND ($3 = '' OR ar.employee_id::text = $3)
	ORDER BY ar.date, e.employee_code`

	rows, err := q.Query(ctx, query, from, to, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []attendance.AttendanceRecord{}
	for rows.Next() {
		var ar attendance.AttendanceRecord
		if err := scanAttendanceRecord(rows, &ar); err != nil {
			return nil, err
		}
		records = append(records, ar)
	}

	return records, rows.Err()
}

func (r *attendanceRepositoryImpl) ListByDate(ctx context.Context, date time.Time) ([]attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + attendanceColumns + attendanceJoins + `
	WHERE ar.date = $1
	ORDER BY e.employee_code`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []attendance.AttendanceRecord{}
	for rows.Next() {
		var ar attendance.AttendanceRecord
		if err := scanAttendanceRecord(rows, &ar); err != nil {
			return nil, err
		}
		records = append(records, ar)
	}

	return records, rows.Err()
}
