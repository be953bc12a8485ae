package attendance

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, record *AttendanceRecord) error
	GetByEmployeeDate(ctx context.Context, employeeID string, date time.Time) (*AttendanceRecord, error)
	Update(ctx context.Context, record *AttendanceRecord) error
	// Upsert inserts or overwrites the row keyed by (employee_id, date).
	Upsert(ctx context.Context, record *AttendanceRecord) error
	List(ctx context.Context, filter ListAttendanceFilter) ([]AttendanceRecord, int, error)
	ListBetween(ctx context.Context, from, to time.Time, employeeID string) ([]AttendanceRecord, error)
	ListByDate(ctx context.Context, date time.Time) ([]AttendanceRecord, error)
}
