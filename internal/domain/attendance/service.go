package attendance

import (
	"context"
	"time"
)

type Service interface {
	CheckIn(ctx context.Context, employeeID string, req *CheckInRequest) (*AttendanceRecord, error)
	CheckOut(ctx context.Context, employeeID string) (*AttendanceRecord, error)
	Mark(ctx context.Context, req *MarkAttendanceRequest) (*AttendanceRecord, error)
	Report(ctx context.Context, from, to time.Time, employeeID string) (*Report, error)
	List(ctx context.Context, filter ListAttendanceFilter) ([]AttendanceRecord, int, error)
	ListToday(ctx context.Context) ([]AttendanceRecord, error)
}
