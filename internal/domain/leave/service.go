package leave

import (
	"context"
	"time"
)

type Service interface {
	Apply(ctx context.Context, employeeID string, req *ApplyLeaveRequest) (*LeaveRequest, error)
	Approve(ctx context.Context, requestID, approverID string, req *ReviewLeaveRequest) (*LeaveRequest, error)
	Reject(ctx context.Context, requestID, approverID string, req *ReviewLeaveRequest) (*LeaveRequest, error)
	GetByID(ctx context.Context, id string) (*LeaveRequest, error)
	List(ctx context.Context, filter ListLeaveFilter) ([]LeaveRequest, int, error)
	GetBalances(ctx context.Context, employeeID string, year int) ([]LeaveBalance, error)
	GetCalendar(ctx context.Context, from, to time.Time) ([]LeaveRequest, error)
}
