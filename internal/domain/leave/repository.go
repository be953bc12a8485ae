package leave

import (
	"context"
	"time"
)

type BalanceRepository interface {
	Create(ctx context.Context, balance *LeaveBalance) error
	GetByEmployeeYear(ctx context.Context, employeeID string, year int) ([]LeaveBalance, error)
	GetByEmployeeYearType(ctx context.Context, employeeID string, year int, leaveType LeaveType) (*LeaveBalance, error)
	// Debit increments used_leaves by days and recomputes
	// remaining_leaves in a single UPDATE. Returns ErrBalanceNotFound
	// when no row matches.
	Debit(ctx context.Context, employeeID string, year int, leaveType LeaveType, days float64) error
}

type RequestRepository interface {
	Create(ctx context.Context, request *LeaveRequest) error
	GetByID(ctx context.Context, id string) (*LeaveRequest, error)
	// HasOverlapping reports whether the employee has a pending or
	// approved request whose inclusive date range intersects
	// [startDate, endDate]. excludeID skips a request by id and may be
	// empty.
	HasOverlapping(ctx context.Context, employeeID string, startDate, endDate time.Time, excludeID string) (bool, error)
	// UpdateStatusIfPending transitions the request out of pending as a
	// conditional update. Returns ErrAlreadyReviewed when the row was
	// already in a terminal state, ErrLeaveRequestNotFound when absent.
	UpdateStatusIfPending(ctx context.Context, id string, status LeaveStatus, approverID string, comments *string, reviewedAt time.Time) error
	List(ctx context.Context, filter ListLeaveFilter) ([]LeaveRequest, int, error)
	ListApprovedBetween(ctx context.Context, from, to time.Time) ([]LeaveRequest, error)
}
