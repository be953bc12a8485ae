package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/employee"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/leave"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/database"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/email"
)

type Service struct {
	txManager database.TxManager
	balances  leave.BalanceRepository
	requests  leave.RequestRepository
	employees employee.Repository
	notifier  email.Notifier
}

func NewService(
	txManager database.TxManager,
	balances leave.BalanceRepository,
	requests leave.RequestRepository,
	employees employee.Repository,
	notifier email.Notifier,
) *Service {
	return &Service{
		txManager: txManager,
		balances:  balances,
		requests:  requests,
		employees: employees,
		notifier:  notifier,
	}
}

// Apply creates a pending leave request after the balance sufficiency
// and overlap checks. Both checks are fast paths for friendly errors;
// the balance is only debited on approval.
func (s *Service) Apply(ctx context.Context, employeeID string, req *leave.ApplyLeaveRequest) (*leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	startDate := req.Start()
	endDate := req.End()
	leaveType := leave.LeaveType(req.LeaveType)

	// Balance year is the year the leave starts, matching the year the
	// debit is keyed by at approval.
	balance, err := s.balances.GetByEmployeeYearType(ctx, employeeID, startDate.Year(), leaveType)
	if err != nil {
		if errors.Is(err, leave.ErrBalanceNotFound) {
			return nil, leave.ErrInsufficientBalance
		}
		return nil, fmt.Errorf("failed to get leave balance: %w", err)
	}
	// duration == remaining is allowed; only strictly more is refused.
	if balance.RemainingLeaves < req.Duration {
		return nil, leave.ErrInsufficientBalance
	}

	overlapping, err := s.requests.HasOverlapping(ctx, employeeID, startDate, endDate, "")
	if err != nil {
		return nil, fmt.Errorf("failed to check overlapping requests: %w", err)
	}
	if overlapping {
		return nil, leave.ErrOverlappingRequest
	}

	request := &leave.LeaveRequest{
		EmployeeID: employeeID,
		LeaveType:  leaveType,
		StartDate:  startDate,
		EndDate:    endDate,
		Duration:   req.Duration,
		Reason:     req.Reason,
		Status:     leave.LeaveStatusPending,
		AppliedAt:  time.Now(),
	}
	if err := s.requests.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create leave request: %w", err)
	}

	return s.requests.GetByID(ctx, request.ID)
}

func (s *Service) Approve(ctx context.Context, requestID, approverID string, req *leave.ReviewLeaveRequest) (*leave.LeaveRequest, error) {
	return s.review(ctx, requestID, approverID, leave.LeaveStatusApproved, req)
}

func (s *Service) Reject(ctx context.Context, requestID, approverID string, req *leave.ReviewLeaveRequest) (*leave.LeaveRequest, error) {
	return s.review(ctx, requestID, approverID, leave.LeaveStatusRejected, req)
}

func (s *Service) review(ctx context.Context, requestID, approverID string, status leave.LeaveStatus, req *leave.ReviewLeaveRequest) (*leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != leave.LeaveStatusPending {
		return nil, leave.ErrAlreadyReviewed
	}

	// The status transition and the balance debit commit together. The
	// conditional update inside re-checks pending, so a concurrent
	// review losing the race gets ErrAlreadyReviewed, not a double
	// debit.
	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.requests.UpdateStatusIfPending(ctx, requestID, status, approverID, req.Comments, time.Now()); err != nil {
			return err
		}
		if status == leave.LeaveStatusApproved {
			year := request.StartDate.Year()
			if err := s.balances.Debit(ctx, request.EmployeeID, year, request.LeaveType, request.Duration); err != nil {
				return fmt.Errorf("failed to debit leave balance: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	reviewed, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	s.notifyOutcome(reviewed)

	return reviewed, nil
}

// notifyOutcome emails the employee the review result. Failures are
// logged and swallowed; the state change has already committed.
func (s *Service) notifyOutcome(request *leave.LeaveRequest) {
	if request.EmployeeEmail == nil {
		return
	}

	name := ""
	if request.EmployeeName != nil {
		name = *request.EmployeeName
	}

	err := s.notifier.SendLeaveStatus(*request.EmployeeEmail, name, string(request.LeaveType), string(request.Status), request.ApproverComments)
	if err != nil {
		slog.Error("Failed to send leave status notification",
			"leave_request_id", request.ID,
			"employee_id", request.EmployeeID,
			"error", err,
		)
	}
}

func (s *Service) GetByID(ctx context.Context, id string) (*leave.LeaveRequest, error) {
	return s.requests.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter leave.ListLeaveFilter) ([]leave.LeaveRequest, int, error) {
	filter.Normalize()
	return s.requests.List(ctx, filter)
}

func (s *Service) GetBalances(ctx context.Context, employeeID string, year int) ([]leave.LeaveBalance, error) {
	if year == 0 {
		year = time.Now().Year()
	}
	return s.balances.GetByEmployeeYear(ctx, employeeID, year)
}

func (s *Service) GetCalendar(ctx context.Context, from, to time.Time) ([]leave.LeaveRequest, error) {
	return s.requests.ListApprovedBetween(ctx, from, to)
}
