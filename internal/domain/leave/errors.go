package leave

import "errors"

var (
	ErrBalanceNotFound      = errors.New("leave balance not found")
	ErrInsufficientBalance  = errors.New("insufficient leave balance")
	ErrOverlappingRequest   = errors.New("overlapping leave request exists")
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrAlreadyReviewed      = errors.New("leave request already reviewed")
	ErrDuplicateBalance     = errors.New("leave balance already exists for this employee, year and type")
)
