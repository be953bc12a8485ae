package leave

import (
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/validator"
)

type ApplyLeaveRequest struct {
	LeaveType string  `json:"leave_type"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Duration  float64 `json:"duration"`
	Reason    string  `json:"reason"`

	// Parsed by Validate.
	parsedStart time.Time
	parsedEnd   time.Time
}

func (r *ApplyLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	// Leave type
	if validator.IsEmpty(r.LeaveType) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type is required",
		})
	} else if !validator.IsInSlice(r.LeaveType, ValidLeaveTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of: sick, casual, vacation, unpaid, maternity, paternity",
		})
	}

	// Dates
	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a valid date (YYYY-MM-DD)",
		})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a valid date (YYYY-MM-DD)",
		})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	// Duration is trusted as supplied, never recomputed from the dates,
	// but it must be positive.
	if r.Duration <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "duration",
			Message: "duration must be a positive number of days",
		})
	}

	// Reason
	if len(r.Reason) < 10 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must be at least 10 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	r.parsedStart = start
	r.parsedEnd = end
	return nil
}

// Start returns the parsed start date. Only valid after Validate.
func (r *ApplyLeaveRequest) Start() time.Time { return r.parsedStart }

// End returns the parsed end date. Only valid after Validate.
func (r *ApplyLeaveRequest) End() time.Time { return r.parsedEnd }

type ReviewLeaveRequest struct {
	Comments *string `json:"comments,omitempty"`
}

func (r *ReviewLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Comments != nil && len(*r.Comments) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "comments",
			Message: "comments must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListLeaveFilter struct {
	EmployeeID string
	Status     string
	From       *time.Time
	To         *time.Time
	Page       int
	Limit      int
}

func (f *ListLeaveFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 10
	}
}
