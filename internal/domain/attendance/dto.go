package attendance

import (
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/validator"
)

type CheckInRequest struct {
	Location *string `json:"location,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Location != nil && len(*r.Location) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "location must not exceed 255 characters",
		})
	}
	if r.Notes != nil && len(*r.Notes) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "notes",
			Message: "notes must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MarkAttendanceRequest struct {
	EmployeeID    string  `json:"employee_id"`
	Date          string  `json:"date"`
	CheckIn       *string `json:"check_in,omitempty"`
	CheckOut      *string `json:"check_out,omitempty"`
	Status        string  `json:"status"`
	Location      *string `json:"location,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	OvertimeHours float64 `json:"overtime_hours"`

	parsedDate     time.Time
	parsedCheckIn  *time.Time
	parsedCheckOut *time.Time
}

func (r *MarkAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	// Employee ID
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	} else if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	// Date
	date, dateOK := validator.IsValidDate(r.Date)
	if !dateOK {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be a valid date (YYYY-MM-DD)",
		})
	}

	// Status
	if !validator.IsInSlice(r.Status, ValidStatuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: present, absent, late, half_day, remote",
		})
	}

	// Timestamps
	var checkIn, checkOut *time.Time
	if r.CheckIn != nil {
		t, ok := validator.IsValidDateTime(*r.CheckIn)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in",
				Message: "check_in must be a valid ISO8601 timestamp",
			})
		} else {
			checkIn = &t
		}
	}
	if r.CheckOut != nil {
		t, ok := validator.IsValidDateTime(*r.CheckOut)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out",
				Message: "check_out must be a valid ISO8601 timestamp",
			})
		} else {
			checkOut = &t
		}
	}
	if checkIn != nil && checkOut != nil && checkOut.Before(*checkIn) {
		errs = append(errs, validator.ValidationError{
			Field:   "check_out",
			Message: "check_out must not be before check_in",
		})
	}

	// Overtime
	if r.OvertimeHours < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "overtime_hours",
			Message: "overtime_hours must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	r.parsedDate = Today(date)
	r.parsedCheckIn = checkIn
	r.parsedCheckOut = checkOut
	return nil
}

// ParsedDate returns the midnight-truncated date. Only valid after Validate.
func (r *MarkAttendanceRequest) ParsedDate() time.Time { return r.parsedDate }

func (r *MarkAttendanceRequest) ParsedCheckIn() *time.Time  { return r.parsedCheckIn }
func (r *MarkAttendanceRequest) ParsedCheckOut() *time.Time { return r.parsedCheckOut }

type ListAttendanceFilter struct {
	EmployeeID string
	From       *time.Time
	To         *time.Time
	Status     string
	Page       int
	Limit      int
}

func (f *ListAttendanceFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 10
	}
}
