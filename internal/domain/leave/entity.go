package leave

import "time"

type LeaveType string

const (
	LeaveTypeSick      LeaveType = "sick"
	LeaveTypeCasual    LeaveType = "casual"
	LeaveTypeVacation  LeaveType = "vacation"
	LeaveTypeUnpaid    LeaveType = "unpaid"
	LeaveTypeMaternity LeaveType = "maternity"
	LeaveTypePaternity LeaveType = "paternity"
)

var ValidLeaveTypes = []string{
	string(LeaveTypeSick),
	string(LeaveTypeCasual),
	string(LeaveTypeVacation),
	string(LeaveTypeUnpaid),
	string(LeaveTypeMaternity),
	string(LeaveTypePaternity),
}

type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "pending"
	LeaveStatusApproved LeaveStatus = "approved"
	LeaveStatusRejected LeaveStatus = "rejected"
	// LeaveStatusCancelled is reserved; no workflow transition reaches it yet.
	LeaveStatusCancelled LeaveStatus = "cancelled"
)

// LeaveBalance is the per-employee, per-year, per-type counter row.
// RemainingLeaves is stored denormalized but always recomputed from
// total and used on every mutation.
type LeaveBalance struct {
	ID              string    `json:"id"`
	EmployeeID      string    `json:"employee_id"`
	Year            int       `json:"year"`
	LeaveType       LeaveType `json:"leave_type"`
	TotalLeaves     float64   `json:"total_leaves"`
	UsedLeaves      float64   `json:"used_leaves"`
	RemainingLeaves float64   `json:"remaining_leaves"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type LeaveRequest struct {
	ID               string      `json:"id"`
	EmployeeID       string      `json:"employee_id"`
	LeaveType        LeaveType   `json:"leave_type"`
	StartDate        time.Time   `json:"start_date"`
	EndDate          time.Time   `json:"end_date"`
	Duration         float64     `json:"duration"`
	Reason           string      `json:"reason"`
	Status           LeaveStatus `json:"status"`
	ApproverID       *string     `json:"approver_id,omitempty"`
	ApproverComments *string     `json:"approver_comments,omitempty"`
	AppliedAt        time.Time   `json:"applied_at"`
	ReviewedAt       *time.Time  `json:"reviewed_at,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`

	// Joined from employees for display, not stored on the row.
	EmployeeName  *string `json:"employee_name,omitempty"`
	EmployeeEmail *string `json:"employee_email,omitempty"`
	ApproverName  *string `json:"approver_name,omitempty"`
}
