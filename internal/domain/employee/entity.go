package employee

import "time"

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusOnLeave    EmploymentStatus = "on_leave"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleHR       Role = "hr"
	RoleEmployee Role = "employee"
)

// Employee is the directory projection consumed by the leave, payroll
// and attendance flows. Profile management lives in a separate system;
// this backend only reads.
type Employee struct {
	ID               string           `json:"id"`
	EmployeeCode     string           `json:"employee_code"`
	FirstName        string           `json:"first_name"`
	LastName         string           `json:"last_name"`
	Email            string           `json:"email"`
	Role             Role             `json:"role"`
	EmploymentStatus EmploymentStatus `json:"employment_status"`
	IsActive         bool             `json:"is_active"`
	JoinedAt         time.Time        `json:"joined_at"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
