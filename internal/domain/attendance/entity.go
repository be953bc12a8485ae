package attendance

import "time"

type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusAbsent  AttendanceStatus = "absent"
	StatusLate    AttendanceStatus = "late"
	StatusHalfDay AttendanceStatus = "half_day"
	StatusRemote  AttendanceStatus = "remote"
)

var ValidStatuses = []string{
	string(StatusPresent),
	string(StatusAbsent),
	string(StatusLate),
	string(StatusHalfDay),
	string(StatusRemote),
}

// AttendanceRecord is one employee-day. Date is always truncated to
// midnight; (employee_id, date) is unique.
type AttendanceRecord struct {
	ID            string           `json:"id"`
	EmployeeID    string           `json:"employee_id"`
	Date          time.Time        `json:"date"`
	CheckIn       *time.Time       `json:"check_in,omitempty"`
	CheckOut      *time.Time       `json:"check_out,omitempty"`
	Status        AttendanceStatus `json:"status"`
	Location      *string          `json:"location,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
	OvertimeHours float64          `json:"overtime_hours"`
	IsManual      bool             `json:"is_manual"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`

	// Joined from employees for display.
	EmployeeName *string `json:"employee_name,omitempty"`
	EmployeeCode *string `json:"employee_code,omitempty"`
}

// StatusTally counts records per status over a reporting window.
type StatusTally struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Late    int `json:"late"`
	HalfDay int `json:"half_day"`
	Remote  int `json:"remote"`
}

func (t *StatusTally) Add(status AttendanceStatus) {
	switch status {
	case StatusPresent:
		t.Present++
	case StatusAbsent:
		t.Absent++
	case StatusLate:
		t.Late++
	case StatusHalfDay:
		t.HalfDay++
	case StatusRemote:
		t.Remote++
	}
}

type Report struct {
	Records []AttendanceRecord `json:"records"`
	Tally   StatusTally        `json:"tally"`
}

// Today truncates the given instant to local midnight, the identity of
// an attendance day.
func Today(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
