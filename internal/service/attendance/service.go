package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/attendance"
)

type Service struct {
	records attendance.Repository
	// now is swappable in tests.
	now func() time.Time
}

func NewService(records attendance.Repository) *Service {
	return &Service{
		records: records,
		now:     time.Now,
	}
}

// NewServiceWithClock builds a service with a fixed clock source.
func NewServiceWithClock(records attendance.Repository, now func() time.Time) *Service {
	return &Service{records: records, now: now}
}

func (s *Service) CheckIn(ctx context.Context, employeeID string, req *attendance.CheckInRequest) (*attendance.AttendanceRecord, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	today := attendance.Today(now)

	// Fast path; the (employee_id, date) unique index catches the race
	// and Create maps the violation to the same sentinel.
	existing, err := s.records.GetByEmployeeDate(ctx, employeeID, today)
	if err != nil && !errors.Is(err, attendance.ErrAttendanceNotFound) {
		return nil, fmt.Errorf("failed to check today's attendance: %w", err)
	}
	if existing != nil {
		return nil, attendance.ErrAlreadyCheckedIn
	}

	record := &attendance.AttendanceRecord{
		EmployeeID: employeeID,
		Date:       today,
		CheckIn:    &now,
		Status:     attendance.StatusPresent,
		Location:   req.Location,
		Notes:      req.Notes,
	}
	if err := s.records.Create(ctx, record); err != nil {
		return nil, err
	}

	return s.records.GetByEmployeeDate(ctx, employeeID, today)
}

func (s *Service) CheckOut(ctx context.Context, employeeID string) (*attendance.AttendanceRecord, error) {
	now := s.now()
	today := attendance.Today(now)

	record, err := s.records.GetByEmployeeDate(ctx, employeeID, today)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return nil, attendance.ErrNoCheckIn
		}
		return nil, err
	}
	if record.CheckOut != nil {
		return nil, attendance.ErrAlreadyCheckedOut
	}

	record.CheckOut = &now
	if err := s.records.Update(ctx, record); err != nil {
		return nil, err
	}

	return s.records.GetByEmployeeDate(ctx, employeeID, today)
}

// Mark is the administrative upsert path: it overwrites any existing
// row for (employee, date) and flags it manual. Safe to repeat.
func (s *Service) Mark(ctx context.Context, req *attendance.MarkAttendanceRequest) (*attendance.AttendanceRecord, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	record := &attendance.AttendanceRecord{
		EmployeeID:    req.EmployeeID,
		Date:          req.ParsedDate(),
		CheckIn:       req.ParsedCheckIn(),
		CheckOut:      req.ParsedCheckOut(),
		Status:        attendance.AttendanceStatus(req.Status),
		Location:      req.Location,
		Notes:         req.Notes,
		OvertimeHours: req.OvertimeHours,
		IsManual:      true,
	}
	if err := s.records.Upsert(ctx, record); err != nil {
		return nil, err
	}

	return s.records.GetByEmployeeDate(ctx, req.EmployeeID, req.ParsedDate())
}

// Report returns the matching records with a per-status tally. Pure
// read, no mutation.
func (s *Service) Report(ctx context.Context, from, to time.Time, employeeID string) (*attendance.Report, error) {
	records, err := s.records.ListBetween(ctx, from, to, employeeID)
	if err != nil {
		return nil, err
	}

	report := &attendance.Report{Records: records}
	for _, r := range records {
		report.Tally.Add(r.Status)
	}

	return report, nil
}

func (s *Service) List(ctx context.Context, filter attendance.ListAttendanceFilter) ([]attendance.AttendanceRecord, int, error) {
	filter.Normalize()
	return s.records.List(ctx, filter)
}

func (s *Service) ListToday(ctx context.Context) ([]attendance.AttendanceRecord, error) {
	return s.records.ListByDate(ctx, attendance.Today(s.now()))
}
