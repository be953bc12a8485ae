package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/attendance"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== FAKES =====

type fakeAttendanceRepo struct {
	records map[string]*attendance.AttendanceRecord
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]*attendance.AttendanceRecord)}
}

func dayKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, r *attendance.AttendanceRecord) error {
	key := dayKey(r.EmployeeID, r.Date)
	if _, ok := f.records[key]; ok {
		return attendance.ErrAlreadyCheckedIn
	}
	r.ID = uuid.NewString()
	copied := *r
	f.records[key] = &copied
	return nil
}

func (f *fakeAttendanceRepo) GetByEmployeeDate(ctx context.Context, employeeID string, date time.Time) (*attendance.AttendanceRecord, error) {
	r, ok := f.records[dayKey(employeeID, date)]
	if !ok {
		return nil, attendance.ErrAttendanceNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, r *attendance.AttendanceRecord) error {
	key := dayKey(r.EmployeeID, r.Date)
	if _, ok := f.records[key]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	copied := *r
	f.records[key] = &copied
	return nil
}

func (f *fakeAttendanceRepo) Upsert(ctx context.Context, r *attendance.AttendanceRecord) error {
	key := dayKey(r.EmployeeID, r.Date)
	if existing, ok := f.records[key]; ok {
		r.ID = existing.ID
	} else {
		r.ID = uuid.NewString()
	}
	copied := *r
	f.records[key] = &copied
	return nil
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendance.ListAttendanceFilter) ([]attendance.AttendanceRecord, int, error) {
	result := []attendance.AttendanceRecord{}
	for _, r := range f.records {
		if filter.EmployeeID != "" && r.EmployeeID != filter.EmployeeID {
			continue
		}
		result = append(result, *r)
	}
	return result, len(result), nil
}

func (f *fakeAttendanceRepo) ListBetween(ctx context.Context, from, to time.Time, employeeID string) ([]attendance.AttendanceRecord, error) {
	result := []attendance.AttendanceRecord{}
	for _, r := range f.records {
		if employeeID != "" && r.EmployeeID != employeeID {
			continue
		}
		if r.Date.Before(from) || r.Date.After(to) {
			continue
		}
		result = append(result, *r)
	}
	return result, nil
}

func (f *fakeAttendanceRepo) ListByDate(ctx context.Context, date time.Time) ([]attendance.AttendanceRecord, error) {
	result := []attendance.AttendanceRecord{}
	for _, r := range f.records {
		if r.Date.Equal(date) {
			result = append(result, *r)
		}
	}
	return result, nil
}

// ===== HELPERS =====

var testNow = time.Date(2025, 6, 16, 9, 4, 30, 0, time.UTC)

func newTestService() (*Service, *fakeAttendanceRepo) {
	repo := newFakeAttendanceRepo()
	svc := NewServiceWithClock(repo, func() time.Time { return testNow })
	return svc, repo
}

// ===== CHECK-IN / CHECK-OUT =====

func TestAttendanceService_CheckIn_Success(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService()
	employeeID := uuid.NewString()

	location := "HQ"
	record, err := svc.CheckIn(ctx, employeeID, &attendance.CheckInRequest{Location: &location})
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusPresent, record.Status)
	assert.False(t, record.IsManual)
	require.NotNil(t, record.CheckIn)
	assert.Equal(t, testNow, *record.CheckIn)
	assert.Nil(t, record.CheckOut)
	// the day identity is midnight-truncated
	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), record.Date)
}

func TestAttendanceService_CheckIn_Twice(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService()
	employeeID := uuid.NewString()

	_, err := svc.CheckIn(ctx, employeeID, &attendance.CheckInRequest{})
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx, employeeID, &attendance.CheckInRequest{})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestAttendanceService_CheckOut_Lifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService()
	employeeID := uuid.NewString()

	// check-out without check-in
	_, err := svc.CheckOut(ctx, employeeID)
	assert.ErrorIs(t, err, attendance.ErrNoCheckIn)

	_, err = svc.CheckIn(ctx, employeeID, &attendance.CheckInRequest{})
	require.NoError(t, err)

	record, err := svc.CheckOut(ctx, employeeID)
	require.NoError(t, err)
	require.NotNil(t, record.CheckOut)
	assert.Equal(t, testNow, *record.CheckOut)

	// second check-out refused
	_, err = svc.CheckOut(ctx, employeeID)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestAttendanceService_CheckIn_DifferentEmployeesSameDay(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService()

	_, err := svc.CheckIn(ctx, uuid.NewString(), &attendance.CheckInRequest{})
	require.NoError(t, err)
	_, err = svc.CheckIn(ctx, uuid.NewString(), &attendance.CheckInRequest{})
	assert.NoError(t, err)
}

// ===== MARK =====

func markRequest(employeeID string) *attendance.MarkAttendanceRequest {
	checkIn := "2025-06-10T08:30:00Z"
	return &attendance.MarkAttendanceRequest{
		EmployeeID: employeeID,
		Date:       "2025-06-10",
		CheckIn:    &checkIn,
		Status:     "late",
	}
}

func TestAttendanceService_Mark_CreatesManualRecord(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService()
	employeeID := uuid.NewString()

	record, err := svc.Mark(ctx, markRequest(employeeID))
	require.NoError(t, err)

	assert.True(t, record.IsManual)
	assert.Equal(t, attendance.StatusLate, record.Status)
	assert.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), record.Date)
}

func TestAttendanceService_Mark_Idempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, repo := newTestService()
	employeeID := uuid.NewString()

	first, err := svc.Mark(ctx, markRequest(employeeID))
	require.NoError(t, err)

	// repeat with a different status; same row is overwritten
	req := markRequest(employeeID)
	req.Status = "half_day"
	second, err := svc.Mark(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, attendance.StatusHalfDay, second.Status)
	assert.Len(t, repo.records, 1)
}

func TestAttendanceService_Mark_OverwritesCheckInRecord(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, repo := newTestService()
	employeeID := uuid.NewString()

	_, err := svc.CheckIn(ctx, employeeID, &attendance.CheckInRequest{})
	require.NoError(t, err)

	req := markRequest(employeeID)
	req.Date = "2025-06-16"
	checkIn := "2025-06-16T08:00:00Z"
	req.CheckIn = &checkIn
	record, err := svc.Mark(ctx, req)
	require.NoError(t, err)

	assert.True(t, record.IsManual)
	assert.Equal(t, attendance.StatusLate, record.Status)
	assert.Len(t, repo.records, 1)
}

func TestAttendanceService_Mark_ValidationErrors(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()

	req := markRequest(uuid.NewString())
	req.Status = "on_site"
	_, err := svc.Mark(context.Background(), req)
	assert.Error(t, err)

	req = markRequest(uuid.NewString())
	req.Date = "June 10"
	_, err = svc.Mark(context.Background(), req)
	assert.Error(t, err)
}

// ===== REPORT =====

func TestAttendanceService_Report_TalliesPerStatus(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService()

	statuses := []string{"present", "present", "late", "half_day", "remote", "absent"}
	for i, status := range statuses {
		req := markRequest(uuid.NewString())
		req.Date = time.Date(2025, 6, 2+i, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
		req.Status = status
		if status == "absent" {
			req.CheckIn = nil
		}
		_, err := svc.Mark(ctx, req)
		require.NoError(t, err)
	}

	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	report, err := svc.Report(ctx, from, to, "")
	require.NoError(t, err)

	assert.Len(t, report.Records, 6)
	assert.Equal(t, 2, report.Tally.Present)
	assert.Equal(t, 1, report.Tally.Late)
	assert.Equal(t, 1, report.Tally.HalfDay)
	assert.Equal(t, 1, report.Tally.Remote)
	assert.Equal(t, 1, report.Tally.Absent)
}

func TestAttendanceService_Report_FiltersByEmployee(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService()

	target := uuid.NewString()
	other := uuid.NewString()
	_, err := svc.Mark(ctx, markRequest(target))
	require.NoError(t, err)
	_, err = svc.Mark(ctx, markRequest(other))
	require.NoError(t, err)

	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	report, err := svc.Report(ctx, from, to, target)
	require.NoError(t, err)

	require.Len(t, report.Records, 1)
	assert.Equal(t, target, report.Records[0].EmployeeID)
}

func TestAttendanceService_ListToday(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService()

	_, err := svc.CheckIn(ctx, uuid.NewString(), &attendance.CheckInRequest{})
	require.NoError(t, err)

	// a record on another day must not appear
	_, err = svc.Mark(ctx, markRequest(uuid.NewString()))
	require.NoError(t, err)

	today, err := svc.ListToday(ctx)
	require.NoError(t, err)
	assert.Len(t, today, 1)
}
