package payroll

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/employee"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/payroll"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// ===== FAKES =====

type fakePayrollRepo struct {
	mu      sync.Mutex
	records map[string]*payroll.PayrollRecord
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{records: make(map[string]*payroll.PayrollRecord)}
}

func (f *fakePayrollRepo) Create(ctx context.Context, r *payroll.PayrollRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.records {
		if existing.EmployeeID == r.EmployeeID && existing.Month == r.Month && existing.Year == r.Year {
			return payroll.ErrDuplicatePayroll
		}
	}
	r.ID = uuid.NewString()
	copied := *r
	f.records[r.ID] = &copied
	return nil
}

func (f *fakePayrollRepo) GetByID(ctx context.Context, id string) (*payroll.PayrollRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.records[id]
	if !ok {
		return nil, payroll.ErrPayrollNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakePayrollRepo) ExistsForPeriod(ctx context.Context, employeeID string, month, year int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.EmployeeID == employeeID && r.Month == month && r.Year == year {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePayrollRepo) Update(ctx context.Context, r *payroll.PayrollRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[r.ID]; !ok {
		return payroll.ErrPayrollNotFound
	}
	copied := *r
	f.records[r.ID] = &copied
	return nil
}

func (f *fakePayrollRepo) List(ctx context.Context, filter payroll.ListPayrollFilter) ([]payroll.PayrollRecord, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []payroll.PayrollRecord{}
	for _, r := range f.records {
		if filter.EmployeeID != "" && r.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.Month != 0 && r.Month != filter.Month {
			continue
		}
		if filter.Year != 0 && r.Year != filter.Year {
			continue
		}
		result = append(result, *r)
	}
	return result, len(result), nil
}

func (f *fakePayrollRepo) ListByEmployee(ctx context.Context, employeeID string, limit int) ([]payroll.PayrollRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []payroll.PayrollRecord{}
	for _, r := range f.records {
		if r.EmployeeID == employeeID && len(result) < limit {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (f *fakePayrollRepo) Stats(ctx context.Context, month, year int) (*payroll.PayrollStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stats := &payroll.PayrollStats{
		Month:      month,
		Year:       year,
		TotalGross: decimal.Zero,
		TotalNet:   decimal.Zero,
		TotalTax:   decimal.Zero,
	}
	for _, r := range f.records {
		if r.Month != month || r.Year != year {
			continue
		}
		stats.TotalGross = stats.TotalGross.Add(r.GrossSalary)
		stats.TotalNet = stats.TotalNet.Add(r.NetSalary)
		stats.TotalTax = stats.TotalTax.Add(r.TaxDeduction)
		stats.Count++
	}
	return stats, nil
}

type fakeStructureRepo struct {
	structures map[string]*payroll.SalaryStructure
}

func newFakeStructureRepo() *fakeStructureRepo {
	return &fakeStructureRepo{structures: make(map[string]*payroll.SalaryStructure)}
}

func (f *fakeStructureRepo) Upsert(ctx context.Context, s *payroll.SalaryStructure) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	copied := *s
	f.structures[s.EmployeeID] = &copied
	return nil
}

func (f *fakeStructureRepo) GetByEmployee(ctx context.Context, employeeID string) (*payroll.SalaryStructure, error) {
	s, ok := f.structures[employeeID]
	if !ok {
		return nil, payroll.ErrSalaryStructureNotFound
	}
	copied := *s
	return &copied, nil
}

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (*employee.Employee, error) {
	for i := range f.employees {
		if f.employees[i].ID == id {
			return &f.employees[i], nil
		}
	}
	return nil, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) ListActive(ctx context.Context) ([]employee.Employee, error) {
	result := []employee.Employee{}
	for _, e := range f.employees {
		if e.IsActive && e.EmploymentStatus == employee.EmploymentStatusActive {
			result = append(result, e)
		}
	}
	return result, nil
}

type fakeNotifier struct {
	mu           sync.Mutex
	payrollCalls int
	fail         bool
}

func (f *fakeNotifier) SendLeaveStatus(to, employeeName, leaveType, status string, comments *string) error {
	return nil
}

func (f *fakeNotifier) SendPayrollProcessed(to, employeeName, monthName string, year int, netSalary decimal.Decimal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payrollCalls++
	if f.fail {
		return errors.New("smtp unreachable")
	}
	return nil
}

// ===== HELPERS =====

func newTestEmployee(code string) employee.Employee {
	return employee.Employee{
		ID:               uuid.NewString(),
		EmployeeCode:     code,
		FirstName:        "Alex",
		LastName:         "Smith",
		Email:            code + "@example.com",
		IsActive:         true,
		EmploymentStatus: employee.EmploymentStatusActive,
	}
}

func generateRequest(employeeID string) *payroll.GeneratePayrollRequest {
	return &payroll.GeneratePayrollRequest{
		EmployeeID:  employeeID,
		Month:       6,
		Year:        2025,
		BasicSalary: d("5000"),
		Allowances: payroll.LineItems{
			{Type: "housing", Amount: d("800")},
			{Type: "transport", Amount: d("200")},
		},
		Deductions: payroll.LineItems{
			{Type: "pension", Amount: d("300")},
		},
		TaxDeduction: d("700"),
	}
}

// ===== GENERATE =====

func TestPayrollService_Generate_DerivesGrossAndNet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	emp := newTestEmployee("EMP001")
	records := newFakePayrollRepo()
	notifier := &fakeNotifier{}
	svc := NewService(records, newFakeStructureRepo(), &fakeEmployeeRepo{employees: []employee.Employee{emp}}, notifier, 2)

	record, err := svc.Generate(ctx, generateRequest(emp.ID))
	require.NoError(t, err)

	assert.True(t, d("6000").Equal(record.GrossSalary), "gross = basic + allowances")
	assert.True(t, d("5000").Equal(record.NetSalary), "net = gross - deductions - tax")
	assert.Equal(t, payroll.PayrollStatusPending, record.Status)
	assert.Equal(t, 1, notifier.payrollCalls)
}

func TestPayrollService_Generate_DuplicatePeriod(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	emp := newTestEmployee("EMP001")
	svc := NewService(newFakePayrollRepo(), newFakeStructureRepo(), &fakeEmployeeRepo{employees: []employee.Employee{emp}}, &fakeNotifier{}, 2)

	_, err := svc.Generate(ctx, generateRequest(emp.ID))
	require.NoError(t, err)

	_, err = svc.Generate(ctx, generateRequest(emp.ID))
	assert.ErrorIs(t, err, payroll.ErrDuplicatePayroll)
}

func TestPayrollService_Generate_UnknownEmployee(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakePayrollRepo(), newFakeStructureRepo(), &fakeEmployeeRepo{}, &fakeNotifier{}, 2)

	_, err := svc.Generate(context.Background(), generateRequest(uuid.NewString()))
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestPayrollService_Generate_NotificationFailureSwallowed(t *testing.T) {
	t.Parallel()

	emp := newTestEmployee("EMP001")
	notifier := &fakeNotifier{fail: true}
	svc := NewService(newFakePayrollRepo(), newFakeStructureRepo(), &fakeEmployeeRepo{employees: []employee.Employee{emp}}, notifier, 2)

	record, err := svc.Generate(context.Background(), generateRequest(emp.ID))
	require.NoError(t, err)
	assert.NotEmpty(t, record.ID)
}

// ===== UPDATE =====

func TestPayrollService_Update_Rederives(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	emp := newTestEmployee("EMP001")
	svc := NewService(newFakePayrollRepo(), newFakeStructureRepo(), &fakeEmployeeRepo{employees: []employee.Employee{emp}}, &fakeNotifier{}, 2)

	record, err := svc.Generate(ctx, generateRequest(emp.ID))
	require.NoError(t, err)

	newTax := d("200")
	updated, err := svc.Update(ctx, record.ID, &payroll.UpdatePayrollRequest{TaxDeduction: &newTax})
	require.NoError(t, err)

	assert.True(t, d("6000").Equal(updated.GrossSalary))
	assert.True(t, d("5500").Equal(updated.NetSalary), "net re-derived from merged fields")
}

func TestPayrollService_Update_ReplacesLineItems(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	emp := newTestEmployee("EMP001")
	svc := NewService(newFakePayrollRepo(), newFakeStructureRepo(), &fakeEmployeeRepo{employees: []employee.Employee{emp}}, &fakeNotifier{}, 2)

	record, err := svc.Generate(ctx, generateRequest(emp.ID))
	require.NoError(t, err)

	allowances := payroll.LineItems{{Type: "housing", Amount: d("1500")}}
	updated, err := svc.Update(ctx, record.ID, &payroll.UpdatePayrollRequest{Allowances: &allowances})
	require.NoError(t, err)

	assert.True(t, d("6500").Equal(updated.GrossSalary))
	assert.True(t, d("5500").Equal(updated.NetSalary))
}

func TestPayrollService_Update_NotFound(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakePayrollRepo(), newFakeStructureRepo(), &fakeEmployeeRepo{}, &fakeNotifier{}, 2)

	_, err := svc.Update(context.Background(), uuid.NewString(), &payroll.UpdatePayrollRequest{})
	assert.ErrorIs(t, err, payroll.ErrPayrollNotFound)
}

// ===== BULK =====

func TestPayrollService_BulkGenerate_PartialFailureIsolation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	withStructure := newTestEmployee("EMP001")
	alreadyPaid := newTestEmployee("EMP002")
	noStructure := newTestEmployee("EMP003")

	records := newFakePayrollRepo()
	structures := newFakeStructureRepo()
	employees := &fakeEmployeeRepo{employees: []employee.Employee{withStructure, alreadyPaid, noStructure}}
	svc := NewService(records, structures, employees, &fakeNotifier{}, 2)

	for _, id := range []string{withStructure.ID, alreadyPaid.ID} {
		err := structures.Upsert(ctx, &payroll.SalaryStructure{
			EmployeeID:   id,
			BasicSalary:  d("4000"),
			Allowances:   payroll.LineItems{{Type: "transport", Amount: d("150")}},
			Deductions:   payroll.LineItems{},
			TaxDeduction: d("400"),
		})
		require.NoError(t, err)
	}

	// one employee already has a record for the period
	_, err := svc.Generate(ctx, generateRequest(alreadyPaid.ID))
	require.NoError(t, err)

	result, err := svc.BulkGenerate(ctx, 6, 2025)
	require.NoError(t, err)

	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 2, result.FailedCount)
	require.Len(t, result.Errors, 2)

	reasons := map[string]string{}
	for _, e := range result.Errors {
		reasons[e.EmployeeID] = e.Reason
	}
	assert.Contains(t, reasons[alreadyPaid.ID], "already exists")
	assert.Contains(t, reasons[noStructure.ID], "salary structure")

	// the successful record derives from the employee's structure
	generated, _, err := records.List(ctx, payroll.ListPayrollFilter{EmployeeID: withStructure.ID})
	require.NoError(t, err)
	require.Len(t, generated, 1)
	assert.True(t, d("4150").Equal(generated[0].GrossSalary))
	assert.True(t, d("3750").Equal(generated[0].NetSalary))
}

func TestPayrollService_BulkGenerate_NoEmployees(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakePayrollRepo(), newFakeStructureRepo(), &fakeEmployeeRepo{}, &fakeNotifier{}, 4)

	result, err := svc.BulkGenerate(context.Background(), 6, 2025)
	require.NoError(t, err)
	assert.Equal(t, 0, result.SuccessCount)
	assert.Equal(t, 0, result.FailedCount)
	assert.NotNil(t, result.Errors)
	assert.Empty(t, result.Errors)
}

func TestPayrollService_BulkGenerate_SkipsInactive(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	active := newTestEmployee("EMP001")
	inactive := newTestEmployee("EMP002")
	inactive.IsActive = false
	terminated := newTestEmployee("EMP003")
	terminated.EmploymentStatus = employee.EmploymentStatusTerminated

	structures := newFakeStructureRepo()
	for _, id := range []string{active.ID, inactive.ID, terminated.ID} {
		err := structures.Upsert(ctx, &payroll.SalaryStructure{EmployeeID: id, BasicSalary: d("4000")})
		require.NoError(t, err)
	}

	svc := NewService(newFakePayrollRepo(), structures, &fakeEmployeeRepo{employees: []employee.Employee{active, inactive, terminated}}, &fakeNotifier{}, 2)

	result, err := svc.BulkGenerate(ctx, 6, 2025)
	require.NoError(t, err)
	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 0, result.FailedCount)
}

func TestPayrollService_BulkGenerate_InvalidPeriod(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakePayrollRepo(), newFakeStructureRepo(), &fakeEmployeeRepo{}, &fakeNotifier{}, 2)

	_, err := svc.BulkGenerate(context.Background(), 13, 2025)
	assert.Error(t, err)
}

// ===== STATS =====

func TestPayrollService_Stats_ZeroedWhenEmpty(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakePayrollRepo(), newFakeStructureRepo(), &fakeEmployeeRepo{}, &fakeNotifier{}, 2)

	stats, err := svc.Stats(context.Background(), 6, 2025)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Count)
	assert.True(t, stats.TotalGross.IsZero())
	assert.True(t, stats.TotalNet.IsZero())
	assert.True(t, stats.TotalTax.IsZero())
}

func TestPayrollService_Stats_Aggregates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	empA := newTestEmployee("EMP001")
	empB := newTestEmployee("EMP002")
	svc := NewService(newFakePayrollRepo(), newFakeStructureRepo(), &fakeEmployeeRepo{employees: []employee.Employee{empA, empB}}, &fakeNotifier{}, 2)

	_, err := svc.Generate(ctx, generateRequest(empA.ID))
	require.NoError(t, err)
	_, err = svc.Generate(ctx, generateRequest(empB.ID))
	require.NoError(t, err)

	stats, err := svc.Stats(ctx, 6, 2025)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Count)
	assert.True(t, d("12000").Equal(stats.TotalGross))
	assert.True(t, d("10000").Equal(stats.TotalNet))
	assert.True(t, d("1400").Equal(stats.TotalTax))
}

// ===== SALARY STRUCTURES =====

func TestPayrollService_UpsertSalaryStructure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	emp := newTestEmployee("EMP001")
	svc := NewService(newFakePayrollRepo(), newFakeStructureRepo(), &fakeEmployeeRepo{employees: []employee.Employee{emp}}, &fakeNotifier{}, 2)

	structure, err := svc.UpsertSalaryStructure(ctx, emp.ID, &payroll.UpsertSalaryStructureRequest{
		BasicSalary:  d("4000"),
		TaxDeduction: d("400"),
	})
	require.NoError(t, err)
	assert.NotNil(t, structure.Allowances)
	assert.NotNil(t, structure.Deductions)

	// overwrite is allowed
	updated, err := svc.UpsertSalaryStructure(ctx, emp.ID, &payroll.UpsertSalaryStructureRequest{
		BasicSalary:  d("4500"),
		TaxDeduction: d("450"),
	})
	require.NoError(t, err)
	assert.True(t, d("4500").Equal(updated.BasicSalary))

	fetched, err := svc.GetSalaryStructure(ctx, emp.ID)
	require.NoError(t, err)
	assert.True(t, d("4500").Equal(fetched.BasicSalary))
}

func TestPayrollService_UpsertSalaryStructure_UnknownEmployee(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakePayrollRepo(), newFakeStructureRepo(), &fakeEmployeeRepo{}, &fakeNotifier{}, 2)

	_, err := svc.UpsertSalaryStructure(context.Background(), uuid.NewString(), &payroll.UpsertSalaryStructureRequest{
		BasicSalary: d("4000"),
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
