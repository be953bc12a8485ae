package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/employee"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/payroll"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/email"
	"golang.org/x/sync/errgroup"
)

const historyPeriods = 12

type Service struct {
	records    payroll.Repository
	structures payroll.SalaryStructureRepository
	employees  employee.Repository
	notifier   email.Notifier
	// bulkWorkers bounds concurrent record generation during a bulk run.
	bulkWorkers int
}

func NewService(
	records payroll.Repository,
	structures payroll.SalaryStructureRepository,
	employees employee.Repository,
	notifier email.Notifier,
	bulkWorkers int,
) *Service {
	if bulkWorkers < 1 {
		bulkWorkers = 1
	}
	return &Service{
		records:     records,
		structures:  structures,
		employees:   employees,
		notifier:    notifier,
		bulkWorkers: bulkWorkers,
	}
}

func (s *Service) Generate(ctx context.Context, req *payroll.GeneratePayrollRequest) (*payroll.PayrollRecord, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	emp, err := s.employees.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	// Fast path for a friendly error; the unique index is the
	// authoritative guard and Create maps its violation to the same
	// sentinel.
	exists, err := s.records.ExistsForPeriod(ctx, req.EmployeeID, req.Month, req.Year)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing payroll: %w", err)
	}
	if exists {
		return nil, payroll.ErrDuplicatePayroll
	}

	record := &payroll.PayrollRecord{
		EmployeeID:   req.EmployeeID,
		Month:        req.Month,
		Year:         req.Year,
		BasicSalary:  req.BasicSalary,
		Allowances:   req.Allowances,
		Deductions:   req.Deductions,
		TaxDeduction: req.TaxDeduction,
		Status:       payroll.PayrollStatusPending,
		Notes:        req.Notes,
	}
	record.Derive()

	if err := s.records.Create(ctx, record); err != nil {
		return nil, err
	}

	s.notifyProcessed(emp, record)

	return s.records.GetByID(ctx, record.ID)
}

// Update merges the partial fields and re-derives gross and net from
// the merged values. Derivation is never frozen at creation time.
func (s *Service) Update(ctx context.Context, recordID string, req *payroll.UpdatePayrollRequest) (*payroll.PayrollRecord, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	record, err := s.records.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}

	if req.BasicSalary != nil {
		record.BasicSalary = *req.BasicSalary
	}
	if req.Allowances != nil {
		record.Allowances = *req.Allowances
	}
	if req.Deductions != nil {
		record.Deductions = *req.Deductions
	}
	if req.TaxDeduction != nil {
		record.TaxDeduction = *req.TaxDeduction
	}
	if req.Status != nil {
		record.Status = payroll.PayrollStatus(*req.Status)
	}
	if req.PaymentDate != nil {
		paymentDate, err := time.Parse("2006-01-02", *req.PaymentDate)
		if err != nil {
			return nil, fmt.Errorf("failed to parse payment date: %w", err)
		}
		record.PaymentDate = &paymentDate
	}
	if req.Notes != nil {
		record.Notes = req.Notes
	}
	record.Derive()

	if err := s.records.Update(ctx, record); err != nil {
		return nil, err
	}

	return s.records.GetByID(ctx, recordID)
}

// BulkGenerate creates a record for every active employee from their
// salary structure. One employee's failure never blocks the rest; the
// batch returns a summary instead of an error.
func (s *Service) BulkGenerate(ctx context.Context, month, year int) (*payroll.BulkResult, error) {
	req := payroll.BulkGeneratePayrollRequest{Month: month, Year: year}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	activeEmployees, err := s.employees.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}

	result := &payroll.BulkResult{Errors: []payroll.BulkError{}}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.bulkWorkers)

	for _, emp := range activeEmployees {
		emp := emp
		g.Go(func() error {
			if err := s.generateFromStructure(gctx, &emp, month, year); err != nil {
				mu.Lock()
				result.FailedCount++
				result.Errors = append(result.Errors, payroll.BulkError{
					EmployeeID: emp.ID,
					Reason:     err.Error(),
				})
				mu.Unlock()
				return nil
			}

			mu.Lock()
			result.SuccessCount++
			mu.Unlock()
			return nil
		})
	}

	// Workers never return errors; Wait only orders the final summary
	// after the last record.
	_ = g.Wait()

	slog.Info("Bulk payroll generation finished",
		"month", month,
		"year", year,
		"success", result.SuccessCount,
		"failed", result.FailedCount,
	)

	return result, nil
}

func (s *Service) generateFromStructure(ctx context.Context, emp *employee.Employee, month, year int) error {
	exists, err := s.records.ExistsForPeriod(ctx, emp.ID, month, year)
	if err != nil {
		return fmt.Errorf("failed to check existing payroll: %w", err)
	}
	if exists {
		return payroll.ErrDuplicatePayroll
	}

	structure, err := s.structures.GetByEmployee(ctx, emp.ID)
	if err != nil {
		return err
	}

	record := &payroll.PayrollRecord{
		EmployeeID:   emp.ID,
		Month:        month,
		Year:         year,
		BasicSalary:  structure.BasicSalary,
		Allowances:   structure.Allowances,
		Deductions:   structure.Deductions,
		TaxDeduction: structure.TaxDeduction,
		Status:       payroll.PayrollStatusPending,
	}
	record.Derive()

	if err := s.records.Create(ctx, record); err != nil {
		return err
	}

	s.notifyProcessed(emp, record)

	return nil
}

// notifyProcessed emails the employee about the new payslip. Failures
// are logged and swallowed; the record already committed.
func (s *Service) notifyProcessed(emp *employee.Employee, record *payroll.PayrollRecord) {
	monthName := time.Month(record.Month).String()

	err := s.notifier.SendPayrollProcessed(emp.Email, emp.FullName(), monthName, record.Year, record.NetSalary)
	if err != nil {
		slog.Error("Failed to send payroll notification",
			"payroll_id", record.ID,
			"employee_id", emp.ID,
			"error", err,
		)
	}
}

func (s *Service) GetByID(ctx context.Context, id string) (*payroll.PayrollRecord, error) {
	return s.records.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter payroll.ListPayrollFilter) ([]payroll.PayrollRecord, int, error) {
	filter.Normalize()
	return s.records.List(ctx, filter)
}

func (s *Service) GetEmployeeHistory(ctx context.Context, employeeID string) ([]payroll.PayrollRecord, error) {
	return s.records.ListByEmployee(ctx, employeeID, historyPeriods)
}

func (s *Service) Stats(ctx context.Context, month, year int) (*payroll.PayrollStats, error) {
	req := payroll.BulkGeneratePayrollRequest{Month: month, Year: year}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.records.Stats(ctx, month, year)
}

func (s *Service) UpsertSalaryStructure(ctx context.Context, employeeID string, req *payroll.UpsertSalaryStructureRequest) (*payroll.SalaryStructure, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.employees.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	structure := &payroll.SalaryStructure{
		EmployeeID:   employeeID,
		BasicSalary:  req.BasicSalary,
		Allowances:   req.Allowances,
		Deductions:   req.Deductions,
		TaxDeduction: req.TaxDeduction,
	}
	if structure.Allowances == nil {
		structure.Allowances = payroll.LineItems{}
	}
	if structure.Deductions == nil {
		structure.Deductions = payroll.LineItems{}
	}

	if err := s.structures.Upsert(ctx, structure); err != nil {
		return nil, err
	}

	return structure, nil
}

func (s *Service) GetSalaryStructure(ctx context.Context, employeeID string) (*payroll.SalaryStructure, error) {
	return s.structures.GetByEmployee(ctx, employeeID)
}
