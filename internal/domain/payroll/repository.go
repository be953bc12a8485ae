package payroll

import "context"

type Repository interface {
	Create(ctx context.Context, record *PayrollRecord) error
	GetByID(ctx context.Context, id string) (*PayrollRecord, error)
	ExistsForPeriod(ctx context.Context, employeeID string, month, year int) (bool, error)
	Update(ctx context.Context, record *PayrollRecord) error
	List(ctx context.Context, filter ListPayrollFilter) ([]PayrollRecord, int, error)
	// ListByEmployee returns the employee's most recent periods, newest
	// first, capped at limit.
	ListByEmployee(ctx context.Context, employeeID string, limit int) ([]PayrollRecord, error)
	Stats(ctx context.Context, month, year int) (*PayrollStats, error)
}

type SalaryStructureRepository interface {
	Upsert(ctx context.Context, structure *SalaryStructure) error
	GetByEmployee(ctx context.Context, employeeID string) (*SalaryStructure, error)
}
