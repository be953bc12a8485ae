package payroll

import "context"

type Service interface {
	Generate(ctx context.Context, req *GeneratePayrollRequest) (*PayrollRecord, error)
	Update(ctx context.Context, recordID string, req *UpdatePayrollRequest) (*PayrollRecord, error)
	BulkGenerate(ctx context.Context, month, year int) (*BulkResult, error)
	GetByID(ctx context.Context, id string) (*PayrollRecord, error)
	List(ctx context.Context, filter ListPayrollFilter) ([]PayrollRecord, int, error)
	GetEmployeeHistory(ctx context.Context, employeeID string) ([]PayrollRecord, error)
	Stats(ctx context.Context, month, year int) (*PayrollStats, error)
	UpsertSalaryStructure(ctx context.Context, employeeID string, req *UpsertSalaryStructureRequest) (*SalaryStructure, error)
	GetSalaryStructure(ctx context.Context, employeeID string) (*SalaryStructure, error)
}
