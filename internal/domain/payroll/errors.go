package payroll

import "errors"

var (
	ErrPayrollNotFound         = errors.New("payroll record not found")
	ErrDuplicatePayroll        = errors.New("payroll record already exists for this period")
	ErrSalaryStructureNotFound = errors.New("salary structure not found")
)
