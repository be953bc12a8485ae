package payroll

import (
	"fmt"

	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

func validateLineItems(field string, items LineItems, errs *validator.ValidationErrors) {
	for i, item := range items {
		if validator.IsEmpty(item.Type) {
			*errs = append(*errs, validator.ValidationError{
				Field:   field,
				Message: fmt.Sprintf("%s[%d].type is required", field, i),
			})
		}
		if item.Amount.IsNegative() {
			*errs = append(*errs, validator.ValidationError{
				Field:   field,
				Message: fmt.Sprintf("%s[%d].amount must not be negative", field, i),
			})
		}
	}
}

type GeneratePayrollRequest struct {
	EmployeeID   string          `json:"employee_id"`
	Month        int             `json:"month"`
	Year         int             `json:"year"`
	BasicSalary  decimal.Decimal `json:"basic_salary"`
	Allowances   LineItems       `json:"allowances"`
	Deductions   LineItems       `json:"deductions"`
	TaxDeduction decimal.Decimal `json:"tax_deduction"`
	Notes        *string         `json:"notes,omitempty"`
}

func (r *GeneratePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	// Employee ID
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	} else if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	// Period
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 2100",
		})
	}

	// Amounts
	if r.BasicSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "basic_salary",
			Message: "basic_salary must not be negative",
		})
	}
	if r.TaxDeduction.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "tax_deduction",
			Message: "tax_deduction must not be negative",
		})
	}
	validateLineItems("allowances", r.Allowances, &errs)
	validateLineItems("deductions", r.Deductions, &errs)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdatePayrollRequest struct {
	BasicSalary  *decimal.Decimal `json:"basic_salary,omitempty"`
	Allowances   *LineItems       `json:"allowances,omitempty"`
	Deductions   *LineItems       `json:"deductions,omitempty"`
	TaxDeduction *decimal.Decimal `json:"tax_deduction,omitempty"`
	Status       *string          `json:"status,omitempty"`
	PaymentDate  *string          `json:"payment_date,omitempty"`
	Notes        *string          `json:"notes,omitempty"`
}

func (r *UpdatePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.BasicSalary != nil && r.BasicSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "basic_salary",
			Message: "basic_salary must not be negative",
		})
	}
	if r.TaxDeduction != nil && r.TaxDeduction.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "tax_deduction",
			Message: "tax_deduction must not be negative",
		})
	}
	if r.Allowances != nil {
		validateLineItems("allowances", *r.Allowances, &errs)
	}
	if r.Deductions != nil {
		validateLineItems("deductions", *r.Deductions, &errs)
	}
	if r.Status != nil && !validator.IsInSlice(*r.Status, ValidPayrollStatuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: pending, processed, paid, failed",
		})
	}
	if r.PaymentDate != nil {
		if _, ok := validator.IsValidDate(*r.PaymentDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "payment_date",
				Message: "payment_date must be a valid date (YYYY-MM-DD)",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BulkGeneratePayrollRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *BulkGeneratePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 2100",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpsertSalaryStructureRequest struct {
	BasicSalary  decimal.Decimal `json:"basic_salary"`
	Allowances   LineItems       `json:"allowances"`
	Deductions   LineItems       `json:"deductions"`
	TaxDeduction decimal.Decimal `json:"tax_deduction"`
}

func (r *UpsertSalaryStructureRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.BasicSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "basic_salary",
			Message: "basic_salary must not be negative",
		})
	}
	if r.TaxDeduction.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "tax_deduction",
			Message: "tax_deduction must not be negative",
		})
	}
	validateLineItems("allowances", r.Allowances, &errs)
	validateLineItems("deductions", r.Deductions, &errs)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListPayrollFilter struct {
	EmployeeID string
	Month      int
	Year       int
	Status     string
	Page       int
	Limit      int
}

func (f *ListPayrollFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 10
	}
}
