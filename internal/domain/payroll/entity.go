package payroll

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type PayrollStatus string

const (
	PayrollStatusPending   PayrollStatus = "pending"
	PayrollStatusProcessed PayrollStatus = "processed"
	PayrollStatusPaid      PayrollStatus = "paid"
	PayrollStatusFailed    PayrollStatus = "failed"
)

var ValidPayrollStatuses = []string{
	string(PayrollStatusPending),
	string(PayrollStatusProcessed),
	string(PayrollStatusPaid),
	string(PayrollStatusFailed),
}

// LineItem is one labelled amount in an allowance or deduction list.
type LineItem struct {
	Type   string          `json:"type"`
	Amount decimal.Decimal `json:"amount"`
}

// LineItems is stored as a JSONB array. Order is preserved.
type LineItems []LineItem

func (l LineItems) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshal line items: %w", err)
	}
	return string(b), nil
}

func (l *LineItems) Scan(src interface{}) error {
	if src == nil {
		*l = LineItems{}
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported line items type %T", src)
	}

	return json.Unmarshal(data, l)
}

type PayrollRecord struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	Month        int             `json:"month"`
	Year         int             `json:"year"`
	BasicSalary  decimal.Decimal `json:"basic_salary"`
	Allowances   LineItems       `json:"allowances"`
	Deductions   LineItems       `json:"deductions"`
	GrossSalary  decimal.Decimal `json:"gross_salary"`
	TaxDeduction decimal.Decimal `json:"tax_deduction"`
	NetSalary    decimal.Decimal `json:"net_salary"`
	PaymentDate  *time.Time      `json:"payment_date,omitempty"`
	Status       PayrollStatus   `json:"status"`
	Notes        *string         `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	// Joined from employees for display.
	EmployeeName *string `json:"employee_name,omitempty"`
	EmployeeCode *string `json:"employee_code,omitempty"`
}

// Derive recomputes gross and net from the current basic salary, line
// items and tax. Call after every mutation of those fields.
func (p *PayrollRecord) Derive() {
	p.GrossSalary = ComputeGross(p.BasicSalary, p.Allowances)
	p.NetSalary = ComputeNet(p.GrossSalary, p.Deductions, p.TaxDeduction)
}

// SalaryStructure is the per-employee compensation template consumed by
// bulk generation.
type SalaryStructure struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	BasicSalary  decimal.Decimal `json:"basic_salary"`
	Allowances   LineItems       `json:"allowances"`
	Deductions   LineItems       `json:"deductions"`
	TaxDeduction decimal.Decimal `json:"tax_deduction"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type PayrollStats struct {
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	TotalGross decimal.Decimal `json:"total_gross"`
	TotalNet   decimal.Decimal `json:"total_net"`
	TotalTax   decimal.Decimal `json:"total_tax"`
	Count      int             `json:"count"`
}

type BulkError struct {
	EmployeeID string `json:"employee_id"`
	Reason     string `json:"reason"`
}

type BulkResult struct {
	SuccessCount int         `json:"success_count"`
	FailedCount  int         `json:"failed_count"`
	Errors       []BulkError `json:"errors"`
}
