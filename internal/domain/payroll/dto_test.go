package payroll

import (
	"testing"

	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validGenerateRequest() GeneratePayrollRequest {
	return GeneratePayrollRequest{
		EmployeeID:  uuid.NewString(),
		Month:       6,
		Year:        2025,
		BasicSalary: d("5000"),
		Allowances: LineItems{
			{Type: "housing", Amount: d("800")},
		},
		TaxDeduction: d("700"),
	}
}

func TestGeneratePayrollRequest_Validate(t *testing.T) {
	t.Parallel()

	req := validGenerateRequest()
	assert.NoError(t, req.Validate())

	tests := []struct {
		name   string
		mutate func(*GeneratePayrollRequest)
		field  string
	}{
		{
			name:   "missing employee id",
			mutate: func(r *GeneratePayrollRequest) { r.EmployeeID = "" },
			field:  "employee_id",
		},
		{
			name:   "malformed employee id",
			mutate: func(r *GeneratePayrollRequest) { r.EmployeeID = "emp-1" },
			field:  "employee_id",
		},
		{
			name:   "month out of range",
			mutate: func(r *GeneratePayrollRequest) { r.Month = 13 },
			field:  "month",
		},
		{
			name:   "month zero",
			mutate: func(r *GeneratePayrollRequest) { r.Month = 0 },
			field:  "month",
		},
		{
			name:   "negative basic salary",
			mutate: func(r *GeneratePayrollRequest) { r.BasicSalary = d("-1") },
			field:  "basic_salary",
		},
		{
			name:   "negative tax",
			mutate: func(r *GeneratePayrollRequest) { r.TaxDeduction = d("-1") },
			field:  "tax_deduction",
		},
		{
			name: "allowance without label",
			mutate: func(r *GeneratePayrollRequest) {
				r.Allowances = LineItems{{Type: "", Amount: d("10")}}
			},
			field: "allowances",
		},
		{
			name: "negative deduction amount",
			mutate: func(r *GeneratePayrollRequest) {
				r.Deductions = LineItems{{Type: "pension", Amount: d("-5")}}
			},
			field: "deductions",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := validGenerateRequest()
			tt.mutate(&req)

			err := req.Validate()
			require.Error(t, err)

			var errs validator.ValidationErrors
			require.ErrorAs(t, err, &errs)
			assert.Contains(t, errs.ToMap(), tt.field)
		})
	}
}

func TestUpdatePayrollRequest_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, (&UpdatePayrollRequest{}).Validate())

	badStatus := "archived"
	assert.Error(t, (&UpdatePayrollRequest{Status: &badStatus}).Validate())

	goodStatus := "paid"
	goodDate := "2025-06-30"
	assert.NoError(t, (&UpdatePayrollRequest{Status: &goodStatus, PaymentDate: &goodDate}).Validate())

	badDate := "30/06/2025"
	assert.Error(t, (&UpdatePayrollRequest{PaymentDate: &badDate}).Validate())
}

func TestLineItems_ScanRoundTrip(t *testing.T) {
	t.Parallel()

	items := LineItems{
		{Type: "housing", Amount: d("800")},
		{Type: "transport", Amount: d("200.50")},
	}

	value, err := items.Value()
	require.NoError(t, err)

	var scanned LineItems
	require.NoError(t, scanned.Scan(value))
	require.Len(t, scanned, 2)
	assert.Equal(t, "housing", scanned[0].Type)
	assert.True(t, d("200.50").Equal(scanned[1].Amount))

	// NULL column scans to an empty list
	var empty LineItems
	require.NoError(t, empty.Scan(nil))
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	// nil list stores as an empty JSON array
	var nilItems LineItems
	value, err = nilItems.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", value)
}
