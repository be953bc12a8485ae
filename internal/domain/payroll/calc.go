package payroll

import "github.com/shopspring/decimal"

// ComputeGross returns basic + the sum of allowance amounts.
func ComputeGross(basic decimal.Decimal, allowances LineItems) decimal.Decimal {
	gross := basic
	for _, a := range allowances {
		gross = gross.Add(a.Amount)
	}
	return gross
}

// ComputeNet returns gross - the sum of deduction amounts - tax.
func ComputeNet(gross decimal.Decimal, deductions LineItems, tax decimal.Decimal) decimal.Decimal {
	net := gross
	for _, d := range deductions {
		net = net.Sub(d.Amount)
	}
	return net.Sub(tax)
}
