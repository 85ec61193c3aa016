package model

import (
	"github.com/shopspring/decimal"
)

// Customer represents a row in the customers table.
// Profile metrics feed the credit assessment; the current limit and
// utilization rate are mutated only through credit limit changes.
type Customer struct {
	ID                  string
	Name                string
	Email               string
	CreditScore         int
	CurrentCreditLimit  decimal.Decimal
	AccountAgeMonths    int
	AnnualIncome        decimal.Decimal
	MonthlyDebtPayments decimal.Decimal
	UtilizationRate     decimal.Decimal
	RecentInquiries     int
	DelinquenciesLast2y int
}

// DTI returns the annualized debt-to-income ratio, or false when
// annual income is not positive.
func (c Customer) DTI() (decimal.Decimal, bool) {
	if !c.AnnualIncome.IsPositive() {
		return decimal.Zero, false
	}
	return c.MonthlyDebtPayments.Mul(decimal.NewFromInt(12)).Div(c.AnnualIncome), true
}

// PaymentRecord is one month of a customer's payment history.
type PaymentRecord struct {
	CustomerID string
	Month      string // "YYYY-MM"
	AmountDue  decimal.Decimal
	AmountPaid decimal.Decimal
	OnTime     bool
}
