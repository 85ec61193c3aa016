package model

import "github.com/shopspring/decimal"

// AccountType classifies bank accounts.
type AccountType string

const (
	AccountTypeChecking AccountType = "checking"
	AccountTypeSavings  AccountType = "savings"
	AccountTypeCredit   AccountType = "credit"
)

// Valid reports whether t is a known account type.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeChecking, AccountTypeSavings, AccountTypeCredit:
		return true
	}
	return false
}

// Account represents a row in the accounts table. Credit accounts carry a
// balance <= 0 representing the amount owed.
type Account struct {
	ID         string
	CustomerID string
	Type       AccountType
	Name       string
	Balance    decimal.Decimal
	Currency   string
}
