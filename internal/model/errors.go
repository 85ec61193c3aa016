package model

import "errors"

// Ledger error taxonomy. All are recoverable, caller-visible conditions;
// callers match with errors.Is.
var (
	ErrNotFound           = errors.New("entity not found")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrInvalidAccountType = errors.New("cannot transfer from a credit account")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInvalidLimit       = errors.New("invalid credit limit")
	ErrAlreadyResolved    = errors.New("approval already resolved")
	ErrInvalidInput       = errors.New("invalid input")
)
