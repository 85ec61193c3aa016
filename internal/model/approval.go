package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApprovalType classifies manual-review requests.
type ApprovalType string

const (
	ApprovalCreditLimitIncrease ApprovalType = "CREDIT_LIMIT_INCREASE"
	ApprovalWireTransfer        ApprovalType = "WIRE_TRANSFER"
	ApprovalLargePurchase       ApprovalType = "LARGE_PURCHASE"
)

// Valid reports whether t is a known approval type.
func (t ApprovalType) Valid() bool {
	switch t {
	case ApprovalCreditLimitIncrease, ApprovalWireTransfer, ApprovalLargePurchase:
		return true
	}
	return false
}

// TransactionType returns the transaction type recorded when an approval of
// this type is executed against a checking account.
func (t ApprovalType) TransactionType() TransactionType {
	switch t {
	case ApprovalWireTransfer:
		return TxnWireTransfer
	case ApprovalLargePurchase:
		return TxnLargePurchase
	default:
		return TxnCreditLimitChange
	}
}

// ApprovalStatus is the lifecycle state of a pending approval.
// PENDING transitions exactly once to APPROVED or DENIED.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalDenied   ApprovalStatus = "DENIED"
)

// Terminal reports whether s is a resolved state.
func (s ApprovalStatus) Terminal() bool {
	return s == ApprovalApproved || s == ApprovalDenied
}

// PendingApproval is a manual-review request awaiting an accept/deny
// decision before its effect is applied to the ledger.
type PendingApproval struct {
	ID          int64
	CustomerID  string
	Type        ApprovalType
	Description string
	Amount      decimal.Decimal
	Timestamp   time.Time
	Status      ApprovalStatus
	ResolvedAt  time.Time // zero until resolved
	ResolvedBy  string
}
