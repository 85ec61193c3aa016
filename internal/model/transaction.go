package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies balance-affecting events.
type TransactionType string

const (
	TxnPurchase          TransactionType = "PURCHASE"
	TxnPayment           TransactionType = "PAYMENT"
	TxnDeposit           TransactionType = "DEPOSIT"
	TxnWithdrawal        TransactionType = "WITHDRAWAL"
	TxnTransfer          TransactionType = "TRANSFER"
	TxnCreditLimitChange TransactionType = "CREDIT_LIMIT_CHANGE"
	TxnWireTransfer      TransactionType = "WIRE_TRANSFER"
	TxnLargePurchase     TransactionType = "LARGE_PURCHASE"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	switch t {
	case TxnPurchase, TxnPayment, TxnDeposit, TxnWithdrawal,
		TxnTransfer, TxnCreditLimitChange, TxnWireTransfer, TxnLargePurchase:
		return true
	}
	return false
}

// Transaction is an immutable append-only record of a balance-affecting
// event on one account. Rows are never updated or deleted; together they
// form the audit trail.
type Transaction struct {
	ID               int64
	AccountID        string
	CustomerID       string
	Timestamp        time.Time
	Type             TransactionType
	Description      string
	Amount           decimal.Decimal // signed
	BalanceAfter     decimal.Decimal
	RelatedAccountID string // paired entry reference, empty if none
}

// TransferStatus is the lifecycle state of a transfer audit row.
type TransferStatus string

const (
	TransferCompleted TransferStatus = "COMPLETED"
)

// Transfer pairs a source and destination account for the two transaction
// rows it produced. RequestKey, when set, dedupes retried submissions; the
// resulting balances are recorded so a replayed request can be answered
// without moving funds again.
type Transfer struct {
	ID               int64
	FromAccountID    string
	ToAccountID      string
	Amount           decimal.Decimal
	Description      string
	Timestamp        time.Time
	Status           TransferStatus
	RequestKey       string
	FromBalanceAfter decimal.Decimal
	ToBalanceAfter   decimal.Decimal
}
