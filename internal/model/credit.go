package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ChangeStatus is the lifecycle state of a credit limit change row.
// Rows are append-only except that a PENDING_REVIEW row may later be
// marked DENIED when its approval is denied.
type ChangeStatus string

const (
	ChangeApproved      ChangeStatus = "APPROVED"
	ChangePendingReview ChangeStatus = "PENDING_REVIEW"
	ChangeDenied        ChangeStatus = "DENIED"
)

// CreditLimitChange is one audit row per limit change attempt.
type CreditLimitChange struct {
	ID         int64
	CustomerID string
	Timestamp  time.Time
	OldLimit   decimal.Decimal
	NewLimit   decimal.Decimal
	Reason     string
	Status     ChangeStatus
	AssessedBy string
}
