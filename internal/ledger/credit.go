package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/solobank-dev/solobank/internal/model"
	"github.com/solobank-dev/solobank/internal/store"
)

// maxLimitMultiple caps a single increase at 3x the current limit,
// independent of any assessment outcome.
var maxLimitMultiple = decimal.NewFromInt(3)

// LimitChangeResult describes an applied credit limit change.
type LimitChangeResult struct {
	CustomerID     string
	PreviousLimit  decimal.Decimal
	NewLimit       decimal.Decimal
	IncreaseAmount decimal.Decimal
	Timestamp      time.Time
}

// ApplyLimitChange validates and applies a credit limit increase: it sets
// the customer's limit, recomputes utilization against the new limit,
// appends an APPROVED change row, and records a CREDIT_LIMIT_CHANGE
// transaction on the customer's credit account, all in one atomic unit.
func (s *Service) ApplyLimitChange(ctx context.Context, customerID string, newLimit decimal.Decimal, reason, assessedBy string) (LimitChangeResult, error) {
	var result LimitChangeResult
	err := s.store.InTx(ctx, func(tx *store.Tx) error {
		var err error
		result, err = s.applyLimitChange(ctx, tx, customerID, newLimit, reason, assessedBy)
		return err
	})
	if err != nil {
		return LimitChangeResult{}, err
	}
	return result, nil
}

// applyLimitChange is the apply path shared with approval resolution; it
// must run inside an open unit of work.
func (s *Service) applyLimitChange(ctx context.Context, tx *store.Tx, customerID string, newLimit decimal.Decimal, reason, assessedBy string) (LimitChangeResult, error) {
	customer, err := tx.GetCustomer(ctx, customerID)
	if err != nil {
		return LimitChangeResult{}, err
	}

	oldLimit := customer.CurrentCreditLimit
	if newLimit.LessThanOrEqual(oldLimit) {
		return LimitChangeResult{}, fmt.Errorf(
			"new limit %s must exceed current limit %s: %w",
			fmtUSD(newLimit), fmtUSD(oldLimit), model.ErrInvalidLimit)
	}
	if newLimit.GreaterThan(oldLimit.Mul(maxLimitMultiple)) {
		return LimitChangeResult{}, fmt.Errorf(
			"new limit %s exceeds 3x current limit %s: %w",
			fmtUSD(newLimit), fmtUSD(oldLimit), model.ErrInvalidLimit)
	}

	now := s.now()
	if err := tx.SetCreditLimit(ctx, customerID, newLimit); err != nil {
		return LimitChangeResult{}, err
	}

	creditAccount, err := tx.AccountByType(ctx, customerID, model.AccountTypeCredit)
	hasCredit := err == nil
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return LimitChangeResult{}, err
	}

	if hasCredit {
		utilization := decimal.Zero
		if newLimit.IsPositive() {
			utilization = creditAccount.Balance.Abs().Div(newLimit).Round(4)
		}
		if err := tx.SetUtilization(ctx, customerID, utilization); err != nil {
			return LimitChangeResult{}, err
		}
	}

	if _, err := tx.RecordCreditLimitChange(ctx, model.CreditLimitChange{
		CustomerID: customerID,
		Timestamp:  now,
		OldLimit:   oldLimit,
		NewLimit:   newLimit,
		Reason:     reason,
		Status:     model.ChangeApproved,
		AssessedBy: assessedBy,
	}); err != nil {
		return LimitChangeResult{}, err
	}

	if hasCredit {
		if _, err := tx.AppendTransaction(ctx, model.Transaction{
			AccountID:  creditAccount.ID,
			CustomerID: customerID,
			Timestamp:  now,
			Type:       model.TxnCreditLimitChange,
			Description: fmt.Sprintf("Credit limit increased: %s -> %s (%s)",
				fmtUSD(oldLimit), fmtUSD(newLimit), reason),
			Amount:       newLimit.Sub(oldLimit),
			BalanceAfter: creditAccount.Balance,
		}); err != nil {
			return LimitChangeResult{}, err
		}
	}

	return LimitChangeResult{
		CustomerID:     customerID,
		PreviousLimit:  oldLimit,
		NewLimit:       newLimit,
		IncreaseAmount: newLimit.Sub(oldLimit),
		Timestamp:      now,
	}, nil
}
