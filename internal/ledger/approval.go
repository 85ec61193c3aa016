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

// Action is a resolution decision on a pending approval.
type Action string

const (
	ActionApprove Action = "approve"
	ActionDeny    Action = "deny"
)

// Valid reports whether a is a known action.
func (a Action) Valid() bool {
	return a == ActionApprove || a == ActionDeny
}

// ResolveResult describes a resolved approval.
type ResolveResult struct {
	ApprovalID int64
	Status     model.ApprovalStatus
	Timestamp  time.Time

	// LimitChange is set when approving a credit limit increase.
	LimitChange *LimitChangeResult
}

// CreateCreditLimitApproval creates a pending approval for a credit limit
// increase together with its PENDING_REVIEW change row, in one atomic
// unit. Returns the approval ID.
func (s *Service) CreateCreditLimitApproval(ctx context.Context, customerID string, requestedLimit, currentLimit decimal.Decimal, reason, assessmentSummary string) (int64, error) {
	var approvalID int64
	err := s.store.InTx(ctx, func(tx *store.Tx) error {
		if _, err := tx.GetCustomer(ctx, customerID); err != nil {
			return err
		}

		now := s.now()
		description := fmt.Sprintf("Credit limit increase: %s -> %s. Reason: %s. Assessment: %s",
			fmtUSD(currentLimit), fmtUSD(requestedLimit), reason, assessmentSummary)

		var err error
		approvalID, err = tx.CreatePendingApproval(ctx, model.PendingApproval{
			CustomerID:  customerID,
			Type:        model.ApprovalCreditLimitIncrease,
			Description: description,
			Amount:      requestedLimit,
			Timestamp:   now,
		})
		if err != nil {
			return err
		}

		_, err = tx.RecordCreditLimitChange(ctx, model.CreditLimitChange{
			CustomerID: customerID,
			Timestamp:  now,
			OldLimit:   currentLimit,
			NewLimit:   requestedLimit,
			Reason:     reason,
			Status:     model.ChangePendingReview,
			AssessedBy: "credit-assessment-agent",
		})
		return err
	})
	if err != nil {
		return 0, err
	}
	return approvalID, nil
}

// ResolveApproval transitions a PENDING approval to APPROVED or DENIED
// exactly once and dispatches the side effect for its type, all as one
// atomic unit. Approving a credit limit increase runs the limit apply
// path; if that fails the whole unit rolls back and the approval stays
// PENDING with the error surfaced to the caller.
func (s *Service) ResolveApproval(ctx context.Context, approvalID int64, action Action, resolvedBy string) (ResolveResult, error) {
	if !action.Valid() {
		return ResolveResult{}, fmt.Errorf("action %q: %w", action, model.ErrInvalidInput)
	}

	var result ResolveResult
	err := s.store.InTx(ctx, func(tx *store.Tx) error {
		approval, err := tx.GetPendingApproval(ctx, approvalID)
		if err != nil {
			return err
		}
		if approval.Status != model.ApprovalPending {
			return fmt.Errorf("approval %d is %s: %w", approvalID, approval.Status, model.ErrAlreadyResolved)
		}

		now := s.now()
		switch action {
		case ActionApprove:
			if approval.Type == model.ApprovalCreditLimitIncrease {
				change, err := s.applyLimitChange(ctx, tx, approval.CustomerID, approval.Amount,
					"Admin approved: "+approval.Description, "admin")
				if err != nil {
					return err
				}
				result.LimitChange = &change
			} else if err := s.executeApprovedDebit(ctx, tx, approval, now); err != nil {
				return err
			}
			if err := tx.SetApprovalStatus(ctx, approvalID, model.ApprovalApproved, resolvedBy, now); err != nil {
				return err
			}
			result.Status = model.ApprovalApproved

		case ActionDeny:
			if err := tx.SetApprovalStatus(ctx, approvalID, model.ApprovalDenied, resolvedBy, now); err != nil {
				return err
			}
			if approval.Type == model.ApprovalCreditLimitIncrease {
				if err := tx.DenyPendingReviewChange(ctx, approval.CustomerID, approval.Amount); err != nil {
					return err
				}
			}
			result.Status = model.ApprovalDenied
		}

		result.ApprovalID = approvalID
		result.Timestamp = now
		return nil
	})
	if err != nil {
		return ResolveResult{}, err
	}
	return result, nil
}

// executeApprovedDebit applies a non-limit approval (wire transfer, large
// purchase) by debiting the customer's checking account. A customer
// without a checking account gets the status change with no debit.
func (s *Service) executeApprovedDebit(ctx context.Context, tx *store.Tx, approval model.PendingApproval, now time.Time) error {
	checking, err := tx.AccountByType(ctx, approval.CustomerID, model.AccountTypeChecking)
	if errors.Is(err, model.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	newBalance := checking.Balance.Sub(approval.Amount)
	if err := tx.UpdateBalance(ctx, checking.ID, newBalance); err != nil {
		return err
	}
	_, err = tx.AppendTransaction(ctx, model.Transaction{
		AccountID:    checking.ID,
		CustomerID:   approval.CustomerID,
		Timestamp:    now,
		Type:         approval.Type.TransactionType(),
		Description:  "Approved: " + approval.Description,
		Amount:       approval.Amount.Neg(),
		BalanceAfter: newBalance,
	})
	return err
}
