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

// TransferParams holds parameters for a fund movement between two accounts.
type TransferParams struct {
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
	Description   string

	// RequestKey is an optional caller-supplied idempotency key. When a
	// transfer with the same key has already been recorded, the original
	// result is returned and no funds move.
	RequestKey string
}

// TransferResult describes a completed transfer.
type TransferResult struct {
	TransferID  int64
	FromBalance decimal.Decimal
	ToBalance   decimal.Decimal
	Timestamp   time.Time

	// Duplicate is true when the result was replayed from a previously
	// recorded transfer with the same request key.
	Duplicate bool
}

// Transfer validates and executes a fund movement between two accounts as
// one atomic unit: it debits the source, credits the destination, appends
// two mirrored transaction rows whose amounts sum to zero, and records the
// transfer audit row.
func (s *Service) Transfer(ctx context.Context, p TransferParams) (TransferResult, error) {
	var result TransferResult
	err := s.store.InTx(ctx, func(tx *store.Tx) error {
		if p.RequestKey != "" {
			prior, err := tx.TransferByRequestKey(ctx, p.RequestKey)
			if err == nil {
				result = TransferResult{
					TransferID:  prior.ID,
					FromBalance: prior.FromBalanceAfter,
					ToBalance:   prior.ToBalanceAfter,
					Timestamp:   prior.Timestamp,
					Duplicate:   true,
				}
				return nil
			}
			if !errors.Is(err, model.ErrNotFound) {
				return err
			}
		}

		from, err := tx.GetAccount(ctx, p.FromAccountID)
		if err != nil {
			return err
		}
		to, err := tx.GetAccount(ctx, p.ToAccountID)
		if err != nil {
			return err
		}
		if from.Type == model.AccountTypeCredit {
			return fmt.Errorf("account %s: %w", from.ID, model.ErrInvalidAccountType)
		}
		if !p.Amount.IsPositive() || !wholeCents(p.Amount) {
			return fmt.Errorf("transfer amount %s: %w", p.Amount, model.ErrInvalidAmount)
		}
		if from.Balance.LessThan(p.Amount) {
			return fmt.Errorf("account %s has %s, needs %s: %w",
				from.ID, fmtUSD(from.Balance), fmtUSD(p.Amount), model.ErrInsufficientFunds)
		}

		now := s.now()
		newFrom := from.Balance.Sub(p.Amount)
		newTo := to.Balance.Add(p.Amount)

		if err := tx.UpdateBalance(ctx, from.ID, newFrom); err != nil {
			return err
		}
		if err := tx.UpdateBalance(ctx, to.ID, newTo); err != nil {
			return err
		}

		if _, err := tx.AppendTransaction(ctx, model.Transaction{
			AccountID:        from.ID,
			CustomerID:       from.CustomerID,
			Timestamp:        now,
			Type:             model.TxnTransfer,
			Description:      fmt.Sprintf("Transfer to %s: %s", to.Name, p.Description),
			Amount:           p.Amount.Neg(),
			BalanceAfter:     newFrom,
			RelatedAccountID: to.ID,
		}); err != nil {
			return err
		}
		if _, err := tx.AppendTransaction(ctx, model.Transaction{
			AccountID:        to.ID,
			CustomerID:       to.CustomerID,
			Timestamp:        now,
			Type:             model.TxnTransfer,
			Description:      fmt.Sprintf("Transfer from %s: %s", from.Name, p.Description),
			Amount:           p.Amount,
			BalanceAfter:     newTo,
			RelatedAccountID: from.ID,
		}); err != nil {
			return err
		}

		transferID, err := tx.CreateTransfer(ctx, model.Transfer{
			FromAccountID:    from.ID,
			ToAccountID:      to.ID,
			Amount:           p.Amount,
			Description:      p.Description,
			Timestamp:        now,
			Status:           model.TransferCompleted,
			RequestKey:       p.RequestKey,
			FromBalanceAfter: newFrom,
			ToBalanceAfter:   newTo,
		})
		if err != nil {
			return err
		}

		result = TransferResult{
			TransferID:  transferID,
			FromBalance: newFrom,
			ToBalance:   newTo,
			Timestamp:   now,
		}
		return nil
	})
	if err != nil {
		return TransferResult{}, err
	}
	return result, nil
}
