package store

import (
	"context"
	"fmt"

	"github.com/solobank-dev/solobank/internal/model"
)

// Dataset is the initial ledger content loaded by Seed.
type Dataset struct {
	Customers    []model.Customer
	Accounts     []model.Account
	Transactions []model.Transaction
	Payments     []model.PaymentRecord
	Approvals    []model.PendingApproval
}

// Seed loads a dataset in one transaction. It is a no-op when customers
// already exist, so init can be re-run safely.
func (s *Store) Seed(ctx context.Context, ds Dataset) error {
	return s.InTx(ctx, func(tx *Tx) error {
		var count int
		if err := tx.tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers`).Scan(&count); err != nil {
			return fmt.Errorf("checking for existing customers: %w", err)
		}
		if count > 0 {
			return nil
		}

		for _, c := range ds.Customers {
			if err := tx.InsertCustomer(ctx, c); err != nil {
				return err
			}
		}
		for _, a := range ds.Accounts {
			if err := tx.InsertAccount(ctx, a); err != nil {
				return err
			}
		}
		for _, txn := range ds.Transactions {
			if _, err := tx.AppendTransaction(ctx, txn); err != nil {
				return err
			}
		}
		for _, p := range ds.Payments {
			if err := tx.InsertPaymentRecord(ctx, p); err != nil {
				return err
			}
		}
		for _, a := range ds.Approvals {
			if _, err := tx.CreatePendingApproval(ctx, a); err != nil {
				return err
			}
		}
		return nil
	})
}
