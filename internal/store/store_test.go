package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solobank-dev/solobank/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "bank.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testDataset() Dataset {
	return Dataset{
		Customers: []model.Customer{{
			ID: "CUST-0001", Name: "Ada Brown", Email: "ada@example.com",
			CreditScore: 720, CurrentCreditLimit: dec("10000"),
			AccountAgeMonths: 48, AnnualIncome: dec("95000"),
			MonthlyDebtPayments: dec("1200"), UtilizationRate: dec("0.25"),
		}},
		Accounts: []model.Account{
			{ID: "ACC-0001-CHK", CustomerID: "CUST-0001", Type: model.AccountTypeChecking, Name: "Checking", Balance: dec("5000.00"), Currency: "USD"},
			{ID: "ACC-0001-CRD", CustomerID: "CUST-0001", Type: model.AccountTypeCredit, Name: "Credit Card", Balance: dec("-2500.00"), Currency: "USD"},
		},
		Payments: []model.PaymentRecord{
			{CustomerID: "CUST-0001", Month: "2026-01", AmountDue: dec("150.00"), AmountPaid: dec("150.00"), OnTime: true},
			{CustomerID: "CUST-0001", Month: "2026-02", AmountDue: dec("150.00"), AmountPaid: dec("100.00"), OnTime: false},
		},
		Approvals: []model.PendingApproval{{
			CustomerID: "CUST-0001", Type: model.ApprovalWireTransfer,
			Description: "Wire to Acme", Amount: dec("2000.00"),
			Timestamp: time.Date(2026, 2, 20, 9, 0, 0, 0, time.UTC),
		}},
	}
}

func TestOpen_MigrateIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bank.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Seed(context.Background(), testDataset()))
	require.NoError(t, s.Close())

	// Reopening applies no migration twice and keeps the data.
	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	c, err := s.GetCustomer(context.Background(), "CUST-0001")
	require.NoError(t, err)
	assert.Equal(t, "Ada Brown", c.Name)
}

func TestSeed_SkipsWhenDataExists(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Seed(ctx, testDataset()))
	require.NoError(t, s.Seed(ctx, testDataset()))

	customers, err := s.ListCustomers(ctx)
	require.NoError(t, err)
	assert.Len(t, customers, 1)

	approvals, err := s.AllPendingApprovals(ctx)
	require.NoError(t, err)
	assert.Len(t, approvals, 1)
}

func TestGetCustomer_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Seed(ctx, testDataset()))

	c, err := s.GetCustomer(ctx, "CUST-0001")
	require.NoError(t, err)
	assert.Equal(t, 720, c.CreditScore)
	assert.True(t, c.CurrentCreditLimit.Equal(dec("10000")))
	assert.True(t, c.UtilizationRate.Equal(dec("0.25")))

	_, err = s.GetCustomer(ctx, "CUST-9999")
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestGetAccounts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Seed(ctx, testDataset()))

	accounts, err := s.GetAccounts(ctx, "CUST-0001")
	require.NoError(t, err)
	require.Len(t, accounts, 2)

	_, err = s.GetAccount(ctx, "ACC-0002-CHK")
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestInsertAccount_RejectsUnknownType(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Seed(ctx, testDataset()))

	err := s.InTx(ctx, func(tx *Tx) error {
		return tx.InsertAccount(ctx, model.Account{
			ID: "ACC-0001-XXX", CustomerID: "CUST-0001",
			Type: model.AccountType("money-market"), Name: "Bad", Currency: "USD",
		})
	})
	require.Error(t, err)
}

func TestUpdateBalance_UnknownAccount(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Seed(ctx, testDataset()))

	err := s.InTx(ctx, func(tx *Tx) error {
		return tx.UpdateBalance(ctx, "ACC-9999-CHK", dec("1.00"))
	})
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestTransactions_NewestFirstWithLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Seed(ctx, testDataset()))

	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	err := s.InTx(ctx, func(tx *Tx) error {
		for i := 0; i < 3; i++ {
			if _, err := tx.AppendTransaction(ctx, model.Transaction{
				AccountID:    "ACC-0001-CHK",
				CustomerID:   "CUST-0001",
				Timestamp:    base.Add(time.Duration(i) * time.Hour),
				Type:         model.TxnDeposit,
				Description:  "Paycheck",
				Amount:       dec("100.00"),
				BalanceAfter: dec("5100.00"),
			}); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	txns, err := s.AccountTransactions(ctx, "ACC-0001-CHK", 2)
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.True(t, txns[0].Timestamp.After(txns[1].Timestamp))

	all, err := s.CustomerTransactions(ctx, "CUST-0001", 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestAppendTransaction_RejectsUnknownType(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Seed(ctx, testDataset()))

	err := s.InTx(ctx, func(tx *Tx) error {
		_, err := tx.AppendTransaction(ctx, model.Transaction{
			AccountID: "ACC-0001-CHK", CustomerID: "CUST-0001",
			Timestamp: time.Now(), Type: model.TransactionType("REFUND"),
		})
		return err
	})
	require.Error(t, err)
}

func TestSetApprovalStatus_ExactlyOnce(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Seed(ctx, testDataset()))

	approvals, err := s.AllPendingApprovals(ctx)
	require.NoError(t, err)
	require.Len(t, approvals, 1)
	id := approvals[0].ID

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	err = s.InTx(ctx, func(tx *Tx) error {
		return tx.SetApprovalStatus(ctx, id, model.ApprovalApproved, "admin", now)
	})
	require.NoError(t, err)

	a, err := s.GetPendingApproval(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.ApprovalApproved, a.Status)
	assert.Equal(t, "admin", a.ResolvedBy)
	assert.True(t, a.ResolvedAt.Equal(now))

	err = s.InTx(ctx, func(tx *Tx) error {
		return tx.SetApprovalStatus(ctx, id, model.ApprovalDenied, "admin", now)
	})
	require.ErrorIs(t, err, model.ErrAlreadyResolved)

	err = s.InTx(ctx, func(tx *Tx) error {
		return tx.SetApprovalStatus(ctx, 404, model.ApprovalDenied, "admin", now)
	})
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestTransferByRequestKey(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Seed(ctx, testDataset()))

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	err := s.InTx(ctx, func(tx *Tx) error {
		_, err := tx.CreateTransfer(ctx, model.Transfer{
			FromAccountID:    "ACC-0001-CHK",
			ToAccountID:      "ACC-0001-CRD",
			Amount:           dec("250.00"),
			Description:      "card payment",
			Timestamp:        now,
			Status:           model.TransferCompleted,
			RequestKey:       "key-1",
			FromBalanceAfter: dec("4750.00"),
			ToBalanceAfter:   dec("-2250.00"),
		})
		return err
	})
	require.NoError(t, err)

	err = s.InTx(ctx, func(tx *Tx) error {
		tr, err := tx.TransferByRequestKey(ctx, "key-1")
		if err != nil {
			return err
		}
		assert.True(t, tr.Amount.Equal(dec("250.00")))
		assert.True(t, tr.FromBalanceAfter.Equal(dec("4750.00")))
		assert.True(t, tr.Timestamp.Equal(now))

		_, err = tx.TransferByRequestKey(ctx, "unseen")
		return err
	})
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestPaymentHistory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Seed(ctx, testDataset()))

	records, err := s.PaymentHistory(ctx, "CUST-0001")
	require.NoError(t, err)
	require.Len(t, records, 2)
	// Newest month first.
	assert.Equal(t, "2026-02", records[0].Month)
	assert.False(t, records[0].OnTime)
	assert.True(t, records[1].OnTime)
}

func TestCreditLimitChanges(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Seed(ctx, testDataset()))

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	err := s.InTx(ctx, func(tx *Tx) error {
		_, err := tx.RecordCreditLimitChange(ctx, model.CreditLimitChange{
			CustomerID: "CUST-0001", Timestamp: now,
			OldLimit: dec("10000"), NewLimit: dec("25000"),
			Reason: "requested", Status: model.ChangePendingReview,
			AssessedBy: "credit-assessment-agent",
		})
		return err
	})
	require.NoError(t, err)

	err = s.InTx(ctx, func(tx *Tx) error {
		return tx.DenyPendingReviewChange(ctx, "CUST-0001", dec("25000"))
	})
	require.NoError(t, err)

	changes, err := s.CreditLimitHistory(ctx, "CUST-0001")
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, model.ChangeDenied, changes[0].Status)

	// Denying with no matching PENDING_REVIEW row is a no-op.
	err = s.InTx(ctx, func(tx *Tx) error {
		return tx.DenyPendingReviewChange(ctx, "CUST-0001", dec("99999"))
	})
	require.NoError(t, err)
}
