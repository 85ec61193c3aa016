package ledger

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solobank-dev/solobank/internal/model"
)

func TestTransfer_MovesFunds(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	result, err := svc.Transfer(ctx, TransferParams{
		FromAccountID: "ACC-0001-CHK",
		ToAccountID:   "ACC-0001-SAV",
		Amount:        dec("1500.00"),
		Description:   "monthly savings",
	})
	require.NoError(t, err)
	assert.False(t, result.Duplicate)
	assert.True(t, result.FromBalance.Equal(dec("3500.00")))
	assert.True(t, result.ToBalance.Equal(dec("13500.00")))

	assert.True(t, balance(t, svc, "ACC-0001-CHK").Equal(dec("3500.00")))
	assert.True(t, balance(t, svc, "ACC-0001-SAV").Equal(dec("13500.00")))

	// Both accounts get a mirrored entry; together they sum to zero.
	fromTxns, err := svc.Store().AccountTransactions(ctx, "ACC-0001-CHK", 10)
	require.NoError(t, err)
	require.Len(t, fromTxns, 1)
	toTxns, err := svc.Store().AccountTransactions(ctx, "ACC-0001-SAV", 10)
	require.NoError(t, err)
	require.Len(t, toTxns, 1)

	assert.Equal(t, model.TxnTransfer, fromTxns[0].Type)
	assert.True(t, fromTxns[0].Amount.Add(toTxns[0].Amount).IsZero())
	assert.Equal(t, "ACC-0001-SAV", fromTxns[0].RelatedAccountID)
	assert.Equal(t, "ACC-0001-CHK", toTxns[0].RelatedAccountID)
	assert.Equal(t, "Transfer to Savings: monthly savings", fromTxns[0].Description)
	assert.Equal(t, "Transfer from Primary Checking: monthly savings", toTxns[0].Description)
}

func TestTransfer_InsufficientFunds(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Transfer(context.Background(), TransferParams{
		FromAccountID: "ACC-0002-CHK",
		ToAccountID:   "ACC-0001-CHK",
		Amount:        dec("301.00"),
	})
	require.ErrorIs(t, err, model.ErrInsufficientFunds)

	// No partial movement.
	assert.True(t, balance(t, svc, "ACC-0002-CHK").Equal(dec("300.00")))
	assert.True(t, balance(t, svc, "ACC-0001-CHK").Equal(dec("5000.00")))
}

func TestTransfer_RejectsCreditSource(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Transfer(context.Background(), TransferParams{
		FromAccountID: "ACC-0001-CRD",
		ToAccountID:   "ACC-0001-CHK",
		Amount:        dec("100.00"),
	})
	require.ErrorIs(t, err, model.ErrInvalidAccountType)
}

func TestTransfer_RejectsInvalidAmount(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, amount := range []string{"0", "-50.00", "10.005"} {
		_, err := svc.Transfer(ctx, TransferParams{
			FromAccountID: "ACC-0001-CHK",
			ToAccountID:   "ACC-0001-SAV",
			Amount:        dec(amount),
		})
		assert.ErrorIs(t, err, model.ErrInvalidAmount, "amount %s", amount)
	}

	assert.True(t, balance(t, svc, "ACC-0001-CHK").Equal(dec("5000.00")))
}

func TestTransfer_UnknownAccount(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Transfer(context.Background(), TransferParams{
		FromAccountID: "ACC-9999-CHK",
		ToAccountID:   "ACC-0001-SAV",
		Amount:        dec("10.00"),
	})
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestTransfer_ConcurrentSameAccount(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// Concurrent writers against one source account must serialize: every
	// transfer succeeds and the final balances account for all of them.
	const workers = 10
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Transfer(ctx, TransferParams{
				FromAccountID: "ACC-0001-CHK",
				ToAccountID:   "ACC-0001-SAV",
				Amount:        dec("100.00"),
			})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "transfer %d", i)
	}

	assert.True(t, balance(t, svc, "ACC-0001-CHK").Equal(dec("4000.00")))
	assert.True(t, balance(t, svc, "ACC-0001-SAV").Equal(dec("13000.00")))

	txns, err := svc.Store().AccountTransactions(ctx, "ACC-0001-CHK", workers+1)
	require.NoError(t, err)
	assert.Len(t, txns, workers)
}

func TestTransfer_RequestKeyReplay(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	params := TransferParams{
		FromAccountID: "ACC-0001-CHK",
		ToAccountID:   "ACC-0001-SAV",
		Amount:        dec("1000.00"),
		Description:   "rent",
		RequestKey:    "key-1",
	}

	first, err := svc.Transfer(ctx, params)
	require.NoError(t, err)
	require.False(t, first.Duplicate)

	second, err := svc.Transfer(ctx, params)
	require.NoError(t, err)
	assert.True(t, second.Duplicate)
	assert.Equal(t, first.TransferID, second.TransferID)
	assert.True(t, second.FromBalance.Equal(first.FromBalance))
	assert.True(t, second.ToBalance.Equal(first.ToBalance))

	// Funds moved exactly once.
	assert.True(t, balance(t, svc, "ACC-0001-CHK").Equal(dec("4000.00")))
	assert.True(t, balance(t, svc, "ACC-0001-SAV").Equal(dec("13000.00")))

	// A different key is a new transfer.
	params.RequestKey = "key-2"
	third, err := svc.Transfer(ctx, params)
	require.NoError(t, err)
	assert.False(t, third.Duplicate)
	assert.True(t, balance(t, svc, "ACC-0001-CHK").Equal(dec("3000.00")))
}
