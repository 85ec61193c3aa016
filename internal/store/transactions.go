package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/solobank-dev/solobank/internal/model"
)

const transactionColumns = `id, account_id, customer_id, timestamp, type,
	description, amount, balance_after, related_account_id`

// AppendTransaction appends one immutable transaction row and returns its ID.
func (t *Tx) AppendTransaction(ctx context.Context, txn model.Transaction) (int64, error) {
	if !txn.Type.Valid() {
		return 0, fmt.Errorf("transaction on %s has unknown type %q", txn.AccountID, txn.Type)
	}
	var related any
	if txn.RelatedAccountID != "" {
		related = txn.RelatedAccountID
	}
	res, err := t.tx.ExecContext(ctx, `
		INSERT INTO transactions (account_id, customer_id, timestamp, type,
			description, amount, balance_after, related_account_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		txn.AccountID, txn.CustomerID, timeText(txn.Timestamp), string(txn.Type),
		txn.Description, moneyText(txn.Amount), moneyText(txn.BalanceAfter), related)
	if err != nil {
		return 0, fmt.Errorf("appending transaction on %s: %w", txn.AccountID, err)
	}
	return res.LastInsertId()
}

// AccountTransactions returns an account's transactions, newest first.
func (s *Store) AccountTransactions(ctx context.Context, accountID string, limit int) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions
		 WHERE account_id = ? ORDER BY timestamp DESC, id DESC LIMIT ?`,
		accountID, normalizeLimit(limit, 20))
	if err != nil {
		return nil, fmt.Errorf("listing transactions for account %s: %w", accountID, err)
	}
	return collectTransactions(rows)
}

// CustomerTransactions returns a customer's transactions across all
// accounts, newest first.
func (s *Store) CustomerTransactions(ctx context.Context, customerID string, limit int) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions
		 WHERE customer_id = ? ORDER BY timestamp DESC, id DESC LIMIT ?`,
		customerID, normalizeLimit(limit, 30))
	if err != nil {
		return nil, fmt.Errorf("listing transactions for customer %s: %w", customerID, err)
	}
	return collectTransactions(rows)
}

// CreateTransfer appends a transfer audit row and returns its ID.
func (t *Tx) CreateTransfer(ctx context.Context, tr model.Transfer) (int64, error) {
	var key any
	if tr.RequestKey != "" {
		key = tr.RequestKey
	}
	res, err := t.tx.ExecContext(ctx, `
		INSERT INTO transfers (from_account_id, to_account_id, amount, description,
			timestamp, status, request_key, from_balance_after, to_balance_after)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tr.FromAccountID, tr.ToAccountID, moneyText(tr.Amount), tr.Description,
		timeText(tr.Timestamp), string(tr.Status), key,
		moneyText(tr.FromBalanceAfter), moneyText(tr.ToBalanceAfter))
	if err != nil {
		return 0, fmt.Errorf("recording transfer %s -> %s: %w", tr.FromAccountID, tr.ToAccountID, err)
	}
	return res.LastInsertId()
}

// TransferByRequestKey returns the transfer recorded under an idempotency
// key, or model.ErrNotFound when the key has not been seen.
func (t *Tx) TransferByRequestKey(ctx context.Context, key string) (model.Transfer, error) {
	row := t.tx.QueryRowContext(ctx, `
		SELECT id, from_account_id, to_account_id, amount, description,
			timestamp, status, request_key, from_balance_after, to_balance_after
		FROM transfers WHERE request_key = ?`, key)

	var tr model.Transfer
	var amount, ts, status, fromAfter, toAfter string
	var storedKey sql.NullString
	err := row.Scan(&tr.ID, &tr.FromAccountID, &tr.ToAccountID, &amount,
		&tr.Description, &ts, &status, &storedKey, &fromAfter, &toAfter)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Transfer{}, fmt.Errorf("transfer with request key %s: %w", key, model.ErrNotFound)
	}
	if err != nil {
		return model.Transfer{}, fmt.Errorf("loading transfer by request key: %w", err)
	}
	if tr.Amount, err = parseDec(amount); err != nil {
		return model.Transfer{}, err
	}
	if tr.Timestamp, err = parseTime(ts); err != nil {
		return model.Transfer{}, err
	}
	tr.Status = model.TransferStatus(status)
	tr.RequestKey = storedKey.String
	if tr.FromBalanceAfter, err = parseDec(fromAfter); err != nil {
		return model.Transfer{}, err
	}
	if tr.ToBalanceAfter, err = parseDec(toAfter); err != nil {
		return model.Transfer{}, err
	}
	return tr, nil
}

func collectTransactions(rows *sql.Rows) ([]model.Transaction, error) {
	defer rows.Close()

	var txns []model.Transaction
	for rows.Next() {
		var txn model.Transaction
		var ts, typ, amount, after string
		var related sql.NullString
		if err := rows.Scan(&txn.ID, &txn.AccountID, &txn.CustomerID, &ts, &typ,
			&txn.Description, &amount, &after, &related); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		var err error
		if txn.Timestamp, err = parseTime(ts); err != nil {
			return nil, err
		}
		txn.Type = model.TransactionType(typ)
		if txn.Amount, err = parseDec(amount); err != nil {
			return nil, err
		}
		if txn.BalanceAfter, err = parseDec(after); err != nil {
			return nil, err
		}
		txn.RelatedAccountID = related.String
		txns = append(txns, txn)
	}
	return txns, rows.Err()
}

func normalizeLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	return limit
}
