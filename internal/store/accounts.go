package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/solobank-dev/solobank/internal/model"
)

const accountColumns = `id, customer_id, type, name, balance, currency`

// GetAccount returns an account by ID, or model.ErrNotFound.
func (s *Store) GetAccount(ctx context.Context, id string) (model.Account, error) {
	return getAccount(ctx, s.db, id)
}

// GetAccount returns an account by ID within the unit of work.
func (t *Tx) GetAccount(ctx context.Context, id string) (model.Account, error) {
	return getAccount(ctx, t.tx, id)
}

func getAccount(ctx context.Context, q querier, id string) (model.Account, error) {
	row := q.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)
	a, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Account{}, fmt.Errorf("account %s: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return model.Account{}, fmt.Errorf("loading account %s: %w", id, err)
	}
	return a, nil
}

// GetAccounts returns all accounts owned by a customer.
func (s *Store) GetAccounts(ctx context.Context, customerID string) ([]model.Account, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE customer_id = ? ORDER BY id`, customerID)
	if err != nil {
		return nil, fmt.Errorf("listing accounts for %s: %w", customerID, err)
	}
	defer rows.Close()

	var accounts []model.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// AccountByType returns the customer's account of the given type, or
// model.ErrNotFound when the customer has none.
func (t *Tx) AccountByType(ctx context.Context, customerID string, accountType model.AccountType) (model.Account, error) {
	row := t.tx.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE customer_id = ? AND type = ?`,
		customerID, string(accountType))
	a, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Account{}, fmt.Errorf("%s account for %s: %w", accountType, customerID, model.ErrNotFound)
	}
	if err != nil {
		return model.Account{}, fmt.Errorf("loading %s account for %s: %w", accountType, customerID, err)
	}
	return a, nil
}

// InsertAccount creates an account record. Used at seed/onboarding time.
func (t *Tx) InsertAccount(ctx context.Context, a model.Account) error {
	if !a.Type.Valid() {
		return fmt.Errorf("account %s has unknown type %q", a.ID, a.Type)
	}
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO accounts (id, customer_id, type, name, balance, currency)
		VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.CustomerID, string(a.Type), a.Name, moneyText(a.Balance), a.Currency)
	if err != nil {
		return fmt.Errorf("inserting account %s: %w", a.ID, err)
	}
	return nil
}

// UpdateBalance sets an account's balance.
func (t *Tx) UpdateBalance(ctx context.Context, accountID string, balance decimal.Decimal) error {
	res, err := t.tx.ExecContext(ctx,
		`UPDATE accounts SET balance = ? WHERE id = ?`, moneyText(balance), accountID)
	if err != nil {
		return fmt.Errorf("updating balance for %s: %w", accountID, err)
	}
	return requireRow(res, "account "+accountID)
}

func scanAccount(row rowScanner) (model.Account, error) {
	var a model.Account
	var typ, balance string
	if err := row.Scan(&a.ID, &a.CustomerID, &typ, &a.Name, &balance, &a.Currency); err != nil {
		return model.Account{}, err
	}
	a.Type = model.AccountType(typ)
	var err error
	if a.Balance, err = parseDec(balance); err != nil {
		return model.Account{}, err
	}
	return a, nil
}
