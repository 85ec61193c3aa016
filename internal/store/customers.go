package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/solobank-dev/solobank/internal/model"
)

const customerColumns = `id, name, email, credit_score, current_credit_limit,
	account_age_months, annual_income, monthly_debt_payments,
	utilization_rate, recent_inquiries, delinquencies_last_2y`

// GetCustomer returns a customer by ID, or model.ErrNotFound.
func (s *Store) GetCustomer(ctx context.Context, id string) (model.Customer, error) {
	return getCustomer(ctx, s.db, id)
}

// GetCustomer returns a customer by ID within the unit of work.
func (t *Tx) GetCustomer(ctx context.Context, id string) (model.Customer, error) {
	return getCustomer(ctx, t.tx, id)
}

func getCustomer(ctx context.Context, q querier, id string) (model.Customer, error) {
	row := q.QueryRowContext(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id = ?`, id)
	c, err := scanCustomer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Customer{}, fmt.Errorf("customer %s: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return model.Customer{}, fmt.Errorf("loading customer %s: %w", id, err)
	}
	return c, nil
}

// ListCustomers returns all customers ordered by ID.
func (s *Store) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+customerColumns+` FROM customers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	defer rows.Close()

	var customers []model.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning customer: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// InsertCustomer creates a customer record. Used at seed/onboarding time.
func (t *Tx) InsertCustomer(ctx context.Context, c model.Customer) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO customers (id, name, email, credit_score, current_credit_limit,
			account_age_months, annual_income, monthly_debt_payments,
			utilization_rate, recent_inquiries, delinquencies_last_2y)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Email, c.CreditScore, moneyText(c.CurrentCreditLimit),
		c.AccountAgeMonths, moneyText(c.AnnualIncome), moneyText(c.MonthlyDebtPayments),
		rateText(c.UtilizationRate), c.RecentInquiries, c.DelinquenciesLast2y)
	if err != nil {
		return fmt.Errorf("inserting customer %s: %w", c.ID, err)
	}
	return nil
}

// SetCreditLimit updates a customer's current credit limit.
func (t *Tx) SetCreditLimit(ctx context.Context, customerID string, limit decimal.Decimal) error {
	res, err := t.tx.ExecContext(ctx,
		`UPDATE customers SET current_credit_limit = ? WHERE id = ?`,
		moneyText(limit), customerID)
	if err != nil {
		return fmt.Errorf("updating credit limit for %s: %w", customerID, err)
	}
	return requireRow(res, "customer "+customerID)
}

// SetUtilization updates a customer's derived utilization rate.
func (t *Tx) SetUtilization(ctx context.Context, customerID string, rate decimal.Decimal) error {
	res, err := t.tx.ExecContext(ctx,
		`UPDATE customers SET utilization_rate = ? WHERE id = ?`,
		rateText(rate), customerID)
	if err != nil {
		return fmt.Errorf("updating utilization for %s: %w", customerID, err)
	}
	return requireRow(res, "customer "+customerID)
}

// PaymentHistory returns a customer's payment records, most recent month first.
func (s *Store) PaymentHistory(ctx context.Context, customerID string) ([]model.PaymentRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT customer_id, month, amount_due, amount_paid, on_time
		FROM payment_history WHERE customer_id = ? ORDER BY month DESC`, customerID)
	if err != nil {
		return nil, fmt.Errorf("loading payment history for %s: %w", customerID, err)
	}
	defer rows.Close()

	var records []model.PaymentRecord
	for rows.Next() {
		var r model.PaymentRecord
		var due, paid string
		var onTime int
		if err := rows.Scan(&r.CustomerID, &r.Month, &due, &paid, &onTime); err != nil {
			return nil, fmt.Errorf("scanning payment record: %w", err)
		}
		if r.AmountDue, err = parseDec(due); err != nil {
			return nil, err
		}
		if r.AmountPaid, err = parseDec(paid); err != nil {
			return nil, err
		}
		r.OnTime = onTime != 0
		records = append(records, r)
	}
	return records, rows.Err()
}

// InsertPaymentRecord appends one month of payment history.
func (t *Tx) InsertPaymentRecord(ctx context.Context, r model.PaymentRecord) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO payment_history (customer_id, month, amount_due, amount_paid, on_time)
		VALUES (?, ?, ?, ?, ?)`,
		r.CustomerID, r.Month, moneyText(r.AmountDue), moneyText(r.AmountPaid), boolInt(r.OnTime))
	if err != nil {
		return fmt.Errorf("inserting payment record for %s: %w", r.CustomerID, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCustomer(row rowScanner) (model.Customer, error) {
	var c model.Customer
	var limit, income, debt, util string
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.CreditScore, &limit,
		&c.AccountAgeMonths, &income, &debt, &util,
		&c.RecentInquiries, &c.DelinquenciesLast2y)
	if err != nil {
		return model.Customer{}, err
	}
	if c.CurrentCreditLimit, err = parseDec(limit); err != nil {
		return model.Customer{}, err
	}
	if c.AnnualIncome, err = parseDec(income); err != nil {
		return model.Customer{}, err
	}
	if c.MonthlyDebtPayments, err = parseDec(debt); err != nil {
		return model.Customer{}, err
	}
	if c.UtilizationRate, err = parseDec(util); err != nil {
		return model.Customer{}, err
	}
	return c, nil
}

func requireRow(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, model.ErrNotFound)
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
