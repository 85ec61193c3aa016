package seed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/solobank-dev/solobank/internal/model"
	"github.com/solobank-dev/solobank/internal/store"
)

// Fixture file names expected under a fixtures directory.
const (
	customersFile    = "customers.csv"
	accountsFile     = "accounts.csv"
	transactionsFile = "transactions.csv"
	paymentsFile     = "payments.csv"
)

// FromDir loads a dataset from CSV fixtures. customers.csv and
// accounts.csv are required; transactions.csv and payments.csv are
// optional.
func FromDir(dir string) (store.Dataset, error) {
	var ds store.Dataset

	if err := readFixture(filepath.Join(dir, customersFile), 11, func(rec []string) error {
		c, err := unmarshalCustomer(rec)
		if err != nil {
			return err
		}
		ds.Customers = append(ds.Customers, c)
		return nil
	}); err != nil {
		return store.Dataset{}, err
	}

	if err := readFixture(filepath.Join(dir, accountsFile), 6, func(rec []string) error {
		a, err := unmarshalAccount(rec)
		if err != nil {
			return err
		}
		ds.Accounts = append(ds.Accounts, a)
		return nil
	}); err != nil {
		return store.Dataset{}, err
	}

	if err := readOptionalFixture(filepath.Join(dir, transactionsFile), 8, func(rec []string) error {
		t, err := unmarshalTransaction(rec)
		if err != nil {
			return err
		}
		ds.Transactions = append(ds.Transactions, t)
		return nil
	}); err != nil {
		return store.Dataset{}, err
	}

	if err := readOptionalFixture(filepath.Join(dir, paymentsFile), 5, func(rec []string) error {
		p, err := unmarshalPayment(rec)
		if err != nil {
			return err
		}
		ds.Payments = append(ds.Payments, p)
		return nil
	}); err != nil {
		return store.Dataset{}, err
	}

	return ds, nil
}

// readFixture reads a CSV file with a header row, calling fn per data row.
func readFixture(path string, fields int, fn func(rec []string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening fixture: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = fields

	// Skip header row.
	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("reading header of %s: %w", path, err)
	}

	for row := 2; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading %s row %d: %w", path, row, err)
		}
		if err := fn(rec); err != nil {
			return fmt.Errorf("%s row %d: %w", path, row, err)
		}
	}
}

func readOptionalFixture(path string, fields int, fn func(rec []string) error) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return readFixture(path, fields, fn)
}

// customers.csv: id,name,email,credit_score,credit_limit,account_age_months,
// annual_income,monthly_debt_payments,utilization_rate,recent_inquiries,
// delinquencies_last_2y
func unmarshalCustomer(rec []string) (model.Customer, error) {
	score, err := strconv.Atoi(rec[3])
	if err != nil {
		return model.Customer{}, fmt.Errorf("parsing credit score %q: %w", rec[3], err)
	}
	age, err := strconv.Atoi(rec[5])
	if err != nil {
		return model.Customer{}, fmt.Errorf("parsing account age %q: %w", rec[5], err)
	}
	inquiries, err := strconv.Atoi(rec[9])
	if err != nil {
		return model.Customer{}, fmt.Errorf("parsing recent inquiries %q: %w", rec[9], err)
	}
	delinquencies, err := strconv.Atoi(rec[10])
	if err != nil {
		return model.Customer{}, fmt.Errorf("parsing delinquencies %q: %w", rec[10], err)
	}

	c := model.Customer{
		ID:                  rec[0],
		Name:                rec[1],
		Email:               rec[2],
		CreditScore:         score,
		AccountAgeMonths:    age,
		RecentInquiries:     inquiries,
		DelinquenciesLast2y: delinquencies,
	}
	if c.CurrentCreditLimit, err = parseDecimal("credit_limit", rec[4]); err != nil {
		return model.Customer{}, err
	}
	if c.AnnualIncome, err = parseDecimal("annual_income", rec[6]); err != nil {
		return model.Customer{}, err
	}
	if c.MonthlyDebtPayments, err = parseDecimal("monthly_debt_payments", rec[7]); err != nil {
		return model.Customer{}, err
	}
	if c.UtilizationRate, err = parseDecimal("utilization_rate", rec[8]); err != nil {
		return model.Customer{}, err
	}
	return c, nil
}

// accounts.csv: id,customer_id,type,name,balance,currency
func unmarshalAccount(rec []string) (model.Account, error) {
	accountType := model.AccountType(rec[2])
	if !accountType.Valid() {
		return model.Account{}, fmt.Errorf("unknown account type %q", rec[2])
	}
	balance, err := parseDecimal("balance", rec[4])
	if err != nil {
		return model.Account{}, err
	}
	return model.Account{
		ID:         rec[0],
		CustomerID: rec[1],
		Type:       accountType,
		Name:       rec[3],
		Balance:    balance,
		Currency:   rec[5],
	}, nil
}

// transactions.csv: account_id,customer_id,timestamp,type,description,
// amount,balance_after,related_account_id
func unmarshalTransaction(rec []string) (model.Transaction, error) {
	timestamp, err := time.Parse(time.RFC3339, rec[2])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing timestamp %q: %w", rec[2], err)
	}
	typ := model.TransactionType(rec[3])
	if !typ.Valid() {
		return model.Transaction{}, fmt.Errorf("unknown transaction type %q", rec[3])
	}

	t := model.Transaction{
		AccountID:        rec[0],
		CustomerID:       rec[1],
		Timestamp:        timestamp,
		Type:             typ,
		Description:      rec[4],
		RelatedAccountID: rec[7],
	}
	if t.Amount, err = parseDecimal("amount", rec[5]); err != nil {
		return model.Transaction{}, err
	}
	if t.BalanceAfter, err = parseDecimal("balance_after", rec[6]); err != nil {
		return model.Transaction{}, err
	}
	return t, nil
}

// payments.csv: customer_id,month,amount_due,amount_paid,on_time
func unmarshalPayment(rec []string) (model.PaymentRecord, error) {
	onTime, err := strconv.ParseBool(rec[4])
	if err != nil {
		return model.PaymentRecord{}, fmt.Errorf("parsing on_time %q: %w", rec[4], err)
	}
	p := model.PaymentRecord{
		CustomerID: rec[0],
		Month:      rec[1],
		OnTime:     onTime,
	}
	if p.AmountDue, err = parseDecimal("amount_due", rec[2]); err != nil {
		return model.PaymentRecord{}, err
	}
	if p.AmountPaid, err = parseDecimal("amount_paid", rec[3]); err != nil {
		return model.PaymentRecord{}, err
	}
	return p, nil
}

func parseDecimal(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing %s %q: %w", field, s, err)
	}
	return d, nil
}
