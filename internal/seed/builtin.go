// Package seed provides initial ledger datasets: a built-in demo dataset
// and CSV fixture loading for custom deployments.
package seed

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/solobank-dev/solobank/internal/model"
	"github.com/solobank-dev/solobank/internal/store"
)

// Builtin returns the demo dataset: four customers with checking, savings,
// and credit accounts, recent transactions, six months of payment history,
// and two seeded pending approvals.
func Builtin() store.Dataset {
	return store.Dataset{
		Customers: []model.Customer{
			customer("CUST-1001", "Alice Johnson", "alice.johnson@solobank.com", 780, "10000", 48, "95000", "1200", "0.35", 1, 0),
			customer("CUST-1002", "Bob Martinez", "bob.martinez@solobank.com", 650, "5000", 18, "55000", "1800", "0.78", 4, 2),
			customer("CUST-1003", "Carol Chen", "carol.chen@solobank.com", 720, "15000", 36, "120000", "2500", "0.52", 2, 1),
			customer("CUST-1004", "David Park", "david.park@solobank.com", 820, "25000", 72, "150000", "3000", "0.22", 0, 0),
		},
		Accounts: []model.Account{
			account("ACC-1001-CHK", "CUST-1001", model.AccountTypeChecking, "Checking Account", "12450.00"),
			account("ACC-1001-SAV", "CUST-1001", model.AccountTypeSavings, "Savings Account", "34200.00"),
			account("ACC-1001-CRD", "CUST-1001", model.AccountTypeCredit, "Platinum Credit Card", "-3500.00"),
			account("ACC-1002-CHK", "CUST-1002", model.AccountTypeChecking, "Checking Account", "2100.00"),
			account("ACC-1002-SAV", "CUST-1002", model.AccountTypeSavings, "Savings Account", "800.00"),
			account("ACC-1002-CRD", "CUST-1002", model.AccountTypeCredit, "Gold Credit Card", "-3900.00"),
			account("ACC-1003-CHK", "CUST-1003", model.AccountTypeChecking, "Checking Account", "28700.00"),
			account("ACC-1003-SAV", "CUST-1003", model.AccountTypeSavings, "Savings Account", "15600.00"),
			account("ACC-1003-CRD", "CUST-1003", model.AccountTypeCredit, "Platinum Credit Card", "-7800.00"),
			account("ACC-1004-CHK", "CUST-1004", model.AccountTypeChecking, "Checking Account", "45300.00"),
			account("ACC-1004-SAV", "CUST-1004", model.AccountTypeSavings, "Savings Account", "89000.00"),
			account("ACC-1004-CRD", "CUST-1004", model.AccountTypeCredit, "Black Credit Card", "-5500.00"),
		},
		Transactions: []model.Transaction{
			txn("ACC-1001-CHK", "CUST-1001", "2026-02-25T14:30:00Z", model.TxnPurchase, "Amazon - Electronics", "-289.99", "12160.01", ""),
			txn("ACC-1001-CHK", "CUST-1001", "2026-02-20T09:00:00Z", model.TxnPayment, "Credit card payment", "-2500.00", "12450.00", "ACC-1001-CRD"),
			txn("ACC-1001-CHK", "CUST-1001", "2026-02-15T08:00:00Z", model.TxnDeposit, "Payroll - TechCorp Inc", "3958.33", "14950.00", ""),
			txn("ACC-1001-CHK", "CUST-1001", "2026-02-10T12:15:00Z", model.TxnPurchase, "Whole Foods Market", "-156.42", "10991.67", ""),
			txn("ACC-1001-CHK", "CUST-1001", "2026-02-01T08:00:00Z", model.TxnPayment, "Mortgage payment", "-1800.00", "11148.09", ""),
			txn("ACC-1001-SAV", "CUST-1001", "2026-02-15T08:05:00Z", model.TxnDeposit, "Auto-save from checking", "500.00", "34200.00", "ACC-1001-CHK"),
			txn("ACC-1002-CHK", "CUST-1002", "2026-02-24T16:45:00Z", model.TxnPurchase, "Shell Gas Station", "-62.50", "2037.50", ""),
			txn("ACC-1002-CHK", "CUST-1002", "2026-02-18T10:00:00Z", model.TxnPayment, "Minimum CC payment", "-150.00", "2100.00", "ACC-1002-CRD"),
			txn("ACC-1002-CHK", "CUST-1002", "2026-02-15T08:00:00Z", model.TxnDeposit, "Payroll - RetailMax", "2291.67", "2250.00", ""),
			txn("ACC-1002-CHK", "CUST-1002", "2026-02-05T14:20:00Z", model.TxnWithdrawal, "ATM Withdrawal", "-200.00", "-41.67", ""),
			txn("ACC-1002-CRD", "CUST-1002", "2026-02-01T11:30:00Z", model.TxnPurchase, `Best Buy - 65" TV`, "-899.99", "-3900.00", ""),
			txn("ACC-1003-CHK", "CUST-1003", "2026-02-26T09:10:00Z", model.TxnPurchase, "Delta Airlines - SFO to JFK", "-487.00", "28213.00", ""),
			txn("ACC-1003-CHK", "CUST-1003", "2026-02-22T10:00:00Z", model.TxnPayment, "Credit card full payment", "-4200.00", "28700.00", "ACC-1003-CRD"),
			txn("ACC-1003-CHK", "CUST-1003", "2026-02-15T08:00:00Z", model.TxnDeposit, "Payroll - Acme Corp", "5000.00", "32900.00", ""),
			txn("ACC-1003-CHK", "CUST-1003", "2026-02-08T15:30:00Z", model.TxnTransfer, "Transfer to savings", "-2000.00", "27900.00", "ACC-1003-SAV"),
			txn("ACC-1003-SAV", "CUST-1003", "2026-02-08T15:30:00Z", model.TxnTransfer, "Transfer from checking", "2000.00", "15600.00", "ACC-1003-CHK"),
			txn("ACC-1004-CHK", "CUST-1004", "2026-02-25T07:30:00Z", model.TxnPurchase, "Tesla Supercharger", "-18.50", "45281.50", ""),
			txn("ACC-1004-CHK", "CUST-1004", "2026-02-20T10:00:00Z", model.TxnPayment, "Credit card full payment", "-5500.00", "45300.00", "ACC-1004-CRD"),
			txn("ACC-1004-CHK", "CUST-1004", "2026-02-15T08:00:00Z", model.TxnDeposit, "Payroll - FinanceHub", "6250.00", "50800.00", ""),
			txn("ACC-1004-CHK", "CUST-1004", "2026-02-10T11:00:00Z", model.TxnTransfer, "Brokerage transfer", "-5000.00", "44550.00", ""),
		},
		Payments: paymentHistory(),
		Approvals: []model.PendingApproval{
			{
				CustomerID:  "CUST-1002",
				Type:        model.ApprovalWireTransfer,
				Description: "Wire transfer to external account ending 4589",
				Amount:      dec("3500.00"),
				Timestamp:   ts("2026-02-26T10:30:00Z"),
				Status:      model.ApprovalPending,
			},
			{
				CustomerID:  "CUST-1003",
				Type:        model.ApprovalLargePurchase,
				Description: "Purchase authorization: Luxury Auto Dealer",
				Amount:      dec("28500.00"),
				Timestamp:   ts("2026-02-26T11:00:00Z"),
				Status:      model.ApprovalPending,
			},
		},
	}
}

func paymentHistory() []model.PaymentRecord {
	type row struct {
		customer  string
		month     string
		due, paid string
		onTime    bool
	}
	rows := []row{
		{"CUST-1001", "2025-12", "2500", "2500", true}, {"CUST-1001", "2025-11", "3100", "3100", true},
		{"CUST-1001", "2025-10", "1800", "1800", true}, {"CUST-1001", "2025-09", "2200", "2200", true},
		{"CUST-1001", "2025-08", "2700", "2700", true}, {"CUST-1001", "2025-07", "1900", "1900", true},
		{"CUST-1002", "2025-12", "1500", "1500", true}, {"CUST-1002", "2025-11", "1200", "1000", false},
		{"CUST-1002", "2025-10", "1800", "1800", true}, {"CUST-1002", "2025-09", "900", "900", true},
		{"CUST-1002", "2025-08", "2100", "1500", false}, {"CUST-1002", "2025-07", "1100", "1100", true},
		{"CUST-1003", "2025-12", "4200", "4200", true}, {"CUST-1003", "2025-11", "3800", "3800", true},
		{"CUST-1003", "2025-10", "5100", "5100", true}, {"CUST-1003", "2025-09", "2900", "2900", true},
		{"CUST-1003", "2025-08", "3500", "3000", false}, {"CUST-1003", "2025-07", "4000", "4000", true},
		{"CUST-1004", "2025-12", "5500", "5500", true}, {"CUST-1004", "2025-11", "4800", "4800", true},
		{"CUST-1004", "2025-10", "6200", "6200", true}, {"CUST-1004", "2025-09", "3900", "3900", true},
		{"CUST-1004", "2025-08", "5100", "5100", true}, {"CUST-1004", "2025-07", "4500", "4500", true},
	}
	records := make([]model.PaymentRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, model.PaymentRecord{
			CustomerID: r.customer,
			Month:      r.month,
			AmountDue:  dec(r.due),
			AmountPaid: dec(r.paid),
			OnTime:     r.onTime,
		})
	}
	return records
}

func customer(id, name, email string, score int, limit string, ageMonths int, income, debt, utilization string, inquiries, delinquencies int) model.Customer {
	return model.Customer{
		ID:                  id,
		Name:                name,
		Email:               email,
		CreditScore:         score,
		CurrentCreditLimit:  dec(limit),
		AccountAgeMonths:    ageMonths,
		AnnualIncome:        dec(income),
		MonthlyDebtPayments: dec(debt),
		UtilizationRate:     dec(utilization),
		RecentInquiries:     inquiries,
		DelinquenciesLast2y: delinquencies,
	}
}

func account(id, customerID string, accountType model.AccountType, name, balance string) model.Account {
	return model.Account{
		ID:         id,
		CustomerID: customerID,
		Type:       accountType,
		Name:       name,
		Balance:    dec(balance),
		Currency:   "USD",
	}
}

func txn(accountID, customerID, timestamp string, typ model.TransactionType, description, amount, after, related string) model.Transaction {
	return model.Transaction{
		AccountID:        accountID,
		CustomerID:       customerID,
		Timestamp:        ts(timestamp),
		Type:             typ,
		Description:      description,
		Amount:           dec(amount),
		BalanceAfter:     dec(after),
		RelatedAccountID: related,
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic("seed: bad timestamp " + s)
	}
	return t
}
