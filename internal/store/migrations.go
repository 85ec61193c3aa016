package store

// migration is a named group of schema statements applied atomically and
// at most once.
type migration struct {
	name       string
	statements []string
}

func migrations() []migration {
	return []migration{
		{
			name: "0001_ledger_tables",
			statements: []string{
				`CREATE TABLE IF NOT EXISTS customers (
					id                    TEXT PRIMARY KEY,
					name                  TEXT NOT NULL,
					email                 TEXT NOT NULL DEFAULT '',
					credit_score          INTEGER NOT NULL,
					current_credit_limit  TEXT NOT NULL,
					account_age_months    INTEGER NOT NULL DEFAULT 0,
					annual_income         TEXT NOT NULL,
					monthly_debt_payments TEXT NOT NULL,
					utilization_rate      TEXT NOT NULL,
					recent_inquiries      INTEGER NOT NULL DEFAULT 0,
					delinquencies_last_2y INTEGER NOT NULL DEFAULT 0
				)`,

				`CREATE TABLE IF NOT EXISTS accounts (
					id          TEXT PRIMARY KEY,
					customer_id TEXT NOT NULL REFERENCES customers(id),
					type        TEXT NOT NULL,
					name        TEXT NOT NULL,
					balance     TEXT NOT NULL,
					currency    TEXT NOT NULL DEFAULT 'USD'
				)`,
				`CREATE INDEX IF NOT EXISTS idx_accounts_customer ON accounts(customer_id)`,

				`CREATE TABLE IF NOT EXISTS transactions (
					id                 INTEGER PRIMARY KEY AUTOINCREMENT,
					account_id         TEXT NOT NULL REFERENCES accounts(id),
					customer_id        TEXT NOT NULL REFERENCES customers(id),
					timestamp          TEXT NOT NULL,
					type               TEXT NOT NULL,
					description        TEXT NOT NULL DEFAULT '',
					amount             TEXT NOT NULL,
					balance_after      TEXT NOT NULL,
					related_account_id TEXT
				)`,
				`CREATE INDEX IF NOT EXISTS idx_transactions_account ON transactions(account_id, timestamp)`,
				`CREATE INDEX IF NOT EXISTS idx_transactions_customer ON transactions(customer_id, timestamp)`,

				`CREATE TABLE IF NOT EXISTS transfers (
					id              INTEGER PRIMARY KEY AUTOINCREMENT,
					from_account_id TEXT NOT NULL REFERENCES accounts(id),
					to_account_id   TEXT NOT NULL REFERENCES accounts(id),
					amount          TEXT NOT NULL,
					description     TEXT NOT NULL DEFAULT '',
					timestamp       TEXT NOT NULL,
					status          TEXT NOT NULL DEFAULT 'COMPLETED',
					request_key     TEXT,
					from_balance_after TEXT NOT NULL,
					to_balance_after   TEXT NOT NULL
				)`,
				`CREATE UNIQUE INDEX IF NOT EXISTS idx_transfers_request_key
					ON transfers(request_key) WHERE request_key IS NOT NULL`,

				`CREATE TABLE IF NOT EXISTS credit_limit_changes (
					id          INTEGER PRIMARY KEY AUTOINCREMENT,
					customer_id TEXT NOT NULL REFERENCES customers(id),
					timestamp   TEXT NOT NULL,
					old_limit   TEXT NOT NULL,
					new_limit   TEXT NOT NULL,
					reason      TEXT NOT NULL DEFAULT '',
					status      TEXT NOT NULL,
					assessed_by TEXT NOT NULL DEFAULT 'credit-assessment-agent'
				)`,
				`CREATE INDEX IF NOT EXISTS idx_limit_changes_customer ON credit_limit_changes(customer_id, timestamp)`,

				`CREATE TABLE IF NOT EXISTS payment_history (
					id          INTEGER PRIMARY KEY AUTOINCREMENT,
					customer_id TEXT NOT NULL REFERENCES customers(id),
					month       TEXT NOT NULL,
					amount_due  TEXT NOT NULL,
					amount_paid TEXT NOT NULL,
					on_time     INTEGER NOT NULL
				)`,
				`CREATE INDEX IF NOT EXISTS idx_payment_history_customer ON payment_history(customer_id, month)`,

				`CREATE TABLE IF NOT EXISTS pending_approvals (
					id          INTEGER PRIMARY KEY AUTOINCREMENT,
					customer_id TEXT NOT NULL REFERENCES customers(id),
					type        TEXT NOT NULL,
					description TEXT NOT NULL DEFAULT '',
					amount      TEXT NOT NULL,
					timestamp   TEXT NOT NULL,
					status      TEXT NOT NULL DEFAULT 'PENDING',
					resolved_at TEXT,
					resolved_by TEXT
				)`,
				`CREATE INDEX IF NOT EXISTS idx_approvals_customer ON pending_approvals(customer_id, status)`,
			},
		},
	}
}
