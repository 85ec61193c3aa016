package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solobank-dev/solobank/internal/config"
	"github.com/solobank-dev/solobank/internal/store"
)

func TestRunInit_BuiltinData(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, runInit(context.Background(), dir, "bank.db", ""))

	cfg, err := config.Load(filepath.Join(dir, "solobank.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "bank.db", cfg.Database.Path)
	assert.Equal(t, ":8080", cfg.Server.ListenAddr)

	st, err := store.Open(filepath.Join(dir, "bank.db"))
	require.NoError(t, err)
	defer st.Close()

	customers, err := st.ListCustomers(context.Background())
	require.NoError(t, err)
	assert.Len(t, customers, 4)

	approvals, err := st.AllPendingApprovals(context.Background())
	require.NoError(t, err)
	assert.Len(t, approvals, 2)
}

func TestRunInit_Rerun(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, runInit(context.Background(), dir, "bank.db", ""))
	require.NoError(t, runInit(context.Background(), dir, "bank.db", ""))

	st, err := store.Open(filepath.Join(dir, "bank.db"))
	require.NoError(t, err)
	defer st.Close()

	customers, err := st.ListCustomers(context.Background())
	require.NoError(t, err)
	assert.Len(t, customers, 4)
}

func TestRunInit_Fixtures(t *testing.T) {
	dir := t.TempDir()
	fixtures := filepath.Join(dir, "fixtures")
	require.NoError(t, os.MkdirAll(fixtures, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(fixtures, "customers.csv"), []byte(
		"id,name,email,credit_score,credit_limit,account_age_months,annual_income,monthly_debt_payments,utilization_rate,recent_inquiries,delinquencies_last_2y\n"+
			"CUST-0001,Ada Brown,ada@example.com,720,10000,48,95000,1200,0.25,1,0\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(fixtures, "accounts.csv"), []byte(
		"id,customer_id,type,name,balance,currency\n"+
			"ACC-0001-CHK,CUST-0001,checking,Checking,5000.00,USD\n"), 0o644))

	target := filepath.Join(dir, "bank")
	require.NoError(t, runInit(context.Background(), target, "bank.db", fixtures))

	st, err := store.Open(filepath.Join(target, "bank.db"))
	require.NoError(t, err)
	defer st.Close()

	customers, err := st.ListCustomers(context.Background())
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "Ada Brown", customers[0].Name)
}

func TestNewRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "solobank", cmd.Use)

	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"init", "serve", "transfer", "approvals", "assess"} {
		assert.True(t, names[want], want)
	}
}
