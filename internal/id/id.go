package id

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/solobank-dev/solobank/internal/model"
)

// FormatCustomerID returns a customer ID like "CUST-1001".
func FormatCustomerID(n int) string {
	return fmt.Sprintf("CUST-%04d", n)
}

// ParseCustomerID parses "CUST-1001" into its number.
func ParseCustomerID(id string) (int, error) {
	rest, ok := strings.CutPrefix(id, "CUST-")
	if !ok {
		return 0, fmt.Errorf("invalid customer ID format: %q", id)
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, fmt.Errorf("invalid number in customer ID %q: %w", id, err)
	}
	return n, nil
}

// FormatAccountID returns an account ID like "ACC-1001-CHK".
func FormatAccountID(customerID string, accountType model.AccountType) (string, error) {
	n, err := ParseCustomerID(customerID)
	if err != nil {
		return "", err
	}
	suffix, ok := accountSuffix(accountType)
	if !ok {
		return "", fmt.Errorf("no account ID suffix for type %q", accountType)
	}
	return fmt.Sprintf("ACC-%04d-%s", n, suffix), nil
}

// ParseAccountID parses "ACC-1001-CHK" into the owning customer number and
// account type.
func ParseAccountID(id string) (customer int, accountType model.AccountType, err error) {
	parts := strings.SplitN(id, "-", 3)
	if len(parts) != 3 || parts[0] != "ACC" {
		return 0, "", fmt.Errorf("invalid account ID format: %q", id)
	}
	customer, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, "", fmt.Errorf("invalid number in account ID %q: %w", id, err)
	}
	for _, t := range []model.AccountType{model.AccountTypeChecking, model.AccountTypeSavings, model.AccountTypeCredit} {
		if suffix, _ := accountSuffix(t); suffix == parts[2] {
			return customer, t, nil
		}
	}
	return 0, "", fmt.Errorf("unknown account type suffix in %q", id)
}

// NewRequestKey returns a fresh idempotency key for a transfer submission.
func NewRequestKey() string {
	return uuid.NewString()
}

func accountSuffix(t model.AccountType) (string, bool) {
	switch t {
	case model.AccountTypeChecking:
		return "CHK", true
	case model.AccountTypeSavings:
		return "SAV", true
	case model.AccountTypeCredit:
		return "CRD", true
	}
	return "", false
}
