// Package ledger implements the bank's decision engines: fund transfers,
// credit limit changes, and the manual approval workflow. Every public
// operation runs as one atomic unit of work against the store.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/solobank-dev/solobank/internal/store"
)

// Service provides the ledger operations over a Store.
type Service struct {
	store *store.Store
	now   func() time.Time
}

// NewService creates a ledger Service.
func NewService(st *store.Store) *Service {
	return &Service{
		store: st,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Store returns the underlying store, for read accessors.
func (s *Service) Store() *store.Store {
	return s.store
}

// fmtUSD renders a money value for audit descriptions.
func fmtUSD(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// wholeCents reports whether d has no fractional cents.
func wholeCents(d decimal.Decimal) bool {
	hundred := decimal.NewFromInt(100)
	scaled := d.Mul(hundred)
	return scaled.Equal(scaled.Floor())
}
