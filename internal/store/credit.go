package store

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/solobank-dev/solobank/internal/model"
)

// RecordCreditLimitChange appends one credit limit change audit row.
func (t *Tx) RecordCreditLimitChange(ctx context.Context, ch model.CreditLimitChange) (int64, error) {
	res, err := t.tx.ExecContext(ctx, `
		INSERT INTO credit_limit_changes (customer_id, timestamp, old_limit, new_limit, reason, status, assessed_by)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ch.CustomerID, timeText(ch.Timestamp), moneyText(ch.OldLimit),
		moneyText(ch.NewLimit), ch.Reason, string(ch.Status), ch.AssessedBy)
	if err != nil {
		return 0, fmt.Errorf("recording credit limit change for %s: %w", ch.CustomerID, err)
	}
	return res.LastInsertId()
}

// CreditLimitHistory returns a customer's limit change rows, newest first.
func (s *Store) CreditLimitHistory(ctx context.Context, customerID string) ([]model.CreditLimitChange, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, customer_id, timestamp, old_limit, new_limit, reason, status, assessed_by
		FROM credit_limit_changes WHERE customer_id = ?
		ORDER BY timestamp DESC, id DESC`, customerID)
	if err != nil {
		return nil, fmt.Errorf("listing credit limit history for %s: %w", customerID, err)
	}
	defer rows.Close()

	var changes []model.CreditLimitChange
	for rows.Next() {
		var ch model.CreditLimitChange
		var ts, oldLimit, newLimit, status string
		if err := rows.Scan(&ch.ID, &ch.CustomerID, &ts, &oldLimit, &newLimit,
			&ch.Reason, &status, &ch.AssessedBy); err != nil {
			return nil, fmt.Errorf("scanning credit limit change: %w", err)
		}
		if ch.Timestamp, err = parseTime(ts); err != nil {
			return nil, err
		}
		if ch.OldLimit, err = parseDec(oldLimit); err != nil {
			return nil, err
		}
		if ch.NewLimit, err = parseDec(newLimit); err != nil {
			return nil, err
		}
		ch.Status = model.ChangeStatus(status)
		changes = append(changes, ch)
	}
	return changes, rows.Err()
}

// DenyPendingReviewChange marks the PENDING_REVIEW change row matching
// customer + new limit as DENIED. Missing rows are not an error: a denial
// without a sibling change row is a no-op.
func (t *Tx) DenyPendingReviewChange(ctx context.Context, customerID string, newLimit decimal.Decimal) error {
	_, err := t.tx.ExecContext(ctx, `
		UPDATE credit_limit_changes SET status = ?
		WHERE customer_id = ? AND new_limit = ? AND status = ?`,
		string(model.ChangeDenied), customerID, moneyText(newLimit), string(model.ChangePendingReview))
	if err != nil {
		return fmt.Errorf("denying pending change for %s: %w", customerID, err)
	}
	return nil
}
