package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/solobank-dev/solobank/internal/model"
)

const approvalColumns = `id, customer_id, type, description, amount,
	timestamp, status, resolved_at, resolved_by`

// CreatePendingApproval inserts a pending approval and returns its ID.
func (t *Tx) CreatePendingApproval(ctx context.Context, a model.PendingApproval) (int64, error) {
	if !a.Type.Valid() {
		return 0, fmt.Errorf("approval for %s has unknown type %q", a.CustomerID, a.Type)
	}
	res, err := t.tx.ExecContext(ctx, `
		INSERT INTO pending_approvals (customer_id, type, description, amount, timestamp, status)
		VALUES (?, ?, ?, ?, ?, ?)`,
		a.CustomerID, string(a.Type), a.Description, moneyText(a.Amount),
		timeText(a.Timestamp), string(model.ApprovalPending))
	if err != nil {
		return 0, fmt.Errorf("creating pending approval for %s: %w", a.CustomerID, err)
	}
	return res.LastInsertId()
}

// GetPendingApproval returns an approval by ID, or model.ErrNotFound.
func (s *Store) GetPendingApproval(ctx context.Context, id int64) (model.PendingApproval, error) {
	return getPendingApproval(ctx, s.db, id)
}

// GetPendingApproval returns an approval by ID within the unit of work.
func (t *Tx) GetPendingApproval(ctx context.Context, id int64) (model.PendingApproval, error) {
	return getPendingApproval(ctx, t.tx, id)
}

func getPendingApproval(ctx context.Context, q querier, id int64) (model.PendingApproval, error) {
	row := q.QueryRowContext(ctx,
		`SELECT `+approvalColumns+` FROM pending_approvals WHERE id = ?`, id)
	a, err := scanApproval(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.PendingApproval{}, fmt.Errorf("approval %d: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return model.PendingApproval{}, fmt.Errorf("loading approval %d: %w", id, err)
	}
	return a, nil
}

// PendingApprovalsForCustomer returns a customer's unresolved approvals,
// newest first.
func (s *Store) PendingApprovalsForCustomer(ctx context.Context, customerID string) ([]model.PendingApproval, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+approvalColumns+` FROM pending_approvals
		 WHERE customer_id = ? AND status = ? ORDER BY timestamp DESC, id DESC`,
		customerID, string(model.ApprovalPending))
	if err != nil {
		return nil, fmt.Errorf("listing approvals for %s: %w", customerID, err)
	}
	return collectApprovals(rows)
}

// AllPendingApprovals returns every unresolved approval, newest first.
func (s *Store) AllPendingApprovals(ctx context.Context) ([]model.PendingApproval, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+approvalColumns+` FROM pending_approvals
		 WHERE status = ? ORDER BY timestamp DESC, id DESC`,
		string(model.ApprovalPending))
	if err != nil {
		return nil, fmt.Errorf("listing pending approvals: %w", err)
	}
	return collectApprovals(rows)
}

// SetApprovalStatus transitions a PENDING approval to a terminal status.
// The guard on the current status makes the transition happen exactly once
// even under concurrent resolutions; a second caller gets ErrAlreadyResolved.
func (t *Tx) SetApprovalStatus(ctx context.Context, id int64, status model.ApprovalStatus, resolvedBy string, resolvedAt time.Time) error {
	if !status.Terminal() {
		return fmt.Errorf("approval %d: cannot transition to non-terminal status %q", id, status)
	}
	res, err := t.tx.ExecContext(ctx, `
		UPDATE pending_approvals SET status = ?, resolved_at = ?, resolved_by = ?
		WHERE id = ? AND status = ?`,
		string(status), timeText(resolvedAt), resolvedBy, id, string(model.ApprovalPending))
	if err != nil {
		return fmt.Errorf("resolving approval %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		if _, err := getPendingApproval(ctx, t.tx, id); err != nil {
			return err
		}
		return fmt.Errorf("approval %d: %w", id, model.ErrAlreadyResolved)
	}
	return nil
}

func collectApprovals(rows *sql.Rows) ([]model.PendingApproval, error) {
	defer rows.Close()

	var approvals []model.PendingApproval
	for rows.Next() {
		a, err := scanApproval(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning approval: %w", err)
		}
		approvals = append(approvals, a)
	}
	return approvals, rows.Err()
}

func scanApproval(row rowScanner) (model.PendingApproval, error) {
	var a model.PendingApproval
	var typ, amount, ts, status string
	var resolvedAt, resolvedBy sql.NullString
	err := row.Scan(&a.ID, &a.CustomerID, &typ, &a.Description, &amount,
		&ts, &status, &resolvedAt, &resolvedBy)
	if err != nil {
		return model.PendingApproval{}, err
	}
	a.Type = model.ApprovalType(typ)
	if a.Amount, err = parseDec(amount); err != nil {
		return model.PendingApproval{}, err
	}
	if a.Timestamp, err = parseTime(ts); err != nil {
		return model.PendingApproval{}, err
	}
	a.Status = model.ApprovalStatus(status)
	if a.ResolvedAt, err = parseTime(resolvedAt.String); err != nil {
		return model.PendingApproval{}, err
	}
	a.ResolvedBy = resolvedBy.String
	return a, nil
}
