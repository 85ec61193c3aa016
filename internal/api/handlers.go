package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/solobank-dev/solobank/internal/assess"
	"github.com/solobank-dev/solobank/internal/ledger"
	"github.com/solobank-dev/solobank/internal/model"
)

func (s *Server) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := s.ledger.Store().ListCustomers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]map[string]string, 0, len(customers))
	for _, c := range customers {
		out = append(out, map[string]string{"id": c.ID, "name": c.Name, "email": c.Email})
	}
	writeJSON(w, http.StatusOK, out)
}

type customerResponse struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Email               string          `json:"email"`
	CreditScore         int             `json:"credit_score"`
	CurrentCreditLimit  decimal.Decimal `json:"current_credit_limit"`
	AccountAgeMonths    int             `json:"account_age_months"`
	AnnualIncome        decimal.Decimal `json:"annual_income"`
	MonthlyDebtPayments decimal.Decimal `json:"monthly_debt_payments"`
	UtilizationRate     decimal.Decimal `json:"utilization_rate"`
	RecentInquiries     int             `json:"recent_inquiries"`
	DelinquenciesLast2y int             `json:"delinquencies_last_2y"`
}

func (s *Server) handleGetCustomer(w http.ResponseWriter, r *http.Request) {
	c, err := s.ledger.Store().GetCustomer(r.Context(), chi.URLParam(r, "customerID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customerResponse{
		ID:                  c.ID,
		Name:                c.Name,
		Email:               c.Email,
		CreditScore:         c.CreditScore,
		CurrentCreditLimit:  c.CurrentCreditLimit,
		AccountAgeMonths:    c.AccountAgeMonths,
		AnnualIncome:        c.AnnualIncome,
		MonthlyDebtPayments: c.MonthlyDebtPayments,
		UtilizationRate:     c.UtilizationRate,
		RecentInquiries:     c.RecentInquiries,
		DelinquenciesLast2y: c.DelinquenciesLast2y,
	})
}

type accountResponse struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customer_id"`
	Type       string          `json:"type"`
	Name       string          `json:"name"`
	Balance    decimal.Decimal `json:"balance"`
	Currency   string          `json:"currency"`
}

func (s *Server) handleGetAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.ledger.Store().GetAccounts(r.Context(), chi.URLParam(r, "customerID"))
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]accountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, accountResponse{
			ID:         a.ID,
			CustomerID: a.CustomerID,
			Type:       string(a.Type),
			Name:       a.Name,
			Balance:    a.Balance,
			Currency:   a.Currency,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

type transactionResponse struct {
	ID               int64           `json:"id"`
	AccountID        string          `json:"account_id"`
	CustomerID       string          `json:"customer_id"`
	Timestamp        time.Time       `json:"timestamp"`
	Type             string          `json:"type"`
	Description      string          `json:"description"`
	Amount           decimal.Decimal `json:"amount"`
	BalanceAfter     decimal.Decimal `json:"balance_after"`
	RelatedAccountID string          `json:"related_account_id,omitempty"`
}

func toTransactionResponses(txns []model.Transaction) []transactionResponse {
	out := make([]transactionResponse, 0, len(txns))
	for _, t := range txns {
		out = append(out, transactionResponse{
			ID:               t.ID,
			AccountID:        t.AccountID,
			CustomerID:       t.CustomerID,
			Timestamp:        t.Timestamp,
			Type:             string(t.Type),
			Description:      t.Description,
			Amount:           t.Amount,
			BalanceAfter:     t.BalanceAfter,
			RelatedAccountID: t.RelatedAccountID,
		})
	}
	return out
}

func (s *Server) handleCustomerTransactions(w http.ResponseWriter, r *http.Request) {
	txns, err := s.ledger.Store().CustomerTransactions(r.Context(),
		chi.URLParam(r, "customerID"), queryLimit(r, 30))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponses(txns))
}

func (s *Server) handleAccountTransactions(w http.ResponseWriter, r *http.Request) {
	txns, err := s.ledger.Store().AccountTransactions(r.Context(),
		chi.URLParam(r, "accountID"), queryLimit(r, 20))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponses(txns))
}

type transferRequest struct {
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	RequestKey    string          `json:"request_key,omitempty"`
}

type transferResponse struct {
	Status      string          `json:"status"`
	TransferID  int64           `json:"transfer_id"`
	FromBalance decimal.Decimal `json:"from_balance"`
	ToBalance   decimal.Decimal `json:"to_balance"`
	Timestamp   time.Time       `json:"timestamp"`
	Duplicate   bool            `json:"duplicate,omitempty"`
}

func (s *Server) handleTransfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	result, err := s.ledger.Transfer(r.Context(), ledger.TransferParams{
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Amount:        req.Amount,
		Description:   req.Description,
		RequestKey:    req.RequestKey,
	})
	s.countOp("transfer", err)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, transferResponse{
		Status:      "SUCCESS",
		TransferID:  result.TransferID,
		FromBalance: result.FromBalance,
		ToBalance:   result.ToBalance,
		Timestamp:   result.Timestamp,
		Duplicate:   result.Duplicate,
	})
}

type creditLimitRequest struct {
	NewLimit   decimal.Decimal `json:"new_limit"`
	Reason     string          `json:"reason"`
	AssessedBy string          `json:"assessed_by,omitempty"`
}

type creditLimitResponse struct {
	Status         string          `json:"status"`
	CustomerID     string          `json:"customer_id"`
	PreviousLimit  decimal.Decimal `json:"previous_limit"`
	NewLimit       decimal.Decimal `json:"new_limit"`
	IncreaseAmount decimal.Decimal `json:"increase_amount"`
	Timestamp      time.Time       `json:"timestamp"`
}

func (s *Server) handleUpdateCreditLimit(w http.ResponseWriter, r *http.Request) {
	var req creditLimitRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	assessedBy := req.AssessedBy
	if assessedBy == "" {
		assessedBy = "credit-assessment-agent"
	}
	result, err := s.ledger.ApplyLimitChange(r.Context(),
		chi.URLParam(r, "customerID"), req.NewLimit, req.Reason, assessedBy)
	s.countOp("apply_limit_change", err)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, creditLimitResponse{
		Status:         "SUCCESS",
		CustomerID:     result.CustomerID,
		PreviousLimit:  result.PreviousLimit,
		NewLimit:       result.NewLimit,
		IncreaseAmount: result.IncreaseAmount,
		Timestamp:      result.Timestamp,
	})
}

type creditHistoryResponse struct {
	ID         int64           `json:"id"`
	CustomerID string          `json:"customer_id"`
	Timestamp  time.Time       `json:"timestamp"`
	OldLimit   decimal.Decimal `json:"old_limit"`
	NewLimit   decimal.Decimal `json:"new_limit"`
	Reason     string          `json:"reason"`
	Status     string          `json:"status"`
	AssessedBy string          `json:"assessed_by"`
}

func (s *Server) handleCreditHistory(w http.ResponseWriter, r *http.Request) {
	changes, err := s.ledger.Store().CreditLimitHistory(r.Context(), chi.URLParam(r, "customerID"))
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]creditHistoryResponse, 0, len(changes))
	for _, ch := range changes {
		out = append(out, creditHistoryResponse{
			ID:         ch.ID,
			CustomerID: ch.CustomerID,
			Timestamp:  ch.Timestamp,
			OldLimit:   ch.OldLimit,
			NewLimit:   ch.NewLimit,
			Reason:     ch.Reason,
			Status:     string(ch.Status),
			AssessedBy: ch.AssessedBy,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

type paymentResponse struct {
	Month      string          `json:"month"`
	AmountDue  decimal.Decimal `json:"amount_due"`
	AmountPaid decimal.Decimal `json:"amount_paid"`
	OnTime     bool            `json:"on_time"`
}

func (s *Server) handlePaymentHistory(w http.ResponseWriter, r *http.Request) {
	records, err := s.ledger.Store().PaymentHistory(r.Context(), chi.URLParam(r, "customerID"))
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]paymentResponse, 0, len(records))
	for _, p := range records {
		out = append(out, paymentResponse{
			Month:      p.Month,
			AmountDue:  p.AmountDue,
			AmountPaid: p.AmountPaid,
			OnTime:     p.OnTime,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

type approvalResponse struct {
	ID          int64           `json:"id"`
	CustomerID  string          `json:"customer_id"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Timestamp   time.Time       `json:"timestamp"`
	Status      string          `json:"status"`
}

func toApprovalResponses(approvals []model.PendingApproval) []approvalResponse {
	out := make([]approvalResponse, 0, len(approvals))
	for _, a := range approvals {
		out = append(out, approvalResponse{
			ID:          a.ID,
			CustomerID:  a.CustomerID,
			Type:        string(a.Type),
			Description: a.Description,
			Amount:      a.Amount,
			Timestamp:   a.Timestamp,
			Status:      string(a.Status),
		})
	}
	return out
}

func (s *Server) handleCustomerApprovals(w http.ResponseWriter, r *http.Request) {
	approvals, err := s.ledger.Store().PendingApprovalsForCustomer(r.Context(), chi.URLParam(r, "customerID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toApprovalResponses(approvals))
}

func (s *Server) handleListApprovals(w http.ResponseWriter, r *http.Request) {
	approvals, err := s.ledger.Store().AllPendingApprovals(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toApprovalResponses(approvals))
}

type createApprovalRequest struct {
	CustomerID        string          `json:"customer_id"`
	RequestedLimit    decimal.Decimal `json:"requested_new_limit"`
	CurrentLimit      decimal.Decimal `json:"current_limit"`
	Reason            string          `json:"reason"`
	AssessmentSummary string          `json:"assessment_summary"`
}

func (s *Server) handleCreateApproval(w http.ResponseWriter, r *http.Request) {
	var req createApprovalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	approvalID, err := s.ledger.CreateCreditLimitApproval(r.Context(),
		req.CustomerID, req.RequestedLimit, req.CurrentLimit, req.Reason, req.AssessmentSummary)
	s.countOp("create_credit_limit_approval", err)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":          string(model.ChangePendingReview),
		"approval_id":     approvalID,
		"customer_id":     req.CustomerID,
		"requested_limit": req.RequestedLimit,
	})
}

type resolveApprovalRequest struct {
	Action     string `json:"action"`
	ResolvedBy string `json:"resolved_by,omitempty"`
}

func (s *Server) handleResolveApproval(w http.ResponseWriter, r *http.Request) {
	approvalID, err := strconv.ParseInt(chi.URLParam(r, "approvalID"), 10, 64)
	if err != nil {
		writeError(w, fmt.Errorf("%w: approval id must be numeric", model.ErrInvalidInput))
		return
	}
	var req resolveApprovalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	resolvedBy := req.ResolvedBy
	if resolvedBy == "" {
		resolvedBy = "customer"
	}
	result, err := s.ledger.ResolveApproval(r.Context(), approvalID, ledger.Action(req.Action), resolvedBy)
	s.countOp("resolve_approval", err)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      string(result.Status),
		"approval_id": result.ApprovalID,
		"timestamp":   result.Timestamp,
	})
}

type assessRequest struct {
	CustomerID     string          `json:"customer_id"`
	RequestedLimit decimal.Decimal `json:"requested_new_limit"`
}

func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	var req assessRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	customer, err := s.ledger.Store().GetCustomer(r.Context(), req.CustomerID)
	if err != nil {
		writeError(w, err)
		return
	}
	result, err := s.assessor.Assess(r.Context(), assess.InputFromCustomer(customer, req.RequestedLimit))
	s.countOp("assess", err)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func queryLimit(r *http.Request, fallback int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
