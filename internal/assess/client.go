package assess

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client requests assessments from an external service, falling back to
// the local rule evaluation when the service cannot be reached or answers
// with an error. A Client with an empty URL always evaluates locally.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient creates an assessment client. url may be empty.
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Assess returns a recommendation for the given input. Remote failures are
// not surfaced: the local evaluation answers instead, with Source marking
// which path produced the result. Invalid input fails either way.
func (c *Client) Assess(ctx context.Context, in Input) (Result, error) {
	// Validate locally first so malformed input is rejected regardless of
	// which path would answer.
	local, err := Evaluate(in)
	if err != nil {
		return Result{}, err
	}
	if c.url == "" {
		return local, nil
	}

	result, err := c.assessRemote(ctx, in)
	if err != nil {
		return local, nil
	}
	return result, nil
}

func (c *Client) assessRemote(ctx context.Context, in Input) (Result, error) {
	body, err := json.Marshal(map[string]any{
		"credit_score":          in.CreditScore,
		"annual_income":         in.AnnualIncome,
		"monthly_debt_payments": in.MonthlyDebtPayments,
		"utilization_rate":      in.UtilizationRate,
		"delinquencies_last_2y": in.DelinquenciesLast2y,
		"current_limit":         in.CurrentLimit,
		"requested_new_limit":   in.RequestedLimit,
	})
	if err != nil {
		return Result{}, fmt.Errorf("encoding assessment request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("building assessment request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("calling assessment service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("assessment service returned %s", resp.Status)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Result{}, fmt.Errorf("decoding assessment response: %w", err)
	}
	if result.RiskFactors == nil {
		result.RiskFactors = []string{}
	}
	result.Source = SourceRemote
	return result, nil
}
