// Package assess computes credit risk recommendations. Evaluate is the
// deterministic local rule set; Client reaches an external assessment
// service and substitutes Evaluate when it cannot be reached, so callers
// see the same result shape either way.
package assess

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/solobank-dev/solobank/internal/model"
)

// Recommendation is the outcome of a credit assessment.
type Recommendation string

const (
	Approve            Recommendation = "APPROVE"
	ConditionalApprove Recommendation = "CONDITIONAL_APPROVE"
	Deny               Recommendation = "DENY"
)

// Source identifies which path produced a Result.
const (
	SourceLocal  = "LOCAL_FALLBACK"
	SourceRemote = "ASSESSMENT_SERVICE"
)

// Input holds the customer metrics a rule evaluation needs.
type Input struct {
	CreditScore         int
	AnnualIncome        decimal.Decimal
	MonthlyDebtPayments decimal.Decimal
	UtilizationRate     decimal.Decimal
	DelinquenciesLast2y int
	CurrentLimit        decimal.Decimal
	RequestedLimit      decimal.Decimal
}

// InputFromCustomer builds an Input from a customer record and the
// requested new limit.
func InputFromCustomer(c model.Customer, requestedLimit decimal.Decimal) Input {
	return Input{
		CreditScore:         c.CreditScore,
		AnnualIncome:        c.AnnualIncome,
		MonthlyDebtPayments: c.MonthlyDebtPayments,
		UtilizationRate:     c.UtilizationRate,
		DelinquenciesLast2y: c.DelinquenciesLast2y,
		CurrentLimit:        c.CurrentCreditLimit,
		RequestedLimit:      requestedLimit,
	}
}

// Result is the assessment outcome, shaped identically for the local rule
// set and the external service.
type Result struct {
	Recommendation Recommendation `json:"recommendation"`
	Rationale      string         `json:"rationale"`
	RiskFactors    []string       `json:"risk_factors"`
	Source         string         `json:"source"`
}

// Rule thresholds.
var (
	minScore       = 670
	strongScore    = 700
	maxDTI         = decimal.NewFromFloat(0.40)
	maxUtilization = decimal.NewFromFloat(0.70)
	maxIncreasePct = decimal.NewFromInt(1) // 100% of current limit
)

// Evaluate runs the local credit assessment rules. It is pure and
// deterministic: the same input always yields the same result. Malformed
// input (non-positive income or current limit) fails with
// model.ErrInvalidInput instead of propagating a division fault.
func Evaluate(in Input) (Result, error) {
	if !in.AnnualIncome.IsPositive() {
		return Result{}, fmt.Errorf("annual income %s: %w", in.AnnualIncome, model.ErrInvalidInput)
	}
	if !in.CurrentLimit.IsPositive() {
		return Result{}, fmt.Errorf("current limit %s: %w", in.CurrentLimit, model.ErrInvalidInput)
	}

	dti := in.MonthlyDebtPayments.Mul(decimal.NewFromInt(12)).Div(in.AnnualIncome)
	increasePct := in.RequestedLimit.Sub(in.CurrentLimit).Div(in.CurrentLimit)

	factors := []string{}
	if in.CreditScore < minScore {
		factors = append(factors, fmt.Sprintf("Below-average credit score (%d)", in.CreditScore))
	}
	if dti.GreaterThan(maxDTI) {
		factors = append(factors, fmt.Sprintf("High debt-to-income ratio (%s%%)", dti.Mul(decimal.NewFromInt(100)).Round(0)))
	}
	if in.UtilizationRate.GreaterThan(maxUtilization) {
		factors = append(factors, fmt.Sprintf("High credit utilization (%s%%)", in.UtilizationRate.Mul(decimal.NewFromInt(100)).Round(0)))
	}
	if in.DelinquenciesLast2y > 0 {
		factors = append(factors, fmt.Sprintf("%d delinquencies in last 2 years", in.DelinquenciesLast2y))
	}
	if increasePct.GreaterThan(maxIncreasePct) {
		factors = append(factors, fmt.Sprintf("Large increase requested (%s%%)", increasePct.Mul(decimal.NewFromInt(100)).Round(0)))
	}

	var recommendation Recommendation
	var rationale string
	switch {
	case len(factors) == 0:
		recommendation = Approve
		rationale = "All credit metrics are strong."
	case len(factors) <= 2 && in.CreditScore >= strongScore:
		recommendation = ConditionalApprove
		rationale = "Mostly positive profile with minor concerns."
	default:
		recommendation = Deny
		rationale = "Multiple risk factors present."
	}

	return Result{
		Recommendation: recommendation,
		Rationale:      rationale,
		RiskFactors:    factors,
		Source:         SourceLocal,
	}, nil
}
