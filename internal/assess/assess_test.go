package assess

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solobank-dev/solobank/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func strongInput() Input {
	return Input{
		CreditScore:         760,
		AnnualIncome:        dec("120000"),
		MonthlyDebtPayments: dec("2000"), // DTI 20%
		UtilizationRate:     dec("0.30"),
		DelinquenciesLast2y: 0,
		CurrentLimit:        dec("10000"),
		RequestedLimit:      dec("15000"), // 50% increase
	}
}

func TestEvaluate_Approve(t *testing.T) {
	result, err := Evaluate(strongInput())
	require.NoError(t, err)

	assert.Equal(t, Approve, result.Recommendation)
	assert.Equal(t, "All credit metrics are strong.", result.Rationale)
	assert.NotNil(t, result.RiskFactors)
	assert.Empty(t, result.RiskFactors)
	assert.Equal(t, SourceLocal, result.Source)
}

func TestEvaluate_ConditionalApprove(t *testing.T) {
	// Two factors (high utilization, large increase) but a strong score.
	in := strongInput()
	in.CreditScore = 705
	in.UtilizationRate = dec("0.75")
	in.RequestedLimit = dec("25000")

	result, err := Evaluate(in)
	require.NoError(t, err)

	assert.Equal(t, ConditionalApprove, result.Recommendation)
	assert.Len(t, result.RiskFactors, 2)
	assert.Contains(t, result.RiskFactors, "High credit utilization (75%)")
	assert.Contains(t, result.RiskFactors, "Large increase requested (150%)")
}

func TestEvaluate_DenyOnManyFactors(t *testing.T) {
	in := Input{
		CreditScore:         640,
		AnnualIncome:        dec("42000"),
		MonthlyDebtPayments: dec("1750"), // DTI 50%
		UtilizationRate:     dec("0.85"),
		DelinquenciesLast2y: 2,
		CurrentLimit:        dec("5000"),
		RequestedLimit:      dec("12000"), // 140% increase
	}

	result, err := Evaluate(in)
	require.NoError(t, err)

	assert.Equal(t, Deny, result.Recommendation)
	assert.Equal(t, "Multiple risk factors present.", result.Rationale)
	assert.Len(t, result.RiskFactors, 5)
	assert.Contains(t, result.RiskFactors, "Below-average credit score (640)")
	assert.Contains(t, result.RiskFactors, "High debt-to-income ratio (50%)")
	assert.Contains(t, result.RiskFactors, "2 delinquencies in last 2 years")
}

func TestEvaluate_DenyWhenScoreTooLowForConditional(t *testing.T) {
	// One factor only, but the score is below the conditional threshold.
	in := strongInput()
	in.CreditScore = 680
	in.UtilizationRate = dec("0.75")

	result, err := Evaluate(in)
	require.NoError(t, err)

	assert.Equal(t, Deny, result.Recommendation)
	assert.Len(t, result.RiskFactors, 1)
}

func TestEvaluate_BoundariesAreNotFactors(t *testing.T) {
	// Values exactly at each threshold do not trip the rules.
	in := Input{
		CreditScore:         670,
		AnnualIncome:        dec("60000"),
		MonthlyDebtPayments: dec("2000"), // DTI exactly 40%
		UtilizationRate:     dec("0.70"),
		DelinquenciesLast2y: 0,
		CurrentLimit:        dec("10000"),
		RequestedLimit:      dec("20000"), // exactly 100% increase
	}

	result, err := Evaluate(in)
	require.NoError(t, err)
	assert.Equal(t, Approve, result.Recommendation)
	assert.Empty(t, result.RiskFactors)
}

func TestEvaluate_RejectsMalformedInput(t *testing.T) {
	in := strongInput()
	in.AnnualIncome = decimal.Zero
	_, err := Evaluate(in)
	require.ErrorIs(t, err, model.ErrInvalidInput)

	in = strongInput()
	in.CurrentLimit = dec("-100")
	_, err = Evaluate(in)
	require.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestInputFromCustomer(t *testing.T) {
	c := model.Customer{
		ID:                  "CUST-0001",
		CreditScore:         710,
		CurrentCreditLimit:  dec("10000"),
		AnnualIncome:        dec("80000"),
		MonthlyDebtPayments: dec("1000"),
		UtilizationRate:     dec("0.20"),
		DelinquenciesLast2y: 1,
	}

	in := InputFromCustomer(c, dec("18000"))
	assert.Equal(t, 710, in.CreditScore)
	assert.Equal(t, 1, in.DelinquenciesLast2y)
	assert.True(t, in.RequestedLimit.Equal(dec("18000")))
	assert.True(t, in.CurrentLimit.Equal(dec("10000")))
}
