package calculation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbook/taxengine/internal/domain"
)

// TestAnalysisStateOrdering checks the step sequence only moves forward and
// out-of-order calls change nothing.
func TestAnalysisStateOrdering(t *testing.T) {
	totals := domain.NewSummarySet()
	totals.Set(domain.CatGrossSalary, decimal.NewFromInt(25000), decimal.Zero)
	a := NewAnalysis(testYear(), time.Time{}, totals)
	date := testYear().FiscalEnd()

	// Tax and totals steps before valuation are silent no-ops.
	require.NoError(t, a.CalculateTax())
	assert.Equal(t, StateRaw, a.State())
	require.NoError(t, a.ProduceTotals())
	assert.Equal(t, StateRaw, a.State())
	assert.Equal(t, 0, a.Buckets().Len())

	require.NoError(t, a.ValueAssets(date))
	assert.Equal(t, StateValued, a.State())

	// A second valuation changes nothing.
	require.NoError(t, a.ValueAssets(date))
	assert.Equal(t, StateValued, a.State())

	// CalculateTax from VALUED runs the totals step itself.
	require.NoError(t, a.CalculateTax())
	assert.Equal(t, StateTaxed, a.State())
	firstBuckets := a.Buckets()
	firstTotal := a.TotalTaxDue

	// Re-running a finished analysis leaves the tree untouched.
	require.NoError(t, a.CalculateTax())
	assert.Same(t, firstBuckets, a.Buckets())
	assert.True(t, a.TotalTaxDue.Equal(firstTotal))
}

// TestCalculateTaxWithoutParameters checks an ad-hoc analysis (no tax year)
// values and totals but never taxes.
func TestCalculateTaxWithoutParameters(t *testing.T) {
	a := NewAnalysis(nil, time.Time{}, nil)
	require.NoError(t, a.ValueAssets(time.Date(2011, time.April, 5, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, a.CalculateTax())
	assert.Equal(t, StateTotalled, a.State())
	assert.Equal(t, 0, a.Buckets().Len())
}

// TestProduceTotalsRoutesLedgerFigures checks capital-gains income and
// losses net into the gross capital gains total and the register drives the
// taxable-gains total.
func TestProduceTotalsRoutesLedgerFigures(t *testing.T) {
	totals := domain.NewSummarySet()
	totals.Credit(domain.CatCapitalGainsIncome, decimal.NewFromInt(800))
	totals.Credit(domain.CatCapitalLoss, decimal.NewFromInt(300))

	a := NewAnalysis(testYear(), time.Time{}, totals)
	ev, err := NewChargeableEvent(time.Date(2010, time.June, 1, 0, 0, 0, 0, time.UTC),
		"bond surrender", decimal.NewFromInt(4000), decimal.Zero, 4)
	require.NoError(t, err)
	a.Register().Add(ev)

	require.NoError(t, a.ValueAssets(testYear().FiscalEnd()))
	require.NoError(t, a.ProduceTotals())
	assert.Equal(t, StateTotalled, a.State())

	assert.True(t, a.Totals().Summary(domain.CatGrossCapitalGains).Amount.Equal(decimal.NewFromInt(500)))
	assert.True(t, a.Totals().Summary(domain.CatGrossTaxableGains).Amount.Equal(decimal.NewFromInt(4000)))
}

// TestValueAssetsRoutesMarketMovement checks a first valuation lands the
// whole value as market growth.
func TestValueAssetsRoutesMarketMovement(t *testing.T) {
	a := NewAnalysis(testYear(), time.Time{}, nil)
	a.AddHolding(&domain.Asset{
		Name:     "index fund",
		IsPriced: true,
		Price:    decimal.NewFromInt(10),
		Units:    decimal.NewFromInt(100),
	})
	a.AddHolding(&domain.Asset{Name: "current account", IsMoney: true, Cost: decimal.NewFromInt(2500)})

	require.NoError(t, a.ValueAssets(testYear().FiscalEnd()))

	// The money account is unpriced, so only the fund was valued.
	require.Len(t, a.Holdings(), 2)
	assert.Equal(t, 1, a.Holdings()[0].Ledger.Len())
	assert.Equal(t, 0, a.Holdings()[1].Ledger.Len())

	assert.True(t, a.Totals().Summary(domain.CatMarketGrowth).Amount.Equal(decimal.NewFromInt(1000)))
	assert.True(t, a.MarketIncome().Equal(decimal.NewFromInt(1000)))
	assert.True(t, a.MarketExpense().IsZero())
}

// TestAgeFlowsFromBirthDate checks the age at fiscal year end drives the age
// allowance.
func TestAgeFlowsFromBirthDate(t *testing.T) {
	totals := domain.NewSummarySet()
	totals.Set(domain.CatGrossSalary, decimal.NewFromInt(20000), decimal.Zero)

	// Born 1 Jan 1945: 66 at the 5 Apr 2011 year end.
	birth := time.Date(1945, time.January, 1, 0, 0, 0, 0, time.UTC)
	a := NewAnalysis(testYear(), birth, totals)
	require.NoError(t, a.ValueAssets(testYear().FiscalEnd()))
	require.NoError(t, a.CalculateTax())

	assert.Equal(t, 66, a.ComputedAge)
	assert.True(t, a.HasAgeAllowance)
	b, err := a.Buckets().Get(domain.CatOriginalAllowance)
	require.NoError(t, err)
	assert.True(t, b.Amount.Equal(decimal.NewFromInt(11000)))
	assertAmount(t, 11000, leafAmount(t, a, domain.CatSalaryFree))
}

// TestTaxPaidReconciliation checks overpayment and shortfall land in the
// profit and loss buckets.
func TestTaxPaidReconciliation(t *testing.T) {
	tests := []struct {
		name           string
		taxPaid        int64
		expectedProfit int64
		expectedLoss   int64
	}{
		{"Underpaid", 1000, 0, 2000},
		{"Exactly paid", 3000, 0, 0},
		{"Overpaid", 5000, 2000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := domain.NewSummarySet()
			totals.Set(domain.CatGrossSalary, decimal.NewFromInt(25000), decimal.Zero)
			totals.Set(domain.CatTaxPaid, decimal.NewFromInt(tt.taxPaid), decimal.Zero)
			a := runTaxPass(t, testYear(), totals)

			assertAmount(t, 3000, a.TotalTaxDue)
			assertAmount(t, tt.expectedProfit, leafAmount(t, a, domain.CatTaxProfit))
			assertAmount(t, tt.expectedLoss, leafAmount(t, a, domain.CatTaxLoss))
		})
	}
}
