package output_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbook/taxengine/internal/calculation"
	"github.com/finbook/taxengine/internal/domain"
	"github.com/finbook/taxengine/internal/output"
)

func testYear() *domain.TaxYearParameters {
	return &domain.TaxYearParameters{
		Year:                  2010,
		Allowance:             decimal.NewFromInt(10000),
		LoAgeAllowance:        decimal.NewFromInt(11000),
		HiAgeAllowance:        decimal.NewFromInt(12000),
		AgeAllowanceLimit:     decimal.NewFromInt(30000),
		AdditionalIncomeLimit: decimal.NewFromInt(150000),
		LoBand:                decimal.NewFromInt(2000),
		BasicBand:             decimal.NewFromInt(30000),
		SalaryRates: domain.RateSet{
			Lo:    decimal.RequireFromString("0.10"),
			Basic: decimal.RequireFromString("0.20"),
			Hi:    decimal.RequireFromString("0.40"),
		},
		InterestRates: domain.RateSet{
			Lo:    decimal.RequireFromString("0.10"),
			Basic: decimal.RequireFromString("0.20"),
			Hi:    decimal.RequireFromString("0.40"),
		},
		DividendRates: domain.RateSet{
			Basic: decimal.RequireFromString("0.10"),
			Hi:    decimal.RequireFromString("0.325"),
		},
		CapitalGainsRates: domain.RateSet{
			Basic: decimal.RequireFromString("0.18"),
			Hi:    decimal.RequireFromString("0.28"),
		},
		RentalAllowance:       decimal.NewFromInt(1000),
		CapitalGainsAllowance: decimal.NewFromInt(3000),
		CapitalGainsAsIncome:  true,
	}
}

func TestReportBeforeTaxPass(t *testing.T) {
	a := calculation.NewAnalysis(testYear(), time.Time{}, nil)
	var buf bytes.Buffer
	rw := &output.ReportWriter{W: &buf}
	require.NoError(t, rw.Write(a))
	assert.Contains(t, buf.String(), "no tax computation available")
	assert.Contains(t, buf.String(), "RAW")
}

func TestReportRendersComputation(t *testing.T) {
	totals := domain.NewSummarySet()
	totals.Set(domain.CatGrossSalary, decimal.NewFromInt(25000), decimal.Zero)
	totals.Set(domain.CatTaxPaid, decimal.NewFromInt(2000), decimal.Zero)

	a := calculation.NewAnalysis(testYear(), time.Time{}, totals)
	require.NoError(t, a.ValueAssets(testYear().FiscalEnd()))
	require.NoError(t, a.CalculateTax())

	var buf bytes.Buffer
	rw := &output.ReportWriter{W: &buf}
	require.NoError(t, rw.Write(a))
	report := buf.String()

	assert.Contains(t, report, "TAX COMPUTATION")
	assert.Contains(t, report, "Allowance:          £10000.00")
	assert.NotContains(t, report, "Adjusted allowance", "no taper, no adjusted line")

	assert.Contains(t, report, "tax-due-salary")
	assert.Contains(t, report, "salary-tax-free")
	assert.Contains(t, report, "salary-at-basic-rate")
	assert.Contains(t, report, "at 20% = £3000.00")

	assert.Contains(t, report, "Total tax due: £3000.00")
	assert.Contains(t, report, "Outstanding:   £1000.00")
	assert.NotContains(t, report, "Overpaid")
	assert.NotContains(t, report, "Top-slicing")
}

func TestReportShowsAdjustedAllowanceAndSlicing(t *testing.T) {
	totals := domain.NewSummarySet()
	totals.Set(domain.CatGrossSalary, decimal.NewFromInt(31000), decimal.Zero)

	birth := time.Date(1944, time.January, 1, 0, 0, 0, 0, time.UTC)
	a := calculation.NewAnalysis(testYear(), birth, totals)
	ev, err := calculation.NewChargeableEvent(time.Date(2010, time.July, 1, 0, 0, 0, 0, time.UTC),
		"bond", decimal.NewFromInt(40000), decimal.Zero, 4)
	require.NoError(t, err)
	a.Register().Add(ev)

	require.NoError(t, a.ValueAssets(testYear().FiscalEnd()))
	require.NoError(t, a.CalculateTax())

	var buf bytes.Buffer
	rw := &output.ReportWriter{W: &buf}
	require.NoError(t, rw.Write(a))
	report := buf.String()

	assert.Contains(t, report, "Adjusted allowance")
	assert.Contains(t, report, "Age at year end:    67")
	assert.Contains(t, report, "taxable-gains-at-hi-rate")
}
