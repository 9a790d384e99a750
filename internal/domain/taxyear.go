package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbook/taxengine/pkg/dateutil"
)

// RateSet holds the four marginal rates for one income stream. Rates are
// fractions (0.20 for 20%).
type RateSet struct {
	Lo         decimal.Decimal `yaml:"lo" json:"lo"`
	Basic      decimal.Decimal `yaml:"basic" json:"basic"`
	Hi         decimal.Decimal `yaml:"hi" json:"hi"`
	Additional decimal.Decimal `yaml:"additional" json:"additional"`
}

// TaxYearParameters is the immutable parameter set for one fiscal year. One
// instance is loaded per year and shared read-only by every pass over it.
type TaxYearParameters struct {
	// Year is the fiscal start year: 2010 means 6 Apr 2010 to 5 Apr 2011.
	Year int `yaml:"year" json:"year"`

	Allowance      decimal.Decimal `yaml:"allowance" json:"allowance"`
	LoAgeAllowance decimal.Decimal `yaml:"lo_age_allowance" json:"lo_age_allowance"`
	HiAgeAllowance decimal.Decimal `yaml:"hi_age_allowance" json:"hi_age_allowance"`

	// AgeAllowanceLimit is the income above which the age allowance tapers;
	// AdditionalIncomeLimit is the boundary of the additional-rate band and
	// the threshold of the second allowance taper.
	AgeAllowanceLimit     decimal.Decimal `yaml:"age_allowance_limit" json:"age_allowance_limit"`
	AdditionalIncomeLimit decimal.Decimal `yaml:"additional_income_limit" json:"additional_income_limit"`

	LoBand    decimal.Decimal `yaml:"lo_band" json:"lo_band"`
	BasicBand decimal.Decimal `yaml:"basic_band" json:"basic_band"`

	SalaryRates       RateSet `yaml:"salary_rates" json:"salary_rates"`
	InterestRates     RateSet `yaml:"interest_rates" json:"interest_rates"`
	DividendRates     RateSet `yaml:"dividend_rates" json:"dividend_rates"`
	CapitalGainsRates RateSet `yaml:"capital_gains_rates" json:"capital_gains_rates"`

	HasLoSalaryBand      bool `yaml:"has_lo_salary_band" json:"has_lo_salary_band"`
	HasAdditionalTaxBand bool `yaml:"has_additional_tax_band" json:"has_additional_tax_band"`

	RentalAllowance       decimal.Decimal `yaml:"rental_allowance" json:"rental_allowance"`
	CapitalGainsAllowance decimal.Decimal `yaml:"capital_gains_allowance" json:"capital_gains_allowance"`

	// CapitalGainsAsIncome selects the regime where capital gains share the
	// income bands; otherwise the dedicated capital-gains rate applies to the
	// whole post-exemption remainder.
	CapitalGainsAsIncome bool `yaml:"capital_gains_as_income" json:"capital_gains_as_income"`
}

// FiscalStart returns the first day of the fiscal year.
func (p *TaxYearParameters) FiscalStart() time.Time {
	return dateutil.FiscalYearStart(p.Year)
}

// FiscalEnd returns the last day of the fiscal year.
func (p *TaxYearParameters) FiscalEnd() time.Time {
	return dateutil.FiscalYearEnd(p.Year)
}

// HiBandWidth returns the width of the high-rate band: the additional-rate
// boundary less the basic band. Zero when the year has no additional rate,
// in which case the high rate is uncapped at the margin.
func (p *TaxYearParameters) HiBandWidth() decimal.Decimal {
	if !p.HasAdditionalTaxBand {
		return decimal.Zero
	}
	w := p.AdditionalIncomeLimit.Sub(p.BasicBand)
	if w.IsNegative() {
		return decimal.Zero
	}
	return w
}
