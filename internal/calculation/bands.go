package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/finbook/taxengine/internal/domain"
	money "github.com/finbook/taxengine/pkg/decimal"
)

// TaxBands is the mutable band pool for one tax pass. The six stream
// procedures share a single instance and consume it in their mandated order;
// every field stays non-negative and, apart from the deliberate fold of
// leftover allowance and low band into the basic band after the interest
// step, only ever shrinks.
type TaxBands struct {
	Allowance decimal.Decimal
	LoBand    decimal.Decimal
	BasicBand decimal.Decimal
	HiBand    decimal.Decimal
}

// newTaxBands builds the pool for one pass: band widths straight from the
// year's parameters, allowance from the taper computation.
func newTaxBands(p *domain.TaxYearParameters, allowance decimal.Decimal) *TaxBands {
	return &TaxBands{
		Allowance: allowance,
		LoBand:    p.LoBand,
		BasicBand: p.BasicBand,
		HiBand:    p.HiBandWidth(),
	}
}

// take consumes up to the band's capacity from remaining, clamping the band
// at zero. Returns the amount consumed.
func take(band *decimal.Decimal, remaining decimal.Decimal) decimal.Decimal {
	if remaining.LessThanOrEqual(decimal.Zero) || band.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	used := decimal.Min(remaining, *band)
	*band = band.Sub(used)
	return used
}

// allowanceResult is the outcome of the age and income tapering of the
// personal allowance.
type allowanceResult struct {
	Original        decimal.Decimal
	Adjusted        decimal.Decimal
	Age             int
	HasAgeAllowance bool
	HasReducedAllow bool
}

// calculateAllowances picks the allowance by age band and tapers it by £1
// for every £2 of income over the applicable limits. If the age-related
// taper drops below the standard allowance the standard allowance is
// restored and the age allowance flag cleared; the second taper, applied
// only when the year has an additional rate, may reduce the allowance all
// the way to zero.
func calculateAllowances(p *domain.TaxYearParameters, age int, totalIncome decimal.Decimal) allowanceResult {
	res := allowanceResult{Age: age}

	allowance := p.Allowance
	switch {
	case age >= 75:
		allowance = p.HiAgeAllowance
		res.HasAgeAllowance = true
	case age >= 65:
		allowance = p.LoAgeAllowance
		res.HasAgeAllowance = true
	}
	res.Original = allowance

	if res.HasAgeAllowance && totalIncome.GreaterThan(p.AgeAllowanceLimit) {
		excess := totalIncome.Sub(p.AgeAllowanceLimit)
		reduction := money.NewMoneyFromDecimal(excess).HalveFloor().Decimal
		allowance = allowance.Sub(reduction)
		if allowance.LessThan(p.Allowance) {
			allowance = p.Allowance
			res.HasAgeAllowance = false
		}
		res.HasReducedAllow = true
	}

	if p.HasAdditionalTaxBand && totalIncome.GreaterThan(p.AdditionalIncomeLimit) {
		excess := totalIncome.Sub(p.AdditionalIncomeLimit)
		reduction := money.NewMoneyFromDecimal(excess).HalveFloor().Decimal
		allowance = allowance.Sub(reduction)
		if allowance.IsNegative() {
			allowance = decimal.Zero
		}
		res.HasReducedAllow = true
	}

	res.Adjusted = allowance
	return res
}
