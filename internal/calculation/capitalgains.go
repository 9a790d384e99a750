package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/finbook/taxengine/internal/domain"
)

// taxCapitalGains runs last: the annual exemption comes off first (its own
// pool, never the personal allowance), then either the shared income bands
// at the capital-gains rates, or — outside the gains-as-income regime — the
// dedicated rate on the whole remainder.
func (a *Analysis) taxCapitalGains(bands *TaxBands) error {
	gross := a.totals.Summary(domain.CatGrossCapitalGains).Amount
	sp, tb, err := a.newStreamPass(domain.CatTaxDueCapitalGains, gross)
	if err != nil {
		return err
	}

	free := decimal.Min(gross, a.params.CapitalGainsAllowance)
	sp.remaining = sp.remaining.Sub(free)
	if _, err := a.fileLeaf(domain.CatCapitalGainsFree, free, decimal.Zero, decimal.Zero, false, sp.parent); err != nil {
		return err
	}

	rates := a.params.CapitalGainsRates
	if a.params.CapitalGainsAsIncome {
		if err := sp.step(domain.CatCapitalGainsBasic, rates.Basic, true, &bands.BasicBand); err != nil {
			return err
		}
		if err := sp.upperSteps(domain.CatCapitalGainsHi, domain.CatCapitalGainsAdditional, rates, bands); err != nil {
			return err
		}
	} else {
		if err := sp.step(domain.CatCapitalGainsBasic, rates.Basic, true); err != nil {
			return err
		}
	}

	tb.Amount = gross
	tb.Taxation = sp.tax
	return nil
}
