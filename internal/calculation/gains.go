package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/finbook/taxengine/internal/domain"
	money "github.com/finbook/taxengine/pkg/decimal"
)

// gainsOutcome is how a year's chargeable gains were charged.
type gainsOutcome int

const (
	// gainsWithinBand: the whole gain fits the remaining basic band.
	gainsWithinBand gainsOutcome = iota
	// gainsDirect: no relief — basic band exhausted, or the age allowance
	// held after tapering. The gain is taxed straight across the bands.
	gainsDirect
	// gainsSliced: full top-slicing relief.
	gainsSliced
)

// gainsComputation is the immutable outcome of the chargeable-gains step:
// one amount/tax pair per band plus the reconciled total.
type gainsComputation struct {
	outcome gainsOutcome

	basicAmount decimal.Decimal
	basicTax    decimal.Decimal
	hiAmount    decimal.Decimal
	hiTax       decimal.Decimal
	addAmount   decimal.Decimal
	addTax      decimal.Decimal

	totalTax decimal.Decimal
}

// computeTaxableGains charges the year's chargeable gains against the band
// pool. Chargeable life-assurance gains are savings income, so the interest
// rate set applies. Slicing taxes the per-year slice at marginal rates and
// scales the excess over basic rate back up to the full gain; the basic-rate
// portion is charged on the real gain either way. Gains are never sliced
// while the age allowance holds, whatever band remains.
func computeTaxableGains(p *domain.TaxYearParameters, bands *TaxBands, reg *ChargeableEventRegister, hasAgeAllowance bool) gainsComputation {
	rates := p.InterestRates
	gains := reg.GainsTotal()
	sliceTotal := reg.SliceTotal()

	if gains.LessThanOrEqual(bands.BasicBand) {
		used := take(&bands.BasicBand, gains)
		tax := used.Mul(rates.Basic)
		return gainsComputation{
			outcome:     gainsWithinBand,
			basicAmount: used,
			basicTax:    tax,
			totalTax:    tax,
		}
	}

	if bands.BasicBand.IsZero() || hasAgeAllowance || sliceTotal.IsZero() {
		return directGains(p, bands, gains, rates)
	}

	// Full top-slicing relief. The slice pass walks the annualized gain
	// through the bands; its tax is handed back to the individual events.
	basicAvailable := bands.BasicBand
	sliceBasic := decimal.Min(sliceTotal, basicAvailable)
	sliceRest := sliceTotal.Sub(sliceBasic)
	var sliceHi, sliceAdd decimal.Decimal
	if p.HasAdditionalTaxBand {
		sliceHi = decimal.Min(sliceRest, bands.HiBand)
		sliceAdd = sliceRest.Sub(sliceHi)
	} else {
		sliceHi = sliceRest
	}

	sliceTax := sliceBasic.Mul(rates.Basic).
		Add(sliceHi.Mul(rates.Hi)).
		Add(sliceAdd.Mul(rates.Additional))
	reg.ApplyTax(sliceTax, sliceTotal)

	excess := sliceHi.Mul(rates.Hi.Sub(rates.Basic)).
		Add(sliceAdd.Mul(rates.Additional.Sub(rates.Basic)))
	scaledExcess := money.NewMoneyFromDecimal(excess).
		Apportion(money.NewMoneyFromDecimal(gains), money.NewMoneyFromDecimal(sliceTotal)).Decimal
	totalTax := gains.Mul(rates.Basic).Add(scaledExcess)

	// Leaf amounts scale the slice's band occupation back up to the gain;
	// the basic leaf absorbs the truncation remainder, the last charged leaf
	// the tax remainder.
	hiAmount := money.NewMoneyFromDecimal(sliceHi).
		Apportion(money.NewMoneyFromDecimal(gains), money.NewMoneyFromDecimal(sliceTotal)).Decimal
	addAmount := money.NewMoneyFromDecimal(sliceAdd).
		Apportion(money.NewMoneyFromDecimal(gains), money.NewMoneyFromDecimal(sliceTotal)).Decimal
	basicAmount := gains.Sub(hiAmount).Sub(addAmount)

	basicTax := basicAmount.Mul(rates.Basic)
	var hiTax, addTax decimal.Decimal
	if addAmount.IsPositive() {
		hiTax = hiAmount.Mul(rates.Hi)
		addTax = totalTax.Sub(basicTax).Sub(hiTax)
	} else {
		hiTax = totalTax.Sub(basicTax)
	}

	bands.BasicBand = decimal.Zero
	take(&bands.HiBand, sliceHi)

	return gainsComputation{
		outcome:     gainsSliced,
		basicAmount: basicAmount,
		basicTax:    basicTax,
		hiAmount:    hiAmount,
		hiTax:       hiTax,
		addAmount:   addAmount,
		addTax:      addTax,
		totalTax:    totalTax,
	}
}

// directGains taxes the whole gain straight across basic, high and
// additional bands with no relief.
func directGains(p *domain.TaxYearParameters, bands *TaxBands, gains decimal.Decimal, rates domain.RateSet) gainsComputation {
	remaining := gains
	basicAmount := take(&bands.BasicBand, remaining)
	remaining = remaining.Sub(basicAmount)

	var hiAmount, addAmount decimal.Decimal
	if p.HasAdditionalTaxBand {
		hiAmount = take(&bands.HiBand, remaining)
		addAmount = remaining.Sub(hiAmount)
	} else {
		hiAmount = remaining
	}

	c := gainsComputation{
		outcome:     gainsDirect,
		basicAmount: basicAmount,
		basicTax:    basicAmount.Mul(rates.Basic),
		hiAmount:    hiAmount,
		hiTax:       hiAmount.Mul(rates.Hi),
		addAmount:   addAmount,
		addTax:      addAmount.Mul(rates.Additional),
	}
	c.totalTax = c.basicTax.Add(c.hiTax).Add(c.addTax)
	return c
}

// taxTaxableGains files the chargeable-gains step. The register's gains
// total is the stream input; an empty register still files the zero-shaped
// stream.
func (a *Analysis) taxTaxableGains(bands *TaxBands) error {
	comp := computeTaxableGains(a.params, bands, a.register, a.HasAgeAllowance)
	if comp.outcome == gainsSliced {
		a.HasGainsSlices = true
	}

	gross := comp.basicAmount.Add(comp.hiAmount).Add(comp.addAmount)
	tb, err := a.buckets.Register(domain.CatTaxDueTaxableGains)
	if err != nil {
		return err
	}
	tb.Parent = a.totalDueBucket

	rates := a.params.InterestRates
	if _, err := a.fileLeaf(domain.CatTaxableGainsBasic, comp.basicAmount, comp.basicTax, rates.Basic, true, tb); err != nil {
		return err
	}
	if _, err := a.fileLeaf(domain.CatTaxableGainsHi, comp.hiAmount, comp.hiTax, rates.Hi, true, tb); err != nil {
		return err
	}
	if a.params.HasAdditionalTaxBand {
		if _, err := a.fileLeaf(domain.CatTaxableGainsAdditional, comp.addAmount, comp.addTax, rates.Additional, true, tb); err != nil {
			return err
		}
	}

	tb.Amount = gross
	tb.Taxation = comp.totalTax
	return nil
}
