package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/finbook/taxengine/internal/domain"
)

// streamPass walks one income stream down the band pool. Each step consumes
// as much of the remaining amount as its bands allow, files a leaf bucket
// (always, even for zero, so the reporting tree keeps its shape), and leaves
// the pool reduced for the next step.
type streamPass struct {
	a         *Analysis
	parent    *domain.TaxDetailBucket
	remaining decimal.Decimal
	tax       decimal.Decimal
}

func (a *Analysis) newStreamPass(total domain.Category, gross decimal.Decimal) (*streamPass, *domain.TaxDetailBucket, error) {
	tb, err := a.buckets.Register(total)
	if err != nil {
		return nil, nil, err
	}
	tb.Parent = a.totalDueBucket
	return &streamPass{a: a, parent: tb, remaining: gross}, tb, nil
}

// step consumes from the given bands, in order, into one leaf line at the
// given rate. With no bands the step is uncapped and takes the whole
// remainder.
func (sp *streamPass) step(c domain.Category, rate decimal.Decimal, showRate bool, bands ...*decimal.Decimal) error {
	used := decimal.Zero
	if len(bands) == 0 {
		used = sp.remaining
		sp.remaining = decimal.Zero
	} else {
		for _, b := range bands {
			u := take(b, sp.remaining)
			sp.remaining = sp.remaining.Sub(u)
			used = used.Add(u)
		}
	}
	taxation := used.Mul(rate)
	sp.tax = sp.tax.Add(taxation)
	_, err := sp.a.fileLeaf(c, used, taxation, rate, showRate, sp.parent)
	return err
}

// fileLeaf registers a leaf bucket and fills it in one go.
func (a *Analysis) fileLeaf(c domain.Category, amount, taxation, rate decimal.Decimal, hasRate bool, parent *domain.TaxDetailBucket) (*domain.TaxDetailBucket, error) {
	b, err := a.buckets.Register(c)
	if err != nil {
		return nil, err
	}
	b.Amount = amount
	b.Taxation = taxation
	b.Rate = rate
	b.HasRate = hasRate
	b.Parent = parent
	return b, nil
}

// upperSteps runs the high and additional steps shared by every stream: a
// capped high band followed by an uncapped additional remainder when the
// year has an additional rate, otherwise the whole remainder at the high
// rate.
func (sp *streamPass) upperSteps(hiCat, addCat domain.Category, rates domain.RateSet, bands *TaxBands) error {
	if sp.a.params.HasAdditionalTaxBand {
		if err := sp.step(hiCat, rates.Hi, true, &bands.HiBand); err != nil {
			return err
		}
		return sp.step(addCat, rates.Additional, true)
	}
	return sp.step(hiCat, rates.Hi, true)
}

// taxSalary consumes allowance, low (when the year has a low salary band),
// basic and upper bands from the pool for the gross salary total.
func (a *Analysis) taxSalary(bands *TaxBands) error {
	gross := a.totals.Summary(domain.CatGrossSalary).Amount
	sp, tb, err := a.newStreamPass(domain.CatTaxDueSalary, gross)
	if err != nil {
		return err
	}

	if err := sp.step(domain.CatSalaryFree, decimal.Zero, false, &bands.Allowance); err != nil {
		return err
	}
	rates := a.params.SalaryRates
	if a.params.HasLoSalaryBand {
		if err := sp.step(domain.CatSalaryLo, rates.Lo, true, &bands.LoBand); err != nil {
			return err
		}
		if err := sp.step(domain.CatSalaryBasic, rates.Basic, true, &bands.BasicBand); err != nil {
			return err
		}
	} else {
		// No low salary band: the low band is consumed alongside the basic
		// band with no line of its own, leaving interest its low-rate slice
		// only where salary has not filled the stack.
		if err := sp.step(domain.CatSalaryBasic, rates.Basic, true, &bands.LoBand, &bands.BasicBand); err != nil {
			return err
		}
	}
	if err := sp.upperSteps(domain.CatSalaryHi, domain.CatSalaryAdditional, rates, bands); err != nil {
		return err
	}

	tb.Amount = gross
	tb.Taxation = sp.tax
	return nil
}

// taxRental handles rental income: the flat rental allowance comes off
// first, and rental wholly inside it never touches the personal allowance
// pool. Above it the stream behaves exactly like salary.
func (a *Analysis) taxRental(bands *TaxBands) error {
	gross := a.totals.Summary(domain.CatGrossRental).Amount
	sp, tb, err := a.newStreamPass(domain.CatTaxDueRental, gross)
	if err != nil {
		return err
	}

	free := decimal.Min(gross, a.params.RentalAllowance)
	sp.remaining = sp.remaining.Sub(free)
	free = free.Add(take(&bands.Allowance, sp.remaining))
	sp.remaining = gross.Sub(free)
	if _, err := a.fileLeaf(domain.CatRentalFree, free, decimal.Zero, decimal.Zero, false, sp.parent); err != nil {
		return err
	}

	rates := a.params.SalaryRates
	if a.params.HasLoSalaryBand {
		if err := sp.step(domain.CatRentalLo, rates.Lo, true, &bands.LoBand); err != nil {
			return err
		}
		if err := sp.step(domain.CatRentalBasic, rates.Basic, true, &bands.BasicBand); err != nil {
			return err
		}
	} else {
		if err := sp.step(domain.CatRentalBasic, rates.Basic, true, &bands.LoBand, &bands.BasicBand); err != nil {
			return err
		}
	}
	if err := sp.upperSteps(domain.CatRentalHi, domain.CatRentalAdditional, rates, bands); err != nil {
		return err
	}

	tb.Amount = gross
	tb.Taxation = sp.tax
	return nil
}

// taxInterest always gives interest a low-rate slice from whatever low band
// the earlier streams left behind. Afterwards any unused allowance and low
// band fold into the basic band: low-rate relief on interest is not
// reclaimable by the later streams.
func (a *Analysis) taxInterest(bands *TaxBands) error {
	gross := a.totals.Summary(domain.CatGrossInterest).Amount
	sp, tb, err := a.newStreamPass(domain.CatTaxDueInterest, gross)
	if err != nil {
		return err
	}

	if err := sp.step(domain.CatInterestFree, decimal.Zero, false, &bands.Allowance); err != nil {
		return err
	}
	rates := a.params.InterestRates
	if err := sp.step(domain.CatInterestLo, rates.Lo, true, &bands.LoBand); err != nil {
		return err
	}
	if err := sp.step(domain.CatInterestBasic, rates.Basic, true, &bands.BasicBand); err != nil {
		return err
	}
	if err := sp.upperSteps(domain.CatInterestHi, domain.CatInterestAdditional, rates, bands); err != nil {
		return err
	}

	bands.BasicBand = bands.BasicBand.Add(bands.Allowance).Add(bands.LoBand)
	bands.Allowance = decimal.Zero
	bands.LoBand = decimal.Zero

	tb.Amount = gross
	tb.Taxation = sp.tax
	return nil
}

// taxDividends covers ordinary and unit-trust dividends together. Dividends
// never touch the personal allowance or the low band.
func (a *Analysis) taxDividends(bands *TaxBands) error {
	gross := a.totals.Summary(domain.CatGrossDividend).Amount.
		Add(a.totals.Summary(domain.CatGrossUTDividend).Amount)
	sp, tb, err := a.newStreamPass(domain.CatTaxDueDividend, gross)
	if err != nil {
		return err
	}

	rates := a.params.DividendRates
	if err := sp.step(domain.CatDividendBasic, rates.Basic, true, &bands.BasicBand); err != nil {
		return err
	}
	if err := sp.upperSteps(domain.CatDividendHi, domain.CatDividendAdditional, rates, bands); err != nil {
		return err
	}

	tb.Amount = gross
	tb.Taxation = sp.tax
	return nil
}
