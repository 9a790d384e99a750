package domain

// Category identifies a named total or tax-computation line. The enumeration
// is closed: the aggregator registers totals against these names and the
// banding engine files its results under them.
type Category string

const (
	// Aggregation inputs supplied by the transaction aggregator.
	CatGrossSalary       Category = "gross-salary"
	CatGrossRental       Category = "gross-rental"
	CatGrossInterest     Category = "gross-interest"
	CatGrossDividend     Category = "gross-dividend"
	CatGrossUTDividend   Category = "gross-ut-dividend"
	CatGrossTaxableGains Category = "gross-taxable-gains"
	CatGrossCapitalGains Category = "gross-capital-gains"
	CatTaxPaid           Category = "tax-paid"
	CatTaxFree           Category = "tax-free"
	CatExpense           Category = "expense"
	CatVirtual           Category = "virtual"

	// Market pseudo-account lines fed by the capital event ledger.
	CatMarket             Category = "market"
	CatMarketGrowth       Category = "market-growth"
	CatMarketShrink       Category = "market-shrink"
	CatCapitalGainsIncome Category = "capital-gains-income"
	CatCapitalLoss        Category = "capital-loss"

	// Allowance lines.
	CatOriginalAllowance Category = "original-allowance"
	CatAdjustedAllowance Category = "adjusted-allowance"

	// Salary lines.
	CatTaxDueSalary     Category = "tax-due-salary"
	CatSalaryFree       Category = "salary-tax-free"
	CatSalaryLo         Category = "salary-at-lo-rate"
	CatSalaryBasic      Category = "salary-at-basic-rate"
	CatSalaryHi         Category = "salary-at-hi-rate"
	CatSalaryAdditional Category = "salary-at-additional-rate"

	// Rental lines.
	CatTaxDueRental     Category = "tax-due-rental"
	CatRentalFree       Category = "rental-tax-free"
	CatRentalLo         Category = "rental-at-lo-rate"
	CatRentalBasic      Category = "rental-at-basic-rate"
	CatRentalHi         Category = "rental-at-hi-rate"
	CatRentalAdditional Category = "rental-at-additional-rate"

	// Interest lines.
	CatTaxDueInterest     Category = "tax-due-interest"
	CatInterestFree       Category = "interest-tax-free"
	CatInterestLo         Category = "interest-at-lo-rate"
	CatInterestBasic      Category = "interest-at-basic-rate"
	CatInterestHi         Category = "interest-at-hi-rate"
	CatInterestAdditional Category = "interest-at-additional-rate"

	// Dividend lines.
	CatTaxDueDividend     Category = "tax-due-dividend"
	CatDividendBasic      Category = "dividend-at-basic-rate"
	CatDividendHi         Category = "dividend-at-hi-rate"
	CatDividendAdditional Category = "dividend-at-additional-rate"

	// Chargeable (taxable) gains lines.
	CatTaxDueTaxableGains     Category = "tax-due-taxable-gains"
	CatTaxableGainsBasic      Category = "taxable-gains-at-basic-rate"
	CatTaxableGainsHi         Category = "taxable-gains-at-hi-rate"
	CatTaxableGainsAdditional Category = "taxable-gains-at-additional-rate"

	// Capital gains lines.
	CatTaxDueCapitalGains     Category = "tax-due-capital-gains"
	CatCapitalGainsFree       Category = "capital-gains-tax-free"
	CatCapitalGainsBasic      Category = "capital-gains-at-basic-rate"
	CatCapitalGainsHi         Category = "capital-gains-at-hi-rate"
	CatCapitalGainsAdditional Category = "capital-gains-at-additional-rate"

	// Overall results.
	CatTotalTaxDue Category = "total-tax-due"
	CatTaxProfit   Category = "tax-profit"
	CatTaxLoss     Category = "tax-loss"
)

// streamParents routes each leaf tax line to its stream total. Routing is a
// table rather than a conditional chain so it can be checked in isolation.
var streamParents = map[Category]Category{
	CatSalaryFree:       CatTaxDueSalary,
	CatSalaryLo:         CatTaxDueSalary,
	CatSalaryBasic:      CatTaxDueSalary,
	CatSalaryHi:         CatTaxDueSalary,
	CatSalaryAdditional: CatTaxDueSalary,

	CatRentalFree:       CatTaxDueRental,
	CatRentalLo:         CatTaxDueRental,
	CatRentalBasic:      CatTaxDueRental,
	CatRentalHi:         CatTaxDueRental,
	CatRentalAdditional: CatTaxDueRental,

	CatInterestFree:       CatTaxDueInterest,
	CatInterestLo:         CatTaxDueInterest,
	CatInterestBasic:      CatTaxDueInterest,
	CatInterestHi:         CatTaxDueInterest,
	CatInterestAdditional: CatTaxDueInterest,

	CatDividendBasic:      CatTaxDueDividend,
	CatDividendHi:         CatTaxDueDividend,
	CatDividendAdditional: CatTaxDueDividend,

	CatTaxableGainsBasic:      CatTaxDueTaxableGains,
	CatTaxableGainsHi:         CatTaxDueTaxableGains,
	CatTaxableGainsAdditional: CatTaxDueTaxableGains,

	CatCapitalGainsFree:       CatTaxDueCapitalGains,
	CatCapitalGainsBasic:      CatTaxDueCapitalGains,
	CatCapitalGainsHi:         CatTaxDueCapitalGains,
	CatCapitalGainsAdditional: CatTaxDueCapitalGains,

	CatTaxDueSalary:       CatTotalTaxDue,
	CatTaxDueRental:       CatTotalTaxDue,
	CatTaxDueInterest:     CatTotalTaxDue,
	CatTaxDueDividend:     CatTotalTaxDue,
	CatTaxDueTaxableGains: CatTotalTaxDue,
	CatTaxDueCapitalGains: CatTotalTaxDue,
}

var allCategories = func() map[Category]struct{} {
	list := []Category{
		CatGrossSalary, CatGrossRental, CatGrossInterest, CatGrossDividend,
		CatGrossUTDividend, CatGrossTaxableGains, CatGrossCapitalGains,
		CatTaxPaid, CatTaxFree, CatExpense, CatVirtual,
		CatMarket, CatMarketGrowth, CatMarketShrink, CatCapitalGainsIncome, CatCapitalLoss,
		CatOriginalAllowance, CatAdjustedAllowance,
		CatTaxDueSalary, CatSalaryFree, CatSalaryLo, CatSalaryBasic, CatSalaryHi, CatSalaryAdditional,
		CatTaxDueRental, CatRentalFree, CatRentalLo, CatRentalBasic, CatRentalHi, CatRentalAdditional,
		CatTaxDueInterest, CatInterestFree, CatInterestLo, CatInterestBasic, CatInterestHi, CatInterestAdditional,
		CatTaxDueDividend, CatDividendBasic, CatDividendHi, CatDividendAdditional,
		CatTaxDueTaxableGains, CatTaxableGainsBasic, CatTaxableGainsHi, CatTaxableGainsAdditional,
		CatTaxDueCapitalGains, CatCapitalGainsFree, CatCapitalGainsBasic, CatCapitalGainsHi, CatCapitalGainsAdditional,
		CatTotalTaxDue, CatTaxProfit, CatTaxLoss,
	}
	m := make(map[Category]struct{}, len(list))
	for _, c := range list {
		m[c] = struct{}{}
	}
	return m
}()

// Valid reports whether the category belongs to the closed enumeration.
func (c Category) Valid() bool {
	_, ok := allCategories[c]
	return ok
}

// ParentOf returns the reporting parent of a tax line, if it has one.
func ParentOf(c Category) (Category, bool) {
	p, ok := streamParents[c]
	return p, ok
}
