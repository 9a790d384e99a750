package calculation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbook/taxengine/internal/domain"
	"github.com/finbook/taxengine/internal/ledger"
	"github.com/finbook/taxengine/pkg/dateutil"
)

// AnalysisState sequences the computation steps of one analysis. States only
// move forward; re-running a completed step is a silent no-op and recomputing
// means creating a new analysis.
type AnalysisState int

const (
	StateRaw AnalysisState = iota
	StateValued
	StateTotalled
	StateTaxed
)

func (s AnalysisState) String() string {
	switch s {
	case StateRaw:
		return "RAW"
	case StateValued:
		return "VALUED"
	case StateTotalled:
		return "TOTALLED"
	case StateTaxed:
		return "TAXED"
	default:
		return "UNKNOWN"
	}
}

// Holding pairs an asset with its capital event ledger.
type Holding struct {
	Asset  *domain.Asset
	Ledger *ledger.CapitalEventLedger
}

// Analysis owns one full valuation-and-tax pass: the band pool, the bucket
// tree and the ledger walk all belong to a single synchronous call chain.
// Independent analyses may run concurrently as long as they share no mutable
// state.
type Analysis struct {
	params    *domain.TaxYearParameters // nil for ad-hoc statements
	birthDate time.Time
	totals    *domain.SummarySet
	register  *ChargeableEventRegister
	holdings  []*Holding
	buckets   *domain.BucketSet
	state     AnalysisState
	logger    Logger

	marketIncome  decimal.Decimal
	marketExpense decimal.Decimal

	totalDueBucket *domain.TaxDetailBucket

	// Flags and results consumed by report generation.
	HasReducedAllow bool
	HasAgeAllowance bool
	HasGainsSlices  bool
	ComputedAge     int
	TotalTaxDue     decimal.Decimal
}

// NewAnalysis creates a RAW analysis. params may be nil for an ad-hoc
// date-range statement, in which case CalculateTax is a no-op. totals is the
// aggregator's summary set; a nil set starts empty.
func NewAnalysis(params *domain.TaxYearParameters, birthDate time.Time, totals *domain.SummarySet) *Analysis {
	if totals == nil {
		totals = domain.NewSummarySet()
	}
	return &Analysis{
		params:    params,
		birthDate: birthDate,
		totals:    totals,
		register:  NewChargeableEventRegister(),
		buckets:   domain.NewBucketSet(),
		logger:    NopLogger{},
	}
}

// SetLogger sets the engine logger. A nil logger restores the no-op default.
func (a *Analysis) SetLogger(l Logger) {
	if l == nil {
		a.logger = NopLogger{}
		return
	}
	a.logger = l
}

// State returns the current analysis state.
func (a *Analysis) State() AnalysisState {
	return a.state
}

// Totals returns the summary set the analysis reads from and routes into.
func (a *Analysis) Totals() *domain.SummarySet {
	return a.totals
}

// Register returns the chargeable event register.
func (a *Analysis) Register() *ChargeableEventRegister {
	return a.register
}

// Buckets returns the tax detail tree of the last pass.
func (a *Analysis) Buckets() *domain.BucketSet {
	return a.buckets
}

// MarketIncome returns the market pseudo-account's income side.
func (a *Analysis) MarketIncome() decimal.Decimal {
	return a.marketIncome
}

// MarketExpense returns the market pseudo-account's expense side.
func (a *Analysis) MarketExpense() decimal.Decimal {
	return a.marketExpense
}

// AddHolding registers an asset and creates its ledger.
func (a *Analysis) AddHolding(asset *domain.Asset) *Holding {
	h := &Holding{Asset: asset, Ledger: ledger.NewCapitalEventLedger(asset.Name)}
	a.holdings = append(a.holdings, h)
	return h
}

// Holdings returns the registered holdings.
func (a *Analysis) Holdings() []*Holding {
	return a.holdings
}

// ValueAssets appends one valuation snapshot per priced holding and routes
// each holding's market movement. Requires RAW; anything later is a silent
// no-op, so calling it twice changes nothing.
func (a *Analysis) ValueAssets(date time.Time) error {
	if a.state != StateRaw {
		a.logger.Debugf("valueAssets skipped in state %s", a.state)
		return nil
	}
	for _, h := range a.holdings {
		if !h.Asset.IsPriced {
			continue
		}
		if _, err := h.Ledger.ValueAsset(h.Asset, date); err != nil {
			return err
		}
		movement, err := ledger.ProcessMarketMovement(h.Ledger, h.Asset, movementSink{a})
		if err != nil {
			return err
		}
		a.logger.Debugf("valued %s: market movement %s", h.Asset.Name, movement.StringFixed(2))
	}
	a.state = StateValued
	return nil
}

// movementSink adapts the analysis to the ledger's sink interface. Expense
// side buckets accumulate positive magnitudes, so a debit grows its bucket's
// total.
type movementSink struct {
	a *Analysis
}

func (s movementSink) Credit(c domain.Category, amount decimal.Decimal) {
	s.a.totals.Credit(c, amount)
}

func (s movementSink) Debit(c domain.Category, amount decimal.Decimal) {
	s.a.totals.Credit(c, amount)
}

func (s movementSink) MarketIncome(amount decimal.Decimal) {
	s.a.marketIncome = s.a.marketIncome.Add(amount)
}

func (s movementSink) MarketExpense(amount decimal.Decimal) {
	s.a.marketExpense = s.a.marketExpense.Add(amount)
}

// ProduceTotals folds the ledger-derived and register-derived figures into
// the gross totals the banding pass reads. Requires VALUED.
func (a *Analysis) ProduceTotals() error {
	if a.state != StateValued {
		a.logger.Debugf("produceTotals skipped in state %s", a.state)
		return nil
	}

	cg := a.totals.Summary(domain.CatCapitalGainsIncome).Amount
	if !cg.IsZero() {
		a.totals.Credit(domain.CatGrossCapitalGains, cg)
	}
	cl := a.totals.Summary(domain.CatCapitalLoss).Amount
	if !cl.IsZero() {
		a.totals.Debit(domain.CatGrossCapitalGains, cl)
	}

	// The chargeable event register is the source of truth for taxable
	// gains.
	prev := a.totals.Summary(domain.CatGrossTaxableGains).PrevAmount
	a.totals.Set(domain.CatGrossTaxableGains, a.register.GainsTotal(), prev)

	a.state = StateTotalled
	return nil
}

// CalculateTax runs the banding pass: allowances, then the six streams in
// their fixed order over one shared band pool. Requires TOTALLED and
// auto-runs ProduceTotals from VALUED; without tax year parameters it is a
// no-op that leaves the state unchanged. Configuration errors abort the
// whole pass — a partial tree is never reported.
func (a *Analysis) CalculateTax() error {
	if a.state == StateRaw {
		a.logger.Debugf("calculateTax skipped in state RAW")
		return nil
	}
	if a.state == StateValued {
		if err := a.ProduceTotals(); err != nil {
			return err
		}
	}
	if a.state != StateTotalled {
		return nil
	}
	if a.params == nil {
		a.logger.Debugf("calculateTax skipped: no tax year parameters")
		return nil
	}

	a.buckets = domain.NewBucketSet()
	tdb, err := a.buckets.Register(domain.CatTotalTaxDue)
	if err != nil {
		return err
	}
	a.totalDueBucket = tdb

	age := 0
	if !a.birthDate.IsZero() {
		age = dateutil.Age(a.birthDate, a.params.FiscalEnd())
	}
	ar := calculateAllowances(a.params, age, a.grossTaxableIncome())
	a.ComputedAge = ar.Age
	a.HasAgeAllowance = ar.HasAgeAllowance
	a.HasReducedAllow = ar.HasReducedAllow
	if _, err := a.fileLeaf(domain.CatOriginalAllowance, ar.Original, decimal.Zero, decimal.Zero, false, nil); err != nil {
		return err
	}
	if _, err := a.fileLeaf(domain.CatAdjustedAllowance, ar.Adjusted, decimal.Zero, decimal.Zero, false, nil); err != nil {
		return err
	}

	bands := newTaxBands(a.params, ar.Adjusted)
	steps := []func(*TaxBands) error{
		a.taxSalary,
		a.taxRental,
		a.taxInterest,
		a.taxDividends,
		a.taxTaxableGains,
		a.taxCapitalGains,
	}
	for _, step := range steps {
		if err := step(bands); err != nil {
			return err
		}
	}

	amount := decimal.Zero
	taxation := decimal.Zero
	for _, c := range []domain.Category{
		domain.CatTaxDueSalary, domain.CatTaxDueRental, domain.CatTaxDueInterest,
		domain.CatTaxDueDividend, domain.CatTaxDueTaxableGains, domain.CatTaxDueCapitalGains,
	} {
		b, err := a.buckets.Get(c)
		if err != nil {
			return err
		}
		amount = amount.Add(b.Amount)
		taxation = taxation.Add(b.Taxation)
	}
	tdb.Amount = amount
	tdb.Taxation = taxation
	a.TotalTaxDue = taxation

	taxPaid := a.totals.Summary(domain.CatTaxPaid).Amount
	profit := decimal.Zero
	loss := decimal.Zero
	if taxPaid.GreaterThanOrEqual(taxation) {
		profit = taxPaid.Sub(taxation)
	} else {
		loss = taxation.Sub(taxPaid)
	}
	if _, err := a.fileLeaf(domain.CatTaxProfit, profit, decimal.Zero, decimal.Zero, false, nil); err != nil {
		return err
	}
	if _, err := a.fileLeaf(domain.CatTaxLoss, loss, decimal.Zero, decimal.Zero, false, nil); err != nil {
		return err
	}

	a.state = StateTaxed
	return nil
}

// grossTaxableIncome is the income figure the allowance tapers against:
// every income stream except capital gains.
func (a *Analysis) grossTaxableIncome() decimal.Decimal {
	return a.totals.Summary(domain.CatGrossSalary).Amount.
		Add(a.totals.Summary(domain.CatGrossRental).Amount).
		Add(a.totals.Summary(domain.CatGrossInterest).Amount).
		Add(a.totals.Summary(domain.CatGrossDividend).Amount).
		Add(a.totals.Summary(domain.CatGrossUTDividend).Amount).
		Add(a.totals.Summary(domain.CatGrossTaxableGains).Amount)
}
