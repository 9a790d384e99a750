package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/finbook/taxengine/internal/domain"
)

// MovementSink receives the amounts the market-movement computation routes
// out of the ledger: named bucket credits/debits plus the market
// pseudo-account's income and expense sides.
type MovementSink interface {
	Credit(c domain.Category, amount decimal.Decimal)
	Debit(c domain.Category, amount decimal.Decimal)
	MarketIncome(amount decimal.Decimal)
	MarketExpense(amount decimal.Decimal)
}

// ProcessMarketMovement computes the period market movement for the asset's
// latest valuation snapshot and routes it:
//
//	market = currentValue − previousValue − amountInvested
//
// Realized gains are stripped out of the movement first. For capital-gains
// assets they feed the capital-gains-income bucket (or the capital-loss
// bucket when negative); for life bonds only the income side is tracked. The
// cumulative gained figure (gains + dividend to date) is recorded as an
// initial/delta/final triple, and the residual movement lands in the growth
// or shrink bucket. Returns the market movement.
func ProcessMarketMovement(l *CapitalEventLedger, asset *domain.Asset, sink MovementSink) (decimal.Decimal, error) {
	e := l.Last()
	if e == nil {
		return decimal.Zero, nil
	}

	current := e.AttributeOrZero(AttrFinalValue)
	previous := e.AttributeOrZero(AttrInitialValue)
	invested := asset.Invested
	gains := asset.Gains

	market := current.Sub(previous).Sub(invested)

	if !gains.IsZero() {
		if asset.IsCapitalGains {
			market = market.Sub(gains)
			if gains.IsPositive() {
				sink.Credit(domain.CatCapitalGainsIncome, gains)
				sink.MarketIncome(gains)
			} else {
				sink.Debit(domain.CatCapitalLoss, gains.Neg())
				sink.MarketExpense(gains.Neg())
			}
		} else if asset.IsLifeBond {
			market = market.Sub(gains)
			if gains.IsPositive() {
				sink.MarketIncome(gains)
			}
		}
	}

	deltaGained := gains.Add(asset.Dividend)
	initialGained := e.AttributeOrZero(AttrInitialGained)
	if err := e.SetAttribute(AttrDeltaGained, deltaGained); err != nil {
		return decimal.Zero, err
	}
	if err := e.SetAttribute(AttrFinalGained, initialGained.Add(deltaGained)); err != nil {
		return decimal.Zero, err
	}

	if err := e.SetAttribute(AttrMarketMovement, market); err != nil {
		return decimal.Zero, err
	}
	if market.IsPositive() {
		sink.Credit(domain.CatMarketGrowth, market)
		sink.MarketIncome(market)
	} else {
		sink.Debit(domain.CatMarketShrink, market.Abs())
		sink.MarketExpense(market.Abs())
	}

	return market, nil
}
