package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbook/taxengine/internal/domain"
	"github.com/finbook/taxengine/pkg/dateutil"
)

// Attribute names a figure recorded on a capital event. Most figures come in
// initial/delta/final triples; market movement and takeover are one-shot.
type Attribute string

const (
	AttrInitialCost     Attribute = "cost.initial"
	AttrDeltaCost       Attribute = "cost.delta"
	AttrFinalCost       Attribute = "cost.final"
	AttrInitialUnits    Attribute = "units.initial"
	AttrDeltaUnits      Attribute = "units.delta"
	AttrFinalUnits      Attribute = "units.final"
	AttrInitialGains    Attribute = "gains.initial"
	AttrDeltaGains      Attribute = "gains.delta"
	AttrFinalGains      Attribute = "gains.final"
	AttrInitialGained   Attribute = "gained.initial"
	AttrDeltaGained     Attribute = "gained.delta"
	AttrFinalGained     Attribute = "gained.final"
	AttrInitialDividend Attribute = "dividend.initial"
	AttrDeltaDividend   Attribute = "dividend.delta"
	AttrFinalDividend   Attribute = "dividend.final"
	AttrInitialInvested Attribute = "invested.initial"
	AttrDeltaInvested   Attribute = "invested.delta"
	AttrFinalInvested   Attribute = "invested.final"
	AttrInitialPrice    Attribute = "price.initial"
	AttrDeltaPrice      Attribute = "price.delta"
	AttrFinalPrice      Attribute = "price.final"
	AttrInitialValue    Attribute = "value.initial"
	AttrDeltaValue      Attribute = "value.delta"
	AttrFinalValue      Attribute = "value.final"

	AttrMarketMovement Attribute = "market-movement"
	AttrCashTakeover   Attribute = "cash-takeover"
)

// CapitalEvent is one attributed valuation snapshot in an asset's ledger.
// Events created by a real transaction carry its id; period-end snapshots are
// synthetic and carry none. Attributes are populated incrementally during the
// valuation step and never mutated afterwards.
type CapitalEvent struct {
	Date          time.Time
	TransactionID string
	attrs         map[Attribute]decimal.Decimal
}

// NewCapitalEvent creates an event; transactionID is empty for synthetic
// period-end snapshots.
func NewCapitalEvent(date time.Time, transactionID string) *CapitalEvent {
	return &CapitalEvent{
		Date:          date,
		TransactionID: transactionID,
		attrs:         make(map[Attribute]decimal.Decimal),
	}
}

// Synthetic reports whether the event is a period-end snapshot rather than
// the echo of a real transaction.
func (e *CapitalEvent) Synthetic() bool {
	return e.TransactionID == ""
}

// SetAttribute records a figure on the event. Each attribute is set at most
// once; a second set is a configuration error.
func (e *CapitalEvent) SetAttribute(a Attribute, v decimal.Decimal) error {
	if _, exists := e.attrs[a]; exists {
		return domain.NewConfigError("attribute %q already set on event dated %s", a, e.Date.Format("2006-01-02"))
	}
	e.attrs[a] = v
	return nil
}

// Attribute returns a recorded figure and whether it was set.
func (e *CapitalEvent) Attribute(a Attribute) (decimal.Decimal, bool) {
	v, ok := e.attrs[a]
	return v, ok
}

// AttributeOrZero returns a recorded figure, defaulting to zero.
func (e *CapitalEvent) AttributeOrZero(a Attribute) decimal.Decimal {
	return e.attrs[a]
}

// Before implements the ledger ordering: earlier dates first; on the same
// day, real transactions before synthetic snapshots. Ties between events of
// the same kind keep insertion order (the ledger inserts stably).
func (e *CapitalEvent) Before(other *CapitalEvent) bool {
	if !dateutil.IsSameDay(e.Date, other.Date) {
		return e.Date.Before(other.Date)
	}
	return !e.Synthetic() && other.Synthetic()
}
