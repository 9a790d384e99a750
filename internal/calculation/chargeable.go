package calculation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbook/taxengine/internal/domain"
	money "github.com/finbook/taxengine/pkg/decimal"
)

// ChargeableEvent is one life-assurance chargeable gain. The slice is the
// gain spread over its qualifying years, the figure top-slicing relief taxes
// at marginal rates.
type ChargeableEvent struct {
	Date              time.Time
	Description       string
	Amount            decimal.Decimal
	EmbeddedTaxCredit decimal.Decimal
	QualifyingYears   int
	Slice             decimal.Decimal

	// AppliedTax is the share of the slice tax allocated back to this event
	// by ApplyTax.
	AppliedTax decimal.Decimal
}

// NewChargeableEvent creates an event, deriving the slice (truncated to
// pence).
func NewChargeableEvent(date time.Time, description string, amount, embeddedTaxCredit decimal.Decimal, qualifyingYears int) (*ChargeableEvent, error) {
	if qualifyingYears < 1 {
		return nil, domain.NewConfigError("chargeable event %q: qualifying years must be at least 1, got %d", description, qualifyingYears)
	}
	return &ChargeableEvent{
		Date:              date,
		Description:       description,
		Amount:            amount,
		EmbeddedTaxCredit: embeddedTaxCredit,
		QualifyingYears:   qualifyingYears,
		Slice:             amount.Div(decimal.NewFromInt(int64(qualifyingYears))).RoundDown(2),
	}, nil
}

// ChargeableEventRegister is the ordered list of a year's chargeable gains.
// The banding engine queries it and distributes slice tax back through it;
// it never mutates the gains themselves.
type ChargeableEventRegister struct {
	events []*ChargeableEvent
}

// NewChargeableEventRegister creates an empty register.
func NewChargeableEventRegister() *ChargeableEventRegister {
	return &ChargeableEventRegister{}
}

// Add appends an event to the register.
func (r *ChargeableEventRegister) Add(e *ChargeableEvent) {
	r.events = append(r.events, e)
}

// Events returns the registered events in order.
func (r *ChargeableEventRegister) Events() []*ChargeableEvent {
	return r.events
}

// Len returns the number of registered events.
func (r *ChargeableEventRegister) Len() int {
	return len(r.events)
}

// GainsTotal returns the sum of all gains. Recomputed on demand, never
// cached across edits.
func (r *ChargeableEventRegister) GainsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, e := range r.events {
		total = total.Add(e.Amount)
	}
	return total
}

// SliceTotal returns the sum of all slices.
func (r *ChargeableEventRegister) SliceTotal() decimal.Decimal {
	total := decimal.Zero
	for _, e := range r.events {
		total = total.Add(e.Slice)
	}
	return total
}

// ApplyTax distributes tax across the events in proportion to their slices,
// truncating each share down to pence. The truncated remainder goes to the
// last event so the shares reconcile exactly to tax.
func (r *ChargeableEventRegister) ApplyTax(tax, sliceBase decimal.Decimal) {
	if len(r.events) == 0 || sliceBase.IsZero() {
		return
	}
	allocated := decimal.Zero
	for i, e := range r.events {
		var share decimal.Decimal
		if i == len(r.events)-1 {
			share = tax.Sub(allocated)
		} else {
			share = money.NewMoneyFromDecimal(tax).
				Apportion(money.NewMoneyFromDecimal(e.Slice), money.NewMoneyFromDecimal(sliceBase)).Decimal
		}
		e.AppliedTax = share
		allocated = allocated.Add(share)
	}
}
