package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbook/taxengine/internal/domain"
	"github.com/finbook/taxengine/pkg/dateutil"
)

// CapitalEventLedger is the append-only, date-ordered event sequence for one
// priced asset.
type CapitalEventLedger struct {
	asset  string
	events []*CapitalEvent
}

// NewCapitalEventLedger creates an empty ledger for the named asset.
func NewCapitalEventLedger(asset string) *CapitalEventLedger {
	return &CapitalEventLedger{asset: asset}
}

// Asset returns the name of the asset the ledger belongs to.
func (l *CapitalEventLedger) Asset() string {
	return l.asset
}

// Append inserts the event in date order. Insertion is stable: an event sorts
// after every existing event it is not strictly before, so same-key events
// keep arrival order and synthetic snapshots land after same-day real
// transactions.
func (l *CapitalEventLedger) Append(e *CapitalEvent) {
	i := len(l.events)
	for i > 0 && e.Before(l.events[i-1]) {
		i--
	}
	l.events = append(l.events, nil)
	copy(l.events[i+1:], l.events[i:])
	l.events[i] = e
}

// Events returns the ordered event sequence.
func (l *CapitalEventLedger) Events() []*CapitalEvent {
	return l.events
}

// Len returns the number of events.
func (l *CapitalEventLedger) Len() int {
	return len(l.events)
}

// Last returns the most recent event, or nil for an empty ledger.
func (l *CapitalEventLedger) Last() *CapitalEvent {
	if len(l.events) == 0 {
		return nil
	}
	return l.events[len(l.events)-1]
}

// PurgeFrom removes every event dated on or after the given day and returns
// how many were dropped. Used when history is re-derived after an edit.
func (l *CapitalEventLedger) PurgeFrom(date time.Time) int {
	kept := l.events[:0]
	dropped := 0
	for _, e := range l.events {
		if e.Date.Before(date) && !dateutil.IsSameDay(e.Date, date) {
			kept = append(kept, e)
		} else {
			dropped++
		}
	}
	l.events = kept
	return dropped
}

// TrailingCashTakeover returns the latest event carrying a cash-takeover
// attribute, or nil.
func (l *CapitalEventLedger) TrailingCashTakeover() *CapitalEvent {
	for i := len(l.events) - 1; i >= 0; i-- {
		if _, ok := l.events[i].Attribute(AttrCashTakeover); ok {
			return l.events[i]
		}
	}
	return nil
}

// ValueAsset appends the synthetic valuation snapshot for the given date,
// carrying the asset's running figures and the initial value from the
// previous entry's final value (absent on the first entry).
func (l *CapitalEventLedger) ValueAsset(asset *domain.Asset, date time.Time) (*CapitalEvent, error) {
	prev := l.Last()
	e := NewCapitalEvent(date, "")

	set := func(a Attribute, v decimal.Decimal) error { return e.SetAttribute(a, v) }
	if err := set(AttrFinalPrice, asset.Price); err != nil {
		return nil, err
	}
	if err := set(AttrFinalValue, asset.Value()); err != nil {
		return nil, err
	}
	if err := set(AttrFinalInvested, asset.Invested); err != nil {
		return nil, err
	}
	if err := set(AttrFinalGains, asset.Gains); err != nil {
		return nil, err
	}
	if err := set(AttrFinalDividend, asset.Dividend); err != nil {
		return nil, err
	}
	if prev != nil {
		if v, ok := prev.Attribute(AttrFinalValue); ok {
			if err := set(AttrInitialValue, v); err != nil {
				return nil, err
			}
		}
		if g, ok := prev.Attribute(AttrFinalGained); ok {
			if err := set(AttrInitialGained, g); err != nil {
				return nil, err
			}
		}
	}

	l.Append(e)
	return e, nil
}
