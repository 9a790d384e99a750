package domain

import (
	"github.com/shopspring/decimal"
)

// TransSummary is a named total supplied by the transaction aggregator:
// this period's amount and the previous period's for comparison.
type TransSummary struct {
	Amount     decimal.Decimal
	PrevAmount decimal.Decimal
}

// SummarySet holds the named totals an analysis consumes and the derived
// amounts the ledger routes back into it.
type SummarySet struct {
	totals map[Category]TransSummary
}

// NewSummarySet creates an empty summary set.
func NewSummarySet() *SummarySet {
	return &SummarySet{totals: make(map[Category]TransSummary)}
}

// Summary returns the total for a category; a category never credited reads
// as zero.
func (s *SummarySet) Summary(c Category) TransSummary {
	return s.totals[c]
}

// Set replaces the total for a category.
func (s *SummarySet) Set(c Category, amount, prevAmount decimal.Decimal) {
	s.totals[c] = TransSummary{Amount: amount, PrevAmount: prevAmount}
}

// Credit adds to the current amount for a category.
func (s *SummarySet) Credit(c Category, amount decimal.Decimal) {
	t := s.totals[c]
	t.Amount = t.Amount.Add(amount)
	s.totals[c] = t
}

// Debit subtracts from the current amount for a category.
func (s *SummarySet) Debit(c Category, amount decimal.Decimal) {
	t := s.totals[c]
	t.Amount = t.Amount.Sub(amount)
	s.totals[c] = t
}
