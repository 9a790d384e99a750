package domain

import (
	"github.com/shopspring/decimal"
)

// TaxDetailBucket is one node of the reporting tree produced by a tax pass.
// Amount and taxation are set once when the bucket is filed and are not
// touched again; a new pass builds an entirely new tree.
type TaxDetailBucket struct {
	Category Category
	Amount   decimal.Decimal
	Taxation decimal.Decimal
	Rate     decimal.Decimal
	HasRate  bool
	Parent   *TaxDetailBucket
}

// BucketSet is the per-pass registry of tax detail buckets. Iteration order
// is registration order so reports are deterministic.
type BucketSet struct {
	buckets map[Category]*TaxDetailBucket
	order   []Category
}

// NewBucketSet creates an empty bucket registry.
func NewBucketSet() *BucketSet {
	return &BucketSet{buckets: make(map[Category]*TaxDetailBucket)}
}

// Register creates the bucket for a category. Registering a category twice is
// a configuration error.
func (s *BucketSet) Register(c Category) (*TaxDetailBucket, error) {
	if !c.Valid() {
		return nil, NewConfigError("unknown category %q", c)
	}
	if _, exists := s.buckets[c]; exists {
		return nil, NewConfigError("category %q registered twice", c)
	}
	b := &TaxDetailBucket{Category: c}
	s.buckets[c] = b
	s.order = append(s.order, c)
	return b, nil
}

// Get returns the bucket for a category, or a configuration error if it was
// never filed.
func (s *BucketSet) Get(c Category) (*TaxDetailBucket, error) {
	b, ok := s.buckets[c]
	if !ok {
		return nil, NewConfigError("no bucket filed for category %q", c)
	}
	return b, nil
}

// Lookup returns the bucket for a category or nil.
func (s *BucketSet) Lookup(c Category) *TaxDetailBucket {
	return s.buckets[c]
}

// Categories returns the filed categories in registration order.
func (s *BucketSet) Categories() []Category {
	out := make([]Category, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of filed buckets.
func (s *BucketSet) Len() int {
	return len(s.order)
}
