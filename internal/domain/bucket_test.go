package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketSetRegister(t *testing.T) {
	s := NewBucketSet()

	b, err := s.Register(CatSalaryBasic)
	require.NoError(t, err)
	assert.Equal(t, CatSalaryBasic, b.Category)

	_, err = s.Register(CatSalaryBasic)
	require.Error(t, err)
	assert.True(t, IsConfigError(err), "double registration is a configuration error")

	_, err = s.Register(Category("no-such-line"))
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}

func TestBucketSetLookupAndGet(t *testing.T) {
	s := NewBucketSet()
	_, err := s.Get(CatSalaryBasic)
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
	assert.Nil(t, s.Lookup(CatSalaryBasic))

	registered, err := s.Register(CatSalaryBasic)
	require.NoError(t, err)
	got, err := s.Get(CatSalaryBasic)
	require.NoError(t, err)
	assert.Same(t, registered, got)
	assert.Same(t, registered, s.Lookup(CatSalaryBasic))
}

func TestBucketSetOrder(t *testing.T) {
	s := NewBucketSet()
	order := []Category{CatTotalTaxDue, CatTaxDueSalary, CatSalaryFree, CatSalaryBasic}
	for _, c := range order {
		_, err := s.Register(c)
		require.NoError(t, err)
	}
	assert.Equal(t, order, s.Categories())
	assert.Equal(t, len(order), s.Len())
}

func TestSummarySet(t *testing.T) {
	s := NewSummarySet()
	assert.True(t, s.Summary(CatGrossSalary).Amount.IsZero(), "unset categories read as zero")

	s.Set(CatGrossSalary, decimal.NewFromInt(25000), decimal.NewFromInt(24000))
	assert.True(t, s.Summary(CatGrossSalary).Amount.Equal(decimal.NewFromInt(25000)))
	assert.True(t, s.Summary(CatGrossSalary).PrevAmount.Equal(decimal.NewFromInt(24000)))

	s.Credit(CatGrossSalary, decimal.NewFromInt(500))
	s.Debit(CatGrossSalary, decimal.NewFromInt(200))
	assert.True(t, s.Summary(CatGrossSalary).Amount.Equal(decimal.NewFromInt(25300)))
}
