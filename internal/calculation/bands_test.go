package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/finbook/taxengine/internal/domain"
)

func testYear() *domain.TaxYearParameters {
	return &domain.TaxYearParameters{
		Year:                  2010,
		Allowance:             decimal.NewFromInt(10000),
		LoAgeAllowance:        decimal.NewFromInt(11000),
		HiAgeAllowance:        decimal.NewFromInt(12000),
		AgeAllowanceLimit:     decimal.NewFromInt(30000),
		AdditionalIncomeLimit: decimal.NewFromInt(150000),
		LoBand:                decimal.NewFromInt(2000),
		BasicBand:             decimal.NewFromInt(30000),
		SalaryRates: domain.RateSet{
			Lo:         decimal.NewFromFloat(0.10),
			Basic:      decimal.NewFromFloat(0.20),
			Hi:         decimal.NewFromFloat(0.40),
			Additional: decimal.NewFromFloat(0.45),
		},
		InterestRates: domain.RateSet{
			Lo:         decimal.NewFromFloat(0.10),
			Basic:      decimal.NewFromFloat(0.20),
			Hi:         decimal.NewFromFloat(0.40),
			Additional: decimal.NewFromFloat(0.45),
		},
		DividendRates: domain.RateSet{
			Lo:         decimal.Zero,
			Basic:      decimal.NewFromFloat(0.10),
			Hi:         decimal.NewFromFloat(0.325),
			Additional: decimal.NewFromFloat(0.375),
		},
		CapitalGainsRates: domain.RateSet{
			Lo:         decimal.NewFromFloat(0.18),
			Basic:      decimal.NewFromFloat(0.18),
			Hi:         decimal.NewFromFloat(0.28),
			Additional: decimal.NewFromFloat(0.28),
		},
		HasLoSalaryBand:       false,
		HasAdditionalTaxBand:  false,
		RentalAllowance:       decimal.NewFromInt(1000),
		CapitalGainsAllowance: decimal.NewFromInt(3000),
		CapitalGainsAsIncome:  true,
	}
}

// TestCalculateAllowances covers the age bands and both tapering rules.
func TestCalculateAllowances(t *testing.T) {
	tests := []struct {
		name             string
		age              int
		income           decimal.Decimal
		additionalBand   bool
		expectedAllow    decimal.Decimal
		expectedOriginal decimal.Decimal
		expectAgeAllow   bool
		expectReduced    bool
		description      string
	}{
		{
			name:             "Standard allowance under 65",
			age:              45,
			income:           decimal.NewFromInt(20000),
			expectedAllow:    decimal.NewFromInt(10000),
			expectedOriginal: decimal.NewFromInt(10000),
			expectAgeAllow:   false,
			expectReduced:    false,
			description:      "No age allowance, no tapering",
		},
		{
			name:             "Lo age allowance at 65",
			age:              65,
			income:           decimal.NewFromInt(20000),
			expectedAllow:    decimal.NewFromInt(11000),
			expectedOriginal: decimal.NewFromInt(11000),
			expectAgeAllow:   true,
			expectReduced:    false,
			description:      "Income under the age allowance limit",
		},
		{
			name:             "Hi age allowance at 75",
			age:              75,
			income:           decimal.NewFromInt(20000),
			expectedAllow:    decimal.NewFromInt(12000),
			expectedOriginal: decimal.NewFromInt(12000),
			expectAgeAllow:   true,
			expectReduced:    false,
			description:      "75 picks the high-age allowance",
		},
		{
			name:             "Partial taper keeps age allowance",
			age:              66,
			income:           decimal.NewFromInt(31000),
			expectedAllow:    decimal.NewFromInt(10500),
			expectedOriginal: decimal.NewFromInt(11000),
			expectAgeAllow:   true,
			expectReduced:    true,
			description:      "£1000 over the limit reduces the allowance by £500",
		},
		{
			name:             "Taper determinism at limit plus 10000",
			age:              66,
			income:           decimal.NewFromInt(40000),
			expectedAllow:    decimal.NewFromInt(10000),
			expectedOriginal: decimal.NewFromInt(11000),
			expectAgeAllow:   false,
			expectReduced:    true,
			description:      "Reduction 5000 drops below standard, so the standard allowance snaps back and the flag clears",
		},
		{
			name:             "Additional-rate taper can zero the allowance",
			age:              45,
			income:           decimal.NewFromInt(200000),
			additionalBand:   true,
			expectedAllow:    decimal.Zero,
			expectedOriginal: decimal.NewFromInt(10000),
			expectAgeAllow:   false,
			expectReduced:    true,
			description:      "£50000 over the additional limit wipes the £10000 allowance",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testYear()
			p.HasAdditionalTaxBand = tt.additionalBand
			res := calculateAllowances(p, tt.age, tt.income)
			assert.True(t, res.Adjusted.Equal(tt.expectedAllow),
				"%s: adjusted allowance %s, expected %s", tt.description, res.Adjusted, tt.expectedAllow)
			assert.True(t, res.Original.Equal(tt.expectedOriginal),
				"original allowance %s, expected %s", res.Original, tt.expectedOriginal)
			assert.Equal(t, tt.expectAgeAllow, res.HasAgeAllowance)
			assert.Equal(t, tt.expectReduced, res.HasReducedAllow)
		})
	}
}

// TestTakeClampsAtZero checks the band consumption primitive never drives a
// band negative.
func TestTakeClampsAtZero(t *testing.T) {
	band := decimal.NewFromInt(100)

	used := take(&band, decimal.NewFromInt(250))
	assert.True(t, used.Equal(decimal.NewFromInt(100)))
	assert.True(t, band.IsZero())

	used = take(&band, decimal.NewFromInt(50))
	assert.True(t, used.IsZero(), "an exhausted band yields nothing")
	assert.True(t, band.IsZero())
}

func TestHiBandWidth(t *testing.T) {
	p := testYear()
	assert.True(t, p.HiBandWidth().IsZero(), "no additional band means no capped high band")

	p.HasAdditionalTaxBand = true
	assert.True(t, p.HiBandWidth().Equal(decimal.NewFromInt(120000)))
}
