package config

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/finbook/taxengine/internal/domain"
)

// TotalInput is one named total from the aggregator.
type TotalInput struct {
	Category   string          `yaml:"category"`
	Amount     decimal.Decimal `yaml:"amount"`
	PrevAmount decimal.Decimal `yaml:"prev_amount"`
}

// ChargeableEventInput is one life-assurance chargeable gain.
type ChargeableEventInput struct {
	Date              time.Time       `yaml:"date"`
	Description       string          `yaml:"description"`
	Amount            decimal.Decimal `yaml:"amount"`
	EmbeddedTaxCredit decimal.Decimal `yaml:"embedded_tax_credit"`
	QualifyingYears   int             `yaml:"qualifying_years"`
}

// AnalysisInput is the full input for one analysis run: the year's
// parameters, the aggregated totals, the chargeable events and the holdings
// to value.
type AnalysisInput struct {
	TaxYear          *domain.TaxYearParameters `yaml:"tax_year"`
	BirthDate        time.Time                 `yaml:"birth_date"`
	ValuationDate    time.Time                 `yaml:"valuation_date"`
	Totals           []TotalInput              `yaml:"totals"`
	ChargeableEvents []ChargeableEventInput    `yaml:"chargeable_events"`
	Assets           []*domain.Asset           `yaml:"assets"`
}

// InputParser handles parsing of analysis input files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads an analysis input from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*AnalysisInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var input AnalysisInput
	if err := yaml.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&input); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &input, nil
}

// ValidateConfiguration validates the loaded input
func (ip *InputParser) ValidateConfiguration(input *AnalysisInput) error {
	if input.TaxYear != nil {
		if err := ip.validateTaxYear(input.TaxYear); err != nil {
			return fmt.Errorf("tax year validation failed: %w", err)
		}
	}

	for i, t := range input.Totals {
		if !domain.Category(t.Category).Valid() {
			return domain.NewConfigError("total %d: unknown category %q", i, t.Category)
		}
	}

	for i, e := range input.ChargeableEvents {
		if e.QualifyingYears < 1 {
			return domain.NewConfigError("chargeable event %d (%s): qualifying years must be at least 1", i, e.Description)
		}
		if e.Amount.IsNegative() {
			return domain.NewConfigError("chargeable event %d (%s): amount cannot be negative", i, e.Description)
		}
	}

	for i, a := range input.Assets {
		if a.Name == "" {
			return domain.NewConfigError("asset %d: name is required", i)
		}
		if a.IsPriced && a.Units.IsNegative() {
			return domain.NewConfigError("asset %q: units cannot be negative", a.Name)
		}
	}

	return nil
}

func (ip *InputParser) validateTaxYear(p *domain.TaxYearParameters) error {
	if p.Year < 1900 || p.Year > 2200 {
		return fmt.Errorf("implausible fiscal year %d", p.Year)
	}

	amounts := map[string]decimal.Decimal{
		"allowance":               p.Allowance,
		"lo_age_allowance":        p.LoAgeAllowance,
		"hi_age_allowance":        p.HiAgeAllowance,
		"age_allowance_limit":     p.AgeAllowanceLimit,
		"additional_income_limit": p.AdditionalIncomeLimit,
		"lo_band":                 p.LoBand,
		"basic_band":              p.BasicBand,
		"rental_allowance":        p.RentalAllowance,
		"capital_gains_allowance": p.CapitalGainsAllowance,
	}
	for name, v := range amounts {
		if v.IsNegative() {
			return fmt.Errorf("%s cannot be negative", name)
		}
	}

	rateSets := map[string]domain.RateSet{
		"salary_rates":        p.SalaryRates,
		"interest_rates":      p.InterestRates,
		"dividend_rates":      p.DividendRates,
		"capital_gains_rates": p.CapitalGainsRates,
	}
	one := decimal.NewFromInt(1)
	for name, rs := range rateSets {
		for _, r := range []decimal.Decimal{rs.Lo, rs.Basic, rs.Hi, rs.Additional} {
			if r.IsNegative() || r.GreaterThan(one) {
				return fmt.Errorf("%s must be fractions between 0 and 1", name)
			}
		}
	}

	if p.HasAdditionalTaxBand && p.AdditionalIncomeLimit.LessThanOrEqual(p.BasicBand) {
		return fmt.Errorf("additional_income_limit must exceed basic_band when the additional band exists")
	}

	return nil
}
