package output

import (
	"github.com/shopspring/decimal"

	money "github.com/finbook/taxengine/pkg/decimal"
)

// FormatCurrency formats a decimal as sterling with 2 decimals.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount decimal.Decimal) string {
	return money.NewMoneyFromDecimal(amount).Format()
}

// FormatRate formats a fractional rate as a percentage with no decimals
// ("0.2" -> "20%").
func FormatRate(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(0) + "%"
}
