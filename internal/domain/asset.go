package domain

import (
	"github.com/shopspring/decimal"
)

// Asset is one holding as the account layer presents it to the engine:
// classification flags plus the running figures at the valuation date.
type Asset struct {
	Name string `yaml:"name" json:"name"`

	IsCapitalGains bool `yaml:"is_capital_gains" json:"is_capital_gains"`
	IsLifeBond     bool `yaml:"is_life_bond" json:"is_life_bond"`
	IsPriced       bool `yaml:"is_priced" json:"is_priced"`
	IsMoney        bool `yaml:"is_money" json:"is_money"`

	Price    decimal.Decimal `yaml:"price" json:"price"`
	Units    decimal.Decimal `yaml:"units" json:"units"`
	Cost     decimal.Decimal `yaml:"cost" json:"cost"`
	Invested decimal.Decimal `yaml:"invested" json:"invested"`
	Gains    decimal.Decimal `yaml:"gains" json:"gains"`
	Dividend decimal.Decimal `yaml:"dividend" json:"dividend"`
}

// Value returns the holding's market value at the current price. Money
// accounts are valued at cost.
func (a *Asset) Value() decimal.Decimal {
	if a.IsMoney || !a.IsPriced {
		return a.Cost
	}
	return a.Price.Mul(a.Units)
}
