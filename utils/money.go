package utils

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// RoundMoney rounds to 2 decimal places, the precision of all money columns.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Percent converts a percentage figure (19, 0.5, ...) into its fraction.
func Percent(p decimal.Decimal) decimal.Decimal {
	return p.Div(hundred)
}
