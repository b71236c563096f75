package models

import "github.com/shopspring/decimal"

// CurrencyPlaces is the number of decimal places kept for every amount.
const CurrencyPlaces = 2

// RoundCurrency rounds an amount half away from zero to CurrencyPlaces.
func RoundCurrency(d decimal.Decimal) decimal.Decimal {
	return d.Round(CurrencyPlaces)
}

// ParseAmount parses a user-entered amount and rounds it to CurrencyPlaces.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	return RoundCurrency(d), nil
}
