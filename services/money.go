package services

import (
	"github.com/shopspring/decimal"
)

// sumExact adds values as exact decimals. The result does not depend on the
// order of values, which float64 addition does not guarantee.
func sumExact(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total.InexactFloat64()
}

// RoundMoney rounds half away from zero to cents.
func RoundMoney(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// roundTenth rounds to one decimal, used for percentages.
func roundTenth(v float64) float64 {
	return decimal.NewFromFloat(v).Round(1).InexactFloat64()
}
