package utils

import (
	"math"

	"github.com/shopspring/decimal"
)

// Round2 rounds x to 2 decimal places (banking-style simple round).
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// LineTotal computes quantity*unitPrice - discount, rounded to 2 decimal
// places. Decimal arithmetic keeps the intermediate product exact (e.g.
// 3 * 1.15) before the final rounding.
func LineTotal(quantity int, unitPrice, discount float64) float64 {
	total := decimal.NewFromFloat(unitPrice).
		Mul(decimal.NewFromInt(int64(quantity))).
		Sub(decimal.NewFromFloat(discount)).
		Round(2)
	f, _ := total.Float64()
	return f
}
