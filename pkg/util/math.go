package util

import "github.com/shopspring/decimal"

// Round4 rounds v half away from zero to 4 decimal places (metrics).
func Round4(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(4).Float64()
	return f
}

// Round2 rounds v half away from zero to 2 decimal places (prices).
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
