package normalize

import "math"

// ConvertCost divides a source-currency cost by the exchange rate and rounds
// to 2 decimal places. Rounding is half-away-from-zero (math.Round), so
// 0.125 becomes 0.13; this is deliberate and pinned by tests since drift at
// the 2-decimal boundary is a common silent error source.
func ConvertCost(raw, rate float64) float64 {
	return math.Round(raw/rate*100) / 100
}
