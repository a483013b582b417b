// Package calc provides the pure finance math used by the projection engine:
// compound growth series, cumulative cash flow, unit economics, breakeven
// detection and multi-year aggregation. All functions are deterministic and
// allocate their own outputs, so they are safe to call from concurrent runs.
package calc

import "math"

// GrowthSeries returns a monthly series under compound growth:
//
//	series[i] = start * (1 + growth)^i
//
// growth may be negative (contraction). For growth > -1 the series decays
// toward zero but never goes negative.
func GrowthSeries(start, growth float64, months int) []float64 {
	if months < 0 {
		months = 0
	}
	series := make([]float64, months)
	for i := 0; i < months; i++ {
		series[i] = start * math.Pow(1+growth, float64(i))
	}
	return series
}

// Cumulative returns the running sum of values.
func Cumulative(values []float64) []float64 {
	out := make([]float64, len(values))
	total := 0.0
	for i, v := range values {
		total += v
		out[i] = total
	}
	return out
}

// MonthlyToAnnual collapses a monthly slice into an annual total.
func MonthlyToAnnual(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}
