package formulas

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// StdDev calculates the standard deviation of a slice of float64 values
func StdDev(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.StdDev(data, nil)
}

// Herfindahl calculates the Herfindahl-Hirschman concentration index over a
// set of position values: the sum of squared portfolio shares. Ranges from
// 1/n (evenly spread) to 1.0 (everything in one position).
func Herfindahl(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	if total == 0 {
		return 1.0
	}

	hhi := 0.0
	for _, v := range values {
		share := v / total
		hhi += share * share
	}
	return hhi
}

// Round rounds a float64 to n decimal places
func Round(val float64, decimals int) float64 {
	multiplier := math.Pow(10, float64(decimals))
	return math.Round(val*multiplier) / multiplier
}
