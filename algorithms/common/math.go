package common

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Shared statistical helpers used across the analysis algorithms,
// built on gonum for robustness.

// Mean calculates the arithmetic mean of a slice
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// Variance calculates the population variance of a slice.
// Population (not sample) variance keeps beat-interval regularity
// measures consistent for short interval lists.
func Variance(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}

	mean := Mean(data)
	sum := 0.0
	for _, val := range data {
		diff := val - mean
		sum += diff * diff
	}
	return sum / float64(len(data))
}

// StandardDeviation calculates the population standard deviation
func StandardDeviation(data []float64) float64 {
	return math.Sqrt(Variance(data))
}

// RMS calculates root mean square
func RMS(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}

	sumSquares := 0.0
	for _, val := range data {
		sumSquares += val * val
	}

	return math.Sqrt(sumSquares / float64(len(data)))
}

// Median returns the median value of a slice
func Median(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}

	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	return stat.Quantile(0.5, stat.Empirical, sorted, nil)
}

// Clamp constrains a value to a range
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// NextPowerOfTwo finds the next power of 2 >= n
func NextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}

	power := 1
	for power < n {
		power <<= 1
	}
	return power
}
