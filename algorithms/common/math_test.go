package common

import (
	"math"
	"testing"
)

func TestMean(t *testing.T) {
	tests := []struct {
		name     string
		data     []float64
		expected float64
	}{
		{"empty", nil, 0.0},
		{"single", []float64{5.0}, 5.0},
		{"several", []float64{1.0, 2.0, 3.0, 4.0}, 2.5},
		{"negative", []float64{-2.0, 2.0}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Mean(tt.data); math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("Mean(%v) = %g, expected %g", tt.data, got, tt.expected)
			}
		})
	}
}

func TestVariance(t *testing.T) {
	tests := []struct {
		name     string
		data     []float64
		expected float64
	}{
		{"empty", nil, 0.0},
		{"constant", []float64{3.0, 3.0, 3.0}, 0.0},
		// Population variance: divide by n, not n-1
		{"two_values", []float64{0.0, 2.0}, 1.0},
		{"intervals", []float64{20.0, 22.0, 21.0, 21.0}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Variance(tt.data); math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("Variance(%v) = %g, expected %g", tt.data, got, tt.expected)
			}
		})
	}
}

func TestRMS(t *testing.T) {
	tests := []struct {
		name     string
		data     []float64
		expected float64
	}{
		{"empty", nil, 0.0},
		{"constant", []float64{0.5, 0.5, 0.5}, 0.5},
		{"alternating", []float64{1.0, -1.0, 1.0, -1.0}, 1.0},
		{"mixed", []float64{3.0, 4.0}, math.Sqrt(12.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RMS(tt.data); math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("RMS(%v) = %g, expected %g", tt.data, got, tt.expected)
			}
		})
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name     string
		data     []float64
		expected float64
	}{
		{"empty", nil, 0.0},
		{"single", []float64{7.0}, 7.0},
		{"odd_count", []float64{9.0, 1.0, 5.0}, 5.0},
		{"with_outlier", []float64{1.0, 1.0, 1.0, 1.0, 100.0}, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Median(tt.data); math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("Median(%v) = %g, expected %g", tt.data, got, tt.expected)
			}
		})
	}
}

func TestMedianDoesNotMutate(t *testing.T) {
	data := []float64{3.0, 1.0, 2.0}
	Median(data)
	if data[0] != 3.0 || data[1] != 1.0 || data[2] != 2.0 {
		t.Errorf("Median mutated its input: %v", data)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		value, min, max, expected float64
	}{
		{0.5, 0.0, 1.0, 0.5},
		{-0.1, 0.0, 1.0, 0.0},
		{1.5, 0.0, 1.0, 1.0},
		{0.0, 0.0, 1.0, 0.0},
		{1.0, 0.0, 1.0, 1.0},
	}

	for _, tt := range tests {
		if got := Clamp(tt.value, tt.min, tt.max); got != tt.expected {
			t.Errorf("Clamp(%g, %g, %g) = %g, expected %g", tt.value, tt.min, tt.max, got, tt.expected)
		}
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	tests := []struct {
		n, expected int
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 4},
		{1000, 1024},
		{2048, 2048},
	}

	for _, tt := range tests {
		if got := NextPowerOfTwo(tt.n); got != tt.expected {
			t.Errorf("NextPowerOfTwo(%d) = %d, expected %d", tt.n, got, tt.expected)
		}
	}
}
