package features

import (
	"math"
	"testing"
)

func TestAcousticnessScorer(t *testing.T) {
	scorer := NewAcousticnessScorer(DefaultCalibration())

	tests := []struct {
		name     string
		flatness []float64
		rolloff  []float64
		expected float64
	}{
		{
			// Perfectly tonal, all energy low: maximally acoustic
			name:     "pure_tone_profile",
			flatness: constantSeries(0.0, 50),
			rolloff:  constantSeries(500.0, 50),
			expected: 1.0,
		},
		{
			// Noise-like and bright: not acoustic at all
			name:     "noise_profile",
			flatness: constantSeries(0.5, 50),
			rolloff:  constantSeries(9000.0, 50),
			expected: 0.0,
		},
		{
			// Both measurements at range midpoints
			name:     "midrange_profile",
			flatness: constantSeries(0.05, 50),
			rolloff:  constantSeries(4000.0, 50),
			expected: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorer.Score(tt.flatness, tt.rolloff)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Score() = %g, expected %g", got, tt.expected)
			}
		})
	}
}

func TestAcousticnessMonotoneInFlatness(t *testing.T) {
	scorer := NewAcousticnessScorer(DefaultCalibration())
	rolloff := constantSeries(3000.0, 50)

	// Holding rolloff fixed, flatter spectra can only lower the score
	prev := math.Inf(1)
	for flat := 0.0; flat <= 0.12; flat += 0.01 {
		got := scorer.Score(constantSeries(flat, 50), rolloff)
		if got > prev {
			t.Fatalf("score rose with flatness: f(%g)=%g > previous %g", flat, got, prev)
		}
		prev = got
	}
}

func TestAcousticnessMonotoneInRolloff(t *testing.T) {
	scorer := NewAcousticnessScorer(DefaultCalibration())
	flatness := constantSeries(0.03, 50)

	prev := math.Inf(1)
	for rolloff := 500.0; rolloff <= 8000.0; rolloff += 500.0 {
		got := scorer.Score(flatness, constantSeries(rolloff, 50))
		if got > prev {
			t.Fatalf("score rose with rolloff: f(%g)=%g > previous %g", rolloff, got, prev)
		}
		prev = got
	}
}

func TestAcousticnessBounds(t *testing.T) {
	scorer := NewAcousticnessScorer(DefaultCalibration())

	extremes := [][]float64{nil, constantSeries(-100.0, 10), constantSeries(0.0, 10), constantSeries(1e6, 10)}
	for _, flat := range extremes {
		for _, roll := range extremes {
			got := scorer.Score(flat, roll)
			if got < 0.0 || got > 1.0 {
				t.Fatalf("Score() = %g, outside [0, 1]", got)
			}
		}
	}
}
