package features

import (
	"math"
	"testing"
)

// synthChroma builds a 12-row chroma matrix with the given per-class
// energies repeated across numFrames frames
func synthChroma(energies [12]float64, numFrames int) [][]float64 {
	matrix := make([][]float64, 12)
	for pc := range matrix {
		matrix[pc] = make([]float64, numFrames)
		for f := range matrix[pc] {
			matrix[pc][f] = energies[pc]
		}
	}
	return matrix
}

func TestValenceMode(t *testing.T) {
	scorer := NewValenceScorer(DefaultCalibration())

	// Balanced harmonic/percussive energy pins the ratio term at 0.5, so
	// the score isolates the mode term: 0.7*mode + 0.3*0.5
	balanced := constantSeries(0.1, 20)

	tests := []struct {
		name     string
		energies [12]float64
		expected float64
	}{
		{
			// C tonic with a strong E (major third): major
			name:     "major_third_dominant",
			energies: [12]float64{10, 0, 0, 1, 5, 0, 0, 2, 0, 0, 0, 0},
			expected: 0.7*0.75 + 0.3*0.5,
		},
		{
			// C tonic with a strong E-flat (minor third): minor
			name:     "minor_third_dominant",
			energies: [12]float64{10, 0, 0, 5, 1, 0, 0, 2, 0, 0, 0, 0},
			expected: 0.7*0.35 + 0.3*0.5,
		},
		{
			// Tonic away from C exercises the rotation: A tonic, C# third
			name:     "rotated_major",
			energies: [12]float64{2, 5, 0, 0, 0, 0, 0, 0, 0, 10, 0, 0},
			expected: 0.7*0.75 + 0.3*0.5,
		},
		{
			// Equal third strengths resolve to minor
			name:     "ambiguous_thirds",
			energies: [12]float64{10, 0, 0, 4, 4, 0, 0, 0, 0, 0, 0, 0},
			expected: 0.7*0.35 + 0.3*0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorer.Score(synthChroma(tt.energies, 20), balanced, balanced)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Score() = %g, expected %g", got, tt.expected)
			}
		})
	}
}

func TestValenceHarmonicRatio(t *testing.T) {
	scorer := NewValenceScorer(DefaultCalibration())
	major := [12]float64{10, 0, 0, 1, 5, 0, 0, 0, 0, 0, 0, 0}
	chroma := synthChroma(major, 20)

	tests := []struct {
		name       string
		harmonic   []float64
		percussive []float64
		ratio      float64
	}{
		{"fully_harmonic", constantSeries(0.2, 20), constantSeries(0.0, 20), 1.0},
		{"fully_percussive", constantSeries(0.0, 20), constantSeries(0.2, 20), 0.0},
		{"silence_is_neutral", constantSeries(0.0, 20), constantSeries(0.0, 20), 0.5},
		{"empty_series_is_neutral", nil, nil, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expected := 0.7*0.75 + 0.3*tt.ratio
			got := scorer.Score(chroma, tt.harmonic, tt.percussive)
			if math.Abs(got-expected) > 1e-9 {
				t.Errorf("Score() = %g, expected %g", got, expected)
			}
		})
	}
}

func TestValenceDegenerateChroma(t *testing.T) {
	scorer := NewValenceScorer(DefaultCalibration())
	balanced := constantSeries(0.1, 20)

	// A malformed or empty chroma matrix falls back to the minor score
	for _, chroma := range [][][]float64{nil, {}, make([][]float64, 5)} {
		got := scorer.Score(chroma, balanced, balanced)
		expected := 0.7*0.35 + 0.3*0.5
		if math.Abs(got-expected) > 1e-9 {
			t.Errorf("Score(degenerate chroma) = %g, expected %g", got, expected)
		}
	}
}

func TestValenceBounds(t *testing.T) {
	scorer := NewValenceScorer(DefaultCalibration())

	energies := [12]float64{1e9, 0, 0, 0, 1e9, 0, 0, 0, 0, 0, 0, 0}
	extremes := [][]float64{nil, constantSeries(0.0, 10), constantSeries(1e9, 10)}

	for _, h := range extremes {
		for _, p := range extremes {
			got := scorer.Score(synthChroma(energies, 10), h, p)
			if got < 0.0 || got > 1.0 {
				t.Fatalf("Score() = %g, outside [0, 1]", got)
			}
		}
	}
}
