package features

import (
	"math"
	"testing"
)

func constantSeries(value float64, n int) []float64 {
	series := make([]float64, n)
	for i := range series {
		series[i] = value
	}
	return series
}

func TestEnergyScorer(t *testing.T) {
	scorer := NewEnergyScorer(DefaultCalibration())

	tests := []struct {
		name     string
		rms      []float64
		centroid []float64
		onset    []float64
		expected float64
	}{
		{
			name:     "silence_scores_zero",
			rms:      constantSeries(0.0, 100),
			centroid: constantSeries(0.0, 100),
			onset:    constantSeries(0.0, 100),
			expected: 0.0,
		},
		{
			name:     "empty_series_score_zero",
			rms:      nil,
			centroid: nil,
			onset:    nil,
			expected: 0.0,
		},
		{
			name:     "saturated_measurements_score_one",
			rms:      constantSeries(10.0, 100),
			centroid: constantSeries(20000.0, 100),
			onset:    constantSeries(50.0, 100),
			expected: 1.0,
		},
		{
			name:     "midrange_measurements",
			rms:      constantSeries(0.15, 100),   // half of the RMS range
			centroid: constantSeries(2250.0, 100), // half of the centroid range
			onset:    constantSeries(0.75, 100),   // half of the onset range
			expected: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorer.Score(tt.rms, tt.centroid, tt.onset)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Score() = %g, expected %g", got, tt.expected)
			}
		})
	}
}

func TestEnergyScorerBounds(t *testing.T) {
	scorer := NewEnergyScorer(DefaultCalibration())

	// Even absurd measurement magnitudes stay inside [0, 1]
	extremes := [][]float64{
		constantSeries(-1e6, 10),
		constantSeries(0.0, 10),
		constantSeries(1e-9, 10),
		constantSeries(1e6, 10),
	}

	for _, rms := range extremes {
		for _, centroid := range extremes {
			for _, onset := range extremes {
				got := scorer.Score(rms, centroid, onset)
				if got < 0.0 || got > 1.0 {
					t.Fatalf("Score() = %g, outside [0, 1]", got)
				}
			}
		}
	}
}

func TestEnergyScorerLoudnessDominates(t *testing.T) {
	scorer := NewEnergyScorer(DefaultCalibration())

	quiet := scorer.Score(constantSeries(0.01, 100), constantSeries(2000.0, 100), constantSeries(0.5, 100))
	loud := scorer.Score(constantSeries(0.25, 100), constantSeries(2000.0, 100), constantSeries(0.5, 100))

	if loud <= quiet {
		t.Errorf("louder material should score higher: loud=%g quiet=%g", loud, quiet)
	}
}
