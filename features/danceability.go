package features

import (
	"github.com/audiomood/moodscan/algorithms/common"
)

// DanceabilityScorer combines beat strength, beat-interval regularity,
// and tempo suitability into a danceability score in [0, 1].
// Stateless; safe for reuse across calls.
type DanceabilityScorer struct {
	cal *Calibration
}

// NewDanceabilityScorer creates a danceability scorer over a validated
// calibration
func NewDanceabilityScorer(cal *Calibration) *DanceabilityScorer {
	return &DanceabilityScorer{cal: cal}
}

// Score computes the danceability score. Fewer than 2 beat frames means
// the rhythm is indeterminate and yields exactly 0.0 regardless of the
// other inputs; this is a defined terminal case, not an error.
func (s *DanceabilityScorer) Score(onsetEnvelope []float64, beatFrames []int, tempo float64) float64 {
	if len(beatFrames) < 2 {
		return 0.0
	}

	// Beat strength: mean onset energy at the beat positions
	strengths := make([]float64, 0, len(beatFrames))
	for _, frame := range beatFrames {
		if frame >= 0 && frame < len(onsetEnvelope) {
			strengths = append(strengths, onsetEnvelope[frame])
		}
	}
	beatStrength := normalize(common.Mean(strengths), s.cal.BeatStrengthMin, s.cal.BeatStrengthMax)

	// Pulse clarity: regular beats have low interval variance. The form
	// 1/(1+v/scale) is naturally bounded in (0, 1], so no clamp is needed.
	intervals := make([]float64, len(beatFrames)-1)
	for i := range intervals {
		intervals[i] = float64(beatFrames[i+1] - beatFrames[i])
	}
	pulseClarity := 1.0 / (1.0 + common.Variance(intervals)/s.cal.IntervalVarianceScale)

	tempoFactor := s.tempoFactor(tempo)

	return s.cal.BeatStrengthWeight*beatStrength +
		s.cal.PulseClarityWeight*pulseClarity +
		s.cal.TempoWeight*tempoFactor
}

// tempoFactor maps tempo onto a three-bucket suitability step function:
// unplayable extremes, the typical danceable range, and everything else
func (s *DanceabilityScorer) tempoFactor(tempo float64) float64 {
	switch {
	case tempo < s.cal.TempoExtremeLow || tempo > s.cal.TempoExtremeHigh:
		return s.cal.TempoFactorExtreme
	case tempo >= s.cal.TempoIdealLow && tempo <= s.cal.TempoIdealHigh:
		return s.cal.TempoFactorIdeal
	default:
		return s.cal.TempoFactorModerate
	}
}
