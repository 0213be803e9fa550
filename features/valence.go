package features

import (
	"github.com/audiomood/moodscan/algorithms/common"
)

// Interval offsets in semitones above the tonic
const (
	minorThirdOffset = 3
	majorThirdOffset = 4
)

// ValenceScorer combines an estimated major/minor mode with the
// harmonic-vs-percussive energy balance into a valence score in [0, 1].
// The mode estimate is a heuristic key-mode proxy, not true key
// detection. Stateless; safe for reuse across calls.
type ValenceScorer struct {
	cal *Calibration
}

// NewValenceScorer creates a valence scorer over a validated calibration
func NewValenceScorer(cal *Calibration) *ValenceScorer {
	return &ValenceScorer{cal: cal}
}

// Score computes the valence score from the chroma matrix of the
// harmonic component and the RMS series of the harmonic and percussive
// components
func (s *ValenceScorer) Score(chromaMatrix [][]float64, harmonicRMS, percussiveRMS []float64) float64 {
	modeScore := s.modeScore(chromaMatrix)
	ratio := s.harmonicRatio(harmonicRMS, percussiveRMS)

	// Mode sets the baseline; a percussive mix pulls toward neutral
	valence := s.cal.ModeWeight*modeScore + s.cal.HarmonicRatioWeight*ratio

	return common.Clamp(valence, 0.0, 1.0)
}

// modeScore estimates major vs minor mode from pitch class energy. The
// profile is rotated so the strongest pitch class (the assumed tonic)
// sits at position 0, making the comparison key-independent: a dominant
// major third reads as major, otherwise minor.
func (s *ValenceScorer) modeScore(chromaMatrix [][]float64) float64 {
	profile := make([]float64, len(chromaMatrix))
	for pitchClass, row := range chromaMatrix {
		for _, energy := range row {
			profile[pitchClass] += energy
		}
	}

	if len(profile) < 12 {
		return s.cal.ModeMinorScore
	}

	tonicIndex := 0
	for i, energy := range profile {
		if energy > profile[tonicIndex] {
			tonicIndex = i
		}
	}

	majorStrength := profile[(tonicIndex+majorThirdOffset)%len(profile)]
	minorStrength := profile[(tonicIndex+minorThirdOffset)%len(profile)]

	if majorStrength > minorStrength {
		return s.cal.ModeMajorScore
	}
	return s.cal.ModeMinorScore
}

// harmonicRatio is the harmonic share of total energy: 1.0 for purely
// harmonic material, 0.0 for purely percussive, 0.5 (neutral) for silence
func (s *ValenceScorer) harmonicRatio(harmonicRMS, percussiveRMS []float64) float64 {
	harmonicEnergy := common.Mean(harmonicRMS)
	percussiveEnergy := common.Mean(percussiveRMS)

	total := harmonicEnergy + percussiveEnergy
	if total <= 0 {
		return 0.5
	}

	return harmonicEnergy / total
}
