package features

// AcousticnessScorer combines spectral flatness (tonality) and spectral
// rolloff (high-frequency content) into an acousticness score in [0, 1].
// Both measurements are inverted: tonal content with little
// high-frequency energy reads as acoustic. Stateless; safe for reuse.
type AcousticnessScorer struct {
	cal *Calibration
}

// NewAcousticnessScorer creates an acousticness scorer over a validated
// calibration
func NewAcousticnessScorer(cal *Calibration) *AcousticnessScorer {
	return &AcousticnessScorer{cal: cal}
}

// Score computes the acousticness score from the spectral flatness and
// rolloff series
func (s *AcousticnessScorer) Score(flatness, rolloff []float64) float64 {
	invFlatness := 1.0 - normalize(seriesMean(flatness), s.cal.FlatnessMin, s.cal.FlatnessMax)
	invRolloff := 1.0 - normalize(seriesMean(rolloff), s.cal.RolloffMin, s.cal.RolloffMax)

	return s.cal.FlatnessWeight*invFlatness + s.cal.RolloffWeight*invRolloff
}
