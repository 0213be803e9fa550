package features

// EnergyScorer combines loudness, brightness, and onset activity into a
// single energy score in [0, 1]. Loudness dominates the weighting.
// Stateless; safe for reuse across calls.
type EnergyScorer struct {
	cal *Calibration
}

// NewEnergyScorer creates an energy scorer over a validated calibration
func NewEnergyScorer(cal *Calibration) *EnergyScorer {
	return &EnergyScorer{cal: cal}
}

// Score computes the energy score from the RMS, spectral centroid, and
// onset strength series. Empty series contribute a zero mean.
func (s *EnergyScorer) Score(rms, centroid, onsetEnvelope []float64) float64 {
	loudness := normalize(seriesMean(rms), s.cal.RMSMin, s.cal.RMSMax)
	brightness := normalize(seriesMean(centroid), s.cal.CentroidMin, s.cal.CentroidMax)
	activity := normalize(seriesMean(onsetEnvelope), s.cal.OnsetMeanMin, s.cal.OnsetMeanMax)

	return s.cal.LoudnessWeight*loudness +
		s.cal.BrightnessWeight*brightness +
		s.cal.ActivityWeight*activity
}
