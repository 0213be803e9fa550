package features

import (
	"github.com/audiomood/moodscan/analysis"
)

// Analyzer is the low-level audio analysis collaborator the extractor
// consumes. analysis.Pipeline is the production implementation; tests
// substitute stubs. All measurements are pure functions of the waveform.
type Analyzer interface {
	// Decode reads and decodes audio into a mono waveform; failures are
	// *transcode.DecodeError
	Decode(path string) (*analysis.Waveform, error)

	// OnsetStrength returns one non-negative onset strength value per
	// analysis frame
	OnsetStrength(w *analysis.Waveform) []float64

	// BeatTrack returns tempo in BPM and strictly increasing beat frame
	// indices into the onset envelope. Fewer than 2 beats is a valid
	// result for arrhythmic content.
	BeatTrack(w *analysis.Waveform, onsetEnvelope []float64) (float64, []int)

	// RMS returns the per-frame loudness series
	RMS(w *analysis.Waveform) []float64

	// SpectralCentroid returns the per-frame brightness series in Hz
	SpectralCentroid(w *analysis.Waveform) []float64

	// SpectralFlatness returns the per-frame tonality series
	SpectralFlatness(w *analysis.Waveform) []float64

	// SpectralRolloff returns the per-frame rolloff frequency series in Hz
	SpectralRolloff(w *analysis.Waveform) []float64

	// HarmonicPercussiveSplit separates the waveform into harmonic and
	// percussive components of identical length
	HarmonicPercussiveSplit(w *analysis.Waveform) (*analysis.Waveform, *analysis.Waveform, error)

	// ChromaCQT returns the 12 x T pitch class energy matrix
	ChromaCQT(w *analysis.Waveform) [][]float64
}
