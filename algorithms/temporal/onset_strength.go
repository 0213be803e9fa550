package temporal

import (
	"github.com/audiomood/moodscan/algorithms/spectral"
	"github.com/audiomood/moodscan/algorithms/windowing"
)

// OnsetStrength computes a per-frame onset strength envelope from
// half-wave rectified power spectral flux. One value per STFT frame,
// non-negative, larger values at note/beat attacks.
type OnsetStrength struct {
	stft       *spectral.STFT
	flux       *spectral.SpectralFlux
	windowSize int
	hopSize    int
}

// NewOnsetStrength creates a new onset strength calculator
func NewOnsetStrength(windowSize, hopSize int) *OnsetStrength {
	return &OnsetStrength{
		stft:       spectral.NewSTFT(),
		flux:       spectral.NewSpectralFluxPower(),
		windowSize: windowSize,
		hopSize:    hopSize,
	}
}

// Compute calculates the onset envelope for a signal
func (os *OnsetStrength) Compute(signal []float64, sampleRate int) ([]float64, error) {
	if len(signal) < os.windowSize {
		return []float64{}, nil
	}

	window := windowing.NewHann(os.windowSize, false)
	stftResult, err := os.stft.ComputeWithWindow(signal, os.windowSize, os.hopSize, sampleRate, window)
	if err != nil {
		return nil, err
	}

	return os.ComputeFromSpectrogram(stftResult.Magnitude), nil
}

// ComputeFromSpectrogram calculates the onset envelope from an existing
// magnitude spectrogram, avoiding a redundant STFT
func (os *OnsetStrength) ComputeFromSpectrogram(magnitude [][]float64) []float64 {
	return os.flux.Compute(magnitude)
}
