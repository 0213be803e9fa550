package spectral

import (
	"math"
)

// SpectralFlatness computes spectral flatness (Wiener entropy).
// Lower values indicate tonal content, higher values noise-like content;
// the acousticness score inverts it.
type SpectralFlatness struct {
	minThreshold float64 // Minimum value to avoid log(0)
}

// NewSpectralFlatness creates a new spectral flatness calculator
func NewSpectralFlatness() *SpectralFlatness {
	return &SpectralFlatness{
		minThreshold: 1e-10,
	}
}

// Compute calculates spectral flatness for a single magnitude spectrum.
// The ratio of geometric mean to arithmetic mean is taken over the power
// spectrum, which is the domain the acousticness calibration range was
// tuned against. Returns a value in [0, 1].
func (sf *SpectralFlatness) Compute(magnitudeSpectrum []float64) float64 {
	if len(magnitudeSpectrum) == 0 {
		return 0.0
	}

	// Geometric mean in log domain for numerical stability.
	// Bins below the threshold are floored rather than skipped so that a
	// spectrum with energy in only a few bins still reads as non-flat.
	logSum := 0.0
	for _, magnitude := range magnitudeSpectrum {
		power := magnitude * magnitude
		if power < sf.minThreshold {
			power = sf.minThreshold
		}
		logSum += math.Log(power)
	}

	geometricMean := math.Exp(logSum / float64(len(magnitudeSpectrum)))

	arithmeticMean := 0.0
	for _, magnitude := range magnitudeSpectrum {
		arithmeticMean += magnitude * magnitude
	}
	arithmeticMean /= float64(len(magnitudeSpectrum))

	if arithmeticMean <= sf.minThreshold {
		return 0.0
	}

	flatness := geometricMean / arithmeticMean

	if flatness > 1.0 {
		flatness = 1.0
	}

	return flatness
}

// ComputeFrames processes multiple frames efficiently
func (sf *SpectralFlatness) ComputeFrames(spectrogram [][]float64) []float64 {
	if len(spectrogram) == 0 {
		return []float64{}
	}

	flatness := make([]float64, len(spectrogram))

	for t, magnitudeSpectrum := range spectrogram {
		flatness[t] = sf.Compute(magnitudeSpectrum)
	}

	return flatness
}
