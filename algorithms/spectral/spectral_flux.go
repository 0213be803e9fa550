package spectral

// SpectralFlux measures the frame-to-frame rate of spectral change.
// The half-wave rectified form responds only to energy increases, which is
// what makes it usable as an onset strength function.
type SpectralFlux struct {
	squared bool
}

// NewSpectralFlux creates a flux calculator over raw magnitudes
func NewSpectralFlux() *SpectralFlux {
	return &SpectralFlux{}
}

// NewSpectralFluxPower creates a flux calculator over the power spectrum.
// Squaring concentrates the measurement on the strong bins, so noise
// floor fluctuations in the quiet bins cannot swamp the onsets of tonal
// content when averaging across the spectrum.
func NewSpectralFluxPower() *SpectralFlux {
	return &SpectralFlux{squared: true}
}

// Compute calculates half-wave rectified spectral flux per frame,
// averaged across frequency bins. Output length equals the number of
// input frames; the first frame has zero flux by definition.
func (sf *SpectralFlux) Compute(spectrogram [][]float64) []float64 {
	if len(spectrogram) == 0 {
		return []float64{}
	}

	flux := make([]float64, len(spectrogram))

	prev := sf.compress(spectrogram[0])
	for t := 1; t < len(spectrogram); t++ {
		curr := sf.compress(spectrogram[t])

		sum := 0.0
		for i := range curr {
			diff := curr[i] - prev[i]
			if diff > 0 {
				sum += diff
			}
		}
		flux[t] = sum / float64(len(curr))

		prev = curr
	}

	return flux
}

func (sf *SpectralFlux) compress(spectrum []float64) []float64 {
	if !sf.squared {
		return spectrum
	}

	compressed := make([]float64, len(spectrum))
	for i, mag := range spectrum {
		compressed[i] = mag * mag
	}
	return compressed
}
