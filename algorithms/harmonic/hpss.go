package harmonic

import (
	"fmt"
	"math"

	"github.com/audiomood/moodscan/algorithms/common"
	"github.com/audiomood/moodscan/algorithms/spectral"
	"github.com/audiomood/moodscan/algorithms/windowing"
)

// HPSS separates a signal into harmonic and percussive components using
// median filtering of the magnitude spectrogram: horizontal (time-wise)
// ridges are harmonic, vertical (frequency-wise) spikes are percussive.
// Soft Wiener masks keep the two components summing approximately to the
// original signal.
type HPSS struct {
	stft         *spectral.STFT
	windowSize   int
	hopSize      int
	kernelTime   int // Median filter length along the time axis
	kernelFreq   int // Median filter length along the frequency axis
	maskExponent float64
}

// NewHPSS creates a separator with the given STFT parameters
func NewHPSS(windowSize, hopSize int) *HPSS {
	return &HPSS{
		stft:         spectral.NewSTFT(),
		windowSize:   windowSize,
		hopSize:      hopSize,
		kernelTime:   31,
		kernelFreq:   31,
		maskExponent: 2.0,
	}
}

// Separate returns the harmonic and percussive components, each the same
// length as the input. Signals too short for a single STFT frame are
// treated as fully harmonic.
func (h *HPSS) Separate(signal []float64, sampleRate int) ([]float64, []float64, error) {
	if len(signal) == 0 {
		return []float64{}, []float64{}, nil
	}

	if len(signal) < h.windowSize {
		harmonic := make([]float64, len(signal))
		copy(harmonic, signal)
		percussive := make([]float64, len(signal))
		return harmonic, percussive, nil
	}

	window := windowing.NewHann(h.windowSize, false)
	stftResult, err := h.stft.ComputeWithWindow(signal, h.windowSize, h.hopSize, sampleRate, window)
	if err != nil {
		return nil, nil, fmt.Errorf("hpss stft: %w", err)
	}

	numFrames := stftResult.TimeFrames
	freqBins := stftResult.FreqBins

	// Harmonic enhancement: median filter each frequency bin across time
	harmonicMag := make([][]float64, numFrames)
	for t := 0; t < numFrames; t++ {
		harmonicMag[t] = make([]float64, freqBins)
	}

	column := make([]float64, numFrames)
	for f := 0; f < freqBins; f++ {
		for t := 0; t < numFrames; t++ {
			column[t] = stftResult.Magnitude[t][f]
		}
		filtered := medianFilter(column, h.kernelTime)
		for t := 0; t < numFrames; t++ {
			harmonicMag[t][f] = filtered[t]
		}
	}

	// Percussive enhancement: median filter each frame across frequency
	percussiveMag := make([][]float64, numFrames)
	for t := 0; t < numFrames; t++ {
		percussiveMag[t] = medianFilter(stftResult.Magnitude[t], h.kernelFreq)
	}

	// Soft masks and reconstruction
	harmonicSpec := make([][]complex128, numFrames)
	percussiveSpec := make([][]complex128, numFrames)

	for t := 0; t < numFrames; t++ {
		harmonicSpec[t] = make([]complex128, freqBins)
		percussiveSpec[t] = make([]complex128, freqBins)

		for f := 0; f < freqBins; f++ {
			hp := pow(harmonicMag[t][f], h.maskExponent)
			pp := pow(percussiveMag[t][f], h.maskExponent)
			total := hp + pp

			var maskH, maskP float64
			if total > 1e-12 {
				maskH = hp / total
				maskP = pp / total
			} else {
				// No evidence either way; split evenly
				maskH = 0.5
				maskP = 0.5
			}

			harmonicSpec[t][f] = stftResult.Complex[t][f] * complex(maskH, 0)
			percussiveSpec[t][f] = stftResult.Complex[t][f] * complex(maskP, 0)
		}
	}

	harmonic, err := h.stft.Inverse(harmonicSpec, h.windowSize, h.hopSize, len(signal), window)
	if err != nil {
		return nil, nil, fmt.Errorf("hpss harmonic reconstruction: %w", err)
	}

	percussive, err := h.stft.Inverse(percussiveSpec, h.windowSize, h.hopSize, len(signal), window)
	if err != nil {
		return nil, nil, fmt.Errorf("hpss percussive reconstruction: %w", err)
	}

	return harmonic, percussive, nil
}

// medianFilter applies a sliding median with the given kernel size,
// truncating the kernel at the edges
func medianFilter(data []float64, kernelSize int) []float64 {
	if len(data) == 0 || kernelSize <= 1 {
		result := make([]float64, len(data))
		copy(result, data)
		return result
	}

	halfKernel := kernelSize / 2
	result := make([]float64, len(data))

	for i := range data {
		lo := i - halfKernel
		hi := i + halfKernel + 1
		if lo < 0 {
			lo = 0
		}
		if hi > len(data) {
			hi = len(data)
		}
		result[i] = common.Median(data[lo:hi])
	}

	return result
}

func pow(base, exp float64) float64 {
	if exp == 2.0 {
		return base * base
	}
	return math.Pow(base, exp)
}
