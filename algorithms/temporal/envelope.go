package temporal

import (
	"math"
)

// Envelope provides amplitude envelope extraction
type Envelope struct {
	// No state needed - stateless calculation
}

// NewEnvelope creates a new envelope extractor
func NewEnvelope() *Envelope {
	return &Envelope{}
}

// ComputeRMS computes the RMS envelope with given frame and hop sizes.
// The final partial frame is averaged over the samples it actually covers.
func (e *Envelope) ComputeRMS(signal []float64, frameSize, hopSize int) []float64 {
	if len(signal) == 0 || frameSize <= 0 || hopSize <= 0 {
		return []float64{}
	}

	numFrames := (len(signal)-frameSize)/hopSize + 1
	if numFrames <= 0 {
		numFrames = 1
	}

	envelope := make([]float64, numFrames)

	for i := 0; i < numFrames; i++ {
		startIdx := i * hopSize
		endIdx := startIdx + frameSize
		if endIdx > len(signal) {
			endIdx = len(signal)
		}

		sumSquares := 0.0
		for j := startIdx; j < endIdx; j++ {
			sumSquares += signal[j] * signal[j]
		}
		envelope[i] = math.Sqrt(sumSquares / float64(endIdx-startIdx))
	}

	return envelope
}

// ComputePeak computes the peak envelope (maximum absolute value per frame)
func (e *Envelope) ComputePeak(signal []float64, frameSize, hopSize int) []float64 {
	if len(signal) == 0 || frameSize <= 0 || hopSize <= 0 {
		return []float64{}
	}

	numFrames := (len(signal)-frameSize)/hopSize + 1
	if numFrames <= 0 {
		numFrames = 1
	}

	envelope := make([]float64, numFrames)

	for i := 0; i < numFrames; i++ {
		startIdx := i * hopSize
		endIdx := startIdx + frameSize
		if endIdx > len(signal) {
			endIdx = len(signal)
		}

		peak := 0.0
		for j := startIdx; j < endIdx; j++ {
			abs := math.Abs(signal[j])
			if abs > peak {
				peak = abs
			}
		}
		envelope[i] = peak
	}

	return envelope
}
