package chroma

import (
	"math"

	"github.com/audiomood/moodscan/algorithms/windowing"
)

// ChromaCQT computes a 12 x T chromagram from a constant-Q projection.
// Logarithmic frequency spacing matches musical note spacing, so folding
// the constant-Q bins modulo 12 gives per-pitch-class energy directly.
//
// Frequency spacing: f_k = f_min * 2^(k/binsPerOctave).
type ChromaCQT struct {
	sampleRate    int
	minFreq       float64 // Lowest analyzed pitch (C2 by default)
	numOctaves    int
	binsPerOctave int
	qFactor       float64
	frameSize     int
	hopSize       int

	// Pre-computed windowed complex exponential per CQT bin
	kernelsReal [][]float64
	kernelsImag [][]float64
	freqBins    []float64
	prepared    bool
}

// ChromaBins is the number of pitch classes in a chromagram row dimension
const ChromaBins = 12

// NewChromaCQT creates a CQT chromagram calculator
func NewChromaCQT(sampleRate int, minFreq float64, numOctaves, binsPerOctave int, qFactor float64, frameSize, hopSize int) *ChromaCQT {
	return &ChromaCQT{
		sampleRate:    sampleRate,
		minFreq:       minFreq,
		numOctaves:    numOctaves,
		binsPerOctave: binsPerOctave,
		qFactor:       qFactor,
		frameSize:     frameSize,
		hopSize:       hopSize,
	}
}

// NewChromaCQTDefault creates a calculator with standard musical settings:
// C2 through C7, semitone resolution
func NewChromaCQTDefault(sampleRate int) *ChromaCQT {
	return NewChromaCQT(
		sampleRate,
		65.41, // C2
		5,     // through C7
		12,    // semitone resolution
		25.0,  // quality factor
		4096,
		512,
	)
}

// Compute returns the chromagram as a ChromaBins x T matrix of
// non-negative energies. Row i holds pitch class i, with row 0 = C.
func (cq *ChromaCQT) Compute(signal []float64) [][]float64 {
	chroma := make([][]float64, ChromaBins)

	if len(signal) == 0 {
		for i := range chroma {
			chroma[i] = []float64{}
		}
		return chroma
	}

	if !cq.prepared {
		cq.prepareKernels()
	}

	numFrames := (len(signal)-cq.frameSize)/cq.hopSize + 1
	if numFrames <= 0 {
		numFrames = 1
	}

	for i := range chroma {
		chroma[i] = make([]float64, numFrames)
	}

	frame := make([]float64, cq.frameSize)
	for t := 0; t < numFrames; t++ {
		startIdx := t * cq.hopSize

		// Zero-pad the final partial frame
		for i := 0; i < cq.frameSize; i++ {
			if startIdx+i < len(signal) {
				frame[i] = signal[startIdx+i]
			} else {
				frame[i] = 0
			}
		}

		for k := range cq.freqBins {
			re := 0.0
			im := 0.0
			kernelR := cq.kernelsReal[k]
			kernelI := cq.kernelsImag[k]
			for n := range kernelR {
				re += frame[n] * kernelR[n]
				im += frame[n] * kernelI[n]
			}

			pitchClass := k % ChromaBins
			chroma[pitchClass][t] += math.Sqrt(re*re + im*im)
		}
	}

	return chroma
}

// prepareKernels builds one Hann-windowed complex exponential per CQT bin.
// Kernel length follows Q = f/bandwidth, capped at the frame size for the
// lowest pitches.
func (cq *ChromaCQT) prepareKernels() {
	totalBins := cq.numOctaves * cq.binsPerOctave

	cq.freqBins = make([]float64, totalBins)
	cq.kernelsReal = make([][]float64, totalBins)
	cq.kernelsImag = make([][]float64, totalBins)

	for k := 0; k < totalBins; k++ {
		freq := cq.minFreq * math.Pow(2.0, float64(k)/float64(cq.binsPerOctave))
		cq.freqBins[k] = freq

		kernelLength := int(cq.qFactor * float64(cq.sampleRate) / freq)
		if kernelLength > cq.frameSize {
			kernelLength = cq.frameSize
		}
		if kernelLength < 3 {
			kernelLength = 3
		}

		window := windowing.NewHann(kernelLength, true).GetCoefficients()

		kernelR := make([]float64, kernelLength)
		kernelI := make([]float64, kernelLength)
		norm := 1.0 / float64(kernelLength)

		for n := 0; n < kernelLength; n++ {
			phase := 2.0 * math.Pi * freq * float64(n) / float64(cq.sampleRate)
			kernelR[n] = window[n] * math.Cos(phase) * norm
			kernelI[n] = -window[n] * math.Sin(phase) * norm
		}

		cq.kernelsReal[k] = kernelR
		cq.kernelsImag[k] = kernelI
	}

	cq.prepared = true
}
