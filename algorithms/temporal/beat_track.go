package temporal

import (
	"math"
)

// BeatTracker estimates tempo and beat positions from an onset strength
// envelope. Tempo comes from the autocorrelation of the envelope weighted
// by a log-normal prior centered on a preferred BPM; beats come from the
// best-phase beat grid snapped to local onset maxima.
type BeatTracker struct {
	hopSize   int
	minBPM    float64
	maxBPM    float64
	priorBPM  float64 // Center of the log-normal tempo prior
	priorStd  float64 // Width of the prior, in octaves
	snapRatio float64 // Fraction of the beat period to search when snapping
}

// NewBeatTracker creates a beat tracker for envelopes produced at the
// given hop size
func NewBeatTracker(hopSize int) *BeatTracker {
	return &BeatTracker{
		hopSize:   hopSize,
		minBPM:    30.0,
		maxBPM:    300.0,
		priorBPM:  120.0,
		priorStd:  1.0,
		snapRatio: 0.2,
	}
}

// Track estimates tempo in BPM and the frame indices of individual beats.
// Fewer than 2 detectable beats is a valid outcome for silence or
// arrhythmic content; callers must handle a short or empty index list.
func (bt *BeatTracker) Track(onsetEnvelope []float64, sampleRate int) (float64, []int) {
	framesPerSecond := float64(sampleRate) / float64(bt.hopSize)

	period := bt.estimatePeriod(onsetEnvelope, framesPerSecond)
	if period <= 0 {
		return 0.0, []int{}
	}

	tempo := 60.0 * framesPerSecond / period
	beats := bt.pickBeats(onsetEnvelope, period)

	return tempo, beats
}

// EstimateTempo returns only the tempo estimate in BPM
func (bt *BeatTracker) EstimateTempo(onsetEnvelope []float64, sampleRate int) float64 {
	framesPerSecond := float64(sampleRate) / float64(bt.hopSize)

	period := bt.estimatePeriod(onsetEnvelope, framesPerSecond)
	if period <= 0 {
		return 0.0
	}

	return 60.0 * framesPerSecond / period
}

// estimatePeriod finds the beat period in frames, or 0 when the envelope
// carries no usable periodicity
func (bt *BeatTracker) estimatePeriod(envelope []float64, framesPerSecond float64) float64 {
	minLag := int(60.0 * framesPerSecond / bt.maxBPM)
	maxLag := int(math.Ceil(60.0 * framesPerSecond / bt.minBPM))

	if minLag < 1 {
		minLag = 1
	}
	if maxLag >= len(envelope) {
		maxLag = len(envelope) - 1
	}
	if maxLag <= minLag {
		return 0.0
	}

	// A flat envelope has no rhythm to find
	if !hasVariation(envelope) {
		return 0.0
	}

	// Remove the mean so the autocorrelation reflects periodicity rather
	// than the envelope's DC offset
	mean := 0.0
	for _, val := range envelope {
		mean += val
	}
	mean /= float64(len(envelope))

	centered := make([]float64, len(envelope))
	for i, val := range envelope {
		centered[i] = val - mean
	}

	autocorr := autocorrelate(centered, maxLag+1)

	// Weight by the tempo prior and find the best lag
	bestLag := -1
	bestScore := 0.0
	scores := make([]float64, maxLag+1)

	for lag := minLag; lag <= maxLag; lag++ {
		bpm := 60.0 * framesPerSecond / float64(lag)
		octaves := math.Log2(bpm / bt.priorBPM)
		weight := math.Exp(-0.5 * (octaves * octaves) / (bt.priorStd * bt.priorStd))

		scores[lag] = autocorr[lag] * weight
		if scores[lag] > bestScore {
			bestScore = scores[lag]
			bestLag = lag
		}
	}

	if bestLag < 0 || bestScore <= 0 {
		return 0.0
	}

	// Parabolic interpolation around the peak for sub-frame period accuracy
	period := float64(bestLag)
	if bestLag > minLag && bestLag < maxLag {
		left := scores[bestLag-1]
		center := scores[bestLag]
		right := scores[bestLag+1]
		denom := left - 2*center + right
		if math.Abs(denom) > 1e-12 {
			period += 0.5 * (left - right) / denom
		}
	}

	return period
}

// pickBeats lays a beat grid at the estimated period, chooses the phase
// that best aligns with onset energy, then snaps each grid point to the
// nearest local onset maximum
func (bt *BeatTracker) pickBeats(envelope []float64, period float64) []int {
	if len(envelope) == 0 || period <= 0 {
		return []int{}
	}

	intPeriod := int(math.Round(period))
	if intPeriod < 1 {
		intPeriod = 1
	}

	// Best phase: the offset whose grid collects the most onset energy
	bestPhase := 0
	bestEnergy := -1.0
	for phase := 0; phase < intPeriod; phase++ {
		energy := 0.0
		for pos := float64(phase); pos < float64(len(envelope)); pos += period {
			energy += envelope[int(pos)]
		}
		if energy > bestEnergy {
			bestEnergy = energy
			bestPhase = phase
		}
	}

	// Snap grid points to local maxima within a fraction of the period
	radius := int(period * bt.snapRatio)
	var beats []int
	last := -1

	for pos := float64(bestPhase); pos < float64(len(envelope)); pos += period {
		idx := int(pos)

		lo := idx - radius
		hi := idx + radius
		if lo < 0 {
			lo = 0
		}
		if hi >= len(envelope) {
			hi = len(envelope) - 1
		}

		snapped := idx
		for j := lo; j <= hi; j++ {
			if envelope[j] > envelope[snapped] {
				snapped = j
			}
		}

		if snapped > last {
			beats = append(beats, snapped)
			last = snapped
		}
	}

	if beats == nil {
		return []int{}
	}
	return beats
}

// autocorrelate computes the normalized autocorrelation up to maxLag lags
func autocorrelate(signal []float64, maxLag int) []float64 {
	if maxLag > len(signal) {
		maxLag = len(signal)
	}

	autocorr := make([]float64, maxLag)

	for lag := 0; lag < maxLag; lag++ {
		sum := 0.0
		count := 0

		for i := 0; i < len(signal)-lag; i++ {
			sum += signal[i] * signal[i+lag]
			count++
		}

		if count > 0 {
			autocorr[lag] = sum / float64(count)
		}
	}

	if len(autocorr) > 0 && autocorr[0] > 0 {
		for i := range autocorr {
			autocorr[i] /= autocorr[0]
		}
	}

	return autocorr
}

func hasVariation(signal []float64) bool {
	if len(signal) < 2 {
		return false
	}

	first := signal[0]
	for _, val := range signal[1:] {
		if math.Abs(val-first) > 1e-12 {
			return true
		}
	}
	return false
}
