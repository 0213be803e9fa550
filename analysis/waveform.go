package analysis

import (
	"time"
)

// Waveform is an immutable mono PCM signal with its sample rate.
// Produced once per analysis by decoding; never mutated afterwards.
type Waveform struct {
	Samples    []float64
	SampleRate int
}

// Duration returns the waveform length as a time.Duration
func (w *Waveform) Duration() time.Duration {
	if w.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(len(w.Samples)) / float64(w.SampleRate) * float64(time.Second))
}
