package analysis

import (
	"sync"

	"github.com/audiomood/moodscan/algorithms/chroma"
	"github.com/audiomood/moodscan/algorithms/harmonic"
	"github.com/audiomood/moodscan/algorithms/spectral"
	"github.com/audiomood/moodscan/algorithms/temporal"
	"github.com/audiomood/moodscan/algorithms/windowing"
	"github.com/audiomood/moodscan/logging"
	"github.com/audiomood/moodscan/transcode"
)

// Config holds the short-time analysis parameters shared by every
// measurement
type Config struct {
	WindowSize       int     `json:"window_size"`
	HopSize          int     `json:"hop_size"`
	RolloffThreshold float64 `json:"rolloff_threshold"`
	TargetSampleRate int     `json:"target_sample_rate"`
}

// DefaultConfig returns the standard analysis parameters
func DefaultConfig() *Config {
	return &Config{
		WindowSize:       2048,
		HopSize:          512,
		RolloffThreshold: 0.85,
		TargetSampleRate: 22050,
	}
}

// Pipeline provides the low-level signal measurements the feature scorers
// consume: decoding, spectral series, onset/beat analysis, HPSS, and
// chroma. All measurements are pure functions of the waveform; the only
// internal state is a cache of the most recent magnitude spectrogram so
// the spectral series share one STFT per analysis call.
type Pipeline struct {
	config  *Config
	decoder *transcode.Decoder
	logger  logging.Logger

	stft          *spectral.STFT
	flatness      *spectral.SpectralFlatness
	envelope      *temporal.Envelope
	onsetStrength *temporal.OnsetStrength
	beatTracker   *temporal.BeatTracker
	hpss          *harmonic.HPSS

	mu       sync.Mutex
	lastWave *Waveform
	lastMag  [][]float64
}

// NewPipeline creates an analysis pipeline
func NewPipeline(config *Config) *Pipeline {
	if config == nil {
		config = DefaultConfig()
	}

	decoderConfig := transcode.DefaultDecoderConfig()
	decoderConfig.TargetSampleRate = config.TargetSampleRate

	return &Pipeline{
		config:        config,
		decoder:       transcode.NewDecoder(decoderConfig),
		logger:        logging.WithFields(logging.Fields{"component": "analysis_pipeline"}),
		stft:          spectral.NewSTFT(),
		flatness:      spectral.NewSpectralFlatness(),
		envelope:      temporal.NewEnvelope(),
		onsetStrength: temporal.NewOnsetStrength(config.WindowSize, config.HopSize),
		beatTracker:   temporal.NewBeatTracker(config.HopSize),
		hpss:          harmonic.NewHPSS(config.WindowSize, config.HopSize),
	}
}

// Decode reads and decodes an audio file into a mono waveform.
// Failures are *transcode.DecodeError.
func (p *Pipeline) Decode(path string) (*Waveform, error) {
	audio, err := p.decoder.DecodeFile(path)
	if err != nil {
		return nil, err
	}

	return &Waveform{
		Samples:    audio.PCM,
		SampleRate: audio.SampleRate,
	}, nil
}

// OnsetStrength computes the per-frame onset strength envelope
func (p *Pipeline) OnsetStrength(w *Waveform) []float64 {
	mag := p.magnitudes(w)
	return p.onsetStrength.ComputeFromSpectrogram(mag)
}

// BeatTrack estimates tempo in BPM and beat frame indices from the onset
// envelope. Fewer than 2 beats is a valid result for arrhythmic content.
func (p *Pipeline) BeatTrack(w *Waveform, onsetEnvelope []float64) (float64, []int) {
	return p.beatTracker.Track(onsetEnvelope, w.SampleRate)
}

// RMS computes the per-frame RMS loudness series
func (p *Pipeline) RMS(w *Waveform) []float64 {
	return p.envelope.ComputeRMS(w.Samples, p.config.WindowSize, p.config.HopSize)
}

// SpectralCentroid computes the per-frame spectral centroid series in Hz
func (p *Pipeline) SpectralCentroid(w *Waveform) []float64 {
	mag := p.magnitudes(w)
	return spectral.NewSpectralCentroid(w.SampleRate).ComputeFrames(mag)
}

// SpectralFlatness computes the per-frame spectral flatness series
func (p *Pipeline) SpectralFlatness(w *Waveform) []float64 {
	mag := p.magnitudes(w)
	return p.flatness.ComputeFrames(mag)
}

// SpectralRolloff computes the per-frame spectral rolloff series in Hz
func (p *Pipeline) SpectralRolloff(w *Waveform) []float64 {
	mag := p.magnitudes(w)
	return spectral.NewSpectralRolloff(w.SampleRate).ComputeFrames(mag, p.config.RolloffThreshold)
}

// HarmonicPercussiveSplit separates the waveform into harmonic and
// percussive components of the same length
func (p *Pipeline) HarmonicPercussiveSplit(w *Waveform) (*Waveform, *Waveform, error) {
	harmonicPart, percussivePart, err := p.hpss.Separate(w.Samples, w.SampleRate)
	if err != nil {
		return nil, nil, err
	}

	return &Waveform{Samples: harmonicPart, SampleRate: w.SampleRate},
		&Waveform{Samples: percussivePart, SampleRate: w.SampleRate},
		nil
}

// ChromaCQT computes the 12 x T pitch class energy matrix
func (p *Pipeline) ChromaCQT(w *Waveform) [][]float64 {
	return chroma.NewChromaCQTDefault(w.SampleRate).Compute(w.Samples)
}

// Reset drops the cached magnitude spectrogram. Callers that keep one
// pipeline alive across many analyses call this after each one so the
// cache does not pin a full spectrogram between requests.
func (p *Pipeline) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastWave = nil
	p.lastMag = nil
}

// magnitudes returns the magnitude spectrogram for a waveform, reusing
// the cached result when the same waveform is measured repeatedly within
// one analysis call
func (p *Pipeline) magnitudes(w *Waveform) [][]float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.lastWave == w && p.lastMag != nil {
		return p.lastMag
	}

	if len(w.Samples) < p.config.WindowSize {
		return [][]float64{}
	}

	window := windowing.NewHann(p.config.WindowSize, false)
	result, err := p.stft.ComputeWithWindow(w.Samples, p.config.WindowSize, p.config.HopSize, w.SampleRate, window)
	if err != nil {
		p.logger.Error(err, "STFT failed", logging.Fields{"samples": len(w.Samples)})
		return [][]float64{}
	}

	p.lastWave = w
	p.lastMag = result.Magnitude
	return result.Magnitude
}
