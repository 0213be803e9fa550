package features

import (
	"fmt"
	"sync"

	"github.com/audiomood/moodscan/logging"
)

// Extractor orchestrates one analysis call: decode, compute the raw
// measurements through the Analyzer, run the four scorers, and assemble
// the result record. The pipeline is deterministic and holds no state
// across calls.
type Extractor struct {
	analyzer Analyzer
	logger   logging.Logger

	energy       *EnergyScorer
	danceability *DanceabilityScorer
	acousticness *AcousticnessScorer
	valence      *ValenceScorer
}

// NewExtractor creates an extractor over the given analyzer and
// calibration. A nil calibration uses DefaultCalibration. Returns a
// *DomainError when the calibration table contains a degenerate range.
func NewExtractor(analyzer Analyzer, cal *Calibration) (*Extractor, error) {
	if cal == nil {
		cal = DefaultCalibration()
	}

	if err := cal.Validate(); err != nil {
		return nil, err
	}

	return &Extractor{
		analyzer: analyzer,
		logger: logging.WithFields(logging.Fields{
			"component": "feature_extractor",
		}),
		energy:       NewEnergyScorer(cal),
		danceability: NewDanceabilityScorer(cal),
		acousticness: NewAcousticnessScorer(cal),
		valence:      NewValenceScorer(cal),
	}, nil
}

// ExtractFeatures decodes the file at path and computes the five
// perceptual descriptors. Decode failures surface unchanged as
// *transcode.DecodeError.
func (e *Extractor) ExtractFeatures(path string) (*AnalysisResult, error) {
	logger := e.logger.WithFields(logging.Fields{"path": path})
	logger.Debug("Starting feature extraction")

	waveform, err := e.analyzer.Decode(path)
	if err != nil {
		return nil, err
	}

	// Analyzers that cache intermediate spectrograms release them once
	// this analysis is assembled, so a long-lived extractor does not
	// hold the last track's spectrogram between calls.
	if resetter, ok := e.analyzer.(interface{ Reset() }); ok {
		defer resetter.Reset()
	}

	// Raw measurements over the shared waveform
	onsetEnvelope := e.analyzer.OnsetStrength(waveform)
	tempo, beatFrames := e.analyzer.BeatTrack(waveform, onsetEnvelope)
	rms := e.analyzer.RMS(waveform)
	centroid := e.analyzer.SpectralCentroid(waveform)
	flatness := e.analyzer.SpectralFlatness(waveform)
	rolloff := e.analyzer.SpectralRolloff(waveform)

	harmonicPart, percussivePart, err := e.analyzer.HarmonicPercussiveSplit(waveform)
	if err != nil {
		return nil, fmt.Errorf("harmonic/percussive separation: %w", err)
	}

	// Chroma is computed from the harmonic component so percussive
	// transients don't smear the pitch class profile
	chromaMatrix := e.analyzer.ChromaCQT(harmonicPart)
	harmonicRMS := e.analyzer.RMS(harmonicPart)
	percussiveRMS := e.analyzer.RMS(percussivePart)

	// The four scorers are pure functions over disjoint inputs, so they
	// can run concurrently; sequential execution would give identical
	// results.
	result := &AnalysisResult{Tempo: tempo}

	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()
		result.Energy = e.energy.Score(rms, centroid, onsetEnvelope)
	}()
	go func() {
		defer wg.Done()
		result.Danceability = e.danceability.Score(onsetEnvelope, beatFrames, tempo)
	}()
	go func() {
		defer wg.Done()
		result.Acousticness = e.acousticness.Score(flatness, rolloff)
	}()
	go func() {
		defer wg.Done()
		result.Valence = e.valence.Score(chromaMatrix, harmonicRMS, percussiveRMS)
	}()

	wg.Wait()

	logger.Debug("Feature extraction complete", logging.Fields{
		"energy":       result.Energy,
		"danceability": result.Danceability,
		"tempo":        result.Tempo,
		"acousticness": result.Acousticness,
		"valence":      result.Valence,
	})

	return result, nil
}
