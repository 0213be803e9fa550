package features

// Calibration holds every empirically tuned normalization range and
// weighting coefficient used by the scorers. The values are hand-tuned
// against typical popular-music material; they are design constants, not
// quantities derived at runtime. Keeping them in one table lets them be
// recalibrated without touching scorer logic.
type Calibration struct {
	// Energy: loudness, brightness, onset activity
	RMSMin           float64 `json:"rms_min"`
	RMSMax           float64 `json:"rms_max"`
	CentroidMin      float64 `json:"centroid_min"` // Hz
	CentroidMax      float64 `json:"centroid_max"` // Hz
	OnsetMeanMin     float64 `json:"onset_mean_min"`
	OnsetMeanMax     float64 `json:"onset_mean_max"`
	LoudnessWeight   float64 `json:"loudness_weight"`
	BrightnessWeight float64 `json:"brightness_weight"`
	ActivityWeight   float64 `json:"activity_weight"`

	// Danceability: beat strength, pulse clarity, tempo suitability
	BeatStrengthMin       float64 `json:"beat_strength_min"`
	BeatStrengthMax       float64 `json:"beat_strength_max"`
	IntervalVarianceScale float64 `json:"interval_variance_scale"`
	TempoExtremeLow       float64 `json:"tempo_extreme_low"`  // BPM below which dancing is implausible
	TempoExtremeHigh      float64 `json:"tempo_extreme_high"` // BPM above which dancing is implausible
	TempoIdealLow         float64 `json:"tempo_ideal_low"`    // Start of the typical danceable range
	TempoIdealHigh        float64 `json:"tempo_ideal_high"`   // End of the typical danceable range
	TempoFactorExtreme    float64 `json:"tempo_factor_extreme"`
	TempoFactorIdeal      float64 `json:"tempo_factor_ideal"`
	TempoFactorModerate   float64 `json:"tempo_factor_moderate"`
	BeatStrengthWeight    float64 `json:"beat_strength_weight"`
	PulseClarityWeight    float64 `json:"pulse_clarity_weight"`
	TempoWeight           float64 `json:"tempo_weight"`

	// Acousticness: tonality and high-frequency content
	FlatnessMin    float64 `json:"flatness_min"`
	FlatnessMax    float64 `json:"flatness_max"`
	RolloffMin     float64 `json:"rolloff_min"` // Hz
	RolloffMax     float64 `json:"rolloff_max"` // Hz
	FlatnessWeight float64 `json:"flatness_weight"`
	RolloffWeight  float64 `json:"rolloff_weight"`

	// Valence: mode heuristic and harmonic/percussive balance
	ModeMajorScore      float64 `json:"mode_major_score"`
	ModeMinorScore      float64 `json:"mode_minor_score"`
	ModeWeight          float64 `json:"mode_weight"`
	HarmonicRatioWeight float64 `json:"harmonic_ratio_weight"`
}

// DefaultCalibration returns the authoritative calibration set
func DefaultCalibration() *Calibration {
	return &Calibration{
		RMSMin:           0.0,
		RMSMax:           0.3,
		CentroidMin:      500.0,
		CentroidMax:      4000.0,
		OnsetMeanMin:     0.0,
		OnsetMeanMax:     1.5,
		LoudnessWeight:   0.5,
		BrightnessWeight: 0.25,
		ActivityWeight:   0.25,

		BeatStrengthMin:       0.0,
		BeatStrengthMax:       3.0,
		IntervalVarianceScale: 50.0,
		TempoExtremeLow:       50.0,
		TempoExtremeHigh:      200.0,
		TempoIdealLow:         90.0,
		TempoIdealHigh:        140.0,
		TempoFactorExtreme:    0.5,
		TempoFactorIdeal:      1.0,
		TempoFactorModerate:   0.8,
		BeatStrengthWeight:    0.4,
		PulseClarityWeight:    0.4,
		TempoWeight:           0.2,

		FlatnessMin:    0.0,
		FlatnessMax:    0.1,
		RolloffMin:     1000.0,
		RolloffMax:     7000.0,
		FlatnessWeight: 0.6,
		RolloffWeight:  0.4,

		ModeMajorScore:      0.75,
		ModeMinorScore:      0.35,
		ModeWeight:          0.7,
		HarmonicRatioWeight: 0.3,
	}
}

// Validate checks every normalization range for degeneracy. A failure
// here means the calibration table itself is broken.
func (c *Calibration) Validate() error {
	ranges := []struct {
		name     string
		min, max float64
	}{
		{"rms", c.RMSMin, c.RMSMax},
		{"centroid", c.CentroidMin, c.CentroidMax},
		{"onset_mean", c.OnsetMeanMin, c.OnsetMeanMax},
		{"beat_strength", c.BeatStrengthMin, c.BeatStrengthMax},
		{"flatness", c.FlatnessMin, c.FlatnessMax},
		{"rolloff", c.RolloffMin, c.RolloffMax},
	}

	for _, r := range ranges {
		if r.min >= r.max {
			return &DomainError{Quantity: r.name, Min: r.min, Max: r.max}
		}
	}

	return nil
}
