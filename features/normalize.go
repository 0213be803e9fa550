package features

import (
	"github.com/audiomood/moodscan/algorithms/common"
)

// Normalize clips and linearly rescales a raw measurement into [0, 1]
// given a calibrated (min, max) range. Returns a *DomainError when the
// range is degenerate (min >= max); see Calibration.Validate.
func Normalize(value, min, max float64) (float64, error) {
	if min >= max {
		return 0, &DomainError{Quantity: "value", Min: min, Max: max}
	}

	return common.Clamp((value-min)/(max-min), 0.0, 1.0), nil
}

// normalize rescales against a range that has already been validated.
// Scorers are only constructed over a validated calibration table, so a
// degenerate range here is unreachable.
func normalize(value, min, max float64) float64 {
	return common.Clamp((value-min)/(max-min), 0.0, 1.0)
}

// seriesMean returns the arithmetic mean of a series, treating a missing
// or empty series as zero
func seriesMean(series []float64) float64 {
	return common.Mean(series)
}
