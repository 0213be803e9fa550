package features

import (
	"fmt"
)

// DomainError indicates a degenerate calibration range (min >= max).
// This is a programming error in the calibration table, not a runtime
// condition: correctly chosen constants never trigger it.
type DomainError struct {
	Quantity string
	Min      float64
	Max      float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("degenerate calibration range for %s: [%g, %g]", e.Quantity, e.Min, e.Max)
}
