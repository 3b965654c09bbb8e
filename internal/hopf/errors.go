package hopf

import (
	"errors"
	"fmt"
)

// Domain errors for fiber construction.
var (
	// ErrProjectionSingularity indicates a stereographic projection of the pole itself.
	ErrProjectionSingularity = errors.New("hopf: stereographic projection of the pole (w = 1)")

	// ErrTooFewSamples indicates a sample count that cannot describe a range.
	ErrTooFewSamples = errors.New("hopf: sample count must be at least 1")

	// ErrInvalidInput indicates a user supplied value that is not a number.
	ErrInvalidInput = errors.New("hopf: invalid numeric input")
)

// ProjectionError wraps a projection failure with the offending point.
type ProjectionError struct {
	Point   Point4
	Wrapped error
}

func (e *ProjectionError) Error() string {
	return fmt.Sprintf("%v at (%g, %g, %g, %g)", e.Wrapped, e.Point.X, e.Point.Y, e.Point.Z, e.Point.W)
}

func (e *ProjectionError) Unwrap() error {
	return e.Wrapped
}
