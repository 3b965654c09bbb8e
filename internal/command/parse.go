package command

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/hopfviz/internal/hopf"
)

// ParseAngle reads a single angle in radians. Blank input is zero. Anything
// unparseable becomes NaN alongside an error wrapping hopf.ErrInvalidInput.
func ParseAngle(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN(), fmt.Errorf("angle %q: %w", s, hopf.ErrInvalidInput)
	}
	return v, nil
}

// ParseAngles reads a comma-separated list of angles. Every field yields a
// value, so malformed fields come back as NaN.
func ParseAngles(s string) ([]float64, error) {
	fields := strings.Split(s, ",")
	values := make([]float64, len(fields))
	var errs []error
	for i, f := range fields {
		v, err := ParseAngle(f)
		values[i] = v
		errs = append(errs, err)
	}
	return values, errors.Join(errs...)
}

// ParseEuler reads up to three angles. Missing angles are zero and extra ones
// are ignored.
func ParseEuler(s string) ([3]float64, error) {
	var out [3]float64
	values, err := ParseAngles(s)
	copy(out[:], values)
	return out, err
}
