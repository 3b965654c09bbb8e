package hopf

import (
	"fmt"
	"math"
)

// Epsilon is the per-component tolerance used by IsEqual.
const Epsilon = 1e-12

// Point3 is a coordinate in R³. After normalization it is a point on S².
type Point3 struct {
	X, Y, Z float64
}

// Point4 is a coordinate on the unit 3-sphere.
type Point4 struct {
	X, Y, Z, W float64
}

// Point3 methods.
func (p Point3) Add(o Point3) Point3       { return Point3{p.X + o.X, p.Y + o.Y, p.Z + o.Z} }
func (p Point3) Sub(o Point3) Point3       { return Point3{p.X - o.X, p.Y - o.Y, p.Z - o.Z} }
func (p Point3) Scale(s float64) Point3    { return Point3{p.X * s, p.Y * s, p.Z * s} }
func (p Point3) Dot(o Point3) float64      { return p.X*o.X + p.Y*o.Y + p.Z*o.Z }
func (p Point3) Length() float64           { return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z) }
func (p Point3) Distance(o Point3) float64 { return p.Sub(o).Length() }
func (p Point3) Cross(o Point3) Point3 {
	return Point3{p.Y*o.Z - p.Z*o.Y, p.Z*o.X - p.X*o.Z, p.X*o.Y - p.Y*o.X}
}

// Normalize returns the unit vector in the direction of p. The zero vector stays zero.
func (p Point3) Normalize() Point3 {
	if l := p.Length(); l != 0 {
		return p.Scale(1 / l)
	}
	return Point3{}
}

// IsFinite reports whether no component is NaN or infinite.
func (p Point3) IsFinite() bool {
	for _, v := range [3]float64{p.X, p.Y, p.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (p Point3) String() string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", p.X, p.Y, p.Z)
}

// Scale multiplies every component of p by s.
func (p Point4) Scale(s float64) Point4 { return Point4{p.X * s, p.Y * s, p.Z * s, p.W * s} }

// Length returns the Euclidean norm of p.
func (p Point4) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z + p.W*p.W)
}

// IsEqual reports whether a and b agree within Epsilon on every component.
func IsEqual(a, b Point3) bool {
	return IsEqualEps(a, b, Epsilon)
}

// IsEqualEps reports whether |a-b| is strictly below eps on each of x, y and z.
func IsEqualEps(a, b Point3, eps float64) bool {
	return math.Abs(a.X-b.X) < eps &&
		math.Abs(a.Y-b.Y) < eps &&
		math.Abs(a.Z-b.Z) < eps
}

// Linspace returns n evenly spaced values from start to stop inclusive.
// A single sample is start itself.
func Linspace(start, stop float64, n int) ([]float64, error) {
	if n < 1 {
		return nil, fmt.Errorf("linspace with n=%d: %w", n, ErrTooFewSamples)
	}
	if n == 1 {
		return []float64{start}, nil
	}
	step := (stop - start) / float64(n-1)
	values := make([]float64, n)
	for i := range values {
		values[i] = start + step*float64(i)
	}
	return values, nil
}

// Stereographic projects p from the pole (0,0,0,1) onto the hyperplane w = 0.
// NaN components propagate; the pole itself is reported as a ProjectionError.
func Stereographic(p Point4) (Point3, error) {
	if p.W == 1 {
		return Point3{}, &ProjectionError{Point: p, Wrapped: ErrProjectionSingularity}
	}
	n := 1 / (1 - p.W)
	return Point3{p.X, p.Y, p.Z}.Scale(n), nil
}

// InverseStereographic lifts q back onto the unit 3-sphere.
func InverseStereographic(q Point3) Point4 {
	s := q.Dot(q)
	d := 1 / (s + 1)
	return Point4{2 * q.X * d, 2 * q.Y * d, 2 * q.Z * d, (s - 1) * d}
}
