package hopf

import (
	"fmt"
	"math"
)

// DefaultSteps is the number of samples taken along a fiber.
const DefaultSteps = 1000

// SpecialPoint is the base point whose fiber passes through the projection pole.
var SpecialPoint = Point3{X: -1, Y: 0, Z: 0}

// Fiber is the projected Hopf circle over a single base point.
type Fiber struct {
	Base   Point3
	Points []Point3
	Color  Color
}

// FiberFromPoint samples the fiber over p and colors it.
func FiberFromPoint(p Point3, steps int) (Fiber, error) {
	points, err := Sample(p, steps)
	if err != nil {
		return Fiber{}, err
	}
	return Fiber{Base: p, Points: points, Color: ColorOf(p)}, nil
}

// Sample returns steps points along the stereographic image of the Hopf fiber over p.
// p is expected to lie on the unit sphere; it is not normalized here.
func Sample(p Point3, steps int) ([]Point3, error) {
	ts, err := Linspace(0, 2*math.Pi, steps)
	if err != nil {
		return nil, err
	}

	lift := circleInS3(p)
	if IsEqual(SpecialPoint, p) {
		lift = func(float64) Point4 { return Point4{} }
	}

	points := make([]Point3, len(ts))
	for i, t := range ts {
		q, err := Stereographic(lift(t))
		if err != nil {
			return nil, fmt.Errorf("sample %d of fiber over %v: %w", i, p, err)
		}
		points[i] = q
	}
	return points, nil
}

// circleInS3 parametrizes the great circle of S³ lying over p.
func circleInS3(p Point3) func(t float64) Point4 {
	n := 1 / math.Sqrt(2*(1+p.X))
	return func(t float64) Point4 {
		sin, cos := math.Sincos(t)
		return Point4{
			X: -sin * (1 + p.X),
			Y: cos * (1 + p.X),
			Z: p.Y*cos - p.Z*sin,
			W: p.Z*cos + p.Y*sin,
		}.Scale(n)
	}
}
