package hopf

import (
	"math"
	"testing"
)

func TestCircumcircle(t *testing.T) {
	center, r, ok := Circumcircle(Point3{1, 0, 0}, Point3{0, 1, 0}, Point3{-1, 0, 0})
	if !ok {
		t.Fatal("expected a circle")
	}
	if !IsEqualEps(center, Point3{}, 1e-12) || math.Abs(r-1) > 1e-12 {
		t.Errorf("got center %v radius %v", center, r)
	}

	if _, _, ok := Circumcircle(Point3{}, Point3{1, 1, 1}, Point3{2, 2, 2}); ok {
		t.Error("collinear points have no circle")
	}
}

func TestFiberRadius(t *testing.T) {
	tests := []struct {
		name   string
		p      Point3
		radius float64
	}{
		{"equator", Point3{1, 0, 0}, 1},
		{"front", Point3{0, 0, 1}, math.Sqrt2},
		{"top", Point3{0, 1, 0}, math.Sqrt2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points, err := Sample(tt.p, DefaultSteps)
			if err != nil {
				t.Fatalf("sample failed: %v", err)
			}
			r, ok := FiberRadius(points)
			if !ok {
				t.Fatal("expected a radius")
			}
			if math.Abs(r-tt.radius) > 1e-9 {
				t.Errorf("radius = %v, want %v", r, tt.radius)
			}
		})
	}
}

func TestFiberRadius_Degenerate(t *testing.T) {
	points, err := Sample(SpecialPoint, 10)
	if err != nil {
		t.Fatalf("sample failed: %v", err)
	}
	if _, ok := FiberRadius(points); ok {
		t.Error("degenerate fiber should have no radius")
	}
	if _, ok := FiberRadius(points[:2]); ok {
		t.Error("two points are not enough")
	}
}
