package hopf

import (
	"math"
	"testing"
)

func TestSample_Length(t *testing.T) {
	p := Point3{0.3, 0.4, 0.5}.Normalize()

	for _, steps := range []int{1, 2, 50, DefaultSteps} {
		points, err := Sample(p, steps)
		if err != nil {
			t.Fatalf("steps=%d: sample failed: %v", steps, err)
		}
		if len(points) != steps {
			t.Errorf("expected %d points, got %d", steps, len(points))
		}
		for i, q := range points {
			if !q.IsFinite() {
				t.Fatalf("steps=%d: point %d not finite: %v", steps, i, q)
			}
		}
	}
}

func TestSample_FrontPoint(t *testing.T) {
	points, err := Sample(Point3{0, 0, 1}, DefaultSteps)
	if err != nil {
		t.Fatalf("sample failed: %v", err)
	}

	expected := Point3{0, 1 + math.Sqrt2, 0}
	if !IsEqualEps(points[0], expected, 1e-9) {
		t.Errorf("expected first sample %v, got %v", expected, points[0])
	}
}

func TestSample_EquatorIsUnitCircle(t *testing.T) {
	points, err := Sample(Point3{1, 0, 0}, 64)
	if err != nil {
		t.Fatalf("sample failed: %v", err)
	}
	for i, q := range points {
		if math.Abs(q.Length()-1) > 1e-12 || math.Abs(q.Z) > 1e-12 {
			t.Errorf("point %d not on unit circle in xy-plane: %v", i, q)
		}
	}
}

func TestSample_SpecialPoint(t *testing.T) {
	points, err := Sample(Point3{-1, 0, 0}, DefaultSteps)
	if err != nil {
		t.Fatalf("sample failed: %v", err)
	}
	if len(points) != DefaultSteps {
		t.Fatalf("expected %d points, got %d", DefaultSteps, len(points))
	}
	for i, q := range points {
		if q != (Point3{}) {
			t.Fatalf("point %d: expected zero vector, got %v", i, q)
		}
	}
}

func TestSample_NearSpecialPointWithinEpsilon(t *testing.T) {
	points, err := Sample(Point3{-1, 1e-13, 0}, 10)
	if err != nil {
		t.Fatalf("sample failed: %v", err)
	}
	for _, q := range points {
		if q != (Point3{}) {
			t.Fatalf("expected degenerate fiber, got %v", q)
		}
	}
}

func TestSample_Pure(t *testing.T) {
	p := Point3{-0.2, 0.9, 0.1}.Normalize()

	first, err := Sample(p, 200)
	if err != nil {
		t.Fatalf("sample failed: %v", err)
	}
	if _, err := Sample(Point3{0, 1, 0}, 200); err != nil {
		t.Fatalf("sample failed: %v", err)
	}
	second, err := Sample(p, 200)
	if err != nil {
		t.Fatalf("sample failed: %v", err)
	}

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("sample %d differs between calls: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestSample_InvalidSteps(t *testing.T) {
	if _, err := Sample(Point3{0, 0, 1}, 0); err == nil {
		t.Error("expected error for zero steps")
	}
}

func TestFiberFromPoint(t *testing.T) {
	p := Point3{0, 1, 0}
	fiber, err := FiberFromPoint(p, 10)
	if err != nil {
		t.Fatalf("fiber failed: %v", err)
	}
	if fiber.Base != p {
		t.Errorf("expected base %v, got %v", p, fiber.Base)
	}
	if len(fiber.Points) != 10 {
		t.Errorf("expected 10 points, got %d", len(fiber.Points))
	}
	if fiber.Color != ColorOf(p) {
		t.Errorf("expected color %+v, got %+v", ColorOf(p), fiber.Color)
	}
}
