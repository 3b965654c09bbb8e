package scene

import (
	"math"
	"testing"

	"github.com/san-kum/hopfviz/internal/hopf"
)

func TestSphere_Intersect(t *testing.T) {
	s := &Sphere{Radius: 50}
	tests := []struct {
		name string
		ray  Ray
		hit  bool
		dist float64
	}{
		{"head on", Ray{hopf.Point3{Z: 100}, hopf.Point3{Z: -1}}, true, 50},
		{"miss", Ray{hopf.Point3{X: 60, Z: 100}, hopf.Point3{Z: -1}}, false, 0},
		{"pointing away", Ray{hopf.Point3{Z: 100}, hopf.Point3{Z: 1}}, false, 0},
		{"from inside", Ray{hopf.Point3{}, hopf.Point3{Z: -1}}, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, ok := s.Intersect(tt.ray, 0, math.Inf(1))
			if ok != tt.hit {
				t.Fatalf("hit = %v, want %v", ok, tt.hit)
			}
			if ok && math.Abs(h.Distance-tt.dist) > 1e-9 {
				t.Errorf("distance = %v, want %v", h.Distance, tt.dist)
			}
		})
	}
}

func TestSphere_IntersectRange(t *testing.T) {
	s := &Sphere{Radius: 50}
	r := Ray{hopf.Point3{Z: 100}, hopf.Point3{Z: -1}}
	if _, ok := s.Intersect(r, 1, 40); ok {
		t.Error("hit beyond far plane should be rejected")
	}
	if _, ok := s.Intersect(r, 60, 1000); ok {
		t.Error("hit before near plane should be rejected")
	}
}

func TestNearest(t *testing.T) {
	far := &Sphere{Center: hopf.Point3{Z: -100}, Radius: 10}
	near := &Sphere{Radius: 10}
	r := Ray{hopf.Point3{Z: 100}, hopf.Point3{Z: -1}}

	h, ok := Nearest(r, []Pickable{far, near}, 0, 1000)
	if !ok {
		t.Fatal("expected a hit")
	}
	if h.Object != Pickable(near) {
		t.Error("nearest sphere should win")
	}
	if !hopf.IsEqualEps(h.Point, hopf.Point3{Z: 10}, 1e-9) {
		t.Errorf("unexpected hit point %v", h.Point)
	}

	if _, ok := Nearest(r, nil, 0, 1000); ok {
		t.Error("no candidates should mean no hit")
	}
}

func TestMarker_Intersect(t *testing.T) {
	m := NewMarker(NewTracker(), hopf.Point3{Z: 50}, 1, hopf.Color{}, 0.9)
	r := Ray{hopf.Point3{Z: 100}, hopf.Point3{Z: -1}}

	h, ok := m.Intersect(r, 1, 1000)
	if !ok {
		t.Fatal("expected the marker to be hit")
	}
	if math.Abs(h.Distance-49) > 1e-9 {
		t.Errorf("expected distance 49, got %v", h.Distance)
	}
	if h.Object != Pickable(m) {
		t.Error("hit should report the marker")
	}
}
