package scene

import (
	"math"

	"github.com/san-kum/hopfviz/internal/hopf"
)

// Ray is a half line with a unit direction.
type Ray struct {
	Origin    hopf.Point3
	Direction hopf.Point3
}

// At returns the point at distance t along r.
func (r Ray) At(t float64) hopf.Point3 { return r.Origin.Add(r.Direction.Scale(t)) }

// Hit is a ray intersection.
type Hit struct {
	Distance float64
	Point    hopf.Point3
	Object   Pickable
}

// Pickable is implemented by objects that can be hit by a picking ray.
type Pickable interface {
	Object
	Intersect(r Ray, near, far float64) (Hit, bool)
}

// Intersect returns the entry point of r into s. Only the outward-facing
// surface counts, so a ray starting inside the sphere never hits it.
func (s *Sphere) Intersect(r Ray, near, far float64) (Hit, bool) {
	oc := r.Origin.Sub(s.Center)
	b := oc.Dot(r.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius
	if c < 0 {
		return Hit{}, false
	}
	disc := b*b - c
	if disc < 0 {
		return Hit{}, false
	}
	t := -b - math.Sqrt(disc)
	if t < near || t > far {
		return Hit{}, false
	}
	return Hit{Distance: t, Point: r.At(t), Object: s}, true
}

// Nearest intersects r with every candidate and returns the closest hit.
func Nearest(r Ray, candidates []Pickable, near, far float64) (Hit, bool) {
	var best Hit
	found := false
	for _, c := range candidates {
		h, ok := c.Intersect(r, near, far)
		if ok && (!found || h.Distance < best.Distance) {
			best, found = h, true
		}
	}
	return best, found
}

// Intersect treats the marker as a solid sphere.
func (m *Marker) Intersect(r Ray, near, far float64) (Hit, bool) {
	s := Sphere{Center: m.Center, Radius: m.Radius}
	h, ok := s.Intersect(r, near, far)
	h.Object = m
	return h, ok
}
