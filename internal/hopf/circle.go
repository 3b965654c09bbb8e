package hopf

import "math"

// Circumcircle returns the circle through a, b and c. ok is false when the
// points are collinear or coincident.
func Circumcircle(a, b, c Point3) (center Point3, radius float64, ok bool) {
	u, v := a.Sub(c), b.Sub(c)
	n := u.Cross(v)
	nn := n.Dot(n)
	if nn < Epsilon || math.IsNaN(nn) {
		return Point3{}, 0, false
	}
	w := v.Scale(u.Dot(u)).Sub(u.Scale(v.Dot(v)))
	center = c.Add(w.Cross(n).Scale(1 / (2 * nn)))
	return center, center.Distance(a), true
}

// FiberRadius measures the projected circle traced by a sampled fiber. Fibers
// through the projection pole become lines and report false.
func FiberRadius(points []Point3) (float64, bool) {
	n := len(points)
	if n < 3 {
		return 0, false
	}
	_, r, ok := Circumcircle(points[0], points[n/3], points[2*n/3])
	return r, ok
}
