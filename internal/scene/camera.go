package scene

import (
	"math"

	"github.com/san-kum/hopfviz/internal/hopf"
)

// Camera is a perspective camera looking from Position at Target.
type Camera struct {
	Position, Target, Up hopf.Point3
	FovY                 float64 // vertical field of view in degrees
	Aspect               float64
	Near, Far            float64
}

// NewCamera places a camera on the +Z axis at distance z, looking at the origin.
func NewCamera(fovY, aspect, near, far, z float64) *Camera {
	return &Camera{
		Position: hopf.Point3{Z: z},
		Up:       hopf.Point3{Y: 1},
		FovY:     fovY,
		Aspect:   aspect,
		Near:     near,
		Far:      far,
	}
}

// Basis returns the camera's forward, right and up unit vectors.
func (c *Camera) Basis() (forward, right, up hopf.Point3) {
	forward = c.Target.Sub(c.Position).Normalize()
	if forward == (hopf.Point3{}) {
		forward = hopf.Point3{Z: -1}
	}
	right = forward.Cross(c.Up).Normalize()
	if right == (hopf.Point3{}) {
		right = hopf.Point3{X: 1}
	}
	up = right.Cross(forward)
	return forward, right, up
}

func (c *Camera) tanHalfFov() float64 {
	return math.Tan(c.FovY * math.Pi / 360)
}

// RayFromNDC casts a ray from the camera position through the point at
// normalized device coordinates (x, y), both in [-1, 1].
func (c *Camera) RayFromNDC(x, y float64) Ray {
	f, r, u := c.Basis()
	th := c.tanHalfFov()
	dir := f.Add(r.Scale(x * th * c.Aspect)).Add(u.Scale(y * th))
	return Ray{Origin: c.Position, Direction: dir.Normalize()}
}

// ProjectNDC maps p to normalized device coordinates and its view depth.
// ok is false when p lies outside the near and far planes.
func (c *Camera) ProjectNDC(p hopf.Point3) (x, y, depth float64, ok bool) {
	f, r, u := c.Basis()
	d := p.Sub(c.Position)
	depth = d.Dot(f)
	if depth < c.Near || depth > c.Far {
		return 0, 0, depth, false
	}
	th := c.tanHalfFov()
	x = d.Dot(r) / (depth * th * c.Aspect)
	y = d.Dot(u) / (depth * th)
	return x, y, depth, true
}

// Project converts p to pixel coordinates on a sw×sh surface.
// Returns x, y, depth, and visibility.
func (c *Camera) Project(p hopf.Point3, sw, sh int) (int, int, float64, bool) {
	nx, ny, depth, ok := c.ProjectNDC(p)
	if !ok {
		return 0, 0, depth, false
	}
	sx := int(math.Round((nx + 1) / 2 * float64(sw-1)))
	sy := int(math.Round((1 - ny) / 2 * float64(sh-1)))
	return sx, sy, depth, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

// SetAspect updates the aspect ratio after a resize. Degenerate sizes are ignored.
func (c *Camera) SetAspect(width, height float64) {
	if width > 0 && height > 0 {
		c.Aspect = width / height
	}
}

// Distance is the current distance from the camera to its target.
func (c *Camera) Distance() float64 { return c.Position.Distance(c.Target) }

// Orbit rotates the camera around its target by the given azimuth and polar
// deltas in radians, keeping +Y up.
func (c *Camera) Orbit(dAzimuth, dPolar float64) {
	offset := c.Position.Sub(c.Target)
	radius := offset.Length()
	if radius == 0 {
		return
	}
	theta := math.Atan2(offset.X, offset.Z) + dAzimuth
	phi := math.Acos(math.Max(-1, math.Min(1, offset.Y/radius))) + dPolar
	const eps = 1e-6
	phi = math.Max(eps, math.Min(math.Pi-eps, phi))

	sinPhi, cosPhi := math.Sincos(phi)
	sinTheta, cosTheta := math.Sincos(theta)
	c.Position = c.Target.Add(hopf.Point3{
		X: radius * sinPhi * sinTheta,
		Y: radius * cosPhi,
		Z: radius * sinPhi * cosTheta,
	})
}

// Dolly scales the distance to the target by factor, never closer than Near.
func (c *Camera) Dolly(factor float64) {
	offset := c.Position.Sub(c.Target)
	radius := offset.Length()
	if radius == 0 || factor <= 0 {
		return
	}
	next := math.Max(c.Near*1.01, radius*factor)
	c.Position = c.Target.Add(offset.Scale(next / radius))
}
