// Package pick turns pointer positions into points on the unit sphere.
package pick

import (
	"github.com/san-kum/hopfviz/internal/hopf"
	"github.com/san-kum/hopfviz/internal/scene"
)

// Coord is a pointer position in window pixels, y growing downward.
type Coord struct {
	X, Y float64
}

// Dimensions is the size of the viewport being picked in.
type Dimensions struct {
	Width, Height float64
}

// Offsets locates the viewport's lower edge, measured from the top of the window.
type Offsets struct {
	X, Y float64
}

// NDC converts c to normalized device coordinates of a viewport anchored at
// the bottom-left of the window.
func NDC(c Coord, dims Dimensions, offsets Offsets) (x, y float64) {
	x = c.X/dims.Width*2 - 1
	y = -((dims.Height-(offsets.Y-c.Y))/dims.Height)*2 + 1
	return x, y
}

// Pick casts a ray through c and returns the normalized position of the
// closest hit among candidates. ok is false when nothing is hit.
func Pick(c Coord, cam *scene.Camera, candidates []scene.Pickable, dims Dimensions, offsets Offsets) (hopf.Point3, bool) {
	if cam == nil || dims.Width <= 0 || dims.Height <= 0 {
		return hopf.Point3{}, false
	}
	x, y := NDC(c, dims, offsets)
	hit, ok := scene.Nearest(cam.RayFromNDC(x, y), candidates, cam.Near, cam.Far)
	if !ok {
		return hopf.Point3{}, false
	}
	return hit.Point.Normalize(), true
}
