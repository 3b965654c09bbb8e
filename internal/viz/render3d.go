package viz

import (
	"math"
	"sort"

	"github.com/san-kum/hopfviz/internal/hopf"
	"github.com/san-kum/hopfviz/internal/scene"
)

type Edge struct {
	Start, End hopf.Point3
	Color      string
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe                          { return &Wireframe{Edges: make([]Edge, 0)} }
func (w *Wireframe) AddEdge(s, e hopf.Point3, c string) { w.Edges = append(w.Edges, Edge{s, e, c}) }
func (w *Wireframe) AddPoint(p hopf.Point3, c string)   { w.Edges = append(w.Edges, Edge{p, p, c}) }
func (w *Wireframe) Clear()                             { w.Edges = w.Edges[:0] }

// AddPolyline adds consecutive segments through points. Non-finite points
// break the line.
func (w *Wireframe) AddPolyline(points []hopf.Point3, c string) {
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		if a.IsFinite() && b.IsFinite() {
			w.AddEdge(a, b, c)
		}
	}
}

type ProjectedEdge struct {
	X1, Y1, X2, Y2 int
	Depth          float64
	Color          string
}

// Render3D draws the wireframe to the canvas, farthest edges first.
func Render3D(c *Canvas, w *Wireframe, cam *scene.Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	cw, ch := c.PixelSize()
	proj := make([]ProjectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, v1 := cam.Project(e.Start, cw, ch)
		x2, y2, d2, v2 := cam.Project(e.End, cw, ch)
		if !v1 && !v2 {
			continue
		}
		if !inDepth(cam, d1) || !inDepth(cam, d2) || !nearCanvas(x1, y1, cw, ch) || !nearCanvas(x2, y2, cw, ch) {
			continue
		}
		proj = append(proj, ProjectedEdge{x1, y1, x2, y2, (d1 + d2) / 2, e.Color})
	}
	sort.SliceStable(proj, func(i, j int) bool { return proj[i].Depth > proj[j].Depth })
	for _, e := range proj {
		c.SetPen(e.Color)
		if e.X1 == e.X2 && e.Y1 == e.Y2 {
			c.Set(e.X1, e.Y1)
		} else {
			c.DrawLine(e.X1, e.Y1, e.X2, e.Y2)
		}
	}
	c.SetPen("")
}

func inDepth(cam *scene.Camera, d float64) bool { return d >= cam.Near && d <= cam.Far }

// nearCanvas bounds how far off-screen a segment endpoint may lie before the
// segment is dropped instead of rasterized.
func nearCanvas(x, y, cw, ch int) bool {
	return x > -2*cw && x < 3*cw && y > -2*ch && y < 3*ch
}

// CreateAxesWireframe draws the x, y and z axes in red, green and blue.
func CreateAxesWireframe(l float64) *Wireframe {
	w, o := NewWireframe(), hopf.Point3{}
	w.AddEdge(o, hopf.Point3{X: l}, "#ff0000")
	w.AddEdge(o, hopf.Point3{Y: l}, "#00ff00")
	w.AddEdge(o, hopf.Point3{Z: l}, "#0000ff")
	return w
}

// CreateSphereWireframe approximates a sphere by latitude and longitude rings.
func CreateSphereWireframe(center hopf.Point3, radius float64, rings, segments int, c string) *Wireframe {
	w := NewWireframe()
	if rings < 1 || segments < 3 {
		return w
	}
	ring := func(at func(t float64) hopf.Point3) {
		points := make([]hopf.Point3, segments+1)
		for i := range points {
			points[i] = center.Add(at(2 * math.Pi * float64(i) / float64(segments)).Scale(radius))
		}
		w.AddPolyline(points, c)
	}
	for i := 1; i <= rings; i++ {
		phi := math.Pi * float64(i) / float64(rings+1)
		y, r := math.Cos(phi), math.Sin(phi)
		ring(func(t float64) hopf.Point3 { return hopf.Point3{X: r * math.Cos(t), Y: y, Z: r * math.Sin(t)} })
	}
	for i := 0; i < rings; i++ {
		theta := math.Pi * float64(i) / float64(rings)
		s, co := math.Sincos(theta)
		ring(func(t float64) hopf.Point3 {
			return hopf.Point3{X: math.Sin(t) * co, Y: math.Cos(t), Z: math.Sin(t) * s}
		})
	}
	return w
}

// SceneWireframe converts every object of s into edges.
func SceneWireframe(s *scene.Scene, theme Theme) *Wireframe {
	w := NewWireframe()
	for _, obj := range s.Objects() {
		switch o := obj.(type) {
		case *scene.Line:
			w.AddPolyline(o.Points, o.Color.Hex())
		case *scene.Marker:
			m := CreateSphereWireframe(o.Center, o.Radius, 1, 8, o.Color.Hex())
			w.Edges = append(w.Edges, m.Edges...)
			w.AddPoint(o.Center, o.Color.Hex())
		case *scene.Sphere:
			sp := CreateSphereWireframe(o.Center, o.Radius, 5, 48, string(theme.Sphere))
			w.Edges = append(w.Edges, sp.Edges...)
		case *scene.Axes:
			w.Edges = append(w.Edges, CreateAxesWireframe(o.Length).Edges...)
		}
	}
	return w
}

// RenderScene clears c and draws s as seen from cam.
func RenderScene(c *Canvas, s *scene.Scene, cam *scene.Camera, theme Theme) {
	c.Clear()
	Render3D(c, SceneWireframe(s, theme), cam)
}
