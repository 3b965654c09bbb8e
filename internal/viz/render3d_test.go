package viz

import (
	"math"
	"testing"

	"github.com/san-kum/hopfviz/internal/hopf"
	"github.com/san-kum/hopfviz/internal/scene"
)

func testCamera() *scene.Camera {
	return scene.NewCamera(70, 1, 1, 1000, 10)
}

func TestRender3D_Origin(t *testing.T) {
	c := NewCanvas(20, 10)
	w := NewWireframe()
	w.AddPoint(hopf.Point3{}, "#ffffff")
	Render3D(c, w, testCamera())

	if !c.IsSet(20, 20) {
		t.Error("origin should land in the canvas center")
	}
	if c.Colors[5][10] != "#ffffff" {
		t.Errorf("expected edge color in center cell, got %q", c.Colors[5][10])
	}
}

func TestRender3D_BehindCamera(t *testing.T) {
	c := NewCanvas(20, 10)
	w := NewWireframe()
	w.AddEdge(hopf.Point3{Z: 20}, hopf.Point3{Z: 30}, "")
	w.AddEdge(hopf.Point3{X: -1, Z: 10.5}, hopf.Point3{X: 1, Z: 10.5}, "")
	Render3D(c, w, testCamera())

	w2, h2 := c.PixelSize()
	for y := 0; y < h2; y++ {
		for x := 0; x < w2; x++ {
			if c.IsSet(x, y) {
				t.Fatalf("nothing behind the near plane should be drawn, found (%d, %d)", x, y)
			}
		}
	}
}

func TestWireframe_AddPolyline(t *testing.T) {
	w := NewWireframe()
	w.AddPolyline([]hopf.Point3{{X: 0}, {X: 1}, {X: math.Inf(1)}, {X: 2}, {X: 3}}, "")
	for _, e := range w.Edges {
		if math.IsInf(e.Start.X, 0) || math.IsInf(e.End.X, 0) {
			t.Fatal("non-finite points should be skipped")
		}
	}
	if len(w.Edges) == 0 {
		t.Fatal("expected edges")
	}

	w.Clear()
	if len(w.Edges) != 0 {
		t.Error("clear should drop every edge")
	}
}

func TestSceneWireframe(t *testing.T) {
	s := scene.New("test")
	tr := scene.NewTracker()
	s.Add(&scene.Axes{Length: 25})
	s.Add(&scene.Sphere{Radius: 50})
	s.Add(scene.NewLine(tr, []hopf.Point3{{X: 1}, {Y: 1}}, hopf.Color{Hue: 120, Saturation: 1, Lightness: 0.6}))

	w := SceneWireframe(s, ThemeMidnight)
	var axes, sphere, line int
	for _, e := range w.Edges {
		switch e.Color {
		case "#ff0000", "#00ff00", "#0000ff":
			axes++
		case string(ThemeMidnight.Sphere):
			sphere++
		default:
			line++
		}
	}
	if axes != 3 {
		t.Errorf("expected 3 axis edges, got %d", axes)
	}
	if sphere == 0 || line == 0 {
		t.Errorf("expected sphere and line edges, got %d and %d", sphere, line)
	}
}
