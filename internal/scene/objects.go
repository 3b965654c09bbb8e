package scene

import (
	"errors"

	"github.com/san-kum/hopfviz/internal/hopf"
)

// Object is anything a Scene can hold.
type Object interface {
	isObject()
}

// Line is a polyline with its own geometry and material.
type Line struct {
	Points   []hopf.Point3
	Color    hopf.Color
	Closed   bool
	Geometry *Buffer
	Material *Buffer
}

// NewLine allocates the line's resources from t.
func NewLine(t *Tracker, points []hopf.Point3, color hopf.Color) *Line {
	return &Line{
		Points:   points,
		Color:    color,
		Geometry: t.Acquire(KindGeometry),
		Material: t.Acquire(KindMaterial),
	}
}

// Dispose releases the geometry and material of l.
func (l *Line) Dispose() error {
	return errors.Join(l.Geometry.Release(), l.Material.Release())
}

// Marker is a small solid sphere, used as the picked-point indicator.
type Marker struct {
	Center   hopf.Point3
	Radius   float64
	Color    hopf.Color
	Opacity  float64
	Geometry *Buffer
	Material *Buffer
}

func NewMarker(t *Tracker, center hopf.Point3, radius float64, color hopf.Color, opacity float64) *Marker {
	return &Marker{
		Center:   center,
		Radius:   radius,
		Color:    color,
		Opacity:  opacity,
		Geometry: t.Acquire(KindGeometry),
		Material: t.Acquire(KindMaterial),
	}
}

// Dispose releases the geometry and material of m.
func (m *Marker) Dispose() error {
	return errors.Join(m.Geometry.Release(), m.Material.Release())
}

// Sphere is a translucent reference sphere that can be picked.
type Sphere struct {
	Center  hopf.Point3
	Radius  float64
	Color   hopf.Color
	Opacity float64
}

// Axes draws the coordinate axes from the origin.
type Axes struct {
	Length float64
}

func (*Line) isObject()   {}
func (*Marker) isObject() {}
func (*Sphere) isObject() {}
func (*Axes) isObject()   {}
