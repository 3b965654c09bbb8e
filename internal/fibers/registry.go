// Package fibers keeps the collection of fibers currently on display.
package fibers

import (
	"errors"
	"fmt"

	"github.com/san-kum/hopfviz/internal/hopf"
	"github.com/san-kum/hopfviz/internal/scene"
)

// Default indicator geometry on the minimap's reference sphere.
const (
	DefaultSphereRadius     = 50.0
	DefaultIndicatorRadius  = 1.0
	DefaultIndicatorOpacity = 0.9
)

// Options controls sampling and indicator placement.
type Options struct {
	Steps            int
	SphereRadius     float64
	IndicatorRadius  float64
	IndicatorOpacity float64
}

func DefaultOptions() Options {
	return Options{
		Steps:            hopf.DefaultSteps,
		SphereRadius:     DefaultSphereRadius,
		IndicatorRadius:  DefaultIndicatorRadius,
		IndicatorOpacity: DefaultIndicatorOpacity,
	}
}

// Indicator marks a base point on the reference sphere.
type Indicator struct {
	Center  hopf.Point3
	Radius  float64
	Color   hopf.Color
	Opacity float64
}

// Entry pairs a fiber with its indicator and their scene objects.
type Entry struct {
	Fiber     hopf.Fiber
	Indicator Indicator
	Line      *scene.Line
	Marker    *scene.Marker
}

// Registry owns every displayed fiber. Fibers go to the main scene and their
// indicators to the minimap scene.
type Registry struct {
	main, minimap *scene.Scene
	tracker       *scene.Tracker
	opts          Options
	entries       []Entry
	preview       *Entry
}

func NewRegistry(main, minimap *scene.Scene, tracker *scene.Tracker, opts Options) *Registry {
	if opts.Steps < 1 {
		opts.Steps = hopf.DefaultSteps
	}
	return &Registry{main: main, minimap: minimap, tracker: tracker, opts: opts}
}

func (r *Registry) indicatorFor(p hopf.Point3, c hopf.Color) Indicator {
	return Indicator{
		Center:  p.Normalize().Scale(r.opts.SphereRadius),
		Radius:  r.opts.IndicatorRadius,
		Color:   c,
		Opacity: r.opts.IndicatorOpacity,
	}
}

// AddFiber samples the fiber over p and puts it on display.
func (r *Registry) AddFiber(p hopf.Point3) (Entry, error) {
	fiber, err := hopf.FiberFromPoint(p, r.opts.Steps)
	if err != nil {
		return Entry{}, fmt.Errorf("add fiber over %v: %w", p, err)
	}
	ind := r.indicatorFor(p, fiber.Color)
	e := Entry{
		Fiber:     fiber,
		Indicator: ind,
		Line:      scene.NewLine(r.tracker, fiber.Points, fiber.Color),
		Marker:    scene.NewMarker(r.tracker, ind.Center, ind.Radius, ind.Color, ind.Opacity),
	}
	r.entries = append(r.entries, e)
	r.main.Add(e.Line)
	r.minimap.Add(e.Marker)
	return e, nil
}

// ClearAll removes every fiber and indicator and releases their resources.
// It returns how many entries were cleared.
func (r *Registry) ClearAll() (int, error) {
	var errs []error
	for _, e := range r.entries {
		r.main.Remove(e.Line)
		r.minimap.Remove(e.Marker)
		errs = append(errs, e.Line.Dispose(), e.Marker.Dispose())
	}
	n := len(r.entries)
	r.entries = nil
	return n, errors.Join(errs...)
}

// PreviewFiber shows the fiber over p in the reusable preview slot.
func (r *Registry) PreviewFiber(p hopf.Point3) error {
	points, err := hopf.Sample(p, r.opts.Steps)
	if err != nil {
		return fmt.Errorf("preview fiber over %v: %w", p, err)
	}
	color := hopf.ColorOf(p)
	ind := r.indicatorFor(p, color)

	if r.preview == nil {
		r.preview = &Entry{
			Line:   scene.NewLine(r.tracker, nil, color),
			Marker: scene.NewMarker(r.tracker, ind.Center, ind.Radius, color, ind.Opacity),
		}
	}
	pv := r.preview
	pv.Fiber = hopf.Fiber{Base: p, Points: points, Color: color}
	pv.Indicator = ind
	pv.Line.Points, pv.Line.Color = points, color
	pv.Marker.Center, pv.Marker.Color = ind.Center, color

	r.main.Add(pv.Line)
	r.minimap.Add(pv.Marker)
	return nil
}

// HidePreview takes the preview off display. Its resources are kept for reuse.
func (r *Registry) HidePreview() {
	if r.preview == nil {
		return
	}
	r.main.Remove(r.preview.Line)
	r.minimap.Remove(r.preview.Marker)
}

// Preview returns the current preview and whether it is on display.
func (r *Registry) Preview() (Entry, bool) {
	if r.preview == nil {
		return Entry{}, false
	}
	return *r.preview, r.main.Contains(r.preview.Line)
}

// PickTargets returns the minimap objects a pick ray may hit. The preview
// marker is left out so it never shifts the point under the pointer.
func (r *Registry) PickTargets() []scene.Pickable {
	var out []scene.Pickable
	for _, p := range r.minimap.Pickables() {
		if m, ok := p.(*scene.Marker); ok && r.preview != nil && m == r.preview.Marker {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Entries returns the fibers in insertion order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *Registry) Len() int { return len(r.entries) }

// Close clears every fiber and releases the preview resources.
func (r *Registry) Close() error {
	_, err := r.ClearAll()
	if r.preview != nil {
		r.HidePreview()
		err = errors.Join(err, r.preview.Line.Dispose(), r.preview.Marker.Dispose())
		r.preview = nil
	}
	return err
}
