// Package app owns the mutable state of a visualization session and the
// controller that every front end drives.
package app

import (
	"github.com/san-kum/hopfviz/internal/config"
	"github.com/san-kum/hopfviz/internal/fibers"
	"github.com/san-kum/hopfviz/internal/hopf"
	"github.com/san-kum/hopfviz/internal/pick"
	"github.com/san-kum/hopfviz/internal/scene"
)

// Focus says which camera the orbit controls drive.
type Focus int

const (
	FocusMain Focus = iota
	FocusMinimap
)

func (f Focus) String() string {
	if f == FocusMinimap {
		return "minimap"
	}
	return "main"
}

// sphereColor is the light gray of the reference sphere.
var sphereColor = hopf.Color{Hue: 0, Saturation: 0, Lightness: 0.827}

// State is everything a session mutates: both scenes and cameras, the fiber
// registry and the pointer gate.
type State struct {
	Main, Minimap             *scene.Scene
	MainCamera, MinimapCamera *scene.Camera
	Tracker                   *scene.Tracker
	Fibers                    *fibers.Registry
	Gate                      *pick.Gate
	Sphere                    *scene.Sphere
	Axes                      *scene.Axes

	Focus           Focus
	ControlsEnabled bool
	Width, Height   float64

	cfg *config.Config
}

// NewState builds a fresh session for a window of the configured size.
func NewState(cfg *config.Config) *State {
	s := &State{cfg: cfg}
	s.init(float64(cfg.Window.Width), float64(cfg.Window.Height))
	return s
}

func (s *State) init(width, height float64) {
	cam := s.cfg.Camera
	aspect := 1.0
	if width > 0 && height > 0 {
		aspect = width / height
	}

	s.Main = scene.New("main")
	s.Minimap = scene.New("minimap")
	s.MainCamera = scene.NewCamera(cam.Fov, aspect, cam.Near, cam.Far, cam.MainDistance)
	s.MinimapCamera = scene.NewCamera(cam.Fov, aspect, cam.Near, cam.Far, cam.MinimapDistance)
	s.Tracker = scene.NewTracker()
	s.Fibers = fibers.NewRegistry(s.Main, s.Minimap, s.Tracker, fibers.Options{
		Steps:            s.cfg.Steps,
		SphereRadius:     s.cfg.Sphere.Radius,
		IndicatorRadius:  s.cfg.Sphere.IndicatorRadius,
		IndicatorOpacity: s.cfg.Sphere.IndicatorOpacity,
	})
	s.Gate = pick.NewGate()
	s.Sphere = &scene.Sphere{Radius: s.cfg.Sphere.Radius, Color: sphereColor, Opacity: s.cfg.Sphere.Opacity}
	s.Axes = &scene.Axes{Length: s.cfg.Sphere.AxesLength}
	s.Minimap.Add(s.Sphere)
	s.Minimap.Add(s.Axes)

	s.Focus = FocusMain
	s.ControlsEnabled = true
	s.Width, s.Height = width, height
}

// Reset releases every fiber and restores the initial cameras and toggles.
// The window size is kept.
func (s *State) Reset() error {
	err := s.Fibers.Close()
	s.init(s.Width, s.Height)
	return err
}

// FocusedCamera is the camera the orbit controls currently drive.
func (s *State) FocusedCamera() *scene.Camera {
	if s.Focus == FocusMinimap {
		return s.MinimapCamera
	}
	return s.MainCamera
}

// MinimapSize is the size of the minimap viewport in window pixels.
func (s *State) MinimapSize() (float64, float64) {
	return s.cfg.MinimapSize(s.Width, s.Height)
}
