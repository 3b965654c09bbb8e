package app

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/san-kum/hopfviz/internal/command"
	"github.com/san-kum/hopfviz/internal/config"
	"github.com/san-kum/hopfviz/internal/hopf"
	"github.com/san-kum/hopfviz/internal/pick"
	"github.com/san-kum/hopfviz/internal/schedule"
)

var ErrNoPendingInput = errors.New("app: no command is waiting for input")

// Controller applies pointer, keyboard and clock events to a State.
// It must be driven from a single goroutine.
type Controller struct {
	State *State

	cfg     *config.Config
	queue   *schedule.Queue[hopf.Point3]
	pending *command.Pending
	status  string
}

// NewController creates a session and adds the configured seed fibers.
func NewController(cfg *config.Config) (*Controller, error) {
	c := &Controller{
		State: NewState(cfg),
		cfg:   cfg,
		queue: schedule.NewQueue[hopf.Point3](),
	}
	if err := c.seed(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Controller) seed() error {
	for i, s := range c.cfg.Seed {
		points, err := seedPoints(s, c.cfg)
		if err != nil {
			return fmt.Errorf("seed %d: %w", i, err)
		}
		if err := c.addAll(points); err != nil {
			return fmt.Errorf("seed %d: %w", i, err)
		}
	}
	return nil
}

func seedPoints(s config.SeedConfig, cfg *config.Config) ([]hopf.Point3, error) {
	switch s.Kind {
	case "point":
		points := make([]hopf.Point3, len(s.Points))
		for i, p := range s.Points {
			points[i] = hopf.Point3{X: p[0], Y: p[1], Z: p[2]}
		}
		return points, nil
	case "latitude":
		cutoff := s.Cutoff
		if cutoff == 0 {
			cutoff = 2 * math.Pi
		}
		family, err := hopf.LatitudeFamily(s.Thetas, cutoff, cfg.Families.LatitudeSize)
		if err != nil {
			return nil, err
		}
		var points []hopf.Point3
		for _, circle := range family {
			points = append(points, circle...)
		}
		return points, nil
	case "rotated":
		return hopf.RotatedCircleFamily(s.Angles, cfg.Families.RotatedSize)
	}
	return nil, fmt.Errorf("unknown seed kind %q: %w", s.Kind, config.ErrInvalidConfig)
}

func (c *Controller) addAll(points []hopf.Point3) error {
	for _, p := range points {
		if _, err := c.State.Fibers.AddFiber(p); err != nil {
			return err
		}
	}
	return nil
}

// Status is a one-line summary of the last action.
func (c *Controller) Status() string { return c.status }

func (c *Controller) setStatus(format string, args ...any) {
	c.status = fmt.Sprintf(format, args...)
}

// Resize records a new window size and updates both camera aspect ratios.
func (c *Controller) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	c.State.Width, c.State.Height = width, height
	c.State.MainCamera.SetAspect(width, height)
	c.State.MinimapCamera.SetAspect(width, height)
}

// MinimapPoint converts a position inside the minimap, given as fractions of
// its width and height from the top-left corner, into window pixels.
func (c *Controller) MinimapPoint(u, v float64) (x, y float64) {
	w, h := c.State.MinimapSize()
	return u * w, c.State.Height - h + v*h
}

func (c *Controller) pickAt(x, y float64) (hopf.Point3, bool) {
	w, h := c.State.MinimapSize()
	return pick.Pick(
		pick.Coord{X: x, Y: y},
		c.State.MinimapCamera,
		c.State.Fibers.PickTargets(),
		pick.Dimensions{Width: w, Height: h},
		pick.Offsets{Y: c.State.Height},
	)
}

// PointerDown records where a press started.
func (c *Controller) PointerDown(x, y float64) {
	c.State.Gate.Down(x, y)
}

// PointerMove shows the preview fiber under the pointer, or hides it when the
// pointer is off the sphere.
func (c *Controller) PointerMove(x, y float64) {
	if !c.State.Gate.Allow(x, y) {
		return
	}
	p, ok := c.pickAt(x, y)
	if !ok {
		c.State.Fibers.HidePreview()
		return
	}
	if err := c.State.Fibers.PreviewFiber(p); err != nil {
		c.setStatus("preview failed: %v", err)
	}
}

// PointerUp adds the fiber under the pointer. It reports whether one was added.
func (c *Controller) PointerUp(x, y float64) bool {
	if !c.State.Gate.Allow(x, y) {
		return false
	}
	p, ok := c.pickAt(x, y)
	if !ok {
		return false
	}
	if _, err := c.State.Fibers.AddFiber(p); err != nil {
		c.setStatus("add failed: %v", err)
		return false
	}
	c.setStatus("added fiber over %v", p)
	return true
}

// Orbit rotates the focused camera when the controls are enabled.
func (c *Controller) Orbit(dAzimuth, dPolar float64) {
	if c.State.ControlsEnabled {
		c.State.FocusedCamera().Orbit(dAzimuth, dPolar)
	}
}

// Zoom moves the focused camera toward or away from its target.
func (c *Controller) Zoom(factor float64) {
	if c.State.ControlsEnabled {
		c.State.FocusedCamera().Dolly(factor)
	}
}

// HandleKey runs the command bound to key at time now. Commands that need
// input return a Pending whose prompts must be answered through Answer.
func (c *Controller) HandleKey(key rune, now time.Time) (*command.Pending, error) {
	cmd, err := command.Lookup(key)
	if err != nil {
		return nil, err
	}
	if cmd.NeedsInput() {
		c.pending = cmd.Begin()
		return c.pending, nil
	}
	return nil, c.execute(cmd, nil, now)
}

// Pending returns the command waiting for input, if any.
func (c *Controller) Pending() *command.Pending { return c.pending }

// Answer feeds text to the current prompt. Once the last prompt is answered
// the command runs at time now.
func (c *Controller) Answer(text string, now time.Time) error {
	p := c.pending
	if p == nil {
		return ErrNoPendingInput
	}
	if p.Cancelled() {
		c.pending = nil
		return nil
	}
	if !p.Answer(text) {
		return nil
	}
	c.pending = nil
	return c.execute(p.Command, p.Answers(), now)
}

// CancelInput abandons the command waiting for input.
func (c *Controller) CancelInput() {
	if c.pending != nil {
		c.pending.Cancel()
		c.pending = nil
		c.setStatus("cancelled")
	}
}

func (c *Controller) execute(cmd command.Command, answers []string, now time.Time) error {
	switch cmd.Key {
	case 'g':
		c.toggleFocus()
	case 'h':
		c.State.ControlsEnabled = !c.State.ControlsEnabled
		c.setStatus("orbit controls enabled: %v", c.State.ControlsEnabled)
	case 'a':
		thetas, err := command.ParseAngles(answers[0])
		return c.latitudes(thetas, 2*math.Pi, err, now)
	case 'b':
		thetas, err := command.ParseAngles(answers[0])
		cutoff, cerr := command.ParseAngle(answers[1])
		return c.latitudes(thetas, cutoff, errors.Join(err, cerr), now)
	case 'c':
		angles, err := command.ParseEuler(answers[0])
		return c.rotated(angles, err)
	case 'd':
		return c.clear()
	}
	return nil
}

func (c *Controller) toggleFocus() {
	s := c.State
	s.Gate.SetLocked(s.Focus != FocusMain)
	if s.Focus == FocusMain {
		s.Focus = FocusMinimap
	} else {
		s.Focus = FocusMain
	}
	c.setStatus("orbit controls on %s camera", s.Focus)
}

func (c *Controller) latitudes(thetas []float64, cutoff float64, inputErr error, now time.Time) error {
	family, err := hopf.LatitudeFamily(thetas, cutoff, c.cfg.Families.LatitudeSize)
	if err != nil {
		return err
	}
	stagger := time.Duration(c.cfg.Families.StaggerMs) * time.Millisecond
	for _, circle := range family {
		c.queue.ScheduleBatch(now, stagger, circle)
	}
	c.report(inputErr, "scheduled %d fibers", len(family)*c.cfg.Families.LatitudeSize)
	return nil
}

func (c *Controller) rotated(angles [3]float64, inputErr error) error {
	points, err := hopf.RotatedCircleFamily(angles, c.cfg.Families.RotatedSize)
	if err != nil {
		return err
	}
	if err := c.addAll(points); err != nil {
		return err
	}
	c.report(inputErr, "added %d fibers", len(points))
	return nil
}

func (c *Controller) report(inputErr error, format string, args ...any) {
	c.setStatus(format, args...)
	if inputErr != nil {
		c.status += fmt.Sprintf(" (invalid input: %v)", inputErr)
	}
}

func (c *Controller) clear() error {
	n, err := c.State.Fibers.ClearAll()
	dropped := 0
	if c.cfg.ClearCancelsPending {
		dropped = c.queue.Cancel()
	}
	c.setStatus("cleared %d fibers", n)
	if dropped > 0 {
		c.status += fmt.Sprintf(", cancelled %d pending", dropped)
	}
	return err
}

// Tick adds every scheduled fiber that is due at now and returns how many
// were added.
func (c *Controller) Tick(now time.Time) (int, error) {
	added := 0
	for _, p := range c.queue.Due(now) {
		if _, err := c.State.Fibers.AddFiber(p); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}

// PendingFibers is the number of scheduled fibers not yet added.
func (c *Controller) PendingFibers() int { return c.queue.Len() }

// NextDue reports when the next scheduled fiber lands.
func (c *Controller) NextDue() (time.Time, bool) { return c.queue.Next() }

// Reset clears the session back to its initial state, seeds included.
func (c *Controller) Reset() error {
	c.queue.Cancel()
	c.pending = nil
	if err := c.State.Reset(); err != nil {
		return err
	}
	c.setStatus("reset")
	return c.seed()
}

// Close releases every resource held by the session.
func (c *Controller) Close() error {
	c.queue.Cancel()
	return c.State.Fibers.Close()
}
