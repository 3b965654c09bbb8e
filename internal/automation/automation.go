package automation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"sync/atomic"
	"time"

	"github.com/san-kum/hopfviz/internal/app"
	"github.com/san-kum/hopfviz/internal/hopf"
	"gopkg.in/yaml.v3"
)

var ErrEmptyStep = errors.New("automation: step has no action")

const sweepChunk = 8

// Scenario defines a scripted session
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Preset      string         `yaml:"preset"`
	Settle      bool           `yaml:"settle"`
	Quiet       bool           `yaml:"quiet"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single user action. Click and Hover are positions inside
// the minimap as fractions of its width and height from the top-left corner.
type ScenarioStep struct {
	Key     string    `yaml:"key,omitempty"`
	Answers []string  `yaml:"answers,omitempty"`
	Click   []float64 `yaml:"click,omitempty"`
	Hover   []float64 `yaml:"hover,omitempty"`
	Orbit   []float64 `yaml:"orbit,omitempty"`
	Zoom    float64   `yaml:"zoom,omitempty"`
	WaitMs  int       `yaml:"wait_ms,omitempty"`
}

// Result summarizes a finished scenario.
type Result struct {
	Steps   int
	Fibers  int
	Pending int
	Elapsed time.Duration
	Status  []string
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

// ParseScenario decodes a scenario from YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	return &scenario, nil
}

// RunScenario replays every step against ctrl on a simulated clock that
// starts at start. Scheduled fibers land as the clock passes their due time.
func RunScenario(ctx context.Context, scenario *Scenario, ctrl *app.Controller, start time.Time) (*Result, error) {
	now := start
	res := &Result{}

	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if !scenario.Quiet {
			fmt.Printf("running step %d/%d: %s\n", i+1, len(scenario.Steps), step.describe())
		}

		if err := runStep(step, ctrl, now); err != nil {
			return res, fmt.Errorf("step %d: %w", i+1, err)
		}
		now = now.Add(time.Duration(step.WaitMs) * time.Millisecond)
		if _, err := ctrl.Tick(now); err != nil {
			return res, fmt.Errorf("step %d: %w", i+1, err)
		}
		res.Steps++
		if s := ctrl.Status(); s != "" {
			res.Status = append(res.Status, s)
		}
	}

	if scenario.Settle {
		var err error
		if now, err = settle(ctx, ctrl, now); err != nil {
			return res, err
		}
	}

	res.Fibers = ctrl.State.Fibers.Len()
	res.Pending = ctrl.PendingFibers()
	res.Elapsed = now.Sub(start)
	return res, nil
}

func settle(ctx context.Context, ctrl *app.Controller, now time.Time) (time.Time, error) {
	for ctrl.PendingFibers() > 0 {
		if err := ctx.Err(); err != nil {
			return now, err
		}
		next, ok := ctrl.NextDue()
		if !ok {
			break
		}
		if next.After(now) {
			now = next
		}
		if _, err := ctrl.Tick(now); err != nil {
			return now, err
		}
	}
	return now, nil
}

func runStep(step ScenarioStep, ctrl *app.Controller, now time.Time) error {
	acted := false

	if len(step.Hover) == 2 {
		ctrl.PointerMove(ctrl.MinimapPoint(step.Hover[0], step.Hover[1]))
		acted = true
	}
	if len(step.Click) == 2 {
		x, y := ctrl.MinimapPoint(step.Click[0], step.Click[1])
		ctrl.PointerDown(x, y)
		ctrl.PointerUp(x, y)
		acted = true
	}
	if len(step.Orbit) == 2 {
		ctrl.Orbit(step.Orbit[0], step.Orbit[1])
		acted = true
	}
	if step.Zoom > 0 {
		ctrl.Zoom(step.Zoom)
		acted = true
	}
	if step.Key != "" {
		key := []rune(step.Key)[0]
		pending, err := ctrl.HandleKey(key, now)
		if err != nil {
			return err
		}
		if pending != nil {
			for i := range pending.Command.Prompts {
				answer := pending.Command.Prompts[i].Default
				if i < len(step.Answers) {
					answer = step.Answers[i]
				}
				if err := ctrl.Answer(answer, now); err != nil {
					return err
				}
			}
		}
		acted = true
	}

	if !acted && step.WaitMs == 0 {
		return ErrEmptyStep
	}
	return nil
}

func (s ScenarioStep) describe() string {
	switch {
	case s.Key != "":
		return "key " + s.Key
	case len(s.Click) == 2:
		return fmt.Sprintf("click %.2f,%.2f", s.Click[0], s.Click[1])
	case len(s.Hover) == 2:
		return fmt.Sprintf("hover %.2f,%.2f", s.Hover[0], s.Hover[1])
	case len(s.Orbit) == 2:
		return "orbit"
	case s.Zoom > 0:
		return "zoom"
	}
	return fmt.Sprintf("wait %dms", s.WaitMs)
}

// MeridianSweep measures fibers over base points (sin θ, 0, cos θ) for θ
// evenly spaced between ThetaMin and ThetaMax.
type MeridianSweep struct {
	ThetaMin float64
	ThetaMax float64
	NumSteps int
	Samples  int
}

// SweepResult holds one measured fiber of a sweep
type SweepResult struct {
	Theta  float64
	Base   hopf.Point3
	Radius float64
	Hue    int
	Line   bool // fiber passes through the projection pole
}

// RunSweep executes a meridian sweep. Fibers are measured in parallel and
// returned in sweep order.
func RunSweep(ctx context.Context, sweep *MeridianSweep) ([]SweepResult, error) {
	thetas, err := hopf.Linspace(sweep.ThetaMin, sweep.ThetaMax, sweep.NumSteps)
	if err != nil {
		return nil, err
	}
	samples := sweep.Samples
	if samples < 3 {
		samples = hopf.DefaultSteps
	}

	results := make([]SweepResult, len(thetas))
	errs := make([]error, len(thetas))
	var measured atomic.Int64
	parallelFor(len(thetas), sweepChunk, func(start, end int) {
		for i := start; i < end; i++ {
			if ctx.Err() != nil {
				return
			}
			results[i], errs[i] = measure(thetas[i], samples)
			if n := measured.Add(1); n%10 == 0 {
				fmt.Printf("sweep: %d/%d fibers measured\n", n, len(thetas))
			}
		}
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("sweep %d: %w", i+1, err)
		}
	}
	return results, nil
}

func measure(theta float64, samples int) (SweepResult, error) {
	sin, cos := math.Sincos(theta)
	p := hopf.Point3{X: sin, Z: cos}

	fiber, err := hopf.FiberFromPoint(p, samples)
	if err != nil {
		return SweepResult{}, err
	}
	r, ok := hopf.FiberRadius(fiber.Points)
	return SweepResult{
		Theta:  theta,
		Base:   p,
		Radius: r,
		Hue:    fiber.Color.Hue,
		Line:   !ok,
	}, nil
}

// Radii extracts the finite radii of a sweep, in order.
func Radii(results []SweepResult) []float64 {
	out := make([]float64, 0, len(results))
	for _, r := range results {
		if !r.Line && !math.IsInf(r.Radius, 0) && !math.IsNaN(r.Radius) {
			out = append(out, r.Radius)
		}
	}
	return out
}
