package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultSteps            = 1000
	DefaultWidth            = 1280
	DefaultHeight           = 720
	DefaultMinimapDivisor   = 6.0
	DefaultFov              = 70.0
	DefaultNear             = 1.0
	DefaultFar              = 1000.0
	DefaultMainDistance     = 10.0
	DefaultMinimapDistance  = 100.0
	DefaultSphereRadius     = 50.0
	DefaultSphereOpacity    = 0.2
	DefaultIndicatorRadius  = 1.0
	DefaultIndicatorOpacity = 0.9
	DefaultAxesLength       = 25.0
	DefaultLatitudeSize     = 50
	DefaultRotatedSize      = 100
	DefaultStaggerMs        = 100
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Steps               int          `yaml:"steps"`
	Theme               string       `yaml:"theme"`
	ClearCancelsPending bool         `yaml:"clear_cancels_pending"`
	Window              WindowConfig `yaml:"window"`
	Camera              CameraConfig `yaml:"camera"`
	Sphere              SphereConfig `yaml:"sphere"`
	Families            FamilyConfig `yaml:"families"`
	Seed                []SeedConfig `yaml:"seed,omitempty"`
}

type WindowConfig struct {
	Width          int     `yaml:"width"`
	Height         int     `yaml:"height"`
	MinimapDivisor float64 `yaml:"minimap_divisor"`
}

type CameraConfig struct {
	Fov             float64 `yaml:"fov"`
	Near            float64 `yaml:"near"`
	Far             float64 `yaml:"far"`
	MainDistance    float64 `yaml:"main_distance"`
	MinimapDistance float64 `yaml:"minimap_distance"`
}

type SphereConfig struct {
	Radius           float64 `yaml:"radius"`
	Opacity          float64 `yaml:"opacity"`
	IndicatorRadius  float64 `yaml:"indicator_radius"`
	IndicatorOpacity float64 `yaml:"indicator_opacity"`
	AxesLength       float64 `yaml:"axes_length"`
}

type FamilyConfig struct {
	LatitudeSize int `yaml:"latitude_size"`
	RotatedSize  int `yaml:"rotated_size"`
	StaggerMs    int `yaml:"stagger_ms"`
}

// SeedConfig describes fibers added when a session starts.
// Kind is one of "point", "latitude" or "rotated".
type SeedConfig struct {
	Kind   string       `yaml:"kind"`
	Points [][3]float64 `yaml:"points,omitempty"`
	Thetas []float64    `yaml:"thetas,omitempty"`
	Cutoff float64      `yaml:"cutoff,omitempty"`
	Angles [3]float64   `yaml:"angles,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Steps: DefaultSteps,
		Theme: "midnight",
		Window: WindowConfig{
			Width:          DefaultWidth,
			Height:         DefaultHeight,
			MinimapDivisor: DefaultMinimapDivisor,
		},
		Camera: CameraConfig{
			Fov:             DefaultFov,
			Near:            DefaultNear,
			Far:             DefaultFar,
			MainDistance:    DefaultMainDistance,
			MinimapDistance: DefaultMinimapDistance,
		},
		Sphere: SphereConfig{
			Radius:           DefaultSphereRadius,
			Opacity:          DefaultSphereOpacity,
			IndicatorRadius:  DefaultIndicatorRadius,
			IndicatorOpacity: DefaultIndicatorOpacity,
			AxesLength:       DefaultAxesLength,
		},
		Families: FamilyConfig{
			LatitudeSize: DefaultLatitudeSize,
			RotatedSize:  DefaultRotatedSize,
			StaggerMs:    DefaultStaggerMs,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects settings that would make sampling or projection impossible.
func (c *Config) Validate() error {
	switch {
	case c.Steps < 1:
		return fmt.Errorf("steps must be positive, got %d: %w", c.Steps, ErrInvalidConfig)
	case c.Camera.Fov <= 0 || c.Camera.Fov >= 180:
		return fmt.Errorf("fov must be in (0, 180), got %v: %w", c.Camera.Fov, ErrInvalidConfig)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("need 0 < near < far, got %v, %v: %w", c.Camera.Near, c.Camera.Far, ErrInvalidConfig)
	case c.Window.MinimapDivisor < 1:
		return fmt.Errorf("minimap divisor must be at least 1, got %v: %w", c.Window.MinimapDivisor, ErrInvalidConfig)
	case c.Families.LatitudeSize < 1 || c.Families.RotatedSize < 1:
		return fmt.Errorf("family sizes must be positive: %w", ErrInvalidConfig)
	case c.Families.StaggerMs < 0:
		return fmt.Errorf("stagger must not be negative: %w", ErrInvalidConfig)
	}
	for i, s := range c.Seed {
		switch s.Kind {
		case "point", "latitude", "rotated":
		default:
			return fmt.Errorf("seed %d: unknown kind %q: %w", i, s.Kind, ErrInvalidConfig)
		}
	}
	return nil
}

// MinimapSize returns the minimap viewport size for a window.
func (c *Config) MinimapSize(width, height float64) (float64, float64) {
	return width / c.Window.MinimapDivisor, height / c.Window.MinimapDivisor
}
