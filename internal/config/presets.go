package config

import (
	"math"
	"sort"
)

// Presets groups starting configurations by the family of fibers they seed.
var Presets = map[string]map[string]*Config{
	"latitude": {
		"equator": withSeed(SeedConfig{Kind: "latitude", Thetas: []float64{0}, Cutoff: 2 * math.Pi}),
		"bands": withSeed(SeedConfig{
			Kind: "latitude", Thetas: []float64{-0.8, -0.4, 0, 0.4, 0.8}, Cutoff: 2 * math.Pi,
		}),
		"half": withSeed(SeedConfig{Kind: "latitude", Thetas: []float64{0.3}, Cutoff: math.Pi}),
	},
	"rotated": {
		"meridian": withSeed(SeedConfig{Kind: "rotated", Angles: [3]float64{0, 0, math.Pi / 2}}),
		"tilted":   withSeed(SeedConfig{Kind: "rotated", Angles: [3]float64{0.4, 0.3, 0}}),
	},
	"points": {
		"axes": withSeed(SeedConfig{Kind: "point", Points: [][3]float64{
			{1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1},
		}}),
		"single": withSeed(SeedConfig{Kind: "point", Points: [][3]float64{{0, 0, 1}}}),
	},
}

func withSeed(seeds ...SeedConfig) *Config {
	cfg := DefaultConfig()
	cfg.Seed = seeds
	return cfg
}

func GetPreset(family, preset string) *Config {
	familyPresets, ok := Presets[family]
	if !ok {
		return nil
	}
	cfg, ok := familyPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(family string) []string {
	familyPresets, ok := Presets[family]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(familyPresets))
	for name := range familyPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Families returns the preset groups in sorted order.
func Families() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
