// Package config provides YAML-based run configuration loading and
// validation for gridwalk.
package config

import (
	"fmt"

	"github.com/vovakirdan/gridwalk/internal/walk"
)

// Config contains all tunables for a walk run.
type Config struct {
	Walk    WalkSettings   `yaml:"walk"`
	Markers MarkerSettings `yaml:"markers"`
	Output  OutputSettings `yaml:"output"`
}

// WalkSettings defines the simulation parameters.
type WalkSettings struct {
	Steps       int    `yaml:"steps"`       // Step budget per walker
	Directions  int    `yaml:"directions"`  // 4 or 8
	Policy      string `yaml:"policy"`      // revisit or avoid
	Walkers     int    `yaml:"walkers"`     // Number of walkers
	Parallelism int    `yaml:"parallelism"` // Max concurrent walkers (<=1 sequential)
}

// MarkerSettings defines the avoid-mode output marker values.
type MarkerSettings struct {
	Start int `yaml:"start"`
	End   int `yaml:"end"`
}

// OutputSettings defines how results are written.
type OutputSettings struct {
	NoData int `yaml:"nodata"`
}

// Validate checks the configuration before any walker runs. All
// violations here are fatal configuration errors.
func (c *Config) Validate() error {
	if c.Walk.Steps < 0 {
		return fmt.Errorf("config: steps must be non-negative, got %d", c.Walk.Steps)
	}
	if c.Walk.Directions != 4 && c.Walk.Directions != 8 {
		return fmt.Errorf("config: directions must be 4 or 8, got %d", c.Walk.Directions)
	}
	if _, err := walk.ParsePolicy(c.Walk.Policy); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Walk.Walkers < 1 {
		return fmt.Errorf("config: walkers must be at least 1, got %d", c.Walk.Walkers)
	}
	if c.Walk.Parallelism < 0 {
		return fmt.Errorf("config: parallelism must be non-negative, got %d", c.Walk.Parallelism)
	}
	if c.Markers.Start == c.Markers.End {
		return fmt.Errorf("config: start and end markers must differ, both are %d", c.Markers.Start)
	}
	return nil
}

// Params converts the validated configuration into run parameters.
// Seed and start cell come from the CLI layer, not the config file.
func (c *Config) Params() walk.Params {
	policy, _ := walk.ParsePolicy(c.Walk.Policy)
	return walk.Params{
		Steps:        c.Walk.Steps,
		Connectivity: walk.Connectivity(c.Walk.Directions),
		Policy:       policy,
		Walkers:      c.Walk.Walkers,
		StartMarker:  c.Markers.Start,
		EndMarker:    c.Markers.End,
		Parallelism:  c.Walk.Parallelism,
	}
}
