package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/gridwalk/internal/walk"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
	if cfg.Walk.Steps != 100000 {
		t.Errorf("Expected default budget 100000, got %d", cfg.Walk.Steps)
	}
	if cfg.Walk.Directions != 4 {
		t.Errorf("Expected default 4 directions, got %d", cfg.Walk.Directions)
	}
}

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	// Home or local configs may shadow the embedded file in a dev
	// checkout; at minimum the loaded config must validate.
	if err := cfg.Validate(); err != nil {
		t.Errorf("Loaded default config should validate: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "walk.yaml")
	body := `
walk:
  steps: 500
  directions: 8
  policy: avoid
  walkers: 3
  parallelism: 2
markers:
  start: 2
  end: 3
output:
  nodata: -1
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Walk.Steps != 500 || cfg.Walk.Directions != 8 || cfg.Walk.Policy != "avoid" {
		t.Errorf("Config not parsed correctly: %+v", cfg.Walk)
	}
	if cfg.Output.NoData != -1 {
		t.Errorf("Expected nodata -1, got %d", cfg.Output.NoData)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load("/nonexistent/walk.yaml"); err == nil {
		t.Error("Missing custom config path should fail loudly")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative steps", func(c *Config) { c.Walk.Steps = -1 }},
		{"bad directions", func(c *Config) { c.Walk.Directions = 6 }},
		{"bad policy", func(c *Config) { c.Walk.Policy = "drunk" }},
		{"zero walkers", func(c *Config) { c.Walk.Walkers = 0 }},
		{"negative parallelism", func(c *Config) { c.Walk.Parallelism = -2 }},
		{"equal markers", func(c *Config) { c.Markers.End = c.Markers.Start }},
	}
	for _, tc := range cases {
		cfg := Default()
		tc.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestParamsConversion(t *testing.T) {
	cfg := Default()
	cfg.Walk.Policy = "avoid"
	cfg.Walk.Walkers = 4

	p := cfg.Params()
	if p.Policy != walk.PolicyAvoid {
		t.Errorf("Expected avoid policy, got %v", p.Policy)
	}
	if p.Connectivity != walk.Conn4 {
		t.Errorf("Expected 4-connectivity, got %v", p.Connectivity)
	}
	if p.Walkers != 4 || p.Steps != 100000 {
		t.Errorf("Params not carried over: %+v", p)
	}
	if p.StartMarker != 2 || p.EndMarker != 3 {
		t.Errorf("Markers not carried over: %+v", p)
	}
}
