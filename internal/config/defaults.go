package config

import (
	_ "embed"
)

//go:embed defaults/walk.yaml
var defaultWalkYAML []byte

// Default returns the built-in run configuration, mirroring the
// embedded defaults/walk.yaml.
func Default() Config {
	return Config{
		Walk: WalkSettings{
			Steps:       100000,
			Directions:  4,
			Policy:      "revisit",
			Walkers:     1,
			Parallelism: 1,
		},
		Markers: MarkerSettings{
			Start: 2,
			End:   3,
		},
		Output: OutputSettings{
			NoData: -9999,
		},
	}
}

// DefaultYAML returns the embedded default configuration file, useful
// for seeding a user config.
func DefaultYAML() []byte {
	return defaultWalkYAML
}
