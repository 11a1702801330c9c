package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridwalk/internal/config"
	"github.com/vovakirdan/gridwalk/internal/grid"
	"github.com/vovakirdan/gridwalk/internal/raster"
)

// loadMaskOrBlank loads the input mask, or creates a fully walkable
// grid of the given dimensions when no input file is given.
func loadMaskOrBlank(input string, width, height int) (*raster.Mask, error) {
	if input != "" {
		return raster.LoadMask(input)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("either --input or positive --width and --height are required")
	}
	return &raster.Mask{Grid: grid.New(width, height), Meta: raster.DefaultMeta()}, nil
}

// applyWalkOverrides copies explicitly set walk flags over the loaded
// config, so the file supplies defaults and flags win.
func applyWalkOverrides(cmd *cobra.Command, cfg *config.Config, steps, directions int, policy string, walkers, parallel int) {
	if cmd.Flags().Changed("steps") {
		cfg.Walk.Steps = steps
	}
	if cmd.Flags().Changed("directions") {
		cfg.Walk.Directions = directions
	}
	if cmd.Flags().Changed("policy") {
		cfg.Walk.Policy = policy
	}
	if cmd.Flags().Changed("walkers") {
		cfg.Walk.Walkers = walkers
	}
	if cmd.Flags().Changed("parallel") {
		cfg.Walk.Parallelism = parallel
	}
}

// parseStart parses a "row,col" flag value.
func parseStart(s string) (*grid.Coord, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return nil, fmt.Errorf("start must be row,col, got %q", s)
	}
	row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, fmt.Errorf("bad start row %q: %w", parts[0], err)
	}
	col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, fmt.Errorf("bad start column %q: %w", parts[1], err)
	}
	c := grid.C(row, col)
	return &c, nil
}

// resolveSeed turns the global seed flag into the run seed. Zero means
// non-reproducible: seed from the clock.
func resolveSeed() uint64 {
	if flagSeed != 0 {
		return uint64(flagSeed)
	}
	return uint64(time.Now().UnixNano())
}
