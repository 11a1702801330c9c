package raster

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/gridwalk/internal/grid"
)

// YAMLMask is the YAML structure for a mask file. Rows are glyph
// strings: '.' walkable, '#' blocked, 'S' walkable plus designated
// start cell (at most one).
type YAMLMask struct {
	ID   string   `yaml:"id"`
	Name string   `yaml:"name"`
	Size YAMLSize `yaml:"size"`
	Rows []string `yaml:"rows"`
}

// YAMLSize holds grid dimensions.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// ParseYAMLMask parses a YAML mask file into a grid plus the optional
// start cell marked with 'S'.
func ParseYAMLMask(data []byte) (*grid.Grid, *grid.Coord, error) {
	var ym YAMLMask
	if err := yaml.Unmarshal(data, &ym); err != nil {
		return nil, nil, fmt.Errorf("raster: yaml unmarshal: %w", err)
	}

	w, h := ym.Size.W, ym.Size.H
	if w <= 0 || h <= 0 {
		return nil, nil, fmt.Errorf("raster: mask %q has invalid size %dx%d", ym.ID, w, h)
	}
	if len(ym.Rows) != h {
		return nil, nil, fmt.Errorf("raster: mask %q has %d rows, want %d", ym.ID, len(ym.Rows), h)
	}

	g := grid.New(w, h)
	var start *grid.Coord
	for row, line := range ym.Rows {
		if len(line) != w {
			return nil, nil, fmt.Errorf("raster: mask %q row %d has %d cells, want %d", ym.ID, row, len(line), w)
		}
		for col := 0; col < w; col++ {
			c := grid.C(row, col)
			switch line[col] {
			case '.':
			case '#':
				g.SetBlocked(c)
			case 'S':
				if start != nil {
					return nil, nil, fmt.Errorf("raster: mask %q has more than one start cell", ym.ID)
				}
				s := c
				start = &s
			default:
				return nil, nil, fmt.Errorf("raster: mask %q has unknown glyph %q at (%d,%d)", ym.ID, line[col], row, col)
			}
		}
	}
	return g, start, nil
}
