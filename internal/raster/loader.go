package raster

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vovakirdan/gridwalk/internal/grid"
)

// Mask is a loaded input grid: the walkable area, the optional start
// cell designated by the file, and the header to carry through to the
// output.
type Mask struct {
	Grid  *grid.Grid
	Start *grid.Coord
	Meta  Meta
}

// LoadMask reads a mask file, picking the format by extension:
// .asc for ESRI ASCII grids, .yaml/.yml for glyph masks.
func LoadMask(path string) (*Mask, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".asc":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("raster: open %s: %w", path, err)
		}
		defer f.Close()
		g, meta, err := ReadASC(f)
		if err != nil {
			return nil, fmt.Errorf("raster: %s: %w", path, err)
		}
		return &Mask{Grid: g, Meta: meta}, nil
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("raster: read %s: %w", path, err)
		}
		g, start, err := ParseYAMLMask(data)
		if err != nil {
			return nil, fmt.Errorf("raster: %s: %w", path, err)
		}
		return &Mask{Grid: g, Start: start, Meta: DefaultMeta()}, nil
	default:
		return nil, fmt.Errorf("raster: unsupported mask format %q (want .asc, .yaml or .yml)", filepath.Ext(path))
	}
}

// WriteASCFile writes the grid to path as an ESRI ASCII grid, creating
// parent directories as needed.
func WriteASCFile(path string, g *grid.Grid, meta Meta) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("raster: cannot create directory %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("raster: create %s: %w", path, err)
	}
	if err := WriteASC(f, g, meta); err != nil {
		f.Close()
		return fmt.Errorf("raster: write %s: %w", path, err)
	}
	return f.Close()
}
