// Package raster reads and writes the grid file formats understood by
// gridwalk: ESRI ASCII grids (.asc) and YAML mask files. The walk core
// only ever sees plain in-memory grids.
package raster

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vovakirdan/gridwalk/internal/grid"
)

// DefaultNoData is the no-data value written when the input carries none.
const DefaultNoData = -9999

// Meta holds the georeference header of an ASCII grid. The walk treats
// the grid as an abstract array; the header is only carried through so
// outputs line up with their inputs.
type Meta struct {
	XLLCorner float64
	YLLCorner float64
	CellSize  float64
	NoData    int
}

// DefaultMeta returns the header used for grids created from scratch.
func DefaultMeta() Meta {
	return Meta{CellSize: 1, NoData: DefaultNoData}
}

// ReadASC parses an ESRI ASCII grid. Cells holding the no-data value
// are masked out of the returned grid; all other cells are valid and
// keep their value, so result rasters can be reloaded for viewing.
func ReadASC(r io.Reader) (*grid.Grid, Meta, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	meta := DefaultMeta()
	var ncols, nrows int
	var haveCols, haveRows bool

	// Header: key/value lines until the first line that starts with a
	// number. NODATA_value is optional.
	var firstDataLine string
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		key := strings.ToLower(fields[0])
		isHeader := len(fields) == 2
		switch {
		case isHeader && key == "ncols":
			v, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, meta, fmt.Errorf("raster: bad ncols %q: %w", fields[1], err)
			}
			ncols, haveCols = v, true
		case isHeader && key == "nrows":
			v, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, meta, fmt.Errorf("raster: bad nrows %q: %w", fields[1], err)
			}
			nrows, haveRows = v, true
		case isHeader && key == "xllcorner":
			meta.XLLCorner, _ = strconv.ParseFloat(fields[1], 64)
		case isHeader && key == "yllcorner":
			meta.YLLCorner, _ = strconv.ParseFloat(fields[1], 64)
		case isHeader && key == "cellsize":
			meta.CellSize, _ = strconv.ParseFloat(fields[1], 64)
		case isHeader && key == "nodata_value":
			v, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, meta, fmt.Errorf("raster: bad NODATA_value %q: %w", fields[1], err)
			}
			meta.NoData = v
		default:
			firstDataLine = line
		}
		if firstDataLine != "" {
			break
		}
	}
	if !haveCols || !haveRows {
		return nil, meta, fmt.Errorf("raster: header missing ncols/nrows")
	}
	if ncols <= 0 || nrows <= 0 {
		return nil, meta, fmt.Errorf("raster: empty grid %dx%d", ncols, nrows)
	}

	g := grid.New(ncols, nrows)
	read := 0
	consume := func(line string) error {
		for _, tok := range strings.Fields(line) {
			if read >= ncols*nrows {
				return fmt.Errorf("raster: more than %d cells in body", ncols*nrows)
			}
			v, err := strconv.Atoi(tok)
			if err != nil {
				return fmt.Errorf("raster: bad cell value %q: %w", tok, err)
			}
			c := grid.C(read/ncols, read%ncols)
			if v == meta.NoData {
				g.SetBlocked(c)
			} else if v != 0 {
				g.Set(c, v)
			}
			read++
		}
		return nil
	}

	if firstDataLine != "" {
		if err := consume(firstDataLine); err != nil {
			return nil, meta, err
		}
	}
	for sc.Scan() {
		if err := consume(sc.Text()); err != nil {
			return nil, meta, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, meta, fmt.Errorf("raster: reading grid body: %w", err)
	}
	if read != ncols*nrows {
		return nil, meta, fmt.Errorf("raster: expected %d cells, got %d", ncols*nrows, read)
	}
	return g, meta, nil
}

// WriteASC writes the grid as an ESRI ASCII grid. Masked cells and
// untouched cells (value 0) come out as the no-data value, so the
// result shows exactly where walkers went.
func WriteASC(w io.Writer, g *grid.Grid, meta Meta) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "ncols %d\n", g.W)
	fmt.Fprintf(bw, "nrows %d\n", g.H)
	fmt.Fprintf(bw, "xllcorner %g\n", meta.XLLCorner)
	fmt.Fprintf(bw, "yllcorner %g\n", meta.YLLCorner)
	fmt.Fprintf(bw, "cellsize %g\n", meta.CellSize)
	fmt.Fprintf(bw, "NODATA_value %d\n", meta.NoData)

	for row := 0; row < g.H; row++ {
		for col := 0; col < g.W; col++ {
			if col > 0 {
				bw.WriteByte(' ')
			}
			c := grid.C(row, col)
			v := g.Get(c)
			if !g.IsValid(c) || v == 0 {
				v = meta.NoData
			}
			fmt.Fprintf(bw, "%d", v)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
