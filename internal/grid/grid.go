// Package grid provides the raster abstraction the walk simulation runs on:
// a rectangular array of cells with accumulated integer values and an
// optional validity mask. Cells outside the mask are impassable and are
// never entered by a walker.
package grid

import "fmt"

// Coord identifies a cell by row and column.
type Coord struct {
	Row, Col int
}

// C is a shorthand constructor for Coord.
func C(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// Grid is a rectangular raster of cells stored in row-major order:
// index = row*W + col. Each cell carries an accumulated value (visit
// count or marker) and a validity flag derived from the input mask.
type Grid struct {
	W, H  int
	cells []int
	valid []bool
}

// New creates a grid of the given dimensions with every cell valid
// and all accumulated values zero.
func New(w, h int) *Grid {
	g := &Grid{
		W:     w,
		H:     h,
		cells: make([]int, w*h),
		valid: make([]bool, w*h),
	}
	for i := range g.valid {
		g.valid[i] = true
	}
	return g
}

// NewMasked creates a grid where only the cells listed in open are
// valid. Coordinates outside the bounds are ignored.
func NewMasked(w, h int, open []Coord) *Grid {
	g := &Grid{
		W:     w,
		H:     h,
		cells: make([]int, w*h),
		valid: make([]bool, w*h),
	}
	for _, c := range open {
		if g.InBounds(c) {
			g.valid[g.index(c)] = true
		}
	}
	return g
}

func (g *Grid) index(c Coord) int {
	return c.Row*g.W + c.Col
}

// InBounds reports whether the coordinate lies within the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < g.H && c.Col >= 0 && c.Col < g.W
}

// IsValid reports whether the coordinate is in bounds and not masked
// out. Walkers may only ever occupy valid cells.
func (g *Grid) IsValid(c Coord) bool {
	return g.InBounds(c) && g.valid[g.index(c)]
}

// SetBlocked masks out a cell so no walker can enter it.
func (g *Grid) SetBlocked(c Coord) {
	if g.InBounds(c) {
		g.valid[g.index(c)] = false
	}
}

// Get returns the accumulated value at the given coordinate.
// Returns 0 for out-of-bounds coordinates.
func (g *Grid) Get(c Coord) int {
	if !g.InBounds(c) {
		return 0
	}
	return g.cells[g.index(c)]
}

// Accumulate adds delta to the cell's value. It refuses invalid
// coordinates; a correctly filtered walk never produces one, so an
// error here indicates a logic defect upstream.
func (g *Grid) Accumulate(c Coord, delta int) error {
	if !g.IsValid(c) {
		return fmt.Errorf("grid: accumulate at invalid cell (%d,%d)", c.Row, c.Col)
	}
	g.cells[g.index(c)] += delta
	return nil
}

// Set overwrites the cell's value, with the same validity contract as
// Accumulate.
func (g *Grid) Set(c Coord, v int) error {
	if !g.IsValid(c) {
		return fmt.Errorf("grid: set at invalid cell (%d,%d)", c.Row, c.Col)
	}
	g.cells[g.index(c)] = v
	return nil
}

// Clone returns a deep copy of the grid, mask included.
func (g *Grid) Clone() *Grid {
	cells := make([]int, len(g.cells))
	copy(cells, g.cells)
	valid := make([]bool, len(g.valid))
	copy(valid, g.valid)
	return &Grid{W: g.W, H: g.H, cells: cells, valid: valid}
}

// Blank returns a grid with the same dimensions and mask but all
// accumulated values reset to zero.
func (g *Grid) Blank() *Grid {
	valid := make([]bool, len(g.valid))
	copy(valid, g.valid)
	return &Grid{W: g.W, H: g.H, cells: make([]int, g.W*g.H), valid: valid}
}

// ValidCoords returns all valid coordinates, ordered by row then
// column. Used for drawing a random start cell.
func (g *Grid) ValidCoords() []Coord {
	coords := make([]Coord, 0, g.W*g.H)
	for row := 0; row < g.H; row++ {
		for col := 0; col < g.W; col++ {
			c := C(row, col)
			if g.valid[g.index(c)] {
				coords = append(coords, c)
			}
		}
	}
	return coords
}

// ValidCount returns the number of valid cells.
func (g *Grid) ValidCount() int {
	n := 0
	for _, v := range g.valid {
		if v {
			n++
		}
	}
	return n
}

// Sum returns the total of all accumulated values.
func (g *Grid) Sum() int {
	total := 0
	for _, v := range g.cells {
		total += v
	}
	return total
}

// Max returns the largest accumulated value in the grid.
func (g *Grid) Max() int {
	max := 0
	for _, v := range g.cells {
		if v > max {
			max = v
		}
	}
	return max
}

// Equal reports whether two grids have identical dimensions, masks and
// accumulated values.
func (g *Grid) Equal(other *Grid) bool {
	if g.W != other.W || g.H != other.H {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] || g.valid[i] != other.valid[i] {
			return false
		}
	}
	return true
}
