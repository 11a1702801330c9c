package walk

import (
	"fmt"

	"github.com/vovakirdan/gridwalk/internal/grid"
)

// Connectivity selects how many neighbor directions a walker considers
// per step: orthogonal only, or orthogonal plus diagonals.
type Connectivity int

const (
	Conn4 Connectivity = 4
	Conn8 Connectivity = 8
)

// offset is a single movement vector.
type offset struct {
	dRow, dCol int
}

// Direction order matches the classic raster-walk numbering:
// N, E, S, W, then NE, SE, SW, NW for eight-way movement.
var offsets8 = []offset{
	{-1, 0},  // N
	{0, 1},   // E
	{1, 0},   // S
	{0, -1},  // W
	{-1, 1},  // NE
	{1, 1},   // SE
	{1, -1},  // SW
	{-1, -1}, // NW
}

// DirectionSet enumerates the candidate moves for the configured
// connectivity. It is immutable after construction and shared
// read-only across all walkers.
type DirectionSet struct {
	conn    Connectivity
	offsets []offset
}

// NewDirectionSet builds the direction set for 4- or 8-connectivity.
func NewDirectionSet(conn Connectivity) (*DirectionSet, error) {
	switch conn {
	case Conn4:
		return &DirectionSet{conn: conn, offsets: offsets8[:4]}, nil
	case Conn8:
		return &DirectionSet{conn: conn, offsets: offsets8}, nil
	default:
		return nil, fmt.Errorf("walk: unsupported connectivity %d (want 4 or 8)", conn)
	}
}

// Connectivity returns the configured connectivity.
func (d *DirectionSet) Connectivity() Connectivity {
	return d.conn
}

// Candidates returns the ordered neighbor positions reachable from c.
// This is a pure geometric mapping; validity and visitation filtering
// is the engine's job.
func (d *DirectionSet) Candidates(c grid.Coord) []grid.Coord {
	out := make([]grid.Coord, len(d.offsets))
	for i, o := range d.offsets {
		out[i] = grid.C(c.Row+o.dRow, c.Col+o.dCol)
	}
	return out
}

// Choose draws one of the eligible neighbors uniformly. The options
// slice must already be filtered: sampling happens over the legal
// moves only, so probability mass is redistributed among them.
func (d *DirectionSet) Choose(rng *Source, options []grid.Coord) grid.Coord {
	return options[rng.Intn(len(options))]
}
