package walk

import "github.com/vovakirdan/gridwalk/internal/grid"

// Output marker values for avoid-mode results. Visit counts in revisit
// mode start at 1, so markers reuse the small values the original
// raster tool wrote for start and stuck cells.
const (
	MarkerStart = 2
	MarkerEnd   = 3
)

// Tracker records the cells one walker occupies during its run and
// merges the result into the shared output grid once the walker
// terminates. A Tracker is owned by exactly one walker.
type Tracker interface {
	// Start records the walker's initial cell.
	Start(c grid.Coord)

	// Record registers arrival at a cell.
	Record(c grid.Coord)

	// Visited reports whether the cell was already entered. Only the
	// avoid policy consults this during eligibility filtering.
	Visited(c grid.Coord) bool

	// Finish records the last occupied cell at termination.
	Finish(c grid.Coord)

	// MergeInto folds the walker's result into the output grid.
	MergeInto(g *grid.Grid) error
}

// CountTracker implements the revisit policy: every arrival increments
// a per-cell counter, and merging sums counters cell-wise.
type CountTracker struct {
	counts map[grid.Coord]int
}

// NewCountTracker creates an empty revisit-mode tracker.
func NewCountTracker() *CountTracker {
	return &CountTracker{counts: make(map[grid.Coord]int)}
}

func (t *CountTracker) Start(c grid.Coord) {}

func (t *CountTracker) Record(c grid.Coord) {
	t.counts[c]++
}

func (t *CountTracker) Visited(c grid.Coord) bool {
	return t.counts[c] > 0
}

func (t *CountTracker) Finish(c grid.Coord) {}

// Count returns the number of recorded arrivals at a cell.
func (t *CountTracker) Count(c grid.Coord) int {
	return t.counts[c]
}

// Steps returns the total number of recorded arrivals.
func (t *CountTracker) Steps() int {
	total := 0
	for _, n := range t.counts {
		total += n
	}
	return total
}

func (t *CountTracker) MergeInto(g *grid.Grid) error {
	for c, n := range t.counts {
		if err := g.Accumulate(c, n); err != nil {
			return err
		}
	}
	return nil
}

// TraceTracker implements the avoid policy: a visited set governs
// eligibility filtering (so each cell is entered at most once, by
// construction), and merging writes marker values at the walker's
// start and end cells only. Overlapping markers from different
// walkers rewrite the same value, which is idempotent.
type TraceTracker struct {
	visited     map[grid.Coord]struct{}
	start, end  grid.Coord
	startMarker int
	endMarker   int
}

// NewTraceTracker creates an avoid-mode tracker writing the given
// marker values. Non-positive markers fall back to the defaults.
func NewTraceTracker(startMarker, endMarker int) *TraceTracker {
	if startMarker <= 0 {
		startMarker = MarkerStart
	}
	if endMarker <= 0 {
		endMarker = MarkerEnd
	}
	return &TraceTracker{
		visited:     make(map[grid.Coord]struct{}),
		startMarker: startMarker,
		endMarker:   endMarker,
	}
}

func (t *TraceTracker) Start(c grid.Coord) {
	t.start = c
	t.end = c
	t.visited[c] = struct{}{}
}

func (t *TraceTracker) Record(c grid.Coord) {
	t.visited[c] = struct{}{}
}

func (t *TraceTracker) Visited(c grid.Coord) bool {
	_, ok := t.visited[c]
	return ok
}

func (t *TraceTracker) Finish(c grid.Coord) {
	t.end = c
}

// StartCell returns the recorded start cell.
func (t *TraceTracker) StartCell() grid.Coord { return t.start }

// EndCell returns the recorded end cell.
func (t *TraceTracker) EndCell() grid.Coord { return t.end }

// VisitedCount returns the size of the visited set.
func (t *TraceTracker) VisitedCount() int { return len(t.visited) }

func (t *TraceTracker) MergeInto(g *grid.Grid) error {
	if err := g.Set(t.start, t.startMarker); err != nil {
		return err
	}
	return g.Set(t.end, t.endMarker)
}
