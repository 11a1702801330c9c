package walk

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/gridwalk/internal/grid"
)

// Params holds the shared configuration for one run.
type Params struct {
	Steps        int          // Step budget per walker
	Connectivity Connectivity // 4 or 8 directions
	Policy       Policy       // revisit or avoid
	Walkers      int          // Number of independent walkers (0 = 1)
	Seed         uint64       // Run seed; walker streams derive from it
	Start        *grid.Coord  // Start cell; nil draws a random valid cell per walker
	StartMarker  int          // Avoid-mode start marker (0 = default)
	EndMarker    int          // Avoid-mode end marker (0 = default)
	Parallelism  int          // Max concurrent walkers (<=1 = sequential)
}

// Result is the aggregated outcome of a run: the output grid plus
// per-walker diagnostics ordered by walker index.
type Result struct {
	Output  *grid.Grid
	Reports []Report
}

// TrappedCount returns how many walkers terminated trapped.
func (r *Result) TrappedCount() int {
	n := 0
	for _, rep := range r.Reports {
		if rep.Reason == ReasonTrapped {
			n++
		}
	}
	return n
}

// TotalSteps returns the sum of steps actually taken by all walkers.
func (r *Result) TotalSteps() int {
	n := 0
	for _, rep := range r.Reports {
		n += rep.Steps
	}
	return n
}

// Runner orchestrates N independent walkers over the same grid and
// reduces their trackers into one output grid. Walkers share only the
// read-only input grid and direction set, so they can run in parallel
// with no locking; the merge happens after all walkers complete.
type Runner struct {
	grid   *grid.Grid
	dirs   *DirectionSet
	params Params
	starts []grid.Coord // valid cells, for random start selection
}

// NewRunner validates the configuration against the grid and prepares
// a runner. All configuration errors surface here, before any walker
// moves (fail fast, not discovered mid-walk).
func NewRunner(g *grid.Grid, p Params) (*Runner, error) {
	if p.Steps < 0 {
		return nil, fmt.Errorf("walk: negative step budget %d", p.Steps)
	}
	if p.Walkers == 0 {
		p.Walkers = 1
	}
	if p.Walkers < 0 {
		return nil, fmt.Errorf("walk: walker count %d must be positive", p.Walkers)
	}
	dirs, err := NewDirectionSet(p.Connectivity)
	if err != nil {
		return nil, err
	}

	r := &Runner{grid: g, dirs: dirs, params: p}
	if p.Start != nil {
		if !g.IsValid(*p.Start) {
			return nil, fmt.Errorf("walk: start cell (%d,%d) is outside the walkable area", p.Start.Row, p.Start.Col)
		}
	} else {
		r.starts = g.ValidCoords()
		if len(r.starts) == 0 {
			return nil, fmt.Errorf("walk: grid has no valid cells to start from")
		}
	}
	return r, nil
}

// Params returns the validated run parameters.
func (r *Runner) Params() Params {
	return r.params
}

func (r *Runner) newTracker() Tracker {
	if r.params.Policy == PolicyAvoid {
		return NewTraceTracker(r.params.StartMarker, r.params.EndMarker)
	}
	return NewCountTracker()
}

// EngineFor builds the engine for one walker. The walker's RNG stream
// is derived from the run seed and its index, so results do not depend
// on scheduling. Exposed for callers that drive stepping themselves,
// like the watch TUI.
func (r *Runner) EngineFor(idx int) (*Engine, error) {
	rng := DeriveSource(r.params.Seed, idx)

	var at grid.Coord
	if r.params.Start != nil {
		at = *r.params.Start
	} else {
		at = r.starts[rng.Intn(len(r.starts))]
	}
	return NewEngine(r.grid, r.dirs, rng, r.params.Policy, r.params.Steps, at, r.newTracker())
}

// runWalker executes one walker to completion and returns its tracker
// for the later merge.
func (r *Runner) runWalker(idx int) (Tracker, Report, error) {
	engine, err := r.EngineFor(idx)
	if err != nil {
		return nil, Report{}, err
	}
	report := engine.Run()
	report.Walker = idx
	return engine.Tracker(), report, nil
}

// Run executes all walkers and merges their results. The output grid
// has the input's dimensions and mask with all values starting at the
// no-data zero; aggregation order never affects it (counts sum
// commutatively, markers write idempotently).
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	n := r.params.Walkers
	trackers := make([]Tracker, n)
	reports := make([]Report, n)

	if r.params.Parallelism > 1 && n > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(r.params.Parallelism)
		for i := 0; i < n; i++ {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				tracker, report, err := r.runWalker(i)
				if err != nil {
					return err
				}
				trackers[i] = tracker
				reports[i] = report
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i := 0; i < n; i++ {
			tracker, report, err := r.runWalker(i)
			if err != nil {
				return nil, err
			}
			trackers[i] = tracker
			reports[i] = report
		}
	}

	out := r.grid.Blank()
	for i, tracker := range trackers {
		if err := tracker.MergeInto(out); err != nil {
			return nil, fmt.Errorf("walk: merging walker %d: %w", i, err)
		}
	}
	return &Result{Output: out, Reports: reports}, nil
}
