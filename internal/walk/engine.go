package walk

import (
	"fmt"

	"github.com/vovakirdan/gridwalk/internal/grid"
)

// Policy selects the movement rule for a run.
type Policy int

const (
	// PolicyRevisit lets walkers re-enter visited cells; the output
	// accumulates visit frequency.
	PolicyRevisit Policy = iota
	// PolicyAvoid forbids re-entry; the output marks start and end
	// cells only.
	PolicyAvoid
)

// String returns the config/CLI spelling of the policy.
func (p Policy) String() string {
	if p == PolicyAvoid {
		return "avoid"
	}
	return "revisit"
}

// ParsePolicy converts the config/CLI spelling into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "revisit", "":
		return PolicyRevisit, nil
	case "avoid":
		return PolicyAvoid, nil
	default:
		return 0, fmt.Errorf("walk: unknown policy %q (want revisit or avoid)", s)
	}
}

// Reason explains why a walker terminated.
type Reason int

const (
	// ReasonBudget means the walker took its full step budget.
	ReasonBudget Reason = iota
	// ReasonTrapped means no eligible move remained before the budget
	// ran out. Expected under the avoid policy, not an error.
	ReasonTrapped
)

func (r Reason) String() string {
	if r == ReasonTrapped {
		return "trapped"
	}
	return "budget-exhausted"
}

// Report summarizes one walker's run for diagnostics and tests.
type Report struct {
	Walker int
	Reason Reason
	Steps  int
	Start  grid.Coord
	End    grid.Coord
}

// Engine drives a single walker through its sequence of steps. The
// walker starts Running and reaches exactly one terminal state:
// Finished when the step budget is exhausted, or Trapped when the
// filtered candidate set becomes empty first.
type Engine struct {
	grid    *grid.Grid
	dirs    *DirectionSet
	rng     *Source
	policy  Policy
	budget  int
	tracker Tracker

	start  grid.Coord
	pos    grid.Coord
	steps  int
	done   bool
	reason Reason
}

// NewEngine prepares a walker at the given start cell. The start must
// be a valid cell and the budget non-negative; both are configuration
// errors caught before any movement.
func NewEngine(g *grid.Grid, dirs *DirectionSet, rng *Source, policy Policy, budget int, start grid.Coord, tracker Tracker) (*Engine, error) {
	if budget < 0 {
		return nil, fmt.Errorf("walk: negative step budget %d", budget)
	}
	if !g.IsValid(start) {
		return nil, fmt.Errorf("walk: start cell (%d,%d) is outside the walkable area", start.Row, start.Col)
	}
	tracker.Start(start)
	return &Engine{
		grid:    g,
		dirs:    dirs,
		rng:     rng,
		policy:  policy,
		budget:  budget,
		tracker: tracker,
		start:   start,
		pos:     start,
	}, nil
}

// Step advances the walker by one move. It returns false once the
// walker has reached a terminal state; calling Step again is a no-op.
func (e *Engine) Step() bool {
	if e.done {
		return false
	}
	if e.steps >= e.budget {
		e.terminate(ReasonBudget)
		return false
	}

	// Filter first, sample second: probability mass is redistributed
	// among the currently legal moves, and an empty set means Trapped
	// instead of an unbounded retry loop.
	candidates := e.dirs.Candidates(e.pos)
	eligible := candidates[:0]
	for _, c := range candidates {
		if !e.grid.IsValid(c) {
			continue
		}
		if e.policy == PolicyAvoid && e.tracker.Visited(c) {
			continue
		}
		eligible = append(eligible, c)
	}
	if len(eligible) == 0 {
		e.terminate(ReasonTrapped)
		return false
	}

	e.pos = e.dirs.Choose(e.rng, eligible)
	e.tracker.Record(e.pos)
	e.steps++
	return true
}

func (e *Engine) terminate(r Reason) {
	e.done = true
	e.reason = r
	e.tracker.Finish(e.pos)
}

// Run drives the walker to termination and returns its report.
func (e *Engine) Run() Report {
	for e.Step() {
	}
	return e.Report()
}

// Report returns the walker's current diagnostics. Reason is only
// meaningful once Done reports true.
func (e *Engine) Report() Report {
	return Report{
		Reason: e.reason,
		Steps:  e.steps,
		Start:  e.start,
		End:    e.pos,
	}
}

// Tracker returns the walker's tracker, for merging after the run.
func (e *Engine) Tracker() Tracker { return e.tracker }

// Pos returns the walker's current cell.
func (e *Engine) Pos() grid.Coord { return e.pos }

// Steps returns the number of moves taken so far.
func (e *Engine) Steps() int { return e.steps }

// Budget returns the configured step budget.
func (e *Engine) Budget() int { return e.budget }

// Done reports whether the walker has terminated.
func (e *Engine) Done() bool { return e.done }

// Reason returns the termination reason once Done reports true.
func (e *Engine) Reason() Reason { return e.reason }
