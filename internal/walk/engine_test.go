package walk

import (
	"testing"

	"github.com/vovakirdan/gridwalk/internal/grid"
)

// recordingTracker wraps a tracker and keeps the full position
// sequence so tests can replay a walk.
type recordingTracker struct {
	Tracker
	trail []grid.Coord
}

func newRecording(inner Tracker) *recordingTracker {
	return &recordingTracker{Tracker: inner}
}

func (r *recordingTracker) Start(c grid.Coord) {
	r.trail = append(r.trail, c)
	r.Tracker.Start(c)
}

func (r *recordingTracker) Record(c grid.Coord) {
	r.trail = append(r.trail, c)
	r.Tracker.Record(c)
}

func TestBudgetZeroFinishesImmediately(t *testing.T) {
	g := grid.New(5, 5)
	dirs, _ := NewDirectionSet(Conn4)
	tr := NewTraceTracker(0, 0)

	engine, err := NewEngine(g, dirs, NewSource(1), PolicyAvoid, 0, grid.C(2, 2), tr)
	if err != nil {
		t.Fatalf("NewEngine() failed: %v", err)
	}

	rep := engine.Run()
	if rep.Reason != ReasonBudget {
		t.Errorf("Expected budget-exhausted, got %v", rep.Reason)
	}
	if rep.Steps != 0 {
		t.Errorf("Expected 0 steps, got %d", rep.Steps)
	}
	if rep.Start != rep.End {
		t.Errorf("With budget 0 start and end must coincide: %v vs %v", rep.Start, rep.End)
	}
}

func TestInvalidStartRejected(t *testing.T) {
	g := grid.New(3, 3)
	g.SetBlocked(grid.C(1, 1))
	dirs, _ := NewDirectionSet(Conn4)

	if _, err := NewEngine(g, dirs, NewSource(1), PolicyRevisit, 10, grid.C(1, 1), NewCountTracker()); err == nil {
		t.Error("Masked start cell must be a configuration error")
	}
	if _, err := NewEngine(g, dirs, NewSource(1), PolicyRevisit, 10, grid.C(5, 5), NewCountTracker()); err == nil {
		t.Error("Out-of-bounds start cell must be a configuration error")
	}
	if _, err := NewEngine(g, dirs, NewSource(1), PolicyRevisit, -1, grid.C(0, 0), NewCountTracker()); err == nil {
		t.Error("Negative budget must be a configuration error")
	}
}

func TestEveryStepLandsOnValidCell(t *testing.T) {
	g := grid.New(7, 7)
	// Punch some holes in the walkable area.
	for _, c := range []grid.Coord{grid.C(2, 2), grid.C(2, 3), grid.C(4, 4), grid.C(0, 6)} {
		g.SetBlocked(c)
	}
	dirs, _ := NewDirectionSet(Conn8)
	rec := newRecording(NewCountTracker())

	engine, err := NewEngine(g, dirs, NewSource(99), PolicyRevisit, 500, grid.C(3, 3), rec)
	if err != nil {
		t.Fatalf("NewEngine() failed: %v", err)
	}
	engine.Run()

	for i, c := range rec.trail {
		if !g.IsValid(c) {
			t.Fatalf("Position %d of trail is invalid: %v", i, c)
		}
	}
}

func TestBoundaryContainment(t *testing.T) {
	const n = 6
	g := grid.New(n, n)
	dirs, _ := NewDirectionSet(Conn8)
	rec := newRecording(NewCountTracker())

	engine, err := NewEngine(g, dirs, NewSource(2024), PolicyRevisit, 2000, grid.C(0, 0), rec)
	if err != nil {
		t.Fatalf("NewEngine() failed: %v", err)
	}
	engine.Run()

	for _, c := range rec.trail {
		if c.Row < 0 || c.Row >= n || c.Col < 0 || c.Col >= n {
			t.Fatalf("Walker escaped the grid at %v", c)
		}
	}
}

func TestAvoidModeNeverRevisits(t *testing.T) {
	g := grid.New(8, 8)
	dirs, _ := NewDirectionSet(Conn4)
	rec := newRecording(NewTraceTracker(0, 0))

	engine, err := NewEngine(g, dirs, NewSource(5), PolicyAvoid, 1000, grid.C(4, 4), rec)
	if err != nil {
		t.Fatalf("NewEngine() failed: %v", err)
	}
	engine.Run()

	seen := make(map[grid.Coord]bool)
	for _, c := range rec.trail {
		if seen[c] {
			t.Fatalf("Cell %v entered twice under the avoid policy", c)
		}
		seen[c] = true
	}
}

func TestTrappedOnStrip(t *testing.T) {
	// 1x3 valid strip, start in the middle, avoid policy: after two
	// steps every neighbor is visited or off-grid, so the walker must
	// trap long before the budget runs out.
	g := grid.New(3, 1)
	dirs, _ := NewDirectionSet(Conn8)
	tr := NewTraceTracker(0, 0)

	engine, err := NewEngine(g, dirs, NewSource(11), PolicyAvoid, 100, grid.C(0, 1), tr)
	if err != nil {
		t.Fatalf("NewEngine() failed: %v", err)
	}

	rep := engine.Run()
	if rep.Reason != ReasonTrapped {
		t.Errorf("Expected trapped, got %v", rep.Reason)
	}
	if rep.Steps != 2 {
		t.Errorf("Expected exactly 2 steps before trapping, got %d", rep.Steps)
	}
	if rep.Start != grid.C(0, 1) {
		t.Errorf("Start should be the middle cell, got %v", rep.Start)
	}
	if rep.End == rep.Start {
		t.Error("After two moves on a strip the end cell must differ from the start")
	}
}

func TestTrappedBeforeAnyMove(t *testing.T) {
	// A start cell with zero valid neighbors traps immediately with
	// start == end and zero steps; this is an outcome, not an error.
	g := grid.New(1, 1)
	dirs, _ := NewDirectionSet(Conn8)
	tr := NewTraceTracker(0, 0)

	engine, err := NewEngine(g, dirs, NewSource(3), PolicyAvoid, 50, grid.C(0, 0), tr)
	if err != nil {
		t.Fatalf("NewEngine() failed: %v", err)
	}

	rep := engine.Run()
	if rep.Reason != ReasonTrapped {
		t.Errorf("Expected trapped, got %v", rep.Reason)
	}
	if rep.Steps != 0 {
		t.Errorf("Expected 0 steps, got %d", rep.Steps)
	}
	if rep.Start != rep.End {
		t.Error("Start and end must coincide when trapped before moving")
	}
}

func TestStepOffsets4Connected(t *testing.T) {
	g := grid.New(5, 5)
	dirs, _ := NewDirectionSet(Conn4)
	rec := newRecording(NewCountTracker())

	engine, err := NewEngine(g, dirs, NewSource(77), PolicyRevisit, 1000, grid.C(2, 2), rec)
	if err != nil {
		t.Fatalf("NewEngine() failed: %v", err)
	}
	engine.Run()

	for i := 1; i < len(rec.trail); i++ {
		dr := rec.trail[i].Row - rec.trail[i-1].Row
		dc := rec.trail[i].Col - rec.trail[i-1].Col
		if abs(dr)+abs(dc) != 1 {
			t.Fatalf("4-connected walk made a diagonal or null move: %v -> %v", rec.trail[i-1], rec.trail[i])
		}
	}
}

func TestStepOffsets8Connected(t *testing.T) {
	g := grid.New(5, 5)
	dirs, _ := NewDirectionSet(Conn8)
	rec := newRecording(NewCountTracker())

	engine, err := NewEngine(g, dirs, NewSource(77), PolicyRevisit, 1000, grid.C(2, 2), rec)
	if err != nil {
		t.Fatalf("NewEngine() failed: %v", err)
	}
	engine.Run()

	diagonal := false
	for i := 1; i < len(rec.trail); i++ {
		dr := rec.trail[i].Row - rec.trail[i-1].Row
		dc := rec.trail[i].Col - rec.trail[i-1].Col
		if abs(dr) > 1 || abs(dc) > 1 || (dr == 0 && dc == 0) {
			t.Fatalf("Illegal move: %v -> %v", rec.trail[i-1], rec.trail[i])
		}
		if dr != 0 && dc != 0 {
			diagonal = true
		}
	}
	if !diagonal {
		t.Error("An 8-connected walk of 1000 steps should include diagonal moves")
	}
}

func TestStepAfterDoneIsNoop(t *testing.T) {
	g := grid.New(2, 2)
	dirs, _ := NewDirectionSet(Conn4)

	engine, err := NewEngine(g, dirs, NewSource(1), PolicyRevisit, 3, grid.C(0, 0), NewCountTracker())
	if err != nil {
		t.Fatalf("NewEngine() failed: %v", err)
	}
	engine.Run()

	if !engine.Done() {
		t.Fatal("Engine should be done after Run")
	}
	steps := engine.Steps()
	if engine.Step() {
		t.Error("Step after termination should report done")
	}
	if engine.Steps() != steps {
		t.Error("Step after termination must not advance")
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
