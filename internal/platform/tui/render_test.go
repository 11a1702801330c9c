package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/gridwalk/internal/grid"
	"github.com/vovakirdan/gridwalk/internal/walk"
)

func TestHeatmapOneLinePerRow(t *testing.T) {
	g := grid.New(4, 3)
	out := Heatmap(g, nil)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
}

func TestHeatmapGlyphs(t *testing.T) {
	g := grid.New(3, 1)
	g.SetBlocked(grid.C(0, 0))
	if err := g.Set(grid.C(0, 1), 5); err != nil {
		t.Fatalf("set: %v", err)
	}

	out := Heatmap(g, nil)
	if !strings.Contains(out, cellBlocked) {
		t.Error("masked cell should render as blocked glyph")
	}
	if !strings.Contains(out, cellFilled) {
		t.Error("visited cell should render as filled glyph")
	}
	if !strings.Contains(out, cellEmpty) {
		t.Error("untouched cell should render as empty glyph")
	}
}

func TestHeatmapWalkerGlyph(t *testing.T) {
	g := grid.New(2, 2)
	pos := grid.C(1, 1)
	out := Heatmap(g, &pos)
	if !strings.Contains(out, cellWalker) {
		t.Error("walker cell should render as walker glyph")
	}
}

func TestRampStyleBounds(t *testing.T) {
	// Every value from 1 to max must map onto a ramp entry.
	for max := 1; max <= 100; max *= 10 {
		for v := 1; v <= max; v++ {
			rampStyle(v, max)
		}
	}
	rampStyle(1, 0)
}

func TestLegendEmptyForZeroMax(t *testing.T) {
	if Legend(0) != "" {
		t.Error("legend should be empty when nothing was visited")
	}
	if Legend(7) == "" {
		t.Error("legend should render for a positive maximum")
	}
}

func TestNewWatchModelRejectsBadConfig(t *testing.T) {
	g := grid.New(3, 3)
	_, err := NewWatchModel(WatchConfig{
		Mask:   g,
		Params: walk.Params{Steps: -1, Connectivity: walk.Conn4},
	})
	if err == nil {
		t.Fatal("expected error for negative step budget")
	}
}

func TestWatchModelStepsToCompletion(t *testing.T) {
	g := grid.New(5, 5)
	m, err := NewWatchModel(WatchConfig{
		Mask:   g,
		Params: walk.Params{Steps: 10, Connectivity: walk.Conn4, Seed: 7},
		Batch:  100,
	})
	if err != nil {
		t.Fatalf("new model: %v", err)
	}

	next, _ := m.handleTick()
	wm, ok := next.(WatchModel)
	if !ok {
		t.Fatalf("unexpected model type %T", next)
	}
	if !wm.engine.Done() {
		t.Error("engine should be done after a batch larger than the budget")
	}
	if wm.Err() != nil {
		t.Errorf("unexpected error: %v", wm.Err())
	}
	if wm.View() == "" {
		t.Error("view should render after completion")
	}
}
