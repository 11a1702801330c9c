package grid

import "testing"

func TestNewAllValid(t *testing.T) {
	g := New(4, 3)

	if g.W != 4 || g.H != 3 {
		t.Fatalf("Expected 4x3 grid, got %dx%d", g.W, g.H)
	}
	if g.ValidCount() != 12 {
		t.Errorf("Expected 12 valid cells, got %d", g.ValidCount())
	}
	for row := 0; row < 3; row++ {
		for col := 0; col < 4; col++ {
			if !g.IsValid(C(row, col)) {
				t.Errorf("Cell (%d,%d) should be valid", row, col)
			}
			if g.Get(C(row, col)) != 0 {
				t.Errorf("Cell (%d,%d) should start at 0", row, col)
			}
		}
	}
}

func TestBoundsAndMask(t *testing.T) {
	g := New(5, 5)
	g.SetBlocked(C(2, 2))

	if g.IsValid(C(2, 2)) {
		t.Error("Blocked cell should not be valid")
	}
	if !g.InBounds(C(2, 2)) {
		t.Error("Blocked cell is still in bounds")
	}

	outside := []Coord{C(-1, 0), C(0, -1), C(5, 0), C(0, 5)}
	for _, c := range outside {
		if g.InBounds(c) {
			t.Errorf("Coord (%d,%d) should be out of bounds", c.Row, c.Col)
		}
		if g.IsValid(c) {
			t.Errorf("Coord (%d,%d) should be invalid", c.Row, c.Col)
		}
	}
}

func TestNewMasked(t *testing.T) {
	open := []Coord{C(0, 0), C(0, 1), C(1, 1), C(9, 9)} // last one out of bounds
	g := NewMasked(3, 2, open)

	if g.ValidCount() != 3 {
		t.Errorf("Expected 3 valid cells, got %d", g.ValidCount())
	}
	if g.IsValid(C(1, 0)) {
		t.Error("Cell (1,0) was not opened and should be invalid")
	}
}

func TestAccumulateAndSet(t *testing.T) {
	g := New(3, 3)

	if err := g.Accumulate(C(1, 1), 1); err != nil {
		t.Fatalf("Accumulate() failed: %v", err)
	}
	if err := g.Accumulate(C(1, 1), 2); err != nil {
		t.Fatalf("Accumulate() failed: %v", err)
	}
	if got := g.Get(C(1, 1)); got != 3 {
		t.Errorf("Expected accumulated value 3, got %d", got)
	}

	if err := g.Set(C(0, 0), 7); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if got := g.Get(C(0, 0)); got != 7 {
		t.Errorf("Expected value 7, got %d", got)
	}
}

func TestAccumulateInvalidCell(t *testing.T) {
	g := New(3, 3)
	g.SetBlocked(C(0, 1))

	if err := g.Accumulate(C(0, 1), 1); err == nil {
		t.Error("Accumulate on masked cell should fail")
	}
	if err := g.Accumulate(C(-1, 0), 1); err == nil {
		t.Error("Accumulate out of bounds should fail")
	}
	if err := g.Set(C(3, 3), 1); err == nil {
		t.Error("Set out of bounds should fail")
	}
}

func TestValidCoordsOrder(t *testing.T) {
	g := New(2, 2)
	g.SetBlocked(C(0, 1))

	coords := g.ValidCoords()
	want := []Coord{C(0, 0), C(1, 0), C(1, 1)}
	if len(coords) != len(want) {
		t.Fatalf("Expected %d coords, got %d", len(want), len(coords))
	}
	for i, c := range want {
		if coords[i] != c {
			t.Errorf("coords[%d] = %v, want %v", i, coords[i], c)
		}
	}
}

func TestCloneAndBlank(t *testing.T) {
	g := New(2, 2)
	g.SetBlocked(C(1, 1))
	g.Accumulate(C(0, 0), 5)

	clone := g.Clone()
	if !g.Equal(clone) {
		t.Error("Clone should equal the original")
	}
	clone.Accumulate(C(0, 0), 1)
	if g.Get(C(0, 0)) != 5 {
		t.Error("Mutating a clone must not affect the original")
	}

	blank := g.Blank()
	if blank.Sum() != 0 {
		t.Errorf("Blank grid should sum to 0, got %d", blank.Sum())
	}
	if blank.IsValid(C(1, 1)) {
		t.Error("Blank grid should keep the mask")
	}
}

func TestSumAndMax(t *testing.T) {
	g := New(3, 1)
	g.Set(C(0, 0), 2)
	g.Set(C(0, 1), 5)
	g.Set(C(0, 2), 1)

	if g.Sum() != 8 {
		t.Errorf("Expected sum 8, got %d", g.Sum())
	}
	if g.Max() != 5 {
		t.Errorf("Expected max 5, got %d", g.Max())
	}
}
