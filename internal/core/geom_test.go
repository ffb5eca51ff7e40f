package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside right", 35, 15, false},
		{"outside top", 15, 5, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestGridCellAt(t *testing.T) {
	g := Grid{Origin: Point{X: 4, Y: 2}, CellW: 4, CellH: 2, Rows: 9, Cols: 9}

	tests := []struct {
		name     string
		x, y     int
		row, col int
		ok       bool
	}{
		{"first cell origin", 4, 2, 0, 0, true},
		{"first cell far corner", 7, 3, 0, 0, true},
		{"second column", 8, 2, 0, 1, true},
		{"second row", 4, 4, 1, 0, true},
		{"last cell", 39, 19, 8, 8, true},
		{"left of grid", 3, 2, 0, 0, false},
		{"above grid", 4, 1, 0, 0, false},
		{"right of grid", 40, 2, 0, 0, false},
		{"below grid", 4, 20, 0, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			row, col, ok := g.CellAt(tc.x, tc.y)
			if ok != tc.ok {
				t.Fatalf("CellAt(%d, %d) ok = %v, expected %v", tc.x, tc.y, ok, tc.ok)
			}
			if ok && (row != tc.row || col != tc.col) {
				t.Errorf("CellAt(%d, %d) = (%d, %d), expected (%d, %d)", tc.x, tc.y, row, col, tc.row, tc.col)
			}
		})
	}
}

func TestGridCellOriginRoundTrip(t *testing.T) {
	g := Grid{Origin: Point{X: 1, Y: 3}, CellW: 3, CellH: 1, Rows: 9, Cols: 9}

	for row := range 9 {
		for col := range 9 {
			p := g.CellOrigin(row, col)
			r, c, ok := g.CellAt(p.X, p.Y)
			if !ok || r != row || c != col {
				t.Errorf("CellAt(CellOrigin(%d, %d)) = (%d, %d, %v)", row, col, r, c, ok)
			}
		}
	}

	if b := g.Bounds(); b.W != 27 || b.H != 9 {
		t.Errorf("Bounds() = %+v, expected 27x9", b)
	}
}

func TestGridZeroCellSize(t *testing.T) {
	var g Grid
	if _, _, ok := g.CellAt(0, 0); ok {
		t.Error("zero grid should not map any point")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestMinMax(t *testing.T) {
	if Min(5, 10) != 5 || Min(10, 5) != 5 {
		t.Error("Min should return the smaller value")
	}
	if Max(5, 10) != 10 || Max(10, 5) != 10 {
		t.Error("Max should return the larger value")
	}
}
