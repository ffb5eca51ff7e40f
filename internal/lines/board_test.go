package lines

import "testing"

func TestNewBoardIsEmpty(t *testing.T) {
	b := NewBoard(DefaultSize)

	if b.Size() != 9 {
		t.Fatalf("Size() = %d, want 9", b.Size())
	}
	if got := len(b.EmptyPositions()); got != 81 {
		t.Errorf("EmptyPositions() len = %d, want 81", got)
	}
	if b.Full() {
		t.Error("new board should not be full")
	}
}

func TestBoardGetSet(t *testing.T) {
	b := NewBoard(9)
	p := Pos(3, 4)

	b.Set(p, Cell{Color: Blue, ID: "ball-1"})

	got := b.Get(p)
	if got.Color != Blue || got.ID != "ball-1" {
		t.Errorf("Get(%v) = %+v, want Blue/ball-1", p, got)
	}

	// Out of bounds reads are empty and writes are ignored
	b.Set(Pos(9, 0), Cell{Color: Red})
	if !b.Get(Pos(9, 0)).Empty() {
		t.Error("out-of-bounds Get should be empty")
	}
	if b.EmptyCount() != 80 {
		t.Errorf("EmptyCount() = %d, want 80", b.EmptyCount())
	}
}

func TestEmptyPositionsRowMajor(t *testing.T) {
	b := ParseBoard(
		"R.R",
		".R.",
		"RR.",
	)

	want := []Position{Pos(0, 1), Pos(1, 0), Pos(1, 2), Pos(2, 2)}
	got := b.EmptyPositions()

	if len(got) != len(want) {
		t.Fatalf("EmptyPositions() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("EmptyPositions()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestBoardCloneIsIndependent(t *testing.T) {
	b := NewBoard(9)
	b.Set(Pos(0, 0), Cell{Color: Red})

	clone := b.Clone()
	clone.Set(Pos(0, 0), Cell{Color: Green})
	clone.Set(Pos(1, 1), Cell{Color: Blue})

	if b.ColorAt(Pos(0, 0)) != Red {
		t.Error("mutating clone changed original cell")
	}
	if !b.IsEmpty(Pos(1, 1)) {
		t.Error("mutating clone filled original cell")
	}
}

func TestParseBoardRoundTrip(t *testing.T) {
	rows := []string{
		"RGBYP",
		"COK..",
		".....",
		"....R",
		"B....",
	}
	b := ParseBoard(rows...)

	want := "RGBYP\nCOK..\n.....\n....R\nB...."
	if b.String() != want {
		t.Errorf("String() =\n%s\nwant\n%s", b.String(), want)
	}
}

func TestPaletteOf(t *testing.T) {
	tests := []struct {
		n, want int
	}{
		{0, 1},
		{5, 5},
		{8, 8},
		{20, 8},
	}
	for _, tc := range tests {
		if got := len(PaletteOf(tc.n)); got != tc.want {
			t.Errorf("PaletteOf(%d) len = %d, want %d", tc.n, got, tc.want)
		}
	}
}
