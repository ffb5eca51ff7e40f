// Package lines implements the Line 98 board-state engine: the grid,
// path search, line scanning and the turn state machine.
// It has no terminal or storage dependencies so every rule can be tested
// against plain boards.
package lines

import "strings"

// DefaultSize is the classic Line 98 board dimension.
const DefaultSize = 9

// Position addresses a cell by 0-indexed row and column.
type Position struct {
	Row int
	Col int
}

// Pos is shorthand for Position{Row: row, Col: col}.
func Pos(row, col int) Position {
	return Position{Row: row, Col: col}
}

// Add returns the position offset by the given delta.
func (p Position) Add(dr, dc int) Position {
	return Position{Row: p.Row + dr, Col: p.Col + dc}
}

// Cell is the content of a single board square.
// ID is a stable per-ball token for presentation only; it never takes part
// in matching or scoring.
type Cell struct {
	Color Color
	ID    string
}

// Empty reports whether the cell holds no ball.
func (c Cell) Empty() bool {
	return c.Color == Empty
}

// Board is a fixed-size square grid of cells.
type Board struct {
	size  int
	cells []Cell
}

// NewBoard creates an empty size x size board.
func NewBoard(size int) *Board {
	if size <= 0 {
		size = DefaultSize
	}
	return &Board{
		size:  size,
		cells: make([]Cell, size*size),
	}
}

// Size returns the board dimension.
func (b *Board) Size() int {
	return b.size
}

// InBounds reports whether p lies on the board.
func (b *Board) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < b.size && p.Col >= 0 && p.Col < b.size
}

// Get returns the cell at p. Out-of-bounds positions read as empty.
func (b *Board) Get(p Position) Cell {
	if !b.InBounds(p) {
		return Cell{}
	}
	return b.cells[p.Row*b.size+p.Col]
}

// Set replaces the cell at p. Out-of-bounds writes are ignored.
func (b *Board) Set(p Position, c Cell) {
	if !b.InBounds(p) {
		return
	}
	b.cells[p.Row*b.size+p.Col] = c
}

// ColorAt returns the colour at p, or Empty.
func (b *Board) ColorAt(p Position) Color {
	return b.Get(p).Color
}

// IsEmpty reports whether p is on the board and holds no ball.
func (b *Board) IsEmpty(p Position) bool {
	return b.InBounds(p) && b.Get(p).Empty()
}

// Clear empties the cell at p, keeping nothing of the previous ball.
func (b *Board) Clear(p Position) {
	b.Set(p, Cell{})
}

// EmptyPositions returns every empty cell in row-major order.
func (b *Board) EmptyPositions() []Position {
	var out []Position
	for row := range b.size {
		for col := range b.size {
			if b.cells[row*b.size+col].Empty() {
				out = append(out, Position{Row: row, Col: col})
			}
		}
	}
	return out
}

// EmptyCount returns the number of empty cells.
func (b *Board) EmptyCount() int {
	n := 0
	for _, c := range b.cells {
		if c.Empty() {
			n++
		}
	}
	return n
}

// Full reports whether no empty cell remains.
func (b *Board) Full() bool {
	return b.EmptyCount() == 0
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	clone := &Board{
		size:  b.size,
		cells: make([]Cell, len(b.cells)),
	}
	copy(clone.cells, b.cells)
	return clone
}

// String renders the board as rows of colour letters ('.' for empty).
// Used by tests and debug output.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow(b.size*b.size + b.size)
	for row := range b.size {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := range b.size {
			sb.WriteByte(b.cells[row*b.size+col].Color.Letter())
		}
	}
	return sb.String()
}

// ParseBoard builds a board from rows of colour letters as produced by
// String. Unknown letters are treated as empty.
func ParseBoard(rows ...string) *Board {
	b := NewBoard(len(rows))
	for r, line := range rows {
		for c := 0; c < len(line) && c < b.size; c++ {
			b.Set(Position{Row: r, Col: c}, Cell{Color: ColorFromLetter(line[c])})
		}
	}
	return b
}
