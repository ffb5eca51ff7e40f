// Package core provides the types shared between games and the platform:
// the screen buffer, input frames, runtime config and the persistence
// contract. It has no external dependencies (especially no Bubble Tea) so
// game logic stays pure and testable.
package core

// Point is a screen coordinate in character cells.
type Point struct {
	X, Y int
}

// Rect represents an axis-aligned area on the screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate just past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Grid maps a rows x cols board of fixed-size cells onto the screen.
// It is used both for drawing and for turning mouse clicks into cells.
type Grid struct {
	Origin Point // top-left of cell (0, 0)
	CellW  int
	CellH  int
	Rows   int
	Cols   int
}

// Bounds returns the screen area covered by the grid cells.
func (g Grid) Bounds() Rect {
	return NewRect(g.Origin.X, g.Origin.Y, g.Cols*g.CellW, g.Rows*g.CellH)
}

// CellOrigin returns the top-left screen coordinate of a cell.
func (g Grid) CellOrigin(row, col int) Point {
	return Point{X: g.Origin.X + col*g.CellW, Y: g.Origin.Y + row*g.CellH}
}

// CellAt returns the cell under the screen coordinate (x, y).
func (g Grid) CellAt(x, y int) (row, col int, ok bool) {
	if g.CellW <= 0 || g.CellH <= 0 || !g.Bounds().Contains(x, y) {
		return 0, 0, false
	}
	return (y - g.Origin.Y) / g.CellH, (x - g.Origin.X) / g.CellW, true
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
