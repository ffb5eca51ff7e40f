package lines

// Axis is one of the four directions a line can run along.
type Axis int

const (
	AxisHorizontal   Axis = iota // left to right
	AxisVertical                 // top to bottom
	AxisDiagonal                 // down-right
	AxisAntiDiagonal             // down-left
)

// axisSteps holds the (row, col) step of each axis.
var axisSteps = [4][2]int{
	AxisHorizontal:   {0, 1},
	AxisVertical:     {1, 0},
	AxisDiagonal:     {1, 1},
	AxisAntiDiagonal: {1, -1},
}

// String returns a human-readable axis name.
func (a Axis) String() string {
	switch a {
	case AxisHorizontal:
		return "horizontal"
	case AxisVertical:
		return "vertical"
	case AxisDiagonal:
		return "diagonal"
	case AxisAntiDiagonal:
		return "anti-diagonal"
	default:
		return "unknown"
	}
}

// Line is a maximal run of same-coloured balls along one axis.
type Line struct {
	Axis  Axis
	Color Color
	Cells []Position
}

// Len returns the number of balls in the line.
func (l Line) Len() int {
	return len(l.Cells)
}

// ScanResult is the outcome of evaluating a board.
type ScanResult struct {
	Lines []Line     // qualifying lines in scan order
	Cells []Position // unique cells to clear, row-major
	Score int        // points for this pass, multi-line bonus applied
}

// Matched reports whether any line qualified.
func (r ScanResult) Matched() bool {
	return len(r.Lines) > 0
}

// Scoring holds line length and point rules.
type Scoring struct {
	MinLength           int // shortest run that clears
	Base                int // points for a run of exactly MinLength
	PerExtraBall        int // points for each ball beyond MinLength
	MultiLineMultiplier int // applied to the pass total when 2+ lines clear
}

// DefaultScoring returns the classic rules: 5 in a row for 10 points,
// +5 per extra ball, x5 when two or more lines clear together.
func DefaultScoring() Scoring {
	return Scoring{
		MinLength:           5,
		Base:                10,
		PerExtraBall:        5,
		MultiLineMultiplier: 5,
	}
}

// LineScore returns the points for a single line of the given length.
func (s Scoring) LineScore(length int) int {
	if length < s.MinLength {
		return 0
	}
	return s.Base + (length-s.MinLength)*s.PerExtraBall
}

// Evaluate scans the board with the default scoring rules.
func Evaluate(b *Board) ScanResult {
	return DefaultScoring().Evaluate(b)
}

// Evaluate scans the whole board for every maximal run of at least
// MinLength balls along each axis. A cell on two crossing lines appears
// once in Cells but counts toward both line scores.
func (s Scoring) Evaluate(b *Board) ScanResult {
	var res ScanResult

	size := b.Size()
	marked := make([]bool, size*size)

	for axis, step := range axisSteps {
		for row := range size {
			for col := range size {
				start := Position{Row: row, Col: col}
				color := b.ColorAt(start)
				if color == Empty {
					continue
				}

				// Only trace from the first ball of a run.
				prev := start.Add(-step[0], -step[1])
				if b.InBounds(prev) && b.ColorAt(prev) == color {
					continue
				}

				run := traceRun(b, start, step, color)
				if len(run) < s.MinLength {
					continue
				}

				res.Lines = append(res.Lines, Line{
					Axis:  Axis(axis),
					Color: color,
					Cells: run,
				})
				res.Score += s.LineScore(len(run))
				for _, p := range run {
					marked[p.Row*size+p.Col] = true
				}
			}
		}
	}

	if len(res.Lines) >= 2 && s.MultiLineMultiplier > 1 {
		res.Score *= s.MultiLineMultiplier
	}

	for i, hit := range marked {
		if hit {
			res.Cells = append(res.Cells, Position{Row: i / size, Col: i % size})
		}
	}

	return res
}

// traceRun collects consecutive cells of color from start along step.
func traceRun(b *Board, start Position, step [2]int, color Color) []Position {
	var run []Position
	for p := start; b.InBounds(p) && b.ColorAt(p) == color; p = p.Add(step[0], step[1]) {
		run = append(run, p)
	}
	return run
}

// RunLength returns the length of the same-colour run through p along
// axis, or 0 if p is empty.
func RunLength(b *Board, p Position, axis Axis) int {
	color := b.ColorAt(p)
	if color == Empty {
		return 0
	}
	step := axisSteps[axis]
	n := 1
	for q := p.Add(step[0], step[1]); b.InBounds(q) && b.ColorAt(q) == color; q = q.Add(step[0], step[1]) {
		n++
	}
	for q := p.Add(-step[0], -step[1]); b.InBounds(q) && b.ColorAt(q) == color; q = q.Add(-step[0], -step[1]) {
		n++
	}
	return n
}
