package lines

// Snapshot captures the complete engine state for determinism testing and
// rendering.
type Snapshot struct {
	Board      string // Board.String() form
	Pending    []PendingBall
	Score      int
	Turns      int
	State      State
	Tool       Tool
	Hammers    int
	Swaps      int
	Selected   *Position
	SwapSource *Position
}

// Snapshot returns the current engine snapshot.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Board:   e.board.String(),
		Pending: e.Pending(),
		Score:   e.score,
		Turns:   e.turns,
		State:   e.State(),
		Tool:    e.tool,
		Hammers: e.hammers,
		Swaps:   e.swaps,
	}
	if e.hasSelection {
		p := e.selected
		s.Selected = &p
	}
	if e.hasSwapSource {
		p := e.swapSource
		s.SwapSource = &p
	}
	return s
}
