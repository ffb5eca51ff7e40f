package lines

// Event describes one step of a resolved turn, in the order it happened.
// Boards carried by events are snapshots taken at that step, so a
// presentation layer can replay the turn without re-running any rule.
type Event interface {
	event()
}

// MoveApplied is emitted when a ball travels along a path.
type MoveApplied struct {
	From  Position
	To    Position
	Color Color
	Path  []Position // start and end included
	Board *Board     // after the move
}

func (MoveApplied) event() {}

// BallRemoved is emitted when the hammer destroys a ball.
type BallRemoved struct {
	Pos   Position
	Color Color
	Board *Board // after removal
}

func (BallRemoved) event() {}

// BallsSwapped is emitted when the swap tool exchanges two balls.
type BallsSwapped struct {
	A, B  Position
	Board *Board // after the swap
}

func (BallsSwapped) event() {}

// LinesCleared is emitted when one or more lines are removed.
type LinesCleared struct {
	Lines  []Line
	Cells  []Position
	Points int    // score delta for this pass
	Board  *Board // before the cells were emptied, for the clearing effect
}

func (LinesCleared) event() {}

// BallsSpawned is emitted when pending balls are committed.
type BallsSpawned struct {
	Balls []PendingBall // actual landing cells
	Board *Board        // after the spawn
}

func (BallsSpawned) event() {}

// PendingUpdated is emitted when a fresh forecast is generated.
type PendingUpdated struct {
	Pending []PendingBall
}

func (PendingUpdated) event() {}

// GameOver is emitted once when the board fills.
type GameOver struct {
	Score int
}

func (GameOver) event() {}
