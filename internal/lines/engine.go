package lines

import "math/rand"

// State is the externally visible phase of the turn state machine.
type State int

const (
	StateIdle      State = iota // waiting for a ball to be picked
	StateSelected               // a source ball (or swap source) is held
	StateResolving              // a turn is being replayed, input ignored
	StateGameOver               // board full, absorbing
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSelected:
		return "selected"
	case StateResolving:
		return "resolving"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Tool is a limited-use action that bypasses path movement.
type Tool int

const (
	ToolNone   Tool = iota
	ToolHammer      // remove one ball
	ToolSwap        // exchange two balls
)

// String returns a human-readable tool name.
func (t Tool) String() string {
	switch t {
	case ToolHammer:
		return "hammer"
	case ToolSwap:
		return "swap"
	default:
		return "none"
	}
}

// Rules configures an engine.
type Rules struct {
	Size            int
	Colors          int // palette prefix length
	InitialBalls    int
	SpawnCount      int
	Scoring         Scoring
	Hammers         int
	Swaps           int
	SpawnAfterClear bool // spawn even when the move itself cleared a line
}

// DefaultRules returns the classic 9x9, 8-colour rules with 10 uses of
// each tool.
func DefaultRules() Rules {
	return Rules{
		Size:         DefaultSize,
		Colors:       len(Palette),
		InitialBalls: 5,
		SpawnCount:   DefaultSpawnCount,
		Scoring:      DefaultScoring(),
		Hammers:      10,
		Swaps:        10,
	}
}

// Engine runs the Line 98 turn state machine over a single board.
// It is not safe for concurrent use; hosts drive it from one goroutine.
type Engine struct {
	rules   Rules
	rng     *rand.Rand
	spawner *Spawner

	board   *Board
	pending []PendingBall
	score   int
	turns   int

	selected      Position
	hasSelection  bool
	tool          Tool
	swapSource    Position
	hasSwapSource bool
	hammers       int
	swaps         int

	hold bool // keep busy after each turn until Settle
	busy bool
	over bool
}

// NewEngine creates an engine and deals the opening board.
func NewEngine(rules Rules, seed int64) *Engine {
	if rules.Size <= 0 {
		rules.Size = DefaultSize
	}
	if rules.SpawnCount <= 0 {
		rules.SpawnCount = DefaultSpawnCount
	}
	if rules.Scoring.MinLength <= 0 {
		rules.Scoring = DefaultScoring()
	}
	e := &Engine{rules: rules}
	e.Reset(seed)
	return e
}

// Reset starts a new game with the given seed.
func (e *Engine) Reset(seed int64) {
	e.rng = rand.New(rand.NewSource(seed))
	e.spawner = NewSpawner(e.rng, PaletteOf(e.rules.Colors))

	e.board = NewBoard(e.rules.Size)
	e.spawner.Scatter(e.board, e.rules.InitialBalls)
	e.pending = e.spawner.GeneratePending(e.board, e.rules.SpawnCount)

	e.score = 0
	e.turns = 0
	e.hasSelection = false
	e.tool = ToolNone
	e.hasSwapSource = false
	e.hammers = e.rules.Hammers
	e.swaps = e.rules.Swaps
	e.busy = false
	e.over = false
}

// Load replaces the board and forecast, keeping score and tool counters.
// Used for puzzles and tests.
func (e *Engine) Load(b *Board, pending []PendingBall) {
	e.board = b.Clone()
	e.pending = append([]PendingBall(nil), pending...)
	e.hasSelection = false
	e.hasSwapSource = false
	e.tool = ToolNone
	e.busy = false
	e.over = e.board.Full()
}

// HoldForReplay makes the engine stay busy after every resolved turn
// until Settle is called. Hosts that animate turns enable it.
func (e *Engine) HoldForReplay(hold bool) {
	e.hold = hold
	if !hold {
		e.busy = false
	}
}

// Settle ends the replay of the last turn and accepts input again.
func (e *Engine) Settle() {
	e.busy = false
}

// Busy reports whether a turn is still being replayed.
func (e *Engine) Busy() bool {
	return e.busy
}

// Select handles a click on p. Depending on the armed tool and current
// selection it picks a ball, moves the held ball, hammers or swaps.
// It returns the events of the resolved turn, or nil when the input was
// rejected or only changed the selection.
func (e *Engine) Select(p Position) []Event {
	if e.over || e.busy || !e.board.InBounds(p) {
		return nil
	}

	switch e.tool {
	case ToolHammer:
		return e.hammer(p)
	case ToolSwap:
		return e.swap(p)
	}

	if !e.board.Get(p).Empty() {
		if e.hasSelection && e.selected == p {
			e.hasSelection = false
		} else {
			e.selected = p
			e.hasSelection = true
		}
		return nil
	}

	if !e.hasSelection {
		return nil
	}

	path, ok := FindPath(e.board, e.selected, p)
	if !ok {
		// Selection persists until cleared or a move succeeds.
		return nil
	}
	return e.move(path)
}

// Move moves the ball at from to to if a path exists, ignoring the
// current selection.
func (e *Engine) Move(from, to Position) []Event {
	if e.over || e.busy || e.board.Get(from).Empty() {
		return nil
	}
	path, ok := FindPath(e.board, from, to)
	if !ok {
		return nil
	}
	return e.move(path)
}

// ClearSelection drops the held ball, if any.
func (e *Engine) ClearSelection() {
	e.hasSelection = false
}

// ArmTool toggles a tool. Arming drops any ball selection. It returns
// false when the tool is exhausted or the engine is busy or over.
func (e *Engine) ArmTool(t Tool) bool {
	if e.over || e.busy {
		return false
	}
	if t == ToolNone || t == e.tool {
		e.CancelTool()
		return true
	}
	if e.ToolUses(t) <= 0 {
		return false
	}
	e.tool = t
	e.hasSelection = false
	e.hasSwapSource = false
	return true
}

// CancelTool disarms the active tool.
func (e *Engine) CancelTool() {
	e.tool = ToolNone
	e.hasSwapSource = false
}

func (e *Engine) move(path []Position) []Event {
	from, to := path[0], path[len(path)-1]
	ball := e.board.Get(from)
	e.board.Clear(from)
	e.board.Set(to, ball)
	e.hasSelection = false
	e.turns++

	events := []Event{MoveApplied{
		From:  from,
		To:    to,
		Color: ball.Color,
		Path:  path,
		Board: e.board.Clone(),
	}}

	if cleared, ok := e.clearLines(); ok {
		events = append(events, cleared)
		if !e.rules.SpawnAfterClear {
			return e.finish(events)
		}
	}

	events = e.spawn(events)
	return e.finish(events)
}

func (e *Engine) hammer(p Position) []Event {
	cell := e.board.Get(p)
	if cell.Empty() || e.hammers <= 0 {
		return nil
	}

	e.board.Clear(p)
	e.hammers--
	e.tool = ToolNone

	events := []Event{BallRemoved{
		Pos:   p,
		Color: cell.Color,
		Board: e.board.Clone(),
	}}
	if cleared, ok := e.clearLines(); ok {
		events = append(events, cleared)
	}
	return e.finish(events)
}

func (e *Engine) swap(p Position) []Event {
	if e.board.Get(p).Empty() || e.swaps <= 0 {
		return nil
	}
	if !e.hasSwapSource {
		e.swapSource = p
		e.hasSwapSource = true
		return nil
	}
	if e.swapSource == p {
		e.hasSwapSource = false
		return nil
	}

	src := e.swapSource
	a, b := e.board.Get(src), e.board.Get(p)
	e.board.Set(src, b)
	e.board.Set(p, a)
	e.swaps--
	e.tool = ToolNone
	e.hasSwapSource = false

	events := []Event{BallsSwapped{
		A:     src,
		B:     p,
		Board: e.board.Clone(),
	}}
	if cleared, ok := e.clearLines(); ok {
		events = append(events, cleared)
	}
	return e.finish(events)
}

// clearLines scans the board, empties every matched cell and adds the
// pass score.
func (e *Engine) clearLines() (LinesCleared, bool) {
	res := e.rules.Scoring.Evaluate(e.board)
	if !res.Matched() {
		return LinesCleared{}, false
	}

	ev := LinesCleared{
		Lines:  res.Lines,
		Cells:  res.Cells,
		Points: res.Score,
		Board:  e.board.Clone(),
	}
	for _, p := range res.Cells {
		e.board.Clear(p)
	}
	e.score += res.Score
	return ev, true
}

// spawn commits the forecast, clears any line the new balls complete and
// forecasts the next batch.
func (e *Engine) spawn(events []Event) []Event {
	placed := e.spawner.Commit(e.board, e.pending)
	e.pending = nil
	events = append(events, BallsSpawned{
		Balls: placed,
		Board: e.board.Clone(),
	})

	if cleared, ok := e.clearLines(); ok {
		events = append(events, cleared)
	}

	if e.board.Full() {
		return events
	}

	e.pending = e.spawner.GeneratePending(e.board, e.rules.SpawnCount)
	events = append(events, PendingUpdated{
		Pending: append([]PendingBall(nil), e.pending...),
	})
	return events
}

// finish applies the terminal check and the replay hold.
func (e *Engine) finish(events []Event) []Event {
	if !e.over && e.board.Full() {
		e.over = true
		e.hasSelection = false
		e.CancelTool()
		events = append(events, GameOver{Score: e.score})
	}
	if e.hold {
		e.busy = true
	}
	return events
}

// State returns the current state machine phase.
func (e *Engine) State() State {
	switch {
	case e.busy:
		return StateResolving
	case e.over:
		return StateGameOver
	case e.hasSelection || e.hasSwapSource:
		return StateSelected
	default:
		return StateIdle
	}
}

// Board returns a copy of the current board.
func (e *Engine) Board() *Board {
	return e.board.Clone()
}

// Pending returns a copy of the current forecast.
func (e *Engine) Pending() []PendingBall {
	return append([]PendingBall(nil), e.pending...)
}

// Score returns the accumulated score.
func (e *Engine) Score() int {
	return e.score
}

// Turns returns the number of completed path moves.
func (e *Engine) Turns() int {
	return e.turns
}

// Over reports whether the game has ended.
func (e *Engine) Over() bool {
	return e.over
}

// Selected returns the held ball position, if any.
func (e *Engine) Selected() (Position, bool) {
	return e.selected, e.hasSelection
}

// SwapSource returns the first ball picked for a swap, if any.
func (e *Engine) SwapSource() (Position, bool) {
	return e.swapSource, e.hasSwapSource
}

// ActiveTool returns the armed tool.
func (e *Engine) ActiveTool() Tool {
	return e.tool
}

// ToolUses returns the remaining uses of a tool.
func (e *Engine) ToolUses(t Tool) int {
	switch t {
	case ToolHammer:
		return e.hammers
	case ToolSwap:
		return e.swaps
	default:
		return 0
	}
}

// Rules returns the rules the engine was created with.
func (e *Engine) Rules() Rules {
	return e.rules
}
