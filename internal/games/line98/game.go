// Package line98 adapts the lines engine to the registry.Game interface:
// it maps cursor keys and mouse clicks onto board cells, replays each
// resolved turn on tick counters and draws the board into a core.Screen.
package line98

import (
	"strconv"

	"github.com/vovakirdan/line98/internal/config"
	"github.com/vovakirdan/line98/internal/core"
	"github.com/vovakirdan/line98/internal/lines"
	"github.com/vovakirdan/line98/internal/registry"
)

// Mode selects whether the limited-use tools are available.
type Mode int

const (
	ModeTools   Mode = iota // hammer and swap enabled
	ModeClassic             // path moves only
)

// HighScoreKey is the preference key holding the best score.
const HighScoreKey = "line98-highscore"

// noticeDuration is how long a HUD notice stays up, in ticks at 30 fps.
const noticeDuration = 60

var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	configOverride   *config.Line98Config
)

// SetConfigPath sets the custom config path used by Reset.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset selects a preset applied on top of the loaded
// config. Unknown names fall back to normal.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = config.DifficultyNormal
	}
	difficultyPreset = p
}

// SetConfig installs an already loaded config, bypassing the file search.
func SetConfig(cfg config.Line98Config) {
	configOverride = &cfg
}

func loadConfig() config.Line98Config {
	var cfg config.Line98Config
	if configOverride != nil {
		cfg = *configOverride
	} else {
		loaded, err := config.Load(configPath)
		if err != nil {
			loaded = config.DefaultLine98Config()
		}
		cfg = loaded
	}
	config.ApplyPreset(&cfg, difficultyPreset)
	return cfg
}

// Game implements registry.Game for Line 98.
type Game struct {
	mode  Mode
	cfg   config.Line98Config
	fixed bool // cfg was given to the constructor

	engine *lines.Engine
	store  core.PersistenceStore
	tick   uint64

	cursor    lines.Position
	replay    replay
	highScore int

	notice      string
	noticeTicks int
	lastPoints  int // shown as "+N" while a clear is replayed

	tickRate  int
	stepTicks int
	clearTick int

	screenW  int
	screenH  int
	tooSmall bool
}

// New creates a game with tools enabled.
func New() *Game {
	return &Game{mode: ModeTools}
}

// NewClassic creates a game without tools.
func NewClassic() *Game {
	return &Game{mode: ModeClassic}
}

// NewWithConfig creates a game that always uses cfg instead of loading one.
func NewWithConfig(mode Mode, cfg config.Line98Config) *Game {
	return &Game{mode: mode, cfg: cfg, fixed: true}
}

func init() {
	registry.Register("line98", func() registry.Game {
		return New()
	})
	registry.Register("line98_classic", func() registry.Game {
		return NewClassic()
	})
}

// ID returns the mode identifier.
func (g *Game) ID() string {
	if g.mode == ModeClassic {
		return "line98_classic"
	}
	return "line98"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeClassic {
		return "Line 98 (Classic)"
	}
	return "Line 98"
}

// SetStore implements registry.StoreAware.
func (g *Game) SetStore(store core.PersistenceStore) {
	g.store = store
	g.highScore = loadHighScore(store)
}

// loadHighScore reads the persisted best score. Missing or malformed
// values read as 0.
func loadHighScore(store core.PersistenceStore) int {
	if store == nil {
		return 0
	}
	raw, ok, err := store.GetValue(HighScoreKey)
	if err != nil || !ok {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// Reset starts a new game.
func (g *Game) Reset(rt core.RuntimeConfig) {
	if !g.fixed {
		g.cfg = loadConfig()
	}

	rules := g.cfg.EngineRules()
	if g.mode == ModeClassic {
		rules.Hammers = 0
		rules.Swaps = 0
	}

	g.engine = lines.NewEngine(rules, rt.Seed)
	g.engine.HoldForReplay(true)

	g.tick = 0
	g.replay = replay{}
	g.notice = ""
	g.noticeTicks = 0
	g.lastPoints = 0

	size := g.engine.Board().Size()
	g.cursor = lines.Pos(size/2, size/2)

	g.tickRate = rt.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}
	g.stepTicks = ticksFor(g.cfg.Timing.StepDelayMS, g.tickRate)
	g.clearTick = ticksFor(g.cfg.Timing.ClearDelayMS, g.tickRate)

	g.screenW = rt.ScreenW
	g.screenH = rt.ScreenH
	g.checkScreenSize()
}

// checkScreenSize compares the screen with the board layout.
func (g *Game) checkScreenSize() {
	l := g.layout()
	g.tooSmall = g.screenW < l.minW || g.screenH < l.minH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	if g.noticeTicks > 0 {
		g.noticeTicks--
	}

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	// Input is ignored while a turn is replayed.
	if g.replay.active() {
		if g.replay.advance() {
			g.settle()
		}
		return core.StepResult{State: g.State()}
	}

	if g.engine.Over() {
		return core.StepResult{State: g.State()}
	}

	g.handleInput(in)
	return core.StepResult{State: g.State()}
}

func (g *Game) handleInput(in core.InputFrame) {
	size := g.engine.Board().Size()

	switch {
	case in.Has(core.ActionUp):
		g.cursor.Row = core.Clamp(g.cursor.Row-1, 0, size-1)
	case in.Has(core.ActionDown):
		g.cursor.Row = core.Clamp(g.cursor.Row+1, 0, size-1)
	case in.Has(core.ActionLeft):
		g.cursor.Col = core.Clamp(g.cursor.Col-1, 0, size-1)
	case in.Has(core.ActionRight):
		g.cursor.Col = core.Clamp(g.cursor.Col+1, 0, size-1)
	}

	switch {
	case in.Has(core.ActionCancel):
		g.engine.ClearSelection()
		g.engine.CancelTool()
		return
	case in.Has(core.ActionHammer):
		g.armTool(lines.ToolHammer)
		return
	case in.Has(core.ActionSwap):
		g.armTool(lines.ToolSwap)
		return
	}

	if in.Click != nil {
		row, col, ok := g.layout().grid.CellAt(in.Click.X, in.Click.Y)
		if !ok {
			return
		}
		g.cursor = lines.Pos(row, col)
		g.apply(g.engine.Select(g.cursor))
		return
	}

	if in.Has(core.ActionSelect) {
		g.apply(g.engine.Select(g.cursor))
	}
}

func (g *Game) armTool(t lines.Tool) {
	if g.mode == ModeClassic {
		return
	}
	if !g.engine.ArmTool(t) {
		g.setNotice("No " + t.String() + " uses left")
	}
}

func (g *Game) setNotice(msg string) {
	g.notice = msg
	g.noticeTicks = noticeDuration
}

// apply starts the replay of a resolved turn.
func (g *Game) apply(events []lines.Event) {
	if len(events) == 0 {
		return
	}
	g.lastPoints = 0
	for _, ev := range events {
		if c, ok := ev.(lines.LinesCleared); ok {
			g.lastPoints += c.Points
		}
	}

	g.replay = newReplay(events, g.stepTicks, g.clearTick)
	if !g.replay.active() {
		g.settle()
	}
}

// settle ends the replay and records a new best score.
func (g *Game) settle() {
	g.replay = replay{}
	g.engine.Settle()

	if score := g.engine.Score(); score > g.highScore {
		g.highScore = score
		if g.store != nil {
			// A failed write only loses the persisted best.
			_ = g.store.SetValue(HighScoreKey, strconv.Itoa(score))
		}
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:     g.engine.Score(),
		HighScore: max(g.highScore, g.engine.Score()),
		GameOver:  g.engine.Over() && !g.replay.active(),
		Busy:      g.replay.active(),
	}
}

// Turns returns the number of completed path moves.
func (g *Game) Turns() int {
	return g.engine.Turns()
}

// Controls returns the control hints for the mode.
func (g *Game) Controls() string {
	if g.mode == ModeClassic {
		return "Arrows/Click: Move  Enter: Pick/Drop  Esc: Cancel  R: Restart  Q: Quit"
	}
	return "Arrows/Click: Move  Enter: Pick/Drop  H: Hammer  X: Swap  Esc: Cancel"
}
