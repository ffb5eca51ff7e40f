package line98

import (
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/line98/internal/config"
	"github.com/vovakirdan/line98/internal/core"
	"github.com/vovakirdan/line98/internal/lines"
	"github.com/vovakirdan/line98/internal/registry"
)

func newGame(t *testing.T, mode Mode, seed int64) *Game {
	t.Helper()
	g := NewWithConfig(mode, config.DefaultLine98Config())
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: seed})
	return g
}

func loadRows(g *Game, rows ...string) {
	g.engine.Load(lines.ParseBoard(rows...), nil)
}

// stripedRows builds a board where no two neighbouring cells share a
// colour on any axis, so nothing can clear.
func stripedRows(size int, holes ...lines.Position) []string {
	const letters = "RGBYP"
	empty := make(map[lines.Position]bool, len(holes))
	for _, h := range holes {
		empty[h] = true
	}
	rows := make([]string, size)
	for r := range size {
		var sb strings.Builder
		for c := range size {
			if empty[lines.Pos(r, c)] {
				sb.WriteByte('.')
				continue
			}
			sb.WriteByte(letters[(r*2+c)%5])
		}
		rows[r] = sb.String()
	}
	return rows
}

func press(g *Game, a core.Action) core.StepResult {
	in := core.NewInputFrame()
	in.Set(a)
	return g.Step(in)
}

func click(g *Game, row, col int) core.StepResult {
	o := g.layout().grid.CellOrigin(row, col)
	in := core.NewInputFrame()
	in.SetClick(o.X+2, o.Y)
	return g.Step(in)
}

// settle steps empty frames until the replay finishes.
func settle(t *testing.T, g *Game) {
	t.Helper()
	for i := 0; i < 1000; i++ {
		if !g.State().Busy {
			return
		}
		g.Step(core.NewInputFrame())
	}
	t.Fatal("replay did not finish within 1000 ticks")
}

func TestRegisteredModes(t *testing.T) {
	tests := []struct {
		id    string
		title string
	}{
		{"line98", "Line 98"},
		{"line98_classic", "Line 98 (Classic)"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if !registry.Exists(tt.id) {
				t.Fatalf("mode %q not registered", tt.id)
			}
			g, err := registry.Create(tt.id)
			if err != nil {
				t.Fatalf("Create(%q) failed: %v", tt.id, err)
			}
			if g.ID() != tt.id {
				t.Errorf("ID() = %q, want %q", g.ID(), tt.id)
			}
			if g.Title() != tt.title {
				t.Errorf("Title() = %q, want %q", g.Title(), tt.title)
			}
			if _, ok := g.(registry.StoreAware); !ok {
				t.Error("game should implement registry.StoreAware")
			}
		})
	}
}

func TestResetDealsOpeningBoard(t *testing.T) {
	g := newGame(t, ModeTools, 1)
	snap := g.Snapshot()

	balls := len(snap.Engine.Board) - strings.Count(snap.Engine.Board, ".") - strings.Count(snap.Engine.Board, "\n")
	if balls != 5 {
		t.Errorf("opening board has %d balls, want 5", balls)
	}
	if len(snap.Engine.Pending) != 3 {
		t.Errorf("pending = %d, want 3", len(snap.Engine.Pending))
	}
	if snap.Cursor != lines.Pos(4, 4) {
		t.Errorf("cursor = %v, want centre", snap.Cursor)
	}
	if snap.Engine.Hammers != 10 || snap.Engine.Swaps != 10 {
		t.Errorf("tools = %d/%d, want 10/10", snap.Engine.Hammers, snap.Engine.Swaps)
	}
}

func TestClassicHasNoTools(t *testing.T) {
	g := newGame(t, ModeClassic, 1)

	press(g, core.ActionHammer)
	snap := g.Snapshot()
	if snap.Engine.Tool != lines.ToolNone {
		t.Errorf("tool = %v, want none in classic mode", snap.Engine.Tool)
	}
	if snap.Engine.Hammers != 0 || snap.Engine.Swaps != 0 {
		t.Errorf("tools = %d/%d, want 0/0", snap.Engine.Hammers, snap.Engine.Swaps)
	}
}

func TestCursorClamps(t *testing.T) {
	g := newGame(t, ModeTools, 1)

	for range 10 {
		press(g, core.ActionUp)
		press(g, core.ActionLeft)
	}
	if g.cursor != lines.Pos(0, 0) {
		t.Errorf("cursor = %v, want (0,0)", g.cursor)
	}

	for range 20 {
		press(g, core.ActionDown)
		press(g, core.ActionRight)
	}
	if g.cursor != lines.Pos(8, 8) {
		t.Errorf("cursor = %v, want (8,8)", g.cursor)
	}
}

func TestClickOutsideBoardIgnored(t *testing.T) {
	g := newGame(t, ModeTools, 1)

	in := core.NewInputFrame()
	in.SetClick(0, 0)
	g.Step(in)

	if g.cursor != lines.Pos(4, 4) {
		t.Errorf("cursor = %v, want unchanged", g.cursor)
	}
}

func TestMoveIsReplayedBeforeInputResumes(t *testing.T) {
	g := newGame(t, ModeTools, 1)
	loadRows(g, stripedRows(9, lines.Pos(0, 1), lines.Pos(0, 2), lines.Pos(5, 5))...)

	click(g, 0, 0)
	if p := g.Snapshot().Engine.Selected; p == nil || *p != lines.Pos(0, 0) {
		t.Fatalf("Selected = %v, want (0,0)", p)
	}

	res := click(g, 0, 2)
	if !res.State.Busy {
		t.Fatal("State().Busy = false right after a move, want true")
	}
	if g.Turns() != 1 {
		t.Errorf("Turns() = %d, want 1", g.Turns())
	}

	// Clicks during the replay are dropped.
	click(g, 1, 1)
	settle(t, g)

	snap := g.Snapshot()
	if snap.Engine.Selected != nil {
		t.Errorf("Selected = %v after replay, want none", *snap.Engine.Selected)
	}
	if snap.Replaying {
		t.Error("Replaying = true after settle")
	}
	if got := g.engine.Board().Get(lines.Pos(0, 2)).Color; got != lines.Red {
		t.Errorf("destination colour = %v, want red", got)
	}
	if len(snap.Engine.Pending) != 3 {
		t.Errorf("pending after move = %d, want 3", len(snap.Engine.Pending))
	}
}

func TestKeyboardSelect(t *testing.T) {
	g := newGame(t, ModeTools, 1)
	loadRows(g, stripedRows(9, lines.Pos(4, 5))...)

	press(g, core.ActionSelect) // ball at (4,4)
	press(g, core.ActionRight)
	press(g, core.ActionSelect) // drop at (4,5)

	if !g.State().Busy {
		t.Fatal("move via keyboard did not start a replay")
	}
	settle(t, g)
	if g.Turns() != 1 {
		t.Errorf("Turns() = %d, want 1", g.Turns())
	}
}

func TestClearUpdatesHighScore(t *testing.T) {
	store := core.NewMemoryStore()
	g := NewWithConfig(ModeTools, config.DefaultLine98Config())
	g.SetStore(store)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 3})

	loadRows(g,
		"RRRR.....",
		"....R....",
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
	)

	click(g, 1, 4)
	click(g, 0, 4)
	if g.lastPoints != 10 {
		t.Errorf("lastPoints = %d, want 10", g.lastPoints)
	}
	settle(t, g)

	st := g.State()
	if st.Score != 10 {
		t.Errorf("Score = %d, want 10", st.Score)
	}
	if st.HighScore != 10 {
		t.Errorf("HighScore = %d, want 10", st.HighScore)
	}
	if v, ok, _ := store.GetValue(HighScoreKey); !ok || v != "10" {
		t.Errorf("stored high score = %q (ok=%v), want \"10\"", v, ok)
	}
	if !g.engine.Board().Get(lines.Pos(0, 0)).Empty() {
		t.Error("cleared row still has balls")
	}
}

func TestHighScoreLoading(t *testing.T) {
	tests := []struct {
		name  string
		value string
		set   bool
		want  int
	}{
		{"missing", "", false, 0},
		{"valid", "250", true, 250},
		{"corrupt", "abc", true, 0},
		{"negative", "-5", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := core.NewMemoryStore()
			if tt.set {
				store.SetValue(HighScoreKey, tt.value)
			}
			g := NewWithConfig(ModeTools, config.DefaultLine98Config())
			g.SetStore(store)
			g.Reset(core.DefaultConfig())

			if got := g.State().HighScore; got != tt.want {
				t.Errorf("HighScore = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestHammerRemovesBall(t *testing.T) {
	g := newGame(t, ModeTools, 1)
	loadRows(g, stripedRows(9, lines.Pos(8, 8))...)

	press(g, core.ActionHammer)
	if g.Snapshot().Engine.Tool != lines.ToolHammer {
		t.Fatal("hammer not armed")
	}
	press(g, core.ActionSelect)
	settle(t, g)

	snap := g.Snapshot()
	if !g.engine.Board().Get(lines.Pos(4, 4)).Empty() {
		t.Error("hammered cell still holds a ball")
	}
	if snap.Engine.Hammers != 9 {
		t.Errorf("Hammers = %d, want 9", snap.Engine.Hammers)
	}
	if snap.Engine.Tool != lines.ToolNone {
		t.Errorf("Tool = %v after use, want none", snap.Engine.Tool)
	}
}

func TestExhaustedToolShowsNotice(t *testing.T) {
	cfg := config.DefaultLine98Config()
	cfg.Tools.Swaps = 0
	g := NewWithConfig(ModeTools, cfg)
	g.Reset(core.DefaultConfig())

	press(g, core.ActionSwap)
	if g.Snapshot().Engine.Tool != lines.ToolNone {
		t.Error("exhausted swap should not arm")
	}
	if g.noticeTicks == 0 || !strings.Contains(g.notice, "swap") {
		t.Errorf("notice = %q (%d ticks), want a swap notice", g.notice, g.noticeTicks)
	}
}

func TestCancelDropsSelectionAndTool(t *testing.T) {
	g := newGame(t, ModeTools, 1)
	loadRows(g, stripedRows(9, lines.Pos(8, 8))...)

	press(g, core.ActionSelect)
	press(g, core.ActionCancel)
	if g.Snapshot().Engine.Selected != nil {
		t.Error("selection survived cancel")
	}

	press(g, core.ActionSwap)
	press(g, core.ActionCancel)
	if g.Snapshot().Engine.Tool != lines.ToolNone {
		t.Error("tool survived cancel")
	}
}

func TestGameOverReportedAfterReplay(t *testing.T) {
	g := newGame(t, ModeTools, 1)
	g.engine.Load(
		lines.ParseBoard(stripedRows(9, lines.Pos(0, 0))...),
		[]lines.PendingBall{{Color: lines.Pink, Pos: lines.Pos(0, 1)}},
	)

	click(g, 0, 1)
	click(g, 0, 0)

	if g.State().GameOver {
		t.Error("GameOver reported while the final turn is replayed")
	}
	settle(t, g)
	if !g.State().GameOver {
		t.Fatal("GameOver = false once the board is full")
	}

	// Input after game over is ignored.
	before := g.Snapshot().Engine
	press(g, core.ActionHammer)
	if after := g.Snapshot().Engine; !reflect.DeepEqual(before, after) {
		t.Errorf("engine changed after game over: %+v -> %+v", before, after)
	}
}

func TestDeterminism(t *testing.T) {
	script := []core.Action{
		core.ActionSelect, core.ActionUp, core.ActionSelect,
		core.ActionLeft, core.ActionSelect, core.ActionDown, core.ActionSelect,
	}

	run := func() Snapshot {
		g := newGame(t, ModeTools, 99)
		for _, a := range script {
			press(g, a)
			settle(t, g)
		}
		return g.Snapshot()
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed produced different snapshots:\n%+v\n%+v", a, b)
	}
}

func TestRender(t *testing.T) {
	g := newGame(t, ModeTools, 1)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	for _, want := range []string{"Line 98", "Score: 0", "Next:", "hammer 10", "┌"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}

	l := g.layout()
	o := l.grid.CellOrigin(4, 4)
	if screen.Get(o.X+1, o.Y) != '[' || screen.Get(o.X+3, o.Y) != ']' {
		t.Error("cursor brackets not drawn around the centre cell")
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := NewWithConfig(ModeTools, config.DefaultLine98Config())
	g.Reset(core.RuntimeConfig{ScreenW: 30, ScreenH: 10, TickRate: 30, Seed: 1})

	screen := core.NewScreen(30, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("expected too-small message")
	}

	g.Resize(80, 24)
	screen.Resize(80, 24)
	g.Render(screen)
	if strings.Contains(screen.String(), "Window too small") {
		t.Error("message should disappear after resize")
	}
}
