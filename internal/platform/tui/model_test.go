package tui

import (
	"context"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/line98/internal/core"
	"github.com/vovakirdan/line98/internal/leaderboard"
)

// stubGame ends whenever the test flips over.
type stubGame struct {
	score  int
	over   bool
	resets int
	last   core.InputFrame
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.over = false
	g.score = 0
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.last = in.Clone()
	return core.StepResult{State: g.State()}
}

func (g *stubGame) Render(dst *core.Screen) {
	dst.DrawText(0, 0, fmt.Sprintf("score %d", g.score))
}

func (g *stubGame) State() core.GameState {
	return core.GameState{Score: g.score, GameOver: g.over}
}

// flakyService fails the first failures submissions.
type flakyService struct {
	leaderboard.Service
	failures int
}

func (f *flakyService) Submit(ctx context.Context, e leaderboard.Entry) ([]leaderboard.Entry, error) {
	if f.failures > 0 {
		f.failures--
		return nil, fmt.Errorf("%w: connection refused", leaderboard.ErrSubmit)
	}
	return f.Service.Submit(ctx, e)
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 1}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, want Model", next)
	}
	return nm, cmd
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = update(t, m, TickMsg(time.Now()))
	return m
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

// endGame finishes the stub with score and runs one tick.
func endGame(t *testing.T, m Model, g *stubGame, score int) Model {
	t.Helper()
	g.score = score
	g.over = true
	return tick(t, m)
}

func newTestModel(svc leaderboard.Service) (Model, *stubGame) {
	g := &stubGame{}
	m := NewModel(g, Options{Leaderboard: svc}, testConfig())
	m.Init()
	return m, g
}

func TestModelForwardsInput(t *testing.T) {
	m, g := newTestModel(nil)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("h")})
	m, _ = update(t, m, tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = tick(t, m)

	if !g.last.Has(core.ActionHammer) {
		t.Error("game should receive Hammer")
	}
	if g.last.Click == nil || *g.last.Click != (core.Point{X: 3, Y: 4}) {
		t.Errorf("Click = %v, want (3,4)", g.last.Click)
	}

	m = tick(t, m)
	if !g.last.Empty() {
		t.Error("input frame should be cleared after a tick")
	}
}

func TestModelGameOverSubmit(t *testing.T) {
	svc := leaderboard.NewKV(core.NewMemoryStore(), leaderboard.DefaultSize)
	m, g := newTestModel(svc)

	m = endGame(t, m, g, 120)
	if m.over == nil || m.over.stage != stageNameEntry {
		t.Fatal("game over should open the name entry")
	}

	// Keys go to the name field, not the game.
	m = typeText(t, m, "Ann")
	if got := m.over.input.Value(); got != "Ann" {
		t.Fatalf("name = %q, want %q", got, "Ann")
	}
	if m.IsQuitting() {
		t.Fatal("typing must not trigger game bindings")
	}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("Enter should start the submission")
	}
	if m.over.stage != stageSubmitting {
		t.Errorf("stage = %v, want submitting", m.over.stage)
	}

	m, _ = update(t, m, cmd())
	if !m.over.Done() {
		t.Fatal("panel should show results")
	}
	if len(m.over.entries) != 1 || m.over.entries[0].Name != "Ann" || m.over.entries[0].Score != 120 {
		t.Errorf("entries = %+v, want Ann 120", m.over.entries)
	}
}

func TestModelGameOverEmptyName(t *testing.T) {
	svc := leaderboard.NewKV(core.NewMemoryStore(), leaderboard.DefaultSize)
	m, g := newTestModel(svc)
	m = endGame(t, m, g, 50)

	m = typeText(t, m, "   ")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("blank name should not be submitted")
	}
	if m.over.stage != stageNameEntry {
		t.Errorf("stage = %v, want name entry", m.over.stage)
	}
	if m.over.errMsg == "" {
		t.Error("blank name should show an error")
	}
}

func TestModelGameOverRetry(t *testing.T) {
	kv := leaderboard.NewKV(core.NewMemoryStore(), leaderboard.DefaultSize)
	svc := &flakyService{Service: kv, failures: 1}
	m, g := newTestModel(svc)
	m = endGame(t, m, g, 80)

	m = typeText(t, m, "Bo")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, cmd())

	if m.over.stage != stageNameEntry || !m.over.retry {
		t.Fatalf("failed submit should offer a retry, stage=%v retry=%v", m.over.stage, m.over.retry)
	}
	if got := m.over.input.Value(); got != "Bo" {
		t.Errorf("name after failure = %q, want it kept", got)
	}

	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, cmd())
	if !m.over.Done() || m.over.retry {
		t.Fatal("retry should succeed")
	}
	if len(m.over.entries) != 1 || m.over.entries[0].Name != "Bo" {
		t.Errorf("entries = %+v, want Bo", m.over.entries)
	}
}

func TestModelGameOverSkip(t *testing.T) {
	kv := leaderboard.NewKV(core.NewMemoryStore(), leaderboard.DefaultSize)
	if _, err := kv.Submit(context.Background(), leaderboard.NewEntry("Cy", 300, time.Now())); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	m, g := newTestModel(kv)
	m = endGame(t, m, g, 10)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("Esc should fetch the board")
	}
	m, _ = update(t, m, cmd())
	if !m.over.Done() {
		t.Fatal("panel should show results")
	}
	if len(m.over.entries) != 1 || m.over.entries[0].Name != "Cy" {
		t.Errorf("entries = %+v, want only Cy", m.over.entries)
	}
}

func TestModelGameOverZeroScore(t *testing.T) {
	svc := leaderboard.NewKV(core.NewMemoryStore(), leaderboard.DefaultSize)
	m, g := newTestModel(svc)
	m = endGame(t, m, g, 0)

	if m.over == nil || m.over.stage != stageSubmitting {
		t.Fatal("zero score should skip the name entry")
	}
	m, _ = update(t, m, fetchResultMsg{})
	if !m.over.Done() {
		t.Error("panel should show results")
	}
}

func TestModelWithoutLeaderboard(t *testing.T) {
	m, g := newTestModel(nil)
	m = endGame(t, m, g, 40)
	if m.over != nil {
		t.Error("no panel without a leaderboard")
	}
}

func TestModelRestart(t *testing.T) {
	svc := leaderboard.NewKV(core.NewMemoryStore(), leaderboard.DefaultSize)
	m, g := newTestModel(svc)
	m = endGame(t, m, g, 0)
	m, _ = update(t, m, fetchResultMsg{})

	resets := g.resets
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	m = tick(t, m)

	if g.resets != resets+1 {
		t.Errorf("resets = %d, want %d", g.resets, resets+1)
	}
	if m.over != nil || m.gameState.GameOver {
		t.Error("restart should clear the game-over state")
	}
}

func TestModelBackToMenu(t *testing.T) {
	svc := leaderboard.NewKV(core.NewMemoryStore(), leaderboard.DefaultSize)
	m, g := newTestModel(svc)
	m.embedded = true
	m = endGame(t, m, g, 0)
	m, _ = update(t, m, fetchResultMsg{})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("Esc on the results should go back when embedded")
	}
}

func TestModelThemeToggle(t *testing.T) {
	m, _ := newTestModel(nil)
	if m.theme.Name != ThemeDark {
		t.Fatalf("initial theme = %q, want dark", m.theme.Name)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
	if m.theme.Name != ThemeLight {
		t.Errorf("theme = %q, want light", m.theme.Name)
	}
	v, ok, err := m.prefs.GetValue(ThemeKey)
	if err != nil || !ok || v != ThemeLight {
		t.Errorf("stored theme = %q (ok=%v, err=%v), want light", v, ok, err)
	}
}

func TestModelHelpAndQuit(t *testing.T) {
	m, _ := newTestModel(nil)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	if !m.showHelp {
		t.Error("? should show help")
	}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if !m.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("View() should be empty after quit")
	}
}
