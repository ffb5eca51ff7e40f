package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/line98/internal/core"
	_ "github.com/vovakirdan/line98/internal/games/line98"
	"github.com/vovakirdan/line98/internal/leaderboard"
)

func menuUpdate(t *testing.T, m MenuModel, msg tea.Msg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	mm, ok := next.(MenuModel)
	if !ok {
		t.Fatalf("Update() returned %T, want MenuModel", next)
	}
	return mm
}

func TestMenuListsModes(t *testing.T) {
	m := NewMenuModel(nil, testConfig())
	if len(m.items) != 2 {
		t.Fatalf("menu has %d items, want 2", len(m.items))
	}
	if m.items[0].GameID != "line98" || m.items[1].GameID != "line98_classic" {
		t.Errorf("items = %+v", m.items)
	}
}

func TestMenuResult(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyMsg
		want MenuResult
	}{
		{
			name: "select second",
			keys: []tea.KeyMsg{{Type: tea.KeyDown}, {Type: tea.KeyEnter}},
			want: MenuResult{GameID: "line98_classic"},
		},
		{
			name: "cursor stops at the top",
			keys: []tea.KeyMsg{{Type: tea.KeyUp}, {Type: tea.KeyUp}, {Type: tea.KeyEnter}},
			want: MenuResult{GameID: "line98"},
		},
		{
			name: "scoreboard",
			keys: []tea.KeyMsg{{Type: tea.KeyTab}},
			want: MenuResult{WantsScoreboard: true},
		},
		{
			name: "quit",
			keys: []tea.KeyMsg{{Type: tea.KeyRunes, Runes: []rune("q")}},
			want: MenuResult{Quit: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMenuModel(nil, testConfig())
			for _, k := range tt.keys {
				m = menuUpdate(t, m, k)
			}
			got := m.result()
			got.Config = core.RuntimeConfig{}
			if got != tt.want {
				t.Errorf("result() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMenuTracksResize(t *testing.T) {
	m := NewMenuModel(nil, testConfig())
	m = menuUpdate(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if cfg := m.Config(); cfg.ScreenW != 100 || cfg.ScreenH != 40 {
		t.Errorf("Config() = %dx%d, want 100x40", cfg.ScreenW, cfg.ScreenH)
	}
}

func TestScoreboardLeaderboardTab(t *testing.T) {
	kv := leaderboard.NewKV(core.NewMemoryStore(), leaderboard.DefaultSize)
	if _, err := kv.Submit(context.Background(), leaderboard.NewEntry("Ann", 90, time.Now())); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	m := NewScoreboardModel(kv, Options{}, 80, 24)
	if m.tab != 0 {
		t.Fatalf("tab = %d, want the leaderboard", m.tab)
	}
	cmd := m.Init()
	if cmd == nil {
		t.Fatal("Init() should fetch the leaderboard")
	}

	next, _ := m.Update(cmd())
	m = next.(ScoreboardModel)
	if got := len(m.table.Rows()); got != 1 {
		t.Fatalf("rows = %d, want 1", got)
	}

	pushed := LeaderboardUpdateMsg{
		{Name: "Bo", Score: 200, Timestamp: 1},
		{Name: "Ann", Score: 90, Timestamp: 2},
	}
	next, _ = m.Update(pushed)
	m = next.(ScoreboardModel)
	rows := m.table.Rows()
	if len(rows) != 2 || rows[0][1] != "Bo" {
		t.Errorf("rows after push = %v, want Bo first", rows)
	}
}

func TestScoreboardWithoutService(t *testing.T) {
	m := NewScoreboardModel(nil, Options{}, 80, 24)
	if m.tab != 1 {
		t.Fatalf("tab = %d, want the first mode", m.tab)
	}
	if m.Init() != nil {
		t.Error("Init() should not fetch without a service")
	}

	// Going back from the first mode skips the leaderboard tab.
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(ScoreboardModel)
	if m.tab != 2 {
		t.Errorf("tab = %d, want 2", m.tab)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(ScoreboardModel)
	if !m.IsGoingBack() {
		t.Error("Esc should go back")
	}
}

func TestSessionFlow(t *testing.T) {
	kv := leaderboard.NewKV(core.NewMemoryStore(), leaderboard.DefaultSize)
	s := NewSessionModel(Options{Leaderboard: kv}, testConfig())

	step := func(msg tea.Msg) tea.Cmd {
		t.Helper()
		next, cmd := s.Update(msg)
		s = next.(SessionModel)
		return cmd
	}

	step(tea.KeyMsg{Type: tea.KeyTab})
	if s.screen != screenScores {
		t.Fatalf("screen = %v, want scores", s.screen)
	}
	step(tea.KeyMsg{Type: tea.KeyEsc})
	if s.screen != screenMenu {
		t.Fatalf("screen = %v, want menu", s.screen)
	}

	if cmd := step(tea.KeyMsg{Type: tea.KeyEnter}); cmd == nil {
		t.Error("starting a game should schedule a tick")
	}
	if s.screen != screenGame || s.game == nil {
		t.Fatalf("screen = %v, want game", s.screen)
	}
	if !s.game.embedded {
		t.Error("session games should be embedded")
	}
	if s.quitting {
		t.Error("selecting a mode must not end the session")
	}

	step(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if !s.quitting {
		t.Error("q in game should end the session")
	}
}
