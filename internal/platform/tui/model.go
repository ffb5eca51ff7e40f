package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/line98/internal/core"
	"github.com/vovakirdan/line98/internal/leaderboard"
	"github.com/vovakirdan/line98/internal/registry"
	"github.com/vovakirdan/line98/internal/storage"
)

// Options wires the collaborators of a game session.
type Options struct {
	// Store keeps score history and preferences. May be nil.
	Store *storage.Store

	// Leaderboard receives named scores at game over. Nil disables the
	// name entry.
	Leaderboard leaderboard.Service

	// LeaderboardSize is the number of entries shown.
	LeaderboardSize int

	// Timeout bounds each leaderboard request.
	Timeout time.Duration

	// Logger receives session events. Nil discards them.
	Logger *log.Logger
}

func (o Options) withDefaults() Options {
	if o.LeaderboardSize <= 0 {
		o.LeaderboardSize = leaderboard.DefaultSize
	}
	if o.Timeout <= 0 {
		o.Timeout = 5 * time.Second
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}

// prefs returns the preference store injected into games.
func (o Options) prefs() core.PersistenceStore {
	if o.Store != nil {
		return o.Store
	}
	return core.NewMemoryStore()
}

// Model is the Bubble Tea model for one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	opts       Options
	prefs      core.PersistenceStore
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	help       help.Model
	theme      Theme

	showHelp   bool
	over       *gameOverPanel
	scoreSaved bool

	embedded   bool // hosted by a session; Esc at game over goes back
	quitting   bool
	backToMenu bool
}

// NewModel creates a Bubble Tea model for the given game.
func NewModel(game registry.Game, opts Options, cfg core.RuntimeConfig) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	opts = opts.withDefaults()
	prefs := opts.prefs()

	if sa, ok := game.(registry.StoreAware); ok {
		sa.SetStore(prefs)
	}

	h := help.New()
	h.ShowAll = true

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		prefs:      prefs,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		help:       h,
		theme:      loadTheme(prefs),
	}
}

// Init starts the game and the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.opts.Logger.Debug("game started", "mode", m.game.ID(), "seed", m.config.Seed)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.over == nil {
			m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case submitResultMsg, fetchResultMsg:
		if m.over == nil {
			return m, nil
		}
		if r, ok := msg.(submitResultMsg); ok && r.err != nil {
			m.opts.Logger.Warn("leaderboard submission failed", "error", r.err)
		}
		panel, cmd := m.over.Update(msg)
		m.over = &panel
		return m, cmd
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	// The name field takes every other key while it is focused.
	if m.over != nil && !m.over.Done() {
		panel, cmd := m.over.Update(msg)
		m.over = &panel
		return m, cmd
	}

	keys := m.keyMapper.Keys()
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	case key.Matches(msg, keys.Theme):
		m.theme = m.theme.Toggle()
		if err := m.prefs.SetValue(ThemeKey, m.theme.Name); err != nil {
			m.opts.Logger.Warn("could not save theme", "error", err)
		}
		return m, nil
	case msg.String() == "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	if m.gameState.GameOver {
		switch {
		case key.Matches(msg, keys.Restart):
			m.inputFrame.Set(core.ActionRestart)
		case m.embedded && (msg.Type == tea.KeyEsc || msg.String() == "b"):
			m.backToMenu = true
		}
		return m, nil
	}

	m.keyMapper.MapKeyToFrame(msg, &m.inputFrame)
	return m, nil
}

// handleResize keeps the running game and only relayouts it.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.help.Width = msg.Width

	if r, ok := m.game.(interface{ Resize(w, h int) }); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		return m.restart()
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	var cmd tea.Cmd
	if m.gameState.GameOver && !m.scoreSaved {
		m.scoreSaved = true
		cmd = m.onGameOver()
	}

	return m, tea.Batch(cmd, tickCmd(m.config.TickRate))
}

// onGameOver records the score and opens the leaderboard flow.
func (m *Model) onGameOver() tea.Cmd {
	score := m.gameState.Score
	m.opts.Logger.Info("game over", "mode", m.game.ID(), "score", score)

	if m.opts.Store != nil && score > 0 {
		turns := 0
		if t, ok := m.game.(interface{ Turns() int }); ok {
			turns = t.Turns()
		}
		if _, err := m.opts.Store.SaveScore(m.game.ID(), score, turns); err != nil {
			m.opts.Logger.Warn("could not save score", "error", err)
		}
	}

	if m.opts.Leaderboard == nil {
		return nil
	}
	panel := newGameOverPanel(m.opts.Leaderboard, m.opts.LeaderboardSize, m.opts.Timeout, score)
	if score <= 0 {
		// Nothing to submit; go straight to the table.
		panel.stage = stageSubmitting
		m.over = &panel
		return fetchCmd(m.opts.Leaderboard, m.opts.LeaderboardSize, m.opts.Timeout)
	}
	m.over = &panel
	return textinput.Blink
}

func (m Model) restart() (tea.Model, tea.Cmd) {
	m.config.Seed = time.Now().UnixNano()
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.scoreSaved = false
	m.over = nil
	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a text file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".line98", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	if err := os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("could not save screenshot", "error", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.showHelp {
		body := m.theme.Title.Render("Controls") + "\n\n" + m.help.View(m.keyMapper.Keys())
		return m.place(m.theme.Panel.Render(body))
	}

	if m.over != nil {
		return m.place(m.over.View(m.theme, m.embedded))
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen, m.theme)
}

func (m Model) place(s string) string {
	return lipgloss.Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center, s)
}

// IsQuitting returns true if the user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to return to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a Bubble Tea program for a single game.
func Run(game registry.Game, opts Options, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewModel(game, opts, cfg),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
