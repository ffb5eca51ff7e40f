package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/line98/internal/leaderboard"
	"github.com/vovakirdan/line98/internal/registry"
	"github.com/vovakirdan/line98/internal/storage"
)

const maxHistory = 20 // personal scores listed per mode

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Refresh key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.PrevTab, k.Refresh, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab, k.PrevTab},
		{k.Refresh, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// LeaderboardUpdateMsg delivers a pushed leaderboard list.
type LeaderboardUpdateMsg []leaderboard.Entry

// Watcher streams leaderboard updates, e.g. *leaderboard.Remote.
type Watcher interface {
	Watch(ctx context.Context, fn func([]leaderboard.Entry)) error
}

// ScoreboardModel shows the named leaderboard on the first tab and the
// local score history of each mode on the following tabs.
type ScoreboardModel struct {
	svc     leaderboard.Service
	size    int
	timeout time.Duration
	store   *storage.Store
	modes   []registry.GameInfo

	tab     int // 0 is the leaderboard, i > 0 is modes[i-1]
	entries []leaderboard.Entry
	history []storage.ScoreEntry
	errMsg  string

	table  table.Model
	help   help.Model
	keys   ScoreboardKeyMap
	theme  Theme
	width  int
	height int

	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard. svc may be nil when no
// leaderboard backend is configured.
func NewScoreboardModel(svc leaderboard.Service, opts Options, width, height int) ScoreboardModel {
	opts = opts.withDefaults()

	m := ScoreboardModel{
		svc:     svc,
		size:    opts.LeaderboardSize,
		timeout: opts.Timeout,
		store:   opts.Store,
		modes:   registry.List(),
		help:    help.New(),
		keys:    DefaultScoreboardKeyMap(),
		theme:   loadTheme(opts.prefs()),
		width:   width,
		height:  height,
	}
	if svc == nil {
		m.tab = 1
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m *ScoreboardModel) tabCount() int {
	return len(m.modes) + 1
}

func (m *ScoreboardModel) createTable() table.Model {
	var columns []table.Column
	if m.tab == 0 {
		columns = []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Name", Width: leaderboard.MaxNameLength + 1},
			{Title: "Score", Width: 10},
			{Title: "Date", Width: 14},
		}
	} else {
		columns = []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Score", Width: 10},
			{Title: "Turns", Width: 8},
			{Title: "Date", Width: 14},
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, min(m.height-10, maxHistory+1))),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// load refreshes the local tabs synchronously. The leaderboard tab is
// loaded by Init or Refresh through a command.
func (m *ScoreboardModel) load() {
	m.errMsg = ""
	if m.tab == 0 {
		m.updateRows()
		return
	}

	m.history = nil
	if m.store != nil {
		scores, err := m.store.TopScores(m.modes[m.tab-1].ID, maxHistory)
		if err != nil {
			m.errMsg = err.Error()
		} else {
			m.history = scores
		}
	}
	m.updateRows()
}

func (m *ScoreboardModel) updateRows() {
	var rows []table.Row
	if m.tab == 0 {
		rows = make([]table.Row, len(m.entries))
		for i, e := range m.entries {
			rows[i] = table.Row{
				fmt.Sprintf("#%d", i+1),
				e.Name,
				fmt.Sprintf("%d", e.Score),
				e.Time().Local().Format("Jan 02 15:04"),
			}
		}
	} else {
		rows = make([]table.Row, len(m.history))
		for i, s := range m.history {
			rows[i] = table.Row{
				fmt.Sprintf("#%d", i+1),
				fmt.Sprintf("%d", s.Score),
				fmt.Sprintf("%d", s.Turns),
				s.CreatedAt.Local().Format("Jan 02 15:04"),
			}
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m ScoreboardModel) refreshCmd() tea.Cmd {
	if m.svc == nil {
		return nil
	}
	return fetchCmd(m.svc, m.size, m.timeout)
}

// Init fetches the leaderboard.
func (m ScoreboardModel) Init() tea.Cmd {
	return m.refreshCmd()
}

func (m ScoreboardModel) switchTab(delta int) ScoreboardModel {
	n := m.tabCount()
	m.tab = ((m.tab+delta)%n + n) % n
	if m.tab == 0 && m.svc == nil {
		m.tab = ((m.tab+delta)%n + n) % n
	}
	m.table = m.createTable()
	m.load()
	return m
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case fetchResultMsg:
		if msg.err != nil {
			m.errMsg = "Leaderboard unavailable: " + msg.err.Error()
			return m, nil
		}
		m.entries = msg.entries
		if m.tab == 0 {
			m.errMsg = ""
			m.updateRows()
		}
		return m, nil

	case LeaderboardUpdateMsg:
		m.entries = msg
		if m.tab == 0 {
			m.updateRows()
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextTab):
			return m.switchTab(1), nil
		case key.Matches(msg, m.keys.PrevTab):
			return m.switchTab(-1), nil
		case key.Matches(msg, m.keys.Refresh):
			if m.tab == 0 {
				return m, m.refreshCmd()
			}
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ScoreboardModel) tabTitle(i int) string {
	if i == 0 {
		return "Leaderboard"
	}
	return m.modes[i-1].Title
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.theme.Title.Render(centerText("HIGH SCORES", m.width)))
	b.WriteString("\n\n")

	activeTab := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, 0, m.tabCount())
	for i := range m.tabCount() {
		if i == 0 && m.svc == nil {
			continue
		}
		if i == m.tab {
			tabs = append(tabs, activeTab.Render(m.tabTitle(i)))
		} else {
			tabs = append(tabs, m.theme.Muted.Render(" "+m.tabTitle(i)+" "))
		}
	}
	b.WriteString(centerText(strings.Join(tabs, " "), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var content string
	if len(m.table.Rows()) == 0 {
		content = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 4).
			Render("No scores recorded yet.\nPlay a game to set a high score!")
	} else {
		content = m.table.View()
	}
	b.WriteString(tableStyle.Render(content))
	b.WriteString("\n")

	if m.errMsg != "" {
		b.WriteString(m.theme.Error.Render(m.errMsg))
		b.WriteString("\n")
	}
	b.WriteString(m.theme.Muted.Render(m.help.View(m.keys)))
	return b.String()
}

// IsGoingBack returns true if the user wants to go back to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if the user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen. When watch is non-nil the
// leaderboard tab follows its pushed updates. Returns true if the user
// wants to go back to the menu.
func RunScoreboard(svc leaderboard.Service, watch Watcher, opts Options, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewScoreboardModel(svc, opts, width, height),
		tea.WithAltScreen(),
	)

	if watch != nil {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			err := watch.Watch(ctx, func(entries []leaderboard.Entry) {
				p.Send(LeaderboardUpdateMsg(entries))
			})
			if err != nil && opts.Logger != nil {
				opts.Logger.Warn("leaderboard watch ended", "error", err)
			}
		}()
	}

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
