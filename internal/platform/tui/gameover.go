package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/line98/internal/leaderboard"
)

// submitResultMsg carries the outcome of a leaderboard submission.
type submitResultMsg struct {
	entries []leaderboard.Entry
	err     error
}

// fetchResultMsg carries the outcome of a leaderboard fetch.
type fetchResultMsg struct {
	entries []leaderboard.Entry
	err     error
}

func submitCmd(svc leaderboard.Service, e leaderboard.Entry, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		entries, err := svc.Submit(ctx, e)
		return submitResultMsg{entries: entries, err: err}
	}
}

func fetchCmd(svc leaderboard.Service, n int, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		entries, err := svc.FetchTop(ctx, n)
		return fetchResultMsg{entries: entries, err: err}
	}
}

// gameOverStage is the step of the post-game flow.
type gameOverStage int

const (
	stageNameEntry gameOverStage = iota
	stageSubmitting
	stageResults
)

// gameOverPanel collects the player name, submits the score and shows
// the updated top list. A failed submission keeps the typed name and
// offers a retry.
type gameOverPanel struct {
	svc     leaderboard.Service
	size    int
	timeout time.Duration

	score   int
	stage   gameOverStage
	input   textinput.Model
	table   table.Model
	entries []leaderboard.Entry
	errMsg  string
	retry   bool
	now     func() time.Time
}

func newGameOverPanel(svc leaderboard.Service, size int, timeout time.Duration, score int) gameOverPanel {
	ti := textinput.New()
	ti.Placeholder = "your name"
	ti.CharLimit = leaderboard.MaxNameLength
	ti.Width = leaderboard.MaxNameLength + 1
	ti.Prompt = "> "
	ti.Focus()

	return gameOverPanel{
		svc:     svc,
		size:    size,
		timeout: timeout,
		score:   score,
		stage:   stageNameEntry,
		input:   ti,
		table:   newLeaderboardTable(size),
		now:     time.Now,
	}
}

// newLeaderboardTable creates the rank/name/score/date table.
func newLeaderboardTable(height int) table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Name", Width: leaderboard.MaxNameLength},
			{Title: "Score", Width: 8},
			{Title: "Date", Width: 12},
		}),
		table.WithHeight(height+1),
		table.WithFocused(false),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)
	return t
}

func leaderboardRows(entries []leaderboard.Entry) []table.Row {
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			e.Name,
			fmt.Sprintf("%d", e.Score),
			e.Time().Local().Format("Jan 02 15:04"),
		}
	}
	return rows
}

func (p *gameOverPanel) showResults(entries []leaderboard.Entry) {
	p.stage = stageResults
	p.entries = entries
	p.table.SetRows(leaderboardRows(entries))
	p.input.Blur()
}

// Update handles input and submission results.
func (p gameOverPanel) Update(msg tea.Msg) (gameOverPanel, tea.Cmd) {
	switch msg := msg.(type) {
	case submitResultMsg:
		switch {
		case msg.err == nil:
			p.errMsg = ""
			p.retry = false
			p.showResults(msg.entries)
		case errors.Is(msg.err, leaderboard.ErrInvalidName):
			p.stage = stageNameEntry
			p.errMsg = msg.err.Error()
			p.retry = false
			return p, p.input.Focus()
		default:
			p.stage = stageNameEntry
			p.errMsg = "Submission failed: " + msg.err.Error()
			p.retry = true
			return p, p.input.Focus()
		}
		return p, nil

	case fetchResultMsg:
		if msg.err != nil {
			p.errMsg = "Leaderboard unavailable: " + msg.err.Error()
		}
		p.showResults(msg.entries)
		return p, nil

	case tea.KeyMsg:
		if p.stage != stageNameEntry {
			return p, nil
		}
		switch msg.Type {
		case tea.KeyEnter:
			name, err := leaderboard.NormalizeName(p.input.Value())
			if err != nil {
				p.errMsg = err.Error()
				return p, nil
			}
			p.stage = stageSubmitting
			p.errMsg = ""
			entry := leaderboard.NewEntry(name, p.score, p.now())
			return p, submitCmd(p.svc, entry, p.timeout)
		case tea.KeyEsc:
			// Skip submission but still show the board.
			p.stage = stageSubmitting
			p.retry = false
			return p, fetchCmd(p.svc, p.size, p.timeout)
		}
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return p, cmd
	}
	return p, nil
}

// Done reports whether the results are on screen.
func (p gameOverPanel) Done() bool {
	return p.stage == stageResults
}

// View renders the panel.
func (p gameOverPanel) View(theme Theme, embedded bool) string {
	var b strings.Builder

	b.WriteString(theme.Title.Render("GAME OVER"))
	b.WriteString("\n\n")
	b.WriteString(theme.Text.Render(fmt.Sprintf("Score: %d", p.score)))
	b.WriteString("\n\n")

	switch p.stage {
	case stageNameEntry:
		b.WriteString(theme.Text.Render("Enter your name for the leaderboard:"))
		b.WriteString("\n")
		b.WriteString(p.input.View())
		b.WriteString("\n\n")
		if p.errMsg != "" {
			b.WriteString(theme.Error.Render(p.errMsg))
			b.WriteString("\n")
		}
		if p.retry {
			b.WriteString(theme.Muted.Render("Enter: retry  Esc: skip"))
		} else {
			b.WriteString(theme.Muted.Render("Enter: submit  Esc: skip"))
		}

	case stageSubmitting:
		b.WriteString(theme.Muted.Render("Talking to the leaderboard..."))

	case stageResults:
		b.WriteString(theme.Title.Render("TOP SCORES"))
		b.WriteString("\n")
		if len(p.entries) == 0 {
			b.WriteString(theme.Muted.Render("No entries yet."))
		} else {
			b.WriteString(p.table.View())
		}
		b.WriteString("\n\n")
		if p.errMsg != "" {
			b.WriteString(theme.Error.Render(p.errMsg))
			b.WriteString("\n")
		}
		hint := "R: play again  Q: quit"
		if embedded {
			hint = "R: play again  Esc: menu  Q: quit"
		}
		b.WriteString(theme.Muted.Render(hint))
	}

	return theme.Panel.Render(b.String())
}
