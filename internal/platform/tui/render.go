package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/line98/internal/core"
)

// ThemeKey is the preference key holding the theme name.
const ThemeKey = "line98-theme"

// Theme names.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Theme maps logical colours to terminal styles and styles the widgets
// around the board.
type Theme struct {
	Name   string
	colors map[core.Color]lipgloss.Style

	Title lipgloss.Style
	Text  lipgloss.Style
	Muted lipgloss.Style
	Error lipgloss.Style
	Panel lipgloss.Style
}

// DarkTheme is tuned for dark terminal backgrounds.
func DarkTheme() Theme {
	fg := func(c string) lipgloss.Style { return lipgloss.NewStyle().Foreground(lipgloss.Color(c)) }
	return Theme{
		Name: ThemeDark,
		colors: map[core.Color]lipgloss.Style{
			core.ColorDefault: lipgloss.NewStyle(),
			core.ColorRed:     fg("196"),
			core.ColorGreen:   fg("46"),
			core.ColorBlue:    fg("33"),
			core.ColorYellow:  fg("226"),
			core.ColorPurple:  fg("135"),
			core.ColorCyan:    fg("51"),
			core.ColorOrange:  fg("208"),
			core.ColorPink:    fg("205"),
			core.ColorMuted:   fg("240"),
			core.ColorAccent:  fg("229").Bold(true),
			core.ColorDanger:  fg("203").Bold(true),
		},
		Title: fg("229").Bold(true),
		Text:  fg("255"),
		Muted: fg("241"),
		Error: fg("203"),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2),
	}
}

// LightTheme is tuned for light terminal backgrounds.
func LightTheme() Theme {
	fg := func(c string) lipgloss.Style { return lipgloss.NewStyle().Foreground(lipgloss.Color(c)) }
	return Theme{
		Name: ThemeLight,
		colors: map[core.Color]lipgloss.Style{
			core.ColorDefault: fg("235"),
			core.ColorRed:     fg("160"),
			core.ColorGreen:   fg("28"),
			core.ColorBlue:    fg("20"),
			core.ColorYellow:  fg("136"),
			core.ColorPurple:  fg("91"),
			core.ColorCyan:    fg("30"),
			core.ColorOrange:  fg("166"),
			core.ColorPink:    fg("162"),
			core.ColorMuted:   fg("248"),
			core.ColorAccent:  fg("25").Bold(true),
			core.ColorDanger:  fg("124").Bold(true),
		},
		Title: fg("25").Bold(true),
		Text:  fg("235"),
		Muted: fg("244"),
		Error: fg("124"),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("248")).
			Padding(1, 2),
	}
}

// ThemeByName returns the named theme. Unknown names give the dark theme.
func ThemeByName(name string) Theme {
	if name == ThemeLight {
		return LightTheme()
	}
	return DarkTheme()
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t.Name == ThemeLight {
		return DarkTheme()
	}
	return LightTheme()
}

// Style returns the style for a logical colour.
func (t Theme) Style(c core.Color) lipgloss.Style {
	if s, ok := t.colors[c]; ok {
		return s
	}
	return t.colors[core.ColorDefault]
}

// loadTheme reads the persisted theme. Missing or unknown values give
// the dark theme.
func loadTheme(store core.PersistenceStore) Theme {
	if store == nil {
		return DarkTheme()
	}
	name, ok, err := store.GetValue(ThemeKey)
	if err != nil || !ok {
		return DarkTheme()
	}
	return ThemeByName(name)
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells with the same colour share one style run.
func RenderScreen(s *core.Screen, theme Theme) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != start {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			sb.WriteString(theme.Style(start).Render(run.String()))
		}
	}
	return sb.String()
}
