package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/vovakirdan/line98/internal/core"
)

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab")
	s.SetColored(2, 0, '●', core.ColorRed)
	s.SetColored(3, 0, '●', core.ColorRed)
	s.DrawTextColored(0, 1, "go", core.ColorMuted)

	for _, theme := range []Theme{DarkTheme(), LightTheme()} {
		out := ansi.Strip(RenderScreen(s, theme))
		lines := strings.Split(out, "\n")
		if len(lines) != 2 {
			t.Fatalf("%s: got %d lines, want 2", theme.Name, len(lines))
		}
		if lines[0] != "ab●●  " {
			t.Errorf("%s: row 0 = %q, want %q", theme.Name, lines[0], "ab●●  ")
		}
		if lines[1] != "go    " {
			t.Errorf("%s: row 1 = %q, want %q", theme.Name, lines[1], "go    ")
		}
	}
}

func TestThemeToggle(t *testing.T) {
	dark := DarkTheme()
	if got := dark.Toggle().Name; got != ThemeLight {
		t.Errorf("Dark.Toggle() = %q, want %q", got, ThemeLight)
	}
	if got := dark.Toggle().Toggle().Name; got != ThemeDark {
		t.Errorf("Dark.Toggle().Toggle() = %q, want %q", got, ThemeDark)
	}
}

func TestThemeStyleFallsBack(t *testing.T) {
	theme := DarkTheme()
	unknown := core.Color(200)
	if got, want := theme.Style(unknown).Render("x"), theme.Style(core.ColorDefault).Render("x"); got != want {
		t.Errorf("Style(unknown) rendered %q, want default %q", got, want)
	}
}

func TestLoadTheme(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		set    bool
		want   string
	}{
		{"missing", "", false, ThemeDark},
		{"light", ThemeLight, true, ThemeLight},
		{"dark", ThemeDark, true, ThemeDark},
		{"unknown", "neon", true, ThemeDark},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := core.NewMemoryStore()
			if tt.set {
				if err := store.SetValue(ThemeKey, tt.stored); err != nil {
					t.Fatalf("SetValue() error = %v", err)
				}
			}
			if got := loadTheme(store).Name; got != tt.want {
				t.Errorf("loadTheme() = %q, want %q", got, tt.want)
			}
		})
	}

	if got := loadTheme(nil).Name; got != ThemeDark {
		t.Errorf("loadTheme(nil) = %q, want %q", got, ThemeDark)
	}
}
