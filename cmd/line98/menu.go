package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/line98/internal/leaderboard"
	"github.com/vovakirdan/line98/internal/platform/tui"
	"github.com/vovakirdan/line98/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a mode from a menu",
	Long: `Start in interactive menu mode. After a game ends you return to
the menu. Tab opens the scoreboard.

Controls:
  Up/Down/j/k  - Navigate
  Enter/Space  - Play
  Tab          - Scores
  Q            - Quit`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	e, err := loadEnv("line98", true)
	if err != nil {
		fail("%v", err)
	}
	defer e.Close()

	cfg := e.runtimeConfig()
	opts := e.options()

	var watch tui.Watcher
	if r, ok := e.board.(*leaderboard.Remote); ok {
		watch = r
	}

	for {
		result, err := tui.RunMenu(e.store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = result.Config

		if result.Quit {
			return
		}

		if result.WantsScoreboard {
			goBack, err := tui.RunScoreboard(e.board, watch, opts, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if !goBack {
				return
			}
			continue
		}

		game, err := registry.Create(result.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}
		if err := tui.Run(game, opts, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}
}
