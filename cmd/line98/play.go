package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/line98/internal/platform/tui"
	"github.com/vovakirdan/line98/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a game",
	Long: `Start a game of the given mode (default: line98).

Controls:
  Arrows/WASD   - Move the cursor
  Enter/Space   - Pick up a ball, drop it on a free cell
  Mouse click   - Same as Enter on the clicked cell
  H             - Hammer: remove one ball
  X             - Swap: exchange two balls
  Esc           - Cancel the selection or tool
  T             - Toggle the dark/light theme
  ?             - Help
  R             - Restart (after game over)
  Q/Ctrl+C      - Quit

Examples:
  line98 play
  line98 play line98_classic
  line98 play --difficulty easy --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := "line98"
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'line98 list' to see available modes.")
		os.Exit(1)
	}

	e, err := loadEnv("line98", true)
	if err != nil {
		fail("%v", err)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		e.Close()
		fail("creating game: %v", err)
	}

	runErr := tui.Run(game, e.options(), e.runtimeConfig())
	e.Close()

	if runErr != nil {
		fail("running game: %v", runErr)
	}
}
