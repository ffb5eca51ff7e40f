// line98 is the Line 98 colour-lines puzzle for the terminal.
//
// Usage:
//
//	line98 list                  - List game modes
//	line98 play [mode]           - Play a mode (default: line98)
//	line98 menu                  - Pick modes interactively
//	line98 scores                - Show the leaderboard and score history
//	line98 serve                 - Start the SSH server for remote play
//	line98 serve-leaderboard     - Serve the leaderboard HTTP API
//	line98 config                - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Tick rate (default: 30)
//	--seed <value>        - RNG seed for reproducible games
//	--db <path>           - Database path (default: ~/.line98/line98.db)
//	--config <path>       - Custom config YAML
//	--difficulty <name>   - easy, normal or hard
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import modes to register them
	_ "github.com/vovakirdan/line98/internal/games/line98"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "line98",
	Short: "Line 98 - line up five balls in your terminal",
	Long: `Line 98 is the classic colour-lines puzzle. Move balls along free
paths to form lines of five or more of one colour; every move that clears
nothing brings new balls. The game ends when the board fills up.

Examples:
  line98 play
  line98 play line98_classic --difficulty hard
  line98 menu
  line98 serve --ssh :2222
  line98 serve-leaderboard --addr :8098
  line98 scores --remote http://localhost:8098 --watch`,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.line98/line98.db", "Path to the scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(serveLeaderboardCmd)
	rootCmd.AddCommand(configCmd)
}

// fail prints an error and exits like the other commands do.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
