package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/line98/internal/leaderboard"
	"github.com/vovakirdan/line98/internal/registry"
	"github.com/vovakirdan/line98/internal/storage"
)

var (
	flagScoresRemote string
	flagScoresWatch  bool
	flagScoresMode   string
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard and score history",
	Long: `Print the named leaderboard from the configured backend, or from a
leaderboard server with --remote. --watch keeps the connection open and
prints the list again after every submission. --mode prints the local
history of one mode instead.

Examples:
  line98 scores
  line98 scores --mode line98_classic
  line98 scores --remote http://localhost:8098 --watch`,
	Run: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresRemote, "remote", "", "Leaderboard server base URL")
	scoresCmd.Flags().BoolVar(&flagScoresWatch, "watch", false, "Follow live updates (remote only)")
	scoresCmd.Flags().StringVar(&flagScoresMode, "mode", "", "Show the local history of this mode")
}

func runScores(_ *cobra.Command, _ []string) {
	e, err := loadEnv("line98", false)
	if err != nil {
		fail("%v", err)
	}
	defer e.Close()

	if flagScoresMode != "" {
		if !registry.Exists(flagScoresMode) {
			fail("unknown mode %q", flagScoresMode)
		}
		if e.store == nil {
			fail("no scores database")
		}
		if err := printHistory(e.store, flagScoresMode); err != nil {
			fail("%v", err)
		}
		return
	}

	svc := e.board
	if flagScoresRemote != "" {
		svc = leaderboard.NewRemote(flagScoresRemote, e.cfg.LeaderboardTimeout())
	}
	if svc == nil {
		fmt.Println("The leaderboard is disabled (leaderboard.backend: none).")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	entries, err := svc.FetchTop(ctx, e.cfg.Leaderboard.Size)
	if err != nil {
		fail("fetching leaderboard: %v", err)
	}
	printLeaderboard(entries)

	if !flagScoresWatch {
		return
	}
	remote, ok := svc.(*leaderboard.Remote)
	if !ok {
		fail("--watch needs a remote leaderboard")
	}
	fmt.Println()
	fmt.Println("Watching for updates, Ctrl+C to stop...")
	err = remote.Watch(ctx, func(entries []leaderboard.Entry) {
		fmt.Println()
		printLeaderboard(entries)
	})
	if err != nil {
		fail("watching leaderboard: %v", err)
	}
}

func printLeaderboard(entries []leaderboard.Entry) {
	fmt.Println("Leaderboard")
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No entries yet. Play 'line98 play' to claim the top spot!")
		return
	}

	fmt.Printf("  %-4s  %-*s  %-8s  %s\n", "Rank", leaderboard.MaxNameLength, "Name", "Score", "Date")
	fmt.Printf("  %-4s  %-*s  %-8s  %s\n", "----", leaderboard.MaxNameLength, "----", "-----", "----")
	for i, entry := range entries {
		fmt.Printf("  %-4d  %-*s  %-8d  %s\n",
			i+1, leaderboard.MaxNameLength, entry.Name, entry.Score,
			entry.Time().Local().Format("2006-01-02 15:04"))
	}
}

func printHistory(store *storage.Store, gameID string) error {
	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", gameID)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %-6s  %s\n", "Rank", "Score", "Turns", "Date")
	fmt.Printf("  %-4s  %-10s  %-6s  %s\n", "----", "-----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %-6d  %s\n", i+1, entry.Score, entry.Turns, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(gameID)
	if err == nil {
		fmt.Println()
		fmt.Printf("Games: %d  Best: %d  Average: %.0f\n", stats.GamesCount, stats.HighScore, stats.AvgScore)
	}
	return nil
}
