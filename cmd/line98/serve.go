package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/line98/internal/core"
	"github.com/vovakirdan/line98/internal/leaderboard"
	"github.com/vovakirdan/line98/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagHTTPAddr    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each connection gets its own session with the mode menu. All sessions
share the server's database and leaderboard.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.line98/host_key

Examples:
  line98 serve
  line98 serve --ssh :2222
  line98 serve --host-key ./my_host_key

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

var serveLeaderboardCmd = &cobra.Command{
	Use:   "serve-leaderboard",
	Short: "Serve the leaderboard HTTP API",
	Long: `Serve the leaderboard over HTTP so clients with
leaderboard.backend: remote can share one table.

Endpoints:
  GET  /api/leaderboard?limit=N   - top entries
  POST /api/leaderboard           - submit {"name","score","timestamp"}
  GET  /api/leaderboard/ws        - websocket feed of the top list

Examples:
  line98 serve-leaderboard
  line98 serve-leaderboard --addr :9000 --db ./board.db`,
	Run: runServeLeaderboard,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")

	serveLeaderboardCmd.Flags().StringVar(&flagHTTPAddr, "addr", ":8098", "HTTP listen address (host:port)")
}

func runServe(_ *cobra.Command, _ []string) {
	e, err := loadEnv("line98-ssh", false)
	if err != nil {
		fail("%v", err)
	}
	defer e.Close()

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS
	cfg.Options = e.options()

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		return
	}

	fmt.Printf("Starting Line 98 SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
	}
}

func runServeLeaderboard(_ *cobra.Command, _ []string) {
	e, err := loadEnv("line98-board", false)
	if err != nil {
		fail("%v", err)
	}
	defer e.Close()

	// The server always owns the table; a remote backend here would
	// point at itself.
	var svc leaderboard.Service
	if e.store != nil {
		svc = leaderboard.NewLocal(e.store, e.cfg.Leaderboard.Size)
	} else {
		svc = leaderboard.NewKV(core.NewMemoryStore(), e.cfg.Leaderboard.Size)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := leaderboard.NewServer(svc, e.cfg.Leaderboard.Size, e.logger)
	fmt.Printf("Serving the leaderboard on %s\n", flagHTTPAddr)
	if err := srv.ListenAndServe(ctx, flagHTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
	}
}
