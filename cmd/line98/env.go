package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/line98/internal/config"
	"github.com/vovakirdan/line98/internal/core"
	"github.com/vovakirdan/line98/internal/games/line98"
	"github.com/vovakirdan/line98/internal/leaderboard"
	"github.com/vovakirdan/line98/internal/platform/tui"
	"github.com/vovakirdan/line98/internal/storage"
)

// env is the wiring shared by the commands: config, storage, leaderboard
// and logger.
type env struct {
	cfg     config.Line98Config
	store   *storage.Store
	board   leaderboard.Service
	logger  *log.Logger
	logFile *os.File
}

// newLogger builds a logger. Interactive commands pass quiet so nothing
// reaches the alt screen unless --log-file is set.
func newLogger(prefix string, quiet bool) (*log.Logger, *os.File, error) {
	var w io.Writer = os.Stderr
	var f *os.File
	if flagLogFile != "" {
		var err error
		f, err = os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
	} else if quiet {
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	logger.SetLevel(level)
	return logger, f, nil
}

// loadEnv resolves the effective config and opens the database. A
// database that cannot be opened downgrades storage to memory with a
// warning.
func loadEnv(prefix string, quiet bool) (*env, error) {
	logger, logFile, err := newLogger(prefix, quiet)
	if err != nil {
		return nil, err
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	config.ApplyPreset(&cfg, preset)
	line98.SetConfig(cfg)

	e := &env{cfg: cfg, logger: logger, logFile: logFile}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, scores will not persist", "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
	} else {
		e.store = store
	}

	e.board = e.leaderboardService()
	return e, nil
}

// leaderboardService picks the backend named by the config.
func (e *env) leaderboardService() leaderboard.Service {
	size := e.cfg.Leaderboard.Size
	switch e.cfg.Leaderboard.Backend {
	case config.BackendRemote:
		return leaderboard.NewRemote(e.cfg.Leaderboard.URL, e.cfg.LeaderboardTimeout())
	case config.BackendNone:
		return nil
	}
	if e.store != nil {
		return leaderboard.NewLocal(e.store, size)
	}
	return leaderboard.NewKV(core.NewMemoryStore(), size)
}

// options returns the session options for the TUI.
func (e *env) options() tui.Options {
	return tui.Options{
		Store:           e.store,
		Leaderboard:     e.board,
		LeaderboardSize: e.cfg.Leaderboard.Size,
		Timeout:         e.cfg.LeaderboardTimeout(),
		Logger:          e.logger,
	}
}

// runtimeConfig sizes the screen from the terminal.
func (e *env) runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func (e *env) Close() {
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			e.logger.Warn("could not close database", "error", err)
		}
	}
	if e.logFile != nil {
		e.logFile.Close()
	}
}
