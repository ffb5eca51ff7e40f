// Package config provides YAML-based configuration loading, validation and
// difficulty presets for Line 98.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/line98/internal/lines"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid value")

// Line98Config contains all tunable parameters of the game.
type Line98Config struct {
	Board       BoardConfig       `yaml:"board"`
	Rules       RulesConfig       `yaml:"rules"`
	Scoring     ScoringConfig     `yaml:"scoring"`
	Tools       ToolsConfig       `yaml:"tools"`
	Timing      TimingConfig      `yaml:"timing"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
}

// BoardConfig defines the grid.
type BoardConfig struct {
	Size int `yaml:"size"`
}

// RulesConfig defines dealing and spawning.
type RulesConfig struct {
	Colors          int  `yaml:"colors"`        // palette prefix length, 1-8
	InitialBalls    int  `yaml:"initial_balls"` // balls on the opening board
	SpawnCount      int  `yaml:"spawn_count"`   // balls forecast per turn
	SpawnAfterClear bool `yaml:"spawn_after_clear"`
}

// ScoringConfig defines line length and points.
type ScoringConfig struct {
	MinLength           int `yaml:"min_length"`
	Base                int `yaml:"base"`
	PerExtraBall        int `yaml:"per_extra_ball"`
	MultiLineMultiplier int `yaml:"multi_line_multiplier"`
}

// ToolsConfig defines per-game tool uses.
type ToolsConfig struct {
	Hammers int `yaml:"hammers"`
	Swaps   int `yaml:"swaps"`
}

// TimingConfig defines the cosmetic replay delays.
type TimingConfig struct {
	ClearDelayMS int `yaml:"clear_delay_ms"` // how long cleared balls flash
	StepDelayMS  int `yaml:"step_delay_ms"`  // per cell of a path move
}

// LeaderboardConfig selects the leaderboard backend.
type LeaderboardConfig struct {
	Backend   string `yaml:"backend"` // "local", "remote" or "none"
	URL       string `yaml:"url"`     // base URL for the remote backend
	Size      int    `yaml:"size"`    // entries shown and kept
	TimeoutMS int    `yaml:"timeout_ms"`
}

// Leaderboard backends.
const (
	BackendLocal  = "local"
	BackendRemote = "remote"
	BackendNone   = "none"
)

// Validate rejects configurations the engine cannot run.
func (c Line98Config) Validate() error {
	switch {
	case c.Scoring.MinLength < 2:
		return fmt.Errorf("%w: scoring.min_length %d must be at least 2", ErrInvalid, c.Scoring.MinLength)
	case c.Board.Size < c.Scoring.MinLength || c.Board.Size > 20:
		return fmt.Errorf("%w: board.size %d must be between scoring.min_length (%d) and 20",
			ErrInvalid, c.Board.Size, c.Scoring.MinLength)
	case c.Rules.Colors < 1 || c.Rules.Colors > len(lines.Palette):
		return fmt.Errorf("%w: rules.colors %d must be between 1 and %d", ErrInvalid, c.Rules.Colors, len(lines.Palette))
	case c.Rules.InitialBalls < 0 || c.Rules.InitialBalls >= c.Board.Size*c.Board.Size:
		return fmt.Errorf("%w: rules.initial_balls %d must leave the board not full", ErrInvalid, c.Rules.InitialBalls)
	case c.Rules.SpawnCount < 1:
		return fmt.Errorf("%w: rules.spawn_count %d must be positive", ErrInvalid, c.Rules.SpawnCount)
	case c.Scoring.Base < 0 || c.Scoring.PerExtraBall < 0:
		return fmt.Errorf("%w: scoring points must not be negative", ErrInvalid)
	case c.Scoring.MultiLineMultiplier < 1:
		return fmt.Errorf("%w: scoring.multi_line_multiplier %d must be at least 1", ErrInvalid, c.Scoring.MultiLineMultiplier)
	case c.Tools.Hammers < 0 || c.Tools.Swaps < 0:
		return fmt.Errorf("%w: tool uses must not be negative", ErrInvalid)
	case c.Timing.ClearDelayMS < 0 || c.Timing.StepDelayMS < 0:
		return fmt.Errorf("%w: timing delays must not be negative", ErrInvalid)
	}

	switch c.Leaderboard.Backend {
	case BackendLocal, BackendNone:
	case BackendRemote:
		if c.Leaderboard.URL == "" {
			return fmt.Errorf("%w: leaderboard.url is required for the remote backend", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: leaderboard.backend %q", ErrInvalid, c.Leaderboard.Backend)
	}
	if c.Leaderboard.Size < 1 {
		return fmt.Errorf("%w: leaderboard.size %d must be positive", ErrInvalid, c.Leaderboard.Size)
	}

	return nil
}

// EngineRules converts the config into engine rules.
func (c Line98Config) EngineRules() lines.Rules {
	return lines.Rules{
		Size:         c.Board.Size,
		Colors:       c.Rules.Colors,
		InitialBalls: c.Rules.InitialBalls,
		SpawnCount:   c.Rules.SpawnCount,
		Scoring: lines.Scoring{
			MinLength:           c.Scoring.MinLength,
			Base:                c.Scoring.Base,
			PerExtraBall:        c.Scoring.PerExtraBall,
			MultiLineMultiplier: c.Scoring.MultiLineMultiplier,
		},
		Hammers:         c.Tools.Hammers,
		Swaps:           c.Tools.Swaps,
		SpawnAfterClear: c.Rules.SpawnAfterClear,
	}
}

// ClearDelay returns the clear flash duration.
func (c Line98Config) ClearDelay() time.Duration {
	return time.Duration(c.Timing.ClearDelayMS) * time.Millisecond
}

// StepDelay returns the per-cell path animation duration.
func (c Line98Config) StepDelay() time.Duration {
	return time.Duration(c.Timing.StepDelayMS) * time.Millisecond
}

// LeaderboardTimeout returns the remote request timeout.
func (c Line98Config) LeaderboardTimeout() time.Duration {
	if c.Leaderboard.TimeoutMS <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.Leaderboard.TimeoutMS) * time.Millisecond
}
