package config

import (
	_ "embed"
)

//go:embed defaults/line98.yaml
var defaultLine98YAML []byte

// DefaultLine98Config returns the built-in configuration. It matches the
// embedded YAML and is used when that cannot be parsed.
func DefaultLine98Config() Line98Config {
	return Line98Config{
		Board: BoardConfig{
			Size: 9,
		},
		Rules: RulesConfig{
			Colors:       8,
			InitialBalls: 5,
			SpawnCount:   3,
		},
		Scoring: ScoringConfig{
			MinLength:           5,
			Base:                10,
			PerExtraBall:        5,
			MultiLineMultiplier: 5,
		},
		Tools: ToolsConfig{
			Hammers: 10,
			Swaps:   10,
		},
		Timing: TimingConfig{
			ClearDelayMS: 300,
			StepDelayMS:  40,
		},
		Leaderboard: LeaderboardConfig{
			Backend:   BackendLocal,
			Size:      5,
			TimeoutMS: 5000,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultLine98YAML
}
