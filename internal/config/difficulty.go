package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the known presets in increasing difficulty.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	if name == "" {
		return DifficultyNormal, nil
	}
	for _, p := range Presets {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: unknown difficulty %q (want easy, normal or hard)", ErrInvalid, name)
}

// ApplyPreset adjusts palette size and tool counts for a preset.
// Normal leaves the loaded config untouched.
func ApplyPreset(cfg *Line98Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Rules.Colors = 6
		cfg.Tools.Hammers = 15
		cfg.Tools.Swaps = 15
	case DifficultyHard:
		cfg.Rules.Colors = 8
		cfg.Rules.SpawnCount = 4
		cfg.Tools.Hammers = 3
		cfg.Tools.Swaps = 3
	}
}
