package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fileName = "line98.yaml"

// Load loads the game configuration.
// Search order: customPath -> ~/.line98/config.yaml -> ./configs/line98.yaml
// -> embedded default -> hardcoded default.
// Files are parsed over the defaults, so a partial file only overrides the
// keys it sets. A custom path that cannot be read, parsed or validated is
// an error; the other locations are skipped silently when unusable.
func Load(customPath string) (Line98Config, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Line98Config{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return Line98Config{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range searchPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := Parse(defaultLine98YAML); err == nil {
		return cfg, nil
	}
	return DefaultLine98Config(), nil
}

// Parse decodes YAML over the hardcoded defaults and validates the result.
func Parse(data []byte) (Line98Config, error) {
	cfg := DefaultLine98Config()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Line98Config{}, fmt.Errorf("failed to parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Line98Config{}, err
	}
	return cfg, nil
}

// Marshal renders the effective configuration as YAML.
func Marshal(cfg Line98Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: failed to encode: %w", err)
	}
	return data, nil
}

// searchPaths returns the implicit config locations in priority order.
func searchPaths() []string {
	var paths []string
	if p := userConfigPath(); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", fileName))
}

// userConfigPath returns ~/.line98/config.yaml, or empty if home is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".line98", "config.yaml")
}
