package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadWorld loads the overworld configuration.
// Search order: customPath -> ~/.dex/configs/world.yaml -> ./configs/world.yaml -> embedded default
func LoadWorld(customPath string) (World, error) {
	cfg, err := load("world.yaml", customPath, defaultWorldYAML, DefaultWorldConfig)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadMiniGames loads the mini-game configuration.
// Search order: customPath -> ~/.dex/configs/minigames.yaml -> ./configs/minigames.yaml -> embedded default
func LoadMiniGames(customPath string) (MiniGames, error) {
	cfg, err := load("minigames.yaml", customPath, defaultMiniGamesYAML, DefaultMiniGamesConfig)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// load walks the search order for one file. Only an explicit customPath
// turns a read or parse failure into an error; the other locations fall
// through to the next candidate.
func load[T any](filename, customPath string, embedded []byte, fallback func() T) (T, error) {
	// Try custom path first
	if customPath != "" {
		cfg := fallback()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if cfg, ok := readYAML(userCfgPath, fallback); ok {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, ok := readYAML(filepath.Join("configs", filename), fallback); ok {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg := fallback()
	if err := yaml.Unmarshal(embedded, &cfg); err != nil {
		return fallback(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// readYAML decodes path on top of the hardcoded defaults, so a partial file
// only overrides the keys it sets.
func readYAML[T any](path string, fallback func() T) (T, bool) {
	cfg := fallback()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dex", "configs", filename)
}
