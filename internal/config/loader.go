package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// load resolves a game config.
// Search order: customPath -> ~/.arcade/configs/<id>.yaml -> ./configs/<id>.yaml -> embedded default.
// Files are decoded over the hardcoded defaults, so a file only needs the keys it changes.
func load[T any](gameID, customPath string, defaults func() T) (T, error) {
	cfg := defaults()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{
		userConfigPath(gameID + ".yaml"),
		filepath.Join("configs", gameID+".yaml"),
	}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		fromFile := defaults()
		if err := yaml.Unmarshal(data, &fromFile); err == nil {
			return fromFile, nil
		}
	}

	if data := GetDefaultYAML(gameID); data != nil {
		fromEmbed := defaults()
		if err := yaml.Unmarshal(data, &fromEmbed); err == nil {
			return fromEmbed, nil
		}
	}
	return cfg, nil // Fallback to hardcoded if embed fails
}

// LoadFlappy loads Flappy Bird configuration.
func LoadFlappy(customPath string) (FlappyConfig, error) {
	return load("flappy", customPath, DefaultFlappyConfig)
}

// LoadPong loads Pong configuration.
func LoadPong(customPath string) (PongConfig, error) {
	return load("pong", customPath, DefaultPongConfig)
}

// LoadMemory loads and validates Memory Card configuration.
// A grid with an odd or zero cell count fails with ErrInvalidGrid.
func LoadMemory(customPath string) (MemoryConfig, error) {
	cfg, err := load("memory", customPath, DefaultMemoryConfig)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyFlappyPreset modifies the config based on a difficulty preset.
func ApplyFlappyPreset(cfg *FlappyConfig, preset DifficultyPreset) {
	cfg.Difficulty.applyPreset(preset)
}

// ApplyPongPreset modifies the config based on a difficulty preset.
func ApplyPongPreset(cfg *PongConfig, preset DifficultyPreset) {
	cfg.Difficulty.applyPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.WinScore = 3
		cfg.CPU.MaxSkill = 0.7
	case DifficultyHard:
		cfg.Paddles.Height = 4
		cfg.CPU.MinSkill = 0.75
		cfg.CPU.MaxSkill = 0.95
	}
}

// ApplyMemoryPreset picks the board size for a difficulty preset.
// Memory has no progression, so "fixed" and the empty preset keep the file's grid.
func ApplyMemoryPreset(cfg *MemoryConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Grid = MemoryGrid{Rows: 2, Cols: 4}
	case DifficultyNormal:
		cfg.Grid = MemoryGrid{Rows: 3, Cols: 4}
	case DifficultyHard:
		cfg.Grid = MemoryGrid{Rows: 4, Cols: 4}
		cfg.Cards.Height = 4
	}
}
