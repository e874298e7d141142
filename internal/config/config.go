// Package config provides YAML-based game configuration loading,
// environment overrides and difficulty management for the arcade platform.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidGrid is returned when a memory grid cannot be filled with pairs.
var ErrInvalidGrid = errors.New("config: grid must have a positive, even number of cells")

// FlappyConfig contains all configuration for the Flappy Bird game.
type FlappyConfig struct {
	Physics    FlappyPhysics    `yaml:"physics"`
	Obstacles  FlappyObstacles  `yaml:"obstacles"`
	Player     FlappyPlayer     `yaml:"player"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// FlappyPhysics defines physics parameters for Flappy Bird.
type FlappyPhysics struct {
	Gravity      float64 `yaml:"gravity"`
	JumpImpulse  float64 `yaml:"jump_impulse"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
	BaseSpeed    float64 `yaml:"base_speed"`
}

// FlappyObstacles defines obstacle parameters for Flappy Bird.
type FlappyObstacles struct {
	PipeWidth    int `yaml:"pipe_width"`
	PipeSpacing  int `yaml:"pipe_spacing"`
	MinGapSize   int `yaml:"min_gap_size"`
	MaxGapSize   int `yaml:"max_gap_size"`
	TopMargin    int `yaml:"top_margin"`
	BottomMargin int `yaml:"bottom_margin"`
}

// FlappyPlayer defines player parameters for Flappy Bird.
type FlappyPlayer struct {
	X      int `yaml:"x"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PongConfig contains all configuration for Pong.
type PongConfig struct {
	Physics    PongPhysics      `yaml:"physics"`
	Paddles    PongPaddles      `yaml:"paddles"`
	Gameplay   PongGameplay     `yaml:"gameplay"`
	CPU        PongCPU          `yaml:"cpu"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PongPhysics defines ball and paddle motion.
type PongPhysics struct {
	BallSpeed    float64 `yaml:"ball_speed"`
	PaddleSpeed  float64 `yaml:"paddle_speed"`
	MaxBallSpeed float64 `yaml:"max_ball_speed"`
	SpinFactor   float64 `yaml:"spin_factor"`
	HitSpeedup   float64 `yaml:"hit_speedup"` // Multiplier applied to horizontal speed per paddle hit
}

// PongPaddles defines paddle geometry.
type PongPaddles struct {
	Height int `yaml:"height"`
	Width  int `yaml:"width"`
	Offset int `yaml:"offset"` // Distance from the screen edge
}

// PongGameplay defines match rules.
type PongGameplay struct {
	WinScore   int `yaml:"win_score"`
	ServeDelay int `yaml:"serve_delay"` // Ticks before the ball moves after a point
}

// PongCPU defines the computer opponent's skill range.
type PongCPU struct {
	MinSkill float64 `yaml:"min_skill"`
	MaxSkill float64 `yaml:"max_skill"`
}

// MemoryConfig contains all configuration for the Memory Card game.
type MemoryConfig struct {
	Grid   MemoryGrid   `yaml:"grid"`
	Cards  MemoryCards  `yaml:"cards"`
	Timing MemoryTiming `yaml:"timing"`
}

// MemoryGrid defines the board dimensions. Rows*Cols must be even.
type MemoryGrid struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// MemoryCards defines card geometry in screen cells.
type MemoryCards struct {
	Width   int `yaml:"width"`
	Height  int `yaml:"height"`
	MarginX int `yaml:"margin_x"`
	MarginY int `yaml:"margin_y"`
}

// MemoryTiming defines the mismatch hide delay.
type MemoryTiming struct {
	HideDelayMs int `yaml:"hide_delay_ms"`
}

// HideDelay returns the mismatch hide delay as a duration.
func (c MemoryConfig) HideDelay() time.Duration {
	return time.Duration(c.Timing.HideDelayMs) * time.Millisecond
}

// Pairs returns the number of pairs on the board.
func (c MemoryConfig) Pairs() int {
	return c.Grid.Rows * c.Grid.Cols / 2
}

// Validate rejects grids that cannot be filled with pairs and non-positive
// card geometry.
func (c MemoryConfig) Validate() error {
	if err := ValidateGrid(c.Grid.Rows, c.Grid.Cols); err != nil {
		return err
	}
	if c.Cards.Width <= 0 || c.Cards.Height <= 0 {
		return fmt.Errorf("config: card size must be positive, got %dx%d", c.Cards.Width, c.Cards.Height)
	}
	if c.Cards.MarginX < 0 || c.Cards.MarginY < 0 {
		return fmt.Errorf("config: card margins must not be negative")
	}
	if c.Timing.HideDelayMs < 0 {
		return fmt.Errorf("config: hide_delay_ms must not be negative, got %d", c.Timing.HideDelayMs)
	}
	return nil
}

// ValidateGrid checks that a rows x cols grid has a positive, even cell count.
func ValidateGrid(rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidGrid, rows, cols)
	}
	if (rows*cols)%2 != 0 {
		return fmt.Errorf("%w: %dx%d has %d cells", ErrInvalidGrid, rows, cols, rows*cols)
	}
	return nil
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier  float64 `yaml:"speed_multiplier"`  // Multiplier added to speed at max difficulty
	GapReduction     int     `yaml:"gap_reduction"`     // Gap size reduction at max difficulty
	SpacingReduction int     `yaml:"spacing_reduction"` // Spacing reduction at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means "no preset".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// applyPreset sets progression from a preset. The empty preset keeps the file's values.
func (d *DifficultyConfig) applyPreset(preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		d.Enabled = false
	default:
		d.Enabled = true
		d.InitialLevel = InitialLevelForPreset(preset)
	}
}
