// Package memory implements the Memory Card matching game.
// The player flips two cards per move, looking for pairs; mismatched cards
// are hidden again after a short delay.
package memory

import (
	"fmt"

	"github.com/pyarcade/tui-arcade/internal/config"
	"github.com/pyarcade/tui-arcade/internal/core"
	"github.com/pyarcade/tui-arcade/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset picks the board size preset (easy, normal, hard).
// Unknown names keep the configured grid.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// Game adapts State to the registry contract. Pointer presses and timer
// expiry are delivered directly; arrow keys and Space/Enter drive a keyboard
// cursor for terminals without mouse reporting.
type Game struct {
	state *State
	cfg   config.MemoryConfig
}

// New creates a new Memory game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "memory"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Memory Cards"
}

// LowerIsBetter reports that fewer moves rank higher.
func (g *Game) LowerIsBetter() bool {
	return true
}

// Reset loads the config and replaces the state with a fresh board.
// An odd or empty grid fails with config.ErrInvalidGrid. Rounds after the
// first go through Restart.
func (g *Game) Reset(runtime core.RuntimeConfig) error {
	cfg, err := config.LoadMemory(configPath)
	if err != nil {
		return fmt.Errorf("memory: %w", err)
	}
	config.ApplyMemoryPreset(&cfg, difficultyPreset)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("memory: %w", err)
	}
	g.cfg = cfg

	st, err := NewState(Settings{
		Rows:      cfg.Grid.Rows,
		Cols:      cfg.Grid.Cols,
		Layout:    LayoutFromConfig(cfg, runtime.ScreenW, runtime.ScreenH),
		HideDelay: cfg.HideDelay(),
		Seed:      runtime.Seed,
		Clock:     runtime.TimeSource(),
	})
	if err != nil {
		return fmt.Errorf("memory: %w", err)
	}
	g.state = st
	return nil
}

// Restart replaces a finished round with the next one, shuffled from the
// finished round's generator.
func (g *Game) Restart() error {
	next, err := g.state.HandleKey(RestartKey)
	if err != nil {
		return fmt.Errorf("memory: %w", err)
	}
	g.state = next
	return nil
}

// UseState swaps in an externally built state (fixed shuffles, replays).
func (g *Game) UseState(st *State) {
	g.state = st
}

// Step applies keyboard cursor input. Card state otherwise only changes
// through clicks and timer expiry.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if !g.state.GameOver() {
		switch {
		case in.Has(core.ActionUp):
			g.state.MoveCursor(0, -1)
		case in.Has(core.ActionDown):
			g.state.MoveCursor(0, 1)
		case in.Has(core.ActionLeft):
			g.state.MoveCursor(-1, 0)
		case in.Has(core.ActionRight):
			g.state.MoveCursor(1, 0)
		}
		if in.Has(core.ActionJump) || in.Has(core.ActionConfirm) {
			g.state.FlipCursor()
		}
	}
	return core.StepResult{State: g.State()}
}

// HandleClick forwards a pointer press to the state.
func (g *Game) HandleClick(p core.Point) {
	g.state.HandleClick(p)
}

// Timer returns the active state's hide timer.
func (g *Game) Timer() *core.Timer {
	return g.state.Timer()
}

// OnTimerExpired hides the mismatched pair.
func (g *Game) OnTimerExpired() {
	g.state.OnTimerExpired()
}

// Relayout re-centers the cards after a resize without losing progress.
func (g *Game) Relayout(w, h int) {
	g.state.Relayout(w, h)
}

// Render draws the current state to the screen.
func (g *Game) Render(dst *core.Screen) {
	g.state.Render(dst)
}

// State returns the current game state. The score is the move count.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.state.Moves(),
		GameOver: g.state.GameOver(),
	}
}

// Current returns the active State.
func (g *Game) Current() *State {
	return g.state
}

// Register the game with the registry
func init() {
	registry.Register("memory", func() registry.Game {
		return New()
	})
}
