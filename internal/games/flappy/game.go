// Package flappy implements a Flappy Bird-style game.
// The player controls a bird that must navigate through gaps in vertical pipes.
package flappy

import (
	"fmt"

	"github.com/pyarcade/tui-arcade/internal/config"
	"github.com/pyarcade/tui-arcade/internal/core"
	"github.com/pyarcade/tui-arcade/internal/registry"
)

// Visual characters for rendering
const (
	PlayerChar    = '▶'
	BodyChar      = '●'
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
	GroundChar    = '═'
)

// Game implements the Flappy Bird game logic.
type Game struct {
	playerY    float64      // Player vertical position (top of hitbox)
	playerVel  float64      // Player vertical velocity
	pipes      *PipeManager // Obstacle manager
	score      int          // Pipes passed
	gameOver   bool
	paused     bool
	runtime    core.RuntimeConfig
	cfg        config.FlappyConfig
	difficulty *config.DifficultyManager
	tickCount  int // Number of ticks since start
}

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names keep the
// configured progression.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// New creates a new Flappy Bird game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "flappy"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Flappy Bird"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) error {
	cfg, err := config.LoadFlappy(configPath)
	if err != nil {
		return fmt.Errorf("flappy: %w", err)
	}
	config.ApplyFlappyPreset(&cfg, difficultyPreset)

	g.runtime = runtime
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	g.playerY = float64(g.fieldHeight()) / 2.0
	g.playerVel = 0
	g.score = 0
	g.gameOver = false
	g.paused = false
	g.tickCount = 0

	if g.pipes == nil {
		g.pipes = NewPipeManager(runtime.Seed, runtime.ScreenW, g.fieldHeight(), &g.cfg, g.difficulty)
	} else {
		g.pipes.UpdateConfig(&g.cfg, g.difficulty)
		g.pipes.UpdateScreenSize(runtime.ScreenW, g.fieldHeight())
		g.pipes.Reset(runtime.Seed)
	}
	return nil
}

// fieldHeight is the playable height above the ground line.
func (g *Game) fieldHeight() int {
	return g.runtime.ScreenH - 1
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}

	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tickCount++

	if in.Has(core.ActionJump) || in.Has(core.ActionUp) {
		g.playerVel = g.cfg.Physics.JumpImpulse
	}

	// Apply physics
	g.playerVel += g.cfg.Physics.Gravity
	if g.playerVel > g.cfg.Physics.MaxFallSpeed {
		g.playerVel = g.cfg.Physics.MaxFallSpeed
	}
	g.playerY += g.playerVel

	// Update pipes and check for scoring
	g.score += g.pipes.Update(g.cfg.Player.X, g.score, g.tickCount)

	// Leaving the field through the top or the ground ends the run.
	if g.playerY < 0 {
		g.playerY = 0
		g.gameOver = true
	}
	if int(g.playerY)+g.cfg.Player.Height > g.fieldHeight() {
		g.playerY = float64(g.fieldHeight() - g.cfg.Player.Height)
		g.gameOver = true
	}

	if g.pipes.CheckCollision(g.playerRect(), g.fieldHeight()) {
		g.gameOver = true
	}

	return core.StepResult{State: g.State()}
}

// playerRect returns the player's collision rectangle.
func (g *Game) playerRect() core.Rect {
	return core.NewRect(g.cfg.Player.X, int(g.playerY), g.cfg.Player.Width, g.cfg.Player.Height)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Draw ground
	groundY := dst.Height() - 1
	for x := range dst.Width() {
		dst.SetColor(x, groundY, GroundChar, core.ColorSkyBlue)
	}

	for _, p := range g.pipes.Pipes() {
		g.drawPipe(dst, p)
	}

	// Draw player
	px, py := g.cfg.Player.X, int(g.playerY)
	for dy := range g.cfg.Player.Height {
		for dx := range g.cfg.Player.Width {
			ch := BodyChar
			if dx == g.cfg.Player.Width-1 && dy == 0 {
				ch = PlayerChar
			}
			dst.SetColor(px+dx, py+dy, ch, core.ColorBrightYellow)
		}
	}

	// Draw HUD
	dst.DrawTextColor(fmt.Sprintf(" Score: %d ", g.score), core.Pt(2, 0), core.ColorBrightWhite)

	if g.paused {
		dst.DrawMessageBox("PAUSED", "Press P to resume")
	}

	if g.gameOver {
		dst.DrawMessageBox("GAME OVER", fmt.Sprintf("Score: %d  |  Press Space or R to restart", g.score))
	}
}

// drawPipe renders a single pipe to the screen.
func (g *Game) drawPipe(dst *core.Screen, p Pipe) {
	fieldH := dst.Height() - 1
	width := g.cfg.Obstacles.PipeWidth

	top := p.TopRect(width)
	dst.FillRectColor(top, PipeChar, core.ColorGreen)
	if p.GapY > 0 {
		dst.FillRectColor(core.NewRect(p.X, p.GapY-1, width, 1), PipeCapTop, core.ColorBrightGreen)
	}

	bottom := p.BottomRect(width, fieldH)
	dst.FillRectColor(bottom, PipeChar, core.ColorGreen)
	if !bottom.Empty() {
		dst.FillRectColor(core.NewRect(p.X, bottom.Y, width, 1), PipeCapBottom, core.ColorBrightGreen)
	}
}

// RestartsOn reports whether a finished game restarts on action.
// Space restarts as well as R.
func (g *Game) RestartsOn(a core.Action) bool {
	return a == core.ActionRestart || a == core.ActionJump
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Register the game with the registry
func init() {
	registry.Register("flappy", func() registry.Game {
		return New()
	})
}
