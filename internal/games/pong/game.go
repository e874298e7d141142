// Package pong implements classic Pong.
// In "pong" Player 1 controls the left paddle against a CPU opponent; in
// "pong_versus" two local players share the keyboard (W/S and arrow keys).
package pong

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/pyarcade/tui-arcade/internal/config"
	"github.com/pyarcade/tui-arcade/internal/core"
	"github.com/pyarcade/tui-arcade/internal/registry"
)

// Visual characters for rendering
const (
	PaddleChar = '█'
	BallChar   = '●'
	NetChar    = '│'
)

// Game implements the Pong game logic.
type Game struct {
	versus bool // Two local players instead of CPU

	// Paddles
	paddle1Y float64 // Player 1 (left) paddle Y position
	paddle2Y float64 // Player 2/CPU (right) paddle Y position

	// Ball
	ballX  float64
	ballY  float64
	ballVX float64 // Ball velocity X
	ballVY float64 // Ball velocity Y

	// Scores
	score1 int // Player 1 score
	score2 int // Player 2/CPU score

	// Game state
	gameOver   bool
	paused     bool
	winner     int  // 1 or 2
	serving    bool // True when waiting to serve
	serveDelay int  // Ticks to wait before serving

	// Settings
	runtime      core.RuntimeConfig
	cfg          config.PongConfig
	difficulty   *config.DifficultyManager
	paddleHeight int
	cpuSkill     float64 // CPU reaction skill (0-1)
	rng          *rand.Rand
	tickCount    int
}

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// New creates a Pong game against the CPU.
func New() *Game {
	return &Game{}
}

// VersusGame is Pong for two local players. Split keyboard input arrives
// through StepPlayers.
type VersusGame struct {
	*Game
}

// NewVersus creates a local two-player Pong game.
func NewVersus() VersusGame {
	return VersusGame{&Game{versus: true}}
}

// StepPlayers advances the game with input from both local players.
func (v VersusGame) StepPlayers(in core.MultiInputFrame) core.StepResult {
	return v.advance(in.Player1(), in.Player2())
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.versus {
		return "pong_versus"
	}
	return "pong"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.versus {
		return "Pong (2 Players)"
	}
	return "Pong"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) error {
	cfg, err := config.LoadPong(configPath)
	if err != nil {
		return fmt.Errorf("pong: %w", err)
	}
	config.ApplyPongPreset(&cfg, difficultyPreset)

	g.runtime = runtime
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.rng = rand.New(rand.NewSource(runtime.Seed))

	// Paddles must fit between the score row and the bottom wall.
	g.paddleHeight = core.Clamp(cfg.Paddles.Height, 2, max(runtime.ScreenH-3, 2))

	// Center paddles vertically
	centerY := float64(runtime.ScreenH) / 2.0
	g.paddle1Y = centerY - float64(g.paddleHeight)/2.0
	g.paddle2Y = centerY - float64(g.paddleHeight)/2.0

	g.score1 = 0
	g.score2 = 0
	g.gameOver = false
	g.paused = false
	g.winner = 0
	g.tickCount = 0
	g.cpuSkill = g.difficulty.Lerp(cfg.CPU.MinSkill, cfg.CPU.MaxSkill, 0, 0)

	// First serve goes in a random direction.
	g.startServe(1 + g.rng.Intn(2))
	return nil
}

// startServe centers the ball and aims it at the given player's side.
func (g *Game) startServe(toward int) {
	g.serving = true
	g.serveDelay = g.cfg.Gameplay.ServeDelay

	g.ballX = float64(g.runtime.ScreenW) / 2.0
	g.ballY = float64(g.runtime.ScreenH) / 2.0

	speed := g.difficulty.Speed(g.cfg.Physics.BallSpeed, g.score1+g.score2, g.tickCount)
	if toward == 1 {
		g.ballVX = -speed
	} else {
		g.ballVX = speed
	}

	// Random vertical angle
	angle := (g.rng.Float64() - 0.5) * 0.6 // -0.3 to 0.3
	g.ballVY = speed * angle
}

// Step advances the game by one tick. In versus mode the input drives
// player 1 only.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	return g.advance(in, core.NewInputFrame())
}

func (g *Game) advance(p1, p2 core.InputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if p1.Has(core.ActionPause) || p2.Has(core.ActionPause) {
		g.paused = !g.paused
	}

	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tickCount++

	if g.serving {
		g.serveDelay--
		if g.serveDelay <= 0 {
			g.serving = false
		}
		// Paddles still move during serve
	}

	g.paddle1Y = g.movePaddle(g.paddle1Y, p1)
	if g.versus {
		g.paddle2Y = g.movePaddle(g.paddle2Y, p2)
	} else {
		g.updateCPU()
	}

	if !g.serving {
		g.updateBall()
	}

	return core.StepResult{State: g.State()}
}

// movePaddle applies up/down input to a paddle and keeps it on the field.
func (g *Game) movePaddle(y float64, in core.InputFrame) float64 {
	if in.Has(core.ActionUp) {
		y -= g.cfg.Physics.PaddleSpeed
	}
	if in.Has(core.ActionDown) {
		y += g.cfg.Physics.PaddleSpeed
	}
	return core.ClampF(y, 1, g.maxPaddleY())
}

func (g *Game) maxPaddleY() float64 {
	return float64(g.runtime.ScreenH - g.paddleHeight - 1)
}

// updateCPU handles CPU paddle movement.
func (g *Game) updateCPU() {
	g.cpuSkill = g.difficulty.Lerp(g.cfg.CPU.MinSkill, g.cfg.CPU.MaxSkill, g.score1, g.tickCount)

	// CPU tracks ball with some imperfection
	targetY := g.ballY - float64(g.paddleHeight)/2.0
	diff := targetY - g.paddle2Y

	// Only move if ball is coming towards CPU
	if g.ballVX > 0 {
		moveSpeed := g.cfg.Physics.PaddleSpeed * g.cpuSkill
		if math.Abs(diff) > moveSpeed {
			if diff > 0 {
				g.paddle2Y += moveSpeed
			} else {
				g.paddle2Y -= moveSpeed
			}
		}
	}

	g.paddle2Y = core.ClampF(g.paddle2Y, 1, g.maxPaddleY())
}

// paddleRect returns the collision rectangle of a paddle (1 = left, 2 = right).
func (g *Game) paddleRect(player int) core.Rect {
	if player == 1 {
		return core.NewRect(g.cfg.Paddles.Offset, int(g.paddle1Y), g.cfg.Paddles.Width, g.paddleHeight)
	}
	x := g.runtime.ScreenW - g.cfg.Paddles.Offset - g.cfg.Paddles.Width
	return core.NewRect(x, int(g.paddle2Y), g.cfg.Paddles.Width, g.paddleHeight)
}

// hitsPaddle reports whether the ball row overlaps the paddle's rows.
func (g *Game) hitsPaddle(player int) bool {
	p := g.paddleRect(player)
	ball := core.NewRect(p.X, int(g.ballY), 1, 1)
	return ball.Intersects(p)
}

// bounce reflects the ball off a paddle, adding spin from the hit position
// and a small speedup.
func (g *Game) bounce(paddleY float64) {
	g.ballVX = -g.ballVX * g.cfg.Physics.HitSpeedup
	hitPos := (g.ballY - paddleY) / float64(g.paddleHeight)
	g.ballVY += (hitPos - 0.5) * g.cfg.Physics.SpinFactor
}

// updateBall handles ball physics and collision.
func (g *Game) updateBall() {
	g.ballX += g.ballVX
	g.ballY += g.ballVY

	// Bounce off top/bottom walls
	if g.ballY <= 1 {
		g.ballY = 1
		g.ballVY = -g.ballVY
	}
	if g.ballY >= float64(g.runtime.ScreenH-2) {
		g.ballY = float64(g.runtime.ScreenH - 2)
		g.ballVY = -g.ballVY
	}

	left := g.paddleRect(1)
	right := g.paddleRect(2)

	// The hit window reaches one cell behind each paddle so a fast ball
	// cannot tunnel through it, but a ball already past it stays past.
	if g.ballX <= float64(left.Right()) && g.ballX >= float64(left.X-1) &&
		g.ballVX < 0 && g.hitsPaddle(1) {
		g.ballX = float64(left.Right())
		g.bounce(g.paddle1Y)
	}
	if g.ballX >= float64(right.X) && g.ballX <= float64(right.Right()+1) &&
		g.ballVX > 0 && g.hitsPaddle(2) {
		g.ballX = float64(right.X - 1)
		g.bounce(g.paddle2Y)
	}

	// Limit ball speed
	maxSpeed := g.cfg.Physics.MaxBallSpeed
	if math.Abs(g.ballVX) > maxSpeed {
		g.ballVX = maxSpeed * math.Copysign(1, g.ballVX)
	}
	if math.Abs(g.ballVY) > maxSpeed/2 {
		g.ballVY = maxSpeed / 2 * math.Copysign(1, g.ballVY)
	}

	// Check scoring (ball goes past paddle)
	if g.ballX < 0 {
		g.point(2)
	} else if g.ballX > float64(g.runtime.ScreenW) {
		g.point(1)
	}
}

// point awards a point and either ends the match or serves toward the loser.
func (g *Game) point(player int) {
	score := &g.score1
	if player == 2 {
		score = &g.score2
	}
	*score++

	if *score >= g.cfg.Gameplay.WinScore {
		g.gameOver = true
		g.winner = player
		return
	}
	g.startServe(3 - player)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Draw center line (net)
	centerX := dst.Width() / 2
	for y := 1; y < dst.Height()-1; y += 2 {
		dst.SetColor(centerX, y, NetChar, core.ColorGray)
	}

	dst.FillRectColor(g.paddleRect(1), PaddleChar, core.ColorBrightCyan)
	dst.FillRectColor(g.paddleRect(2), PaddleChar, core.ColorBrightMagenta)

	// Draw ball
	if !g.serving || (g.serveDelay/10)%2 == 0 { // Blink during serve
		dst.SetColor(int(g.ballX), int(g.ballY), BallChar, core.ColorBrightWhite)
	}

	// Draw scores
	dst.DrawText(centerX-5, 0, fmt.Sprintf("%d", g.score1))
	dst.DrawText(centerX+4, 0, fmt.Sprintf("%d", g.score2))

	// Draw labels
	right := "CPU"
	if g.versus {
		right = "P2"
	}
	dst.DrawText(1, 0, "P1")
	dst.DrawText(dst.Width()-len(right)-1, 0, right)

	if g.paused {
		dst.DrawMessageBox("PAUSED", "Press P to resume")
	}

	if g.gameOver {
		dst.DrawMessageBox(g.winnerText(), fmt.Sprintf("%d - %d  |  Press R to restart", g.score1, g.score2))
	}
}

func (g *Game) winnerText() string {
	switch {
	case g.versus:
		return fmt.Sprintf("PLAYER %d WINS!", g.winner)
	case g.winner == 1:
		return "YOU WIN!"
	default:
		return "CPU WINS!"
	}
}

// Winner returns 1 or 2 once the match is over, otherwise 0.
func (g *Game) Winner() int {
	return g.winner
}

// Scores returns both players' points.
func (g *Game) Scores() (int, int) {
	return g.score1, g.score2
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score1, // Report player's score
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Register the game with the registry
func init() {
	registry.Register("pong", func() registry.Game {
		return New()
	})
	registry.Register("pong_versus", func() registry.Game {
		return NewVersus()
	})
}
