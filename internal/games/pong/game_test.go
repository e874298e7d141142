package pong

import (
	"strings"
	"testing"

	"github.com/pyarcade/tui-arcade/internal/core"
	"github.com/pyarcade/tui-arcade/internal/registry"
)

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     7,
	}
}

func newGame(t *testing.T) *Game {
	t.Helper()
	g := New()
	if err := g.Reset(testConfig()); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	return g
}

// skipServe puts the ball in play immediately.
func skipServe(g *Game) {
	g.serving = false
	g.serveDelay = 0
}

func TestReset(t *testing.T) {
	g := newGame(t)

	if g.score1 != 0 || g.score2 != 0 || g.gameOver {
		t.Error("Reset should clear scores and game over")
	}
	if !g.serving {
		t.Error("game should start with a serve delay")
	}
	if g.ballX != 40 || g.ballY != 12 {
		t.Errorf("ball at (%f, %f), expected center", g.ballX, g.ballY)
	}
	if g.paddleHeight != 5 {
		t.Errorf("paddle height = %d, expected 5 from config", g.paddleHeight)
	}
}

func TestServeDelay(t *testing.T) {
	g := newGame(t)
	x := g.ballX

	for range g.cfg.Gameplay.ServeDelay - 1 {
		g.Step(core.NewInputFrame())
	}
	if g.ballX != x {
		t.Error("ball should not move during the serve delay")
	}

	g.Step(core.NewInputFrame())
	g.Step(core.NewInputFrame())
	if g.ballX == x {
		t.Error("ball should move after the serve delay")
	}
}

func TestPaddleMovement(t *testing.T) {
	g := newGame(t)
	start := g.paddle1Y

	up := core.NewInputFrame()
	up.Set(core.ActionUp)
	g.Step(up)
	if g.paddle1Y >= start {
		t.Errorf("paddle should move up: %f -> %f", start, g.paddle1Y)
	}

	for range 50 {
		g.Step(up)
	}
	if g.paddle1Y != 1 {
		t.Errorf("paddle should stop at the top wall, got %f", g.paddle1Y)
	}

	down := core.NewInputFrame()
	down.Set(core.ActionDown)
	for range 50 {
		g.Step(down)
	}
	if want := g.maxPaddleY(); g.paddle1Y != want {
		t.Errorf("paddle should stop at the bottom wall %f, got %f", want, g.paddle1Y)
	}
}

func TestWallBounce(t *testing.T) {
	g := newGame(t)
	skipServe(g)

	g.ballX = 40
	g.ballY = 1.5
	g.ballVX = 0.5
	g.ballVY = -1

	g.Step(core.NewInputFrame())

	if g.ballVY <= 0 {
		t.Errorf("ball should bounce down off the top wall, vy = %f", g.ballVY)
	}
	if g.ballY < 1 {
		t.Errorf("ball left the field: y = %f", g.ballY)
	}
}

func TestPaddleBounceSpeedsUp(t *testing.T) {
	g := newGame(t)
	skipServe(g)

	g.paddle1Y = 10
	g.ballX = 3.4
	g.ballY = 12
	g.ballVX = -0.5
	g.ballVY = 0

	g.Step(core.NewInputFrame())

	if g.ballVX <= 0 {
		t.Fatalf("ball should bounce off the left paddle, vx = %f", g.ballVX)
	}
	if want := 0.5 * g.cfg.Physics.HitSpeedup; g.ballVX < want-1e-9 || g.ballVX > want+1e-9 {
		t.Errorf("vx = %f, expected %f after speedup", g.ballVX, want)
	}
}

func TestBallPastPaddleIsNotReturned(t *testing.T) {
	tests := []struct {
		name   string
		ballX  float64
		ballVX float64
		place  func(g *Game)
	}{
		{"left", 1.2, -0.5, func(g *Game) { g.paddle1Y = 10 }},
		{"right", 79.3, 0.5, func(g *Game) { g.paddle2Y = 10 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGame(t)
			skipServe(g)

			// The paddle slides into the ball's row after the ball went by.
			tt.place(g)
			g.ballX = tt.ballX
			g.ballY = 12
			g.ballVX = tt.ballVX
			g.ballVY = 0

			g.Step(core.NewInputFrame())

			if g.ballVX*tt.ballVX <= 0 {
				t.Errorf("ball behind the paddle bounced, vx = %f", g.ballVX)
			}
		})
	}
}

func TestScoring(t *testing.T) {
	g := newGame(t)
	skipServe(g)

	g.paddle1Y = 1 // Out of the ball's way
	g.ballX = 0.2
	g.ballY = 20
	g.ballVX = -0.5
	g.ballVY = 0

	g.Step(core.NewInputFrame())

	if g.score2 != 1 {
		t.Fatalf("CPU should score when the ball passes the left edge, got %d", g.score2)
	}
	if !g.serving {
		t.Error("a point should trigger a new serve")
	}
	if g.ballVX >= 0 {
		t.Error("serve should go toward the player who conceded")
	}
}

func TestWinEndsMatch(t *testing.T) {
	g := newGame(t)
	g.score1 = g.cfg.Gameplay.WinScore - 1

	g.point(1)

	if !g.gameOver || g.Winner() != 1 {
		t.Fatalf("gameOver=%v winner=%d, expected player 1 win", g.gameOver, g.Winner())
	}

	result := g.Step(core.NewInputFrame())
	if !result.State.GameOver || result.State.Score != g.cfg.Gameplay.WinScore {
		t.Errorf("state = %+v", result.State)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !containsText(screen, "YOU WIN!") {
		t.Error("win overlay missing")
	}
}

func TestPause(t *testing.T) {
	g := newGame(t)
	skipServe(g)

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)

	x := g.ballX
	g.Step(core.NewInputFrame())
	if g.ballX != x || !g.paused {
		t.Error("ball should not move while paused")
	}
}

func TestVersusSplitsInput(t *testing.T) {
	v := NewVersus()
	if err := v.Reset(testConfig()); err != nil {
		t.Fatal(err)
	}
	p1, p2 := v.paddle1Y, v.paddle2Y

	in := core.NewMultiInputFrame()
	in.Set(core.Player1, core.ActionUp)
	in.Set(core.Player2, core.ActionDown)
	v.StepPlayers(in)

	if v.paddle1Y >= p1 {
		t.Error("player 1 paddle should move up")
	}
	if v.paddle2Y <= p2 {
		t.Error("player 2 paddle should move down")
	}
}

func TestCPUSkillWithinBounds(t *testing.T) {
	g := newGame(t)
	skipServe(g)

	for range 1000 {
		g.Step(core.NewInputFrame())
		if g.gameOver {
			break
		}
		if g.cpuSkill < g.cfg.CPU.MinSkill || g.cpuSkill > g.cfg.CPU.MaxSkill {
			t.Fatalf("cpu skill %f outside [%f, %f]", g.cpuSkill, g.cfg.CPU.MinSkill, g.cfg.CPU.MaxSkill)
		}
	}
}

func TestRegisteredVariants(t *testing.T) {
	cpu, err := registry.Create("pong")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := cpu.(registry.Versus); ok {
		t.Error("pong against the CPU should not take split input")
	}

	versus, err := registry.Create("pong_versus")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := versus.(registry.Versus); !ok {
		t.Error("pong_versus should take split input")
	}
	if versus.ID() != "pong_versus" {
		t.Errorf("ID() = %q", versus.ID())
	}
	if info, _ := registry.Info("pong_versus"); !info.Versus {
		t.Error("registry info should mark pong_versus as versus")
	}
}

func containsText(s *core.Screen, text string) bool {
	return strings.Contains(s.String(), text)
}
