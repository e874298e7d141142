package engine

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pyarcade/tui-arcade/internal/core"
	"github.com/pyarcade/tui-arcade/internal/registry"
)

// ScoreFunc receives the final score of a finished single-player game.
type ScoreFunc func(gameID string, score int)

// Option configures a Loop.
type Option func(*Loop)

// WithLogger sets the logger used for restarts, timer fires and shutdown.
func WithLogger(logger *log.Logger) Option {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithScoreHandler registers fn to be called once per finished game.
// Zero scores and local versus games are not reported.
func WithScoreHandler(fn ScoreFunc) Option {
	return func(l *Loop) {
		l.onScore = fn
	}
}

// Loop owns the per-frame cycle for a single game instance.
// It is single-threaded: the host must call Frame (or Run) from one goroutine.
type Loop struct {
	game    registry.Game
	host    Host
	cfg     core.RuntimeConfig
	screen  *core.Screen
	logger  *log.Logger
	onScore ScoreFunc

	baseSeed int64
	restarts int
	frames   uint64
	reported bool
}

// NewLoop creates a loop for game on host. A zero seed is replaced with the
// current time; a zero tick rate with core.DefaultTickRate.
func NewLoop(game registry.Game, host Host, cfg core.RuntimeConfig, opts ...Option) *Loop {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultTickRate
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	cfg.Clock = hostClock{host: host}

	l := &Loop{
		game:     game,
		host:     host,
		cfg:      cfg,
		screen:   core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		logger:   log.New(io.Discard),
		baseSeed: cfg.Seed,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Start resets the game and renders the first frame.
func (l *Loop) Start() error {
	if err := l.game.Reset(l.cfg); err != nil {
		return fmt.Errorf("engine: start %s: %w", l.game.ID(), err)
	}
	l.reported = false
	l.game.Render(l.screen)
	l.logger.Debug("game started", "game", l.game.ID(), "seed", l.cfg.Seed)
	return nil
}

// Run starts the game and repeats poll, frame, present and tick until a quit
// event arrives or ctx is cancelled. A quit returns nil.
func (l *Loop) Run(ctx context.Context) error {
	if err := l.Start(); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		running, err := l.Frame(l.host.PollEvents())
		if err != nil {
			return err
		}
		if !running {
			l.logger.Debug("loop stopped", "game", l.game.ID(), "frames", l.frames)
			return nil
		}

		if err := l.host.Present(l.screen); err != nil {
			return fmt.Errorf("engine: present frame %d: %w", l.frames, err)
		}
		l.host.Tick(l.cfg.TickRate)
	}
}

// Frame processes one iteration: it dispatches events, steps the game once
// and renders into the loop's screen. It reports false when a quit was
// requested. A due game timer is delivered as a TimerExpired event ahead of
// the host's events: its deadline passed before any of them were read.
func (l *Loop) Frame(events []core.Event) (bool, error) {
	l.frames++

	timed, isTimed := l.game.(registry.Timed)
	if isTimed && timed.Timer().Due(l.host.Now()) {
		events = append([]core.Event{core.TimerExpired()}, events...)
	}

	versus, isVersus := l.game.(registry.Versus)
	input := core.NewInputFrame()
	players := core.NewMultiInputFrame()

	for _, ev := range events {
		switch ev.Kind {
		case core.EventQuit:
			return false, nil

		case core.EventPointerDown:
			if c, ok := l.game.(registry.Clickable); ok && !l.game.State().GameOver {
				c.HandleClick(ev.Pos)
			}

		case core.EventKeyDown:
			action := ActionForKey(ev.Key)
			if action == core.ActionQuit {
				return false, nil
			}
			// Restart only applies once the game is over.
			if l.game.State().GameOver && l.restartsOn(action) {
				if err := l.restart(); err != nil {
					return false, err
				}
				continue
			}
			if action == core.ActionRestart {
				continue
			}

			if isVersus {
				if id, a := VersusActionForKey(ev.Key); a != core.ActionNone {
					players.Set(id, a)
				}
			} else if action != core.ActionNone {
				input.Set(action)
			}

		case core.EventTimerExpired:
			if isTimed && timed.Timer().Fire() {
				l.logger.Debug("timer fired", "game", l.game.ID(), "frame", l.frames)
				timed.OnTimerExpired()
			}
		}
	}

	var result core.StepResult
	if isVersus {
		result = versus.StepPlayers(players)
	} else {
		result = l.game.Step(input)
	}
	l.report(result.State, isVersus)

	l.game.Render(l.screen)
	return true, nil
}

func (l *Loop) restartsOn(action core.Action) bool {
	if b, ok := l.game.(registry.RestartBinder); ok {
		return b.RestartsOn(action)
	}
	return action == core.ActionRestart
}

// restart replaces the game state wholesale. Games without their own
// Restart are reset with a new seed.
func (l *Loop) restart() error {
	l.restarts++
	l.cfg.Seed = l.baseSeed + int64(l.restarts)

	var err error
	if r, ok := l.game.(registry.Restarter); ok {
		err = r.Restart()
	} else {
		err = l.game.Reset(l.cfg)
	}
	if err != nil {
		return fmt.Errorf("engine: restart %s: %w", l.game.ID(), err)
	}
	l.reported = false
	l.logger.Debug("game restarted", "game", l.game.ID(), "restarts", l.restarts)
	return nil
}

// report hands the final score to the score handler once per game.
func (l *Loop) report(state core.GameState, versus bool) {
	if !state.GameOver || l.reported {
		return
	}
	l.reported = true
	l.logger.Info("game over", "game", l.game.ID(), "score", state.Score, "frames", l.frames)

	if l.onScore != nil && !versus && state.Score > 0 {
		l.onScore(l.game.ID(), state.Score)
	}
}

// Resize changes the screen size. Games that can re-layout keep their state;
// others are reset unless they are already over.
func (l *Loop) Resize(w, h int) error {
	l.cfg.ScreenW = w
	l.cfg.ScreenH = h
	l.screen.Resize(w, h)

	if r, ok := l.game.(registry.Resizable); ok {
		r.Relayout(w, h)
	} else if !l.game.State().GameOver {
		if err := l.game.Reset(l.cfg); err != nil {
			return fmt.Errorf("engine: resize %s: %w", l.game.ID(), err)
		}
	}
	l.game.Render(l.screen)
	return nil
}

// Game returns the game driven by the loop.
func (l *Loop) Game() registry.Game {
	return l.game
}

// State returns the game's current state.
func (l *Loop) State() core.GameState {
	return l.game.State()
}

// Screen returns the most recently rendered frame.
func (l *Loop) Screen() *core.Screen {
	return l.screen
}

// TickRate returns the frame rate the loop was configured with.
func (l *Loop) TickRate() int {
	return l.cfg.TickRate
}

// Frames returns the number of frames processed.
func (l *Loop) Frames() uint64 {
	return l.frames
}

// Restarts returns how many times the game was restarted.
func (l *Loop) Restarts() int {
	return l.restarts
}
