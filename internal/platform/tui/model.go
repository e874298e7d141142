// Package tui hosts the engine loop in a Bubble Tea program and provides the
// arcade's menu, scoreboard and SSH server.
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/pyarcade/tui-arcade/internal/core"
	"github.com/pyarcade/tui-arcade/internal/engine"
	"github.com/pyarcade/tui-arcade/internal/registry"
	"github.com/pyarcade/tui-arcade/internal/storage"
)

// GameOptions configures a game Model.
type GameOptions struct {
	Store    *storage.Store // nil disables score saving
	Session  string         // tags saved scores (SSH sessions)
	Logger   *log.Logger
	Embedded bool // back-to-menu is handled by a parent model instead of quitting
}

// teaHost is the engine host for a Bubble Tea program. The program owns
// input polling, drawing and pacing, so only the clock is live here.
type teaHost struct {
	clock core.Clock
}

func (h teaHost) PollEvents() []core.Event { return nil }

func (h teaHost) Present(*core.Screen) error { return nil }

func (h teaHost) Tick(int) {}

func (h teaHost) Now() time.Time { return h.clock.Now() }

// Model is the Bubble Tea model for running arcade games. Messages are
// turned into engine events and handed to the loop once per tick.
type Model struct {
	loop       *engine.Loop
	opts       GameOptions
	pending    []core.Event
	quitting   bool
	backToMenu bool
	err        error
}

// NewModel starts game inside a new engine loop. It fails when the game
// cannot be reset with cfg (for example an odd Memory grid).
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts GameOptions) (Model, error) {
	loopOpts := []engine.Option{engine.WithLogger(opts.Logger)}
	if opts.Store != nil {
		loopOpts = append(loopOpts, engine.WithScoreHandler(saveScore(opts)))
	}

	loop := engine.NewLoop(game, teaHost{clock: cfg.TimeSource()}, cfg, loopOpts...)
	if err := loop.Start(); err != nil {
		return Model{}, err
	}

	return Model{
		loop: loop,
		opts: opts,
	}, nil
}

// saveScore persists finished games. Storage errors are logged and the game
// continues.
func saveScore(opts GameOptions) engine.ScoreFunc {
	return func(gameID string, score int) {
		if _, err := opts.Store.SaveSessionScore(gameID, opts.Session, score); err != nil && opts.Logger != nil {
			opts.Logger.Warn("could not save score", "game", gameID, "error", err)
		}
	}
}

// TickMsg asks the model to run one engine frame.
type TickMsg time.Time

// Init schedules the first frame.
func (m Model) Init() tea.Cmd {
	return m.nextFrame()
}

// nextFrame schedules a TickMsg one frame interval from now.
func (m Model) nextFrame() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.loop.TickRate()), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.pending = append(m.pending, core.PointerDown(msg.X, msg.Y))
		}
		return m, nil

	case tea.WindowSizeMsg:
		if err := m.loop.Resize(msg.Width, msg.Height); err != nil {
			m.err = err
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit
	case "ctrl+s":
		if err := m.saveScreenshot(); err != nil && m.opts.Logger != nil {
			m.opts.Logger.Warn("screenshot failed", "error", err)
		}
		return m, nil
	}

	// B or Esc leaves a finished or paused game.
	if engine.ActionForKey(key) == core.ActionBack {
		state := m.loop.State()
		if state.GameOver || state.Paused {
			m.backToMenu = true
			if m.opts.Embedded {
				return m, nil
			}
			return m, tea.Quit
		}
	}

	m.pending = append(m.pending, core.KeyDown(key))
	return m, nil
}

// handleTick runs one engine frame with the events gathered since the last
// tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	running, err := m.loop.Frame(m.pending)
	m.pending = nil
	if err != nil {
		m.err = err
		m.quitting = true
		return m, tea.Quit
	}
	if !running {
		m.quitting = true
		return m, tea.Quit
	}

	return m, m.nextFrame()
}

// saveScreenshot writes the current frame as plain text to
// ~/.arcade/screenshots.
func (m Model) saveScreenshot() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("tui: screenshot: %w", err)
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("tui: screenshot: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.loop.Game().ID(), timestamp)
	return os.WriteFile(filepath.Join(dir, filename), []byte(m.loop.Screen().String()), 0o600)
}

// View renders the most recent frame for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return RenderScreen(m.loop.Screen())
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Err returns the error that stopped the game, if any.
func (m Model) Err() error {
	return m.err
}

// Loop exposes the engine loop driving the game.
func (m Model) Loop() *engine.Loop {
	return m.loop
}

// Run starts the Bubble Tea program for game with mouse reporting enabled.
func Run(game registry.Game, cfg core.RuntimeConfig, opts GameOptions) error {
	model, err := NewModel(game, cfg, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Memory cards are clickable
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok {
		return fm.Err()
	}
	return nil
}
