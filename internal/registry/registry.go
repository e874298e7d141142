// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the platform
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/pyarcade/tui-arcade/internal/core"
)

// Game is the core interface that all arcade games must implement.
// Games contain pure logic with no external dependencies (especially no Bubble Tea).
// The engine loop handles input mapping, timing, and presentation.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "flappy", "memory").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display (e.g., "Flappy Bird").
	Title() string

	// Reset discards the current game state and builds a fresh one.
	// Called once at start and again when restarting after game over.
	// Fails when the game's configuration cannot produce a playable state.
	Reset(cfg core.RuntimeConfig) error

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	// It must not mutate game state.
	Render(dst *core.Screen)

	// State returns the current game state (score, game over, paused).
	State() core.GameState
}

// Clickable is implemented by games that accept pointer presses.
// The loop only forwards presses while the game is not over.
type Clickable interface {
	HandleClick(p core.Point)
}

// Timed is implemented by games that own a one-shot timer. The loop turns a
// due timer into a TimerExpired event and delivers it through OnTimerExpired.
type Timed interface {
	Timer() *core.Timer
	OnTimerExpired()
}

// Versus is implemented by local two-player games. When present, the loop
// calls StepPlayers with a split keyboard layout instead of Step.
type Versus interface {
	StepPlayers(in core.MultiInputFrame) core.StepResult
}

// Ranked is implemented by games whose score is better when lower
// (for example, the number of moves in Memory).
type Ranked interface {
	LowerIsBetter() bool
}

// Resizable is implemented by games that can re-layout in place when the
// screen size changes. Other games are reset on resize.
type Resizable interface {
	Relayout(w, h int)
}

// Restarter is implemented by games that build the next round from the
// finished one. Other games restart through Reset with a fresh seed.
type Restarter interface {
	Restart() error
}

// RestartBinder is implemented by games that restart on actions other than
// ActionRestart once the game is over.
type RestartBinder interface {
	RestartsOn(a core.Action) bool
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID            string
	Title         string
	LowerIsBetter bool
	Versus        bool
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]GameInfo)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	infos[id] = describe(id, f())
}

// describe collects metadata from a temporary instance.
func describe(id string, g Game) GameInfo {
	info := GameInfo{ID: id, Title: g.Title()}
	if r, ok := g.(Ranked); ok {
		info.LowerIsBetter = r.LowerIsBetter()
	}
	if _, ok := g.(Versus); ok {
		info.Versus = true
	}
	return info
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Info returns metadata for a registered game.
func Info(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	info, ok := infos[id]
	return info, ok
}

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// LowerIsBetter reports whether a game ranks lower scores higher.
// Unknown games rank higher scores first.
func LowerIsBetter(id string) bool {
	info, ok := Info(id)
	return ok && info.LowerIsBetter
}
