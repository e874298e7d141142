// Package engine runs a registered game on a fixed-rate frame loop.
// Each frame polls input events from a Host, dispatches them to the game,
// advances the simulation one tick, renders, and waits for the frame budget.
package engine

import (
	"time"

	"github.com/pyarcade/tui-arcade/internal/core"
)

// Host is the rendering and input collaborator the loop runs against.
// The Bubble Tea model in platform/tui is the interactive host; HeadlessHost
// drives the loop from a script.
type Host interface {
	// PollEvents returns every event received since the previous call.
	PollEvents() []core.Event

	// Present shows a fully rendered frame.
	Present(screen *core.Screen) error

	// Tick blocks until the next frame is due at the given rate.
	Tick(fps int)

	// Now returns the host's wall-clock time. Game timers are armed and
	// checked against it.
	Now() time.Time
}

// hostClock exposes a Host as a core.Clock so games arm timers on the
// same time line the loop checks them against.
type hostClock struct {
	host Host
}

func (c hostClock) Now() time.Time {
	return c.host.Now()
}
