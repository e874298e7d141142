package engine

import (
	"time"

	"github.com/pyarcade/tui-arcade/internal/core"
)

// HeadlessHost drives a loop without a terminal. Events are scripted per
// frame index, time advances by exactly one frame per Tick, and presented
// frames are kept for inspection.
type HeadlessHost struct {
	clock     *core.ManualClock
	script    map[int][]core.Event
	maxFrames int
	polled    int
	presented int
	last      string
	record    bool
	frames    []string
}

// NewHeadlessHost creates a host whose clock starts at start.
// maxFrames > 0 appends a quit event once that many frames were polled.
func NewHeadlessHost(start time.Time, maxFrames int) *HeadlessHost {
	return &HeadlessHost{
		clock:     core.NewManualClock(start),
		script:    make(map[int][]core.Event),
		maxFrames: maxFrames,
	}
}

// At schedules events for the frame with the given zero-based index.
func (h *HeadlessHost) At(frame int, events ...core.Event) *HeadlessHost {
	h.script[frame] = append(h.script[frame], events...)
	return h
}

// Record keeps every presented frame instead of only the last one.
func (h *HeadlessHost) Record() *HeadlessHost {
	h.record = true
	return h
}

// PollEvents returns the events scripted for the current frame.
func (h *HeadlessHost) PollEvents() []core.Event {
	events := h.script[h.polled]
	if h.maxFrames > 0 && h.polled >= h.maxFrames-1 {
		events = append(events, core.QuitEvent())
	}
	h.polled++
	return events
}

// Present stores a text snapshot of the frame.
func (h *HeadlessHost) Present(screen *core.Screen) error {
	h.presented++
	h.last = screen.String()
	if h.record {
		h.frames = append(h.frames, h.last)
	}
	return nil
}

// Tick advances the clock by one frame instead of sleeping.
func (h *HeadlessHost) Tick(fps int) {
	if fps <= 0 {
		fps = core.DefaultTickRate
	}
	h.clock.Advance(time.Second / time.Duration(fps))
}

// Now returns the simulated time.
func (h *HeadlessHost) Now() time.Time {
	return h.clock.Now()
}

// Advance moves the simulated clock without running a frame.
func (h *HeadlessHost) Advance(d time.Duration) {
	h.clock.Advance(d)
}

// Presented returns how many frames were presented.
func (h *HeadlessHost) Presented() int {
	return h.presented
}

// LastFrame returns the most recently presented frame.
func (h *HeadlessHost) LastFrame() string {
	return h.last
}

// Frames returns every presented frame when recording is enabled.
func (h *HeadlessHost) Frames() []string {
	return h.frames
}
