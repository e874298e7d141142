package core

import "time"

// Clock supplies wall-clock time to games and the loop.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real time.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time {
	return time.Now()
}

// ManualClock is a Clock that only moves when told to.
// Used by the headless host and in tests.
type ManualClock struct {
	now time.Time
}

// NewManualClock creates a clock stopped at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current manual time.
func (c *ManualClock) Now() time.Time {
	return c.now
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// Timer is a one-shot wall-clock deadline owned by a single game instance.
// The zero value is disarmed. Arming an armed timer replaces its deadline.
type Timer struct {
	deadline time.Time
	armed    bool
}

// Arm schedules the timer to become due d after now.
func (t *Timer) Arm(now time.Time, d time.Duration) {
	t.deadline = now.Add(d)
	t.armed = true
}

// Cancel disarms the timer without firing it.
func (t *Timer) Cancel() {
	t.armed = false
	t.deadline = time.Time{}
}

// Armed reports whether the timer is waiting to fire.
func (t *Timer) Armed() bool {
	return t.armed
}

// Deadline returns the time at which an armed timer becomes due.
func (t *Timer) Deadline() time.Time {
	return t.deadline
}

// Remaining returns how long until the timer is due, or 0 if disarmed or past due.
func (t *Timer) Remaining(now time.Time) time.Duration {
	if !t.armed {
		return 0
	}
	return max(t.deadline.Sub(now), 0)
}

// Due reports whether the timer is armed and its deadline has passed.
func (t *Timer) Due(now time.Time) bool {
	return t.armed && !now.Before(t.deadline)
}

// Fire disarms the timer and reports whether it was armed.
// A timer fires at most once per Arm.
func (t *Timer) Fire() bool {
	if !t.armed {
		return false
	}
	t.Cancel()
	return true
}
